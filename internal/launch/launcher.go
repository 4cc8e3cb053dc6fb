// SPDX-License-Identifier: MPL-2.0

// Package launch runs the platform against a staged module: it builds
// the runtime classpath (staged module, its lib/ jars, the pinned
// platform jars), constructs the JVM argument vector, and spawns the
// subprocess with inherited standard streams.
package launch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"modkit/internal/project"
	"modkit/internal/resolve"

	"github.com/charmbracelet/log"
)

// BootstrapClass is the platform's fixed bootstrap main class.
const BootstrapClass = "org.vertx.java.platform.impl.cli.Starter"

// modsProperty is the system property pointing the platform at the
// staged modules root.
const modsProperty = "vertx.mods"

// ErrMissingIdentity is returned when neither the caller nor the
// project configuration supplies a complete owner/name/version triple.
// It is raised before any subprocess is spawned.
var ErrMissingIdentity = errors.New("missing module identity: owner, name, and version are required")

// ExecError reports a platform subprocess that ran and exited with a
// non-zero status. The status is never swallowed; callers decide how
// to surface it.
type ExecError struct {
	Code ExitCode
}

// Error implements the error interface.
func (e *ExecError) Error() string {
	return fmt.Sprintf("platform exited with status %s", e.Code)
}

// CanceledError reports a run that was stopped by cancellation or
// timeout rather than by the subprocess itself. It unwraps to the
// context error so errors.Is(err, context.Canceled) and
// errors.Is(err, context.DeadlineExceeded) both work.
type CanceledError struct {
	Err error
}

// Error implements the error interface.
func (e *CanceledError) Error() string { return fmt.Sprintf("run canceled: %v", e.Err) }

// Unwrap returns the underlying context error.
func (e *CanceledError) Unwrap() error { return e.Err }

// Runner spawns a prepared argument vector. It exists so tests can
// verify launch decisions without creating processes.
type Runner interface {
	Run(ctx context.Context, argv []string) error
}

// ExecRunner runs the argument vector as a real subprocess with
// inherited standard streams, blocking until completion. On context
// cancellation the process is killed after a short grace period.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.WaitDelay = 5 * time.Second
	return cmd.Run()
}

// Launcher runs staged modules on the platform.
type Launcher struct {
	// Project supplies the build root and the identity fallback.
	Project *project.Config
	// Platform resolves the pinned platform-runtime jars.
	Platform resolve.Resolver
	// Runner spawns the subprocess. Defaults to ExecRunner.
	Runner Runner
	// Java is the JVM executable. The MODKIT_JAVA environment variable
	// overrides it; empty falls back to "java".
	Java string
	// Timeout bounds the subprocess run; zero means unbounded.
	Timeout time.Duration
	// Logger overrides the package logger; nil means log.Default().
	Logger *log.Logger
}

// Classpath joins, in order, the staged module directory, every .jar
// regular file directly under its lib/ directory (in name order), and
// the platform runtime jars, using the platform path-list separator.
func Classpath(stagingDir, libDir string, platformJars []string) (string, error) {
	parts := []string{stagingDir}

	entries, err := os.ReadDir(libDir)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read %s: %w", libDir, err)
	}
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ".jar") {
			parts = append(parts, filepath.Join(libDir, e.Name()))
		}
	}

	parts = append(parts, platformJars...)
	return strings.Join(parts, string(os.PathListSeparator)), nil
}

// Command builds the JVM argument vector: the java executable, the
// modules-root system property, -classpath immediately followed by the
// bootstrap main class, then the platform subcommand and the caller's
// arguments verbatim.
func Command(java, modsRoot, classpath, subcommand string, args []string) []string {
	argv := []string{
		java,
		"-D" + modsProperty + "=" + modsRoot,
		"-classpath", classpath,
		BootstrapClass,
		subcommand,
	}
	return append(argv, args...)
}

// Invoke runs the identified module via the platform's runmod
// subcommand and blocks until the subprocess finishes. An explicit
// owner/name/version triple wins over the project configuration; if
// neither yields a complete triple, ErrMissingIdentity is returned
// before anything is spawned. A non-zero exit surfaces as *ExecError;
// cancellation and timeout surface as *CanceledError.
func (l *Launcher) Invoke(ctx context.Context, owner, name, version string, args []string) error {
	if owner == "" && name == "" && version == "" {
		owner, name, version = l.Project.Owner, l.Project.Name, l.Project.Version
	}
	id, err := project.Identity(owner, name, version)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMissingIdentity, err)
	}

	modsRoot := l.Project.ModsRoot()
	stagingDir := filepath.Join(modsRoot, id)
	libDir := filepath.Join(stagingDir, "lib")

	platformJars, err := l.Platform.Resolve(ctx, resolve.PlatformDependencies())
	if err != nil {
		return fmt.Errorf("failed to resolve platform runtime: %w", err)
	}

	classpath, err := Classpath(stagingDir, libDir, platformJars)
	if err != nil {
		return err
	}

	argv := Command(l.java(), modsRoot, classpath, "runmod", append([]string{id}, args...))

	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	l.logger().Debug("launching platform", "module", id, "argv", argv)

	runErr := l.runner().Run(ctx, argv)
	if runErr == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &CanceledError{Err: ctxErr}
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return &ExecError{Code: ExitCode(exitErr.ExitCode())}
	}
	return fmt.Errorf("failed to launch platform: %w", runErr)
}

func (l *Launcher) java() string {
	if java := os.Getenv("MODKIT_JAVA"); java != "" {
		return java
	}
	if l.Java != "" {
		return l.Java
	}
	return "java"
}

func (l *Launcher) runner() Runner {
	if l.Runner != nil {
		return l.Runner
	}
	return ExecRunner{}
}

func (l *Launcher) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.Default()
}
