// SPDX-License-Identifier: MPL-2.0

package stage

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// CompileOptions describes one compiler invocation.
type CompileOptions struct {
	// SourceDirs are the source trees to compile. Missing trees are
	// skipped.
	SourceDirs []string
	// Classpath are jar paths made available to the compiler.
	Classpath []string
	// OutputDir receives the compiled class files.
	OutputDir string
}

// Compiler compiles project sources into an output directory. The
// build pipeline treats compilation as a black box: any failure is
// fatal and aborts the pipeline.
type Compiler interface {
	Compile(ctx context.Context, opts CompileOptions) error
}

// CompileError is returned when the external compiler fails. It
// carries the compiler's combined output for diagnosis.
type CompileError struct {
	// Output is the compiler's combined stdout/stderr.
	Output string
	// Err is the underlying process error.
	Err error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	msg := "compilation failed"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

// Unwrap returns the underlying process error.
func (e *CompileError) Unwrap() error { return e.Err }

// JavacCompiler shells out to javac. The zero value uses "javac" from
// PATH.
type JavacCompiler struct {
	// Javac overrides the javac binary path.
	Javac string
	// Logger overrides the package logger; nil means log.Default().
	Logger *log.Logger
}

// Compile runs javac over every .java file found under opts.SourceDirs.
// Source trees that exist but contain no Java sources are a no-op, so
// script-only modules build without a JDK.
func (c *JavacCompiler) Compile(ctx context.Context, opts CompileOptions) error {
	sources, err := collectJavaSources(opts.SourceDirs)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return nil
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create compile output directory: %w", err)
	}

	javac := c.Javac
	if javac == "" {
		javac = "javac"
	}

	args := []string{"-d", opts.OutputDir}
	if len(opts.Classpath) > 0 {
		args = append(args, "-cp", strings.Join(opts.Classpath, string(os.PathListSeparator)))
	}
	args = append(args, sources...)

	c.logger().Debug("compiling sources", "files", len(sources), "out", opts.OutputDir)

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, javac, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return &CompileError{Output: out.String(), Err: err}
	}
	return nil
}

func (c *JavacCompiler) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

// collectJavaSources walks each source tree and returns every .java
// file. Missing trees are skipped silently, matching the optional
// source-root convention used for copying.
func collectJavaSources(dirs []string) ([]string, error) {
	var sources []string
	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), ".java") {
				sources = append(sources, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan source tree %s: %w", dir, err)
		}
	}
	return sources, nil
}
