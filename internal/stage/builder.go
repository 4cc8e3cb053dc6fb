// SPDX-License-Identifier: MPL-2.0

// Package stage assembles a module's staging directory: compiled
// output, copied source and resource trees, and a lib/ directory of
// resolved dependency jars. Staging is idempotent over an existing
// tree; files are overwritten, never deleted first, so stale files
// from a previous build persist until an explicit clean.
package stage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"modkit/internal/project"
	"modkit/internal/resolve"

	"github.com/charmbracelet/log"
)

// Builder stages one module. The pipeline is strictly sequential:
// ensure tree, compile, copy sources, copy resources, copy
// dependencies. Each step's completion is a precondition for the next.
type Builder struct {
	// Project is the module's configuration.
	Project *project.Config
	// Resolver resolves the project's declared dependencies.
	Resolver resolve.Resolver
	// Compiler compiles the configured source trees.
	Compiler Compiler
	// Logger overrides the package logger; nil means log.Default().
	Logger *log.Logger
}

// Build runs the full staging pipeline and returns the resolved
// dependency jar paths for reuse by the packager (dependencies are
// resolved exactly once per invocation).
func (b *Builder) Build(ctx context.Context) ([]string, error) {
	staging, err := b.Project.StagingDir()
	if err != nil {
		return nil, err
	}
	libDir, err := b.Project.LibDir()
	if err != nil {
		return nil, err
	}

	if err := b.EnsureTree(); err != nil {
		return nil, err
	}

	jars, err := b.Resolver.Resolve(ctx, b.Project.Dependencies)
	if err != nil {
		return nil, err
	}

	b.logger().Debug("compiling into staging directory", "dir", staging)
	if err := b.Compiler.Compile(ctx, CompileOptions{
		SourceDirs: b.sourceRoots(),
		Classpath:  jars,
		OutputDir:  staging,
	}); err != nil {
		return nil, err
	}

	for _, root := range b.sourceRoots() {
		if err := CopyTree(root, staging); err != nil {
			return nil, err
		}
	}
	for _, root := range b.resourceRoots() {
		if err := CopyTree(root, staging); err != nil {
			return nil, err
		}
	}

	if err := b.CopyDependencies(libDir, jars); err != nil {
		return nil, err
	}

	b.logger().Info("module staged", "dir", staging, "dependencies", len(jars))
	return jars, nil
}

// EnsureTree creates the staging directory and its lib/ subdirectory
// if missing. Reusing an existing tree is not an error.
func (b *Builder) EnsureTree() error {
	libDir, err := b.Project.LibDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(libDir, 0o755); err != nil {
		return fmt.Errorf("failed to create staging tree: %w", err)
	}
	return nil
}

// Clean removes the module's staging directory. This is the explicit
// counter to staging never deleting stale files on its own.
func (b *Builder) Clean() error {
	staging, err := b.Project.StagingDir()
	if err != nil {
		return err
	}
	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("failed to remove staging directory: %w", err)
	}
	return nil
}

// CopyDependencies copies each resolved jar into destDir under its
// base name. Two jars sharing a base name is a hard failure; silently
// keeping the last one would drop an artifact from the classpath.
func (b *Builder) CopyDependencies(destDir string, jars []string) error {
	if err := resolve.CheckJarNames(jars); err != nil {
		return err
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", destDir, err)
	}
	for _, jar := range jars {
		if err := copyFile(jar, filepath.Join(destDir, filepath.Base(jar))); err != nil {
			return err
		}
	}
	return nil
}

// CopyTree copies every regular file under srcRoot to the same
// relative path under destRoot, creating intermediate directories as
// needed. Only file bytes are preserved. A missing srcRoot is skipped
// silently; source and resource roots are optional. Existing
// destination files are overwritten.
func CopyTree(srcRoot, destRoot string) error {
	if _, err := os.Stat(srcRoot); os.IsNotExist(err) {
		return nil
	}

	return filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(srcRoot, path)
		if err != nil {
			return fmt.Errorf("failed to relativize %s: %w", path, err)
		}

		dest := filepath.Join(destRoot, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(dest), err)
		}
		return copyFile(path, dest)
	})
}

// copyFile copies src to dst, truncating any existing file.
func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return nil
}

func (b *Builder) sourceRoots() []string {
	return b.absRoots(b.Project.SourcePaths)
}

func (b *Builder) resourceRoots() []string {
	return b.absRoots(b.Project.ResourcePaths)
}

// absRoots anchors relative roots at the project directory.
func (b *Builder) absRoots(roots []string) []string {
	abs := make([]string, len(roots))
	for i, r := range roots {
		if filepath.IsAbs(r) {
			abs[i] = r
		} else {
			abs[i] = filepath.Join(b.Project.Root, r)
		}
	}
	return abs
}

func (b *Builder) logger() *log.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return log.Default()
}
