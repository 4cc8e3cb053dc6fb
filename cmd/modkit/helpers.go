// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"modkit/internal/issue"
	"modkit/internal/project"
	"modkit/internal/resolve"
	"modkit/internal/stage"
)

// loadProject loads the project descriptor from the --project directory.
func loadProject() (*project.Config, error) {
	cfg, err := project.Load(projectDir)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load project").
			WithResource(projectDir).
			WithSuggestion("Run 'modkit init' to create a project.toml").
			WithSuggestion("Check that owner, name, and version are all set").
			Wrap(err).
			Build()
	}
	return cfg, nil
}

// newResolver builds the dependency resolver from the configuration root.
func newResolver() (*resolve.MavenResolver, error) {
	cacheDir, err := cfgRoot.EffectiveCacheDir()
	if err != nil {
		return nil, err
	}
	return resolve.NewMavenResolver(cfgRoot.Config.Repositories, cacheDir), nil
}

// newBuilder wires the stage builder for a loaded project.
func newBuilder(cfg *project.Config) (*stage.Builder, error) {
	resolver, err := newResolver()
	if err != nil {
		return nil, err
	}
	return &stage.Builder{
		Project:  cfg,
		Resolver: resolver,
		Compiler: &stage.JavacCompiler{},
	}, nil
}

// formatFileSize formats a file size in bytes to a human-readable string
func formatFileSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/float64(GB))
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/float64(MB))
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}
