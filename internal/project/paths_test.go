// SPDX-License-Identifier: MPL-2.0

package project

import (
	"path/filepath"
	"testing"
)

func testConfig(root string) *Config {
	cfg := &Config{
		Owner:   "acme",
		Name:    "worker",
		Version: "1.0.0",
		Main:    "app.js",
		Root:    root,
	}
	cfg.applyDefaults()
	return cfg
}

func TestStagingDir(t *testing.T) {
	t.Parallel()

	cfg := testConfig("/proj")
	got, err := cfg.StagingDir()
	if err != nil {
		t.Fatalf("StagingDir() error = %v", err)
	}
	want := filepath.Join("/proj", "build", "mods", "acme~worker~1.0.0")
	if got != want {
		t.Errorf("StagingDir() = %q, want %q", got, want)
	}
}

func TestStagingDir_CollisionFree(t *testing.T) {
	t.Parallel()

	// Distinct identities must never map to the same staging path.
	triples := []Config{
		{Owner: "acme", Name: "worker", Version: "1.0.0"},
		{Owner: "acme", Name: "worker", Version: "1.0.1"},
		{Owner: "acme", Name: "api", Version: "1.0.0"},
		{Owner: "other", Name: "worker", Version: "1.0.0"},
	}

	seen := make(map[string]string)
	for _, c := range triples {
		c.Root = "/proj"
		dir, err := c.StagingDir()
		if err != nil {
			t.Fatalf("StagingDir() error = %v", err)
		}
		id, _ := c.Identity()
		if prev, ok := seen[dir]; ok {
			t.Errorf("staging dir %q shared by %q and %q", dir, prev, id)
		}
		seen[dir] = id
	}
}

func TestStagingDir_Deterministic(t *testing.T) {
	t.Parallel()

	cfg := testConfig("/proj")
	first, err := cfg.StagingDir()
	if err != nil {
		t.Fatalf("StagingDir() error = %v", err)
	}
	second, err := cfg.StagingDir()
	if err != nil {
		t.Fatalf("StagingDir() error = %v", err)
	}
	if first != second {
		t.Errorf("StagingDir() not deterministic: %q vs %q", first, second)
	}
}

func TestPlannedPaths(t *testing.T) {
	t.Parallel()

	cfg := testConfig("/proj")
	staging := filepath.Join("/proj", "build", "mods", "acme~worker~1.0.0")

	libDir, err := cfg.LibDir()
	if err != nil {
		t.Fatalf("LibDir() error = %v", err)
	}
	if want := filepath.Join(staging, "lib"); libDir != want {
		t.Errorf("LibDir() = %q, want %q", libDir, want)
	}

	descPath, err := cfg.DescriptorPath()
	if err != nil {
		t.Fatalf("DescriptorPath() error = %v", err)
	}
	if want := filepath.Join(staging, "mod.json"); descPath != want {
		t.Errorf("DescriptorPath() = %q, want %q", descPath, want)
	}

	if want := filepath.Join("/proj", "build", "mods", "deps"); cfg.DepsCacheDir() != want {
		t.Errorf("DepsCacheDir() = %q, want %q", cfg.DepsCacheDir(), want)
	}

	archivePath, err := cfg.ArchivePath()
	if err != nil {
		t.Fatalf("ArchivePath() error = %v", err)
	}
	if want := filepath.Join("/proj", "target", "mods", "worker-1.0.0.zip"); archivePath != want {
		t.Errorf("ArchivePath() = %q, want %q", archivePath, want)
	}
}

func TestPlannedPaths_InvalidIdentity(t *testing.T) {
	t.Parallel()

	cfg := &Config{Owner: "acme", Root: "/proj"}

	if _, err := cfg.StagingDir(); err == nil {
		t.Error("StagingDir() expected error for incomplete identity")
	}
	if _, err := cfg.LibDir(); err == nil {
		t.Error("LibDir() expected error for incomplete identity")
	}
	if _, err := cfg.DescriptorPath(); err == nil {
		t.Error("DescriptorPath() expected error for incomplete identity")
	}
	if _, err := cfg.ArchivePath(); err == nil {
		t.Error("ArchivePath() expected error for incomplete identity")
	}
}
