// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"modkit/internal/resolve"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func zipNames(t *testing.T, path string) []string {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names
}

func TestCollectEntries(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.js"), "script")
	writeFile(t, filepath.Join(root, "com", "acme", "Worker.class"), "bytes")

	entries, err := CollectEntries([]string{root})
	if err != nil {
		t.Fatalf("CollectEntries() error = %v", err)
	}

	byName := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}

	// The root itself produces no entry; its children do, with
	// slash-normalized names.
	if _, ok := byName["."]; ok {
		t.Error("root entry must not be collected")
	}
	if e, ok := byName["app.js"]; !ok || e.Dir {
		t.Errorf("app.js entry = %+v, want file entry", e)
	}
	if e, ok := byName["com/acme"]; !ok || !e.Dir {
		t.Errorf("com/acme entry = %+v, want directory entry", e)
	}
	if e, ok := byName["com/acme/Worker.class"]; !ok || e.Dir {
		t.Errorf("com/acme/Worker.class entry = %+v, want file entry", e)
	}
}

func TestCollectEntries_MissingRootSkipped(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "x")

	entries, err := CollectEntries([]string{filepath.Join(root, "absent"), root})
	if err != nil {
		t.Fatalf("CollectEntries() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "a.txt" {
		t.Errorf("entries = %+v, want just a.txt", entries)
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	root := filepath.Join(tmpDir, "staging")
	writeFile(t, filepath.Join(root, "mod.json"), `{"main": "app.js"}`)
	writeFile(t, filepath.Join(root, "app.js"), "script")

	jars := []string{
		filepath.Join(tmpDir, "cache", "zeta-1.0.jar"),
		filepath.Join(tmpDir, "cache", "alpha-2.0.jar"),
	}
	for _, jar := range jars {
		writeFile(t, jar, "jar bytes")
	}

	entries, err := CollectEntries([]string{root})
	if err != nil {
		t.Fatalf("CollectEntries() error = %v", err)
	}

	dest := filepath.Join(tmpDir, "target", "mods", "worker-1.0.0.zip")
	if err := Build(dest, entries, jars); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	names := zipNames(t, dest)
	want := []string{"app.js", "mod.json", "lib/", "lib/alpha-2.0.jar", "lib/zeta-1.0.jar"}
	if len(names) != len(want) {
		t.Fatalf("archive names = %v, want %v", names, want)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("archive entry[%d] = %q, want %q", i, names[i], n)
		}
	}
}

func TestBuild_Reproducible(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	root := filepath.Join(tmpDir, "staging")
	writeFile(t, filepath.Join(root, "b.txt"), "bee")
	writeFile(t, filepath.Join(root, "a.txt"), "ay")
	jar := filepath.Join(tmpDir, "dep-1.0.jar")
	writeFile(t, jar, "jar")

	entries, err := CollectEntries([]string{root})
	if err != nil {
		t.Fatalf("CollectEntries() error = %v", err)
	}

	// Same content, entry order shuffled: the archives must be
	// byte-identical.
	reversed := make([]Entry, len(entries))
	for i, e := range entries {
		reversed[len(entries)-1-i] = e
	}

	first := filepath.Join(tmpDir, "first.zip")
	second := filepath.Join(tmpDir, "second.zip")
	if err := Build(first, entries, []string{jar}); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := Build(second, reversed, []string{jar}); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	a, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("Failed to read archive: %v", err)
	}
	b, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("Failed to read archive: %v", err)
	}
	if string(a) != string(b) {
		t.Error("archives over identical content differ")
	}
}

func TestBuild_JarNameCollision(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "out.zip")

	err := Build(dest, nil, []string{
		filepath.Join(tmpDir, "a", "dup-1.0.jar"),
		filepath.Join(tmpDir, "b", "dup-1.0.jar"),
	})

	var collision *resolve.NameCollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("Build() error = %v, want *NameCollisionError", err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("no archive should exist after a name collision")
	}
}

func TestBuild_MissingEntryFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "out.zip")

	err := Build(dest, []Entry{{Name: "gone.txt", Path: filepath.Join(tmpDir, "gone.txt")}}, nil)
	if err == nil {
		t.Fatal("Build() expected error for missing entry file")
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("partial archive should be removed on failure")
	}
}

func TestBuild_EmptyModule(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "out.zip")
	if err := Build(dest, nil, nil); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	names := zipNames(t, dest)
	if len(names) != 1 || names[0] != "lib/" {
		t.Errorf("archive names = %v, want just lib/", names)
	}
}

func TestEntryRoots(t *testing.T) {
	t.Parallel()

	roots := EntryRoots("/proj", filepath.Join("build", "classes"), []string{"src", "/abs/extra"})
	want := []string{
		filepath.Join("/proj", "build", "classes"),
		filepath.Join("/proj", "src"),
		"/abs/extra",
	}
	if len(roots) != len(want) {
		t.Fatalf("EntryRoots() = %v, want %v", roots, want)
	}
	for i := range want {
		if roots[i] != want[i] {
			t.Errorf("roots[%d] = %q, want %q", i, roots[i], want[i])
		}
	}
}
