// SPDX-License-Identifier: MPL-2.0

// Package archive assembles the distributable module bundle: a zip
// holding every classpath entry from the configured entry-point roots
// plus a lib/ directory with a copy of each resolved dependency jar.
// Entries are written in sorted name order, making the archive a pure
// function of content rather than of filesystem enumeration order.
package archive

import (
	"archive/zip"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"modkit/internal/resolve"
)

// Entry is one classpath entry destined for the archive.
type Entry struct {
	// Name is the POSIX-style path of the entry inside the archive,
	// relative to its entry-point root.
	Name string
	// Path is the absolute filesystem location backing the entry.
	Path string
	// Dir marks directory entries, written with a trailing slash and
	// no content.
	Dir bool
}

// CollectEntries enumerates every filesystem entry under each root, in
// root order. Names are relativized against the owning root with
// separators normalized to '/'; the roots themselves produce no entry.
// Missing roots are skipped.
func CollectEntries(roots []string) ([]Entry, error) {
	var entries []Entry
	for _, root := range roots {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return fmt.Errorf("failed to relativize %s: %w", path, relErr)
			}
			if rel == "." {
				return nil
			}
			entries = append(entries, Entry{
				Name: filepath.ToSlash(rel),
				Path: path,
				Dir:  d.IsDir(),
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to enumerate %s: %w", root, err)
		}
	}
	return entries, nil
}

// Build writes the bundle at dest: one zip entry per classpath entry,
// then a lib/ directory entry, then one lib/<jarname> entry per
// resolved dependency. Both entry lists are written sorted by name so
// two builds over identical content produce identical bytes. The
// destination's parent directory is created if absent; on failure the
// partial archive is removed best-effort.
func Build(dest string, entries []Entry, jars []string) (err error) {
	if err := resolve.CheckJarNames(jars); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dest), err)
	}

	zipFile, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer func() {
		if closeErr := zipFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(dest) // Best-effort cleanup of the partial archive
		}
	}()

	zw := zip.NewWriter(zipFile)
	defer func() {
		if closeErr := zw.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, e := range sorted {
		if e.Dir {
			if _, createErr := zw.Create(e.Name + "/"); createErr != nil {
				return fmt.Errorf("failed to add directory entry %s: %w", e.Name, createErr)
			}
			continue
		}
		if addErr := addFile(zw, e.Name, e.Path); addErr != nil {
			return addErr
		}
	}

	if _, createErr := zw.Create("lib/"); createErr != nil {
		return fmt.Errorf("failed to add lib directory entry: %w", createErr)
	}

	sortedJars := make([]string, len(jars))
	copy(sortedJars, jars)
	sort.Slice(sortedJars, func(i, j int) bool {
		return filepath.Base(sortedJars[i]) < filepath.Base(sortedJars[j])
	})
	for _, jar := range sortedJars {
		name := "lib/" + filepath.ToSlash(filepath.Base(jar))
		if addErr := addFile(zw, name, jar); addErr != nil {
			return addErr
		}
	}

	return nil
}

// addFile writes one file entry with the given archive name.
func addFile(zw *zip.Writer, name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("failed to build header for %s: %w", name, err)
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to add entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write entry %s: %w", name, err)
	}
	return nil
}

// EntryRoots returns the configured entry-point roots for a module, in
// archive order: the compile output directory first, then each
// configured source-path root.
func EntryRoots(projectRoot, compileOutput string, sourcePaths []string) []string {
	roots := make([]string, 0, 1+len(sourcePaths))
	roots = append(roots, anchor(projectRoot, compileOutput))
	for _, p := range sourcePaths {
		roots = append(roots, anchor(projectRoot, p))
	}
	return roots
}

func anchor(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
