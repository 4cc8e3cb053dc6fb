// SPDX-License-Identifier: MPL-2.0

// Package descriptor writes the module descriptor (mod.json) that the
// runtime platform reads at load time. The schema is explicit: a small
// set of enumerated keys plus an open pass-through map for
// platform-specific extension keys.
package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"modkit/internal/project"
)

// Descriptor is the module metadata written to mod.json.
type Descriptor struct {
	// Main is the module entry point. Required.
	Main string
	// Description, Homepage, and Licenses are optional metadata.
	Description string
	Homepage    string
	Licenses    []string
	// Extra are pass-through keys copied into the descriptor verbatim.
	// A "main" key here is ignored; the entry point is always the
	// typed field.
	Extra map[string]any
}

// SerializationError is returned when descriptor metadata cannot be
// encoded as JSON (e.g. a function value smuggled into Extra).
type SerializationError struct {
	Err error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("descriptor is not serializable: %v", e.Err)
}

// Unwrap returns the underlying encoding error.
func (e *SerializationError) Unwrap() error { return e.Err }

// FromProject builds the descriptor from project configuration.
func FromProject(cfg *project.Config) *Descriptor {
	return &Descriptor{
		Main:        cfg.Main,
		Description: cfg.Description,
		Homepage:    cfg.Homepage,
		Licenses:    cfg.Licenses,
		Extra:       cfg.Extra,
	}
}

// document flattens the descriptor into the JSON object written to
// disk. Map key order is irrelevant; encoding/json sorts keys, which
// keeps rewrites byte-stable.
func (d *Descriptor) document() map[string]any {
	doc := make(map[string]any, len(d.Extra)+4)
	for k, v := range d.Extra {
		if k == "main" {
			continue
		}
		doc[k] = v
	}
	doc["main"] = d.Main
	if d.Description != "" {
		doc["description"] = d.Description
	}
	if d.Homepage != "" {
		doc["homepage"] = d.Homepage
	}
	if len(d.Licenses) > 0 {
		doc["licenses"] = d.Licenses
	}
	return doc
}

// Write serializes the descriptor as UTF-8 JSON at path, overwriting
// any existing file. Forward slashes are left unescaped so URLs stay
// readable. Nothing touches the filesystem unless the whole document
// encodes successfully.
func (d *Descriptor) Write(path string) error {
	if d.Main == "" {
		return fmt.Errorf("%w: descriptor requires a main entry point", project.ErrInvalidConfig)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d.document()); err != nil {
		return &SerializationError{Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write descriptor: %w", err)
	}
	return nil
}
