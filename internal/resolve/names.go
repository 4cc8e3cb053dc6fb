// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"fmt"
	"path/filepath"
)

// NameCollisionError reports two resolved dependencies that share the
// same jar file name. Staging and packaging key dependencies by simple
// name, so a collision would silently drop one artifact; it is a hard
// failure instead.
type NameCollisionError struct {
	// Name is the colliding jar file name.
	Name string
	// First and Second are the full paths of the colliding artifacts.
	First  string
	Second string
}

// Error implements the error interface.
func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("dependency name collision: %q is provided by both %s and %s", e.Name, e.First, e.Second)
}

// CheckJarNames verifies that all paths have distinct base names.
// Returns a *NameCollisionError for the first collision found.
func CheckJarNames(paths []string) error {
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		name := filepath.Base(p)
		if first, ok := seen[name]; ok {
			return &NameCollisionError{Name: name, First: first, Second: p}
		}
		seen[name] = p
	}
	return nil
}
