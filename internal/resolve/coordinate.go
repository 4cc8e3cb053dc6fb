// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"fmt"
	"strings"
)

// Dependency scopes. An empty scope is treated as "compile".
const (
	ScopeCompile  = "compile"
	ScopeProvided = "provided"
	ScopeTest     = "test"
)

// Coordinate identifies a library artifact in a Maven-layout repository.
type Coordinate struct {
	// Group is the artifact group id (e.g. "io.vertx").
	Group string `toml:"group"`
	// Artifact is the artifact id (e.g. "vertx-core").
	Artifact string `toml:"artifact"`
	// Version is the artifact version (e.g. "2.1.6").
	Version string `toml:"version"`
	// Scope is the dependency scope; "provided" and "test" coordinates
	// are excluded from module resolution.
	Scope string `toml:"scope,omitempty"`
}

// Validate checks that all required coordinate fields are present.
func (c Coordinate) Validate() error {
	if c.Group == "" || c.Artifact == "" || c.Version == "" {
		return fmt.Errorf("incomplete coordinate %s: group, artifact, and version are required", c)
	}
	return nil
}

// JarName returns the simple jar file name for the coordinate.
func (c Coordinate) JarName() string {
	return c.Artifact + "-" + c.Version + ".jar"
}

// RepoPath returns the slash-separated repository path of the jar,
// relative to a repository root.
func (c Coordinate) RepoPath() string {
	return strings.ReplaceAll(c.Group, ".", "/") + "/" + c.Artifact + "/" + c.Version + "/" + c.JarName()
}

// Resolvable reports whether the coordinate participates in module
// resolution. "provided" coordinates are supplied by the platform at
// run time and "test" coordinates never ship.
func (c Coordinate) Resolvable() bool {
	return c.Scope != ScopeProvided && c.Scope != ScopeTest
}

// String returns the conventional group:artifact:version form.
func (c Coordinate) String() string {
	return c.Group + ":" + c.Artifact + ":" + c.Version
}
