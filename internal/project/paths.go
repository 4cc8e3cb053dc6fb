// SPDX-License-Identifier: MPL-2.0

package project

import "path/filepath"

// Path planning. Every function here is pure given the configuration:
// no I/O, no failure mode beyond an invalid module identity. Directory
// creation is the stage builder's and packager's job.

// DescriptorName is the module descriptor file name inside the staging
// directory, read by the platform at load time.
const DescriptorName = "mod.json"

// libDirName is the library subdirectory of a staged module.
const libDirName = "lib"

// ModsRoot returns the root directory holding all staged modules
// (build/mods), which the platform is pointed at when running.
func (c *Config) ModsRoot() string {
	return filepath.Join(c.Root, "build", "mods")
}

// StagingDir returns the staging directory for this module:
// build/mods/<owner>~<name>~<version>.
func (c *Config) StagingDir() (string, error) {
	id, err := c.Identity()
	if err != nil {
		return "", err
	}
	return filepath.Join(c.ModsRoot(), id), nil
}

// LibDir returns the library subdirectory of the staging directory.
func (c *Config) LibDir() (string, error) {
	staging, err := c.StagingDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(staging, libDirName), nil
}

// DepsCacheDir returns the shared dependency directory used by the
// standalone pulldeps workflow: build/mods/deps. It is shared across
// modules under the same build root.
func (c *Config) DepsCacheDir() string {
	return filepath.Join(c.ModsRoot(), "deps")
}

// DescriptorPath returns the mod.json location inside the staging
// directory.
func (c *Config) DescriptorPath() (string, error) {
	staging, err := c.StagingDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(staging, DescriptorName), nil
}

// ArchivePath returns the module bundle location:
// <target>/mods/<name>-<version>.zip. The containing directory is
// created by the packager, not here.
func (c *Config) ArchivePath() (string, error) {
	if _, err := c.Identity(); err != nil {
		return "", err
	}
	return filepath.Join(c.Root, c.TargetPath, "mods", c.Name+"-"+c.Version+".zip"), nil
}
