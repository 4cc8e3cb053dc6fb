// SPDX-License-Identifier: MPL-2.0

package resolve

// platformVersion pins the runtime platform release whose jars make up
// the run classpath. Bumping it is a coordinated change with the
// bootstrap class in internal/launch.
const platformVersion = "2.1.6"

// PlatformDependencies returns the pinned platform-runtime coordinate
// set. These jars are used only to build the classpath for `run`; they
// are never staged into a module.
func PlatformDependencies() []Coordinate {
	return []Coordinate{
		{Group: "io.vertx", Artifact: "vertx-core", Version: platformVersion},
		{Group: "io.vertx", Artifact: "vertx-platform", Version: platformVersion},
		{Group: "io.vertx", Artifact: "vertx-hazelcast", Version: platformVersion},
		{Group: "io.netty", Artifact: "netty-all", Version: "4.0.21.Final"},
		{Group: "com.fasterxml.jackson.core", Artifact: "jackson-core", Version: "2.2.2"},
		{Group: "com.fasterxml.jackson.core", Artifact: "jackson-databind", Version: "2.2.2"},
		{Group: "com.fasterxml.jackson.core", Artifact: "jackson-annotations", Version: "2.2.2"},
	}
}

// DefaultRepositories returns the repository base URLs consulted when
// the tool configuration does not override them.
func DefaultRepositories() []string {
	return []string{
		"https://repo1.maven.org/maven2",
		"https://oss.sonatype.org/content/repositories/releases",
	}
}
