// SPDX-License-Identifier: MPL-2.0

// modkit builds, packages, and runs platform modules.
package main

import cmd "modkit/cmd/modkit"

func main() {
	cmd.Execute()
}
