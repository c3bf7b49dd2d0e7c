// SPDX-License-Identifier: MPL-2.0

// modvet inspects game mod archives and folders and reports whether the
// game can load them, with badges and a flat list of issue flags.
package main

import cmd "modvet/cmd/modvet"

func main() {
	cmd.Execute()
}
