// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/devinstaller/devinstaller/cmd/devinstaller"

func main() {
	cmd.Execute()
}
