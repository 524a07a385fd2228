// Command rangebar lets the user select a range with a two-handle slider in
// the terminal, and prints the selected range to stdout.
package main

import (
	"os"

	"src.elv.sh/rangebar/cmd/rangebar/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
