// Command sphinxctl writes to and queries the indexes of a Sphinx or
// Manticore daemon over SphinxQL.
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgHiRed).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
