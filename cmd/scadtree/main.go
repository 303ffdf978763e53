// Command scadtree compiles scadtree Lisp sources into OpenSCAD scripts.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "scadtree",
	Short:         "Scene-graph compiler emitting OpenSCAD scripts",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(renderCmd)

	if err := rootCmd.Execute(); err != nil {
		errColor.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
