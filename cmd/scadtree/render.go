package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chazu/scadtree/pkg/engine"
)

var (
	errColor  = color.New(color.FgRed)
	okColor   = color.New(color.FgGreen)
	lineColor = color.New(color.FgYellow)
)

var (
	renderOut    string
	renderConfig string
)

var renderCmd = &cobra.Command{
	Use:   "render <source>",
	Short: "Evaluate a scadtree script and write the OpenSCAD output",
	Long: `Render evaluates a scadtree Lisp source file and writes the emitted
OpenSCAD script. The output path defaults to the source name with a .scad
extension, or to the manifest's output setting.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output path (default: source name with .scad)")
	renderCmd.Flags().StringVarP(&renderConfig, "config", "c", "", "project manifest (default: scadtree.toml beside the source)")
}

func runRender(cmd *cobra.Command, args []string) error {
	srcPath := args[0]
	source, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}

	cfg, err := configFor(srcPath, renderConfig)
	if err != nil {
		return err
	}

	script, evalErrs, err := engine.NewEngine().Evaluate(string(source))
	if err != nil {
		return err
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			if e.Line > 0 {
				lineColor.Fprintf(os.Stderr, "%s:%d: ", srcPath, e.Line)
			} else {
				lineColor.Fprintf(os.Stderr, "%s: ", srcPath)
			}
			errColor.Fprintln(os.Stderr, e.Message)
		}
		return fmt.Errorf("%d evaluation error(s)", len(evalErrs))
	}

	outPath := renderOut
	if outPath == "" {
		outPath = cfg.Output
	}
	if outPath == "" {
		outPath = strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + ".scad"
	}

	if header := cfg.headerLines(); len(header) > 0 {
		script = strings.Join(header, "\n") + "\n" + script
	}

	if err := os.WriteFile(outPath, []byte(script), 0o644); err != nil {
		return err
	}
	okColor.Printf("wrote %s\n", outPath)
	return nil
}
