package scad

import (
	"fmt"
	"os"
	"strings"
)

// indentStep is the fixed indentation added per nesting level.
const indentStep = "    "

// markerNames are the single-character modifier commands. They emit their
// name alone, with no argument list.
var markerNames = map[string]bool{
	"%": true, // background
	"#": true, // debug
	"|": true, // root
	"*": true, // disable
}

// collapseNames lists the wrapping commands whose header is dropped when
// they hold exactly one child: wrapping a single object in a union (or any
// other boolean/aggregate) is a no-op.
var collapseNames = map[string]bool{
	"union":        true,
	"difference":   true,
	"intersection": true,
	"minkowski":    true,
	"hull":         true,
}

// noopNames lists the commands that emit nothing at all when they have no
// children: the collapse set, the markers, and render.
var noopNames = func() map[string]bool {
	m := map[string]bool{"render": true}
	for name := range collapseNames {
		m[name] = true
	}
	for name := range markerNames {
		m[name] = true
	}
	return m
}()

// Lines serializes a node tree into ordered script lines. It is pure and
// total over well-formed trees; the only failure mode is an argument value
// outside the closed union, reported via ErrUnsupportedValue.
func Lines(n Node) ([]string, error) {
	switch v := n.(type) {
	case Command:
		return commandLines(v)
	case Comment:
		lines := strings.Split(v.Text, "\n")
		childLines, err := Lines(v.Child)
		if err != nil {
			return nil, err
		}
		return append(lines, childLines...), nil
	}
	return nil, fmt.Errorf("scad: unknown node type %T", n)
}

func commandLines(c Command) ([]string, error) {
	header, err := commandHeader(c)
	if err != nil {
		return nil, err
	}

	switch len(c.Children) {
	case 0:
		if noopNames[c.Name] {
			return nil, nil
		}
		return []string{header + ";"}, nil

	case 1:
		// Single-statement body: no braces, child unindented.
		var lines []string
		if !collapseNames[c.Name] {
			lines = append(lines, header)
		}
		childLines, err := Lines(c.Children[0])
		if err != nil {
			return nil, err
		}
		return append(lines, childLines...), nil

	default:
		lines := []string{header + " {"}
		for _, child := range c.Children {
			childLines, err := Lines(child)
			if err != nil {
				return nil, err
			}
			for _, l := range childLines {
				lines = append(lines, indentStep+l)
			}
		}
		return append(lines, "}"), nil
	}
}

// commandHeader renders the command call without its child block. Markers
// emit their bare name. Multi-child block headers with no visible arguments
// omit the parentheses (difference {, not difference() {); every other
// header keeps them (render() over one child, cube(); as a leaf).
func commandHeader(c Command) (string, error) {
	if markerNames[c.Name] {
		return c.Name, nil
	}
	args, err := formatArguments(c.Arguments)
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.Name, err)
	}
	if args == "" && len(c.Children) >= 2 {
		return c.Name, nil
	}
	return c.Name + "(" + args + ")", nil
}

// Render serializes a node tree to a complete script. Lines are joined with
// newlines; no trailing newline is added.
func Render(n Node) (string, error) {
	lines, err := Lines(n)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// WriteFile renders the tree and writes the script to path.
func WriteFile(path string, n Node) error {
	text, err := Render(n)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}
