// Package object provides the fluent scene-graph builder layer. Callers
// compose primitives, transforms and boolean aggregates into a tree of
// builder objects, then freeze the tree into an immutable scad.Node tree
// with ToCommand for serialization.
package object

import (
	"strings"

	"github.com/chazu/scadtree/pkg/scad"
)

// builder is the internal construction interface behind an Object.
type builder interface {
	// toCommand freezes the builder's current state into a command tree.
	toCommand() scad.Node
	// children returns the direct child objects, for tree traversal.
	children() []Object
}

// Object is the fluent handle around a scene builder. Decorator methods
// never mutate the receiver: each returns a new Object wrapping the receiver
// as its only child, so shared subtrees stay intact.
//
// The zero Object is not usable; construct objects with the primitive
// constructors, Module, or an aggregator's Object method.
type Object struct {
	b builder
}

func wrap(b builder) Object { return Object{b: b} }

// ToCommand freezes the object into an immutable command tree. It is a pure
// function of the current builder state and may be called repeatedly;
// successive calls on an unmodified tree yield structurally equal results.
func (o Object) ToCommand() scad.Node { return o.b.toCommand() }

// Children returns the object's direct children. Name lookup walks the
// builder tree through this; the serializer never does.
func (o Object) Children() []Object { return o.b.children() }

// module is the generic single-command builder: one named operation with
// arguments and children. Primitives, transforms and markers are all
// modules.
type module struct {
	name string
	args []scad.Argument
	kids []Object
}

func (m *module) toCommand() scad.Node {
	children := make([]scad.Node, len(m.kids))
	for i, c := range m.kids {
		children[i] = c.ToCommand()
	}
	return scad.Command{Name: m.name, Arguments: m.args, Children: children}
}

func (m *module) children() []Object { return m.kids }

// Module creates an object for an arbitrary named command. Most callers use
// the primitive constructors and decorator methods instead; Module is the
// escape hatch for commands this package has no helper for.
func Module(name string, args []scad.Argument, children ...Object) Object {
	return wrap(&module{name: name, args: args, kids: children})
}

// wrapIn returns a new object wrapping o in a single-child command.
func (o Object) wrapIn(name string, args ...scad.Argument) Object {
	return wrap(&module{name: name, args: args, kids: []Object{o}})
}

// Translated returns a new object moved by v.
func (o Object) Translated(v Vec3) Object {
	return o.wrapIn("translate", scad.Argument{Name: "v", Value: v.Slice()})
}

// Rotated returns a new object rotated by per-axis Euler angles in degrees.
func (o Object) Rotated(angles Vec3) Object {
	return o.wrapIn("rotate", scad.Argument{Name: "a", Value: angles.Slice()})
}

// RotatedAround returns a new object rotated by the given angle (degrees)
// around an arbitrary axis through the origin.
func (o Object) RotatedAround(axis Vec3, degrees float64) Object {
	return o.wrapIn("rotate",
		scad.Argument{Name: "a", Value: degrees},
		scad.Argument{Name: "v", Value: axis.Slice()})
}

// Scaled returns a new object with per-axis scaling applied.
func (o Object) Scaled(v Vec3) Object {
	return o.wrapIn("scale", scad.Argument{Name: "v", Value: v.Slice()})
}

// Mirrored returns a new object reflected across the plane through the
// origin with normal v.
func (o Object) Mirrored(v Vec3) Object {
	return o.wrapIn("mirror", scad.Argument{Name: "v", Value: v.Slice()})
}

// Colored returns a new object with a named color.
func (o Object) Colored(c string) Object {
	return o.wrapIn("color", scad.Argument{Name: "c", Value: c})
}

// ColoredAlpha returns a new object with a named color and opacity.
func (o Object) ColoredAlpha(c string, alpha float64) Object {
	return o.wrapIn("color",
		scad.Argument{Name: "c", Value: c},
		scad.Argument{Name: "alpha", Value: alpha})
}

// ColoredRGB returns a new object colored by RGB components in [0, 1].
func (o Object) ColoredRGB(r, g, b float64) Object {
	return o.wrapIn("color", scad.Argument{Name: "c", Value: []float64{r, g, b}})
}

// ColoredRGBA returns a new object colored by RGBA components in [0, 1].
func (o Object) ColoredRGBA(r, g, b, alpha float64) Object {
	return o.wrapIn("color", scad.Argument{Name: "c", Value: []float64{r, g, b, alpha}})
}

// Rendered returns a new object with forced CGAL rendering.
func (o Object) Rendered() Object {
	return o.wrapIn("render")
}

// RenderedConvexity returns a new object with forced rendering and an
// explicit convexity hint.
func (o Object) RenderedConvexity(convexity int) Object {
	return o.wrapIn("render", scad.Argument{Name: "convexity", Value: convexity})
}

// Background returns a new object treated as a background object (%).
func (o Object) Background() Object { return o.wrapIn("%") }

// Debug returns a new object highlighted as a debug object (#).
func (o Object) Debug() Object { return o.wrapIn("#") }

// Root returns a new object treated as the root object (|).
func (o Object) Root() Object { return o.wrapIn("|") }

// Disabled returns a new object ignored by the evaluator (*).
func (o Object) Disabled() Object { return o.wrapIn("*") }

// named attaches a lookup name to a single child. It does not affect
// emission. hidden lists descendant names excluded from Find below this
// wrapper.
type named struct {
	name   string
	hidden map[string]bool
	child  Object
}

func (n *named) toCommand() scad.Node { return n.child.ToCommand() }
func (n *named) children() []Object   { return []Object{n.child} }

// Named attaches a lookup name to the object for Find. Any hidden names
// given are pruned from searches descending below this wrapper.
func (o Object) Named(name string, hidden ...string) Object {
	h := make(map[string]bool, len(hidden))
	for _, n := range hidden {
		h[n] = true
	}
	return wrap(&named{name: name, hidden: h, child: o})
}

// commented attaches display comment lines to a single child.
type commented struct {
	text  string
	child Object
}

func (c *commented) toCommand() scad.Node {
	return scad.Comment{Text: c.text, Child: c.child.ToCommand()}
}

func (c *commented) children() []Object { return []Object{c.child} }

// Commented returns a new object with a comment emitted before it.
// Multi-line text is dedented and each line prefixed with "// ".
func (o Object) Commented(text string) Object {
	return wrap(&commented{text: formatComment(text), child: o})
}

// formatComment normalizes free-form comment text into emit-ready lines:
// surrounding blank lines dropped, common leading whitespace removed, each
// line prefixed with the line-comment marker.
func formatComment(text string) string {
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return "//"
	}

	// The margin is the longest whitespace prefix shared by all non-blank
	// lines, so mixed tab and space indentation never slices mid-character.
	margin := ""
	haveMargin := false
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		indent := l[:len(l)-len(strings.TrimLeft(l, " \t"))]
		if !haveMargin {
			margin, haveMargin = indent, true
			continue
		}
		for !strings.HasPrefix(indent, margin) {
			margin = margin[:len(margin)-1]
		}
	}

	out := make([]string, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			out[i] = "//"
			continue
		}
		out[i] = "// " + l[len(margin):]
	}
	return strings.Join(out, "\n")
}
