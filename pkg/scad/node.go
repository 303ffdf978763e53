// Package scad defines the frozen node model for OpenSCAD scripts and the
// serializer that turns a node tree into script text. Nodes are plain data:
// once built (normally by the object package) they are never mutated.
package scad

// Node is the serialization-ready representation of one scene element.
// It is either a Command or a Comment.
type Node interface {
	node() // marker method restricting implementations to this package
}

// Argument is one named command argument. Arguments keep the order in which
// they were given; OpenSCAD accepts named arguments in any order, but
// deterministic output requires a stable one. A nil Value means the argument
// is absent and is omitted from emission.
type Argument struct {
	Name  string
	Value any
}

// Command is a named OpenSCAD operation with ordered arguments and an
// ordered child list.
type Command struct {
	Name      string
	Arguments []Argument
	Children  []Node
}

func (Command) node() {}

// Comment wraps a single child with free-form comment lines. The text is
// emitted verbatim before the child's lines at the same indentation; the
// builder layer is responsible for "// " prefixes and dedenting.
type Comment struct {
	Text  string
	Child Node
}

func (Comment) node() {}
