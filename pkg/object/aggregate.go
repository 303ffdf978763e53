package object

import "github.com/chazu/scadtree/pkg/scad"

// Aggregators hold owned, growable child lists and support in-place
// accumulation before being frozen. They are single-writer: concurrent Add
// calls need external synchronization.

func freeze(objects []Object) []scad.Node {
	nodes := make([]scad.Node, len(objects))
	for i, o := range objects {
		nodes[i] = o.ToCommand()
	}
	return nodes
}

// Hull accumulates objects combined into their convex hull.
type Hull struct {
	objects []Object
}

// NewHull creates a hull aggregator over the given objects.
func NewHull(objects ...Object) *Hull {
	return &Hull{objects: objects}
}

// Add appends a child object and returns the aggregator for chaining.
func (h *Hull) Add(o Object) *Hull {
	h.objects = append(h.objects, o)
	return h
}

// Object returns the fluent handle for this aggregator. The handle shares
// the aggregator's state: children added afterwards are still seen by
// ToCommand.
func (h *Hull) Object() Object { return wrap(h) }

func (h *Hull) toCommand() scad.Node {
	return scad.Command{Name: "hull", Children: freeze(h.objects)}
}

func (h *Hull) children() []Object { return h.objects }

// Minkowski accumulates objects combined by Minkowski sum.
type Minkowski struct {
	objects []Object
}

// NewMinkowski creates a Minkowski-sum aggregator over the given objects.
func NewMinkowski(objects ...Object) *Minkowski {
	return &Minkowski{objects: objects}
}

// Add appends a child object and returns the aggregator for chaining.
func (m *Minkowski) Add(o Object) *Minkowski {
	m.objects = append(m.objects, o)
	return m
}

// Object returns the fluent handle for this aggregator.
func (m *Minkowski) Object() Object { return wrap(m) }

func (m *Minkowski) toCommand() scad.Node {
	return scad.Command{Name: "minkowski", Children: freeze(m.objects)}
}

func (m *Minkowski) children() []Object { return m.objects }

// IDU is the intersection-difference-union aggregator. It holds three
// independently ordered lists and always freezes into the fixed shape
//
//	intersection {
//	    difference {
//	        union { positive objects }
//	        negative objects
//	    }
//	    intersection objects
//	}
//
// regardless of the order in which the lists were populated. Order within
// each list is preserved and affects only textual child order. Degenerate
// wrappers (empty union, single-child difference) are removed at emission
// time by the serializer, not here.
type IDU struct {
	positive  []Object
	negative  []Object
	intersect []Object
}

// NewIDU creates an empty intersection-difference-union aggregator.
func NewIDU() *IDU {
	return &IDU{}
}

// AddPositive appends an object to the union list.
func (u *IDU) AddPositive(o Object) *IDU {
	u.positive = append(u.positive, o)
	return u
}

// AddNegative appends an object to the subtraction list. It is subtracted
// from the union of all positive objects.
func (u *IDU) AddNegative(o Object) *IDU {
	u.negative = append(u.negative, o)
	return u
}

// Intersect appends an object to the intersection list.
func (u *IDU) Intersect(o Object) *IDU {
	u.intersect = append(u.intersect, o)
	return u
}

// Object returns the fluent handle for this aggregator.
func (u *IDU) Object() Object { return wrap(u) }

func (u *IDU) toCommand() scad.Node {
	union := scad.Command{Name: "union", Children: freeze(u.positive)}

	difference := scad.Command{
		Name:     "difference",
		Children: append([]scad.Node{union}, freeze(u.negative)...),
	}

	return scad.Command{
		Name:     "intersection",
		Children: append([]scad.Node{difference}, freeze(u.intersect)...),
	}
}

func (u *IDU) children() []Object {
	all := make([]Object, 0, len(u.positive)+len(u.negative)+len(u.intersect))
	all = append(all, u.positive...)
	all = append(all, u.negative...)
	all = append(all, u.intersect...)
	return all
}
