package object

import "github.com/chazu/scadtree/pkg/scad"

// Option adjusts the optional arguments of a primitive (center flag,
// facet resolution).
type Option func(args *[]scad.Argument)

// setArg replaces the named argument in place, or appends it.
func setArg(args *[]scad.Argument, name string, value any) {
	for i := range *args {
		if (*args)[i].Name == name {
			(*args)[i].Value = value
			return
		}
	}
	*args = append(*args, scad.Argument{Name: name, Value: value})
}

// Center places the primitive's center at the origin instead of its
// minimum corner.
func Center() Option {
	return func(args *[]scad.Argument) { setArg(args, "center", true) }
}

// FA sets the minimum fragment angle ($fa) for curved surfaces.
func FA(degrees float64) Option {
	return func(args *[]scad.Argument) { setArg(args, "$fa", degrees) }
}

// FS sets the minimum fragment size ($fs) for curved surfaces.
func FS(size float64) Option {
	return func(args *[]scad.Argument) { setArg(args, "$fs", size) }
}

// FN sets a fixed fragment count ($fn) for curved surfaces.
func FN(n int) Option {
	return func(args *[]scad.Argument) { setArg(args, "$fn", n) }
}

func primitive(name string, args []scad.Argument, opts []Option) Object {
	for _, opt := range opts {
		opt(&args)
	}
	return wrap(&module{name: name, args: args})
}

// Box creates a rectangular box with the given side lengths.
func Box(x, y, z float64, opts ...Option) Object {
	return primitive("cube", []scad.Argument{
		{Name: "size", Value: []float64{x, y, z}},
		{Name: "center", Value: false},
	}, opts)
}

// Cube creates a box with equal side lengths.
func Cube(size float64, opts ...Option) Object {
	return Box(size, size, size, opts...)
}

// Sphere creates a sphere of the given radius.
func Sphere(radius float64, opts ...Option) Object {
	return primitive("sphere", []scad.Argument{
		{Name: "r", Value: radius},
	}, opts)
}

// Cylinder creates a straight cylinder of the given height and radius.
func Cylinder(height, radius float64, opts ...Option) Object {
	return primitive("cylinder", []scad.Argument{
		{Name: "h", Value: height},
		{Name: "r", Value: radius},
		{Name: "center", Value: false},
	}, opts)
}

// Cone creates a tapered cylinder with distinct bottom and top radii.
func Cone(height, rBottom, rTop float64, opts ...Option) Object {
	return primitive("cylinder", []scad.Argument{
		{Name: "h", Value: height},
		{Name: "r1", Value: rBottom},
		{Name: "r2", Value: rTop},
		{Name: "center", Value: false},
	}, opts)
}

// Polyhedron creates a polyhedron from a point list and per-face point
// index lists.
func Polyhedron(points []Vec3, faces [][]int, convexity int) Object {
	pts := make([]any, len(points))
	for i, p := range points {
		pts[i] = p.Slice()
	}
	return wrap(&module{name: "polyhedron", args: []scad.Argument{
		{Name: "points", Value: pts},
		{Name: "faces", Value: faces},
		{Name: "convexity", Value: convexity},
	}})
}
