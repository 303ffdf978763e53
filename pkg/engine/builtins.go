package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/scadtree/pkg/object"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix marks keyword arguments after preprocessing.
const kwPrefix = "__kw_"

// preprocessSource transforms scadtree Lisp source before it reaches
// zygomys:
//
//  1. :keyword -> "__kw_keyword" string literals, so keywords need no
//     global symbol registration and cannot collide with user variables.
//  2. kebab-case -> underscore (show-only -> show_only); zygomys reads a
//     hyphen between identifiers as subtraction.
//  3. ; line comments -> // line comments, zygomys's comment syntax.
//
// String literal boundaries are respected throughout.
func preprocessSource(source string) string {
	var out strings.Builder
	out.Grow(len(source) + len(source)/4)

	b := []byte(source)
	for i := 0; i < len(b); {
		switch {
		case b[i] == '"':
			i = copyQuoted(&out, b, i, '"', true)

		case b[i] == '`':
			i = copyQuoted(&out, b, i, '`', false)

		case b[i] == ';':
			out.WriteString("//")
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out.WriteByte(b[i])
				i++
			}

		case b[i] == ':' && i+1 < len(b) && b[i+1] == '=':
			out.WriteString(":=")
			i += 2

		case b[i] == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKeywordChar(b[j]) {
				j++
			}
			out.WriteByte('"')
			out.WriteString(kwPrefix)
			out.Write(b[i+1 : j])
			out.WriteByte('"')
			i = j

		case b[i] == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out.WriteByte('_')
			i++

		default:
			out.WriteByte(b[i])
			i++
		}
	}
	return out.String()
}

// copyQuoted copies a quoted literal starting at b[i] verbatim, honoring
// backslash escapes when escapes is true. Returns the index past the
// closing quote.
func copyQuoted(out *strings.Builder, b []byte, i int, quote byte, escapes bool) int {
	out.WriteByte(b[i])
	i++
	for i < len(b) && b[i] != quote {
		if escapes && b[i] == '\\' && i+1 < len(b) {
			out.WriteByte(b[i])
			out.WriteByte(b[i+1])
			i += 2
			continue
		}
		out.WriteByte(b[i])
		i++
	}
	if i < len(b) {
		out.WriteByte(b[i])
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKeywordChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpObject carries an object.Object through the zygomys environment.
type sexpObject struct {
	obj object.Object
}

func (s *sexpObject) SexpString(ps *zygo.PrintState) string { return "(scad-object)" }
func (s *sexpObject) Type() *zygo.RegisteredType            { return nil }

// sexpVec carries a Vec3 built by the vec3 builtin.
type sexpVec struct {
	vec object.Vec3
}

func (s *sexpVec) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", s.vec.X, s.vec.Y, s.vec.Z)
}
func (s *sexpVec) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwArgs is a parsed mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs splits args into keyword and positional arguments. Keywords are
// the __kw_-prefixed strings produced by preprocessSource.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); {
		name, ok := keywordName(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			i++
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
		} else {
			// Trailing keyword with no value: treat as a nil-valued flag.
			result.kw[name] = zygo.SexpNull
			i++
		}
	}
	return result
}

// keywordName reports whether s is a preprocessed keyword, returning the
// bare name.
func keywordName(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

func toBool(s zygo.Sexp) (bool, error) {
	if v, ok := s.(*zygo.SexpBool); ok {
		return v.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toObject(s zygo.Sexp) (object.Object, error) {
	if o, ok := s.(*sexpObject); ok {
		return o.obj, nil
	}
	return object.Object{}, fmt.Errorf("expected scad object, got %T (%s)", s, s.SexpString(nil))
}

// sexpSlice flattens a Lisp list or array into a Go slice.
func sexpSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toVec3 accepts a (vec3 ...) value or a literal 3-element list/array of
// numbers.
func toVec3(s zygo.Sexp) (object.Vec3, error) {
	if v, ok := s.(*sexpVec); ok {
		return v.vec, nil
	}
	items, err := sexpSlice(s)
	if err != nil {
		return object.Vec3{}, fmt.Errorf("expected vec3 or [x y z]: %w", err)
	}
	if len(items) != 3 {
		return object.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(items))
	}
	var v object.Vec3
	for i, dst := range []*float64{&v.X, &v.Y, &v.Z} {
		f, err := toFloat64(items[i])
		if err != nil {
			return object.Vec3{}, fmt.Errorf("component %d: %w", i, err)
		}
		*dst = f
	}
	return v, nil
}

func toStrings(s zygo.Sexp) ([]string, error) {
	items, err := sexpSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(items))
	for i, item := range items {
		str, err := toString(item)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out[i] = str
	}
	return out, nil
}

// facetOptions extracts the shared :center/:fa/:fs/:fn keywords into
// primitive options.
func facetOptions(pa kwArgs, context string) ([]object.Option, error) {
	var opts []object.Option
	if v, ok := pa.kw["center"]; ok {
		c, err := toBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: center: %w", context, err)
		}
		if c {
			opts = append(opts, object.Center())
		}
	}
	if v, ok := pa.kw["fa"]; ok {
		f, err := toFloat64(v)
		if err != nil {
			return nil, fmt.Errorf("%s: fa: %w", context, err)
		}
		opts = append(opts, object.FA(f))
	}
	if v, ok := pa.kw["fs"]; ok {
		f, err := toFloat64(v)
		if err != nil {
			return nil, fmt.Errorf("%s: fs: %w", context, err)
		}
		opts = append(opts, object.FS(f))
	}
	if v, ok := pa.kw["fn"]; ok {
		n, err := toInt(v)
		if err != nil {
			return nil, fmt.Errorf("%s: fn: %w", context, err)
		}
		opts = append(opts, object.FN(n))
	}
	return opts, nil
}

// positionalFloats extracts exactly n leading positional number arguments.
func positionalFloats(pa kwArgs, n int, context string) ([]float64, error) {
	if len(pa.positional) < n {
		return nil, fmt.Errorf("%s requires %d numeric arguments, got %d", context, n, len(pa.positional))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		f, err := toFloat64(pa.positional[i])
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", context, i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registry tracks the object selected for emission during one evaluation.
type registry struct {
	root *object.Object
}

// objectResult wraps an object builtin result.
func objectResult(o object.Object) (zygo.Sexp, error) {
	return &sexpObject{obj: o}, nil
}

// registerBuiltins installs the scadtree DSL into a zygomys environment.
// Builtins build object values; (emit obj) selects the script root. Source
// must be preprocessed with preprocessSource first.
func registerBuiltins(env *zygo.Zlisp, reg *registry) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		v, err := toVec3(&zygo.SexpArray{Val: args})
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: %w", err)
		}
		return &sexpVec{vec: v}, nil
	})

	// -----------------------------------------------------------------------
	// (box 10 10 5 :center true)
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		dims, err := positionalFloats(pa, 3, "box")
		if err != nil {
			return zygo.SexpNull, err
		}
		opts, err := facetOptions(pa, "box")
		if err != nil {
			return zygo.SexpNull, err
		}
		return objectResult(object.Box(dims[0], dims[1], dims[2], opts...))
	})

	// -----------------------------------------------------------------------
	// (cube 4 :center true)
	// -----------------------------------------------------------------------
	env.AddFunction("cube", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		size, err := positionalFloats(pa, 1, "cube")
		if err != nil {
			return zygo.SexpNull, err
		}
		opts, err := facetOptions(pa, "cube")
		if err != nil {
			return zygo.SexpNull, err
		}
		return objectResult(object.Cube(size[0], opts...))
	})

	// -----------------------------------------------------------------------
	// (sphere 7 :fn 64)
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		r, err := positionalFloats(pa, 1, "sphere")
		if err != nil {
			return zygo.SexpNull, err
		}
		opts, err := facetOptions(pa, "sphere")
		if err != nil {
			return zygo.SexpNull, err
		}
		return objectResult(object.Sphere(r[0], opts...))
	})

	// -----------------------------------------------------------------------
	// (cylinder 20 5 :center true :fn 32)
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		dims, err := positionalFloats(pa, 2, "cylinder")
		if err != nil {
			return zygo.SexpNull, err
		}
		opts, err := facetOptions(pa, "cylinder")
		if err != nil {
			return zygo.SexpNull, err
		}
		return objectResult(object.Cylinder(dims[0], dims[1], opts...))
	})

	// -----------------------------------------------------------------------
	// (cone 20 5 2)
	// -----------------------------------------------------------------------
	env.AddFunction("cone", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		dims, err := positionalFloats(pa, 3, "cone")
		if err != nil {
			return zygo.SexpNull, err
		}
		opts, err := facetOptions(pa, "cone")
		if err != nil {
			return zygo.SexpNull, err
		}
		return objectResult(object.Cone(dims[0], dims[1], dims[2], opts...))
	})

	// -----------------------------------------------------------------------
	// (polyhedron :points [[0 0 0] [1 0 0] [0 1 0] [0 0 1]]
	//             :faces [[0 1 2] [0 1 3] [0 2 3] [1 2 3]]
	//             :convexity 1)
	// -----------------------------------------------------------------------
	env.AddFunction("polyhedron", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		var points []object.Vec3
		if v, ok := pa.kw["points"]; ok {
			items, err := sexpSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polyhedron: points: %w", err)
			}
			for i, item := range items {
				p, err := toVec3(item)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("polyhedron: point %d: %w", i, err)
				}
				points = append(points, p)
			}
		}

		var faces [][]int
		if v, ok := pa.kw["faces"]; ok {
			items, err := sexpSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polyhedron: faces: %w", err)
			}
			for i, item := range items {
				idxs, err := sexpSlice(item)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("polyhedron: face %d: %w", i, err)
				}
				face := make([]int, len(idxs))
				for j, idx := range idxs {
					n, err := toInt(idx)
					if err != nil {
						return zygo.SexpNull, fmt.Errorf("polyhedron: face %d index %d: %w", i, j, err)
					}
					face[j] = n
				}
				faces = append(faces, face)
			}
		}

		convexity := 1
		if v, ok := pa.kw["convexity"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polyhedron: convexity: %w", err)
			}
			convexity = n
		}

		return objectResult(object.Polyhedron(points, faces, convexity))
	})

	// -----------------------------------------------------------------------
	// (translate obj [0 0 19])
	// -----------------------------------------------------------------------
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("translate requires an object and a vector")
		}
		o, err := toObject(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: %w", err)
		}
		v, err := toVec3(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: %w", err)
		}
		return objectResult(o.Translated(v))
	})

	// -----------------------------------------------------------------------
	// (rotate obj [x y z])            Euler angles in degrees
	// (rotate obj :angle 45 :axis [0 0 1])
	// -----------------------------------------------------------------------
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("rotate requires an object")
		}
		o, err := toObject(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
		}

		var spec object.RotationSpec
		if len(pa.positional) > 1 {
			v, err := toVec3(pa.positional[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rotate: angles: %w", err)
			}
			spec.Angles = &v
		}
		if v, ok := pa.kw["a"]; ok {
			if angles, err := toVec3(v); err == nil {
				spec.Angles = &angles
			} else {
				f, ferr := toFloat64(v)
				if ferr != nil {
					return zygo.SexpNull, fmt.Errorf("rotate: a: expected angles vector or number: %w", ferr)
				}
				spec.Angle = &f
			}
		}
		if v, ok := pa.kw["angle"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rotate: angle: %w", err)
			}
			spec.Angle = &f
		}
		if v, ok := pa.kw["axis"]; ok {
			axis, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rotate: axis: %w", err)
			}
			spec.Axis = &axis
		}

		rotated, err := object.Rotate(o, spec)
		if err != nil {
			return zygo.SexpNull, err
		}
		return objectResult(rotated)
	})

	// -----------------------------------------------------------------------
	// (scale obj [2 2 1]) / (mirror obj [1 0 0])
	// -----------------------------------------------------------------------
	for builtin, apply := range map[string]func(object.Object, object.Vec3) object.Object{
		"scale":  object.Object.Scaled,
		"mirror": object.Object.Mirrored,
	} {
		apply := apply
		context := builtin
		env.AddFunction(builtin, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			if len(pa.positional) < 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires an object and a vector", context)
			}
			o, err := toObject(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", context, err)
			}
			v, err := toVec3(pa.positional[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", context, err)
			}
			return objectResult(apply(o, v))
		})
	}

	// -----------------------------------------------------------------------
	// (color obj "green" :alpha 0.5) / (color obj [0.2 0.4 0.6])
	// -----------------------------------------------------------------------
	env.AddFunction("color", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("color requires an object and a color")
		}
		o, err := toObject(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("color: %w", err)
		}

		if c, err := toString(pa.positional[1]); err == nil {
			if v, ok := pa.kw["alpha"]; ok {
				alpha, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("color: alpha: %w", err)
				}
				return objectResult(o.ColoredAlpha(c, alpha))
			}
			return objectResult(o.Colored(c))
		}

		rgb, err := toVec3(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("color: expected color name or [r g b]: %w", err)
		}
		if v, ok := pa.kw["alpha"]; ok {
			alpha, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("color: alpha: %w", err)
			}
			return objectResult(o.ColoredRGBA(rgb.X, rgb.Y, rgb.Z, alpha))
		}
		return objectResult(o.ColoredRGB(rgb.X, rgb.Y, rgb.Z))
	})

	// -----------------------------------------------------------------------
	// (render obj :convexity 10)
	// -----------------------------------------------------------------------
	env.AddFunction("render", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("render requires an object")
		}
		o, err := toObject(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("render: %w", err)
		}
		if v, ok := pa.kw["convexity"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("render: convexity: %w", err)
			}
			return objectResult(o.RenderedConvexity(n))
		}
		return objectResult(o.Rendered())
	})

	// -----------------------------------------------------------------------
	// (background obj) (debug obj) (show-only obj) (disable obj)
	// -----------------------------------------------------------------------
	for builtin, apply := range map[string]func(object.Object) object.Object{
		"background": object.Object.Background,
		"debug":      object.Object.Debug,
		"show_only":  object.Object.Root,
		"disable":    object.Object.Disabled,
	} {
		apply := apply
		context := builtin
		env.AddFunction(builtin, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) < 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires an object", context)
			}
			o, err := toObject(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", context, err)
			}
			return objectResult(apply(o))
		})
	}

	// -----------------------------------------------------------------------
	// (union a b ...)                 all objects positive
	// (difference base cut ...)       first positive, rest negative
	// (intersection base other ...)   first positive, rest intersected
	// -----------------------------------------------------------------------
	for builtin, add := range map[string]func(*object.IDU, object.Object, bool){
		"union": func(u *object.IDU, o object.Object, first bool) {
			u.AddPositive(o)
		},
		"difference": func(u *object.IDU, o object.Object, first bool) {
			if first {
				u.AddPositive(o)
			} else {
				u.AddNegative(o)
			}
		},
		"intersection": func(u *object.IDU, o object.Object, first bool) {
			if first {
				u.AddPositive(o)
			} else {
				u.Intersect(o)
			}
		},
	} {
		add := add
		context := builtin
		env.AddFunction(builtin, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			idu := object.NewIDU()
			for i, arg := range args {
				o, err := toObject(arg)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: child %d: %w", context, i+1, err)
				}
				add(idu, o, i == 0)
			}
			return objectResult(idu.Object())
		})
	}

	// -----------------------------------------------------------------------
	// (hull a b ...) / (minkowski a b ...)
	// -----------------------------------------------------------------------
	env.AddFunction("hull", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		h := object.NewHull()
		for i, arg := range args {
			o, err := toObject(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("hull: child %d: %w", i+1, err)
			}
			h.Add(o)
		}
		return objectResult(h.Object())
	})

	env.AddFunction("minkowski", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		m := object.NewMinkowski()
		for i, arg := range args {
			o, err := toObject(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("minkowski: child %d: %w", i+1, err)
			}
			m.Add(o)
		}
		return objectResult(m.Object())
	})

	// -----------------------------------------------------------------------
	// (named obj "lid" :hide ["screws"])
	// -----------------------------------------------------------------------
	env.AddFunction("named", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("named requires an object and a name")
		}
		o, err := toObject(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("named: %w", err)
		}
		objName, err := toString(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("named: name: %w", err)
		}
		var hidden []string
		if v, ok := pa.kw["hide"]; ok {
			hidden, err = toStrings(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("named: hide: %w", err)
			}
		}
		return objectResult(o.Named(objName, hidden...))
	})

	// -----------------------------------------------------------------------
	// (comment obj "free-form text")
	// -----------------------------------------------------------------------
	env.AddFunction("comment", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("comment requires an object and text")
		}
		o, err := toObject(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("comment: %w", err)
		}
		text, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("comment: text: %w", err)
		}
		return objectResult(o.Commented(text))
	})

	// -----------------------------------------------------------------------
	// (emit obj) — select the script root; the last emit wins.
	// -----------------------------------------------------------------------
	env.AddFunction("emit", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("emit requires an object")
		}
		o, err := toObject(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("emit: %w", err)
		}
		reg.root = &o
		return args[0], nil
	})
}
