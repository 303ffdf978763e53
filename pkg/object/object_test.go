package object

import (
	"reflect"
	"strings"
	"testing"

	"github.com/chazu/scadtree/pkg/scad"
)

func render(t *testing.T, o Object) string {
	t.Helper()
	s, err := scad.Render(o.ToCommand())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestDecoratorChain(t *testing.T) {
	o := Sphere(2).
		Translated(Vec3{X: 1, Y: 0, Z: -3}).
		Scaled(Vec3{X: 2, Y: 2, Z: 1})

	want := strings.Join([]string{
		"scale(v=[2, 2, 1])",
		"translate(v=[1, 0, -3])",
		"sphere(r=2);",
	}, "\n")
	if got := render(t, o); got != want {
		t.Errorf("render =\n%s\nwant\n%s", got, want)
	}
}

func TestDecoratorsDoNotMutateReceiver(t *testing.T) {
	base := Cube(1)
	before := render(t, base)

	base.Translated(Vec3{X: 5})
	base.Colored("red")
	base.Named("thing")

	if after := render(t, base); after != before {
		t.Errorf("decorators mutated the receiver: %q -> %q", before, after)
	}
}

func TestToCommandIdempotent(t *testing.T) {
	o := Box(1, 2, 3).Rotated(Vec3{Z: 45}).Colored("green")
	first := o.ToCommand()
	second := o.ToCommand()
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated ToCommand calls yield different trees")
	}
}

func TestRotationForms(t *testing.T) {
	euler := render(t, Cube(1).Rotated(Vec3{X: 90, Z: 45}))
	if !strings.HasPrefix(euler, "rotate(a=[90, 0, 45])") {
		t.Errorf("Euler rotate = %q", euler)
	}

	axis := render(t, Cube(1).RotatedAround(Vec3{Z: 1}, 30))
	if !strings.HasPrefix(axis, "rotate(a=30, v=[0, 0, 1])") {
		t.Errorf("axis rotate = %q", axis)
	}
}

func TestColorForms(t *testing.T) {
	tests := []struct {
		name string
		obj  Object
		want string
	}{
		{"named", Cube(1).Colored("red"), `color(c="red")`},
		{"named with alpha", Cube(1).ColoredAlpha("red", 0.5), `color(c="red", alpha=0.5)`},
		{"rgb", Cube(1).ColoredRGB(1, 0, 0.25), "color(c=[1, 0, 0.25])"},
		{"rgba", Cube(1).ColoredRGBA(0, 1, 0, 0.8), "color(c=[0, 1, 0, 0.8])"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, tt.obj)
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("render = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestRenderModifier(t *testing.T) {
	got := render(t, Sphere(1).Rendered())
	want := "render()\nsphere(r=1);"
	if got != want {
		t.Errorf("Rendered = %q, want %q", got, want)
	}

	got = render(t, Sphere(1).RenderedConvexity(2))
	want = "render(convexity=2)\nsphere(r=1);"
	if got != want {
		t.Errorf("RenderedConvexity = %q, want %q", got, want)
	}
}

func TestMarkers(t *testing.T) {
	tests := []struct {
		name string
		obj  Object
		want string
	}{
		{"background", Cube(1).Background(), "%"},
		{"debug", Cube(1).Debug(), "#"},
		{"root", Cube(1).Root(), "|"},
		{"disable", Cube(1).Disabled(), "*"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, tt.obj)
			lines := strings.Split(got, "\n")
			if lines[0] != tt.want {
				t.Errorf("first line = %q, want %q", lines[0], tt.want)
			}
		})
	}
}

func TestNamedIsTransparentInOutput(t *testing.T) {
	plain := render(t, Cube(1))
	named := render(t, Cube(1).Named("body"))
	if plain != named {
		t.Errorf("Named changed the output: %q vs %q", plain, named)
	}
}

func TestCommented(t *testing.T) {
	o := Cube(1).Commented("load-bearing face")
	got := render(t, o)
	if !strings.HasPrefix(got, "// load-bearing face\n") {
		t.Errorf("render = %q", got)
	}
}

func TestFormatComment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single line", "hello", "// hello"},
		{"strips surrounding blanks", "\n\nhello\n\n", "// hello"},
		{"dedents common margin", "\n\t\tfirst\n\t\tsecond\n", "// first\n// second"},
		{"keeps relative indent", "  a\n    b", "// a\n//   b"},
		{"interior blank line", "a\n\nb", "// a\n//\n// b"},
		{"mixed tab and space indent", "\t\ta\n\t  b", "// \ta\n//   b"},
		{"no shared margin", "\ta\n  b", "// \ta\n//   b"},
		{"empty", "   \n  ", "//"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatComment(tt.in); got != tt.want {
				t.Errorf("formatComment(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestModuleEscapeHatch(t *testing.T) {
	o := Module("linear_extrude",
		[]scad.Argument{{Name: "height", Value: 10.0}},
		Module("circle", []scad.Argument{{Name: "r", Value: 3.0}}),
	)
	want := "linear_extrude(height=10)\ncircle(r=3);"
	if got := render(t, o); got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
}
