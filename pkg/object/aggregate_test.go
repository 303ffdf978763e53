package object

import (
	"strings"
	"testing"
)

func TestIDUSingleDifference(t *testing.T) {
	idu := NewIDU()
	idu.AddPositive(Cube(1))
	idu.AddNegative(Cube(2))

	want := strings.Join([]string{
		"difference {",
		"    cube(size=[1, 1, 1], center=false);",
		"    cube(size=[2, 2, 2], center=false);",
		"}",
	}, "\n")
	if got := render(t, idu.Object()); got != want {
		t.Errorf("render =\n%s\nwant\n%s", got, want)
	}
}

func TestIDUEmptyRendersNothing(t *testing.T) {
	if got := render(t, NewIDU().Object()); got != "" {
		t.Errorf("empty aggregator rendered %q", got)
	}
}

func TestIDUPositivesOnlyCollapseToUnion(t *testing.T) {
	idu := NewIDU()
	idu.AddPositive(Cube(1))
	idu.AddPositive(Sphere(2))

	want := strings.Join([]string{
		"union {",
		"    cube(size=[1, 1, 1], center=false);",
		"    sphere(r=2);",
		"}",
	}, "\n")
	if got := render(t, idu.Object()); got != want {
		t.Errorf("render =\n%s\nwant\n%s", got, want)
	}
}

func TestIDUSinglePositiveIsBare(t *testing.T) {
	idu := NewIDU()
	idu.AddPositive(Sphere(3))
	if got := render(t, idu.Object()); got != "sphere(r=3);" {
		t.Errorf("render = %q", got)
	}
}

func TestIDUFullShape(t *testing.T) {
	idu := NewIDU()
	idu.AddPositive(Cube(4))
	idu.AddPositive(Cube(5))
	idu.AddNegative(Sphere(1))
	idu.Intersect(Sphere(6))

	want := strings.Join([]string{
		"intersection {",
		"    difference {",
		"        union {",
		"            cube(size=[4, 4, 4], center=false);",
		"            cube(size=[5, 5, 5], center=false);",
		"        }",
		"        sphere(r=1);",
		"    }",
		"    sphere(r=6);",
		"}",
	}, "\n")
	if got := render(t, idu.Object()); got != want {
		t.Errorf("render =\n%s\nwant\n%s", got, want)
	}
}

func TestIDUHandleSeesLaterAdds(t *testing.T) {
	idu := NewIDU()
	handle := idu.Object()
	idu.AddPositive(Cube(1))

	if got := render(t, handle); got != "cube(size=[1, 1, 1], center=false);" {
		t.Errorf("handle render = %q", got)
	}
}

func TestIDUChildrenOrder(t *testing.T) {
	idu := NewIDU()
	idu.Intersect(Sphere(9))
	idu.AddNegative(Sphere(8))
	idu.AddPositive(Sphere(7))

	kids := idu.Object().Children()
	if len(kids) != 3 {
		t.Fatalf("children = %d, want 3", len(kids))
	}
	// Positives first, then negatives, then intersections, regardless of
	// insertion order.
	for i, want := range []string{"sphere(r=7);", "sphere(r=8);", "sphere(r=9);"} {
		if got := render(t, kids[i]); got != want {
			t.Errorf("child %d = %q, want %q", i, got, want)
		}
	}
}

func TestHull(t *testing.T) {
	h := NewHull(Sphere(1), Sphere(2).Translated(Vec3{X: 10}))
	want := strings.Join([]string{
		"hull {",
		"    sphere(r=1);",
		"    translate(v=[10, 0, 0])",
		"    sphere(r=2);",
		"}",
	}, "\n")
	if got := render(t, h.Object()); got != want {
		t.Errorf("render =\n%s\nwant\n%s", got, want)
	}
}

func TestHullSingletonCollapses(t *testing.T) {
	h := NewHull(Sphere(1))
	if got := render(t, h.Object()); got != "sphere(r=1);" {
		t.Errorf("render = %q", got)
	}
}

func TestHullEmptyRendersNothing(t *testing.T) {
	if got := render(t, NewHull().Object()); got != "" {
		t.Errorf("render = %q", got)
	}
}

func TestMinkowski(t *testing.T) {
	m := NewMinkowski(Cube(10))
	m.Add(Sphere(1))
	want := strings.Join([]string{
		"minkowski {",
		"    cube(size=[10, 10, 10], center=false);",
		"    sphere(r=1);",
		"}",
	}, "\n")
	if got := render(t, m.Object()); got != want {
		t.Errorf("render =\n%s\nwant\n%s", got, want)
	}
}

func TestAggregatorsNest(t *testing.T) {
	inner := NewIDU()
	inner.AddPositive(Cube(2))
	inner.AddNegative(Sphere(1))

	outer := NewHull(inner.Object(), Sphere(0.5).Translated(Vec3{X: 5}))
	got := render(t, outer.Object())
	if !strings.HasPrefix(got, "hull {\n    difference {") {
		t.Errorf("render =\n%s", got)
	}
}
