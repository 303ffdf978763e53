package scad

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestLinesLeafCommand(t *testing.T) {
	n := Command{Name: "sphere", Arguments: []Argument{{Name: "r", Value: 7.0}}}
	got, err := Lines(n)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"sphere(r=7);"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lines = %v, want %v", got, want)
	}
}

func TestLinesEmptyWrappersEmitNothing(t *testing.T) {
	for _, name := range []string{
		"union", "difference", "intersection", "minkowski", "hull",
		"render", "%", "#", "|", "*",
	} {
		got, err := Lines(Command{Name: name})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(got) != 0 {
			t.Errorf("empty %s emitted %v, want nothing", name, got)
		}
	}
}

func TestLinesEmptyLeafKeepsParens(t *testing.T) {
	got, err := Lines(Command{Name: "cube"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"cube();"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lines = %v, want %v", got, want)
	}
}

func TestLinesSingletonCollapse(t *testing.T) {
	child := Command{Name: "cube", Arguments: []Argument{
		{Name: "size", Value: []float64{1, 1, 1}},
		{Name: "center", Value: false},
	}}
	childLines, err := Lines(child)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"union", "difference", "intersection", "minkowski", "hull"} {
		got, err := Lines(Command{Name: name, Children: []Node{child}})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !reflect.DeepEqual(got, childLines) {
			t.Errorf("singleton %s = %v, want child lines %v", name, got, childLines)
		}
	}
}

func TestLinesSingletonNonCollapsing(t *testing.T) {
	child := Command{Name: "sphere", Arguments: []Argument{{Name: "r", Value: 2.0}}}
	n := Command{
		Name:      "translate",
		Arguments: []Argument{{Name: "v", Value: []float64{1, 0, 0}}},
		Children:  []Node{child},
	}
	got, err := Lines(n)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"translate(v=[1, 0, 0])",
		"sphere(r=2);",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lines = %v, want %v", got, want)
	}
}

func TestLinesMultiChildBlock(t *testing.T) {
	n := Command{Name: "difference", Children: []Node{
		Command{Name: "cube", Arguments: []Argument{
			{Name: "size", Value: []float64{2, 2, 2}},
			{Name: "center", Value: true},
		}},
		Command{Name: "sphere", Arguments: []Argument{{Name: "r", Value: 1.2}}},
	}}
	got, err := Render(n)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"difference {",
		"    cube(size=[2, 2, 2], center=true);",
		"    sphere(r=1.2);",
		"}",
	}, "\n")
	if got != want {
		t.Errorf("Render =\n%s\nwant\n%s", got, want)
	}
}

func TestLinesNestedIndentation(t *testing.T) {
	inner := Command{Name: "union", Children: []Node{
		Command{Name: "cube", Arguments: []Argument{{Name: "size", Value: 1.0}}},
		Command{Name: "sphere", Arguments: []Argument{{Name: "r", Value: 1.0}}},
	}}
	outer := Command{Name: "difference", Children: []Node{
		inner,
		Command{Name: "cylinder", Arguments: []Argument{
			{Name: "h", Value: 4.0},
			{Name: "r", Value: 0.5},
		}},
	}}
	got, err := Render(outer)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"difference {",
		"    union {",
		"        cube(size=1);",
		"        sphere(r=1);",
		"    }",
		"    cylinder(h=4, r=0.5);",
		"}",
	}, "\n")
	if got != want {
		t.Errorf("Render =\n%s\nwant\n%s", got, want)
	}
}

func TestLinesSingletonArglessHeaderKeepsParens(t *testing.T) {
	n := Command{Name: "render", Children: []Node{
		Command{Name: "sphere", Arguments: []Argument{{Name: "r", Value: 1.0}}},
	}}
	got, err := Lines(n)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"render()", "sphere(r=1);"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lines = %v, want %v", got, want)
	}
}

func TestLinesMarkerHeader(t *testing.T) {
	n := Command{Name: "%", Children: []Node{
		Command{Name: "sphere", Arguments: []Argument{{Name: "r", Value: 3.0}}},
	}}
	got, err := Lines(n)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"%", "sphere(r=3);"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lines = %v, want %v", got, want)
	}
}

func TestLinesComment(t *testing.T) {
	n := Comment{
		Text: "// the main body\n// do not resize",
		Child: Command{Name: "cube", Arguments: []Argument{
			{Name: "size", Value: 5.0},
		}},
	}
	got, err := Lines(n)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"// the main body", "// do not resize", "cube(size=5);"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lines = %v, want %v", got, want)
	}
}

func TestLinesPropagatesValueError(t *testing.T) {
	n := Command{Name: "union", Children: []Node{
		Command{Name: "cube", Arguments: []Argument{{Name: "size", Value: struct{}{}}}},
		Command{Name: "sphere", Arguments: []Argument{{Name: "r", Value: 1.0}}},
	}}
	if _, err := Lines(n); !errors.Is(err, ErrUnsupportedValue) {
		t.Errorf("Lines error = %v, want ErrUnsupportedValue", err)
	}
}

func TestRenderNoTrailingNewline(t *testing.T) {
	got, err := Render(Command{Name: "sphere", Arguments: []Argument{{Name: "r", Value: 1.0}}})
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasSuffix(got, "\n") {
		t.Errorf("Render ends with a newline: %q", got)
	}
}

func TestRenderEmptyTreeIsEmpty(t *testing.T) {
	got, err := Render(Command{Name: "union"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("Render = %q, want empty", got)
	}
}
