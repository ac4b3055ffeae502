package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/duckyflow/duckyflow/pkg/route"
	"github.com/duckyflow/duckyflow/pkg/script"
)

// stacked returns two nodes, one above the other, joined by a clear
// direct route from (56,56) to (56,294).
func stacked(t *testing.T) (*script.Script, []route.ConnectionPlan) {
	t.Helper()
	s := script.New("Stacked")
	s.Nodes = []script.Node{
		{ID: "a", Type: script.TypeCommand, X: 0, Y: 0, Label: "Hello"},
		{ID: "b", Type: script.TypeDelay, X: 0, Y: 300, Label: "Wait"},
	}
	s.Connections = []script.Connection{{ID: "c", From: "a", To: "b"}}
	plans, err := route.NewRouter(route.DefaultOptions()).PlanScript(s)
	if err != nil {
		t.Fatalf("PlanScript failed: %v", err)
	}
	return s, plans
}

func TestPathData(t *testing.T) {
	tests := []struct {
		name string
		path route.Path
		want string
	}{
		{"empty", route.Path{}, ""},
		{
			"line",
			route.Path{Segments: []route.Segment{route.Line(route.Point{X: 56, Y: 56}, route.Point{X: 56, Y: 294})}},
			"M 56 56 L 56 294",
		},
		{
			"polyline",
			route.Path{Segments: []route.Segment{
				route.Line(route.Point{X: 0, Y: 0}, route.Point{X: 0, Y: 23.8}),
				route.Line(route.Point{X: 0, Y: 23.8}, route.Point{X: 60, Y: 23.8}),
			}},
			"M 0 0 L 0 23.8 L 60 23.8",
		},
		{
			"quad",
			route.Path{Segments: []route.Segment{route.Quad(route.Point{X: 0, Y: 0}, route.Point{X: -40, Y: 50}, route.Point{X: 0, Y: 100})}},
			"M 0 0 Q -40 50 0 100",
		},
		{
			"rounded",
			route.Path{Segments: []route.Segment{route.Line(route.Point{X: -0.001, Y: 1.23456}, route.Point{X: 2, Y: 3})}},
			"M 0 1.23 L 2 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PathData(tt.path); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	if b := Bounds(script.New("empty"), nil); b != (route.Rect{}) {
		t.Errorf("Expected zero bounds for empty scene, got %+v", b)
	}

	s, plans := stacked(t)
	b := Bounds(s, plans)
	want := route.Rect{X: 0, Y: 0, Width: 112, Height: 350}
	if b != want {
		t.Errorf("Expected %+v, got %+v", want, b)
	}
}

func TestSVG(t *testing.T) {
	s, plans := stacked(t)
	opts := DefaultSVGOptions()
	opts.ShowStrategy = true

	var buf bytes.Buffer
	if err := SVG(&buf, s, plans, opts); err != nil {
		t.Fatalf("SVG failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<svg",
		`d="M 56 56 L 56 294"`,
		`marker-end="url(#arrow)"`,
		">Hello<",
		">Wait<",
		">direct<",
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected SVG to contain %q", want)
		}
	}
}

func TestSVGFallbackStyle(t *testing.T) {
	from, to := route.Point{X: 0, Y: 0}, route.Point{X: 0, Y: 100}
	best, fallback := route.Select(nil, from, to)
	plans := []route.ConnectionPlan{{Plan: route.Plan{From: from, To: to, Best: best, Fallback: fallback}}}

	var buf bytes.Buffer
	if err := SVG(&buf, script.New("f"), plans, DefaultSVGOptions()); err != nil {
		t.Fatalf("SVG failed: %v", err)
	}
	if !strings.Contains(buf.String(), "url(#arrow-fallback)") {
		t.Error("Expected fallback marker on fallback route")
	}
}

func TestPNG(t *testing.T) {
	s, plans := stacked(t)

	var buf bytes.Buffer
	if err := PNG(&buf, s, plans, DefaultPNGOptions()); err != nil {
		t.Fatalf("PNG failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	// (112 + 2*40) * 2 by (350 + 2*40) * 2
	if b := img.Bounds(); b.Dx() != 384 || b.Dy() != 860 {
		t.Errorf("Expected 384x860, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestPNGTooLarge(t *testing.T) {
	s := script.New("big")
	s.Nodes = []script.Node{
		{ID: "a", Type: script.TypeCommand, X: 0, Y: 0},
		{ID: "b", Type: script.TypeCommand, X: 100000, Y: 0},
	}
	var buf bytes.Buffer
	if err := PNG(&buf, s, nil, DefaultPNGOptions()); err == nil {
		t.Error("Expected size error")
	}
}

func TestGridNode(t *testing.T) {
	s := script.New("one")
	s.Nodes = []script.Node{{ID: "n1", Type: script.TypeCommand, Label: "Hello"}}
	g := NewGrid(s, nil, DefaultGridOptions())

	// origin (-8,-16): the box spans columns 1..15 and rows 1..4
	if g.Cols != 17 || g.Rows != 7 {
		t.Fatalf("Expected 17x7 grid, got %dx%d", g.Cols, g.Rows)
	}
	tests := []struct {
		col, row int
		want     rune
	}{
		{1, 1, '┌'},
		{15, 1, '┐'},
		{1, 4, '└'},
		{15, 4, '┘'},
		{6, 2, 'H'},
		{10, 2, 'o'},
		{0, 0, ' '},
	}
	for _, tt := range tests {
		if got := g.At(tt.col, tt.row).Rune; got != tt.want {
			t.Errorf("At(%d,%d): expected %q, got %q", tt.col, tt.row, tt.want, got)
		}
	}
	if c := g.At(6, 2); c.Kind != CellLabel || c.Node != "n1" {
		t.Errorf("Expected label cell of n1, got %+v", c)
	}
	if !strings.Contains(g.String(), "Hello") {
		t.Errorf("Expected label in text output:\n%s", g.String())
	}
}

func TestGridHugeNode(t *testing.T) {
	s := script.New("huge")
	s.Nodes = []script.Node{{ID: "big", Type: script.TypeCommand, Width: 2e6, Height: 2e6}}
	g := NewGrid(s, nil, DefaultGridOptions())

	if g.Cols != maxGridSide || g.Rows != maxGridSide {
		t.Fatalf("Expected %dx%d grid, got %dx%d", maxGridSide, maxGridSide, g.Cols, g.Rows)
	}
	if got := g.At(1, 1).Rune; got != '┌' {
		t.Errorf("Expected top-left corner, got %q", got)
	}
	if c := g.At(300, 300); c.Kind != CellLabel || c.Node != "big" {
		t.Errorf("Expected interior cell of big, got %+v", c)
	}
	if c := g.At(maxGridSide-1, 5); c.Kind != CellLabel {
		t.Errorf("Expected clipped right edge to stay interior, got %+v", c)
	}
}

func TestGridPath(t *testing.T) {
	s, plans := stacked(t)
	g := NewGrid(s, plans, DefaultGridOptions())

	col, row := g.CellOf(route.Point{X: 56, Y: 150})
	if c := g.At(col, row); c.Rune != '│' || c.Kind != CellPath {
		t.Errorf("Expected vertical path cell, got %+v", c)
	}
	col, row = g.CellOf(plans[0].To)
	if c := g.At(col, row); c.Rune != 'v' || c.Kind != CellArrow {
		t.Errorf("Expected downward arrow at destination, got %+v", c)
	}
}

func TestGridFallbackKind(t *testing.T) {
	from, to := route.Point{X: 0, Y: 0}, route.Point{X: 200, Y: 0}
	best, fallback := route.Select(nil, from, to)
	plans := []route.ConnectionPlan{{Plan: route.Plan{From: from, To: to, Best: best, Fallback: fallback}}}

	g := NewGrid(script.New("f"), plans, DefaultGridOptions())
	col, row := g.CellOf(route.Point{X: 100, Y: 0})
	if c := g.At(col, row); c.Kind != CellFallback || c.Rune != '─' {
		t.Errorf("Expected horizontal fallback cell, got %+v", c)
	}
	col, row = g.CellOf(to)
	if c := g.At(col, row); c.Rune != '>' {
		t.Errorf("Expected right arrow, got %q", c.Rune)
	}
}

func TestGridOutside(t *testing.T) {
	g := NewGrid(script.New("empty"), nil, GridOptions{})
	if c := g.At(-1, 500); c.Rune != ' ' || c.Kind != CellEmpty {
		t.Errorf("Expected empty cell outside grid, got %+v", c)
	}
}
