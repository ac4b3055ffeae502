package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/duckyflow/duckyflow/pkg/route"
	"github.com/duckyflow/duckyflow/pkg/script"
)

func testScene() *script.Script {
	s := script.New("view")
	s.Nodes = []script.Node{
		{ID: "a", Type: script.TypeCommand, Label: "Start"},
		{ID: "b", Type: script.TypeDelay, Y: 200, Label: "Wait"},
		{ID: "c", Type: script.TypeTextInput, X: 200, Y: 200, Label: "Type"},
	}
	s.Connections = []script.Connection{
		{ID: "c1", From: "a", To: "b"},
		{ID: "c2", From: "b", To: "c"},
	}
	return s
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Config
	}{
		{"empty", "", DefaultConfig()},
		{
			"all keys",
			"# settings\ncell_width = 10\ncell_height = \"20\"\nshow_strategy = true\n",
			Config{CellWidth: 10, CellHeight: 20, ShowStrategy: true},
		},
		{
			"bad values ignored",
			"cell_width = -3\ncell_height = abc\nshow_strategy = maybe\nunknown = 1\n",
			DefaultConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseConfig(tt.text); got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestCycleSelection(t *testing.T) {
	v := NewViewer(testScene(), "view.json", DefaultConfig())
	if v.selected != 0 {
		t.Fatalf("Expected first node selected, got %d", v.selected)
	}

	v.handleKey(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	if v.selected != 1 {
		t.Errorf("Expected selection 1 after Tab, got %d", v.selected)
	}
	v.handleKey(tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone))
	v.handleKey(tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone))
	if v.selected != 2 {
		t.Errorf("Expected selection to wrap to 2, got %d", v.selected)
	}
}

func TestMoveReplans(t *testing.T) {
	cfg := DefaultConfig()
	v := NewViewer(testScene(), "view.json", cfg)
	if len(v.plans) != 2 {
		t.Fatalf("Expected 2 plans, got %d", len(v.plans))
	}
	before := v.plans[0].From

	v.handleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	v.handleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))

	n := v.script.Nodes[0]
	if n.X != cfg.CellWidth || n.Y != cfg.CellHeight {
		t.Errorf("Expected node at (%v,%v), got (%v,%v)", cfg.CellWidth, cfg.CellHeight, n.X, n.Y)
	}
	want := before.Add(route.Point{X: cfg.CellWidth, Y: cfg.CellHeight})
	if v.plans[0].From != want {
		t.Errorf("Expected re-routed anchor %v, got %v", want, v.plans[0].From)
	}
}

func TestMoveKeepsView(t *testing.T) {
	s := script.New("pair")
	s.Nodes = []script.Node{
		{ID: "a", Type: script.TypeCommand},
		{ID: "c", Type: script.TypeCommand, X: 200},
	}
	v := NewViewer(s, "view.json", DefaultConfig())
	screen := func(id string) (int, int) {
		n, _ := v.script.Node(id)
		r := route.NodeBounds(n)
		col, row := v.grid.CellOf(route.Point{X: r.Left(), Y: r.Top()})
		return col - v.scrollX, row - v.scrollY
	}

	ax, ay := screen("a")
	cx, cy := screen("c")
	originX := v.grid.Origin.X

	// a is the leftmost node, so moving it left grows the grid.
	v.handleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if v.grid.Origin.X >= originX {
		t.Fatalf("Expected the grid origin to move left of %v, got %v", originX, v.grid.Origin.X)
	}
	if x, y := screen("c"); x != cx || y != cy {
		t.Errorf("Unmoved node shifted on screen from (%d,%d) to (%d,%d)", cx, cy, x, y)
	}
	if x, y := screen("a"); x != ax-1 || y != ay {
		t.Errorf("Expected moved node at (%d,%d), got (%d,%d)", ax-1, ay, x, y)
	}
}

func TestToggles(t *testing.T) {
	v := NewViewer(testScene(), "view.json", DefaultConfig())

	v.handleKey(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	if !v.showStrategy {
		t.Error("Expected strategy labels on")
	}
	v.handleKey(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone))
	if !v.highlightFallback {
		t.Error("Expected fallback highlight on")
	}
	if !v.handleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("Expected q to quit")
	}
	if !v.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Expected Esc to quit")
	}
}

func TestDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(80, 30)

	v := NewViewer(testScene(), "view.json", DefaultConfig())
	v.screen = screen
	v.draw()
	screen.Show()

	cells, w, h := screen.GetContents()
	var sb strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r := cells[y*w+x].Runes; len(r) > 0 {
				sb.WriteRune(r[0])
			}
		}
		sb.WriteByte('\n')
	}
	out := sb.String()

	for _, want := range []string{"Start", "Wait", "Type", "routes: 2", "fallback: 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected screen to contain %q:\n%s", want, out)
		}
	}
}
