// Command duckyview is a terminal previewer for routed DuckyScript canvases.
// Nodes can be moved with the keyboard; every move re-routes all
// connections.
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/duckyflow/duckyflow/pkg/render"
	"github.com/duckyflow/duckyflow/pkg/route"
	"github.com/duckyflow/duckyflow/pkg/script"
	"github.com/duckyflow/duckyflow/pkg/scriptfile"
)

// Config holds viewer settings
type Config struct {
	CellWidth    float64 // canvas units per terminal column
	CellHeight   float64 // canvas units per terminal row
	ShowStrategy bool
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	g := render.DefaultGridOptions()
	return Config{
		CellWidth:  g.CellWidth,
		CellHeight: g.CellHeight,
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".duckyview"
	}
	return filepath.Join(home, ".duckyview")
}

// LoadConfig loads configuration from the config file, if there is one.
func LoadConfig() Config {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		return DefaultConfig()
	}
	return parseConfig(string(data))
}

// parseConfig reads key = value lines. Unknown keys and bad values are
// ignored.
func parseConfig(text string) Config {
	cfg := DefaultConfig()
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.Trim(strings.TrimSpace(val), "\"")

		switch key {
		case "cell_width":
			if v, err := strconv.ParseFloat(val, 64); err == nil && v > 0 {
				cfg.CellWidth = v
			}
		case "cell_height":
			if v, err := strconv.ParseFloat(val, 64); err == nil && v > 0 {
				cfg.CellHeight = v
			}
		case "show_strategy":
			if v, err := strconv.ParseBool(val); err == nil {
				cfg.ShowStrategy = v
			}
		}
	}
	return cfg
}

// Viewer holds all viewer state
type Viewer struct {
	screen   tcell.Screen
	script   *script.Script
	filename string
	config   Config
	router   *route.Router

	plans    []route.ConnectionPlan
	grid     *render.Grid
	selected int // index into script.Nodes, -1 for none

	showStrategy      bool
	highlightFallback bool
	scrollX, scrollY  int
	message           string
}

// NewViewer creates a viewer for s and routes it once.
func NewViewer(s *script.Script, filename string, cfg Config) *Viewer {
	v := &Viewer{
		script:       s,
		filename:     filename,
		config:       cfg,
		router:       route.NewRouter(route.DefaultOptions()),
		selected:     -1,
		showStrategy: cfg.ShowStrategy,
	}
	if len(s.Nodes) > 0 {
		v.selected = 0
	}
	v.replan()
	return v
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: duckyview <scene.json>")
		os.Exit(1)
	}

	filename := os.Args[1]
	s, err := scriptfile.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", filename, err)
		os.Exit(1)
	}
	v := NewViewer(s, filename, LoadConfig())

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.Clear()
	v.screen = screen

	v.run()

	screen.Fini()
}

func (v *Viewer) run() {
	for {
		v.draw()
		v.screen.Show()

		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		}
	}
}

// handleKey applies a key press. Returns true when the viewer should quit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	if ev.Modifiers()&tcell.ModShift != 0 {
		switch ev.Key() {
		case tcell.KeyUp:
			v.scrollY--
			return false
		case tcell.KeyDown:
			v.scrollY++
			return false
		case tcell.KeyLeft:
			v.scrollX--
			return false
		case tcell.KeyRight:
			v.scrollX++
			return false
		}
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyTab:
		v.cycle(1)
	case tcell.KeyBacktab:
		v.cycle(-1)
	case tcell.KeyUp:
		v.moveSelected(0, -1)
	case tcell.KeyDown:
		v.moveSelected(0, 1)
	case tcell.KeyLeft:
		v.moveSelected(-1, 0)
	case tcell.KeyRight:
		v.moveSelected(1, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 's':
			v.showStrategy = !v.showStrategy
			v.replan()
		case 'f':
			v.highlightFallback = !v.highlightFallback
		}
	}
	return false
}

// cycle moves the selection forward or backward through the nodes.
func (v *Viewer) cycle(step int) {
	n := len(v.script.Nodes)
	if n == 0 {
		return
	}
	v.selected = ((v.selected+step)%n + n) % n
	v.message = ""
}

// moveSelected shifts the selected node by whole cells and re-routes.
func (v *Viewer) moveSelected(dx, dy int) {
	if v.selected < 0 || v.selected >= len(v.script.Nodes) {
		return
	}
	n := &v.script.Nodes[v.selected]
	n.X += float64(dx) * v.config.CellWidth
	n.Y += float64(dy) * v.config.CellHeight
	v.replan()
}

// replan routes every connection again and rebuilds the grid.
func (v *Viewer) replan() {
	plans, err := v.router.PlanScript(v.script)
	if err != nil {
		v.message = err.Error()
		plans = nil
	}
	v.plans = plans
	prev := v.grid
	v.grid = render.NewGrid(v.script, plans, render.GridOptions{
		CellWidth:    v.config.CellWidth,
		CellHeight:   v.config.CellHeight,
		ShowStrategy: v.showStrategy,
	})
	if prev != nil {
		// Keep unmoved nodes at the same screen cells when the grid
		// origin follows the scene bounds.
		v.scrollX += int(math.Round((prev.Origin.X - v.grid.Origin.X) / v.config.CellWidth))
		v.scrollY += int(math.Round((prev.Origin.Y - v.grid.Origin.Y) / v.config.CellHeight))
	}
}

// fallbackCount returns how many connections found no clear route.
func (v *Viewer) fallbackCount() int {
	count := 0
	for _, cp := range v.plans {
		if cp.Fallback {
			count++
		}
	}
	return count
}
