// Character-cell rendering for terminals.

package render

import (
	"math"
	"strings"

	"github.com/duckyflow/duckyflow/pkg/route"
	"github.com/duckyflow/duckyflow/pkg/script"
)

// GridOptions configures character-cell rendering.
type GridOptions struct {
	CellWidth    float64 // canvas units per column
	CellHeight   float64 // canvas units per row
	ShowStrategy bool
}

// DefaultGridOptions returns a cell size that keeps default nodes legible.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		CellWidth:  8,
		CellHeight: 16,
	}
}

// maxGridSide caps each grid dimension in cells.
const maxGridSide = 1000

// CellKind says what occupies a grid cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellPath
	CellFallback // part of a path that ignores obstacles
	CellArrow
	CellNode  // node border
	CellLabel // text inside a node
	CellNote  // strategy annotation
)

// Cell is one character of a grid.
type Cell struct {
	Rune rune
	Kind CellKind
	Node string // owning node id for CellNode and CellLabel
}

// Grid is a character raster of a routed script.
type Grid struct {
	Cols, Rows int
	Origin     route.Point // canvas position of the top-left cell
	opts       GridOptions
	cells      []Cell
	dirs       []uint8
}

const (
	dirH uint8 = 1 << iota
	dirV
	dirD
)

// NewGrid rasterizes the script's nodes and the planned paths.
func NewGrid(s *script.Script, plans []route.ConnectionPlan, opts GridOptions) *Grid {
	if opts.CellWidth <= 0 || opts.CellHeight <= 0 {
		d := DefaultGridOptions()
		opts.CellWidth, opts.CellHeight = d.CellWidth, d.CellHeight
	}

	b := Bounds(s, plans)
	g := &Grid{opts: opts}
	g.Origin = route.Point{
		X: (math.Floor(b.X/opts.CellWidth) - 1) * opts.CellWidth,
		Y: (math.Floor(b.Y/opts.CellHeight) - 1) * opts.CellHeight,
	}
	g.Cols = clampSide(math.Ceil((b.Right()-g.Origin.X)/opts.CellWidth) + 2)
	g.Rows = clampSide(math.Ceil((b.Bottom()-g.Origin.Y)/opts.CellHeight) + 2)
	g.cells = make([]Cell, g.Cols*g.Rows)
	g.dirs = make([]uint8, g.Cols*g.Rows)

	for _, cp := range plans {
		g.drawPath(cp.Best, cp.Fallback)
	}
	for _, n := range s.Nodes {
		g.drawNode(n)
	}
	for _, cp := range plans {
		g.drawArrow(cp.Best, cp.Fallback)
	}
	if opts.ShowStrategy {
		for _, cp := range plans {
			col, row := g.CellOf(labelPoint(cp.Best))
			g.writeText(col+1, row, string(cp.Best.Strategy), CellNote)
		}
	}
	return g
}

func clampSide(v float64) int {
	if !(v >= 1) {
		return 1
	}
	if v > maxGridSide {
		return maxGridSide
	}
	return int(v)
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// CellOf returns the column and row containing p. The result may lie
// outside the grid.
func (g *Grid) CellOf(p route.Point) (col, row int) {
	col = int(math.Floor((p.X - g.Origin.X) / g.opts.CellWidth))
	row = int(math.Floor((p.Y - g.Origin.Y) / g.opts.CellHeight))
	return col, row
}

// At returns the cell at col, row. Cells outside the grid are empty.
func (g *Grid) At(col, row int) Cell {
	if !g.inside(col, row) {
		return Cell{Rune: ' '}
	}
	c := g.cells[row*g.Cols+col]
	if c.Rune == 0 {
		c.Rune = ' '
	}
	return c
}

// String returns the grid as text, one line per row, trailing spaces
// trimmed.
func (g *Grid) String() string {
	var sb strings.Builder
	line := make([]rune, g.Cols)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			line[col] = g.At(col, row).Rune
		}
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g *Grid) inside(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.Cols && row < g.Rows
}

func (g *Grid) set(col, row int, c Cell) {
	if g.inside(col, row) {
		g.cells[row*g.Cols+col] = c
	}
}

func (g *Grid) drawPath(p route.Path, fallback bool) {
	kind := CellPath
	if fallback {
		kind = CellFallback
	}
	points := p.Points(curveSteps)
	step := math.Min(g.opts.CellWidth, g.opts.CellHeight) / 2

	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		d := b.Sub(a)
		var dir uint8
		switch {
		case d.Y == 0:
			dir = dirH
		case d.X == 0:
			dir = dirV
		default:
			dir = dirD
		}
		n := int(math.Min(math.Ceil(a.Distance(b)/step), 4*maxGridSide))
		n = max(n, 1)
		for k := 0; k <= n; k++ {
			col, row := g.CellOf(a.Add(d.Scale(float64(k) / float64(n))))
			g.mark(col, row, dir, kind)
		}
	}
}

func (g *Grid) mark(col, row int, dir uint8, kind CellKind) {
	if !g.inside(col, row) {
		return
	}
	i := row*g.Cols + col
	g.dirs[i] |= dir
	var r rune
	switch g.dirs[i] {
	case dirH:
		r = '─'
	case dirV:
		r = '│'
	case dirH | dirV:
		r = '┼'
	default:
		r = '·'
	}
	if g.cells[i].Kind == CellFallback {
		kind = CellFallback
	}
	g.cells[i] = Cell{Rune: r, Kind: kind}
}

func (g *Grid) drawArrow(p route.Path, fallback bool) {
	if len(p.Segments) == 0 {
		return
	}
	d := arrowDirection(p)
	var r rune
	switch {
	case math.Abs(d.Y) >= math.Abs(d.X) && d.Y >= 0:
		r = 'v'
	case math.Abs(d.Y) >= math.Abs(d.X):
		r = '^'
	case d.X > 0:
		r = '>'
	default:
		r = '<'
	}
	kind := CellArrow
	if fallback {
		kind = CellFallback
	}
	col, row := g.CellOf(p.End())
	g.set(col, row, Cell{Rune: r, Kind: kind})
}

func (g *Grid) drawNode(n script.Node) {
	r := route.NodeBounds(n)
	c0, r0 := g.CellOf(route.Point{X: r.Left(), Y: r.Top()})
	c1, r1 := g.CellOf(route.Point{X: r.Right(), Y: r.Bottom()})
	if c1 == c0 {
		c1++
	}
	if r1 == r0 {
		r1++
	}
	// Cells beyond one step off the grid are never drawn.
	c0, c1 = clampInt(c0, -1, g.Cols), clampInt(c1, -1, g.Cols)
	r0, r1 = clampInt(r0, -1, g.Rows), clampInt(r1, -1, g.Rows)

	border := func(col, row int, ch rune) {
		g.set(col, row, Cell{Rune: ch, Kind: CellNode, Node: n.ID})
	}
	for col := c0 + 1; col < c1; col++ {
		border(col, r0, '─')
		border(col, r1, '─')
	}
	for row := r0 + 1; row < r1; row++ {
		border(c0, row, '│')
		border(c1, row, '│')
		for col := c0 + 1; col < c1; col++ {
			g.set(col, row, Cell{Rune: ' ', Kind: CellLabel, Node: n.ID})
		}
	}
	border(c0, r0, '┌')
	border(c1, r0, '┐')
	border(c0, r1, '└')
	border(c1, r1, '┘')

	inner := c1 - c0 - 1
	if inner <= 0 || r1-r0 < 2 {
		return
	}
	label := []rune(nodeLabel(n))
	if len(label) > inner {
		label = label[:inner]
	}
	col := c0 + 1 + (inner-len(label))/2
	row := (r0 + r1) / 2
	for i, ch := range label {
		g.set(col+i, row, Cell{Rune: ch, Kind: CellLabel, Node: n.ID})
	}
}

// writeText writes s starting at col, row over empty cells only.
func (g *Grid) writeText(col, row int, s string, kind CellKind) {
	for i, ch := range []rune(s) {
		if g.At(col+i, row).Kind == CellEmpty {
			g.set(col+i, row, Cell{Rune: ch, Kind: kind})
		}
	}
}
