// Package render draws a routed script: SVG path data and documents, PNG
// images, and character grids for terminals.
package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/duckyflow/duckyflow/pkg/route"
	"github.com/duckyflow/duckyflow/pkg/script"
)

// curveSteps is the sampling used when a curve has to be flattened.
const curveSteps = 20

// PathData formats a path in SVG path syntax: "M x y" followed by "L x y"
// for lines and "Q cx cy x y" for quadratic curves.
func PathData(p route.Path) string {
	if len(p.Segments) == 0 {
		return ""
	}
	var sb strings.Builder
	start := p.Segments[0].From
	sb.WriteString("M ")
	writePoint(&sb, start)
	for _, seg := range p.Segments {
		switch seg.Kind {
		case route.SegmentQuad:
			sb.WriteString(" Q ")
			writePoint(&sb, seg.Control)
			sb.WriteByte(' ')
			writePoint(&sb, seg.To)
		default:
			sb.WriteString(" L ")
			writePoint(&sb, seg.To)
		}
	}
	return sb.String()
}

func writePoint(sb *strings.Builder, p route.Point) {
	sb.WriteString(formatCoord(p.X))
	sb.WriteByte(' ')
	sb.WriteString(formatCoord(p.Y))
}

func formatCoord(v float64) string {
	// Two decimals are plenty for a canvas measured in pixels.
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Bounds returns the smallest rectangle holding every node of s and every
// planned path. An empty scene yields the zero rectangle.
func Bounds(s *script.Script, plans []route.ConnectionPlan) route.Rect {
	first := true
	var minX, minY, maxX, maxY float64
	add := func(p route.Point) {
		if first {
			minX, minY, maxX, maxY = p.X, p.Y, p.X, p.Y
			first = false
			return
		}
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	for _, n := range s.Nodes {
		r := route.NodeBounds(n)
		add(route.Point{X: r.Left(), Y: r.Top()})
		add(route.Point{X: r.Right(), Y: r.Bottom()})
	}
	for _, cp := range plans {
		for _, p := range cp.Best.Points(curveSteps) {
			add(p)
		}
	}

	if first {
		return route.Rect{}
	}
	return route.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// arrowDirection returns the direction of travel at the end of a path,
// or the zero point if it cannot be determined.
func arrowDirection(p route.Path) route.Point {
	if len(p.Segments) == 0 {
		return route.Point{}
	}
	last := p.Segments[len(p.Segments)-1]
	var d route.Point
	if last.Kind == route.SegmentQuad {
		d = route.QuadTangent(last.From, last.Control, last.To, 1)
	} else {
		d = last.To.Sub(last.From)
	}
	if d.X == 0 && d.Y == 0 {
		d = p.End().Sub(p.Start())
	}
	return d
}

// arrowHead returns the two back corners of an arrow head of the given size
// pointing along dir with its tip at tip.
func arrowHead(tip, dir route.Point, size float64) (route.Point, route.Point) {
	l := math.Hypot(dir.X, dir.Y)
	if l == 0 {
		return tip, tip
	}
	ux, uy := dir.X/l, dir.Y/l
	back := route.Point{X: tip.X - ux*size, Y: tip.Y - uy*size}
	side := route.Point{X: -uy * size * 0.5, Y: ux * size * 0.5}
	return back.Add(side), back.Sub(side)
}

// labelPoint returns where a strategy label is drawn for a path: its middle
// control point, or the midpoint of a straight line.
func labelPoint(p route.Path) route.Point {
	if n := len(p.ControlPoints); n > 0 {
		return p.ControlPoints[n/2]
	}
	a, b := p.Start(), p.End()
	return route.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// nodeLabel returns the text shown inside a node box.
func nodeLabel(n script.Node) string {
	if n.Label != "" {
		return n.Label
	}
	if n.Type != "" {
		return string(n.Type)
	}
	return n.ID
}
