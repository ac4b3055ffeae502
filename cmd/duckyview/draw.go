package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/duckyflow/duckyflow/pkg/render"
)

// Styles
var (
	styleDefault  = tcell.StyleDefault
	styleNode     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleNodeSel  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleLabel    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleLabelSel = tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
	stylePath     = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleFallback = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleNote     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgError = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	v.drawCanvas(w, h-2)
	v.drawStatusBar(w, h)
}

func (v *Viewer) drawCanvas(w, h int) {
	selectedID := ""
	if v.selected >= 0 && v.selected < len(v.script.Nodes) {
		selectedID = v.script.Nodes[v.selected].ID
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := v.grid.At(x+v.scrollX, y+v.scrollY)
			if c.Kind == render.CellEmpty {
				continue
			}
			v.screen.SetContent(x, y, c.Rune, nil, v.cellStyle(c, selectedID))
		}
	}
}

func (v *Viewer) cellStyle(c render.Cell, selectedID string) tcell.Style {
	switch c.Kind {
	case render.CellNode:
		if c.Node == selectedID {
			return styleNodeSel
		}
		return styleNode
	case render.CellLabel:
		if c.Node == selectedID {
			return styleLabelSel
		}
		return styleLabel
	case render.CellFallback:
		if v.highlightFallback {
			return styleFallback
		}
		return stylePath
	case render.CellPath, render.CellArrow:
		return stylePath
	case render.CellNote:
		return styleNote
	}
	return styleDefault
}

func (v *Viewer) drawStatusBar(w, h int) {
	if h < 2 {
		return
	}
	status := fmt.Sprintf(" %s  routes: %d  fallback: %d", v.filename, len(v.plans), v.fallbackCount())
	if v.selected >= 0 && v.selected < len(v.script.Nodes) {
		n := v.script.Nodes[v.selected]
		status += fmt.Sprintf("  node %d/%d: %s (%.0f, %.0f)",
			v.selected+1, len(v.script.Nodes), n.ID, n.X, n.Y)
	}
	style := styleStatus
	if v.message != "" {
		status = " " + v.message
		style = styleMsgError
	}
	v.fillLine(h-2, w, style)
	v.drawString(0, h-2, status, style)

	help := " Tab/Shift-Tab select  arrows move  Shift+arrows scroll  s strategy  f fallback  q quit"
	v.drawString(0, h-1, help, styleHelp)
}

func (v *Viewer) fillLine(y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, style)
	}
}

func (v *Viewer) drawString(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
