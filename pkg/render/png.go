// Raster rendering of routed scripts.

package render

import (
	"fmt"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/duckyflow/duckyflow/pkg/route"
	"github.com/duckyflow/duckyflow/pkg/script"
)

// PNGOptions configures PNG rendering.
type PNGOptions struct {
	Scale        float64 // pixels per canvas unit
	Padding      float64 // canvas units around the drawing
	FontSize     float64 // points, before scaling
	LineWidth    float64
	ShowStrategy bool
}

// DefaultPNGOptions returns sensible defaults for PNG rendering.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		Scale:     2,
		Padding:   40,
		FontSize:  12,
		LineWidth: 2,
	}
}

// maxPNGSide caps each image dimension in pixels.
const maxPNGSide = 8192

// pngCanvas maps canvas coordinates to image pixels.
type pngCanvas struct {
	dc     *gg.Context
	scale  float64
	offset route.Point
}

func (c *pngCanvas) xy(p route.Point) (float64, float64) {
	return (p.X + c.offset.X) * c.scale, (p.Y + c.offset.Y) * c.scale
}

func newFace(size float64) (font.Face, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// PNG writes the script and its routed connections as a PNG image.
func PNG(w io.Writer, s *script.Script, plans []route.ConnectionPlan, opts PNGOptions) error {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	b := Bounds(s, plans)
	width := int(math.Ceil((b.Width + 2*opts.Padding) * opts.Scale))
	height := int(math.Ceil((b.Height + 2*opts.Padding) * opts.Scale))
	if width > maxPNGSide || height > maxPNGSide {
		return fmt.Errorf("image %dx%d exceeds %d pixels per side", width, height, maxPNGSide)
	}
	width, height = max(width, 1), max(height, 1)

	face, err := newFace(opts.FontSize * opts.Scale)
	if err != nil {
		return fmt.Errorf("loading font: %w", err)
	}
	defer face.Close()

	dc := gg.NewContext(width, height)
	dc.SetColor(colorBackground)
	dc.Clear()
	dc.SetFontFace(face)

	c := &pngCanvas{
		dc:     dc,
		scale:  opts.Scale,
		offset: route.Point{X: opts.Padding - b.X, Y: opts.Padding - b.Y},
	}

	for _, cp := range plans {
		c.drawPath(cp.Best, cp.Fallback, opts.LineWidth)
	}
	for _, n := range s.Nodes {
		c.drawNode(n, opts.LineWidth)
	}
	if opts.ShowStrategy {
		dc.SetColor(colorNote)
		for _, cp := range plans {
			x, y := c.xy(labelPoint(cp.Best))
			dc.DrawStringAnchored(string(cp.Best.Strategy), x+4*c.scale, y-4*c.scale, 0, 0)
		}
	}

	return dc.EncodePNG(w)
}

func (c *pngCanvas) drawPath(p route.Path, fallback bool, lineWidth float64) {
	if len(p.Segments) == 0 {
		return
	}
	dc := c.dc
	col := colorPath
	if fallback {
		col = colorFallback
		dc.SetDash(6*c.scale, 4*c.scale)
	}
	dc.SetColor(col)
	dc.SetLineWidth(lineWidth * c.scale)

	dc.MoveTo(c.xy(p.Start()))
	for _, seg := range p.Segments {
		x, y := c.xy(seg.To)
		if seg.Kind == route.SegmentQuad {
			cx, cy := c.xy(seg.Control)
			dc.QuadraticTo(cx, cy, x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()
	dc.SetDash()

	dir := arrowDirection(p)
	left, right := arrowHead(p.End(), dir, 10)
	dc.MoveTo(c.xy(p.End()))
	dc.LineTo(c.xy(left))
	dc.LineTo(c.xy(right))
	dc.ClosePath()
	dc.Fill()
}

func (c *pngCanvas) drawNode(n script.Node, lineWidth float64) {
	dc := c.dc
	r := route.NodeBounds(n)
	x, y := c.xy(route.Point{X: r.X, Y: r.Y})
	w, h := r.Width*c.scale, r.Height*c.scale

	dc.DrawRoundedRectangle(x, y, w, h, 8*c.scale)
	dc.SetColor(fillFor(n.Type))
	dc.FillPreserve()
	dc.SetColor(borderFor(n.Type))
	dc.SetLineWidth(lineWidth * c.scale)
	dc.Stroke()

	dc.SetColor(colorInk)
	dc.DrawStringAnchored(nodeLabel(n), x+w/2, y+h/2, 0.5, 0.35)
}
