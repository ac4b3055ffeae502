package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/duckyflow/duckyflow/pkg/route"
	"github.com/duckyflow/duckyflow/pkg/script"
)

// SVGOptions configures SVG rendering.
type SVGOptions struct {
	Padding      int
	FontSize     int
	ShowStrategy bool // label each path with the strategy that produced it
	Title        string
}

// DefaultSVGOptions returns sensible defaults for SVG rendering.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Padding:  40,
		FontSize: 12,
	}
}

// SVG writes the script and its routed connections as an SVG document.
func SVG(w io.Writer, s *script.Script, plans []route.ConnectionPlan, opts SVGOptions) error {
	b := Bounds(s, plans)
	top := opts.Padding
	if opts.Title != "" {
		top += opts.FontSize * 2
	}
	width := int(math.Ceil(b.Width)) + 2*opts.Padding
	height := int(math.Ceil(b.Height)) + top + opts.Padding

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(width, height)
	canvas.Title(s.Metadata.Name)

	canvas.Def()
	canvas.Marker("arrow", 9, 5, 10, 10, `orient="auto"`, `markerUnits="userSpaceOnUse"`)
	canvas.Path("M 0 0 L 10 5 L 0 10 z", "fill:"+hex(colorPath))
	canvas.MarkerEnd()
	canvas.Marker("arrow-fallback", 9, 5, 10, 10, `orient="auto"`, `markerUnits="userSpaceOnUse"`)
	canvas.Path("M 0 0 L 10 5 L 0 10 z", "fill:"+hex(colorFallback))
	canvas.MarkerEnd()
	canvas.DefEnd()

	canvas.Rect(0, 0, width, height, "fill:"+hex(colorBackground))
	if opts.Title != "" {
		canvas.Text(width/2, opts.Padding/2+opts.FontSize, opts.Title,
			fmt.Sprintf("text-anchor:middle;font-family:sans-serif;font-size:%dpx;font-weight:bold;fill:%s", opts.FontSize+4, hex(colorInk)))
	}

	canvas.Gtransform(fmt.Sprintf("translate(%s,%s)",
		formatCoord(float64(opts.Padding)-b.X), formatCoord(float64(top)-b.Y)))

	// Connections first, so nodes sit on top.
	for _, cp := range plans {
		stroke, marker := colorPath, "arrow"
		dash := ""
		if cp.Fallback {
			stroke, marker = colorFallback, "arrow-fallback"
			dash = ";stroke-dasharray:6,4"
		}
		canvas.Path(PathData(cp.Best),
			fmt.Sprintf(`marker-end="url(#%s)"`, marker),
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:2%s", hex(stroke), dash))
	}

	for _, n := range s.Nodes {
		r := route.NodeBounds(n)
		x, y := int(math.Round(r.X)), int(math.Round(r.Y))
		nw, nh := int(math.Round(r.Width)), int(math.Round(r.Height))
		canvas.Roundrect(x, y, nw, nh, 8, 8,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", hex(fillFor(n.Type)), hex(borderFor(n.Type))))
		canvas.Text(x+nw/2, y+nh/2+opts.FontSize/3, nodeLabel(n),
			fmt.Sprintf("text-anchor:middle;font-family:sans-serif;font-size:%dpx;fill:%s", opts.FontSize, hex(colorInk)))
	}

	if opts.ShowStrategy {
		for _, cp := range plans {
			at := labelPoint(cp.Best)
			canvas.Text(int(math.Round(at.X))+4, int(math.Round(at.Y))-4, string(cp.Best.Strategy),
				fmt.Sprintf("font-family:sans-serif;font-size:%dpx;fill:%s", opts.FontSize-2, hex(colorNote)))
		}
	}

	canvas.Gend()
	canvas.End()
	return ew.err
}

// errWriter keeps the first write error; svgo discards them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
