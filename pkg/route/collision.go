// Collision tests between candidate routes and node obstacles.

package route

import "math"

// SegmentIntersectsRect reports whether the segment a-b crosses any edge of
// r expanded by margin, using the parametric form a + t(b-a), t ∈ [0,1].
// An axis with zero extent is skipped. A segment lying wholly inside the
// expanded rectangle crosses no edge and is not reported.
func SegmentIntersectsRect(a, b Point, r Rect, margin float64) bool {
	e := r.Expand(margin)
	left, right := e.Left(), e.Right()
	top, bottom := e.Top(), e.Bottom()

	dx := b.X - a.X
	dy := b.Y - a.Y

	if dx != 0 {
		for _, edge := range [2]float64{left, right} {
			t := (edge - a.X) / dx
			if t >= 0 && t <= 1 {
				y := a.Y + t*dy
				if y >= top && y <= bottom {
					return true
				}
			}
		}
	}

	if dy != 0 {
		for _, edge := range [2]float64{top, bottom} {
			t := (edge - a.Y) / dy
			if t >= 0 && t <= 1 {
				x := a.X + t*dx
				if x >= left && x <= right {
					return true
				}
			}
		}
	}

	return false
}

// Oracle answers collision queries for one routing call: it knows the
// obstacle set, the ids of the two nodes being connected, and the margin.
type Oracle struct {
	obstacles    Obstacles
	exclude      []string
	margin       float64
	curveSamples int
}

// NewOracle creates an oracle over obstacles, ignoring the excluded ids.
func NewOracle(obstacles Obstacles, exclude []string, opts Options) *Oracle {
	return &Oracle{
		obstacles:    obstacles,
		exclude:      exclude,
		margin:       opts.Margin,
		curveSamples: opts.CurveSamples,
	}
}

func (o *Oracle) excluded(id string) bool {
	for _, ex := range o.exclude {
		if ex == id {
			return true
		}
	}
	return false
}

// queryPad is how far a query area is grown before asking the obstacle
// set. A negative margin can move expanded edges up to |margin| outside the
// original bounds, so the pad is never negative.
func (o *Oracle) queryPad() float64 {
	return math.Abs(o.margin)
}

// SegmentBlocked reports whether the segment a-b collides with any
// non-excluded obstacle.
func (o *Oracle) SegmentBlocked(a, b Point) bool {
	if o.obstacles == nil {
		return false
	}
	for _, obs := range o.obstacles.Near(SegmentBounds(a, b).Expand(o.queryPad())) {
		if o.excluded(obs.ID) {
			continue
		}
		if SegmentIntersectsRect(a, b, obs.Bounds, o.margin) {
			return true
		}
	}
	return false
}

// PolylineBlocked reports whether any leg of the polyline through points
// is blocked.
func (o *Oracle) PolylineBlocked(points ...Point) bool {
	for i := 0; i+1 < len(points); i++ {
		if o.SegmentBlocked(points[i], points[i+1]) {
			return true
		}
	}
	return false
}

// CurveBlocked reports whether the quadratic Bézier start → control → end
// passes through any non-excluded obstacle. The curve is approximated by
// curveSamples+1 evenly spaced points; any sample inside an obstacle's
// expanded bounds counts as a collision.
func (o *Oracle) CurveBlocked(start, control, end Point) bool {
	if o.obstacles == nil {
		return false
	}
	near := o.obstacles.Near(quadHull(start, control, end).Expand(o.queryPad()))
	if len(near) == 0 {
		return false
	}

	for _, p := range SampleQuad(start, control, end, o.curveSamples) {
		for _, obs := range near {
			if o.excluded(obs.ID) {
				continue
			}
			if obs.Bounds.Expand(o.margin).Contains(p) {
				return true
			}
		}
	}
	return false
}
