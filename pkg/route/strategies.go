// Candidate generators. Each returns at most one collision-free path for
// its strategy, or ok=false.

package route

import "math"

// Side selects the mirrored variant of a two-sided strategy.
type Side int

const (
	SideRight Side = iota
	SideLeft
)

// sign returns +1 for SideRight and -1 for SideLeft.
func (s Side) sign() float64 {
	if s == SideLeft {
		return -1
	}
	return 1
}

// Tuning constants for the generators.
const (
	// A direct line going upward is only allowed below this length.
	maxUpwardDirect = 100.0

	sVerticalMin   = 20.0
	sVerticalMax   = 40.0
	sVerticalRatio = 0.1
	sOffsetMin     = 60.0
	sOffsetRatio   = 0.25

	uOffsetMin   = 40.0
	uOffsetRatio = 0.3

	curveRadiusMin   = 30.0
	curveRadiusMax   = 80.0
	curveRadiusRatio = 0.4
	curveLengthRatio = 1.2
)

// sOffsetSteps are the multiples of the base horizontal excursion tried by
// the S-path generator, in order.
var sOffsetSteps = [...]float64{1, 1.2, 1.5, 2}

// directPath proposes the straight line when it is not a long upward line
// and it is collision-free.
func directPath(from, to Point, o *Oracle) (Path, bool) {
	distance := from.Distance(to)
	upward := to.Y-from.Y < 0
	if upward && distance >= maxUpwardDirect {
		return Path{}, false
	}
	if o.SegmentBlocked(from, to) {
		return Path{}, false
	}
	return polyline(StrategyDirect, from, to), true
}

// sPath builds the orthogonal five-segment route: down, sideways, down to
// just above the destination, across, and down into it. The sideways
// excursion grows through sOffsetSteps until every leg is clear.
func sPath(from, to Point, side Side, o *Oracle) (Path, bool) {
	distance := from.Distance(to)
	base := math.Max(sOffsetMin, distance*sOffsetRatio)
	v := clamp(distance*sVerticalRatio, sVerticalMin, sVerticalMax)

	strategy := StrategySRight
	if side == SideLeft {
		strategy = StrategySLeft
	}

	for _, step := range sOffsetSteps {
		x := from.X + side.sign()*base*step
		p1 := Point{from.X, from.Y + v}
		p2 := Point{x, from.Y + v}
		p3 := Point{x, to.Y - v}
		p4 := Point{to.X, to.Y - v}

		if !o.PolylineBlocked(from, p1, p2, p3, p4, to) {
			return polyline(strategy, from, p1, p2, p3, p4, to), true
		}
	}
	return Path{}, false
}

// lPath tries a single right-angle bend, horizontal leg first, then
// vertical leg first.
func lPath(from, to Point, o *Oracle) (Path, bool) {
	for _, bend := range [2]Point{{to.X, from.Y}, {from.X, to.Y}} {
		if !o.PolylineBlocked(from, bend, to) {
			return polyline(StrategyLShape, from, bend, to), true
		}
	}
	return Path{}, false
}

// uPath goes up above both anchors, across, and back down.
func uPath(from, to Point, o *Oracle) (Path, bool) {
	offset := math.Max(uOffsetMin, math.Abs(to.X-from.X)*uOffsetRatio)
	y := math.Min(from.Y, to.Y) - offset
	p1 := Point{from.X, y}
	p2 := Point{to.X, y}

	if o.PolylineBlocked(from, p1, p2, to) {
		return Path{}, false
	}
	return polyline(StrategyUShape, from, p1, p2, to), true
}

// curvedPath bends a quadratic Bézier away from the straight line. The
// control point sits on the perpendicular through the midpoint; SideRight
// is to the right of the direction of travel on a y-down canvas.
func curvedPath(from, to Point, side Side, o *Oracle) (Path, bool) {
	d := to.Sub(from)
	distance := from.Distance(to)
	if distance == 0 {
		return Path{}, false
	}

	radius := clamp(distance*curveRadiusRatio, curveRadiusMin, curveRadiusMax)
	perp := Point{-d.Y / distance, d.X / distance}.Scale(side.sign())
	mid := Point{(from.X + to.X) / 2, (from.Y + to.Y) / 2}
	control := mid.Add(perp.Scale(radius))

	if o.CurveBlocked(from, control, to) {
		return Path{}, false
	}

	strategy := StrategyCurveRight
	if side == SideLeft {
		strategy = StrategyCurveLeft
	}
	return Path{
		Strategy:      strategy,
		Segments:      []Segment{Quad(from, control, to)},
		ControlPoints: []Point{control},
		Length:        distance * curveLengthRatio,
	}, true
}

// Candidates runs every generator in preference order and returns the
// paths they produced.
func Candidates(from, to Point, o *Oracle) []Path {
	generators := []func() (Path, bool){
		func() (Path, bool) { return directPath(from, to, o) },
		func() (Path, bool) { return sPath(from, to, SideRight, o) },
		func() (Path, bool) { return sPath(from, to, SideLeft, o) },
		func() (Path, bool) { return lPath(from, to, o) },
		func() (Path, bool) { return uPath(from, to, o) },
		func() (Path, bool) { return curvedPath(from, to, SideRight, o) },
		func() (Path, bool) { return curvedPath(from, to, SideLeft, o) },
	}

	var candidates []Path
	for _, gen := range generators {
		if p, ok := gen(); ok {
			candidates = append(candidates, p)
		}
	}
	return candidates
}
