package route

// SegmentKind identifies a drawing primitive.
type SegmentKind int

const (
	SegmentLine SegmentKind = iota // straight line From → To
	SegmentQuad                    // quadratic Bézier From → Control → To
)

// String returns the primitive name.
func (k SegmentKind) String() string {
	switch k {
	case SegmentLine:
		return "line"
	case SegmentQuad:
		return "quad"
	default:
		return "unknown"
	}
}

// Segment is one drawable piece of a path.
type Segment struct {
	Kind    SegmentKind
	From    Point
	Control Point // SegmentQuad only
	To      Point
}

// Line returns a straight segment.
func Line(from, to Point) Segment {
	return Segment{Kind: SegmentLine, From: from, To: to}
}

// Quad returns a quadratic Bézier segment.
func Quad(from, control, to Point) Segment {
	return Segment{Kind: SegmentQuad, From: from, Control: control, To: to}
}

// Strategy names the generator that produced a path.
type Strategy string

const (
	StrategyDirect     Strategy = "direct"
	StrategySRight     Strategy = "s-right"
	StrategySLeft      Strategy = "s-left"
	StrategyLShape     Strategy = "l-shape"
	StrategyUShape     Strategy = "u-shape"
	StrategyCurveRight Strategy = "curve-right"
	StrategyCurveLeft  Strategy = "curve-left"
	StrategyFallback   Strategy = "fallback"
)

// Path is a routing candidate: a continuous run of segments from the source
// anchor to the destination anchor.
type Path struct {
	Strategy      Strategy
	Segments      []Segment
	ControlPoints []Point // bends or curve control; empty for a direct line
	Length        float64 // estimate, for ranking only
}

// Start returns the first point of the path.
func (p Path) Start() Point {
	if len(p.Segments) == 0 {
		return Point{}
	}
	return p.Segments[0].From
}

// End returns the last point of the path.
func (p Path) End() Point {
	if len(p.Segments) == 0 {
		return Point{}
	}
	return p.Segments[len(p.Segments)-1].To
}

// Continuous reports whether each segment starts where the previous one
// ended, within tol.
func (p Path) Continuous(tol float64) bool {
	for i := 1; i < len(p.Segments); i++ {
		if !p.Segments[i].From.Near(p.Segments[i-1].To, tol) {
			return false
		}
	}
	return len(p.Segments) > 0
}

// Points flattens the path into a polyline. Curves are sampled with
// curveSteps intervals; lines contribute their endpoints.
func (p Path) Points(curveSteps int) []Point {
	if len(p.Segments) == 0 {
		return nil
	}
	points := []Point{p.Segments[0].From}
	for _, seg := range p.Segments {
		switch seg.Kind {
		case SegmentQuad:
			samples := SampleQuad(seg.From, seg.Control, seg.To, curveSteps)
			points = append(points, samples[1:]...)
		default:
			points = append(points, seg.To)
		}
	}
	return points
}

// polyline builds a path of straight segments through points.
// The interior points become the control points.
func polyline(strategy Strategy, points ...Point) Path {
	segments := make([]Segment, 0, len(points)-1)
	length := 0.0
	for i := 0; i+1 < len(points); i++ {
		segments = append(segments, Line(points[i], points[i+1]))
		length += points[i].Distance(points[i+1])
	}
	bends := make([]Point, 0, len(points)-2)
	bends = append(bends, points[1:len(points)-1]...)
	return Path{
		Strategy:      strategy,
		Segments:      segments,
		ControlPoints: bends,
		Length:        length,
	}
}
