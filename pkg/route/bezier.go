// Quadratic Bézier evaluation used by curved routes.

package route

// QuadPoint computes the point at parameter t ∈ [0,1] on the quadratic
// Bézier curve start → control → end.
func QuadPoint(start, control, end Point, t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*mt*start.X + 2*mt*t*control.X + t*t*end.X,
		Y: mt*mt*start.Y + 2*mt*t*control.Y + t*t*end.Y,
	}
}

// QuadTangent computes the derivative of the quadratic Bézier at t.
func QuadTangent(start, control, end Point, t float64) Point {
	mt := 1 - t
	return Point{
		X: 2*mt*(control.X-start.X) + 2*t*(end.X-control.X),
		Y: 2*mt*(control.Y-start.Y) + 2*t*(end.Y-control.Y),
	}
}

// SampleQuad returns n+1 evenly spaced points along the curve, from start
// to end inclusive.
func SampleQuad(start, control, end Point, n int) []Point {
	if n < 1 {
		n = 1
	}
	points := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		points = append(points, QuadPoint(start, control, end, float64(i)/float64(n)))
	}
	return points
}

// quadHull returns a rectangle enclosing the whole curve.
// A Bézier curve stays inside the convex hull of its control points.
func quadHull(start, control, end Point) Rect {
	r := SegmentBounds(start, end)
	c := SegmentBounds(control, control)
	minX, minY := min(r.Left(), c.Left()), min(r.Top(), c.Top())
	maxX, maxY := max(r.Right(), c.Right()), max(r.Bottom(), c.Bottom())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
