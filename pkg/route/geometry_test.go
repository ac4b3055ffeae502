package route

import (
	"math"
	"testing"

	"github.com/duckyflow/duckyflow/pkg/script"
)

func TestAnchors(t *testing.T) {
	from := Rect{X: 100, Y: 100, Width: 112, Height: 50}
	to := Rect{X: 300, Y: 400, Width: 80, Height: 40}

	a, b := Anchors(from, to, 6)

	if a != (Point{156, 156}) {
		t.Errorf("Expected source anchor (156,156), got %v", a)
	}
	if b != (Point{340, 394}) {
		t.Errorf("Expected destination anchor (340,394), got %v", b)
	}
}

func TestNodeBoundsDefaults(t *testing.T) {
	r := NodeBounds(script.Node{X: 10, Y: 20})
	if r.Width != script.DefaultNodeWidth || r.Height != script.DefaultNodeHeight {
		t.Errorf("Expected default size, got %vx%v", r.Width, r.Height)
	}
	if r.X != 10 || r.Y != 20 {
		t.Errorf("Expected origin (10,20), got (%v,%v)", r.X, r.Y)
	}
}

func TestRectExpandContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}.Expand(5)

	if r.Left() != -5 || r.Right() != 15 || r.Top() != -5 || r.Bottom() != 15 {
		t.Errorf("Unexpected expanded rect: %+v", r)
	}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Point{5, 5}, true},
		{"on edge", Point{-5, 0}, true},
		{"corner", Point{15, 15}, true},
		{"outside", Point{15.01, 0}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestQuadPoint(t *testing.T) {
	start := Point{0, 0}
	control := Point{50, 100}
	end := Point{100, 0}

	if p := QuadPoint(start, control, end, 0); p != start {
		t.Errorf("Expected start at t=0, got %v", p)
	}
	if p := QuadPoint(start, control, end, 1); p != end {
		t.Errorf("Expected end at t=1, got %v", p)
	}

	mid := QuadPoint(start, control, end, 0.5)
	if math.Abs(mid.X-50) > 1e-9 || math.Abs(mid.Y-50) > 1e-9 {
		t.Errorf("Expected (50,50) at t=0.5, got %v", mid)
	}

	tan := QuadTangent(start, control, end, 0.5)
	if math.Abs(tan.Y) > 1e-9 || tan.X <= 0 {
		t.Errorf("Expected horizontal tangent at apex, got %v", tan)
	}
}

func TestSampleQuadCount(t *testing.T) {
	samples := SampleQuad(Point{0, 0}, Point{10, 10}, Point{20, 0}, 20)
	if len(samples) != 21 {
		t.Fatalf("Expected 21 samples, got %d", len(samples))
	}
	if samples[0] != (Point{0, 0}) || samples[20] != (Point{20, 0}) {
		t.Errorf("Samples should include both endpoints, got %v and %v", samples[0], samples[20])
	}
}
