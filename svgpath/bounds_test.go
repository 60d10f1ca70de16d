package svgpath

import (
	"math/rand"
	"testing"
)

func randPoint(rng *rand.Rand, offsetx, offsety float64) Point {
	return Point{rng.Float64()*17 + offsetx, rng.Float64()*15 + offsety}
}

func randCurve(rng *rand.Rand, order int) bezier {
	a, b := randPoint(rng, 8, 8), randPoint(rng, 8, 8)
	switch order {
	case 1:
		return line{a, b}
	case 2:
		return quadBezier{a, b, randPoint(rng, 8, 8)}
	default:
		return cubicBezier{a, b, randPoint(rng, 8, 8), randPoint(rng, 8, 8)}
	}
}

func TestBoundingBoxContainsCurve(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const eps = 1e-9
	for i := 0; i < 200; i++ {
		curve := randCurve(rng, 1+i%3)
		box := computeBoundingBox(curve)
		for j := 0; j <= 100; j++ {
			x, y := curve.evaluateCurve(float64(j) / 100)
			if x < box.Min.X-eps || x > box.Max.X+eps || y < box.Min.Y-eps || y > box.Max.Y+eps {
				t.Fatalf("curve %v: point (%g, %g) outside of %v", curve, x, y, box)
			}
		}
	}
}

func TestPathBounds(t *testing.T) {
	tests := []struct {
		d    string
		want Rect
	}{
		{"M10 20", Rect{Point{10, 20}, Point{10, 20}}},
		{"M0 0 H10", Rect{Point{0, 0}, Point{10, 0}}},
		{"M0 0 L10 10 L-5 3 Z", Rect{Point{-5, 0}, Point{10, 10}}},
		// the control points are outside of the curve
		{"M0 0 C0 100 100 100 100 0", Rect{Point{0, 0}, Point{100, 75}}},
		{"M0 0 Q50 100 100 0", Rect{Point{0, 0}, Point{100, 50}}},
		{"M0 0 H1 M50 50 H60", Rect{Point{0, 0}, Point{60, 50}}},
	}
	for _, tt := range tests {
		p, err := ParsePathData(tt.d)
		if err != nil {
			t.Fatal(err)
		}
		got, ok := p.Bounds()
		if !ok {
			t.Fatalf("%q: no bounds", tt.d)
		}
		if got != tt.want {
			t.Errorf("Bounds(%q) = %v, want %v", tt.d, got, tt.want)
		}
	}

	if _, ok := Path(nil).Bounds(); ok {
		t.Error("empty path should have no bounds")
	}
}

func TestQuadraticRoots(t *testing.T) {
	if r := quadraticRoots(0, 2, -4); len(r) != 1 || r[0] != 2 {
		t.Errorf("linear case: %v", r)
	}
	if r := quadraticRoots(1, 0, 1); len(r) != 0 {
		t.Errorf("no real roots expected: %v", r)
	}
	if r := quadraticRoots(1, -3, 2); len(r) != 2 {
		t.Errorf("two roots expected: %v", r)
	}
	if r := quadraticRoots(0, 0, 1); r != nil {
		t.Errorf("constant case: %v", r)
	}
}
