package svgpath

import (
	"math"
)

// Rect is an axis aligned rectangle in user space.
type Rect struct{ Min, Max Point }

// Bounds returns the exact bounding box of the path, taking
// the extrema of the curves into account (not only their control points).
// ok is false for an empty path.
func (p Path) Bounds() (box Rect, ok bool) {
	var (
		current, start Point
		first          = true
	)
	add := func(r Rect) {
		if first {
			box, first = r, false
			return
		}
		box = union(box, r)
	}
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			current, start = Point(op), Point(op)
			add(Rect{Min: current, Max: current})
		case LineTo:
			add(computeBoundingBox(line{current, Point(op)}))
			current = Point(op)
		case QuadTo:
			add(computeBoundingBox(quadBezier{current, op[0], op[1]}))
			current = op[1]
		case CubicTo:
			add(computeBoundingBox(cubicBezier{current, op[0], op[1], op[2]}))
			current = op[2]
		case Close:
			current = start
		}
	}
	return box, !first
}

type bezier interface {
	// criticalPoints returns the values of t zeroing the derivative
	criticalPoints() (tX, tY []float64)
	// evaluateCurve returns the point at time t
	evaluateCurve(t float64) (x, y float64)
}

type line [2]Point

func (l line) criticalPoints() (tX, tY []float64) { return nil, nil }

func (l line) evaluateCurve(t float64) (x, y float64) {
	return (l[1].X-l[0].X)*t + l[0].X, (l[1].Y-l[0].Y)*t + l[0].Y
}

type quadBezier [3]Point

// x = (p0 + p2 - 2p1)t^2 + 2(p1 - p0)t + p0
func bezierQuad(p0, p1, p2, t float64) float64 {
	return (p0+p2-2*p1)*t*t + 2*(p1-p0)*t + p0
}

// quadraticDerivative returns the derivative as at + b
func quadraticDerivative(p0, p1, p2 float64) (a, b float64) {
	return 2 * (p2 - p1 - (p1 - p0)), 2 * (p1 - p0)
}

func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

func (cu quadBezier) criticalPoints() (tX, tY []float64) {
	p0x, p0y := cu[0].X, cu[0].Y
	p1x, p1y := cu[1].X, cu[1].Y
	p2x, p2y := cu[2].X, cu[2].Y

	aX, bX := quadraticDerivative(p0x, p1x, p2x)
	aY, bY := quadraticDerivative(p0y, p1y, p2y)
	return linearRoots(aX, bX), linearRoots(aY, bY)
}

func (cu quadBezier) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := cu[0].X, cu[0].Y
	p1x, p1y := cu[1].X, cu[1].Y
	p2x, p2y := cu[2].X, cu[2].Y
	return bezierQuad(p0x, p1x, p2x, t), bezierQuad(p0y, p1y, p2y, t)
}

type cubicBezier [4]Point

// x = (p3 - 3p2 + 3p1 - p0)t^3 + (3p2 - 6p1 + 3p0)t^2 + (3p1 - 3p0)t + p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		p0
}

// cubicDerivative returns the derivative as at^2 + bt + c
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		return linearRoots(b, c)
	}
	d := b*b - 4*a*c
	switch {
	case d < 0:
		return nil
	case d == 0:
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

func (cu cubicBezier) criticalPoints() (tX, tY []float64) {
	p0x, p0y := cu[0].X, cu[0].Y
	p1x, p1y := cu[1].X, cu[1].Y
	p2x, p2y := cu[2].X, cu[2].Y
	p3x, p3y := cu[3].X, cu[3].Y

	aX, bX, cX := cubicDerivative(p0x, p1x, p2x, p3x)
	aY, bY, cY := cubicDerivative(p0y, p1y, p2y, p3y)
	return quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)
}

func (cu cubicBezier) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := cu[0].X, cu[0].Y
	p1x, p1y := cu[1].X, cu[1].Y
	p2x, p2y := cu[2].X, cu[2].Y
	p3x, p3y := cu[3].X, cu[3].Y
	return bezierSpline(p0x, p1x, p2x, p3x, t), bezierSpline(p0y, p1y, p2y, p3y, t)
}

func computeBoundingBox(curve bezier) Rect {
	tX, tY := curve.criticalPoints()

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, t := range append(append(tX, 0, 1), tY...) {
		if !(0 <= t && t <= 1) {
			continue
		}
		x, y := curve.evaluateCurve(t)
		minX, minY = math.Min(x, minX), math.Min(y, minY)
		maxX, maxY = math.Max(x, maxX), math.Max(y, maxY)
	}
	return Rect{Min: Point{minX, minY}, Max: Point{maxX, maxY}}
}

// union does not skip degenerate rectangles.
func union(r, s Rect) Rect {
	if s.Min.X < r.Min.X {
		r.Min.X = s.Min.X
	}
	if s.Min.Y < r.Min.Y {
		r.Min.Y = s.Min.Y
	}
	if s.Max.X > r.Max.X {
		r.Max.X = s.Max.X
	}
	if s.Max.Y > r.Max.Y {
		r.Max.Y = s.Max.Y
	}
	return r
}
