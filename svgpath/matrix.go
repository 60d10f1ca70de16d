package svgpath

import (
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Matrix2D is an SVG affine transform:
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Matrix2D = rasterx.Matrix2D

// Identity is the identity matrix
var Identity = rasterx.Identity

// Determinant returns the determinant of the linear part of m.
func Determinant(m Matrix2D) float64 { return m.A*m.D - m.B*m.C }

// ScaleFactor returns the mean scaling applied by m,
// used to transform lengths such as stroke widths.
func ScaleFactor(m Matrix2D) float64 { return math.Sqrt(math.Abs(Determinant(m))) }

// ToFixedP converts two floats to the nearest fixed point.
func ToFixedP(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.Int26_6(math.Round(y * 64))}
}

// FromFixed converts a fixed point to user space.
func FromFixed(p fixed.Point26_6) Point {
	return Point{float64(p.X) / 64, float64(p.Y) / 64}
}

// Apply returns the image of q by m.
func Apply(m Matrix2D, q Point) Point {
	x, y := m.Transform(q.X, q.Y)
	return Point{x, y}
}

// TransformPath returns p with m applied to every point.
func TransformPath(p Path, m Matrix2D) Path {
	return p.mapPoints(func(q Point) Point { return Apply(m, q) })
}

// AddTo replays the path operations on q, transformed by m.
// Points are rounded to 26.6 fixed point after m is applied.
func (p Path) AddTo(q rasterx.Adder, m Matrix2D) {
	fx := func(pt Point) fixed.Point26_6 {
		x, y := m.Transform(pt.X, pt.Y)
		return ToFixedP(x, y)
	}
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			q.Start(fx(Point(op)))
		case LineTo:
			q.Line(fx(Point(op)))
		case QuadTo:
			q.QuadBezier(fx(op[0]), fx(op[1]))
		case CubicTo:
			q.CubeBezier(fx(op[0]), fx(op[1]), fx(op[2]))
		case Close:
			q.Stop(true)
		}
	}
}
