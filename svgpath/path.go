// Package svgpath implements an abstract representation of
// SVG paths, which can then be consumed by painting drivers.
// Coordinates are stored in user space as float64, and only
// converted to 26.6 fixed point once the final transform is known.
package svgpath

import (
	"fmt"
	"strings"
)

// Point is a position in user space.
type Point struct{ X, Y float64 }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Operation groups the different path commands:
// MoveTo, LineTo, QuadTo, CubicTo and Close.
type Operation interface {
	isOperation()
}

type MoveTo Point

type LineTo Point

type QuadTo [2]Point

type CubicTo [3]Point

type Close struct{}

func (MoveTo) isOperation()  {}
func (LineTo) isOperation()  {}
func (QuadTo) isOperation()  {}
func (CubicTo) isOperation() {}
func (Close) isOperation()   {}

// Path describes a sequence of basic SVG operations.
// Higher-level shapes are reduced to a path.
type Path []Operation

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", op.X, op.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", op.X, op.Y)
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", op[0].X, op[0].Y, op[1].X, op[1].Y)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", op[0].X, op[0].Y,
				op[1].X, op[1].Y, op[2].X, op[2].Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a Point) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b Point) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c Point) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d Point) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Translate returns a copy of p moved by (dx, dy).
func (p Path) Translate(dx, dy float64) Path {
	return p.mapPoints(func(q Point) Point { return q.Add(Point{dx, dy}) })
}

func (p Path) mapPoints(f func(Point) Point) Path {
	out := make(Path, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			out[i] = MoveTo(f(Point(op)))
		case LineTo:
			out[i] = LineTo(f(Point(op)))
		case QuadTo:
			out[i] = QuadTo{f(op[0]), f(op[1])}
		case CubicTo:
			out[i] = CubicTo{f(op[0]), f(op[1]), f(op[2])}
		default:
			out[i] = op
		}
	}
	return out
}
