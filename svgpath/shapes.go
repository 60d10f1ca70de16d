package svgpath

import (
	"math"

	"github.com/srwiley/rasterx"
)

// This file implements the transformation from
// high level shapes to their path equivalent.
// Arcs are approximated with cubic Bézier splines,
// following L. Maisonobe, "Drawing an elliptical arc using
// polylines, quadratic or cubic Bezier curves", 2003.

// AddRect adds a closed rectangle.
func (p *Path) AddRect(minX, minY, maxX, maxY float64) {
	p.Start(Point{minX, minY})
	p.Line(Point{maxX, minY})
	p.Line(Point{maxX, maxY})
	p.Line(Point{minX, maxY})
	p.Stop(true)
}

// AddRoundRect adds a closed rectangle with rounded corners of radius
// rx in the x axis and ry in the y axis. The radii are clamped
// to half the size of the rectangle.
func (p *Path) AddRoundRect(minX, minY, maxX, maxY, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		p.AddRect(minX, minY, maxX, maxY)
		return
	}
	rx = math.Min(rx, (maxX-minX)/2)
	ry = math.Min(ry, (maxY-minY)/2)
	const quarter = math.Pi / 2

	p.Start(Point{minX + rx, minY})
	p.Line(Point{maxX - rx, minY})
	p.ellipseArc(maxX-rx, minY+ry, rx, ry, 0, -quarter, quarter, Point{maxX, minY + ry})
	p.Line(Point{maxX, maxY - ry})
	p.ellipseArc(maxX-rx, maxY-ry, rx, ry, 0, 0, quarter, Point{maxX - rx, maxY})
	p.Line(Point{minX + rx, maxY})
	p.ellipseArc(minX+rx, maxY-ry, rx, ry, 0, quarter, quarter, Point{minX, maxY - ry})
	p.Line(Point{minX, minY + ry})
	p.ellipseArc(minX+rx, minY+ry, rx, ry, 0, math.Pi, quarter, Point{minX + rx, minY})
	p.Stop(true)
}

// AddEllipse adds a closed ellipse centered at (cx, cy).
func (p *Path) AddEllipse(cx, cy, rx, ry float64) {
	start := Point{cx + rx, cy}
	p.Start(start)
	p.ellipseArc(cx, cy, rx, ry, 0, 0, 2*math.Pi, start)
	p.Stop(true)
}

// AddArc appends an elliptical arc starting at the current point (px, py),
// described by the seven parameters of the SVG 'A' command:
// rx, ry, x-axis-rotation, large-arc-flag, sweep-flag, x, y.
// It returns the end point.
// Out of range radii are scaled up, and a zero radius gives a straight line.
func (p *Path) AddArc(params [7]float64, px, py float64) (lx, ly float64) {
	rx, ry := math.Abs(params[0]), math.Abs(params[1])
	x, y := params[5], params[6]
	if x == px && y == py {
		return x, y
	}
	if rx == 0 || ry == 0 {
		p.Line(Point{x, y})
		return x, y
	}
	largeArc, sweep := params[3] != 0, params[4] != 0
	rotX := params[2] * math.Pi / 180
	cx, cy := rasterx.FindEllipseCenter(&rx, &ry, rotX, px, py, x, y, !sweep, !largeArc)

	startAngle := math.Atan2(py-cy, px-cx) - rotX
	endAngle := math.Atan2(y-cy, x-cx) - rotX
	arcBig := math.Abs(endAngle-startAngle) > math.Pi

	etaStart := math.Atan2(math.Sin(startAngle)/ry, math.Cos(startAngle)/rx)
	etaEnd := math.Atan2(math.Sin(endAngle)/ry, math.Cos(endAngle)/rx)
	deltaEta := etaEnd - etaStart
	if arcBig != largeArc {
		if deltaEta < 0 {
			deltaEta += 2 * math.Pi
		} else {
			deltaEta -= 2 * math.Pi
		}
	}
	if deltaEta < 0 && sweep {
		deltaEta += 2 * math.Pi
	} else if deltaEta >= 0 && !sweep {
		deltaEta -= 2 * math.Pi
	}
	p.ellipseArc(cx, cy, rx, ry, rotX, etaStart, deltaEta, Point{x, y})
	return x, y
}

// ellipseArc appends the arc of the ellipse of center (cx, cy), radii (rx, ry)
// and x axis rotation rot (in radians), for the parameter going from
// etaStart to etaStart+deltaEta. The last point is set to end exactly.
func (p *Path) ellipseArc(cx, cy, rx, ry, rot, etaStart, deltaEta float64, end Point) {
	segs := int(math.Abs(deltaEta)/rasterx.MaxDx) + 1
	dEta := deltaEta / float64(segs)
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	sin, cos := math.Sin(rot), math.Cos(rot)

	at := func(eta float64) (pt, d Point) {
		aCos, bSin := rx*math.Cos(eta), ry*math.Sin(eta)
		aSin, bCos := rx*math.Sin(eta), ry*math.Cos(eta)
		pt = Point{cx + aCos*cos - bSin*sin, cy + aCos*sin + bSin*cos}
		d = Point{-aSin*cos - bCos*sin, -aSin*sin + bCos*cos}
		return pt, d
	}
	last, ld := at(etaStart)
	for i := 1; i <= segs; i++ {
		pt, d := at(etaStart + dEta*float64(i))
		if i == segs {
			pt = end
		}
		p.CubeBezier(Point{last.X + alpha*ld.X, last.Y + alpha*ld.Y},
			Point{pt.X - alpha*d.X, pt.Y - alpha*d.Y}, pt)
		last, ld = pt, d
	}
}
