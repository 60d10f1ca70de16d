// Package svgdraw implements how to draw a parsed SVG document
// on screen. This requires a driver implementing the actual
// draw operations, such as the rasterizer of package svgraster.
package svgdraw

import (
	"github.com/benoitkugler/svgrender/svgicon"
	"github.com/benoitkugler/svgrender/svgpath"
	"golang.org/x/image/math/fixed"
)

// Drawer knows how to do the actual draw operations
// but doesn't need any SVG knowledge.
// In particular, transformation matrices are already applied to the points
// before sending them to the Drawer.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line Adds a line for the current point to `b`
	Line(b fixed.Point26_6)

	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)

	// SetColor set the color for the current path
	SetColor(color svgicon.Pattern, opacity float64)

	// Draw fills or strokes the accumulated path using the current settings
	// depending on the filling mode
	Draw()
}

type Filler interface {
	Drawer

	// Decide to use or not the NonZeroWinding rule for the current path
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options svgicon.StrokeOptions)
}

type Driver interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the begining of every path.
	// If the `willXXX` boolean is false, the returned drawer should be nil
	// to avoid useless operations.
	// When both booleans are true, one can assume that the exact same draw operations
	// will be performed on the Filler first and then on the Stroker.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

// Draw the compiled SVG icon into the driver `d`, in the
// viewport coordinates defined by the icon.
func Draw(icon *svgicon.SvgIcon, d Driver, opacity float64) {
	DrawTransformed(icon, d, opacity, svgpath.Identity)
}

// DrawTransformed draws the icon, with m applied after the
// icon own transform. It is typically used to scale the
// icon to a target size.
func DrawTransformed(icon *svgicon.SvgIcon, d Driver, opacity float64, m svgpath.Matrix2D) {
	base := m.Mult(icon.Transform)
	for i := range icon.SVGPaths {
		svgp := &icon.SVGPaths[i]
		drawPath(svgp, d, opacity, base.Mult(svgp.Style.Transform))
	}
}

// drawPath draws the compiled SvgPath into the driver while applying transform t.
func drawPath(svgp *svgicon.SvgPath, d Driver, opacity float64, t svgpath.Matrix2D) {
	style := &svgp.Style
	willFill := style.FillerColor != nil && style.FillOpacity*opacity > 0
	willStroke := style.LinerColor != nil && style.LineWidth > 0 && style.LineOpacity*opacity > 0
	if !willFill && !willStroke {
		return
	}
	filler, stroker := d.SetupDrawers(willFill, willStroke)
	if filler != nil { // nil color disable filling
		filler.Clear()
		filler.SetWinding(style.UseNonZeroWinding)

		svgp.Path.AddTo(filler, t)
		filler.Stop(false)

		filler.SetColor(transformPattern(style.FillerColor, t), style.FillOpacity*opacity)
		filler.Draw()
		filler.SetWinding(true) // default is true
	}

	if stroker != nil { // nil color disable lining
		stroker.Clear()
		stroker.SetStrokeOptions(strokeOptions(style, svgpath.ScaleFactor(t)))

		svgp.Path.AddTo(stroker, t)
		stroker.Stop(false)

		stroker.SetColor(transformPattern(style.LinerColor, t), style.LineOpacity*opacity)
		stroker.Draw()
	}
}

// strokeOptions returns the stroke parameters in device space,
// where lengths are multiplied by scale.
func strokeOptions(style *svgicon.PathStyle, scale float64) svgicon.StrokeOptions {
	lineGap := style.Join.LineGap
	if lineGap == svgicon.NilGap {
		lineGap = svgicon.DefaultStyle.Join.LineGap
	}
	lineCap := style.Join.TrailLineCap
	if lineCap == svgicon.NilCap {
		lineCap = svgicon.DefaultStyle.Join.TrailLineCap
	}
	leadLineCap := lineCap
	if style.Join.LeadLineCap != svgicon.NilCap {
		leadLineCap = style.Join.LeadLineCap
	}
	var dashes []float64
	if len(style.Dash.Dash) > 0 {
		dashes = make([]float64, len(style.Dash.Dash))
		for i, dash := range style.Dash.Dash {
			dashes[i] = dash * scale
		}
	}
	return svgicon.StrokeOptions{
		LineWidth: fixed.Int26_6(style.LineWidth * scale * 64),
		Join: svgicon.JoinOptions{
			MiterLimit:   style.Join.MiterLimit,
			LineJoin:     style.Join.LineJoin,
			LeadLineCap:  leadLineCap,
			TrailLineCap: lineCap,
			LineGap:      lineGap,
		},
		Dash: svgicon.DashOptions{Dash: dashes, DashOffset: style.Dash.DashOffset * scale},
	}
}

// transformPattern maps user space gradients to device space.
// Bounding box gradients are resolved by the driver, from the path extent.
func transformPattern(p svgicon.Pattern, t svgpath.Matrix2D) svgicon.Pattern {
	grad, ok := p.(*svgicon.Gradient)
	if !ok || grad.Units != svgicon.UserSpaceOnUse {
		return p
	}
	out := *grad
	out.Matrix = t.Mult(grad.Matrix)
	return &out
}
