package svgdraw

import (
	"strings"
	"testing"

	"github.com/benoitkugler/svgrender/svgicon"
	"github.com/benoitkugler/svgrender/svgpath"
	"golang.org/x/image/math/fixed"
)

// recorder stores the draw calls it receives.
type recorder struct {
	points  []fixed.Point26_6
	colors  []svgicon.Pattern
	opts    []svgicon.StrokeOptions
	winding []bool
	draws   int
}

func (r *recorder) Clear()                                   {}
func (r *recorder) Start(a fixed.Point26_6)                  { r.points = append(r.points, a) }
func (r *recorder) Line(b fixed.Point26_6)                   { r.points = append(r.points, b) }
func (r *recorder) QuadBezier(b, c fixed.Point26_6)          { r.points = append(r.points, b, c) }
func (r *recorder) CubeBezier(b, c, d fixed.Point26_6)       { r.points = append(r.points, b, c, d) }
func (r *recorder) Stop(closeLoop bool)                      {}
func (r *recorder) Draw()                                    { r.draws++ }
func (r *recorder) SetWinding(useNonZeroWinding bool)        { r.winding = append(r.winding, useNonZeroWinding) }
func (r *recorder) SetStrokeOptions(o svgicon.StrokeOptions) { r.opts = append(r.opts, o) }

func (r *recorder) SetColor(color svgicon.Pattern, opacity float64) {
	r.colors = append(r.colors, color)
}

type recordingDriver struct {
	fill, stroke recorder
}

func (d *recordingDriver) SetupDrawers(willFill, willStroke bool) (f Filler, s Stroker) {
	if willFill {
		f = &d.fill
	}
	if willStroke {
		s = &d.stroke
	}
	return f, s
}

func parse(t *testing.T, src string) *svgicon.SvgIcon {
	t.Helper()
	icon, err := svgicon.ReadIconStream(strings.NewReader(src), svgicon.Options{ErrorMode: svgicon.StrictErrorMode})
	if err != nil {
		t.Fatal(err)
	}
	return icon
}

func TestDrawTransforms(t *testing.T) {
	icon := parse(t, `<svg width="20" height="20" viewBox="0 0 10 10">
		<path transform="translate(1 0)" d="M0 0 L5 5"/>
	</svg>`)
	var d recordingDriver
	DrawTransformed(icon, &d, 1, svgpath.Identity.Scale(3, 3))
	if d.fill.draws != 1 || d.stroke.draws != 0 {
		t.Fatalf("unexpected draw calls %d %d", d.fill.draws, d.stroke.draws)
	}
	// (x + 1) * 2 * 3
	want := []fixed.Point26_6{svgpath.ToFixedP(6, 0), svgpath.ToFixedP(36, 30)}
	if len(d.fill.points) != 2 || d.fill.points[0] != want[0] || d.fill.points[1] != want[1] {
		t.Errorf("expected %v, got %v", want, d.fill.points)
	}
}

func TestDrawSkipsInvisible(t *testing.T) {
	icon := parse(t, `<svg width="10" height="10">
		<rect width="5" height="5" fill="none"/>
		<rect width="5" height="5" fill-opacity="0"/>
		<rect width="5" height="5" fill="none" stroke="red" stroke-width="0"/>
	</svg>`)
	var d recordingDriver
	Draw(icon, &d, 1)
	if d.fill.draws != 0 || d.stroke.draws != 0 {
		t.Errorf("invisible paths should not be drawn")
	}

	icon = parse(t, `<svg width="10" height="10"><rect width="5" height="5"/></svg>`)
	Draw(icon, &d, 0)
	if d.fill.draws != 0 {
		t.Errorf("zero opacity should disable drawing")
	}
}

func TestStrokeOptions(t *testing.T) {
	icon := parse(t, `<svg width="10" height="10">
		<path d="M0 0 L5 5" fill="none" stroke="blue" stroke-width="2" stroke-dasharray="1 2" stroke-dashoffset="1" fill-rule="evenodd"/>
	</svg>`)
	var d recordingDriver
	DrawTransformed(icon, &d, 1, svgpath.Identity.Scale(2, 8))
	if d.stroke.draws != 1 || len(d.stroke.opts) != 1 {
		t.Fatalf("expected one stroke, got %d", d.stroke.draws)
	}
	opts := d.stroke.opts[0]
	// the scale factor is sqrt(2 * 8)
	if opts.LineWidth != fixed.I(8) {
		t.Errorf("unexpected line width %v", opts.LineWidth)
	}
	if len(opts.Dash.Dash) != 2 || opts.Dash.Dash[0] != 4 || opts.Dash.Dash[1] != 8 || opts.Dash.DashOffset != 4 {
		t.Errorf("unexpected dashes %v", opts.Dash)
	}
	if opts.Join.LeadLineCap != svgicon.ButtCap || opts.Join.LineGap != svgicon.FlatGap {
		t.Errorf("defaults should be applied: %v", opts.Join)
	}
	if d.stroke.colors[0] != svgicon.NewPlainColor(0, 0, 0xff, 0xff) {
		t.Errorf("unexpected color %v", d.stroke.colors[0])
	}
	if len(icon.SVGPaths[0].Style.Dash.Dash) != 2 || icon.SVGPaths[0].Style.Dash.Dash[0] != 1 {
		t.Error("drawing should not modify the icon")
	}
}

func TestUserSpaceGradient(t *testing.T) {
	icon := parse(t, `<svg width="10" height="10">
		<linearGradient id="u" gradientUnits="userSpaceOnUse"><stop stop-color="red"/><stop offset="1" stop-color="blue"/></linearGradient>
		<linearGradient id="b"><stop stop-color="red"/><stop offset="1" stop-color="blue"/></linearGradient>
		<rect width="5" height="5" fill="url(#u)"/>
		<rect width="5" height="5" fill="url(#b)"/>
	</svg>`)
	var d recordingDriver
	DrawTransformed(icon, &d, 1, svgpath.Identity.Scale(2, 2))
	if len(d.fill.colors) != 2 {
		t.Fatalf("expected 2 fills, got %d", len(d.fill.colors))
	}
	user := d.fill.colors[0].(*svgicon.Gradient)
	if user.Matrix.A != 2 || icon.SVGPaths[0].Style.FillerColor.(*svgicon.Gradient).Matrix.A != 1 {
		t.Errorf("user space gradient should be transformed on a copy: %v", user.Matrix)
	}
	if bbox := d.fill.colors[1].(*svgicon.Gradient); bbox.Matrix.A != 1 {
		t.Errorf("bounding box gradients are resolved by the driver: %v", bbox.Matrix)
	}
}
