// Package svgraster implements a raster backend to render SVG images,
// by wrapping rasterx.
package svgraster

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/benoitkugler/svgrender/svgdraw"
	"github.com/benoitkugler/svgrender/svgicon"
	"github.com/benoitkugler/svgrender/svgpath"
	"github.com/srwiley/rasterx"
)

var _ svgdraw.Driver = (*Renderer)(nil) // assert interface conformance

// MaxTargetBytes is the largest pixel buffer NewTarget allocates.
const MaxTargetBytes = math.MaxInt32

var (
	ErrEmptyTarget    = errors.New("svgraster: empty target")
	ErrTargetTooLarge = errors.New("svgraster: target too large")
)

// SizeError is returned when a target cannot be allocated.
type SizeError struct {
	Width, Height uint32
	Err           error
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("svgraster: cannot allocate %dx%d target: %v", e.Width, e.Height, e.Err)
}

func (e *SizeError) Unwrap() error { return e.Err }

// NewTarget allocates a transparent RGBA image of the given size.
func NewTarget(width, height uint32) (*image.RGBA, error) {
	if width == 0 || height == 0 {
		return nil, &SizeError{Width: width, Height: height, Err: ErrEmptyTarget}
	}
	if uint64(width)*uint64(height)*4 > MaxTargetBytes {
		return nil, &SizeError{Width: width, Height: height, Err: ErrTargetTooLarge}
	}
	return image.NewRGBA(image.Rect(0, 0, int(width), int(height))), nil
}

// Rasterize renders icon into a new width x height image,
// scaling its viewport by (sx, sy).
func Rasterize(icon *svgicon.SvgIcon, width, height uint32, sx, sy float64) (*image.RGBA, error) {
	img, err := NewTarget(width, height)
	if err != nil {
		return nil, err
	}
	w, h := int(width), int(height)
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	renderer := NewRenderer(w, h, scanner)
	svgdraw.DrawTransformed(icon, renderer, 1, svgpath.Identity.Scale(sx, sy))
	return img, nil
}

// RasterSVGIconToImage parses the icon and renders it
// at its intrinsic size, rounded up.
func RasterSVGIconToImage(icon io.Reader, opts svgicon.Options) (*image.RGBA, error) {
	parsedIcon, err := svgicon.ReadIconStream(icon, opts)
	if err != nil {
		return nil, err
	}
	w, h := math.Ceil(parsedIcon.Width), math.Ceil(parsedIcon.Height)
	if w > math.MaxUint32 || h > math.MaxUint32 {
		return nil, &SizeError{Width: math.MaxUint32, Height: math.MaxUint32, Err: ErrTargetTooLarge}
	}
	return Rasterize(parsedIcon, uint32(w), uint32(h), 1, 1)
}

// Renderer paints on a rasterx.Scanner.
type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{dasher: rasterx.NewDasher(width, height, scanner), filler: rasterx.NewFiller(width, height, scanner)}
}

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (f svgdraw.Filler, s svgdraw.Stroker) {
	if willFill {
		f = filler{rd.filler}
	}
	if willStroke {
		s = stroker{rd.dasher}
	}
	return f, s
}

type filler struct {
	*rasterx.Filler
}

func (f filler) SetColor(color svgicon.Pattern, opacity float64) {
	setColorFromPattern(color, opacity, f.Scanner)
}

type stroker struct {
	*rasterx.Dasher
}

func (s stroker) SetColor(color svgicon.Pattern, opacity float64) {
	setColorFromPattern(color, opacity, s.Scanner)
}

func (s stroker) SetStrokeOptions(options svgicon.StrokeOptions) {
	s.SetStroke(
		options.LineWidth, options.Join.MiterLimit, capToFunc[options.Join.LeadLineCap],
		capToFunc[options.Join.TrailLineCap], gapToFunc[options.Join.LineGap],
		joinToJoin[options.Join.LineJoin], options.Dash.Dash, options.Dash.DashOffset,
	)
}

func toRasterxGradient(grad *svgicon.Gradient) rasterx.Gradient {
	var (
		points   [5]float64
		isRadial bool
	)
	switch dir := grad.Direction.(type) {
	case svgicon.Linear:
		points[0], points[1], points[2], points[3] = dir[0], dir[1], dir[2], dir[3]
	case svgicon.Radial:
		points[0], points[1], points[2], points[3], points[4] = dir[0], dir[1], dir[2], dir[3], dir[4] // in rasterx fr is ignored
		isRadial = true
	}
	stops := make([]rasterx.GradStop, len(grad.Stops))
	for i := range grad.Stops {
		stops[i] = rasterx.GradStop(grad.Stops[i])
	}
	return rasterx.Gradient{
		Points:   points,
		Stops:    stops,
		Bounds:   grad.Bounds,
		Matrix:   grad.Matrix,
		Spread:   rasterx.SpreadMethod(grad.Spread),
		Units:    rasterx.GradientUnits(grad.Units),
		IsRadial: isRadial,
	}
}

// resolve gradient color
func setColorFromPattern(color svgicon.Pattern, opacity float64, scanner rasterx.Scanner) {
	switch pattern := color.(type) {
	case svgicon.PlainColor:
		scanner.SetColor(rasterx.ApplyOpacity(pattern, opacity))
	case *svgicon.Gradient:
		grad := toRasterxGradient(pattern)
		if pattern.Units == svgicon.ObjectBoundingBox {
			fRect := scanner.GetPathExtent()
			mnx, mny := float64(fRect.Min.X)/64, float64(fRect.Min.Y)/64
			mxx, mxy := float64(fRect.Max.X)/64, float64(fRect.Max.Y)/64
			grad.Bounds.X, grad.Bounds.Y = mnx, mny
			grad.Bounds.W, grad.Bounds.H = mxx-mnx, mxy-mny
		}
		scanner.SetColor(grad.GetColorFunction(opacity))
	}
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgicon.Round:     rasterx.Round,
		svgicon.Bevel:     rasterx.Bevel,
		svgicon.Miter:     rasterx.Miter,
		svgicon.MiterClip: rasterx.MiterClip,
		svgicon.Arc:       rasterx.Arc,
		svgicon.ArcClip:   rasterx.ArcClip,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgicon.NilCap:       nil,
		svgicon.ButtCap:      rasterx.ButtCap,
		svgicon.SquareCap:    rasterx.SquareCap,
		svgicon.RoundCap:     rasterx.RoundCap,
		svgicon.CubicCap:     rasterx.CubicCap,
		svgicon.QuadraticCap: rasterx.QuadraticCap,
	}

	gapToFunc = [...]rasterx.GapFunc{
		svgicon.NilGap:       nil,
		svgicon.FlatGap:      rasterx.FlatGap,
		svgicon.RoundGap:     rasterx.RoundGap,
		svgicon.CubicGap:     rasterx.CubicGap,
		svgicon.QuadraticGap: rasterx.QuadraticGap,
	}
)
