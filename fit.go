package svgrender

import (
	"math"

	"github.com/benoitkugler/svgrender/svgraster"
)

// Size is an intrinsic document size, in pixels.
type Size struct {
	Width, Height float32
}

// Fit is the target of a render: the pixmap size and the
// scale applied to the document viewport.
type Fit struct {
	Width, Height  uint32
	ScaleX, ScaleY float32
}

// ComputeFit returns the target size and scale for a document of
// size intrinsic rendered at (width, height):
//   - (0, 0) uses the intrinsic size, rounded up
//   - (W, 0) and (0, H) derive the missing dimension from the
//     aspect ratio, rounded up
//   - (W, H) stretches the document to the target
//
// A single requested dimension scales both axes alike: a 100x50
// document rendered at (200, 0) gives a 200x100 target with both
// scales equal to 2. The axes are not fitted independently, which
// would keep the intrinsic height and give 200x50.
//
// A RenderError is returned when intrinsic is not strictly positive
// and finite, or when the target does not fit in uint32.
func ComputeFit(intrinsic Size, width, height uint32) (Fit, error) {
	w, h := float64(intrinsic.Width), float64(intrinsic.Height)
	if !isPositive(w) || !isPositive(h) {
		return Fit{}, &RenderError{Kind: UndefinedScale, Width: width, Height: height, Err: ErrZeroIntrinsicSize}
	}

	var targetW, targetH float64
	switch {
	case width == 0 && height == 0:
		targetW, targetH = math.Ceil(w), math.Ceil(h)
	case height == 0:
		targetW = float64(width)
		targetH = math.Ceil(h * targetW / w)
	case width == 0:
		targetH = float64(height)
		targetW = math.Ceil(w * targetH / h)
	default:
		targetW, targetH = float64(width), float64(height)
	}
	if targetW > math.MaxUint32 || targetH > math.MaxUint32 {
		return Fit{}, &RenderError{
			Kind: AllocationFailed, Width: clampUint32(targetW), Height: clampUint32(targetH),
			Err: svgraster.ErrTargetTooLarge,
		}
	}

	fit := Fit{Width: uint32(targetW), Height: uint32(targetH)}
	fit.ScaleX = float32(targetW) / intrinsic.Width
	fit.ScaleY = float32(targetH) / intrinsic.Height
	if !isPositive(float64(fit.ScaleX)) || !isPositive(float64(fit.ScaleY)) {
		return Fit{}, &RenderError{Kind: UndefinedScale, Width: fit.Width, Height: fit.Height, Err: ErrZeroIntrinsicSize}
	}
	return fit, nil
}

// scale returns the exact scales mapping intrinsic to the target.
// ScaleX and ScaleY are rounded to float32 and only report them.
func (f Fit) scale(intrinsic Size) (sx, sy float64) {
	return float64(f.Width) / float64(intrinsic.Width), float64(f.Height) / float64(intrinsic.Height)
}

// isPositive is false for NaN and infinities.
func isPositive(f float64) bool { return f > 0 && !math.IsInf(f, 1) }

func clampUint32(f float64) uint32 {
	if f > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(f)
}
