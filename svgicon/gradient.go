package svgicon

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"strings"
)

// Pattern groups the paints usable for filling and stroking:
// PlainColor or *Gradient.
type Pattern interface {
	isPattern()
}

// PlainColor is a uniform color, with non premultiplied alpha.
type PlainColor struct {
	color.NRGBA
}

// NewPlainColor returns a PlainColor from its components.
func NewPlainColor(r, g, b, a uint8) PlainColor {
	return PlainColor{color.NRGBA{R: r, G: g, B: b, A: a}}
}

func (PlainColor) isPattern() {}
func (*Gradient) isPattern()  {}

// paintRef is a url(#id) reference, resolved once
// the whole document has been read.
type paintRef struct {
	id       string
	fallback Pattern
}

func (paintRef) isPattern() {}

// GradientUnits is the type for gradient units
type GradientUnits byte

// SVG bounds paremater constants
const (
	ObjectBoundingBox GradientUnits = iota
	UserSpaceOnUse
)

// SpreadMethod is the type for spread parameters
type SpreadMethod byte

// SVG spread parameter constants
const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

// GradStop represents a stop in the SVG 2.0 gradient specification
type GradStop struct {
	StopColor color.Color
	Offset    float64
	Opacity   float64
}

// Gradient holds a description of an SVG 2.0 gradient
type Gradient struct {
	Direction GradientDirection // Linear or Radial
	Stops     []GradStop
	Bounds    Bounds
	Matrix    Matrix2D
	Spread    SpreadMethod
	Units     GradientUnits

	href string
	set  gradientAttrs
}

// gradientAttrs records the attributes explicitly set on a
// gradient element, the other ones being inherited through href.
type gradientAttrs uint8

const (
	setDirection gradientAttrs = 1 << iota
	setMatrix
	setSpread
	setUnits
)

// GradientDirection is either Linear or Radial
type GradientDirection interface {
	isRadial() bool
}

// Linear is x1, y1, x2, y2
type Linear [4]float64

func (Linear) isRadial() bool { return false }

// Radial is cx, cy, fx, fy, r, fr
type Radial [6]float64

func (Radial) isRadial() bool { return true }

func (c *iconCursor) newGradient(attrs []xml.Attr, radial bool) error {
	grad := &Gradient{Bounds: c.icon.ViewBox, Matrix: Identity}
	if radial {
		grad.Direction = Radial{0.5, 0.5, 0.5, 0.5, 0.5, 0}
	} else {
		grad.Direction = Linear{0, 0, 1, 0}
	}
	c.grad = grad

	// units are needed to interpret the coordinates
	var coords []xml.Attr
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "id":
			if attr.Value != "" {
				c.icon.grads[attr.Value] = grad
			}
		case "href":
			grad.href = strings.TrimPrefix(strings.TrimSpace(attr.Value), "#")
		case "gradientUnits":
			switch strings.TrimSpace(attr.Value) {
			case "userSpaceOnUse":
				grad.Units = UserSpaceOnUse
			case "objectBoundingBox":
				grad.Units = ObjectBoundingBox
			default:
				err = fmt.Errorf("unknown units %q", attr.Value)
			}
			grad.set |= setUnits
		case "gradientTransform":
			grad.Matrix, err = parseTransform(Identity, attr.Value)
			grad.set |= setMatrix
		case "spreadMethod":
			switch strings.TrimSpace(attr.Value) {
			case "pad":
				grad.Spread = PadSpread
			case "reflect":
				grad.Spread = ReflectSpread
			case "repeat":
				grad.Spread = RepeatSpread
			default:
				err = fmt.Errorf("unknown spread method %q", attr.Value)
			}
			grad.set |= setSpread
		default:
			coords = append(coords, attr)
		}
		if err != nil {
			if err = c.handleError(&AttrError{Element: gradientName(radial), Attr: attr.Name.Local, Value: attr.Value, Err: err}); err != nil {
				return err
			}
		}
	}

	if radial {
		return c.readRadialCoords(grad, coords)
	}
	return c.readLinearCoords(grad, coords)
}

func gradientName(radial bool) string {
	if radial {
		return "radialGradient"
	}
	return "linearGradient"
}

// gradientCoord reads a gradient coordinate: a fraction for ObjectBoundingBox units,
// a length in user space otherwise.
func (c *iconCursor) gradientCoord(grad *Gradient, v string, asPerc percentBase) (float64, error) {
	if grad.Units == ObjectBoundingBox {
		return readFraction(v)
	}
	return c.parseUnit(v, asPerc)
}

func (c *iconCursor) readLinearCoords(grad *Gradient, attrs []xml.Attr) error {
	direction := grad.Direction.(Linear)
	if grad.Units == UserSpaceOnUse {
		// default values are percentages of the viewport
		direction = Linear{c.icon.ViewBox.X, c.icon.ViewBox.Y, c.icon.ViewBox.X + c.icon.ViewBox.W, c.icon.ViewBox.Y}
	}
	for _, attr := range attrs {
		var (
			err error
			idx = -1
			per = widthPercentage
		)
		switch attr.Name.Local {
		case "x1":
			idx = 0
		case "y1":
			idx, per = 1, heightPercentage
		case "x2":
			idx = 2
		case "y2":
			idx, per = 3, heightPercentage
		}
		if idx == -1 {
			continue
		}
		direction[idx], err = c.gradientCoord(grad, attr.Value, per)
		grad.set |= setDirection
		if err != nil {
			if err = c.handleError(&AttrError{Element: "linearGradient", Attr: attr.Name.Local, Value: attr.Value, Err: err}); err != nil {
				return err
			}
		}
	}
	grad.Direction = direction
	return nil
}

func (c *iconCursor) readRadialCoords(grad *Gradient, attrs []xml.Attr) error {
	direction := grad.Direction.(Radial)
	if grad.Units == UserSpaceOnUse {
		vb := c.icon.ViewBox
		cx, cy, r := vb.X+vb.W/2, vb.Y+vb.H/2, vb.diagonal()/2
		direction = Radial{cx, cy, cx, cy, r, 0}
	}
	var setFx, setFy bool
	for _, attr := range attrs {
		var (
			err error
			idx = -1
			per = widthPercentage
		)
		switch attr.Name.Local {
		case "cx":
			idx = 0
		case "cy":
			idx, per = 1, heightPercentage
		case "fx":
			idx, setFx = 2, true
		case "fy":
			idx, per, setFy = 3, heightPercentage, true
		case "r":
			idx, per = 4, diagPercentage
		case "fr":
			idx, per = 5, diagPercentage
		}
		if idx == -1 {
			continue
		}
		direction[idx], err = c.gradientCoord(grad, attr.Value, per)
		grad.set |= setDirection
		if err != nil {
			if err = c.handleError(&AttrError{Element: "radialGradient", Attr: attr.Name.Local, Value: attr.Value, Err: err}); err != nil {
				return err
			}
		}
	}
	if !setFx { // fx defaults to cx
		direction[2] = direction[0]
	}
	if !setFy {
		direction[3] = direction[1]
	}
	grad.Direction = direction
	return nil
}

// addStop appends a stop to the current gradient. Offsets
// are clamped to [0, 1] and made non decreasing.
func (c *iconCursor) addStop(attrs []xml.Attr) error {
	if c.grad == nil {
		return nil
	}
	stop := GradStop{Opacity: 1, StopColor: color.NRGBA{A: 0xff}}
	for _, decl := range declarations(attrs) {
		var err error
		switch decl.key {
		case "offset":
			stop.Offset, err = readFraction(decl.value)
		case "stop-color":
			var col colorValue
			col, err = parseSVGColor(decl.value)
			switch col.kind {
			case colorPlain:
				stop.StopColor = col.c
			case colorCurrent:
				stop.StopColor = c.currentStyle().color
			case colorNone:
				stop.StopColor = color.NRGBA{}
			}
		case "stop-opacity":
			stop.Opacity, err = parseOpacity(decl.value)
		}
		if err != nil {
			if err = c.handleError(&AttrError{Element: "stop", Attr: decl.key, Value: decl.value, Err: err}); err != nil {
				return err
			}
		}
	}
	stop.Offset = clamp01(stop.Offset)
	if n := len(c.grad.Stops); n > 0 && stop.Offset < c.grad.Stops[n-1].Offset {
		stop.Offset = c.grad.Stops[n-1].Offset
	}
	c.grad.Stops = append(c.grad.Stops, stop)
	return nil
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// resolveGradients applies the href inheritance of gradients.
func (icon *SvgIcon) resolveGradients() error {
	for _, grad := range icon.grads {
		seen := map[*Gradient]bool{grad: true}
		for ref := grad.href; ref != ""; {
			parent, ok := icon.grads[ref]
			if !ok {
				break
			}
			if seen[parent] {
				return fmt.Errorf("%w: gradient %q", ErrReferenceCycle, ref)
			}
			seen[parent] = true
			grad.inherit(parent)
			ref = parent.href
		}
		grad.href = ""
	}
	return nil
}

// inherit copies from parent the attributes not set on g.
func (g *Gradient) inherit(parent *Gradient) {
	if len(g.Stops) == 0 {
		g.Stops = parent.Stops
	}
	if g.set&setUnits == 0 && parent.set&setUnits != 0 {
		g.Units = parent.Units
		g.set |= setUnits
	}
	if g.set&setSpread == 0 && parent.set&setSpread != 0 {
		g.Spread = parent.Spread
		g.set |= setSpread
	}
	if g.set&setMatrix == 0 && parent.set&setMatrix != 0 {
		g.Matrix = parent.Matrix
		g.set |= setMatrix
	}
	if g.set&setDirection == 0 && parent.set&setDirection != 0 &&
		g.Direction.isRadial() == parent.Direction.isRadial() {
		g.Direction = parent.Direction
		g.set |= setDirection
	}
}

// resolvePaint replaces url references by the gradient
// they point to, or their fallback.
func (icon *SvgIcon) resolvePaint(p Pattern) Pattern {
	ref, ok := p.(paintRef)
	if !ok {
		return p
	}
	grad, ok := icon.grads[ref.id]
	if !ok {
		return ref.fallback
	}
	switch len(grad.Stops) {
	case 0:
		return nil
	case 1: // a single stop paints a plain color
		stop := grad.Stops[0]
		col := color.NRGBAModel.Convert(stop.StopColor).(color.NRGBA)
		col.A = uint8(float64(col.A)*stop.Opacity + 0.5)
		return PlainColor{col}
	}
	return grad
}
