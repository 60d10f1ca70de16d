package svgicon

import (
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/benoitkugler/svgrender/svgpath"
)

// rootAttrs are the sizing attributes of the root element.
type rootAttrs struct {
	width, height       float64
	hasWidth, hasHeight bool
	viewBox             Bounds
	hasViewBox          bool
	aspect              aspectRatio
}

// aspectRatio is a parsed preserveAspectRatio attribute.
type aspectRatio struct {
	none           bool
	alignX, alignY float64 // 0 for min, 0.5 for mid, 1 for max
	slice          bool
}

var defaultAspectRatio = aspectRatio{alignX: 0.5, alignY: 0.5}

// percentages without a viewBox resolve against this size
const defaultViewport = 100

func parseAspectRatio(v string) (aspectRatio, error) {
	out := defaultAspectRatio
	fields := strings.Fields(v)
	if len(fields) > 0 && fields[0] == "defer" {
		fields = fields[1:]
	}
	if len(fields) == 0 || len(fields) > 2 {
		return out, ErrParamMismatch
	}
	align := fields[0]
	if align == "none" {
		out.none = true
	} else {
		if len(align) != 8 {
			return out, fmt.Errorf("invalid alignment %q", align)
		}
		var ok1, ok2 bool
		out.alignX, ok1 = alignValue(align[:4], "x")
		out.alignY, ok2 = alignValue(align[4:], "Y")
		if !ok1 || !ok2 {
			return out, fmt.Errorf("invalid alignment %q", align)
		}
	}
	if len(fields) == 2 {
		switch fields[1] {
		case "meet":
		case "slice":
			out.slice = true
		default:
			return out, fmt.Errorf("invalid meetOrSlice %q", fields[1])
		}
	}
	return out, nil
}

func alignValue(s, axis string) (float64, bool) {
	switch s {
	case axis + "Min":
		return 0, true
	case axis + "Mid":
		return 0.5, true
	case axis + "Max":
		return 1, true
	}
	return 0, false
}

// readRoot reads the sizing attributes of the root svg element.
func (c *iconCursor) readRoot(attrs []xml.Attr) error {
	c.root.aspect = defaultAspectRatio
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "viewBox":
			var points []float64
			points, err = svgpath.ParseNumbers(attr.Value)
			if err == nil && len(points) != 4 {
				err = ErrParamMismatch
			}
			if err == nil && (points[2] <= 0 || points[3] <= 0) {
				err = fmt.Errorf("non positive viewBox size")
			}
			if err == nil {
				c.root.viewBox = Bounds{X: points[0], Y: points[1], W: points[2], H: points[3]}
				c.root.hasViewBox = true
			}
		case "width":
			c.root.width, c.root.hasWidth, err = rootLength(attr.Value)
		case "height":
			c.root.height, c.root.hasHeight, err = rootLength(attr.Value)
		case "preserveAspectRatio":
			c.root.aspect, err = parseAspectRatio(attr.Value)
		}
		if err != nil {
			if err = c.handleError(&AttrError{Element: "svg", Attr: attr.Name.Local, Value: attr.Value, Err: err}); err != nil {
				return err
			}
		}
	}

	switch {
	case c.root.hasViewBox:
		c.icon.ViewBox = c.root.viewBox
	default:
		c.icon.ViewBox = Bounds{W: defaultViewport, H: defaultViewport}
		if c.root.hasWidth {
			c.icon.ViewBox.W = c.root.width
		}
		if c.root.hasHeight {
			c.icon.ViewBox.H = c.root.height
		}
	}
	return nil
}

// rootLength reads the width or height of the root element.
// Percentages are relative to an unknown viewport, and
// are reported as missing.
func rootLength(v string) (float64, bool, error) {
	if strings.HasSuffix(strings.TrimSpace(v), "%") || strings.TrimSpace(v) == "auto" {
		return 0, false, nil
	}
	f, err := resolveLength(v, 0, defaultFontSize)
	if err != nil {
		return 0, false, err
	}
	if f < 0 {
		return 0, false, fmt.Errorf("negative size")
	}
	return f, true, nil
}

// resolveSize computes the intrinsic size and the viewBox transform.
func (c *iconCursor) resolveSize() {
	r := c.root
	w, h := r.width, r.height
	if r.hasViewBox {
		switch {
		case !r.hasWidth && !r.hasHeight:
			w, h = r.viewBox.W, r.viewBox.H
		case !r.hasWidth:
			w = h * r.viewBox.W / r.viewBox.H
		case !r.hasHeight:
			h = w * r.viewBox.H / r.viewBox.W
		}
	} else if !r.hasWidth || !r.hasHeight {
		maxX, maxY := c.icon.contentExtent()
		if !r.hasWidth {
			w = maxX
		}
		if !r.hasHeight {
			h = maxY
		}
		c.icon.ViewBox = Bounds{W: w, H: h}
	}
	c.icon.Width, c.icon.Height = sanitizeSize(w), sanitizeSize(h)
	if r.hasViewBox {
		c.icon.Transform = viewBoxTransform(r.viewBox, c.icon.Width, c.icon.Height, r.aspect)
	}
}

// sanitizeSize maps sizes which are not representable
// as finite float32 values to 0.
func sanitizeSize(f float64) float64 {
	if math.IsNaN(f) || f < 0 || f > math.MaxFloat32 {
		return 0
	}
	return f
}

// contentExtent returns the bottom right corner of the union of
// the paths, seen from the origin.
func (icon *SvgIcon) contentExtent() (maxX, maxY float64) {
	for _, p := range icon.SVGPaths {
		box, ok := svgpath.TransformPath(p.Path, p.Style.Transform).Bounds()
		if !ok {
			continue
		}
		maxX, maxY = math.Max(maxX, box.Max.X), math.Max(maxY, box.Max.Y)
	}
	return maxX, maxY
}

// viewBoxTransform maps the viewBox vb into a viewport of size w x h.
func viewBoxTransform(vb Bounds, w, h float64, par aspectRatio) Matrix2D {
	sx, sy := w/vb.W, h/vb.H
	if par.none {
		return Identity.Scale(sx, sy).Translate(-vb.X, -vb.Y)
	}
	s := math.Min(sx, sy)
	if par.slice {
		s = math.Max(sx, sy)
	}
	tx := (w - vb.W*s) * par.alignX
	ty := (h - vb.H*s) * par.alignY
	return Identity.Translate(tx, ty).Scale(s, s).Translate(-vb.X, -vb.Y)
}
