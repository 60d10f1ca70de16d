package svgicon

import (
	"encoding/xml"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/benoitkugler/svgrender/svgpath"
)

func init() {
	// avoids cyclical static declaration
	// called on package initialization
	drawFuncs["use"] = useF
}

type svgFunc func(c *iconCursor, attrs []xml.Attr) error

var drawFuncs = map[string]svgFunc{
	"svg":            gF, // nested svg are drawn as groups
	"g":              gF,
	"a":              gF,
	"switch":         gF,
	"line":           lineF,
	"stop":           stopF,
	"rect":           rectF,
	"circle":         circleF,
	"ellipse":        circleF, // circleF handles ellipse also
	"polyline":       polylineF,
	"polygon":        polygonF,
	"path":           pathF,
	"desc":           descF,
	"defs":           defsF,
	"title":          titleF,
	"linearGradient": linearGradientF,
	"radialGradient": radialGradientF,
	"text":           textF,
	"tspan":          tspanF,
	"altGlyph":       tspanF,
}

func gF(*iconCursor, []xml.Attr) error { return nil } // g does nothing but push the style

// readLengths reads the attributes listed in names, with their percentage base.
func (c *iconCursor) readLengths(attrs []xml.Attr, names map[string]percentBase, out map[string]float64) error {
	for _, attr := range attrs {
		base, ok := names[attr.Name.Local]
		if !ok {
			continue
		}
		f, err := c.parseUnit(attr.Value, base)
		if err != nil {
			return &AttrError{Attr: attr.Name.Local, Value: attr.Value, Err: err}
		}
		out[attr.Name.Local] = f
	}
	return nil
}

var rectAttrs = map[string]percentBase{
	"x": widthPercentage, "y": heightPercentage,
	"width": widthPercentage, "height": heightPercentage,
	"rx": widthPercentage, "ry": heightPercentage,
}

func rectF(c *iconCursor, attrs []xml.Attr) error {
	v := map[string]float64{}
	if err := c.readLengths(attrs, rectAttrs, v); err != nil {
		return err
	}
	x, y, w, h := v["x"], v["y"], v["width"], v["height"]
	if w < 0 || h < 0 {
		return errors.New("negative size")
	}
	if w == 0 || h == 0 { // not drawn, but not an error
		return nil
	}
	rx, hasRx := v["rx"]
	ry, hasRy := v["ry"]
	switch {
	case hasRx && !hasRy:
		ry = rx
	case hasRy && !hasRx:
		rx = ry
	}
	rx, ry = min(max(rx, 0), w/2), min(max(ry, 0), h/2)
	if rx == 0 || ry == 0 {
		c.path.AddRect(x, y, x+w, y+h)
		return nil
	}
	c.path.AddRoundRect(x, y, x+w, y+h, rx, ry)
	return nil
}

var circleAttrs = map[string]percentBase{
	"cx": widthPercentage, "cy": heightPercentage,
	"r": diagPercentage, "rx": widthPercentage, "ry": heightPercentage,
}

func circleF(c *iconCursor, attrs []xml.Attr) error {
	v := map[string]float64{}
	if err := c.readLengths(attrs, circleAttrs, v); err != nil {
		return err
	}
	rx, ry := v["rx"], v["ry"]
	if r, ok := v["r"]; ok {
		rx, ry = r, r
	} else {
		_, hasRx := v["rx"]
		_, hasRy := v["ry"]
		if hasRx && !hasRy {
			ry = rx
		} else if hasRy && !hasRx {
			rx = ry
		}
	}
	if rx < 0 || ry < 0 {
		return errors.New("negative radius")
	}
	if rx == 0 || ry == 0 { // not drawn, but not an error
		return nil
	}
	c.path.AddEllipse(v["cx"], v["cy"], rx, ry)
	return nil
}

var lineAttrs = map[string]percentBase{
	"x1": widthPercentage, "x2": widthPercentage,
	"y1": heightPercentage, "y2": heightPercentage,
}

func lineF(c *iconCursor, attrs []xml.Attr) error {
	v := map[string]float64{}
	if err := c.readLengths(attrs, lineAttrs, v); err != nil {
		return err
	}
	c.path.Start(svgpath.Point{X: v["x1"], Y: v["y1"]})
	c.path.Line(svgpath.Point{X: v["x2"], Y: v["y2"]})
	return nil
}

// readPoints builds the path of a polyline.
// An invalid list is drawn up to the error.
func (c *iconCursor) readPoints(attrs []xml.Attr) error {
	var (
		points []float64
		err    error
	)
	for _, attr := range attrs {
		if attr.Name.Local == "points" {
			points, err = svgpath.ParseNumbers(attr.Value)
		}
	}
	if len(points)%2 != 0 {
		points = points[:len(points)-1]
		if err == nil {
			err = errors.New("odd number of coordinates")
		}
	}
	if len(points) >= 4 {
		c.path.Start(svgpath.Point{X: points[0], Y: points[1]})
		for i := 2; i < len(points)-1; i += 2 {
			c.path.Line(svgpath.Point{X: points[i], Y: points[i+1]})
		}
	}
	return c.handleError(err)
}

func polylineF(c *iconCursor, attrs []xml.Attr) error { return c.readPoints(attrs) }

func polygonF(c *iconCursor, attrs []xml.Attr) error {
	err := c.readPoints(attrs)
	if len(c.path) > 0 {
		c.path.Stop(true)
	}
	return err
}

func pathF(c *iconCursor, attrs []xml.Attr) error {
	for _, attr := range attrs {
		if attr.Name.Local != "d" {
			continue
		}
		p, err := svgpath.ParsePathData(attr.Value)
		// the path is drawn up to the first error
		c.path = append(c.path, p...)
		if err != nil {
			return c.handleError(&AttrError{Element: "path", Attr: "d", Value: attr.Value, Err: err})
		}
	}
	return nil
}

func descF(c *iconCursor, attrs []xml.Attr) error {
	c.inDescText = true
	c.icon.Descriptions = append(c.icon.Descriptions, "")
	return nil
}

func titleF(c *iconCursor, attrs []xml.Attr) error {
	c.inTitleText = true
	c.icon.Titles = append(c.icon.Titles, "")
	return nil
}

func defsF(c *iconCursor, attrs []xml.Attr) error {
	c.defsDepth++
	return nil
}

func linearGradientF(c *iconCursor, attrs []xml.Attr) error {
	return c.newGradient(attrs, false)
}

func radialGradientF(c *iconCursor, attrs []xml.Attr) error {
	return c.newGradient(attrs, true)
}

func stopF(c *iconCursor, attrs []xml.Attr) error { return c.addStop(attrs) }

// useF draws the referenced element, translated by x, y.
func useF(c *iconCursor, attrs []xml.Attr) error {
	var (
		href string
		x, y float64
		err  error
	)
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "href": // both href and xlink:href
			href = strings.TrimSpace(attr.Value)
		case "x":
			x, err = c.parseUnit(attr.Value, widthPercentage)
		case "y":
			y, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return &AttrError{Element: "use", Attr: attr.Name.Local, Value: attr.Value, Err: err}
		}
	}
	if !strings.HasPrefix(href, "#") {
		return fmt.Errorf("%w: only local references are supported, got %q", ErrUnknownReference, href)
	}
	id := href[1:]
	def, ok := c.icon.ids[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownReference, href)
	}
	if slices.Contains(c.using, id) || len(c.using) >= maxUseDepth {
		return fmt.Errorf("%w: %q", ErrReferenceCycle, href)
	}

	style := c.currentStyle()
	style.Transform = style.Transform.Translate(x, y)

	c.using = append(c.using, id)
	defer func() { c.using = c.using[:len(c.using)-1] }()

	// the referenced element is drawn even when defined in defs
	defsDepth := c.defsDepth
	c.defsDepth = 0
	defer func() { c.defsDepth = defsDepth }()
	return c.replay(def)
}
