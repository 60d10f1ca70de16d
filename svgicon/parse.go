package svgicon

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgrender/svgpath"
	"github.com/go-text/typesetting/font"
)

// declaration is a style property, coming either from
// a presentation attribute or from the style attribute.
type declaration struct {
	key, value string
}

// declarations returns the style properties of an element: the presentation
// attributes followed by the content of the style attribute, which
// takes precedence.
func declarations(attrs []xml.Attr) []declaration {
	var out, fromStyle []declaration
	for _, attr := range attrs {
		if attr.Name.Local != "style" {
			out = append(out, declaration{attr.Name.Local, strings.TrimSpace(attr.Value)})
			continue
		}
		for _, pair := range strings.Split(attr.Value, ";") {
			k, v, ok := strings.Cut(pair, ":")
			if !ok {
				continue
			}
			v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "!important"))
			fromStyle = append(fromStyle, declaration{strings.ToLower(strings.TrimSpace(k)), v})
		}
	}
	return append(out, fromStyle...)
}

// isDisplayed returns false for display="none"
func isDisplayed(attrs []xml.Attr) bool {
	displayed := true
	for _, decl := range declarations(attrs) {
		if decl.key == "display" {
			displayed = decl.value != "none"
		}
	}
	return displayed
}

func (c *iconCursor) currentStyle() *PathStyle {
	return &c.styleStack[len(c.styleStack)-1]
}

// pushStyle reads all recognized style properties of the element
// and pushes the resulting style on top of the stack.
// Invalid values are handled according to the error mode.
func (c *iconCursor) pushStyle(element string, attrs []xml.Attr) error {
	curStyle := *c.currentStyle() // copy of the parent style
	decls := declarations(attrs)
	// currentColor refers to the color property of the same element
	for _, decl := range decls {
		if decl.key != "color" {
			continue
		}
		col, err := parseSVGColor(decl.value)
		if err == nil && col.kind == colorPlain {
			curStyle.color = col.c
		} else if err != nil {
			if err = c.handleError(&AttrError{Element: element, Attr: decl.key, Value: decl.value, Err: err}); err != nil {
				return err
			}
		}
	}
	for _, decl := range decls {
		if decl.key == "color" {
			continue
		}
		if err := c.readStyleAttr(&curStyle, decl.key, decl.value); err != nil {
			err = c.handleError(&AttrError{Element: element, Attr: decl.key, Value: decl.value, Err: err})
			if err != nil {
				return err
			}
		}
	}
	c.styleStack = append(c.styleStack, curStyle)
	return nil
}

func (c *iconCursor) popStyle() {
	if len(c.styleStack) > 1 {
		c.styleStack = c.styleStack[:len(c.styleStack)-1]
	}
}

func (c *iconCursor) readStyleAttr(curStyle *PathStyle, k, v string) error {
	switch k {
	case "fill":
		pattern, err := c.readPaint(v, curStyle.color)
		if err != nil {
			return err
		}
		curStyle.FillerColor = pattern
	case "stroke":
		pattern, err := c.readPaint(v, curStyle.color)
		if err != nil {
			return err
		}
		curStyle.LinerColor = pattern
	case "fill-rule":
		switch v {
		case "nonzero":
			curStyle.UseNonZeroWinding = true
		case "evenodd":
			curStyle.UseNonZeroWinding = false
		default:
			return fmt.Errorf("unknown fill rule %q", v)
		}
	case "stroke-linegap":
		switch v {
		case "flat":
			curStyle.Join.LineGap = FlatGap
		case "round":
			curStyle.Join.LineGap = RoundGap
		case "cubic":
			curStyle.Join.LineGap = CubicGap
		case "quadratic":
			curStyle.Join.LineGap = QuadraticGap
		}
	case "stroke-leadlinecap":
		curStyle.Join.LeadLineCap = parseCap(v, curStyle.Join.LeadLineCap)
	case "stroke-linecap":
		curStyle.Join.TrailLineCap = parseCap(v, curStyle.Join.TrailLineCap)
	case "stroke-linejoin":
		switch v {
		case "miter":
			curStyle.Join.LineJoin = Miter
		case "miter-clip":
			curStyle.Join.LineJoin = MiterClip
		case "arc-clip":
			curStyle.Join.LineJoin = ArcClip
		case "round":
			curStyle.Join.LineJoin = Round
		case "arc":
			curStyle.Join.LineJoin = Arc
		case "bevel":
			curStyle.Join.LineJoin = Bevel
		default:
			return fmt.Errorf("unknown line join %q", v)
		}
	case "stroke-miterlimit":
		mLimit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		if mLimit < 1 {
			return fmt.Errorf("miter limit must be at least 1")
		}
		curStyle.Join.MiterLimit = fToFixed(mLimit)
	case "stroke-width":
		width, err := c.parseUnit(v, diagPercentage)
		if err != nil {
			return err
		}
		if width < 0 {
			return fmt.Errorf("negative stroke width")
		}
		curStyle.LineWidth = width
	case "stroke-dashoffset":
		dashOffset, err := c.parseUnit(v, diagPercentage)
		if err != nil {
			return err
		}
		curStyle.Dash.DashOffset = dashOffset
	case "stroke-dasharray":
		dashes, err := c.parseDashArray(v)
		if err != nil {
			return err
		}
		curStyle.Dash.Dash = dashes
	case "opacity", "stroke-opacity", "fill-opacity":
		op, err := parseOpacity(v)
		if err != nil {
			return err
		}
		if k != "stroke-opacity" {
			curStyle.FillOpacity *= op
		}
		if k != "fill-opacity" {
			curStyle.LineOpacity *= op
		}
	case "transform":
		m, err := parseTransform(curStyle.Transform, v)
		if err != nil {
			return err
		}
		curStyle.Transform = m
	case "font":
		return c.readFontShorthand(curStyle, v)
	case "font-family":
		curStyle.font.families = parseFamilies(v)
	case "font-size":
		size, err := parseFontSize(v, curStyle.font.size)
		if err != nil {
			return err
		}
		curStyle.font.size = size
	case "font-weight":
		w, err := parseFontWeight(v, curStyle.font.weight)
		if err != nil {
			return err
		}
		curStyle.font.weight = w
	case "font-style":
		switch v {
		case "normal":
			curStyle.font.italic = false
		case "italic", "oblique":
			curStyle.font.italic = true
		default:
			return fmt.Errorf("unknown font style %q", v)
		}
	case "text-anchor":
		switch v {
		case "start":
			curStyle.font.anchor = anchorStart
		case "middle":
			curStyle.font.anchor = anchorMiddle
		case "end":
			curStyle.font.anchor = anchorEnd
		default:
			return fmt.Errorf("unknown text anchor %q", v)
		}
	}
	return nil
}

func parseCap(v string, def CapMode) CapMode {
	switch v {
	case "butt":
		return ButtCap
	case "round":
		return RoundCap
	case "square":
		return SquareCap
	case "cubic":
		return CubicCap
	case "quadratic":
		return QuadraticCap
	}
	return def
}

// parseDashArray returns nil for 'none' and for arrays
// which would not produce dashes.
func (c *iconCursor) parseDashArray(v string) ([]float64, error) {
	if v == "none" {
		return nil, nil
	}
	fields := splitOnCommaOrSpace(v)
	dashes := make([]float64, 0, len(fields))
	var sum float64
	for _, field := range fields {
		d, err := c.parseUnit(field, diagPercentage)
		if err != nil {
			return nil, err
		}
		if d < 0 {
			return nil, fmt.Errorf("negative dash length")
		}
		sum += d
		dashes = append(dashes, d)
	}
	if sum == 0 {
		return nil, nil
	}
	if len(dashes)%2 == 1 { // an odd list is repeated
		dashes = append(dashes, dashes...)
	}
	return dashes, nil
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
}

func readTransformAttr(m1 Matrix2D, k string, points []float64) (Matrix2D, error) {
	ln := len(points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(points[1], points[2]).
				Rotate(points[0]*math.Pi/180).
				Translate(-points[1], -points[2])
		} else {
			return m1, ErrParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(points[0], points[1])
		} else {
			return m1, ErrParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(points[0] * math.Pi / 180)
		} else {
			return m1, ErrParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(points[0] * math.Pi / 180)
		} else {
			return m1, ErrParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(points[0], points[0])
		} else if ln == 2 {
			m1 = m1.Scale(points[0], points[1])
		} else {
			return m1, ErrParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(Matrix2D{
				A: points[0],
				B: points[1],
				C: points[2],
				D: points[3],
				E: points[4],
				F: points[5]})
		} else {
			return m1, ErrParamMismatch
		}
	default:
		return m1, fmt.Errorf("unknown transform %q", k)
	}
	return m1, nil
}

// parseTransform applies the transform list v on top of m1.
func parseTransform(m1 Matrix2D, v string) (Matrix2D, error) {
	for _, t := range strings.Split(v, ")") {
		t = strings.Trim(t, " \t\n\r,")
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, ErrParamMismatch // badly formed transformation
		}
		points, err := svgpath.ParseNumbers(d[1])
		if err != nil {
			return m1, err
		}
		m1, err = readTransformAttr(m1, strings.ToLower(strings.TrimSpace(d[0])), points)
		if err != nil {
			return m1, err
		}
	}
	return m1, nil
}

// parseFamilies splits a font-family list, removing quotes.
func parseFamilies(v string) []string {
	var out []string
	for _, fam := range strings.Split(v, ",") {
		fam = strings.Trim(strings.TrimSpace(fam), `'"`)
		if fam != "" {
			out = append(out, fam)
		}
	}
	return out
}

// absolute size keywords, relative to medium
var fontSizeKeywords = map[string]float64{
	"xx-small": -3, "x-small": -2, "small": -1, "medium": 0,
	"large": 1, "x-large": 2, "xx-large": 3,
}

const fontSizeRatio = 1.2

func parseFontSize(v string, parent float64) (float64, error) {
	if step, ok := fontSizeKeywords[v]; ok {
		return defaultFontSize * math.Pow(fontSizeRatio, step), nil
	}
	switch v {
	case "larger":
		return parent * fontSizeRatio, nil
	case "smaller":
		return parent / fontSizeRatio, nil
	}
	size, err := resolveLength(v, parent, parent)
	if err != nil {
		return parent, err
	}
	if size < 0 {
		return parent, fmt.Errorf("negative font size")
	}
	return size, nil
}

func parseFontWeight(v string, parent font.Weight) (font.Weight, error) {
	switch v {
	case "normal":
		return font.WeightNormal, nil
	case "bold":
		return font.WeightBold, nil
	case "bolder":
		switch {
		case parent < 350:
			return 400, nil
		case parent < 550:
			return 700, nil
		case parent < 900:
			return 900, nil
		}
		return parent, nil
	case "lighter":
		switch {
		case parent < 100:
			return parent, nil
		case parent < 550:
			return 100, nil
		case parent < 750:
			return 400, nil
		}
		return 700, nil
	}
	w, err := strconv.ParseFloat(v, 32)
	if err != nil || w < 1 || w > 1000 {
		return parent, fmt.Errorf("invalid font weight %q", v)
	}
	return font.Weight(w), nil
}

// readFontShorthand handles the 'font' property:
// [style] [weight] size[/line-height] family-list
func (c *iconCursor) readFontShorthand(curStyle *PathStyle, v string) error {
	fields := strings.Fields(v)
	for i, field := range fields {
		switch field {
		case "normal":
			continue
		case "italic", "oblique":
			curStyle.font.italic = true
			continue
		case "bold", "bolder", "lighter":
			curStyle.font.weight, _ = parseFontWeight(field, curStyle.font.weight)
			continue
		}
		if w, err := strconv.Atoi(field); err == nil && w%100 == 0 && w >= 100 && w <= 900 {
			curStyle.font.weight = font.Weight(w)
			continue
		}
		sizeField, _, _ := strings.Cut(field, "/")
		size, err := parseFontSize(sizeField, curStyle.font.size)
		if err != nil {
			return err
		}
		curStyle.font.size = size
		if families := parseFamilies(strings.Join(fields[i+1:], " ")); len(families) != 0 {
			curStyle.font.families = families
		}
		return nil
	}
	return fmt.Errorf("missing font size")
}
