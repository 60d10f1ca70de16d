package svgicon

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

type colorKind uint8

const (
	colorNone colorKind = iota
	colorPlain
	colorCurrent
)

// colorValue is a parsed <color> or the 'none' keyword.
type colorValue struct {
	kind colorKind
	c    color.NRGBA
}

// parseSVGColor parses the color syntaxes of CSS 3:
// #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(), rgba(), named colors,
// plus the keywords none, transparent and currentColor.
func parseSVGColor(s string) (colorValue, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "none", "":
		return colorValue{kind: colorNone}, nil
	case "transparent":
		return colorValue{kind: colorPlain}, nil
	case "currentcolor":
		return colorValue{kind: colorCurrent}, nil
	}
	if strings.HasPrefix(v, "#") {
		c, err := parseHexColor(v[1:])
		if err != nil {
			return colorValue{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return colorValue{kind: colorPlain, c: c}, nil
	}
	if strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba(") {
		c, err := parseFunctionalColor(v)
		if err != nil {
			return colorValue{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
		return colorValue{kind: colorPlain, c: c}, nil
	}
	if c, ok := colornames.Map[v]; ok {
		return colorValue{kind: colorPlain, c: color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}}, nil
	}
	return colorValue{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHexColor(h string) (color.NRGBA, error) {
	var digits [8]uint8
	if len(h) != 3 && len(h) != 4 && len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, strconv.ErrSyntax
	}
	for i := 0; i < len(h); i++ {
		b := h[i]
		switch {
		case '0' <= b && b <= '9':
			digits[i] = b - '0'
		case 'a' <= b && b <= 'f':
			digits[i] = b - 'a' + 10
		default:
			return color.NRGBA{}, strconv.ErrSyntax
		}
	}
	switch len(h) {
	case 3:
		return color.NRGBA{R: digits[0] * 17, G: digits[1] * 17, B: digits[2] * 17, A: 0xff}, nil
	case 4:
		return color.NRGBA{R: digits[0] * 17, G: digits[1] * 17, B: digits[2] * 17, A: digits[3] * 17}, nil
	case 6:
		return color.NRGBA{R: digits[0]<<4 | digits[1], G: digits[2]<<4 | digits[3], B: digits[4]<<4 | digits[5], A: 0xff}, nil
	default:
		return color.NRGBA{
			R: digits[0]<<4 | digits[1], G: digits[2]<<4 | digits[3],
			B: digits[4]<<4 | digits[5], A: digits[6]<<4 | digits[7],
		}, nil
	}
}

// parseFunctionalColor parses rgb(r, g, b) and rgba(r, g, b, a),
// with either integer or percentage channels.
func parseFunctionalColor(v string) (color.NRGBA, error) {
	open, end := strings.IndexByte(v, '('), strings.IndexByte(v, ')')
	if end < open {
		return color.NRGBA{}, fmt.Errorf("missing parenthesis")
	}
	args := strings.FieldsFunc(v[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/' || r == '\t'
	})
	if len(args) != 3 && len(args) != 4 {
		return color.NRGBA{}, ErrParamMismatch
	}
	var channels [3]uint8
	for i, arg := range args[:3] {
		var (
			f   float64
			err error
		)
		if strings.HasSuffix(arg, "%") {
			f, err = strconv.ParseFloat(arg[:len(arg)-1], 64)
			f = f * 255 / 100
		} else {
			f, err = strconv.ParseFloat(arg, 64)
		}
		if err != nil {
			return color.NRGBA{}, err
		}
		channels[i] = uint8(math.Round(math.Max(0, math.Min(255, f))))
	}
	alpha := 1.
	if len(args) == 4 {
		var err error
		if alpha, err = parseOpacity(args[3]); err != nil {
			return color.NRGBA{}, err
		}
	}
	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: uint8(math.Round(alpha * 255))}, nil
}

// parseOpacity reads a number or a percentage, clamped to [0, 1].
func parseOpacity(v string) (float64, error) {
	f, err := readFraction(v)
	if err != nil {
		return 1, err
	}
	return clamp01(f), nil
}

// readPaint parses the value of fill or stroke.
func (c *iconCursor) readPaint(v string, current color.NRGBA) (Pattern, error) {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "url(") {
		end := strings.IndexByte(v, ')')
		if end == -1 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColor, v)
		}
		id := strings.Trim(strings.TrimSpace(v[4:end]), `'"`)
		ref := paintRef{id: strings.TrimPrefix(id, "#")}
		if fallback := strings.TrimSpace(v[end+1:]); fallback != "" {
			pattern, err := c.readPaint(fallback, current)
			if err != nil {
				return nil, err
			}
			ref.fallback = pattern
		}
		return ref, nil
	}
	col, err := parseSVGColor(v)
	if err != nil {
		return nil, err
	}
	switch col.kind {
	case colorPlain:
		return PlainColor{col.c}, nil
	case colorCurrent:
		return PlainColor{current}, nil
	}
	return nil, nil
}
