package svgicon

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// diagonal is the normalized diagonal used to resolve
// percentages which are neither horizontal nor vertical.
func (b Bounds) diagonal() float64 {
	return math.Sqrt(b.W*b.W+b.H*b.H) / math.Sqrt2
}

type percentBase uint8

const (
	widthPercentage percentBase = iota
	heightPercentage
	diagPercentage
)

// absolute units, in pixels (96 per inch)
var unitFactors = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 96. / 72,
	"pc": 96. / 6,
	"mm": 96. / 25.4,
	"cm": 96. / 2.54,
	"in": 96,
}

// splitUnit separates the number and the unit of a length.
func splitUnit(s string) (num, unit string) {
	s = strings.TrimSpace(s)
	i := len(s)
	for i > 0 {
		b := s[i-1]
		if ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || b == '%' {
			i--
			continue
		}
		break
	}
	return s[:i], strings.ToLower(s[i:])
}

// resolveLength converts a length to pixels. Percentages are resolved
// against ref, font relative units against fontSize.
func resolveLength(s string, ref, fontSize float64) (float64, error) {
	num, unit := splitUnit(s)
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	switch unit {
	case "%":
		return f * ref / 100, nil
	case "em":
		return f * fontSize, nil
	case "ex":
		return f * fontSize / 2, nil
	}
	factor, ok := unitFactors[unit]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit in %q", ErrInvalidLength, s)
	}
	return f * factor, nil
}

// parseUnit converts a length in the current user space.
func (c *iconCursor) parseUnit(s string, asPerc percentBase) (float64, error) {
	var ref float64
	vb := c.icon.ViewBox
	switch asPerc {
	case widthPercentage:
		ref = vb.W
	case heightPercentage:
		ref = vb.H
	case diagPercentage:
		ref = vb.diagonal()
	}
	return resolveLength(s, ref, c.currentStyle().font.size)
}

// readFraction reads a number or a percentage, returned as a fraction.
func readFraction(v string) (f float64, err error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err = strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, v)
	}
	return f / d, nil
}
