package svgrender

import (
	"bytes"
	"strings"
)

// textKeywords are the markers of the elements requiring fonts,
// with or without namespace prefix.
var textKeywords = [...]string{
	"<text", ":text",
	"<tspan", ":tspan",
	"<foreignObject", ":foreignObject",
	"<altGlyph", ":altGlyph",
}

// NeedsFonts reports whether doc may contain text, and thus requires
// the system fonts to be rendered.
// It is a case sensitive substring search, which also matches
// keywords found in comments or attribute values.
func NeedsFonts(doc string) bool {
	for _, kw := range textKeywords {
		if strings.Contains(doc, kw) {
			return true
		}
	}
	return false
}

func needsFonts(data []byte) bool {
	for _, kw := range textKeywords {
		if bytes.Contains(data, []byte(kw)) {
			return true
		}
	}
	return false
}
