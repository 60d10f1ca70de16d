package fontdb

import (
	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// EmbeddedFaces returns the Go fonts bundled with the binary.
// They back the FallbackFamily and FallbackMonoFamily families.
func EmbeddedFaces() []*Face {
	regular := font.Aspect{Style: font.StyleNormal, Weight: font.WeightNormal}
	bold := font.Aspect{Style: font.StyleNormal, Weight: font.WeightBold}
	italic := font.Aspect{Style: font.StyleItalic, Weight: font.WeightNormal}
	boldItalic := font.Aspect{Style: font.StyleItalic, Weight: font.WeightBold}
	return []*Face{
		NewFace(FallbackFamily, regular, Source{Data: goregular.TTF}),
		NewFace(FallbackFamily, bold, Source{Data: gobold.TTF}),
		NewFace(FallbackFamily, italic, Source{Data: goitalic.TTF}),
		NewFace(FallbackFamily, boldItalic, Source{Data: gobolditalic.TTF}),
		NewFace(FallbackMonoFamily, regular, Source{Data: gomono.TTF}),
		NewFace(FallbackMonoFamily, bold, Source{Data: gomonobold.TTF}),
	}
}
