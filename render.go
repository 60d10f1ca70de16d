package svgrender

import (
	"bytes"
	"image"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/benoitkugler/svgrender/fontdb"
	"github.com/benoitkugler/svgrender/internal/logging"
	"github.com/benoitkugler/svgrender/svgicon"
	"github.com/benoitkugler/svgrender/svgraster"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Image is a rendered document: row-major RGBA pixels,
// with premultiplied alpha, 4 bytes per pixel.
type Image struct {
	Width, Height uint32
	Pix           []byte
}

// RGBA returns a view of img sharing its pixels.
func (img *Image) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    img.Pix,
		Stride: 4 * int(img.Width),
		Rect:   image.Rect(0, 0, int(img.Width), int(img.Height)),
	}
}

// Document is a parsed SVG document. It is immutable and
// may be rendered concurrently.
type Document struct {
	icon    *svgicon.SvgIcon
	size    Size
	variant fontdb.Variant
}

// IntrinsicSize returns the size of the document, in pixels.
// It may be zero.
func (d *Document) IntrinsicSize() Size { return d.size }

// FontVariant returns the font catalog used to resolve the document.
func (d *Document) FontVariant() fontdb.Variant { return d.variant }

// Title returns the first title of the document, if any.
func (d *Document) Title() string {
	if len(d.icon.Titles) == 0 {
		return ""
	}
	return d.icon.Titles[0]
}

// Render rasterizes the document into a width x height image.
// A zero dimension is computed from the intrinsic size, see ComputeFit.
func (d *Document) Render(width, height uint32) (*Image, error) {
	start := time.Now()
	fit, err := ComputeFit(d.size, width, height)
	if err != nil {
		return nil, err
	}
	sx, sy := fit.scale(d.size)
	img, err := svgraster.Rasterize(d.icon, fit.Width, fit.Height, sx, sy)
	if err != nil {
		return nil, &RenderError{Kind: AllocationFailed, Width: fit.Width, Height: fit.Height, Err: err}
	}
	logging.Logger().Debug("svgrender: document rendered",
		"width", fit.Width, "height", fit.Height, "elapsed", time.Since(start))
	return &Image{Width: fit.Width, Height: fit.Height, Pix: img.Pix}, nil
}

// Renderer opens documents, resolving text with its own font cache.
// It is safe for concurrent use.
type Renderer struct {
	cache *fontdb.Cache
	mode  svgicon.ErrorMode
}

// New returns a renderer configured by opts. Invalid option values
// are replaced by their default; use Options.Validate to detect them.
// The font catalogs are built on first use.
func New(opts Options) *Renderer {
	cfg, mode := opts.cacheConfig()
	return &Renderer{cache: fontdb.NewCache(cfg), mode: mode}
}

var defaultRenderer = sync.OnceValue(func() *Renderer {
	return &Renderer{cache: fontdb.Default()}
})

// Open parses data with the default renderer, which
// uses the process wide font cache.
func Open(data []byte) (*Document, error) { return defaultRenderer().Open(data) }

// RenderSVG opens and renders data with the default renderer.
func RenderSVG(data []byte, width, height uint32) (*Image, error) {
	return defaultRenderer().RenderSVG(data, width, height)
}

// Open parses data, which must be UTF-8 encoded.
func (r *Renderer) Open(data []byte) (*Document, error) {
	start := time.Now()
	if offset := invalidUTF8(data); offset != -1 {
		return nil, &ParseError{Kind: InvalidEncoding, Err: &EncodingError{Offset: offset}}
	}

	variant := fontdb.Empty
	if needsFonts(data) {
		variant = fontdb.WithSystemFonts
	}
	catalog := r.cache.Get(variant)

	input := transform.NewReader(bytes.NewReader(data), unicode.UTF8BOM.NewDecoder())
	icon, err := svgicon.ReadIconStream(input, svgicon.Options{Fonts: catalog, ErrorMode: r.mode, UTF8: true})
	if err != nil {
		return nil, &ParseError{Kind: MalformedDocument, Err: err}
	}
	doc := &Document{
		icon:    icon,
		size:    Size{Width: float32(icon.Width), Height: float32(icon.Height)},
		variant: variant,
	}
	logging.Logger().Debug("svgrender: document opened", "fonts", variant,
		"width", doc.size.Width, "height", doc.size.Height, "elapsed", time.Since(start))
	return doc, nil
}

// RenderSVG opens and renders data in one call.
func (r *Renderer) RenderSVG(data []byte, width, height uint32) (*Image, error) {
	doc, err := r.Open(data)
	if err != nil {
		return nil, err
	}
	return doc.Render(width, height)
}

// invalidUTF8 returns the offset of the first invalid sequence, or -1.
func invalidUTF8(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
