package svgicon

import (
	"encoding/xml"

	"github.com/benoitkugler/svgrender/fontdb"
	"github.com/benoitkugler/svgrender/svgpath"
	"github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// textLayout is the state of the text element being read.
// Glyphs are laid out on a single line, from the pen position.
type textLayout struct {
	x, y  float64 // pen position
	chunk textChunk

	started      bool // a character has been laid out
	pendingSpace bool // collapsed white space, emitted before the next character

	buf       sfnt.Buffer
	prevFont  *sfnt.Font
	prevGlyph sfnt.GlyphIndex
}

// textChunk is a run of glyphs starting at an absolute position.
// text-anchor applies to chunks as a whole.
type textChunk struct {
	startX float64
	anchor textAnchor
	paths  []SvgPath
}

func textF(c *iconCursor, attrs []xml.Attr) error {
	c.text = &textLayout{}
	return c.textPosition(attrs, true)
}

func tspanF(c *iconCursor, attrs []xml.Attr) error {
	if c.text == nil { // outside of a text element
		return nil
	}
	return c.textPosition(attrs, false)
}

// firstLength reads the first value of a coordinate list.
func (c *iconCursor) firstLength(v string, asPerc percentBase) (float64, bool, error) {
	fields := splitOnCommaOrSpace(v)
	if len(fields) == 0 {
		return 0, false, nil
	}
	f, err := c.parseUnit(fields[0], asPerc)
	return f, err == nil, err
}

// textPosition reads x, y, dx and dy. An absolute
// position starts a new chunk.
func (c *iconCursor) textPosition(attrs []xml.Attr, isText bool) error {
	var (
		x, y, dx, dy float64
		hasX, hasY   bool
	)
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "x":
			x, hasX, err = c.firstLength(attr.Value, widthPercentage)
		case "y":
			y, hasY, err = c.firstLength(attr.Value, heightPercentage)
		case "dx":
			dx, _, err = c.firstLength(attr.Value, widthPercentage)
		case "dy":
			dy, _, err = c.firstLength(attr.Value, heightPercentage)
		}
		if err != nil {
			return &AttrError{Attr: attr.Name.Local, Value: attr.Value, Err: err}
		}
	}
	t := c.text
	newChunk := isText || hasX || hasY
	if newChunk {
		c.flushChunk()
	}
	if hasX {
		t.x = x
	}
	if hasY {
		t.y = y
	}
	t.x += dx
	t.y += dy
	if newChunk {
		t.chunk = textChunk{startX: t.x, anchor: c.currentStyle().font.anchor}
		t.prevFont = nil
	}
	return nil
}

// addText lays out the character data, collapsing white spaces.
func (c *iconCursor) addText(data string) {
	t := c.text
	style := c.currentStyle()
	if c.opts.Fonts == nil || style.font.size <= 0 {
		return
	}
	aspect := font.Aspect{Style: font.StyleNormal, Weight: style.font.weight}
	if style.font.italic {
		aspect.Style = font.StyleItalic
	}
	face := c.opts.Fonts.Match(fontdb.Query{Families: style.font.families, Aspect: aspect})
	if face == nil {
		return
	}
	f, err := face.Font()
	if err != nil {
		_ = c.handleError(err) // text is skipped, even in strict mode
		return
	}
	if f != t.prevFont {
		t.prevFont, t.prevGlyph = f, 0
	}
	ppem := fixed.Int26_6(style.font.size * 64)

	var p svgpath.Path
	for _, r := range data {
		switch r {
		case '\n', '\r':
			continue
		case ' ', '\t':
			if t.started {
				t.pendingSpace = true
			}
			continue
		}
		if t.pendingSpace {
			t.pendingSpace = false
			t.layoutGlyph(f, ' ', ppem, &p)
		}
		t.layoutGlyph(f, r, ppem, &p)
		t.started = true
	}
	if len(p) > 0 {
		t.chunk.paths = append(t.chunk.paths, SvgPath{Path: p, Style: *style})
	}
}

// layoutGlyph appends the outline of r at the pen position
// and advances the pen.
func (t *textLayout) layoutGlyph(f *sfnt.Font, r rune, ppem fixed.Int26_6, p *svgpath.Path) {
	gi, err := f.GlyphIndex(&t.buf, r)
	if err != nil {
		return
	}
	if t.prevGlyph != 0 && gi != 0 {
		// fonts without kerning table return an error
		if kern, err := f.Kern(&t.buf, t.prevGlyph, gi, ppem, xfont.HintingNone); err == nil {
			t.x += float64(kern) / 64
		}
	}
	if segments, err := f.LoadGlyph(&t.buf, gi, ppem, nil); err == nil {
		appendOutline(p, segments, svgpath.Point{X: t.x, Y: t.y})
	}
	if advance, err := f.GlyphAdvance(&t.buf, gi, ppem, xfont.HintingNone); err == nil {
		t.x += float64(advance) / 64
	}
	t.prevGlyph = gi
}

// appendOutline converts glyph segments, whose Y axis points down,
// to closed contours offset by origin.
func appendOutline(p *svgpath.Path, segments sfnt.Segments, origin svgpath.Point) {
	at := func(q fixed.Point26_6) svgpath.Point { return svgpath.FromFixed(q).Add(origin) }
	inContour := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if inContour {
				p.Stop(true)
			}
			p.Start(at(seg.Args[0]))
			inContour = true
		case sfnt.SegmentOpLineTo:
			p.Line(at(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			p.QuadBezier(at(seg.Args[0]), at(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			p.CubeBezier(at(seg.Args[0]), at(seg.Args[1]), at(seg.Args[2]))
		}
	}
	if inContour {
		p.Stop(true)
	}
}

// flushChunk applies the text anchor to the current chunk
// and adds its glyphs to the scene.
func (c *iconCursor) flushChunk() {
	t := c.text
	if len(t.chunk.paths) == 0 {
		return
	}
	var shift float64
	width := t.x - t.chunk.startX
	switch t.chunk.anchor {
	case anchorMiddle:
		shift = -width / 2
	case anchorEnd:
		shift = -width
	}
	for _, sp := range t.chunk.paths {
		if shift != 0 {
			sp.Path = sp.Path.Translate(shift, 0)
		}
		c.icon.SVGPaths = append(c.icon.SVGPaths, sp)
	}
	t.chunk.paths = nil
}

func (c *iconCursor) endText(name string) {
	if c.text == nil || name != "text" {
		return
	}
	c.flushChunk()
	c.text = nil
}
