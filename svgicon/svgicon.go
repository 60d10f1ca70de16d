// Package svgicon parses SVG documents into a resolved scene:
// a list of styled paths in user space, plus the document intrinsic size.
// The scene can then be consumed by painting drivers, see the
// svgdraw and svgraster packages.
//
// Only the static subset of SVG needed to render icons and
// illustrations is supported: shapes, paths, groups, use, gradients
// and text. Non rendered containers (clipPath, mask, filter, ...) are skipped.
package svgicon

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/benoitkugler/svgrender/fontdb"
	"github.com/benoitkugler/svgrender/svgpath"
	"golang.org/x/net/html/charset"
)

// SvgPath binds a style to a path
type SvgPath struct {
	Path  svgpath.Path
	Style PathStyle
}

// SvgIcon holds data from parsed SVGs.
// See the svgdraw package to use it.
type SvgIcon struct {
	ViewBox      Bounds
	Titles       []string // Title elements collect here
	Descriptions []string // Description elements collect here
	SVGPaths     []SvgPath

	// Transform maps the root user space to the viewport,
	// according to the viewBox and preserveAspectRatio attributes.
	Transform Matrix2D

	// Width and Height are the intrinsic size, in pixels.
	// They are finite and non negative, but may be zero.
	Width, Height float64

	grads map[string]*Gradient
	ids   map[string]*node
}

// Options parametrize the parsing of a document.
type Options struct {
	// Fonts is used to resolve text elements.
	// A nil catalog disables text rendering.
	Fonts *fontdb.Catalog

	ErrorMode ErrorMode

	// UTF8 ignores the encoding declared in the XML prolog:
	// the input is always decoded as UTF-8.
	UTF8 bool
}

// node is a recorded element, replayed by 'use'.
// Character data is stored as a child with an empty name.
type node struct {
	name     string
	attrs    []xml.Attr
	text     string
	children []*node
}

const (
	// maximum nesting of 'use' references
	maxUseDepth = 32
	// maximum number of elements instantiated by 'use' references
	maxUseElements = 100_000
)

// iconCursor is used while parsing SVG files
type iconCursor struct {
	icon       *SvgIcon
	opts       Options
	styleStack []PathStyle
	path       svgpath.Path
	grad       *Gradient
	text       *textLayout

	seenRoot, rootClosed    bool
	depth                   int // of the current element, the root being 1
	skipDepth               int // > 0 inside a skipped subtree
	defsDepth               int // > 0 inside defs
	inTitleText, inDescText bool

	root rootAttrs

	recording []*node  // open recorded elements
	using     []string // active 'use' references
	replayed  int      // elements instantiated by 'use'

	// fatal aborts the parsing, whatever the error mode
	fatal error
}

// ReadIconStream reads the Icon from the given io.Reader.
// Unsupported elements and invalid attributes are handled according to
// opts.ErrorMode. An error is returned for invalid XML, a document
// whose root is not an <svg> element, or 'use' references instantiating
// more than 100 000 elements.
func ReadIconStream(stream io.Reader, opts Options) (*SvgIcon, error) {
	icon := &SvgIcon{
		grads:     make(map[string]*Gradient),
		ids:       make(map[string]*node),
		Transform: Identity,
	}
	cursor := &iconCursor{styleStack: []PathStyle{DefaultStyle}, icon: icon, opts: opts}
	decoder := xml.NewDecoder(stream)
	if opts.UTF8 {
		decoder.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }
	} else {
		decoder.CharsetReader = charset.NewReaderLabel
	}
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			if cursor.rootClosed {
				return nil, errors.New("svgicon: unexpected element after the root element")
			}
			cursor.record(se)
			if err = cursor.startElement(se.Name.Local, se.Attr); err != nil {
				return nil, err
			}
			if cursor.fatal != nil {
				return nil, cursor.fatal
			}
			if !cursor.seenRoot {
				return nil, ErrNotSVG
			}
		case xml.EndElement:
			cursor.endRecord()
			if err = cursor.endElement(se.Name.Local); err != nil {
				return nil, err
			}
			if cursor.depth == 0 {
				cursor.rootClosed = true
			}
		case xml.CharData:
			cursor.recordText(se)
			if err = cursor.charData(string(se)); err != nil {
				return nil, err
			}
		}
	}
	if !cursor.seenRoot {
		return nil, ErrNoRoot
	}
	if err := cursor.finish(); err != nil {
		return nil, err
	}
	return icon, nil
}

// elements not rendered, skipped with their children
var skippedElements = map[string]bool{
	"clipPath":      true,
	"mask":          true,
	"pattern":       true,
	"marker":        true,
	"symbol":        true,
	"foreignObject": true,
	"style":         true,
	"script":        true,
	"metadata":      true,
	"filter":        true,
}

// elements processed inside defs
var allowedInDefs = map[string]bool{
	"defs":           true,
	"linearGradient": true,
	"radialGradient": true,
	"stop":           true,
}

func (c *iconCursor) startElement(name string, attrs []xml.Attr) error {
	c.depth++
	if c.skipDepth > 0 {
		c.skipDepth++
		return nil
	}
	if !c.seenRoot {
		if name != "svg" {
			return nil // reported by the caller
		}
		c.seenRoot = true
		if err := c.readRoot(attrs); err != nil {
			return err
		}
	}

	df, known := drawFuncs[name]
	if !known || skippedElements[name] || !isDisplayed(attrs) {
		c.skipDepth = 1
		if !known && !skippedElements[name] {
			return c.handleError(fmt.Errorf("%w: <%s>", ErrUnsupportedElement, name))
		}
		return nil
	}

	if err := c.pushStyle(name, attrs); err != nil {
		return err
	}
	if c.defsDepth > 0 && !allowedInDefs[name] {
		return nil
	}
	if err := df(c, attrs); err != nil {
		if err = c.handleError(fmt.Errorf("<%s>: %w", name, err)); err != nil {
			return err
		}
	}
	if len(c.path) > 0 {
		// the element produced a path
		c.icon.SVGPaths = append(c.icon.SVGPaths,
			SvgPath{Path: append(svgpath.Path(nil), c.path...), Style: *c.currentStyle()})
		c.path = c.path[:0]
	}
	return nil
}

func (c *iconCursor) endElement(name string) error {
	c.depth--
	if c.skipDepth > 0 {
		c.skipDepth--
		return nil
	}
	defer c.popStyle()
	switch name {
	case "defs":
		c.defsDepth--
	case "title":
		c.inTitleText = false
	case "desc":
		c.inDescText = false
	case "radialGradient", "linearGradient":
		c.grad = nil
	case "text", "tspan", "altGlyph":
		if c.defsDepth == 0 {
			c.endText(name)
		}
	}
	return nil
}

func (c *iconCursor) charData(data string) error {
	if c.skipDepth > 0 {
		return nil
	}
	if c.inTitleText {
		c.icon.Titles[len(c.icon.Titles)-1] += data
	}
	if c.inDescText {
		c.icon.Descriptions[len(c.icon.Descriptions)-1] += data
	}
	if c.text != nil {
		c.addText(data)
	}
	return nil
}

// record stores elements with an id, and their subtree, so
// that 'use' can replay them.
func (c *iconCursor) record(se xml.StartElement) {
	var id string
	for _, attr := range se.Attr {
		if attr.Name.Local == "id" {
			id = attr.Value
		}
	}
	if id == "" && len(c.recording) == 0 {
		return
	}
	n := &node{name: se.Name.Local, attrs: se.Copy().Attr}
	if len(c.recording) > 0 {
		parent := c.recording[len(c.recording)-1]
		parent.children = append(parent.children, n)
	}
	c.recording = append(c.recording, n)
	if _, has := c.icon.ids[id]; id != "" && !has {
		c.icon.ids[id] = n
	}
}

func (c *iconCursor) endRecord() {
	if len(c.recording) > 0 {
		c.recording = c.recording[:len(c.recording)-1]
	}
}

func (c *iconCursor) recordText(data xml.CharData) {
	if len(c.recording) > 0 {
		parent := c.recording[len(c.recording)-1]
		parent.children = append(parent.children, &node{text: string(data)})
	}
}

// replay feeds the recorded element n to the parser.
func (c *iconCursor) replay(n *node) error {
	c.replayed++
	if c.replayed > maxUseElements && c.fatal == nil {
		c.fatal = fmt.Errorf("%w: more than %d elements instantiated by <use>", ErrTooManyElements, maxUseElements)
	}
	if c.fatal != nil {
		return c.fatal
	}
	name := n.name
	if name == "symbol" || name == "svg" {
		// referenced symbols and nested svg are drawn as groups
		name = "g"
	}
	if err := c.startElement(name, n.attrs); err != nil {
		return err
	}
	for _, child := range n.children {
		var err error
		if child.name == "" {
			err = c.charData(child.text)
		} else {
			err = c.replay(child)
		}
		if err != nil {
			return err
		}
	}
	return c.endElement(name)
}

// finish resolves the references and the intrinsic size,
// once the whole document has been read.
func (c *iconCursor) finish() error {
	if err := c.icon.resolveGradients(); err != nil {
		if err = c.handleError(err); err != nil {
			return err
		}
	}
	for i := range c.icon.SVGPaths {
		style := &c.icon.SVGPaths[i].Style
		style.FillerColor = c.icon.resolvePaint(style.FillerColor)
		style.LinerColor = c.icon.resolvePaint(style.LinerColor)
	}
	c.resolveSize()
	return nil
}
