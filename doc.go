// Package svgrender renders SVG documents into RGBA images.
//
// A document is parsed once with Open, then rendered at any size:
//
//	doc, err := svgrender.Open(data)
//	if err != nil {
//		return err
//	}
//	img, err := doc.Render(256, 0) // 256 pixels wide, aspect ratio kept
//
// A zero width or height is derived from the intrinsic size of the
// document. When both are zero, the intrinsic size is used, rounded up.
//
// Documents containing text elements are resolved against the fonts
// installed on the system. The system catalog is built the first time
// such a document is opened, and shared afterwards; documents without
// text never trigger the enumeration. See package fontdb.
//
// The parsing and rasterization are implemented by the svgicon,
// svgdraw and svgraster packages, which may be used directly.
package svgrender
