package svgrender

import "bytes"

// sniffLen is the size of the prefix searched for the svg tag.
const sniffLen = 1024

// IsSVG reports whether data should be decoded as an SVG document,
// either from its MIME type or from its content.
func IsSVG(data []byte, mimeType string) bool {
	switch mimeType {
	case "image/svg+xml", "text/xml":
		return true
	}
	head := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(head) == 0 || head[0] != '<' {
		return false
	}
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	return bytes.Contains(data, []byte("<svg"))
}
