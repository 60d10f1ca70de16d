package svgrender

import (
	"errors"
	"fmt"
)

// ErrZeroIntrinsicSize is returned when rendering a document
// whose intrinsic size is zero or not finite.
var ErrZeroIntrinsicSize = errors.New("svgrender: intrinsic size is zero or undefined")

// ParseErrorKind classifies the failures of Open.
type ParseErrorKind uint8

const (
	// InvalidEncoding is returned for input which is not valid UTF-8.
	InvalidEncoding ParseErrorKind = iota
	// MalformedDocument is returned for invalid XML or SVG content.
	MalformedDocument
)

func (k ParseErrorKind) String() string {
	switch k {
	case InvalidEncoding:
		return "invalid encoding"
	case MalformedDocument:
		return "malformed document"
	default:
		return fmt.Sprintf("<unknown ParseErrorKind %d>", uint8(k))
	}
}

// ParseError is returned when a document can't be opened.
type ParseError struct {
	Kind ParseErrorKind
	Err  error
}

func (e *ParseError) Error() string {
	if e.Kind == InvalidEncoding {
		return fmt.Sprintf("svgrender: invalid UTF-8 data: %v", e.Err)
	}
	return fmt.Sprintf("svgrender: failed to parse SVG: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// EncodingError locates the first invalid UTF-8 sequence.
type EncodingError struct {
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid byte sequence at offset %d", e.Offset)
}

// RenderErrorKind classifies the failures of Render.
type RenderErrorKind uint8

const (
	// AllocationFailed is returned when the target pixmap can't be created.
	AllocationFailed RenderErrorKind = iota
	// UndefinedScale is returned when no finite scale maps the
	// document to the target.
	UndefinedScale
)

func (k RenderErrorKind) String() string {
	switch k {
	case AllocationFailed:
		return "allocation failed"
	case UndefinedScale:
		return "undefined scale"
	default:
		return fmt.Sprintf("<unknown RenderErrorKind %d>", uint8(k))
	}
}

// RenderError is returned when a document can't be rendered
// at the requested size.
type RenderError struct {
	Kind          RenderErrorKind
	Width, Height uint32 // the target size
	Err           error
}

func (e *RenderError) Error() string {
	if e.Kind == AllocationFailed {
		return fmt.Sprintf("svgrender: cannot create %dx%d pixmap: %v", e.Width, e.Height, e.Err)
	}
	return fmt.Sprintf("svgrender: render failed: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("svgrender: config error in '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("svgrender: config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }
