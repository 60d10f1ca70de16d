package svgicon

import (
	"errors"
	"fmt"

	"github.com/benoitkugler/svgrender/internal/logging"
)

// ErrorMode determines how the parser reacts to unsupported
// elements and invalid attribute values.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips the faulty element or attribute silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips and logs a warning.
	WarnErrorMode
	// StrictErrorMode aborts the parsing.
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return fmt.Sprintf("<unknown ErrorMode %d>", uint8(m))
	}
}

// ParseErrorMode parses the textual form of an ErrorMode.
func ParseErrorMode(s string) (ErrorMode, error) {
	switch s {
	case "", "ignore":
		return IgnoreErrorMode, nil
	case "warn":
		return WarnErrorMode, nil
	case "strict":
		return StrictErrorMode, nil
	}
	return 0, fmt.Errorf("svgicon: unknown error mode %q", s)
}

var (
	ErrNoRoot             = errors.New("svgicon: no root element")
	ErrNotSVG             = errors.New("svgicon: root element is not <svg>")
	ErrParamMismatch      = errors.New("svgicon: parameter count mismatch")
	ErrUnsupportedElement = errors.New("svgicon: unsupported element")
	ErrInvalidColor       = errors.New("svgicon: invalid color")
	ErrInvalidLength      = errors.New("svgicon: invalid length")
	ErrUnknownReference   = errors.New("svgicon: unknown reference")
	ErrReferenceCycle     = errors.New("svgicon: reference cycle")
	ErrTooManyElements    = errors.New("svgicon: too many elements")
)

// AttrError reports an invalid attribute value.
type AttrError struct {
	Element, Attr, Value string
	Err                  error
}

func (e *AttrError) Error() string {
	return fmt.Sprintf("svgicon: <%s %s=%q>: %v", e.Element, e.Attr, e.Value, e.Err)
}

func (e *AttrError) Unwrap() error { return e.Err }

// handleError applies the error mode to err. It returns
// a non nil error only in strict mode.
func (c *iconCursor) handleError(err error) error {
	if err == nil {
		return nil
	}
	switch c.opts.ErrorMode {
	case StrictErrorMode:
		return err
	case WarnErrorMode:
		logging.Logger().Warn("svgicon: skipping invalid content", "err", err)
	}
	return nil
}
