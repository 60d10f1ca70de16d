package fontdb

import (
	"errors"
	"fmt"
)

var (
	// ErrFaceIndex is returned when a source does not contain
	// the requested collection index.
	ErrFaceIndex = errors.New("fontdb: face index out of range")

	// ErrNoFamily is returned when a font file carries no family name.
	ErrNoFamily = errors.New("fontdb: font has no family name")
)

// FaceError reports a font source that could not be loaded.
type FaceError struct {
	Source Source
	Err    error
}

func (e *FaceError) Error() string {
	return fmt.Sprintf("fontdb: loading %s: %v", e.Source, e.Err)
}

func (e *FaceError) Unwrap() error { return e.Err }
