package fontdb

import (
	"fmt"

	"github.com/benoitkugler/svgrender/internal/logging"
	"github.com/go-text/typesetting/fontscan"
)

// Enumerator is the platform capability listing installed faces.
// An error may come with a partial result, which is kept.
type Enumerator interface {
	Enumerate() ([]*Face, error)
}

// EnumeratorFunc adapts a function to the Enumerator interface.
type EnumeratorFunc func() ([]*Face, error)

func (f EnumeratorFunc) Enumerate() ([]*Face, error) { return f() }

// SystemFonts enumerates the fonts installed on the host using
// the fontscan index. The index is stored in CacheDir, or in the
// user cache directory when CacheDir is empty.
type SystemFonts struct {
	CacheDir string
}

func (s SystemFonts) Enumerate() ([]*Face, error) {
	footprints, err := fontscan.SystemFonts(logging.Printf{Prefix: "fontscan: "}, s.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("fontdb: scanning system fonts: %w", err)
	}
	faces := make([]*Face, 0, len(footprints))
	for _, fp := range footprints {
		if fp.Location.File == "" || fp.Family == "" {
			continue
		}
		faces = append(faces, NewFace(fp.Family, fp.Aspect, Source{
			Path:  fp.Location.File,
			Index: int(fp.Location.Index),
		}))
	}
	return faces, nil
}

// enumerate calls e, turning a panic into an error.
func enumerate(e Enumerator) (faces []*Face, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fontdb: font enumeration panicked: %v", r)
		}
	}()
	return e.Enumerate()
}
