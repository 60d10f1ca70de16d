package fontdb

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Source locates the bytes of a face: either a file on disk
// or data held in memory, plus the index of the face when the
// source is a font collection.
type Source struct {
	Path  string
	Index int
	Data  []byte
}

func (s Source) String() string {
	if s.Path != "" {
		return fmt.Sprintf("%s#%d", s.Path, s.Index)
	}
	return fmt.Sprintf("<memory:%d bytes>#%d", len(s.Data), s.Index)
}

// Face is one entry of a Catalog.
//
// The font program is only parsed on the first call to Font,
// and at most once. Faces must be created with NewFace.
type Face struct {
	Family string
	Aspect font.Aspect
	Source Source

	load func() (*sfnt.Font, error)
}

// NewFace returns a face record. Unspecified aspect properties
// take their default values.
func NewFace(family string, aspect font.Aspect, src Source) *Face {
	aspect.SetDefaults()
	f := &Face{Family: family, Aspect: aspect, Source: src}
	f.load = sync.OnceValues(f.parse)
	return f
}

// Font returns the parsed font program. It is safe for concurrent use,
// as are the methods of the returned font, provided each caller
// uses its own sfnt.Buffer.
func (f *Face) Font() (*sfnt.Font, error) {
	if f.load == nil {
		return f.parse()
	}
	return f.load()
}

func (f *Face) parse() (*sfnt.Font, error) {
	data := f.Source.Data
	if data == nil {
		var err error
		data, err = os.ReadFile(f.Source.Path)
		if err != nil {
			return nil, &FaceError{Source: f.Source, Err: err}
		}
	}
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, &FaceError{Source: f.Source, Err: err}
	}
	if f.Source.Index < 0 || f.Source.Index >= coll.NumFonts() {
		return nil, &FaceError{Source: f.Source, Err: ErrFaceIndex}
	}
	fnt, err := coll.Font(f.Source.Index)
	if err != nil {
		return nil, &FaceError{Source: f.Source, Err: err}
	}
	return fnt, nil
}

func (f *Face) String() string {
	return fmt.Sprintf("%s (%v %v) %s", f.Family, f.Aspect.Style, f.Aspect.Weight, f.Source)
}
