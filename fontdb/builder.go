package fontdb

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/svgrender/internal/logging"
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

// Builder accumulates faces and generic mappings.
// It is not safe for concurrent use; the Catalog it builds is.
type Builder struct {
	faces    []*Face
	generics [numGenerics]string
}

func NewBuilder() *Builder { return &Builder{} }

// AddFaces appends faces. Nil entries are ignored.
func (b *Builder) AddFaces(faces ...*Face) {
	for _, f := range faces {
		if f != nil {
			b.faces = append(b.faces, f)
		}
	}
}

// SetGeneric maps the generic family g to family.
func (b *Builder) SetGeneric(g GenericFamily, family string) {
	if g < numGenerics {
		b.generics[g] = family
	}
}

// AddFontData describes the faces found in an in-memory
// font file or collection and adds them.
func (b *Builder) AddFontData(data []byte) error {
	faces, err := describe(bytes.NewReader(data), Source{Data: data})
	if err != nil {
		return err
	}
	b.AddFaces(faces...)
	return nil
}

// LoadFontsDir walks dir and adds every font file found.
// Files that cannot be read or described are skipped;
// only a failure to access dir itself is returned.
func (b *Builder) LoadFontsDir(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			logging.Logger().Debug("fontdb: skipping unreadable path", "path", path, "err", err)
			return nil
		}
		if d.IsDir() || !isFontFile(path) {
			return nil
		}
		faces, err := describeFile(path)
		if err != nil {
			logging.Logger().Debug("fontdb: skipping font file", "path", path, "err", err)
			return nil
		}
		b.AddFaces(faces...)
		return nil
	})
}

// Build returns the catalog. The builder may keep being used:
// the catalog does not share its storage.
func (b *Builder) Build() *Catalog {
	c := &Catalog{
		faces:    append([]*Face(nil), b.faces...),
		byFamily: make(map[string][]*Face),
		generics: b.generics,
	}
	for _, f := range c.faces {
		key := font.NormalizeFamily(f.Family)
		c.byFamily[key] = append(c.byFamily[key], f)
	}
	return c
}

func isFontFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf", ".ttc", ".otc":
		return true
	}
	return false
}

func describeFile(path string) ([]*Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return describe(f, Source{Path: path})
}

// describe reads the family and aspect of every face of file,
// without parsing the glyph data.
func describe(file ot.Resource, src Source) ([]*Face, error) {
	loaders, err := ot.NewLoaders(file)
	if err != nil {
		return nil, &FaceError{Source: src, Err: err}
	}
	var (
		faces []*Face
		buf   []byte
	)
	for i, ld := range loaders {
		var desc font.Description
		desc, buf = font.Describe(ld, buf)
		if desc.Family == "" {
			continue
		}
		s := src
		s.Index = i
		faces = append(faces, NewFace(desc.Family, desc.Aspect, s))
	}
	if len(faces) == 0 {
		return nil, &FaceError{Source: src, Err: ErrNoFamily}
	}
	return faces, nil
}
