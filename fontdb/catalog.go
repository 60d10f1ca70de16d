package fontdb

import (
	"sort"

	"github.com/go-text/typesetting/font"
)

// FallbackFamily is the family of the embedded faces,
// always available in a system catalog.
const (
	FallbackFamily     = "Go"
	FallbackMonoFamily = "Go Mono"
)

// Catalog is an immutable collection of faces, with the mapping
// from generic families to concrete ones.
// It is safe for concurrent use.
type Catalog struct {
	faces    []*Face
	byFamily map[string][]*Face // keyed by normalized family
	generics [numGenerics]string
}

// Len returns the number of faces.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.faces)
}

// Faces returns a copy of the face list.
func (c *Catalog) Faces() []*Face {
	if c == nil {
		return nil
	}
	return append([]*Face(nil), c.faces...)
}

// Generic returns the concrete family used for g,
// or an empty string if none is mapped.
func (c *Catalog) Generic(g GenericFamily) string {
	if c == nil || g >= numGenerics {
		return ""
	}
	return c.generics[g]
}

// HasFamily reports whether at least one face of family is available.
func (c *Catalog) HasFamily(family string) bool {
	if c == nil {
		return false
	}
	return len(c.byFamily[font.NormalizeFamily(family)]) != 0
}

// Families returns the sorted, normalized family names.
func (c *Catalog) Families() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.byFamily))
	for fam := range c.byFamily {
		out = append(out, fam)
	}
	sort.Strings(out)
	return out
}

// Query describes the face wanted by a text element.
type Query struct {
	// Families is the font-family list, in priority order.
	// Generic names are resolved through the catalog mapping.
	Families []string
	Aspect   font.Aspect
}

// Match selects the best face for q. The requested families are
// tried in order, then the sans-serif mapping, then the embedded
// fallback, and finally any face at all.
// Match returns nil only when the catalog is empty.
func (c *Catalog) Match(q Query) *Face {
	if c.Len() == 0 {
		return nil
	}
	aspect := q.Aspect
	aspect.SetDefaults()

	for _, family := range q.Families {
		for _, candidate := range c.resolve(family) {
			if f := bestAspect(c.byFamily[font.NormalizeFamily(candidate)], aspect); f != nil {
				return f
			}
		}
	}
	for _, family := range [...]string{c.generics[SansSerif], FallbackFamily} {
		if family == "" {
			continue
		}
		if f := bestAspect(c.byFamily[font.NormalizeFamily(family)], aspect); f != nil {
			return f
		}
	}
	return bestAspect(c.faces, aspect)
}

// resolve expands generic families into their concrete candidates.
func (c *Catalog) resolve(family string) []string {
	g, ok := LookupGeneric(family)
	if !ok {
		return []string{family}
	}
	fallback := FallbackFamily
	if g == Monospace {
		fallback = FallbackMonoFamily
	}
	if c.generics[g] == "" {
		return []string{fallback}
	}
	return []string{c.generics[g], fallback}
}

// bestAspect returns the face closest to want: a matching style
// is preferred over a close weight.
func bestAspect(faces []*Face, want font.Aspect) *Face {
	var (
		best      *Face
		bestScore float32
	)
	for _, f := range faces {
		score := float32(f.Aspect.Weight - want.Weight)
		if score < 0 {
			score = -score
		}
		if f.Aspect.Style != want.Style {
			score += 10000
		}
		if f.Aspect.Stretch != want.Stretch {
			score += 1
		}
		if best == nil || score < bestScore {
			best, bestScore = f, score
		}
	}
	return best
}
