package fontdb

import (
	"testing"

	"github.com/go-text/typesetting/font"
)

func fakeFace(family string, style font.Style, weight font.Weight) *Face {
	return NewFace(family, font.Aspect{Style: style, Weight: weight}, Source{Path: "/fonts/" + family})
}

func testCatalog() *Catalog {
	b := NewBuilder()
	b.AddFaces(
		fakeFace("DejaVu Sans", font.StyleNormal, font.WeightNormal),
		fakeFace("DejaVu Sans", font.StyleNormal, font.WeightBold),
		fakeFace("DejaVu Sans", font.StyleItalic, font.WeightNormal),
		fakeFace("Liberation Serif", font.StyleNormal, font.WeightNormal),
		nil,
	)
	b.SetGeneric(SansSerif, "DejaVu Sans")
	b.SetGeneric(Serif, "Liberation Serif")
	b.SetGeneric(Monospace, "Missing Mono")
	b.AddFaces(EmbeddedFaces()...)
	return b.Build()
}

func TestCatalogMatch(t *testing.T) {
	cat := testCatalog()

	tests := []struct {
		name   string
		query  Query
		family string
		style  font.Style
		weight font.Weight
	}{
		{"exact", Query{Families: []string{"DejaVu Sans"}}, "DejaVu Sans", font.StyleNormal, font.WeightNormal},
		{"normalized name", Query{Families: []string{"dejavusans"}}, "DejaVu Sans", font.StyleNormal, font.WeightNormal},
		{"bold", Query{Families: []string{"DejaVu Sans"}, Aspect: font.Aspect{Weight: 650}}, "DejaVu Sans", font.StyleNormal, font.WeightBold},
		{"italic", Query{Families: []string{"DejaVu Sans"}, Aspect: font.Aspect{Style: font.StyleItalic}}, "DejaVu Sans", font.StyleItalic, font.WeightNormal},
		{"list order", Query{Families: []string{"Unknown", "Liberation Serif"}}, "Liberation Serif", font.StyleNormal, font.WeightNormal},
		{"generic", Query{Families: []string{"serif"}}, "Liberation Serif", font.StyleNormal, font.WeightNormal},
		{"generic fallback", Query{Families: []string{"monospace"}}, FallbackMonoFamily, font.StyleNormal, font.WeightNormal},
		{"sans-serif default", Query{Families: []string{"Unknown"}}, "DejaVu Sans", font.StyleNormal, font.WeightNormal},
		{"no family", Query{}, "DejaVu Sans", font.StyleNormal, font.WeightNormal},
	}
	for _, tt := range tests {
		f := cat.Match(tt.query)
		if f == nil {
			t.Errorf("%s: no match", tt.name)
			continue
		}
		if f.Family != tt.family || f.Aspect.Style != tt.style || f.Aspect.Weight != tt.weight {
			t.Errorf("%s: got %s, want %s %v %v", tt.name, f, tt.family, tt.style, tt.weight)
		}
	}
}

func TestCatalogFallbackToEmbedded(t *testing.T) {
	b := NewBuilder()
	b.SetGeneric(SansSerif, "Arial")
	b.AddFaces(EmbeddedFaces()...)
	cat := b.Build()

	f := cat.Match(Query{Families: []string{"Arial", "sans-serif"}})
	if f == nil || f.Family != FallbackFamily {
		t.Fatalf("expected the embedded family, got %v", f)
	}
}

func TestEmptyCatalog(t *testing.T) {
	cat := NewBuilder().Build()
	if cat.Len() != 0 {
		t.Errorf("Len() = %d", cat.Len())
	}
	if f := cat.Match(Query{Families: []string{"serif"}}); f != nil {
		t.Errorf("Match on an empty catalog returned %v", f)
	}
	for g := GenericFamily(0); g < numGenerics; g++ {
		if cat.Generic(g) != "" {
			t.Errorf("empty catalog maps %v", g)
		}
	}

	var nilCat *Catalog
	if nilCat.Len() != 0 || nilCat.Match(Query{}) != nil || nilCat.HasFamily("Go") {
		t.Error("nil catalog should behave as empty")
	}
}

func TestCatalogIsolatedFromBuilder(t *testing.T) {
	b := NewBuilder()
	b.AddFaces(fakeFace("A", font.StyleNormal, font.WeightNormal))
	cat := b.Build()
	b.AddFaces(fakeFace("B", font.StyleNormal, font.WeightNormal))
	b.SetGeneric(Serif, "B")

	if cat.Len() != 1 || cat.HasFamily("B") || cat.Generic(Serif) != "" {
		t.Error("catalog changed after Build")
	}
	faces := cat.Faces()
	faces[0] = nil
	if cat.Faces()[0] == nil {
		t.Error("Faces should return a copy")
	}
	if fams := cat.Families(); len(fams) != 1 || fams[0] != "a" {
		t.Errorf("Families() = %v", fams)
	}
}
