// Package fontdb builds the font catalogs used to resolve SVG text.
//
// Catalogs are expensive to build (system font enumeration touches
// the file system), so they are obtained from a Cache which builds
// each Variant at most once and shares it afterwards.
package fontdb

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benoitkugler/svgrender/internal/logging"
)

// Variant selects one of the catalogs held by a Cache.
type Variant uint8

const (
	// Empty is a catalog without faces, used for documents without text.
	Empty Variant = iota
	// WithSystemFonts holds the platform fonts and the embedded fallback.
	WithSystemFonts

	numVariants
)

func (v Variant) String() string {
	switch v {
	case Empty:
		return "empty"
	case WithSystemFonts:
		return "system"
	default:
		return fmt.Sprintf("<unknown Variant %d>", uint8(v))
	}
}

// Config parametrizes the system catalog of a Cache.
type Config struct {
	Platform Platform
	// Enumerator lists the installed faces. Defaults to SystemFonts{}.
	Enumerator Enumerator
	// Dirs are scanned after the platform directories.
	Dirs []string
}

// Cache builds each catalog variant lazily, exactly once,
// even under concurrent first access. It is safe for concurrent use.
type Cache struct {
	cfg      Config
	catalogs [numVariants]func() *Catalog
	builds   [numVariants]atomic.Int32
}

// NewCache returns a cache for cfg. Nothing is built before the
// first call to Get.
func NewCache(cfg Config) *Cache {
	c := &Cache{cfg: cfg}
	c.catalogs[Empty] = sync.OnceValue(func() *Catalog { return c.build(Empty) })
	c.catalogs[WithSystemFonts] = sync.OnceValue(func() *Catalog { return c.build(WithSystemFonts) })
	return c
}

var defaultCache = sync.OnceValue(func() *Cache {
	return NewCache(Config{Platform: CurrentPlatform()})
})

// Default returns the process wide cache, configured for the
// current platform.
func Default() *Cache { return defaultCache() }

// Get returns the shared catalog for v. An unknown variant
// is treated as Empty.
func (c *Cache) Get(v Variant) *Catalog {
	if v >= numVariants {
		v = Empty
	}
	return c.catalogs[v]()
}

// Builds returns how many times the catalog v has been built:
// 0 before the first Get, 1 afterwards.
func (c *Cache) Builds(v Variant) int {
	if v >= numVariants {
		return 0
	}
	return int(c.builds[v].Load())
}

func (c *Cache) build(v Variant) *Catalog {
	c.builds[v].Add(1)
	if v == Empty {
		return NewBuilder().Build()
	}

	start := time.Now()
	log := logging.Logger()
	pol := policyFor(c.cfg.Platform)
	b := NewBuilder()

	enum := c.cfg.Enumerator
	if enum == nil {
		enum = SystemFonts{}
	}
	faces, err := enumerate(enum)
	if err != nil {
		log.Warn("fontdb: system font enumeration failed", "platform", c.cfg.Platform, "faces", len(faces), "err", err)
	}
	b.AddFaces(faces...)

	dirs := append(append([]string(nil), pol.dirs...), c.cfg.Dirs...)
	for _, dir := range dirs {
		if err := b.LoadFontsDir(dir); err != nil {
			log.Warn("fontdb: loading font directory failed", "dir", dir, "err", err)
		}
	}
	for g, family := range pol.generics {
		b.SetGeneric(GenericFamily(g), family)
	}
	b.AddFaces(EmbeddedFaces()...)

	cat := b.Build()
	log.Debug("fontdb: catalog built", "variant", v, "platform", c.cfg.Platform,
		"faces", cat.Len(), "elapsed", time.Since(start))
	return cat
}
