package svgrender

import (
	"errors"
	"io"
	"os"

	"github.com/benoitkugler/svgrender/fontdb"
	"github.com/benoitkugler/svgrender/internal/logging"
	"github.com/benoitkugler/svgrender/svgicon"
	"gopkg.in/yaml.v3"
)

// Options configures a Renderer. The zero value is valid and
// matches the package level functions.
type Options struct {
	// Platform selects the font policy: desktop, android or ios.
	// Empty means the current platform.
	Platform string `yaml:"platform"`

	// FontCacheDir stores the system font index.
	// Empty means the user cache directory.
	FontCacheDir string `yaml:"font-cache-dir"`

	// FontDirs are scanned in addition to the system fonts.
	FontDirs []string `yaml:"font-dirs"`

	// UnsupportedElements is the error mode of the parser:
	// ignore (default), warn or strict.
	UnsupportedElements string `yaml:"unsupported-elements"`

	// Enumerator replaces the system font enumeration.
	Enumerator fontdb.Enumerator `yaml:"-"`
}

// Validate checks the textual fields.
func (o *Options) Validate() error {
	if _, err := fontdb.ParsePlatform(o.Platform); err != nil {
		return &ConfigError{Field: "platform", Message: "expected desktop, android or ios", Err: err}
	}
	if _, err := svgicon.ParseErrorMode(o.UnsupportedElements); err != nil {
		return &ConfigError{Field: "unsupported-elements", Message: "expected ignore, warn or strict", Err: err}
	}
	for _, dir := range o.FontDirs {
		if dir == "" {
			return &ConfigError{Field: "font-dirs", Message: "empty directory"}
		}
	}
	return nil
}

// LoadOptions decodes YAML options from r. Unknown fields are rejected.
// An empty input returns the zero Options.
func LoadOptions(r io.Reader) (Options, error) {
	var opts Options
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, &ConfigError{Message: "invalid YAML", Err: err}
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// LoadOptionsFile reads the YAML options stored in path.
func LoadOptionsFile(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return Options{}, err
	}
	defer f.Close()
	return LoadOptions(f)
}

// cacheConfig converts the options, replacing invalid
// values by their default.
func (o *Options) cacheConfig() (fontdb.Config, svgicon.ErrorMode) {
	log := logging.Logger()
	platform, err := fontdb.ParsePlatform(o.Platform)
	if err != nil {
		log.Warn("svgrender: invalid platform, using the current one", "err", err)
		platform = fontdb.CurrentPlatform()
	}
	mode, err := svgicon.ParseErrorMode(o.UnsupportedElements)
	if err != nil {
		log.Warn("svgrender: invalid error mode, ignoring unsupported elements", "err", err)
		mode = svgicon.IgnoreErrorMode
	}
	enum := o.Enumerator
	if enum == nil {
		enum = fontdb.SystemFonts{CacheDir: o.FontCacheDir}
	}
	return fontdb.Config{Platform: platform, Enumerator: enum, Dirs: o.FontDirs}, mode
}
