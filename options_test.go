package svgrender

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/svgrender/fontdb"
	"github.com/benoitkugler/svgrender/svgicon"
)

func TestLoadOptions(t *testing.T) {
	opts, err := LoadOptions(strings.NewReader(`
platform: android
font-cache-dir: /tmp/fonts
font-dirs:
  - /opt/fonts
  - ./fonts
unsupported-elements: strict
`))
	if err != nil {
		t.Fatal(err)
	}
	if opts.Platform != "android" || opts.FontCacheDir != "/tmp/fonts" || len(opts.FontDirs) != 2 || opts.UnsupportedElements != "strict" {
		t.Errorf("unexpected options %+v", opts)
	}
	cfg, mode := opts.cacheConfig()
	if cfg.Platform != fontdb.Android || mode != svgicon.StrictErrorMode {
		t.Errorf("unexpected config %v %v", cfg.Platform, mode)
	}
	if sf, ok := cfg.Enumerator.(fontdb.SystemFonts); !ok || sf.CacheDir != "/tmp/fonts" {
		t.Errorf("unexpected enumerator %v", cfg.Enumerator)
	}

	opts, err = LoadOptions(strings.NewReader(""))
	if err != nil || opts.Platform != "" || opts.FontDirs != nil {
		t.Errorf("empty input: %+v, %v", opts, err)
	}
}

func TestLoadOptionsErrors(t *testing.T) {
	for _, test := range []struct {
		yaml, field string
	}{
		{"platform: windows95", "platform"},
		{"unsupported-elements: loud", "unsupported-elements"},
		{"font-dirs: ['']", "font-dirs"},
		{"unknown-key: 1", ""},
		{"platform: [", ""},
	} {
		_, err := LoadOptions(strings.NewReader(test.yaml))
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("%q: expected a config error, got %v", test.yaml, err)
			continue
		}
		if cfgErr.Field != test.field {
			t.Errorf("%q: expected field %q, got %q", test.yaml, test.field, cfgErr.Field)
		}
	}
}

func TestLoadOptionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("platform: ios\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := LoadOptionsFile(path)
	if err != nil || opts.Platform != "ios" {
		t.Errorf("unexpected result %+v, %v", opts, err)
	}
	if _, err := LoadOptionsFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a missing file error, got %v", err)
	}
}

func TestInvalidOptionsFallback(t *testing.T) {
	opts := Options{Platform: "beos", UnsupportedElements: "loud"}
	if opts.Validate() == nil {
		t.Fatal("expected a validation error")
	}
	cfg, mode := opts.cacheConfig()
	if cfg.Platform != fontdb.CurrentPlatform() || mode != svgicon.IgnoreErrorMode {
		t.Errorf("invalid values should fall back to the defaults: %v %v", cfg.Platform, mode)
	}
}
