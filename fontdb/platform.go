package fontdb

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform selects the font configuration policy applied
// when the system catalog is built.
type Platform uint8

const (
	Desktop Platform = iota
	Android
	IOS
)

func (p Platform) String() string {
	switch p {
	case Desktop:
		return "desktop"
	case Android:
		return "android"
	case IOS:
		return "ios"
	default:
		return fmt.Sprintf("<unknown Platform %d>", uint8(p))
	}
}

// ParsePlatform accepts the names returned by Platform.String.
// An empty string selects the current platform.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return CurrentPlatform(), nil
	case "desktop":
		return Desktop, nil
	case "android":
		return Android, nil
	case "ios":
		return IOS, nil
	}
	return Desktop, fmt.Errorf("fontdb: unknown platform %q", s)
}

// CurrentPlatform maps runtime.GOOS to a Platform.
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "android":
		return Android
	case "ios":
		return IOS
	default:
		return Desktop
	}
}

// GenericFamily is one of the CSS generic font families.
type GenericFamily uint8

const (
	SansSerif GenericFamily = iota
	Serif
	Monospace
	Cursive
	Fantasy

	numGenerics
)

var genericNames = [numGenerics]string{
	SansSerif: "sans-serif",
	Serif:     "serif",
	Monospace: "monospace",
	Cursive:   "cursive",
	Fantasy:   "fantasy",
}

func (g GenericFamily) String() string {
	if g < numGenerics {
		return genericNames[g]
	}
	return fmt.Sprintf("<unknown GenericFamily %d>", uint8(g))
}

// LookupGeneric returns the generic family named by s,
// as written in a CSS font-family list.
func LookupGeneric(s string) (GenericFamily, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for g, name := range genericNames {
		if name == s {
			return GenericFamily(g), true
		}
	}
	return 0, false
}

// policy is the fixed per platform configuration: the directories
// scanned in addition to the system enumeration, and the concrete
// families backing the generic ones.
type policy struct {
	dirs     []string
	generics [numGenerics]string
}

var policies = [...]policy{
	Desktop: {
		generics: [numGenerics]string{
			SansSerif: "Arial",
			Serif:     "Times New Roman",
			Monospace: "Courier New",
			Cursive:   "Comic Sans MS",
			Fantasy:   "Impact",
		},
	},
	Android: {
		dirs: []string{"/system/fonts"},
		generics: [numGenerics]string{
			SansSerif: "Roboto",
			Serif:     "Noto Serif",
			Monospace: "Roboto Mono",
			Cursive:   "Roboto",
			Fantasy:   "Roboto",
		},
	},
	IOS: {
		dirs: []string{"/System/Library/Fonts", "/System/Library/Fonts/Core"},
		generics: [numGenerics]string{
			SansSerif: "Helvetica Neue",
			Serif:     "Times New Roman",
			Monospace: "Menlo",
			Cursive:   "Snell Roundhand",
			Fantasy:   "Papyrus",
		},
	},
}

func policyFor(p Platform) policy {
	if int(p) < len(policies) {
		return policies[p]
	}
	return policies[Desktop]
}
