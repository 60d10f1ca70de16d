// Command svgrender rasterizes SVG documents to PNG images.
//
// Usage:
//
//	svgrender <command> [options] <args>
//
// Commands:
//
//	render   Render an SVG file to PNG
//	info     Show the intrinsic size and the fonts needed by an SVG file
//	version  Show version information
//	help     Show help message
//
// Examples:
//
//	# Render at the intrinsic size
//	svgrender render -o icon.png icon.svg
//
//	# Render 512 pixels wide, keeping the aspect ratio
//	svgrender render -width 512 -o icon.png icon.svg
package main

import (
	"os"

	"github.com/benoitkugler/svgrender/internal/cli"
)

// These variables are set at build time using ldflags:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/svgrender
var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cli.Version = version
	cli.BuildTime = buildTime

	cli.Run(os.Args)
}
