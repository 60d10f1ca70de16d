// Package cli implements the svgrender command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/benoitkugler/svgrender"
)

// Version information
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// osExit is a variable for os.Exit to allow testing
var osExit = os.Exit

// output streams, replaced in tests
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the CLI with the given arguments,
// args[0] being the program name.
func Run(args []string) {
	if len(args) < 2 {
		Usage()
		return
	}

	command := args[1]

	switch command {
	case "render":
		RenderCommand(args)
	case "info":
		InfoCommand(args)
	case "version":
		VersionCommand()
	case "help", "-h", "--help":
		Usage()
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		Usage()
		osExit(2)
	}
}

// Usage prints the CLI usage information.
func Usage() {
	fmt.Fprintf(stdout, "svgrender - SVG rasterizer\n\n")
	fmt.Fprintf(stdout, "Usage: %s <command> [options] <args>\n\n", os.Args[0])
	fmt.Fprintln(stdout, "Commands:")
	fmt.Fprintln(stdout, "  render   Render an SVG file to PNG")
	fmt.Fprintln(stdout, "  info     Show the intrinsic size and the fonts needed by an SVG file")
	fmt.Fprintln(stdout, "  version  Show version information")
	fmt.Fprintln(stdout, "  help     Show this help message")
	fmt.Fprintln(stdout, "")
	fmt.Fprintf(stdout, "Use '%s <command> -h' for command-specific help\n", os.Args[0])
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintf(stdout, "  %s render -o icon.png icon.svg\n", os.Args[0])
	fmt.Fprintf(stdout, "  %s render -width 512 -o icon.png icon.svg\n", os.Args[0])
	fmt.Fprintf(stdout, "  %s info icon.svg\n", os.Args[0])
}

// VersionCommand prints version information.
func VersionCommand() {
	fmt.Fprintf(stdout, "svgrender version %s\n", Version)
	fmt.Fprintf(stdout, "Build time: %s\n", BuildTime)
}

// fail reports err and exits with a non zero status.
func fail(err error) {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	osExit(1)
}

// enableDebug sends the library debug logs to stderr.
func enableDebug() {
	svgrender.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}

// newRenderer loads the optional configuration file.
func newRenderer(configPath string) (*svgrender.Renderer, error) {
	var opts svgrender.Options
	if configPath != "" {
		var err error
		opts, err = svgrender.LoadOptionsFile(configPath)
		if err != nil {
			return nil, err
		}
	}
	return svgrender.New(opts), nil
}

var errNotSVG = errors.New("not an SVG document")

// readSVG reads the input file, rejecting content which is not SVG.
func readSVG(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !svgrender.IsSVG(data, mime.TypeByExtension(filepath.Ext(path))) {
		return nil, fmt.Errorf("%s: %w", path, errNotSVG)
	}
	return data, nil
}
