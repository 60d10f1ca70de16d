package cli

import (
	"flag"
	"fmt"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/svgrender"
)

// RenderOptions contains options for the render command.
type RenderOptions struct {
	Width, Height uint64
	ConfigPath    string
	Output        string
	Verbose       bool
}

// RenderCommand implements the 'render' command.
func RenderCommand(args []string) {
	renderFlags := flag.NewFlagSet("render", flag.ContinueOnError)
	renderFlags.SetOutput(stderr)

	var opts RenderOptions

	renderFlags.Uint64Var(&opts.Width, "width", 0, "Width of the image, in pixels (0 to derive it from the document)")
	renderFlags.Uint64Var(&opts.Height, "height", 0, "Height of the image, in pixels (0 to derive it from the document)")
	renderFlags.StringVar(&opts.ConfigPath, "config", "", "YAML configuration file")
	renderFlags.StringVar(&opts.Output, "o", "", "Output PNG file (defaults to the input name with a .png extension)")
	renderFlags.BoolVar(&opts.Verbose, "v", false, "Log debug information to stderr")

	renderFlags.Usage = func() {
		fmt.Fprintf(stdout, "Usage: %s render [options] <input.svg>\n\n", os.Args[0])
		fmt.Fprintln(stdout, "Render an SVG file to a PNG image.")
		fmt.Fprintln(stdout, "")
		fmt.Fprintln(stdout, "Options:")
		renderFlags.SetOutput(stdout)
		renderFlags.PrintDefaults()
	}

	if err := renderFlags.Parse(args[2:]); err != nil {
		if err == flag.ErrHelp {
			return
		}
		osExit(2)
		return
	}

	if renderFlags.NArg() != 1 {
		renderFlags.Usage()
		osExit(2)
		return
	}

	inputPath := renderFlags.Arg(0)
	if opts.Output == "" {
		opts.Output = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".png"
	}
	if opts.Verbose {
		enableDebug()
	}

	img, err := renderFile(inputPath, &opts)
	if err != nil {
		fail(err)
		return
	}
	fmt.Fprintf(stdout, "Wrote %s (%dx%d)\n", opts.Output, img.Width, img.Height)
}

func renderFile(inputPath string, opts *RenderOptions) (*svgrender.Image, error) {
	if opts.Width > math.MaxUint32 || opts.Height > math.MaxUint32 {
		return nil, fmt.Errorf("requested size %dx%d is too large", opts.Width, opts.Height)
	}
	renderer, err := newRenderer(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	data, err := readSVG(inputPath)
	if err != nil {
		return nil, err
	}
	img, err := renderer.RenderSVG(data, uint32(opts.Width), uint32(opts.Height))
	if err != nil {
		return nil, err
	}

	out, err := os.Create(opts.Output)
	if err != nil {
		return nil, err
	}
	if err := png.Encode(out, img.RGBA()); err != nil {
		out.Close()
		return nil, fmt.Errorf("encoding %s: %w", opts.Output, err)
	}
	return img, out.Close()
}
