package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/benoitkugler/svgrender"
)

// InfoCommand implements the 'info' command.
func InfoCommand(args []string) {
	infoFlags := flag.NewFlagSet("info", flag.ContinueOnError)
	infoFlags.SetOutput(stderr)

	configPath := infoFlags.String("config", "", "YAML configuration file")
	verbose := infoFlags.Bool("v", false, "Log debug information to stderr")

	infoFlags.Usage = func() {
		fmt.Fprintf(stdout, "Usage: %s info [options] <input.svg>\n\n", os.Args[0])
		fmt.Fprintln(stdout, "Show the intrinsic size and the fonts needed by an SVG file.")
		fmt.Fprintln(stdout, "")
		fmt.Fprintln(stdout, "Options:")
		infoFlags.SetOutput(stdout)
		infoFlags.PrintDefaults()
	}

	if err := infoFlags.Parse(args[2:]); err != nil {
		if err == flag.ErrHelp {
			return
		}
		osExit(2)
		return
	}
	if infoFlags.NArg() != 1 {
		infoFlags.Usage()
		osExit(2)
		return
	}
	if *verbose {
		enableDebug()
	}

	inputPath := infoFlags.Arg(0)
	renderer, err := newRenderer(*configPath)
	if err != nil {
		fail(err)
		return
	}
	data, err := readSVG(inputPath)
	if err != nil {
		fail(err)
		return
	}
	doc, err := renderer.Open(data)
	if err != nil {
		fail(err)
		return
	}

	size := doc.IntrinsicSize()
	fmt.Fprintf(stdout, "File:       %s\n", inputPath)
	if title := doc.Title(); title != "" {
		fmt.Fprintf(stdout, "Title:      %s\n", title)
	}
	fmt.Fprintf(stdout, "Size:       %gx%g\n", size.Width, size.Height)
	fmt.Fprintf(stdout, "Needs text: %t\n", svgrender.NeedsFonts(string(data)))
	fmt.Fprintf(stdout, "Fonts:      %s\n", doc.FontVariant())
}
