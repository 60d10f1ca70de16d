package cli

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// capture runs the CLI, returning its output and exit code.
func capture(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := 0
	stdout, stderr = &out, &errOut
	osExit = func(c int) { code = c }
	defer func() {
		stdout, stderr = os.Stdout, os.Stderr
		osExit = os.Exit
	}()
	Run(append([]string{"svgrender"}, args...))
	return out.String(), errOut.String(), code
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRender(t *testing.T) {
	input := writeFile(t, "icon.svg", `<svg width="10" height="5"><rect width="10" height="5" fill="red"/></svg>`)
	output := filepath.Join(t.TempDir(), "out.png")

	out, errOut, code := capture(t, "render", "-width", "20", "-o", output, input)
	if code != 0 {
		t.Fatalf("unexpected exit code %d: %s", code, errOut)
	}
	if !strings.Contains(out, "20x10") {
		t.Errorf("unexpected output %q", out)
	}
	f, err := os.Open(output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("unexpected image size %v", b)
	}

	// default output name
	_, errOut, code = capture(t, "render", input)
	if code != 0 {
		t.Fatalf("unexpected exit code %d: %s", code, errOut)
	}
	if _, err := os.Stat(strings.TrimSuffix(input, ".svg") + ".png"); err != nil {
		t.Error(err)
	}
}

func TestRenderErrors(t *testing.T) {
	_, _, code := capture(t, "render")
	if code != 2 {
		t.Errorf("missing input: expected exit code 2, got %d", code)
	}

	_, errOut, code := capture(t, "render", filepath.Join(t.TempDir(), "missing.svg"))
	if code != 1 || !strings.Contains(errOut, "Error:") {
		t.Errorf("missing file: got %d %q", code, errOut)
	}

	input := writeFile(t, "bad.svg", `<html/>`)
	_, errOut, code = capture(t, "render", input)
	if code != 1 || !strings.Contains(errOut, "failed to parse SVG") {
		t.Errorf("invalid file: got %d %q", code, errOut)
	}

	input = writeFile(t, "notes.txt", "plain text")
	_, errOut, code = capture(t, "render", input)
	if code != 1 || !strings.Contains(errOut, "not an SVG document") {
		t.Errorf("not an SVG file: got %d %q", code, errOut)
	}
	if _, err := os.Stat(strings.TrimSuffix(input, ".txt") + ".png"); err == nil {
		t.Error("no output should be written for a rejected input")
	}

	config := writeFile(t, "config.yaml", "platform: amiga\n")
	input = writeFile(t, "icon.svg", `<svg width="1" height="1"/>`)
	_, errOut, code = capture(t, "render", "-config", config, input)
	if code != 1 || !strings.Contains(errOut, "platform") {
		t.Errorf("invalid config: got %d %q", code, errOut)
	}
}

func TestInfo(t *testing.T) {
	input := writeFile(t, "icon.svg", `<svg viewBox="0 0 30 20"><title>Flag</title></svg>`)
	out, errOut, code := capture(t, "info", input)
	if code != 0 {
		t.Fatalf("unexpected exit code %d: %s", code, errOut)
	}
	for _, want := range []string{"Title:      Flag", "Size:       30x20", "Needs text: false", "Fonts:      empty"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestInfoRejectsNonSVG(t *testing.T) {
	input := writeFile(t, "data.bin", "\x89PNG\r\n")
	_, errOut, code := capture(t, "info", input)
	if code != 1 || !strings.Contains(errOut, "not an SVG document") {
		t.Errorf("got %d %q", code, errOut)
	}

	// content sniffing, whatever the extension
	input = writeFile(t, "icon.xml", `<?xml version="1.0"?><svg width="3" height="2"/>`)
	out, errOut, code := capture(t, "info", input)
	if code != 0 || !strings.Contains(out, "Size:       3x2") {
		t.Errorf("got %d %q %q", code, out, errOut)
	}
}

func TestCommands(t *testing.T) {
	out, _, code := capture(t, "version")
	if code != 0 || !strings.Contains(out, "svgrender version dev") {
		t.Errorf("version: got %d %q", code, out)
	}
	out, _, _ = capture(t, "help")
	if !strings.Contains(out, "Commands:") {
		t.Errorf("help: got %q", out)
	}
	_, errOut, code := capture(t, "frobnicate")
	if code != 2 || !strings.Contains(errOut, "Unknown command: frobnicate") {
		t.Errorf("unknown command: got %d %q", code, errOut)
	}
}
