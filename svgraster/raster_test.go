package svgraster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/benoitkugler/svgrender/svgicon"
)

func toPngBytes(m image.Image) ([]byte, error) {
	var b bytes.Buffer
	err := png.Encode(&b, m)
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func parse(t *testing.T, src string) *svgicon.SvgIcon {
	t.Helper()
	icon, err := svgicon.ReadIconStream(strings.NewReader(src), svgicon.Options{ErrorMode: svgicon.StrictErrorMode})
	if err != nil {
		t.Fatalf("can't parse svg source: %s", err)
	}
	return icon
}

const redSquare = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
	<rect x="0" y="0" width="5" height="10" fill="red"/>
</svg>`

func TestRasterizeRect(t *testing.T) {
	img, err := Rasterize(parse(t, redSquare), 10, 10, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(2, 5); got != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("inside pixel: got %v", got)
	}
	if got := img.RGBAAt(8, 5); got != (color.RGBA{}) {
		t.Errorf("outside pixel: got %v", got)
	}
}

func TestRasterizeScaled(t *testing.T) {
	img, err := Rasterize(parse(t, redSquare), 40, 20, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if got := img.RGBAAt(15, 10); got.R != 0xff || got.A != 0xff {
		t.Errorf("scaled inside pixel: got %v", got)
	}
	if got := img.RGBAAt(25, 10); got.A != 0 {
		t.Errorf("scaled outside pixel: got %v", got)
	}
}

func TestRasterizeStrokeAndGradient(t *testing.T) {
	icon := parse(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 20" width="20" height="20">
		<defs>
			<linearGradient id="g">
				<stop offset="0" stop-color="blue"/>
				<stop offset="1" stop-color="lime"/>
			</linearGradient>
		</defs>
		<rect x="0" y="0" width="20" height="10" fill="url(#g)"/>
		<line x1="0" y1="15" x2="20" y2="15" stroke="black" stroke-width="4"/>
	</svg>`)
	img, err := Rasterize(icon, 20, 20, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	left, right := img.RGBAAt(1, 5), img.RGBAAt(18, 5)
	if left.B <= left.G || right.G <= right.B {
		t.Errorf("unexpected gradient: left %v, right %v", left, right)
	}
	if got := img.RGBAAt(10, 15); got.A != 0xff || got.R != 0 {
		t.Errorf("stroke pixel: got %v", got)
	}
}

func TestRasterizeDeterministic(t *testing.T) {
	icon := parse(t, `<svg xmlns="http://www.w3.org/2000/svg" width="30" height="30">
		<circle cx="15" cy="15" r="10" fill="#336699" stroke="orange" stroke-dasharray="3 2"/>
	</svg>`)
	img1, err := Rasterize(icon, 30, 30, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	img2, err := Rasterize(icon, 30, 30, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(img1.Pix, img2.Pix) {
		t.Error("rasterization is not deterministic")
	}
	if _, err := toPngBytes(img1); err != nil {
		t.Error(err)
	}
}

func TestNewTarget(t *testing.T) {
	img, err := NewTarget(3, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(img.Pix) != 3*7*4 {
		t.Errorf("unexpected buffer length %d", len(img.Pix))
	}

	for _, test := range []struct {
		w, h uint32
		want error
	}{
		{0, 10, ErrEmptyTarget},
		{10, 0, ErrEmptyTarget},
		{math.MaxUint32, 2, ErrTargetTooLarge},
		{1 << 15, 1 << 15, ErrTargetTooLarge},
	} {
		_, err := NewTarget(test.w, test.h)
		if !errors.Is(err, test.want) {
			t.Errorf("NewTarget(%d, %d): expected %v, got %v", test.w, test.h, test.want, err)
		}
		var sizeErr *SizeError
		if !errors.As(err, &sizeErr) || sizeErr.Width != test.w || sizeErr.Height != test.h {
			t.Errorf("NewTarget(%d, %d): unexpected error %v", test.w, test.h, err)
		}
	}
}

func TestRasterSVGIconToImage(t *testing.T) {
	img, err := RasterSVGIconToImage(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg" width="4.2" height="3"/>`), svgicon.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 3 {
		t.Errorf("unexpected size %v", b)
	}
}
