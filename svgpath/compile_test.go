package svgpath

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func pt(x, y float64) MoveTo { return MoveTo{x, y} }

func ln(x, y float64) LineTo { return LineTo{x, y} }

func TestParsePathData(t *testing.T) {
	tests := []struct {
		d    string
		want Path
	}{
		{"M10 20 L30 40", Path{pt(10, 20), ln(30, 40)}},
		{"m10 20 l5 5 h10 v-5 z", Path{pt(10, 20), ln(15, 25), ln(25, 25), ln(25, 20), Close{}}},
		{"M0 0 10 10 20 0", Path{pt(0, 0), ln(10, 10), ln(20, 0)}},
		{"m1 1 2 2", Path{pt(1, 1), ln(3, 3)}},
		{"M1.5.5-1-2", Path{pt(1.5, 0.5), ln(-1, -2)}},
		{"M1e1,2E-1", Path{pt(10, 0.2)}},
		{"  M 0,0\n\tH 5 V 5  ", Path{pt(0, 0), ln(5, 0), ln(5, 5)}},
		{"M0 0 L10 0 L10 10 Z L20 20", Path{pt(0, 0), ln(10, 0), ln(10, 10), Close{}, pt(0, 0), ln(20, 20)}},
		{"M0 0 C10 0 20 10 30 10 S50 20 60 20", Path{
			pt(0, 0),
			CubicTo{{10, 0}, {20, 10}, {30, 10}},
			CubicTo{{40, 10}, {50, 20}, {60, 20}},
		}},
		{"M0 0 S10 10 20 0", Path{pt(0, 0), CubicTo{{0, 0}, {10, 10}, {20, 0}}}},
		{"M0 0 Q10 10 20 0 T40 0", Path{
			pt(0, 0),
			QuadTo{{10, 10}, {20, 0}},
			QuadTo{{30, -10}, {40, 0}},
		}},
		{"M0 0 q10 10 20 0 t20 0", Path{
			pt(0, 0),
			QuadTo{{10, 10}, {20, 0}},
			QuadTo{{30, -10}, {40, 0}},
		}},
		{"M0 0 A0 5 0 0 1 10 0", Path{pt(0, 0), ln(10, 0)}},
		{"", nil},
	}
	for _, tt := range tests {
		got, err := ParsePathData(tt.d)
		if err != nil {
			t.Errorf("ParsePathData(%q): %v", tt.d, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParsePathData(%q) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestParseArc(t *testing.T) {
	for _, d := range []string{
		"M0 0a5 5 0 1010 0",
		"M0 0 A 5 5 0 1 0 10 0",
		"M0,0 a5,5,0,1,0,10,0",
	} {
		p, err := ParsePathData(d)
		if err != nil {
			t.Fatalf("ParsePathData(%q): %v", d, err)
		}
		if len(p) < 2 {
			t.Fatalf("arc %q not compiled: %v", d, p)
		}
		last, ok := p[len(p)-1].(CubicTo)
		if !ok {
			t.Fatalf("arc %q should end with a cubic, got %T", d, p[len(p)-1])
		}
		if last[2] != (Point{10, 0}) {
			t.Errorf("arc %q ends at %v", d, last[2])
		}
		box, _ := p.Bounds()
		// large arc, sweep 0, from (0,0) to (10,0): a half circle of radius 5
		if h := box.Max.Y - box.Min.Y; math.Abs(h-5) > 0.05 {
			t.Errorf("arc %q has height %v, want 5", d, h)
		}
	}
}

func TestParsePathDataErrors(t *testing.T) {
	tests := []struct {
		d       string
		keep    int
		wantErr error
	}{
		{"L10 10", 0, nil},
		{"M0 0 L10", 1, ErrParamMismatch},
		{"M0 0 L10 10 X", 2, ErrInvalidNumber},
		{"M0 0 L10 10 20", 2, ErrParamMismatch},
		{"M0 0 L10 10 20 20 30 X", 3, ErrInvalidNumber},
		{"M0 0 h5 v", 2, ErrParamMismatch},
		{"M0 0 Z 5", 1, ErrParamMismatch},
		{"M0 0 L", 1, ErrParamMismatch},
		{"M0 0 L1e 2", 1, ErrInvalidNumber},
		{"M0 0 L - 2", 1, ErrInvalidNumber},
		{"M0 0 a5 5 0 2 0 10 0", 1, ErrInvalidNumber},
	}
	for _, tt := range tests {
		p, err := ParsePathData(tt.d)
		var perr *PathError
		if !errors.As(err, &perr) {
			t.Errorf("ParsePathData(%q) error = %v, want a PathError", tt.d, err)
			continue
		}
		if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
			t.Errorf("ParsePathData(%q) error = %v, want %v", tt.d, err, tt.wantErr)
		}
		if len(p) != tt.keep {
			t.Errorf("ParsePathData(%q) kept %d operations, want %d", tt.d, len(p), tt.keep)
		}
	}
}

func TestParseNumbers(t *testing.T) {
	got, err := ParseNumbers(" 0 0,10 -5e1\n.5")
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{0, 0, 10, -50, 0.5}; !reflect.DeepEqual(got, want) {
		t.Errorf("ParseNumbers = %v, want %v", got, want)
	}
	if _, err := ParseNumbers("1 a"); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("expected ErrInvalidNumber, got %v", err)
	}
}

func TestToSVGPath(t *testing.T) {
	p, _ := ParsePathData("M0 0 L1 2 Q3 4 5 6 C7 8 9 10 11 12 Z")
	want := "M0.000,0.000 L1.000,2.000 Q3.000,4.000,5.000,6.000 C7.000,8.000,9.000,10.000,11.000,12.000 Z"
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
