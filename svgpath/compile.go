package svgpath

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrParamMismatch is returned when a command receives
	// a number of parameters it does not accept.
	ErrParamMismatch = errors.New("svgpath: parameter count mismatch")

	// ErrInvalidNumber is returned for malformed numbers.
	ErrInvalidNumber = errors.New("svgpath: invalid number")
)

// PathError locates a syntax error in path data.
type PathError struct {
	Offset  int
	Command byte
	Err     error
}

func (e *PathError) Error() string {
	if e.Command != 0 {
		return fmt.Sprintf("svgpath: at offset %d (command %c): %v", e.Offset, e.Command, e.Err)
	}
	return fmt.Sprintf("svgpath: at offset %d: %v", e.Offset, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// ParsePathData compiles SVG path data (the 'd' attribute).
// On error, the returned path holds the segments parsed before
// the faulty token, including the complete parameter groups of the
// command being read, which is how SVG renderers are required
// to handle invalid path data.
func ParsePathData(d string) (Path, error) {
	var c pathCursor
	err := c.compile(d)
	return c.path, err
}

// ParseNumbers parses a list of numbers separated by
// white space and/or commas, as used by 'points' or 'viewBox'.
func ParseNumbers(s string) ([]float64, error) {
	sc := scanner{src: s}
	var out []float64
	for {
		sc.skipSeparators()
		if sc.eof() {
			return out, nil
		}
		start := sc.pos
		f, err := sc.number()
		if err != nil {
			return out, &PathError{Offset: start, Err: err}
		}
		out = append(out, f)
	}
}

// pathCursor holds the state of the path data compiler.
type pathCursor struct {
	path             Path
	points           []float64
	placeX, placeY   float64 // current point
	startX, startY   float64 // start of the current sub path
	cntlPtX, cntlPtY float64 // last control point, for S and T
	lastKey          byte
	closed           bool // a sub path was closed and no moveto followed
}

var paramCounts = [256]int8{
	'M': 2, 'm': 2, 'L': 2, 'l': 2, 'T': 2, 't': 2,
	'H': 1, 'h': 1, 'V': 1, 'v': 1,
	'C': 6, 'c': 6,
	'S': 4, 's': 4, 'Q': 4, 'q': 4,
	'A': 7, 'a': 7,
	'Z': 0, 'z': 0,
}

func isCommand(b byte) bool {
	switch b {
	case 'M', 'm', 'L', 'l', 'T', 't', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's', 'Q', 'q', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

func (c *pathCursor) compile(d string) error {
	sc := scanner{src: d}
	first := true
	for {
		sc.skipSeparators()
		if sc.eof() {
			return nil
		}
		offset := sc.pos
		key := sc.src[sc.pos]
		if !isCommand(key) {
			return &PathError{Offset: offset, Err: fmt.Errorf("unexpected character %q", key)}
		}
		if first && key != 'M' && key != 'm' {
			return &PathError{Offset: offset, Command: key, Err: errors.New("path data must start with a moveto")}
		}
		first = false
		sc.pos++

		c.points = c.points[:0]
		if err := c.readParams(&sc, key); err != nil {
			// keep the complete parameter groups read so far
			if paramCounts[key] > 0 {
				_ = c.addSeg(key)
			}
			return &PathError{Offset: offset, Command: key, Err: err}
		}
		if err := c.addSeg(key); err != nil {
			return &PathError{Offset: offset, Command: key, Err: err}
		}
	}
}

// readParams reads the numbers following a command, until
// the next command letter or the end of data.
func (c *pathCursor) readParams(sc *scanner, key byte) error {
	isArc := key == 'A' || key == 'a'
	for {
		sc.skipSeparators()
		if sc.eof() || isCommand(sc.src[sc.pos]) {
			return nil
		}
		var (
			f   float64
			err error
		)
		// large-arc and sweep flags are single digits, possibly unseparated
		if i := len(c.points) % 7; isArc && (i == 3 || i == 4) {
			f, err = sc.flag()
		} else {
			f, err = sc.number()
		}
		if err != nil {
			return err
		}
		c.points = append(c.points, f)
	}
}

func (c *pathCursor) addSeg(key byte) error {
	n := int(paramCounts[key])
	if n == 0 {
		if len(c.points) != 0 {
			return ErrParamMismatch
		}
		c.path.Stop(true)
		c.placeX, c.placeY = c.startX, c.startY
		c.closed = true
		c.lastKey = key
		return nil
	}
	rel := key >= 'a'
	for i := 0; i+n <= len(c.points); i += n {
		pts := c.points[i : i+n]
		if rel {
			c.toAbsolute(key, pts)
		}
		c.addOne(key, i > 0, pts)
	}
	if len(c.points) == 0 || len(c.points)%n != 0 {
		return ErrParamMismatch
	}
	return nil
}

// toAbsolute offsets the coordinates of a relative command
// by the current point.
func (c *pathCursor) toAbsolute(key byte, pts []float64) {
	switch key {
	case 'h':
		pts[0] += c.placeX
	case 'v':
		pts[0] += c.placeY
	case 'a':
		pts[5] += c.placeX
		pts[6] += c.placeY
	default:
		for j := 0; j+1 < len(pts); j += 2 {
			pts[j] += c.placeX
			pts[j+1] += c.placeY
		}
	}
}

func (c *pathCursor) addOne(key byte, repeated bool, pts []float64) {
	if c.closed && key != 'M' && key != 'm' {
		c.path.Start(Point{c.startX, c.startY})
	}
	c.closed = false
	switch key {
	case 'M', 'm':
		if !repeated {
			c.path.Start(Point{pts[0], pts[1]})
			c.startX, c.startY = pts[0], pts[1]
		} else {
			c.path.Line(Point{pts[0], pts[1]})
		}
		c.placeX, c.placeY = pts[0], pts[1]
	case 'L', 'l':
		c.path.Line(Point{pts[0], pts[1]})
		c.placeX, c.placeY = pts[0], pts[1]
	case 'H', 'h':
		c.placeX = pts[0]
		c.path.Line(Point{c.placeX, c.placeY})
	case 'V', 'v':
		c.placeY = pts[0]
		c.path.Line(Point{c.placeX, c.placeY})
	case 'C', 'c':
		c.path.CubeBezier(Point{pts[0], pts[1]}, Point{pts[2], pts[3]}, Point{pts[4], pts[5]})
		c.cntlPtX, c.cntlPtY = pts[2], pts[3]
		c.placeX, c.placeY = pts[4], pts[5]
	case 'S', 's':
		x1, y1 := c.reflectControl('C', 'c', 'S', 's')
		c.path.CubeBezier(Point{x1, y1}, Point{pts[0], pts[1]}, Point{pts[2], pts[3]})
		c.cntlPtX, c.cntlPtY = pts[0], pts[1]
		c.placeX, c.placeY = pts[2], pts[3]
	case 'Q', 'q':
		c.path.QuadBezier(Point{pts[0], pts[1]}, Point{pts[2], pts[3]})
		c.cntlPtX, c.cntlPtY = pts[0], pts[1]
		c.placeX, c.placeY = pts[2], pts[3]
	case 'T', 't':
		x1, y1 := c.reflectControl('Q', 'q', 'T', 't')
		c.path.QuadBezier(Point{x1, y1}, Point{pts[0], pts[1]})
		c.cntlPtX, c.cntlPtY = x1, y1
		c.placeX, c.placeY = pts[0], pts[1]
	case 'A', 'a':
		var params [7]float64
		copy(params[:], pts)
		c.placeX, c.placeY = c.path.AddArc(params, c.placeX, c.placeY)
	}
	c.lastKey = key
}

// reflectControl returns the reflection of the previous control point
// when the previous command is one of keys, the current point otherwise.
func (c *pathCursor) reflectControl(keys ...byte) (x, y float64) {
	for _, k := range keys {
		if c.lastKey == k {
			return 2*c.placeX - c.cntlPtX, 2*c.placeY - c.cntlPtY
		}
	}
	return c.placeX, c.placeY
}

// scanner tokenizes SVG numbers.
type scanner struct {
	src string
	pos int
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) skipSeparators() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			s.pos++
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// number reads a number, following the SVG grammar:
// [sign] digits [. digits] [(e|E) [sign] digits]
// A second dot, or a sign, ends the number, so that "1.5.5"
// reads as 1.5 and .5.
func (s *scanner) number() (float64, error) {
	start := s.pos
	i := s.pos
	if i < len(s.src) && (s.src[i] == '+' || s.src[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s.src) && isDigit(s.src[i]) {
		i++
		digits++
	}
	if i < len(s.src) && s.src[i] == '.' {
		i++
		for i < len(s.src) && isDigit(s.src[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w at %q", ErrInvalidNumber, s.rest(start))
	}
	if i < len(s.src) && (s.src[i] == 'e' || s.src[i] == 'E') {
		j := i + 1
		if j < len(s.src) && (s.src[j] == '+' || s.src[j] == '-') {
			j++
		}
		if j < len(s.src) && isDigit(s.src[j]) {
			for j < len(s.src) && isDigit(s.src[j]) {
				j++
			}
			i = j
		}
	}
	f, err := strconv.ParseFloat(s.src[start:i], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidNumber, err)
	}
	s.pos = i
	return f, nil
}

// flag reads an arc flag, which is a single '0' or '1'.
func (s *scanner) flag() (float64, error) {
	switch s.src[s.pos] {
	case '0':
		s.pos++
		return 0, nil
	case '1':
		s.pos++
		return 1, nil
	}
	return 0, fmt.Errorf("%w: invalid arc flag at %q", ErrInvalidNumber, s.rest(s.pos))
}

func (s *scanner) rest(from int) string {
	const max = 10
	if len(s.src)-from > max {
		return s.src[from:from+max] + "..."
	}
	return s.src[from:]
}
