package svg

import (
	"fmt"
	"math"
	"strconv"

	"github.com/plotpath/svgps"
)

// parsePathData parses an SVG path data string (the d attribute) into an
// outline. All commands of the path grammar are supported, absolute and
// relative: M L H V C S Q T A Z. Smooth commands (S, T) reflect the
// previous control point when the previous command was of the matching
// curve family, and fall back to the current point otherwise.
func parsePathData(d string) (*svgps.Outline, error) {
	s := &pathScanner{data: d}
	o := svgps.NewOutline()

	var cmd byte
	var cur, start svgps.Point
	var prevCubicCtrl, prevQuadCtrl svgps.Point
	var prevWasCubic, prevWasQuad bool

	for s.more() {
		if c, ok := s.command(); ok {
			cmd = c
		} else {
			switch cmd {
			case 0:
				return nil, fmt.Errorf("svg: path data must start with a moveto command")
			case 'M':
				// Extra coordinate pairs after a moveto are implicit linetos.
				cmd = 'L'
			case 'm':
				cmd = 'l'
			}
		}

		rel := cmd >= 'a' && cmd <= 'z'
		wasCubic, wasQuad := false, false

		switch cmd {
		case 'M', 'm':
			x, y, err := s.pair()
			if err != nil {
				return nil, err
			}
			if rel {
				x += cur.X
				y += cur.Y
			}
			o.MoveTo(x, y)
			cur = svgps.Pt(x, y)
			start = cur

		case 'L', 'l':
			x, y, err := s.pair()
			if err != nil {
				return nil, err
			}
			if rel {
				x += cur.X
				y += cur.Y
			}
			o.LineTo(x, y)
			cur = svgps.Pt(x, y)

		case 'H', 'h':
			x, err := s.number()
			if err != nil {
				return nil, err
			}
			if rel {
				x += cur.X
			}
			o.LineTo(x, cur.Y)
			cur = svgps.Pt(x, cur.Y)

		case 'V', 'v':
			y, err := s.number()
			if err != nil {
				return nil, err
			}
			if rel {
				y += cur.Y
			}
			o.LineTo(cur.X, y)
			cur = svgps.Pt(cur.X, y)

		case 'C', 'c':
			c1x, c1y, err := s.pair()
			if err != nil {
				return nil, err
			}
			c2x, c2y, err := s.pair()
			if err != nil {
				return nil, err
			}
			x, y, err := s.pair()
			if err != nil {
				return nil, err
			}
			if rel {
				c1x += cur.X
				c1y += cur.Y
				c2x += cur.X
				c2y += cur.Y
				x += cur.X
				y += cur.Y
			}
			o.CubicTo(c1x, c1y, c2x, c2y, x, y)
			prevCubicCtrl = svgps.Pt(c2x, c2y)
			wasCubic = true
			cur = svgps.Pt(x, y)

		case 'S', 's':
			c2x, c2y, err := s.pair()
			if err != nil {
				return nil, err
			}
			x, y, err := s.pair()
			if err != nil {
				return nil, err
			}
			if rel {
				c2x += cur.X
				c2y += cur.Y
				x += cur.X
				y += cur.Y
			}
			c1 := cur
			if prevWasCubic {
				c1 = svgps.Pt(2*cur.X-prevCubicCtrl.X, 2*cur.Y-prevCubicCtrl.Y)
			}
			o.CubicTo(c1.X, c1.Y, c2x, c2y, x, y)
			prevCubicCtrl = svgps.Pt(c2x, c2y)
			wasCubic = true
			cur = svgps.Pt(x, y)

		case 'Q', 'q':
			cx, cy, err := s.pair()
			if err != nil {
				return nil, err
			}
			x, y, err := s.pair()
			if err != nil {
				return nil, err
			}
			if rel {
				cx += cur.X
				cy += cur.Y
				x += cur.X
				y += cur.Y
			}
			o.QuadTo(cx, cy, x, y)
			prevQuadCtrl = svgps.Pt(cx, cy)
			wasQuad = true
			cur = svgps.Pt(x, y)

		case 'T', 't':
			x, y, err := s.pair()
			if err != nil {
				return nil, err
			}
			if rel {
				x += cur.X
				y += cur.Y
			}
			ctrl := cur
			if prevWasQuad {
				ctrl = svgps.Pt(2*cur.X-prevQuadCtrl.X, 2*cur.Y-prevQuadCtrl.Y)
			}
			o.QuadTo(ctrl.X, ctrl.Y, x, y)
			prevQuadCtrl = ctrl
			wasQuad = true
			cur = svgps.Pt(x, y)

		case 'A', 'a':
			rx, err := s.number()
			if err != nil {
				return nil, err
			}
			ry, err := s.number()
			if err != nil {
				return nil, err
			}
			rot, err := s.number()
			if err != nil {
				return nil, err
			}
			large, err := s.flag()
			if err != nil {
				return nil, err
			}
			sweep, err := s.flag()
			if err != nil {
				return nil, err
			}
			x, y, err := s.pair()
			if err != nil {
				return nil, err
			}
			if rel {
				x += cur.X
				y += cur.Y
			}
			o.ArcTo(rx, ry, rot*math.Pi/180, large, sweep, x, y)
			cur = svgps.Pt(x, y)

		case 'Z', 'z':
			o.Close()
			cur = start

		default:
			return nil, fmt.Errorf("svg: unknown path command %q", string(cmd))
		}

		prevWasCubic = wasCubic
		prevWasQuad = wasQuad
	}

	return o, nil
}

// pathScanner tokenizes path data: commands, numbers, and arc flags,
// separated by optional whitespace and commas.
type pathScanner struct {
	data string
	i    int
}

func isPathSep(c byte) bool {
	return c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r'
}

func (s *pathScanner) skip() {
	for s.i < len(s.data) && isPathSep(s.data[s.i]) {
		s.i++
	}
}

func (s *pathScanner) more() bool {
	s.skip()
	return s.i < len(s.data)
}

// command consumes the next byte if it is a command letter.
func (s *pathScanner) command() (byte, bool) {
	s.skip()
	if s.i >= len(s.data) {
		return 0, false
	}
	c := s.data[s.i]
	if (c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') && c != 'e' && c != 'E' {
		s.i++
		return c, true
	}
	return 0, false
}

// number scans one floating-point number.
func (s *pathScanner) number() (float64, error) {
	s.skip()
	startIdx := s.i

	if s.i < len(s.data) && (s.data[s.i] == '+' || s.data[s.i] == '-') {
		s.i++
	}
	digits := 0
	for s.i < len(s.data) && s.data[s.i] >= '0' && s.data[s.i] <= '9' {
		s.i++
		digits++
	}
	if s.i < len(s.data) && s.data[s.i] == '.' {
		s.i++
		for s.i < len(s.data) && s.data[s.i] >= '0' && s.data[s.i] <= '9' {
			s.i++
			digits++
		}
	}
	if digits == 0 {
		return 0, fmt.Errorf("svg: expected number at offset %d in path data", startIdx)
	}
	if s.i < len(s.data) && (s.data[s.i] == 'e' || s.data[s.i] == 'E') {
		j := s.i + 1
		if j < len(s.data) && (s.data[j] == '+' || s.data[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s.data) && s.data[j] >= '0' && s.data[j] <= '9' {
			j++
			expDigits++
		}
		if expDigits > 0 {
			s.i = j
		}
	}

	v, err := strconv.ParseFloat(s.data[startIdx:s.i], 64)
	if err != nil {
		return 0, fmt.Errorf("svg: invalid number %q in path data", s.data[startIdx:s.i])
	}
	return v, nil
}

// pair scans two numbers forming a coordinate pair.
func (s *pathScanner) pair() (float64, float64, error) {
	x, err := s.number()
	if err != nil {
		return 0, 0, err
	}
	y, err := s.number()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// flag scans a single arc flag, which is a bare 0 or 1 that may be
// directly adjacent to the next token.
func (s *pathScanner) flag() (bool, error) {
	s.skip()
	if s.i >= len(s.data) {
		return false, fmt.Errorf("svg: expected arc flag at end of path data")
	}
	switch s.data[s.i] {
	case '0':
		s.i++
		return false, nil
	case '1':
		s.i++
		return true, nil
	}
	return false, fmt.Errorf("svg: invalid arc flag %q", string(s.data[s.i]))
}
