package svgps

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// CanonicalStream is the persisted form of a document's canonical path
// data: a viewbox plus one flat command/coordinate stream.
//
// The text layout is:
//
//	<width> <height> <command count> <coordinate count> LF
//	<command tags, one character each: M|L|C|Z, no delimiter> LF
//	<coordinates, space-delimited, (x, y) interleaved per point>
//	[LF <ignored trailing text>]
//
// The coordinate count is always even; Move and Line consume one point,
// Cubic three, Close none.
type CanonicalStream struct {
	Width, Height uint32
	Path          *Path
}

// NewCanonicalStream wraps a canonical path with its viewbox.
func NewCanonicalStream(width, height uint32, p *Path) *CanonicalStream {
	return &CanonicalStream{Width: width, Height: height, Path: p}
}

// Encode writes the stream in the canonical text format. Coordinates are
// formatted at shortest round-trip precision, so decoding reproduces them
// bit for bit.
func (cs *CanonicalStream) Encode(w io.Writer) error {
	cmds := cs.Path.Commands()

	if _, err := fmt.Fprintf(w, "%d %d %d %d\n",
		cs.Width, cs.Height, len(cmds), cs.Path.CoordCount()); err != nil {
		return err
	}

	var tags strings.Builder
	for _, cmd := range cmds {
		tags.WriteByte(commandTag(cmd))
	}
	if _, err := fmt.Fprintf(w, "%s\n", tags.String()); err != nil {
		return err
	}

	var coords strings.Builder
	first := true
	writePoint := func(p Point) {
		if !first {
			coords.WriteByte(' ')
		}
		first = false
		coords.WriteString(strconv.FormatFloat(p.X, 'g', -1, 64))
		coords.WriteByte(' ')
		coords.WriteString(strconv.FormatFloat(p.Y, 'g', -1, 64))
	}
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case MoveTo:
			writePoint(c.Point)
		case LineTo:
			writePoint(c.Point)
		case CubicTo:
			writePoint(c.Control1)
			writePoint(c.Control2)
			writePoint(c.Point)
		}
	}
	_, err := fmt.Fprintf(w, "%s\n", coords.String())
	return err
}

// commandTag returns the one-character tag for a canonical command.
func commandTag(cmd PathCommand) byte {
	switch cmd.(type) {
	case MoveTo:
		return 'M'
	case LineTo:
		return 'L'
	case CubicTo:
		return 'C'
	default:
		return 'Z'
	}
}

// DecodeStream reads a canonical stream from r. Any content after the
// coordinate line is ignored, which permits trailing human-readable
// annotations. All structural violations return a *FormatError; a stream
// that decodes with an error must be discarded entirely.
func DecodeStream(r io.Reader) (*CanonicalStream, error) {
	br := bufio.NewReader(r)

	header, err := readLine(br)
	if err != nil {
		return nil, &FormatError{Field: "header", Reason: "missing header line"}
	}
	fields := strings.Fields(header)
	if len(fields) != 4 {
		return nil, &FormatError{
			Field:  "header",
			Reason: fmt.Sprintf("expected 4 fields (width height commands coordinates), got %d", len(fields)),
		}
	}
	nums := make([]uint32, 4)
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, &FormatError{
				Field:  "header",
				Reason: fmt.Sprintf("field %d is not a uint32: %q", i+1, f),
			}
		}
		nums[i] = uint32(v)
	}
	width, height := nums[0], nums[1]
	cmdCount, coordCount := int(nums[2]), int(nums[3])

	if coordCount%2 != 0 {
		return nil, &FormatError{
			Field:  "coordinates",
			Reason: fmt.Sprintf("coordinate count %d is odd", coordCount),
		}
	}

	tagLine, err := readLine(br)
	if err != nil && cmdCount > 0 {
		return nil, &FormatError{Field: "commands", Reason: "missing command line"}
	}
	tags := strings.TrimRight(tagLine, "\r")
	if len(tags) != cmdCount {
		return nil, &FormatError{
			Field:  "commands",
			Reason: fmt.Sprintf("declared %d commands, found %d tags", cmdCount, len(tags)),
		}
	}

	coordLine, err := readLine(br)
	if err != nil && coordCount > 0 {
		return nil, &FormatError{Field: "coordinates", Reason: "missing coordinate line"}
	}
	coordFields := strings.Fields(coordLine)
	if len(coordFields) != coordCount {
		return nil, &FormatError{
			Field:  "coordinates",
			Reason: fmt.Sprintf("declared %d coordinates, found %d", coordCount, len(coordFields)),
		}
	}
	coords := make([]float64, len(coordFields))
	for i, f := range coordFields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, &FormatError{
				Field:  "coordinates",
				Reason: fmt.Sprintf("coordinate %d is not a finite number: %q", i+1, f),
			}
		}
		coords[i] = v
	}

	p := NewPath()
	ci := 0
	takePoint := func() (Point, bool) {
		if ci+2 > len(coords) {
			return Point{}, false
		}
		pt := Pt(coords[ci], coords[ci+1])
		ci += 2
		return pt, true
	}

	for i := 0; i < len(tags); i++ {
		switch tags[i] {
		case 'M':
			pt, ok := takePoint()
			if !ok {
				return nil, coordShortage(i)
			}
			p.MoveTo(pt.X, pt.Y)
		case 'L':
			pt, ok := takePoint()
			if !ok {
				return nil, coordShortage(i)
			}
			p.LineTo(pt.X, pt.Y)
		case 'C':
			c1, ok1 := takePoint()
			c2, ok2 := takePoint()
			pt, ok3 := takePoint()
			if !ok1 || !ok2 || !ok3 {
				return nil, coordShortage(i)
			}
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
		case 'Z':
			p.Close()
		default:
			return nil, &FormatError{
				Field:  "commands",
				Reason: fmt.Sprintf("invalid command %q at position %d", string(tags[i]), i+1),
			}
		}
	}
	if ci != len(coords) {
		return nil, &FormatError{
			Field:  "coordinates",
			Reason: fmt.Sprintf("command sequence consumes %d coordinates, %d declared", ci, len(coords)),
		}
	}

	return &CanonicalStream{Width: width, Height: height, Path: p}, nil
}

func coordShortage(tagIndex int) error {
	return &FormatError{
		Field:  "coordinates",
		Reason: fmt.Sprintf("not enough coordinates for command %d", tagIndex+1),
	}
}

// readLine reads up to the next line feed, returning the line without it.
// A final line without a trailing line feed is still returned.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && len(line) == 0 {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}
