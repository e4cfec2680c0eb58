package svgps

// PathCommand is one command of the canonical vocabulary.
// The closed set of implementations is MoveTo, LineTo, CubicTo and Close.
type PathCommand interface {
	isPathCommand()
}

// MoveTo starts a new subpath at a point without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathCommand() {}

// LineTo draws a straight line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathCommand() {}

// CubicTo draws a cubic Bezier curve with two control points.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathCommand() {}

// Close closes the current subpath back to the most recent MoveTo point.
// It carries no coordinates.
type Close struct{}

func (Close) isPathCommand() {}

// Path is an ordered sequence of canonical path commands.
// A non-empty path always begins with MoveTo, and every command's start
// point is the previous command's endpoint. Only positional continuity is
// guaranteed; there is no smoothness requirement across commands.
type Path struct {
	commands []PathCommand
	start    Point // start of the current subpath
	current  Point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		commands: make([]PathCommand, 0, 16),
	}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.commands = append(p.commands, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line to (x, y).
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.commands = append(p.commands, LineTo{Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve to (x, y) with control points
// (c1x, c1y) and (c2x, c2y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.commands = append(p.commands, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    Pt(x, y),
	})
	p.current = Pt(x, y)
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.commands = append(p.commands, Close{})
	p.current = p.start
}

// Commands returns the path's command sequence.
func (p *Path) Commands() []PathCommand {
	return p.commands
}

// Empty returns true if the path has no commands.
func (p *Path) Empty() bool {
	return len(p.commands) == 0
}

// CurrentPoint returns the endpoint of the last command.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// Closed returns true if the path ends with a Close command.
func (p *Path) Closed() bool {
	if len(p.commands) == 0 {
		return false
	}
	_, ok := p.commands[len(p.commands)-1].(Close)
	return ok
}

// PointCount returns the number of points consumed by all commands:
// one for MoveTo and LineTo, three for CubicTo, none for Close.
func (p *Path) PointCount() int {
	n := 0
	for _, cmd := range p.commands {
		switch cmd.(type) {
		case MoveTo, LineTo:
			n++
		case CubicTo:
			n += 3
		}
	}
	return n
}

// CoordCount returns the number of coordinates consumed by all commands.
// Always even: coordinates come in (x, y) pairs.
func (p *Path) CoordCount() int {
	return 2 * p.PointCount()
}

// Length returns the approximate arc length of the path: exact lengths for
// lines and closing segments, chord/control-polygon averages for cubics.
func (p *Path) Length() float64 {
	var total float64
	var current, start Point

	for _, cmd := range p.commands {
		switch c := cmd.(type) {
		case MoveTo:
			start = c.Point
			current = c.Point
		case LineTo:
			total += current.Distance(c.Point)
			current = c.Point
		case CubicTo:
			total += CubicBez{P0: current, P1: c.Control1, P2: c.Control2, P3: c.Point}.Length()
			current = c.Point
		case Close:
			total += current.Distance(start)
			current = start
		}
	}
	return total
}

// Append adds all of q's commands to p.
func (p *Path) Append(q *Path) {
	appendCommands(p, q.commands)
}

// Subpaths splits the path at MoveTo boundaries into independent paths.
func (p *Path) Subpaths() []*Path {
	var subs []*Path
	var sub *Path

	for _, cmd := range p.commands {
		if _, ok := cmd.(MoveTo); ok || sub == nil {
			sub = NewPath()
			subs = append(subs, sub)
		}
		appendCommands(sub, []PathCommand{cmd})
	}
	return subs
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	result := NewPath()
	result.commands = make([]PathCommand, len(p.commands))
	copy(result.commands, p.commands)
	result.start = p.start
	result.current = p.current
	return result
}
