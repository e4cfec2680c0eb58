package svgps

// Outline is a shape's native boundary before canonicalization. Unlike
// Path, it may contain quadratic curves and elliptical arcs; the Flattener
// reduces it to the canonical {Move, Line, Cubic, Close} vocabulary.
type Outline struct {
	ops     []outlineOp
	start   Point
	current Point
}

type outlineOp interface {
	isOutlineOp()
}

type moveOp struct{ p Point }

type lineOp struct{ p Point }

type quadOp struct{ ctrl, p Point }

type cubicOp struct{ ctrl1, ctrl2, p Point }

// arcOp is an elliptical arc in SVG endpoint parameterization.
// rot is the x-axis rotation in radians.
type arcOp struct {
	rx, ry, rot  float64
	large, sweep bool
	p            Point
}

type closeOp struct{}

func (moveOp) isOutlineOp()  {}
func (lineOp) isOutlineOp()  {}
func (quadOp) isOutlineOp()  {}
func (cubicOp) isOutlineOp() {}
func (arcOp) isOutlineOp()   {}
func (closeOp) isOutlineOp() {}

// NewOutline creates a new empty outline.
func NewOutline() *Outline {
	return &Outline{
		ops: make([]outlineOp, 0, 16),
	}
}

// MoveTo starts a new subpath at (x, y).
func (o *Outline) MoveTo(x, y float64) {
	pt := Pt(x, y)
	o.ops = append(o.ops, moveOp{p: pt})
	o.start = pt
	o.current = pt
}

// LineTo draws a straight line to (x, y).
func (o *Outline) LineTo(x, y float64) {
	pt := Pt(x, y)
	o.ops = append(o.ops, lineOp{p: pt})
	o.current = pt
}

// QuadTo draws a quadratic Bezier curve to (x, y) with control point (cx, cy).
func (o *Outline) QuadTo(cx, cy, x, y float64) {
	o.ops = append(o.ops, quadOp{ctrl: Pt(cx, cy), p: Pt(x, y)})
	o.current = Pt(x, y)
}

// CubicTo draws a cubic Bezier curve to (x, y).
func (o *Outline) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	o.ops = append(o.ops, cubicOp{ctrl1: Pt(c1x, c1y), ctrl2: Pt(c2x, c2y), p: Pt(x, y)})
	o.current = Pt(x, y)
}

// ArcTo draws an elliptical arc to (x, y) using SVG endpoint
// parameterization: radii rx and ry, x-axis rotation rot in radians, and
// the large-arc and sweep flags.
func (o *Outline) ArcTo(rx, ry, rot float64, large, sweep bool, x, y float64) {
	o.ops = append(o.ops, arcOp{rx: rx, ry: ry, rot: rot, large: large, sweep: sweep, p: Pt(x, y)})
	o.current = Pt(x, y)
}

// Close closes the current subpath.
func (o *Outline) Close() {
	o.ops = append(o.ops, closeOp{})
	o.current = o.start
}

// CurrentPoint returns the endpoint of the last operation.
func (o *Outline) CurrentPoint() Point {
	return o.current
}

// Empty returns true if the outline has no operations.
func (o *Outline) Empty() bool {
	return len(o.ops) == 0
}

// Rectangle adds an axis-aligned rectangle: four lines and a close.
func (o *Outline) Rectangle(x, y, w, h float64) {
	o.MoveTo(x, y)
	o.LineTo(x+w, y)
	o.LineTo(x+w, y+h)
	o.LineTo(x, y+h)
	o.Close()
}

// RoundedRectangle adds a rectangle with rounded corners of radii rx, ry.
func (o *Outline) RoundedRectangle(x, y, w, h, rx, ry float64) {
	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}
	if rx <= 0 || ry <= 0 {
		o.Rectangle(x, y, w, h)
		return
	}

	o.MoveTo(x+rx, y)
	o.LineTo(x+w-rx, y)
	o.ArcTo(rx, ry, 0, false, true, x+w, y+ry)
	o.LineTo(x+w, y+h-ry)
	o.ArcTo(rx, ry, 0, false, true, x+w-rx, y+h)
	o.LineTo(x+rx, y+h)
	o.ArcTo(rx, ry, 0, false, true, x, y+h-ry)
	o.LineTo(x, y+ry)
	o.ArcTo(rx, ry, 0, false, true, x+rx, y)
	o.Close()
}

// Ellipse adds an ellipse as four cubic arcs forming a closed loop.
func (o *Outline) Ellipse(cx, cy, rx, ry float64) {
	// Magic constant for circle approximation with cubic Beziers:
	// 4/3 * (sqrt(2) - 1)
	const k = 0.5522847498307936
	ox := rx * k
	oy := ry * k

	o.MoveTo(cx+rx, cy)
	o.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	o.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	o.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	o.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	o.Close()
}

// Circle adds a circle as four cubic arcs forming a closed loop.
func (o *Outline) Circle(cx, cy, r float64) {
	o.Ellipse(cx, cy, r, r)
}

// Transform returns a copy of the outline with the affine transformation
// applied. Elliptical arcs are lowered to cubic segments first (a general
// affine map does not preserve the endpoint arc parameterization); the
// lowering error is bounded by the default flattening tolerance.
func (o *Outline) Transform(m Matrix) *Outline {
	result := NewOutline()
	var cur, start Point

	for _, op := range o.ops {
		switch t := op.(type) {
		case moveOp:
			pt := m.TransformPoint(t.p)
			result.MoveTo(pt.X, pt.Y)
			cur = t.p
			start = t.p
		case lineOp:
			pt := m.TransformPoint(t.p)
			result.LineTo(pt.X, pt.Y)
			cur = t.p
		case quadOp:
			ctrl := m.TransformPoint(t.ctrl)
			pt := m.TransformPoint(t.p)
			result.QuadTo(ctrl.X, ctrl.Y, pt.X, pt.Y)
			cur = t.p
		case cubicOp:
			c1 := m.TransformPoint(t.ctrl1)
			c2 := m.TransformPoint(t.ctrl2)
			pt := m.TransformPoint(t.p)
			result.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
			cur = t.p
		case arcOp:
			cubics := arcToCubics(cur, t, DefaultFlattenTolerance)
			if len(cubics) == 0 {
				// Degenerate arc: a straight line between the endpoints.
				pt := m.TransformPoint(t.p)
				result.LineTo(pt.X, pt.Y)
			}
			for _, c := range cubics {
				c1 := m.TransformPoint(c.P1)
				c2 := m.TransformPoint(c.P2)
				pt := m.TransformPoint(c.P3)
				result.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
			}
			cur = t.p
		case closeOp:
			result.Close()
			cur = start
		}
	}
	return result
}

// OutlineFromPath converts a canonical path back into an outline. Useful
// for re-flattening already-canonical data; flattening such an outline is
// the identity.
func OutlineFromPath(p *Path) *Outline {
	o := NewOutline()
	for _, cmd := range p.Commands() {
		switch c := cmd.(type) {
		case MoveTo:
			o.MoveTo(c.Point.X, c.Point.Y)
		case LineTo:
			o.LineTo(c.Point.X, c.Point.Y)
		case CubicTo:
			o.CubicTo(c.Control1.X, c.Control1.Y, c.Control2.X, c.Control2.Y, c.Point.X, c.Point.Y)
		case Close:
			o.Close()
		}
	}
	return o
}
