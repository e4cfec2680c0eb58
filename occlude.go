package svgps

import "math"

// Occlusion culling ("autocut"): given a z-ordered document, remove the
// stretches of a stroke candidate's outline that are painted over by the
// fill of a shape above it. The test is purely geometric: candidate
// outlines are sampled into polylines, every sample point is tested for
// membership in the union of the occluding fills with a winding-rule
// point-in-polygon test, and only edges with both endpoints covered are
// considered hidden.

// occluder is an immutable snapshot of one fill region: the flattened and
// closed polygon loops of a shape's fill outline, its winding rule, and its
// z-order index. Built once per document; never mutated afterwards.
type occluder struct {
	z     int
	rule  FillRule
	loops [][]Point
	bbox  bounds
}

// occluderSet is the shared, read-only snapshot of every resolvable fill in
// the document, in ascending z-order. Safe for concurrent readers.
type occluderSet struct {
	occluders []occluder
}

// bounds is an axis-aligned bounding box used for early rejection.
type bounds struct {
	minX, minY, maxX, maxY float64
}

func newBounds() bounds {
	return bounds{
		minX: math.Inf(1), minY: math.Inf(1),
		maxX: math.Inf(-1), maxY: math.Inf(-1),
	}
}

func (b *bounds) expand(p Point) {
	b.minX = math.Min(b.minX, p.X)
	b.minY = math.Min(b.minY, p.Y)
	b.maxX = math.Max(b.maxX, p.X)
	b.maxY = math.Max(b.maxY, p.Y)
}

func (b bounds) contains(p Point) bool {
	return p.X >= b.minX && p.X <= b.maxX && p.Y >= b.minY && p.Y <= b.maxY
}

// newOccluderSet builds the occluder snapshot for a document. Every shape
// with a resolvable fill participates, regardless of stroke participation.
// Degenerate (zero-area) fills contribute no coverage and are dropped.
func newOccluderSet(doc *Document, opts options) *occluderSet {
	set := &occluderSet{}

	for _, s := range doc.Shapes {
		if s.Fill == nil {
			continue
		}
		fill := Flatten(s.Fill, opts.flattenTolerance)
		loops := polygonize(fill, opts.sampleTolerance)

		var area float64
		bbox := newBounds()
		for _, loop := range loops {
			area += math.Abs(loopArea(loop))
			for _, p := range loop {
				bbox.expand(p)
			}
		}
		if area < 1e-12 {
			err := &GeometryError{Reason: "zero-area fill"}
			Logger().Warn("ignoring occluder", "err", err, "z", s.Z)
			continue
		}

		rule := s.FillRule
		if opts.fillRuleSet {
			rule = opts.fillRule
		}
		set.occluders = append(set.occluders, occluder{
			z:     s.Z,
			rule:  rule,
			loops: loops,
			bbox:  bbox,
		})
	}
	return set
}

// covered reports whether pt lies inside at least one occluder strictly
// above z. Membership is a logical OR, so the first hit short-circuits.
func (s *occluderSet) covered(pt Point, z int) bool {
	for i := range s.occluders {
		o := &s.occluders[i]
		if o.z <= z {
			continue
		}
		if !o.bbox.contains(pt) {
			continue
		}
		w := 0
		for _, loop := range o.loops {
			w += loopWinding(loop, pt)
		}
		inside := w != 0
		if o.rule == FillRuleEvenOdd {
			inside = w%2 != 0
		}
		if inside {
			return true
		}
	}
	return false
}

// anyAbove reports whether any occluder sits strictly above z.
func (s *occluderSet) anyAbove(z int) bool {
	for i := range s.occluders {
		if s.occluders[i].z > z {
			return true
		}
	}
	return false
}

// polygonize samples a canonical path into one closed polygon loop per
// subpath. Open subpaths are implicitly closed, matching fill semantics.
func polygonize(p *Path, tolerance float64) [][]Point {
	var loops [][]Point
	var loop []Point
	var current, start Point

	flush := func() {
		if len(loop) >= 3 {
			loops = append(loops, loop)
		}
		loop = nil
	}

	// A drawing command after Close begins a new loop at the pen position,
	// which Close has returned to the subpath start.
	seed := func() {
		if len(loop) == 0 {
			loop = append(loop, current)
		}
	}

	for _, cmd := range p.Commands() {
		switch c := cmd.(type) {
		case MoveTo:
			flush()
			loop = append(loop, c.Point)
			current = c.Point
			start = c.Point
		case LineTo:
			seed()
			loop = append(loop, c.Point)
			current = c.Point
		case CubicTo:
			seed()
			bez := CubicBez{P0: current, P1: c.Control1, P2: c.Control2, P3: c.Point}
			n := bez.SampleCount(tolerance)
			for k := 1; k <= n; k++ {
				loop = append(loop, bez.Eval(float64(k)/float64(n)))
			}
			current = c.Point
		case Close:
			flush()
			current = start
		}
	}
	flush()
	return loops
}

// loopArea returns the signed shoelace area of a polygon loop.
func loopArea(loop []Point) float64 {
	var area float64
	for i := range loop {
		j := (i + 1) % len(loop)
		area += loop[i].Cross(loop[j])
	}
	return area / 2
}

// loopWinding returns the winding number of pt with respect to the loop,
// using a horizontal ray to the right. The loop is treated as closed.
func loopWinding(loop []Point, pt Point) int {
	w := 0
	for i := range loop {
		j := (i + 1) % len(loop)
		w += segmentWinding(loop[i], loop[j], pt)
	}
	return w
}

// segmentWinding computes the winding contribution of one edge.
func segmentWinding(p0, p1, pt Point) int {
	if p0.Y <= pt.Y && p1.Y > pt.Y {
		// Upward crossing
		if isLeft(p0, p1, pt) > 0 {
			return 1
		}
	} else if p0.Y > pt.Y && p1.Y <= pt.Y {
		// Downward crossing
		if isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

// isLeft returns positive if pt is left of line p0-p1, negative if right,
// zero if on the line.
func isLeft(p0, p1, pt Point) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}

// sample is one point of a subpath's dense polyline approximation, tagged
// with the command it came from and the parameter along that command.
// t is in (0, 1]; t == 1 marks a command boundary. The subpath's leading
// MoveTo contributes the first sample with t == 1.
type sample struct {
	pt  Point
	cmd int
	t   float64
}

// segKind distinguishes the geometry backing a command during cutting.
type segKind int

const (
	segNone segKind = iota // MoveTo: no geometry
	segLine                // LineTo or the closing edge of Close
	segCubic
)

// segment is the evaluated geometry of one command.
type segment struct {
	kind  segKind
	line  Line
	cubic CubicBez
}

// cutSubpath holds one subpath of a stroke candidate prepared for cutting.
type cutSubpath struct {
	commands []PathCommand
	segs     []segment
	samples  []sample
}

// prepareSubpaths splits a canonical path at MoveTo boundaries and samples
// each subpath: lines contribute their endpoints as-is, cubics are sampled
// at enough parametric steps to keep chord deviation under tolerance.
func prepareSubpaths(p *Path, tolerance float64) []*cutSubpath {
	var subs []*cutSubpath
	var sub *cutSubpath
	var current, start Point

	for _, cmd := range p.Commands() {
		if _, ok := cmd.(MoveTo); ok {
			sub = &cutSubpath{}
			subs = append(subs, sub)
		}
		if sub == nil {
			// Defensive: canonical paths always begin with MoveTo.
			sub = &cutSubpath{}
			subs = append(subs, sub)
		}
		ci := len(sub.commands)
		sub.commands = append(sub.commands, cmd)

		switch c := cmd.(type) {
		case MoveTo:
			sub.segs = append(sub.segs, segment{kind: segNone})
			sub.samples = append(sub.samples, sample{pt: c.Point, cmd: ci, t: 1})
			current = c.Point
			start = c.Point

		case LineTo:
			sub.segs = append(sub.segs, segment{kind: segLine, line: Line{P0: current, P1: c.Point}})
			sub.samples = append(sub.samples, sample{pt: c.Point, cmd: ci, t: 1})
			current = c.Point

		case CubicTo:
			bez := CubicBez{P0: current, P1: c.Control1, P2: c.Control2, P3: c.Point}
			sub.segs = append(sub.segs, segment{kind: segCubic, cubic: bez})
			n := bez.SampleCount(tolerance)
			for k := 1; k <= n; k++ {
				t := float64(k) / float64(n)
				sub.samples = append(sub.samples, sample{pt: bez.Eval(t), cmd: ci, t: t})
			}
			current = c.Point

		case Close:
			sub.segs = append(sub.segs, segment{kind: segLine, line: Line{P0: current, P1: start}})
			sub.samples = append(sub.samples, sample{pt: start, cmd: ci, t: 1})
			current = start
		}
	}
	return subs
}

// cutPath splits a stroke candidate's path into visible-only sub-paths.
// Each maximal run of visible polyline edges becomes one emitted sub-path.
// A shape with no occluders above it is returned unmodified; a fully
// covered shape yields no sub-paths at all.
func (s *occluderSet) cutPath(p *Path, z int, tolerance float64) []*Path {
	if !s.anyAbove(z) {
		return []*Path{p}
	}

	var out []*Path
	for _, sub := range prepareSubpaths(p, tolerance) {
		out = append(out, s.cutSubpath(sub, z)...)
	}
	return out
}

// cutSubpath evaluates coverage for every sample of one subpath, masks the
// polyline edges (an edge is hidden only when both of its endpoints are
// covered), and emits each maximal run of visible edges as a sub-path.
func (s *occluderSet) cutSubpath(sub *cutSubpath, z int) []*Path {
	n := len(sub.samples)
	if n < 2 {
		// A bare MoveTo has no edges to stroke.
		return nil
	}

	cov := make([]bool, n)
	for i, sm := range sub.samples {
		cov[i] = s.covered(sm.pt, z)
	}

	hidden := func(edge int) bool {
		return cov[edge] && cov[edge+1]
	}

	edges := n - 1
	var out []*Path
	for i := 0; i < edges; {
		if hidden(i) {
			i++
			continue
		}
		j := i
		for j < edges && !hidden(j) {
			j++
		}
		// Visible run: edges i..j-1, samples i..j.
		out = append(out, sub.emitRun(i, j))
		i = j
	}
	return out
}

// emitRun re-expresses the run covering samples a..e (inclusive) at the
// original command granularity. Run boundaries that fall exactly on command
// boundaries reuse the original commands; a boundary inside a cubic uses an
// exact parametric subsegment of that cubic. Every run starts with a
// synthesized MoveTo; the run is terminated with Close only when it spans
// the entire subpath and the subpath was itself closed.
func (sub *cutSubpath) emitRun(a, e int) *Path {
	out := NewPath()

	if a == 0 && e == len(sub.samples)-1 {
		// The whole subpath is visible: return it unmodified.
		appendCommands(out, sub.commands)
		return out
	}

	sa := sub.samples[a]
	se := sub.samples[e]
	out.MoveTo(sa.pt.X, sa.pt.Y)

	cmdStart := sa.cmd
	tFrom := sa.t
	if sa.t == 1 {
		// Boundary sample: the run starts at the next command's beginning.
		cmdStart++
		tFrom = 0
	}
	cmdEnd := se.cmd
	tTo := se.t

	for ci := cmdStart; ci <= cmdEnd; ci++ {
		t0, t1 := 0.0, 1.0
		if ci == cmdStart {
			t0 = tFrom
		}
		if ci == cmdEnd {
			t1 = tTo
		}

		seg := sub.segs[ci]
		switch seg.kind {
		case segLine:
			// The closing edge of a partial run degrades to a line; Close
			// is reserved for fully surviving closed subpaths.
			pt := seg.line.P1
			if t1 < 1 {
				pt = seg.line.Eval(t1)
			}
			out.LineTo(pt.X, pt.Y)
		case segCubic:
			if t0 == 0 && t1 == 1 {
				c := seg.cubic
				out.CubicTo(c.P1.X, c.P1.Y, c.P2.X, c.P2.Y, c.P3.X, c.P3.Y)
			} else {
				c := seg.cubic.Subsegment(t0, t1)
				out.CubicTo(c.P1.X, c.P1.Y, c.P2.X, c.P2.Y, c.P3.X, c.P3.Y)
			}
		}
	}
	return out
}

// appendCommands replays a command slice onto a path.
func appendCommands(out *Path, cmds []PathCommand) {
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case MoveTo:
			out.MoveTo(c.Point.X, c.Point.Y)
		case LineTo:
			out.LineTo(c.Point.X, c.Point.Y)
		case CubicTo:
			out.CubicTo(c.Control1.X, c.Control1.Y, c.Control2.X, c.Control2.Y, c.Point.X, c.Point.Y)
		case Close:
			out.Close()
		}
	}
}
