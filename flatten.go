package svgps

import "math"

// Flatten converts an outline into a canonical path using only
// {Move, Line, Cubic, Close} commands.
//
// Straight segments map directly to lines. Quadratic curves are raised to
// exact cubic equivalents. Elliptical arcs are split into enough cubic
// segments (never spanning more than 90 degrees each) that the maximum
// deviation from the true arc stays under tolerance. Malformed arcs degrade
// to a straight line between their endpoints; a single bad primitive never
// aborts the document.
//
// Flattening an outline that already contains only canonical commands
// returns it unchanged.
func Flatten(o *Outline, tolerance float64) *Path {
	if tolerance <= 0 {
		tolerance = DefaultFlattenTolerance
	}

	p := NewPath()
	var cur, start Point

	for _, op := range o.ops {
		switch t := op.(type) {
		case moveOp:
			p.MoveTo(t.p.X, t.p.Y)
			cur = t.p
			start = t.p

		case lineOp:
			p.LineTo(t.p.X, t.p.Y)
			cur = t.p

		case quadOp:
			c := QuadBez{P0: cur, P1: t.ctrl, P2: t.p}.Raise()
			p.CubicTo(c.P1.X, c.P1.Y, c.P2.X, c.P2.Y, c.P3.X, c.P3.Y)
			cur = t.p

		case cubicOp:
			p.CubicTo(t.ctrl1.X, t.ctrl1.Y, t.ctrl2.X, t.ctrl2.Y, t.p.X, t.p.Y)
			cur = t.p

		case arcOp:
			cubics := arcToCubics(cur, t, tolerance)
			if len(cubics) == 0 {
				err := &ParseError{Op: "arc", Reason: "degenerate parameters"}
				Logger().Warn("degrading arc to line", "err", err, "rx", t.rx, "ry", t.ry)
				p.LineTo(t.p.X, t.p.Y)
			}
			for _, c := range cubics {
				p.CubicTo(c.P1.X, c.P1.Y, c.P2.X, c.P2.Y, c.P3.X, c.P3.Y)
			}
			cur = t.p

		case closeOp:
			p.Close()
			cur = start
		}
	}
	return p
}

// arcToCubics converts an elliptical arc in endpoint parameterization into
// cubic Bezier segments, following the SVG arc conversion equations.
// Returns nil when the arc is degenerate: zero or negative radius, or
// coincident endpoints.
func arcToCubics(start Point, a arcOp, tolerance float64) []CubicBez {
	if a.rx <= 0 || a.ry <= 0 {
		return nil
	}
	if start == a.p {
		return nil
	}

	rx, ry := a.rx, a.ry
	cosPhi := math.Cos(a.rot)
	sinPhi := math.Sin(a.rot)

	// Step 1: transform the midpoint into the ellipse-aligned frame.
	dx := (start.X - a.p.X) / 2
	dy := (start.Y - a.p.Y) / 2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	// Step 2: scale radii up if they cannot span the endpoints.
	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	// Step 3: center in the ellipse-aligned frame.
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	if num < 0 {
		num = 0 // floating-point underflow when lambda is exactly 1
	}
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := math.Sqrt(num / den)
	if a.large == a.sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx

	// Step 4: center and angle range in viewbox space.
	cx := cosPhi*cxp - sinPhi*cyp + (start.X+a.p.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (start.Y+a.p.Y)/2

	theta1 := math.Atan2((y1p-cyp)/ry, (x1p-cxp)/rx)
	theta2 := math.Atan2((-y1p-cyp)/ry, (-x1p-cxp)/rx)
	delta := theta2 - theta1
	if a.sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !a.sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	return ellipseArcCubics(cx, cy, rx, ry, a.rot, theta1, delta, tolerance, start, a.p)
}

// ellipseArcCubics splits the arc from theta1 over delta radians into cubic
// segments of at most 90 degrees each, adding segments until the estimated
// deviation is under tolerance.
func ellipseArcCubics(cx, cy, rx, ry, phi, theta1, delta, tolerance float64, start, end Point) []CubicBez {
	// Deviation of a single cubic approximating a circular arc of sweep h:
	// about 2.7e-4 * r at h = 90 degrees, falling off as h^6.
	const quarterErr = 2.7e-4
	rmax := math.Max(rx, ry)

	n := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	for n < 32 {
		h := math.Abs(delta) / float64(n)
		est := quarterErr * rmax * math.Pow(h/(math.Pi/2), 6)
		if est <= tolerance {
			break
		}
		n++
	}

	pos := func(theta float64) Point {
		cos, sin := math.Cos(theta), math.Sin(theta)
		return Point{
			X: cx + rx*cos*math.Cos(phi) - ry*sin*math.Sin(phi),
			Y: cy + rx*cos*math.Sin(phi) + ry*sin*math.Cos(phi),
		}
	}
	deriv := func(theta float64) Point {
		cos, sin := math.Cos(theta), math.Sin(theta)
		return Point{
			X: -rx*sin*math.Cos(phi) - ry*cos*math.Sin(phi),
			Y: -rx*sin*math.Sin(phi) + ry*cos*math.Cos(phi),
		}
	}

	step := delta / float64(n)
	cubics := make([]CubicBez, 0, n)
	prev := start

	for i := 0; i < n; i++ {
		ta := theta1 + float64(i)*step
		tb := ta + step

		// Control-point distance along the tangents.
		alpha := math.Sin(step) * (math.Sqrt(4+3*math.Tan(step/2)*math.Tan(step/2)) - 1) / 3

		pa := pos(ta)
		pb := pos(tb)
		da := deriv(ta)
		db := deriv(tb)

		c := CubicBez{
			P0: prev,
			P1: Point{X: pa.X + alpha*da.X, Y: pa.Y + alpha*da.Y},
			P2: Point{X: pb.X - alpha*db.X, Y: pb.Y - alpha*db.Y},
			P3: pb,
		}
		if i == n-1 {
			// Land exactly on the requested endpoint.
			c.P3 = end
		}
		cubics = append(cubics, c)
		prev = c.P3
	}
	return cubics
}
