package svg

import (
	"math"
	"testing"

	"github.com/plotpath/svgps"
)

// flatTags flattens an outline and renders its command sequence as a tag
// string of M, L, C and Z characters.
func flatTags(t *testing.T, o *svgps.Outline) (string, *svgps.Path) {
	t.Helper()
	p := svgps.Flatten(o, 0)
	tags := make([]byte, 0, len(p.Commands()))
	for _, cmd := range p.Commands() {
		switch cmd.(type) {
		case svgps.MoveTo:
			tags = append(tags, 'M')
		case svgps.LineTo:
			tags = append(tags, 'L')
		case svgps.CubicTo:
			tags = append(tags, 'C')
		case svgps.Close:
			tags = append(tags, 'Z')
		}
	}
	return string(tags), p
}

func TestParsePathData_Tags(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want string
	}{
		{"absolute basics", "M0 0 L10 0 L10 10 Z", "MLLZ"},
		{"relative basics", "m0 0 l10 0 l0 10 z", "MLLZ"},
		{"horizontal vertical", "M0 0 H10 V10 h-10 v-10", "MLLLL"},
		{"cubic", "M0 0 C1 1 2 2 3 3", "MC"},
		{"smooth cubic", "M0 0 C1 1 2 2 3 3 S5 5 6 6", "MCC"},
		{"quadratic", "M0 0 Q5 5 10 0", "MC"},
		{"smooth quadratic", "M0 0 Q5 5 10 0 T20 0", "MCC"},
		{"arc", "M0 0 A5 5 0 0 1 10 0", "MCC"},
		{"implicit lineto after moveto", "M0 0 10 10 20 20", "MLL"},
		{"implicit relative lineto", "m0 0 10 10 10 10", "MLL"},
		{"implicit repeated cubic", "M0 0 C1 1 2 2 3 3 4 4 5 5 6 6", "MCC"},
		{"multiple subpaths", "M0 0 L1 1 M5 5 L6 6 Z", "MLMLZ"},
		{"compact separators", "M0,0L10,0L10,10Z", "MLLZ"},
		{"no separators before negatives", "M0 0L10-5L-10-5", "MLL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := parsePathData(tt.d)
			if err != nil {
				t.Fatalf("parsePathData(%q) error = %v", tt.d, err)
			}
			got, _ := flatTags(t, o)
			if got != tt.want {
				t.Errorf("tags = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParsePathData_RelativeCoordinates(t *testing.T) {
	o, err := parsePathData("m10 20 l5 5 l-3 0")
	if err != nil {
		t.Fatalf("parsePathData() error = %v", err)
	}
	_, p := flatTags(t, o)
	cmds := p.Commands()

	wantPoints := []svgps.Point{svgps.Pt(10, 20), svgps.Pt(15, 25), svgps.Pt(12, 25)}
	for i, want := range wantPoints {
		var got svgps.Point
		switch c := cmds[i].(type) {
		case svgps.MoveTo:
			got = c.Point
		case svgps.LineTo:
			got = c.Point
		}
		if got != want {
			t.Errorf("command %d endpoint = %v, want %v", i, got, want)
		}
	}
}

func TestParsePathData_SmoothReflection(t *testing.T) {
	// S after C reflects the previous second control point about the
	// current point.
	o, err := parsePathData("M0 0 C0 10 10 10 10 0 S20 -10 20 0")
	if err != nil {
		t.Fatalf("parsePathData() error = %v", err)
	}
	_, p := flatTags(t, o)

	c := p.Commands()[2].(svgps.CubicTo)
	if want := svgps.Pt(10, -10); c.Control1 != want {
		t.Errorf("reflected control = %v, want %v", c.Control1, want)
	}
}

func TestParsePathData_SmoothWithoutPredecessor(t *testing.T) {
	// S with no preceding curve uses the current point as the first
	// control point.
	o, err := parsePathData("M5 5 S10 10 15 5")
	if err != nil {
		t.Fatalf("parsePathData() error = %v", err)
	}
	_, p := flatTags(t, o)

	c := p.Commands()[1].(svgps.CubicTo)
	if want := svgps.Pt(5, 5); c.Control1 != want {
		t.Errorf("control without predecessor = %v, want %v", c.Control1, want)
	}
}

func TestParsePathData_ArcCompactFlags(t *testing.T) {
	// Arc flags may be glued to the following number.
	o, err := parsePathData("M0 0 A5 5 0 0110 0")
	if err != nil {
		t.Fatalf("parsePathData() error = %v", err)
	}
	_, p := flatTags(t, o)
	if got := p.CurrentPoint(); !nearPt(got, svgps.Pt(10, 0), 1e-9) {
		t.Errorf("arc endpoint = %v, want {10 0}", got)
	}
}

func TestParsePathData_ScientificNotation(t *testing.T) {
	o, err := parsePathData("M1e2 0 L1.5e-1 2E1")
	if err != nil {
		t.Fatalf("parsePathData() error = %v", err)
	}
	_, p := flatTags(t, o)
	l := p.Commands()[1].(svgps.LineTo)
	if want := svgps.Pt(0.15, 20); l.Point != want {
		t.Errorf("endpoint = %v, want %v", l.Point, want)
	}
}

func TestParsePathData_CloseReturnsToStart(t *testing.T) {
	o, err := parsePathData("M10 10 L20 10 Z L15 30")
	if err != nil {
		t.Fatalf("parsePathData() error = %v", err)
	}
	// The line after Z starts from the subpath origin; its relative
	// sibling would too. Verify via the outline's current point chain.
	_, p := flatTags(t, o)
	last := p.Commands()[len(p.Commands())-1].(svgps.LineTo)
	if want := svgps.Pt(15, 30); last.Point != want {
		t.Errorf("endpoint after close = %v, want %v", last.Point, want)
	}
}

func TestParsePathData_Errors(t *testing.T) {
	tests := []struct {
		name string
		d    string
	}{
		{"number before any command", "10 10 L20 20"},
		{"unknown command", "M0 0 W10 10"},
		{"dangling coordinate", "M0 0 L10"},
		{"bad arc flag", "M0 0 A5 5 0 2 1 10 0"},
		{"bare sign", "M0 0 L+ 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parsePathData(tt.d); err == nil {
				t.Errorf("parsePathData(%q) error = nil, want error", tt.d)
			}
		})
	}
}

func nearPt(a, b svgps.Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}
