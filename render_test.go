package svgps

import (
	"bytes"
	"strings"
	"testing"
)

func TestPathData(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(100, 0)
	p.CubicTo(100, 50, 50, 70, 0, 70)
	p.Close()

	want := "M0 0L100 0C100 50,50 70,0 70Z"
	if got := PathData(p); got != want {
		t.Errorf("PathData() = %q, want %q", got, want)
	}
}

func TestPathData_Empty(t *testing.T) {
	if got := PathData(NewPath()); got != "" {
		t.Errorf("PathData(empty) = %q, want \"\"", got)
	}
}

func TestRenderSVG(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 10)

	var buf bytes.Buffer
	err := RenderSVG(&buf, NewCanonicalStream(720, 480, p), RenderOptions{})
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`viewBox="0 0 720 480"`,
		`fill="none"`,
		`stroke="#000000"`,
		`stroke-width="1"`,
		`d="M0 0L10 10"`,
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSVG_StrokeOptions(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(1, 1)

	var buf bytes.Buffer
	err := RenderSVG(&buf, NewCanonicalStream(10, 10, p), RenderOptions{
		Stroke:      "teal",
		StrokeWidth: 2.5,
	})
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `stroke="#008080"`) {
		t.Errorf("named color not resolved:\n%s", out)
	}
	if !strings.Contains(out, `stroke-width="2.5"`) {
		t.Errorf("stroke width not applied:\n%s", out)
	}
}

func TestNormalizeStroke(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty means black", "", "#000000"},
		{"hex passes through", "#ff8800", "#ff8800"},
		{"named color", "red", "#ff0000"},
		{"named color mixed case", "CornflowerBlue", "#6495ed"},
		{"unknown name kept verbatim", "notacolor", "notacolor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeStroke(tt.in); got != tt.want {
				t.Errorf("normalizeStroke(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
