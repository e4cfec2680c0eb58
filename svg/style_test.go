package svg

import (
	"encoding/xml"
	"math"
	"testing"

	"github.com/plotpath/svgps"
)

// attrList builds an attribute slice from name/value pairs.
func attrList(kv ...string) []xml.Attr {
	attrs := make([]xml.Attr, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: kv[i]}, Value: kv[i+1]})
	}
	return attrs
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		name string
		in   string
		p    svgps.Point
		want svgps.Point
	}{
		{"translate", "translate(10, 20)", svgps.Pt(1, 1), svgps.Pt(11, 21)},
		{"translate one arg", "translate(10)", svgps.Pt(1, 1), svgps.Pt(11, 1)},
		{"scale", "scale(2, 3)", svgps.Pt(4, 4), svgps.Pt(8, 12)},
		{"scale uniform", "scale(2)", svgps.Pt(4, 4), svgps.Pt(8, 8)},
		{"rotate degrees", "rotate(90)", svgps.Pt(1, 0), svgps.Pt(0, 1)},
		{"rotate about point", "rotate(180, 50, 50)", svgps.Pt(0, 50), svgps.Pt(100, 50)},
		{"skewX", "skewX(45)", svgps.Pt(0, 10), svgps.Pt(10, 10)},
		{"skewY", "skewY(45)", svgps.Pt(10, 0), svgps.Pt(10, 10)},
		{"matrix", "matrix(1 0 0 1 30 40)", svgps.Pt(1, 2), svgps.Pt(31, 42)},
		{"composition left to right", "translate(100) scale(2)", svgps.Pt(1, 0), svgps.Pt(102, 0)},
		{"comma separated list", "translate(10,0),scale(2)", svgps.Pt(1, 0), svgps.Pt(12, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := parseTransform(tt.in)
			if err != nil {
				t.Fatalf("parseTransform(%q) error = %v", tt.in, err)
			}
			got := m.TransformPoint(tt.p)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestParseTransform_Errors(t *testing.T) {
	tests := []string{
		"translate",
		"translate(1, 2, 3)",
		"rotate(1, 2)",
		"matrix(1 2 3)",
		"frobnicate(1)",
		"scale(1",
		"scale(x)",
	}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			if _, err := parseTransform(in); err == nil {
				t.Errorf("parseTransform(%q) error = nil, want error", in)
			}
		})
	}
}

func TestApplyPresentation_StyleAttribute(t *testing.T) {
	attrs := attrList("style", "fill:none; fill-rule: evenodd")
	st := applyPresentation(state{transform: svgps.Identity(), fill: "black"}, attrs)

	if st.fill != "none" {
		t.Errorf("fill = %q, want %q", st.fill, "none")
	}
	if st.fillRule != svgps.FillRuleEvenOdd {
		t.Errorf("fillRule = %v, want evenodd", st.fillRule)
	}
}

func TestApplyPresentation_Inheritance(t *testing.T) {
	parent := applyPresentation(state{transform: svgps.Identity(), fill: "black"},
		attrList("fill", "none", "transform", "translate(10, 0)"))
	child := applyPresentation(parent, attrList("transform", "translate(0, 20)"))

	if child.fill != "none" {
		t.Errorf("child fill = %q, want inherited %q", child.fill, "none")
	}
	got := child.transform.TransformPoint(svgps.Pt(0, 0))
	if got != svgps.Pt(10, 20) {
		t.Errorf("composed transform moves origin to %v, want {10 20}", got)
	}
}

func TestApplyPresentation_MalformedTransformIgnored(t *testing.T) {
	st := applyPresentation(state{transform: svgps.Identity(), fill: "black"},
		attrList("transform", "spin(45)"))
	if !st.transform.IsIdentity() {
		t.Errorf("malformed transform changed the matrix: %+v", st.transform)
	}
}
