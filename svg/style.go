package svg

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/plotpath/svgps"
)

// applyPresentation merges an element's presentation attributes (and the
// equivalent inline style properties) into the inherited state. Transforms
// compose parent-first; fill and fill-rule inherit; display:none and
// visibility:hidden hide the element and its children.
func applyPresentation(parent state, attrs []xml.Attr) state {
	st := parent

	set := func(name, value string) {
		value = strings.TrimSpace(value)
		switch name {
		case "transform":
			if m, err := parseTransform(value); err == nil {
				st.transform = st.transform.Multiply(m)
			} else {
				svgps.Logger().Warn("ignoring malformed transform", "transform", value, "err", err)
			}
		case "fill":
			st.fill = value
		case "fill-rule":
			switch value {
			case "evenodd":
				st.fillRule = svgps.FillRuleEvenOdd
			case "nonzero":
				st.fillRule = svgps.FillRuleNonZero
			}
		case "display":
			if value == "none" {
				st.hidden = true
			}
		case "visibility":
			if value == "hidden" || value == "collapse" {
				st.hidden = true
			}
		}
	}

	for _, a := range attrs {
		if a.Name.Local == "style" {
			for _, decl := range strings.Split(a.Value, ";") {
				kv := strings.SplitN(decl, ":", 2)
				if len(kv) != 2 {
					continue
				}
				set(strings.TrimSpace(strings.ToLower(kv[0])), kv[1])
			}
			continue
		}
		set(a.Name.Local, a.Value)
	}
	return st
}

// parseTransform parses an SVG transform list such as
// "translate(10,20) rotate(45) scale(2)". Functions compose left to right.
func parseTransform(s string) (svgps.Matrix, error) {
	m := svgps.Identity()
	rest := strings.TrimSpace(s)

	for rest != "" {
		open := strings.IndexByte(rest, '(')
		closeIdx := strings.IndexByte(rest, ')')
		if open < 0 || closeIdx < open {
			return svgps.Identity(), fmt.Errorf("svg: malformed transform %q", s)
		}
		name := strings.TrimSpace(rest[:open])
		args, err := parseNumberList(rest[open+1 : closeIdx])
		if err != nil {
			return svgps.Identity(), err
		}
		rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest[closeIdx+1:]), ","))

		var t svgps.Matrix
		switch name {
		case "matrix":
			if len(args) != 6 {
				return svgps.Identity(), fmt.Errorf("svg: matrix needs 6 values, got %d", len(args))
			}
			// SVG matrix(a b c d e f) is column-major:
			// | a c e |
			// | b d f |
			t = svgps.Matrix{A: args[0], B: args[2], C: args[4], D: args[1], E: args[3], F: args[5]}
		case "translate":
			switch len(args) {
			case 1:
				t = svgps.Translate(args[0], 0)
			case 2:
				t = svgps.Translate(args[0], args[1])
			default:
				return svgps.Identity(), fmt.Errorf("svg: translate needs 1 or 2 values, got %d", len(args))
			}
		case "scale":
			switch len(args) {
			case 1:
				t = svgps.Scale(args[0], args[0])
			case 2:
				t = svgps.Scale(args[0], args[1])
			default:
				return svgps.Identity(), fmt.Errorf("svg: scale needs 1 or 2 values, got %d", len(args))
			}
		case "rotate":
			switch len(args) {
			case 1:
				t = svgps.Rotate(args[0] * math.Pi / 180)
			case 3:
				// Rotation about a point: translate, rotate, translate back.
				t = svgps.Translate(args[1], args[2]).
					Multiply(svgps.Rotate(args[0] * math.Pi / 180)).
					Multiply(svgps.Translate(-args[1], -args[2]))
			default:
				return svgps.Identity(), fmt.Errorf("svg: rotate needs 1 or 3 values, got %d", len(args))
			}
		case "skewX":
			if len(args) != 1 {
				return svgps.Identity(), fmt.Errorf("svg: skewX needs 1 value, got %d", len(args))
			}
			t = svgps.SkewX(args[0] * math.Pi / 180)
		case "skewY":
			if len(args) != 1 {
				return svgps.Identity(), fmt.Errorf("svg: skewY needs 1 value, got %d", len(args))
			}
			t = svgps.SkewY(args[0] * math.Pi / 180)
		default:
			return svgps.Identity(), fmt.Errorf("svg: unknown transform %q", name)
		}
		m = m.Multiply(t)
	}
	return m, nil
}

// parseNumberList parses whitespace- or comma-separated numbers.
func parseNumberList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	nums := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("svg: invalid number %q", f)
		}
		nums = append(nums, v)
	}
	return nums, nil
}
