package svg

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/plotpath/svgps"
)

// elementOutline builds the untransformed outline of one shape element.
// Returns (nil, nil) for elements that render nothing, including container
// elements and shapes with non-positive dimensions.
func elementOutline(name string, attrs []xml.Attr) (*svgps.Outline, error) {
	switch name {
	case "path":
		d := attrValue(attrs, "d")
		if strings.TrimSpace(d) == "" {
			return nil, nil
		}
		return parsePathData(d)

	case "rect":
		x := attrFloat(attrs, "x", 0)
		y := attrFloat(attrs, "y", 0)
		w := attrFloat(attrs, "width", 0)
		h := attrFloat(attrs, "height", 0)
		if w <= 0 || h <= 0 {
			return nil, nil
		}
		rx, hasRx := attrFloatOK(attrs, "rx")
		ry, hasRy := attrFloatOK(attrs, "ry")
		if hasRx && !hasRy {
			ry = rx
		}
		if hasRy && !hasRx {
			rx = ry
		}
		o := svgps.NewOutline()
		if rx > 0 && ry > 0 {
			o.RoundedRectangle(x, y, w, h, rx, ry)
		} else {
			o.Rectangle(x, y, w, h)
		}
		return o, nil

	case "circle":
		r := attrFloat(attrs, "r", 0)
		if r <= 0 {
			return nil, nil
		}
		o := svgps.NewOutline()
		o.Circle(attrFloat(attrs, "cx", 0), attrFloat(attrs, "cy", 0), r)
		return o, nil

	case "ellipse":
		rx := attrFloat(attrs, "rx", 0)
		ry := attrFloat(attrs, "ry", 0)
		if rx <= 0 || ry <= 0 {
			return nil, nil
		}
		o := svgps.NewOutline()
		o.Ellipse(attrFloat(attrs, "cx", 0), attrFloat(attrs, "cy", 0), rx, ry)
		return o, nil

	case "line":
		o := svgps.NewOutline()
		o.MoveTo(attrFloat(attrs, "x1", 0), attrFloat(attrs, "y1", 0))
		o.LineTo(attrFloat(attrs, "x2", 0), attrFloat(attrs, "y2", 0))
		return o, nil

	case "polyline", "polygon":
		pts, err := parseNumberList(attrValue(attrs, "points"))
		if err != nil {
			return nil, err
		}
		if len(pts) < 4 {
			return nil, nil
		}
		if len(pts)%2 != 0 {
			return nil, fmt.Errorf("svg: %s has odd number of coordinates", name)
		}
		o := svgps.NewOutline()
		o.MoveTo(pts[0], pts[1])
		for i := 2; i+1 < len(pts); i += 2 {
			o.LineTo(pts[i], pts[i+1])
		}
		if name == "polygon" {
			o.Close()
		}
		return o, nil
	}

	return nil, nil
}

func attrValue(attrs []xml.Attr, name string) string {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func attrFloat(attrs []xml.Attr, name string, def float64) float64 {
	v, ok := attrFloatOK(attrs, name)
	if !ok {
		return def
	}
	return v
}

func attrFloatOK(attrs []xml.Attr, name string) (float64, bool) {
	s := strings.TrimSpace(attrValue(attrs, name))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
