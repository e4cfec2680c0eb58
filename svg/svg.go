// Package svg is the markup front end for svgps: it parses a practical
// subset of SVG into a flat, z-ordered svgps.Document with all transforms
// applied, groups resolved, and hidden elements excluded, so the core
// pipeline only ever sees ready-to-flatten shapes.
//
// Supported elements: svg, g, defs (skipped), path, rect, circle, ellipse,
// line, polyline, polygon. Supported presentation attributes: transform,
// fill, fill-rule, stroke, display, visibility, and the equivalent inline
// style properties. Text, gradients, filters, and CSS stylesheets are out
// of scope; text should be converted to paths upstream.
package svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/plotpath/svgps"
)

// Parse reads SVG markup and returns a document ready for the generate
// pipeline. Character encodings other than UTF-8 are handled via the
// charset declared in the XML prolog.
func Parse(r io.Reader) (*svgps.Document, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose
	decoder.Entity = xml.HTMLEntity
	decoder.CharsetReader = charset.NewReaderLabel

	p := &parser{}
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("svg: parse: %w", err)
		}

		switch se := t.(type) {
		case xml.StartElement:
			if err := p.startElement(se); err != nil {
				return nil, err
			}
		case xml.EndElement:
			p.endElement()
		}
	}

	if p.doc == nil {
		return nil, errors.New("svg: no svg root element")
	}
	return p.doc, nil
}

// parser carries the token-loop state: the document under construction and
// a stack of inherited group state.
type parser struct {
	doc   *svgps.Document
	stack []state
	// skipDepth counts open elements inside a skipped subtree (defs etc.).
	skipDepth int
}

// state is the inherited presentation state at one nesting level.
type state struct {
	transform svgps.Matrix
	fill      string
	fillRule  svgps.FillRule
	hidden    bool
}

func (p *parser) current() state {
	if len(p.stack) == 0 {
		return state{transform: svgps.Identity(), fill: "black"}
	}
	return p.stack[len(p.stack)-1]
}

func (p *parser) startElement(se xml.StartElement) error {
	if p.skipDepth > 0 {
		p.skipDepth++
		return nil
	}

	name := se.Name.Local
	switch name {
	case "svg":
		if p.doc != nil {
			// Nested svg elements are treated as plain groups.
			break
		}
		w, h, err := viewboxSize(se.Attr)
		if err != nil {
			return err
		}
		p.doc = svgps.NewDocument(w, h)

	case "defs", "title", "desc", "style", "metadata", "symbol":
		// Non-rendered subtrees.
		p.skipDepth = 1
		return nil
	}

	st := applyPresentation(p.current(), se.Attr)
	p.stack = append(p.stack, st)

	if p.doc == nil || st.hidden {
		return nil
	}

	outline, err := elementOutline(name, se.Attr)
	if err != nil {
		svgps.Logger().Warn("skipping malformed element", "element", name, "err", err)
		return nil
	}
	if outline == nil || outline.Empty() {
		return nil
	}
	if !st.transform.IsIdentity() {
		outline = outline.Transform(st.transform)
	}

	shape := &svgps.Shape{
		Outline:  outline,
		Stroke:   true,
		FillRule: st.fillRule,
	}
	if st.fill != "none" && st.fill != "" {
		// The fill region used for occlusion testing is the shape's own
		// outline, implicitly closed.
		shape.Fill = outline
	}
	p.doc.AddShape(shape)
	return nil
}

func (p *parser) endElement() {
	if p.skipDepth > 0 {
		p.skipDepth--
		return
	}
	if len(p.stack) > 0 {
		p.stack = p.stack[:len(p.stack)-1]
	}
}

// viewboxSize resolves the document viewbox from viewBox or width/height
// attributes, rounding up to whole units.
func viewboxSize(attrs []xml.Attr) (uint32, uint32, error) {
	var wAttr, hAttr, vb string
	for _, a := range attrs {
		switch a.Name.Local {
		case "viewBox":
			vb = a.Value
		case "width":
			wAttr = a.Value
		case "height":
			hAttr = a.Value
		}
	}

	if vb != "" {
		fields := strings.Fields(strings.ReplaceAll(vb, ",", " "))
		if len(fields) != 4 {
			return 0, 0, fmt.Errorf("svg: viewBox needs 4 values, got %q", vb)
		}
		w, err1 := strconv.ParseFloat(fields[2], 64)
		h, err2 := strconv.ParseFloat(fields[3], 64)
		if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
			return 0, 0, fmt.Errorf("svg: invalid viewBox %q", vb)
		}
		return uint32(math.Ceil(w)), uint32(math.Ceil(h)), nil
	}

	w, err1 := parseLength(wAttr)
	h, err2 := parseLength(hAttr)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, errors.New("svg: missing viewBox and usable width/height")
	}
	return uint32(math.Ceil(w)), uint32(math.Ceil(h)), nil
}

// parseLength parses a length attribute, accepting a bare number or a px
// suffix. Other units are not supported by this front end.
func parseLength(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return 0, errors.New("empty length")
	}
	return strconv.ParseFloat(s, 64)
}
