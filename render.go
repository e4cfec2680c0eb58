package svgps

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// RenderOptions style the single stroked path emitted by RenderSVG.
type RenderOptions struct {
	// Stroke is the stroke color: a named SVG color or a #rrggbb value.
	// Empty means black.
	Stroke string

	// StrokeWidth is the stroke width in viewbox units. Zero or negative
	// means 1.
	StrokeWidth float64
}

// RenderSVG writes a decoded canonical stream back out as SVG markup: one
// stroked, fill-less path carrying the whole command stream. This emission
// performs no geometry decisions; the stream is assumed canonical.
func RenderSVG(w io.Writer, cs *CanonicalStream, opts RenderOptions) error {
	stroke := normalizeStroke(opts.Stroke)
	width := opts.StrokeWidth
	if width <= 0 {
		width = 1
	}

	if _, err := fmt.Fprintln(w, `<?xml version="1.0" standalone="no"?>`); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w,
		"<svg version=\"1.1\" xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\">\n",
		cs.Width, cs.Height); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "<path stroke=%q stroke-width=%q fill=\"none\" d=%q/>\n",
		stroke, formatFloat(width), PathData(cs.Path)); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, "</svg>")
	return err
}

// PathData formats a canonical path as an SVG path data string.
func PathData(p *Path) string {
	var b strings.Builder
	for _, cmd := range p.Commands() {
		switch c := cmd.(type) {
		case MoveTo:
			b.WriteString("M")
			writeCoords(&b, c.Point)
		case LineTo:
			b.WriteString("L")
			writeCoords(&b, c.Point)
		case CubicTo:
			b.WriteString("C")
			writeCoords(&b, c.Control1)
			b.WriteString(",")
			writeCoords(&b, c.Control2)
			b.WriteString(",")
			writeCoords(&b, c.Point)
		case Close:
			b.WriteString("Z")
		}
	}
	return b.String()
}

func writeCoords(b *strings.Builder, p Point) {
	b.WriteString(formatFloat(p.X))
	b.WriteString(" ")
	b.WriteString(formatFloat(p.Y))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// normalizeStroke resolves named SVG colors to #rrggbb values. Hex values
// pass through; unknown names are kept verbatim and left to the consumer.
func normalizeStroke(s string) string {
	if s == "" {
		return "#000000"
	}
	if strings.HasPrefix(s, "#") {
		return s
	}
	c, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		Logger().Warn("unknown stroke color name", "stroke", s)
		return s
	}
	return hexColor(c)
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
