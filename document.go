package svgps

// FillRule specifies how a point's winding number decides fill membership.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

func (r FillRule) String() string {
	if r == FillRuleEvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// Shape is one input shape as handed over by the front end: a flattenable
// outline already in viewbox coordinates with all transforms applied, plus
// resolved style facts the pipeline needs.
type Shape struct {
	// Outline is the shape's boundary. Consumed once by the Flattener.
	Outline *Outline

	// Stroke marks the shape as participating in stroke output.
	Stroke bool

	// Fill is the closed outline of the shape's fill region, used only for
	// occlusion testing. Nil if the shape has no resolvable fill.
	Fill *Outline

	// FillRule is the winding rule of the fill region.
	FillRule FillRule

	// Z is the shape's position in document paint order.
	// A shape with a higher Z paints over one with a lower Z.
	Z int
}

// Document is an ordered sequence of shapes sharing one viewbox.
type Document struct {
	// Width and Height are the viewbox dimensions in device-independent
	// units. Always positive.
	Width, Height uint32

	Shapes []*Shape
}

// NewDocument creates an empty document with the given viewbox.
func NewDocument(width, height uint32) *Document {
	return &Document{Width: width, Height: height}
}

// AddShape appends a shape in paint order and assigns its z-order index.
func (d *Document) AddShape(s *Shape) {
	s.Z = len(d.Shapes)
	d.Shapes = append(d.Shapes, s)
}
