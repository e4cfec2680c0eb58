package svgps

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerate_SingleRectangle(t *testing.T) {
	doc := NewDocument(720, 480)
	doc.AddShape(&Shape{Outline: rectOutline(0, 0, 100, 70), Stroke: true})

	cs, err := Generate(doc)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var buf bytes.Buffer
	if err := cs.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := "720 480 5 8\nMLLLZ\n0 0 100 0 100 70 0 70\n"
	if got := buf.String(); got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestGenerate_EmptyViewboxRejected(t *testing.T) {
	for _, dims := range [][2]uint32{{0, 480}, {720, 0}, {0, 0}} {
		doc := NewDocument(dims[0], dims[1])
		if _, err := Generate(doc); err == nil {
			t.Errorf("Generate(%dx%d) error = nil, want error", dims[0], dims[1])
		}
	}
}

func TestGenerate_SkipsNonStrokeShapes(t *testing.T) {
	fill := rectOutline(0, 0, 50, 50)

	doc := NewDocument(100, 100)
	doc.AddShape(&Shape{Outline: fill, Fill: fill})            // fill only
	doc.AddShape(&Shape{Outline: NewOutline(), Stroke: true}) // empty outline
	doc.AddShape(&Shape{Outline: rectOutline(0, 0, 10, 10), Stroke: true})

	cs, err := Generate(doc)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got, want := pathTags(cs.Path), "MLLLZ"; got != want {
		t.Errorf("tags = %q, want %q", got, want)
	}
}

func TestGenerate_PreservesDocumentOrder(t *testing.T) {
	doc := NewDocument(1000, 1000)
	xs := []float64{10, 200, 400, 600, 800}
	for _, x := range xs {
		doc.AddShape(&Shape{Outline: rectOutline(x, 0, 50, 50), Stroke: true})
	}
	// A distant fill so the autocut pass actually runs, in parallel.
	far := rectOutline(900, 900, 10, 10)
	doc.AddShape(&Shape{Outline: far, Fill: far})

	cs, err := Generate(doc, WithAutocut(), WithWorkers(4))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var gotXs []float64
	for _, cmd := range cs.Path.Commands() {
		if m, ok := cmd.(MoveTo); ok {
			gotXs = append(gotXs, m.Point.X)
		}
	}
	if len(gotXs) != len(xs) {
		t.Fatalf("got %d sub-paths, want %d", len(gotXs), len(xs))
	}
	for i := range xs {
		if gotXs[i] != xs[i] {
			t.Errorf("sub-path %d starts at x=%v, want %v (order not preserved)", i, gotXs[i], xs[i])
		}
	}
}

func TestGenerate_AutocutRemovesHiddenShape(t *testing.T) {
	big := rectOutline(-10, -10, 220, 220)

	doc := NewDocument(400, 400)
	doc.AddShape(&Shape{Outline: rectOutline(50, 50, 100, 100), Stroke: true})
	doc.AddShape(&Shape{Outline: big, Fill: big})

	cs, err := Generate(doc, WithAutocut())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !cs.Path.Empty() {
		t.Errorf("hidden shape produced %d commands, want 0", len(cs.Path.Commands()))
	}
}

func TestGenerate_AutocutOffKeepsHiddenShape(t *testing.T) {
	big := rectOutline(-10, -10, 220, 220)

	doc := NewDocument(400, 400)
	doc.AddShape(&Shape{Outline: rectOutline(50, 50, 100, 100), Stroke: true})
	doc.AddShape(&Shape{Outline: big, Fill: big})

	cs, err := Generate(doc)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got, want := pathTags(cs.Path), "MLLLZ"; got != want {
		t.Errorf("tags = %q, want %q", got, want)
	}
}

func TestGenerate_PolishDropsSlivers(t *testing.T) {
	doc := NewDocument(1000, 1000)
	long := NewOutline()
	long.MoveTo(0, 0)
	long.LineTo(500, 0)
	sliver := NewOutline()
	sliver.MoveTo(0, 100)
	sliver.LineTo(0.2, 100)
	doc.AddShape(&Shape{Outline: long, Stroke: true})
	doc.AddShape(&Shape{Outline: sliver, Stroke: true})

	// Automatic threshold: a thousandth of the viewbox diagonal, about 1.4
	// units here, which keeps the long line and drops the sliver.
	cs, err := Generate(doc, WithPolish(-1))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got, want := pathTags(cs.Path), "ML"; got != want {
		t.Errorf("tags = %q, want %q", got, want)
	}
}

func TestGenerate_RoundTripThroughCodec(t *testing.T) {
	doc := NewDocument(720, 480)
	shape := NewOutline()
	shape.MoveTo(10, 10)
	shape.QuadTo(60, 90, 110, 10)
	shape.ArcTo(30, 30, 0, false, true, 150, 40)
	shape.Close()
	doc.AddShape(&Shape{Outline: shape, Stroke: true})

	cs, err := Generate(doc)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var buf bytes.Buffer
	if err := cs.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	decoded, err := DecodeStream(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}

	a, b := cs.Path.Commands(), decoded.Path.Commands()
	if len(a) != len(b) {
		t.Fatalf("decoded %d commands, want %d", len(b), len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("command %d = %v, want %v", i, b[i], a[i])
		}
	}
}
