package svgps

import (
	"fmt"
	"math"

	"github.com/plotpath/svgps/internal/parallel"
)

// Generate runs the generate-direction pipeline over a document: flatten
// every stroke-candidate shape to the canonical vocabulary, optionally cut
// away occluded stretches, optionally polish away insignificant sub-paths,
// and assemble the canonical stream.
//
// The pipeline is a pure function of its input: no step is retried, and
// the output preserves document paint order regardless of how many workers
// the occlusion pass uses.
func Generate(doc *Document, opts ...Option) (*CanonicalStream, error) {
	if doc.Width == 0 || doc.Height == 0 {
		return nil, fmt.Errorf("svgps: viewbox must have positive dimensions, got %dx%d", doc.Width, doc.Height)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var candidates []*Shape
	for _, s := range doc.Shapes {
		if s.Stroke && s.Outline != nil && !s.Outline.Empty() {
			candidates = append(candidates, s)
		}
	}
	Logger().Debug("generate", "shapes", len(doc.Shapes), "strokeCandidates", len(candidates), "autocut", o.autocut)

	flattened := make([]*Path, len(candidates))
	for i, s := range candidates {
		flattened[i] = Flatten(s.Outline, o.flattenTolerance)
	}

	// Per-candidate sub-path lists, in document order.
	visible := make([][]*Path, len(candidates))

	if o.autocut {
		set := newOccluderSet(doc, o)
		cut := func(i int) {
			visible[i] = set.cutPath(flattened[i], candidates[i].Z, o.sampleTolerance)
		}

		if len(candidates) > 1 {
			// Occluder geometry is immutable during the pass, so shapes can
			// be cut concurrently; the visible slice gives each worker an
			// independent output slot and the merge below restores order.
			pool := parallel.NewWorkerPool(o.workers)
			work := make([]func(), len(candidates))
			for i := range candidates {
				i := i
				work[i] = func() { cut(i) }
			}
			pool.ExecuteAll(work)
			pool.Close()
		} else {
			for i := range candidates {
				cut(i)
			}
		}
	} else {
		for i, p := range flattened {
			visible[i] = []*Path{p}
		}
	}

	var subpaths []*Path
	for _, paths := range visible {
		for _, p := range paths {
			subpaths = append(subpaths, p.Subpaths()...)
		}
	}

	if o.polish {
		minLength := o.polishThreshold
		if minLength < 0 {
			diag := math.Sqrt(float64(doc.Width)*float64(doc.Width) + float64(doc.Height)*float64(doc.Height))
			minLength = diag * DefaultPolishFraction
		}
		subpaths = Polish(subpaths, minLength)
	}

	merged := NewPath()
	for _, sp := range subpaths {
		merged.Append(sp)
	}

	return NewCanonicalStream(doc.Width, doc.Height, merged), nil
}
