package svgps

// Default tunables for the generate pipeline.
const (
	// DefaultFlattenTolerance is the maximum deviation, in viewbox units,
	// between a true elliptical arc and its cubic approximation.
	DefaultFlattenTolerance = 0.01

	// DefaultSampleTolerance is the maximum chord deviation, in viewbox
	// units, when sampling curves into polylines for occlusion testing.
	DefaultSampleTolerance = 0.1

	// DefaultPolishFraction is the fraction of the viewbox diagonal used
	// as the minimum sub-path length when polishing is enabled without an
	// explicit threshold.
	DefaultPolishFraction = 1.0 / 1000.0
)

// Option configures the generate pipeline.
// Use functional options to customize behavior.
//
// Example:
//
//	stream, err := svgps.Generate(doc, svgps.WithAutocut(), svgps.WithPolish(0.5))
type Option func(*options)

// options holds the resolved pipeline configuration.
type options struct {
	flattenTolerance float64
	sampleTolerance  float64
	autocut          bool
	polish           bool
	polishThreshold  float64 // < 0 means derive from viewbox diagonal
	fillRule         FillRule
	fillRuleSet      bool
	workers          int
}

// defaultOptions returns the default pipeline options.
func defaultOptions() options {
	return options{
		flattenTolerance: DefaultFlattenTolerance,
		sampleTolerance:  DefaultSampleTolerance,
		autocut:          false,
		polish:           false,
		polishThreshold:  -1,
		workers:          0, // GOMAXPROCS
	}
}

// WithFlattenTolerance sets the maximum deviation between elliptical arcs
// and their cubic approximations, in viewbox units.
func WithFlattenTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.flattenTolerance = tol
		}
	}
}

// WithSampleTolerance sets the maximum chord deviation when sampling curves
// into polylines for occlusion testing, in viewbox units.
func WithSampleTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.sampleTolerance = tol
		}
	}
}

// WithAutocut enables the occlusion-culling pass: outline stretches hidden
// behind later-painted fills are removed from the output.
func WithAutocut() Option {
	return func(o *options) {
		o.autocut = true
	}
}

// WithPolish enables the polishing pass with an explicit minimum sub-path
// arc length in viewbox units. A minimum of 0 keeps every sub-path.
// Pass a negative value to derive the minimum from the viewbox diagonal
// (see DefaultPolishFraction).
func WithPolish(minLength float64) Option {
	return func(o *options) {
		o.polish = true
		o.polishThreshold = minLength
	}
}

// WithFillRule overrides the winding rule used for every occluder during
// point-in-fill testing. Without this option each occluder is tested with
// its own fill rule (nonzero by default).
func WithFillRule(rule FillRule) Option {
	return func(o *options) {
		o.fillRule = rule
		o.fillRuleSet = true
	}
}

// WithWorkers sets the number of goroutines used for per-shape occlusion
// testing. Zero or negative uses GOMAXPROCS. The output order is
// independent of the worker count.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
