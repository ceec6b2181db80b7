package vtrace

// TraceMode selects whether polygons are extracted as filled outlines or
// as single-pixel-wide centerlines (skeletons).
type TraceMode int

const (
	// ModeOutline traces the boundary of filled regions, producing closed
	// polygons suitable for filled-path SVG output.
	ModeOutline TraceMode = iota
	// ModeCenterline traces the topological skeleton of filled regions,
	// producing open or closed polylines suitable for stroked SVG output.
	ModeCenterline
)

// Option configures a Params during creation.
// Use functional options to customize tracing behavior.
//
// Example:
//
//	// Default outline trace
//	result, err := vtrace.Trace(bitmap)
//
//	// Custom simplify threshold (dependency-free tuning)
//	result, err := vtrace.Trace(bitmap, vtrace.WithSimplifyThreshold(2.0))
type Option func(*Params)

// Params holds the tunable parameters of the tracing pipeline. Every field
// has a sensible default via DefaultParams; callers only need to override
// what matters to them.
type Params struct {
	// Mode selects outline or centerline extraction.
	Mode TraceMode

	// TurnPolicy resolves checkerboard ambiguities during outline
	// extraction. Unused in centerline mode.
	TurnPolicy TurnPolicy

	// ErrorThreshold is the maximum allowed distance between a fitted
	// cubic and the polygon points it replaces (the fitter compares
	// squared errors against its square).
	ErrorThreshold float64

	// SimplifyThreshold bounds polygon-simplification edge collapses: an
	// edge collapses only while its quadric error is at most the square
	// of this value.
	SimplifyThreshold float64

	// CornerThreshold is the tangent-divergence angle (radians) above
	// which a knot is treated as a hard corner rather than smoothed.
	CornerThreshold float64

	// LengthThreshold subdivides any polygon edge longer than this value
	// before fitting, bounding how much curvature a single cubic must
	// represent.
	LengthThreshold float64

	// Optimize, when true, makes the knot engine search every interior
	// split point exhaustively in Phase C instead of trying only the
	// span's worst-fit point. Produces marginally better fits at
	// significantly higher cost.
	Optimize bool

	// ColorMax is the maximum channel value for thresholding a PPM image
	// into a foreground bitmap. Trace does not read it: the Bitmap it
	// receives is already thresholded, and DecodePPM takes its own
	// colorMax argument.
	ColorMax int

	// Threads bounds how many polygons are fit concurrently. Zero means
	// use all available CPUs.
	Threads int
}

// DefaultParams returns the default tracing parameters, matching the
// reference implementation's defaults.
func DefaultParams() Params {
	return Params{
		Mode:              ModeOutline,
		TurnPolicy:        TurnPolicyMinority,
		ErrorThreshold:    1.0,
		SimplifyThreshold: 1.0,
		CornerThreshold: 2.0, // radians
		LengthThreshold:   0, // 0 disables length-limit subdivision
		Optimize:          false,
		ColorMax:          255,
		Threads:           0,
	}
}

// newParams builds a Params from DefaultParams with opts applied.
func newParams(opts []Option) Params {
	p := DefaultParams()
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithMode sets the extraction mode (outline or centerline).
func WithMode(m TraceMode) Option {
	return func(p *Params) { p.Mode = m }
}

// WithTurnPolicy sets the checkerboard-ambiguity resolution policy used
// by outline extraction.
func WithTurnPolicy(tp TurnPolicy) Option {
	return func(p *Params) { p.TurnPolicy = tp }
}

// WithErrorThreshold sets the maximum curve-fit distance error.
func WithErrorThreshold(v float64) Option {
	return func(p *Params) { p.ErrorThreshold = v }
}

// WithSimplifyThreshold sets the polygon-simplification threshold; an
// edge collapses only while its quadric error is at most its square.
func WithSimplifyThreshold(v float64) Option {
	return func(p *Params) { p.SimplifyThreshold = v }
}

// WithCornerThreshold sets the tangent-divergence angle (radians) used to
// detect hard corners.
func WithCornerThreshold(v float64) Option {
	return func(p *Params) { p.CornerThreshold = v }
}

// WithLengthThreshold sets the maximum polygon edge length before
// subdivision. Zero disables length-limit subdivision.
func WithLengthThreshold(v float64) Option {
	return func(p *Params) { p.LengthThreshold = v }
}

// WithOptimize enables or disables exhaustive split-point search in the
// knot engine's refit/remove phase.
func WithOptimize(enabled bool) Option {
	return func(p *Params) { p.Optimize = enabled }
}

// WithColorMax sets Params.ColorMax, which Trace itself does not read
// (see Params.ColorMax).
func WithColorMax(v int) Option {
	return func(p *Params) { p.ColorMax = v }
}

// WithThreads bounds how many polygons are fit concurrently. Zero means
// use all available CPUs.
func WithThreads(n int) Option {
	return func(p *Params) { p.Threads = n }
}
