package geometry

import (
	"errors"
	"math"
)

// Kind identifies a shape variant.
type Kind int

const (
	KindCurve   Kind = iota // quadratic Bézier between two distinct states
	KindLoop                // arc from a state back to itself
	KindInitial             // free-standing pointer at the initial state
)

func (k Kind) String() string {
	switch k {
	case KindCurve:
		return "curve"
	case KindLoop:
		return "loop"
	case KindInitial:
		return "initial"
	}
	return "unknown"
}

// ErrUnsolvable is returned by Draw when the curve's crossing with an
// anchor circle cannot be found, e.g. when the two circles overlap.
var ErrUnsolvable = errors.New("geometry: curve does not cross anchor circle")

// Arrowhead and hit-test constants.
const (
	HeadLength     = 15.0
	HeadAngle      = math.Pi / 6
	CurveThreshold = 12.0
	LabelRadius    = 15.0
)

// Shape is the rendered path of one transition aggregate. Each variant holds
// a single shape parameter that fully determines the path once the anchor
// circles are known.
type Shape interface {
	Kind() Kind
	Parameter() float64
	// SetParameter replaces the shape parameter. Zero is ignored.
	SetParameter(p float64)
	// Update recomputes the control point from the anchor circles. The
	// initial marker ignores from.
	Update(from, to Circle)
	Draw(s Surface, label string, highlighted bool) error
	LabelPosition() Point
	LabelHit(x, y float64) bool
	CurveHit(x, y float64) bool
	// Fit recalculates the shape parameter so the path follows (x, y).
	// It reports false when the point gives no usable solution.
	Fit(x, y float64) bool

	sealed()
}

// KindFor picks the variant for an aggregate: no source means the initial
// marker, equal endpoints a loop, anything else a curve.
func KindFor(hasSource, sameState bool) Kind {
	switch {
	case !hasSource:
		return KindInitial
	case sameState:
		return KindLoop
	default:
		return KindCurve
	}
}

// NewShape returns a zero-configured shape of the given kind.
func NewShape(k Kind) Shape {
	switch k {
	case KindLoop:
		return &Loop{param: 1}
	case KindInitial:
		return &InitialMarker{}
	default:
		return &Curve{param: 1, t1: 1}
	}
}

// arrowhead returns the triangle at tip whose back corners lie HeadLength
// away along angle ± HeadAngle.
func arrowhead(tip Point, angle float64) []Point {
	return []Point{
		tip,
		tip.Polar(HeadLength, angle-HeadAngle),
		tip.Polar(HeadLength, angle+HeadAngle),
	}
}
