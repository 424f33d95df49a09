package geometry

import "math"

// QuadBezier is a quadratic Bézier curve from P0 through control C to P1.
type QuadBezier struct {
	P0, C, P1 Point
}

// At evaluates the curve at parameter t.
func (q QuadBezier) At(t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*q.P0.X + 2*u*t*q.C.X + t*t*q.P1.X,
		Y: u*u*q.P0.Y + 2*u*t*q.C.Y + t*t*q.P1.Y,
	}
}

// Tangent returns the derivative of the curve at parameter t.
func (q QuadBezier) Tangent(t float64) Point {
	u := 1 - t
	return Point{
		X: 2*u*(q.C.X-q.P0.X) + 2*t*(q.P1.X-q.C.X),
		Y: 2*u*(q.C.Y-q.P0.Y) + 2*t*(q.P1.Y-q.C.Y),
	}
}

// Hit walks the curve from t0 to t1 in steps of 1/samples and returns the
// first parameter whose point lies within threshold of p, or -1.
func (q QuadBezier) Hit(p Point, t0, t1, threshold float64, samples int) float64 {
	step := 1 / float64(samples)
	for t := t0; t <= t1; t += step {
		if q.At(t).Dist(p) <= threshold {
			return t
		}
	}
	return -1
}

// Polyline samples the sub-curve between t0 and t1 into segments+1 points.
func (q QuadBezier) Polyline(t0, t1 float64, segments int) []Point {
	points := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := t0 + (t1-t0)*float64(i)/float64(segments)
		points = append(points, q.At(t))
	}
	return points
}

// ControlFor solves B(t) = p for the control point, given the endpoints.
// The second result is false when t makes the system singular.
func ControlFor(p0, p1, p Point, t float64) (Point, bool) {
	k := 2 * t * (1 - t)
	if math.Abs(k) < 1e-9 {
		return Point{}, false
	}
	u := 1 - t
	return Point{
		X: (p.X - u*u*p0.X - t*t*p1.X) / k,
		Y: (p.Y - u*u*p0.Y - t*t*p1.Y) / k,
	}, true
}
