// Package geometry lays out the arrows of an automaton diagram: curved
// transitions between two states, self-loops and the initial-state pointer.
// It also hit-tests them and re-fits their shape from a dragged point.
package geometry

import "math"

// Point represents a 2D coordinate in canvas space (y grows downward).
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale multiplies both coordinates by k.
func (p Point) Scale(k float64) Point {
	return Point{p.X * k, p.Y * k}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Len returns the Euclidean length of p.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dist returns the distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Polar returns the point at distance r and angle a (radians) from p.
func (p Point) Polar(r, a float64) Point {
	return Point{p.X + r*math.Cos(a), p.Y + r*math.Sin(a)}
}

// Angle returns the angle of the direction from p to q, normalised to [0, 2π).
func Angle(p, q Point) float64 {
	a := math.Atan2(q.Y-p.Y, q.X-p.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Circle is the disc a state occupies on the canvas.
type Circle struct {
	Center Point
	Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c Circle) Contains(x, y float64) bool {
	dx := c.Center.X - x
	dy := c.Center.Y - y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Boundary returns n points evenly spaced around the circumference,
// starting at angle 0 and proceeding clockwise on screen.
func (c Circle) Boundary(n int) []Point {
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi / float64(n) * float64(i)
		points = append(points, c.Center.Polar(c.Radius, angle))
	}
	return points
}

// Rect represents an axis-aligned rectangle by its top-left corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

// Arc describes a circular arc. The arc runs from Start to End (radians);
// Anticlockwise selects the sweep direction the same way a 2D canvas does.
type Arc struct {
	Center        Point
	Radius        float64
	Start, End    float64
	Anticlockwise bool
}

// Points flattens the arc into a polyline with the given number of segments.
func (a Arc) Points(segments int) []Point {
	if segments < 1 {
		segments = 1
	}
	sweep := a.Sweep()
	points := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		angle := a.Start + sweep*float64(i)/float64(segments)
		points = append(points, a.Center.Polar(a.Radius, angle))
	}
	return points
}

// Sweep returns the signed angular extent travelled from Start to End.
func (a Arc) Sweep() float64 {
	full := 2 * math.Pi
	if a.Anticlockwise {
		d := math.Mod(a.Start-a.End, full)
		if d < 0 {
			d += full
		}
		if d == 0 && a.Start != a.End {
			d = full
		}
		return -d
	}
	d := math.Mod(a.End-a.Start, full)
	if d < 0 {
		d += full
	}
	if d == 0 && a.Start != a.End {
		d = full
	}
	return d
}

// segmentDistance returns the distance from p to the segment ab.
func segmentDistance(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Dist(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Add(ab.Scale(t)))
}
