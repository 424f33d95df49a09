package geometry

import "math"

// Sampling budgets for the curve.
const (
	boundarySamples = 200
	hitSamples      = 1000
	drawSegments    = 50
	labelOffset     = 20.0
)

// Curve is a quadratic Bézier between the centres of two circles whose
// visible part runs from boundary to boundary. The parameter is the signed
// distance of the control point from the chord midpoint, measured along the
// chord's left-hand normal.
type Curve struct {
	param    float64
	from, to Circle
	control  Point
	t0, t1   float64
}

func (c *Curve) sealed() {}

func (c *Curve) Kind() Kind { return KindCurve }

func (c *Curve) Parameter() float64 { return c.param }

func (c *Curve) SetParameter(p float64) {
	if p == 0 {
		return
	}
	c.param = p
}

func (c *Curve) Update(from, to Circle) {
	c.from, c.to = from, to
	c.control = c.controlAt(1)
}

// Control returns the current control point.
func (c *Curve) Control() Point { return c.control }

// Bezier returns the full centre-to-centre curve.
func (c *Curve) Bezier() QuadBezier {
	return QuadBezier{P0: c.from.Center, C: c.control, P1: c.to.Center}
}

// controlAt returns the midpoint pushed along the normal by param*k.
func (c *Curve) controlAt(k float64) Point {
	start, end := c.from.Center, c.to.Center
	mid := Point{(start.X + end.X) / 2, (start.Y + end.Y) / 2}
	d := end.Sub(start)
	l := d.Len()
	if l == 0 {
		return mid
	}
	normal := Point{-d.Y / l, d.X / l}
	return mid.Add(normal.Scale(c.param * k))
}

// Crossing returns the curve parameter where the ideal curve leaves the
// circle, or -1 if none of the boundary samples touch the curve.
func (c *Curve) Crossing(circle Circle) float64 {
	b := c.Bezier()
	for _, p := range circle.Boundary(boundarySamples) {
		if t := b.Hit(p, 0, 1, 1, hitSamples); t >= 0 {
			return t
		}
	}
	return -1
}

// Interval recomputes and returns the visible parameter range [t0, t1].
func (c *Curve) Interval() (t0, t1 float64, err error) {
	c.t0 = c.Crossing(c.from)
	c.t1 = c.Crossing(c.to)
	if c.t0 < 0 || c.t1 < 0 {
		return c.t0, c.t1, ErrUnsolvable
	}
	return c.t0, c.t1, nil
}

func (c *Curve) Draw(s Surface, label string, highlighted bool) error {
	t0, t1, err := c.Interval()
	if err != nil {
		return err
	}
	col := strokeColor(highlighted)
	b := c.Bezier()
	s.StrokePath(b.Polyline(t0, t1, drawSegments), Style{Stroke: col, Width: 1})

	tip := b.At(t1)
	// Corners trail the tip, back along the curve.
	back := b.Tangent(t1).Scale(-1)
	if back.Len() < 1e-9 {
		back = c.control.Sub(c.to.Center)
	}
	angle := math.Atan2(back.Y, back.X)
	s.FillPolygon(arrowhead(tip, angle), col)

	if label != "" {
		s.FillText(label, c.LabelPosition(), LabelFont, ColorDefault)
	}
	return nil
}

func (c *Curve) LabelPosition() Point {
	anchor := c.controlAt(0.5)
	angle := Angle(c.from.Center, c.to.Center)
	return Point{
		X: anchor.X + labelOffset*math.Sin(angle),
		Y: anchor.Y + labelOffset*math.Cos(angle),
	}
}

func (c *Curve) LabelHit(x, y float64) bool {
	if c.LabelPosition().Dist(Point{x, y}) <= LabelRadius {
		return true
	}
	return c.segmentHit(x, y)
}

func (c *Curve) CurveHit(x, y float64) bool {
	return c.LabelHit(x, y)
}

func (c *Curve) segmentHit(x, y float64) bool {
	t0, t1, err := c.Interval()
	if err != nil {
		return false
	}
	return c.Bezier().Hit(Point{x, y}, t0, t1, CurveThreshold, hitSamples) >= 0
}

// Fit projects (x, y) onto the chord to estimate its curve parameter,
// inverts the Bézier formula for the control point and keeps the control
// point's offset along the normal. The fit is exact for the chord
// projection; far-away points only approximate.
func (c *Curve) Fit(x, y float64) bool {
	start, end := c.from.Center, c.to.Center
	d := end.Sub(start)
	l := d.Len()
	if l == 0 {
		return false
	}
	p := Point{x, y}
	t := p.Sub(start).Dot(d) / (l * l)

	control, ok := ControlFor(start, end, p, t)
	if !ok {
		return false
	}
	normal := Point{-d.Y / l, d.X / l}
	offset := control.Sub(start).Dot(normal)
	if offset == 0 {
		return false
	}
	c.param = offset
	c.control = c.controlAt(1)
	return true
}
