package geometry

import "math"

// LoopRadius is the radius of a self-loop arc.
const LoopRadius = 35.0

// Loop is a self-transition drawn as an arc whose centre sits on the state's
// circumference. The parameter is the angle (radians) of that centre as seen
// from the state centre.
type Loop struct {
	param  float64
	state  Circle
	center Point
	start  float64
	end    float64
}

func (l *Loop) sealed() {}

func (l *Loop) Kind() Kind { return KindLoop }

func (l *Loop) Parameter() float64 { return l.param }

func (l *Loop) SetParameter(p float64) {
	if p == 0 {
		return
	}
	l.param = p
}

func (l *Loop) Update(from, _ Circle) {
	l.state = from
	l.center = from.Center.Polar(LoopRadius, l.param)
	l.start = 2*math.Pi/3 + l.param
	l.end = -2*math.Pi/3 + l.param
}

// Arc returns the arc as currently laid out.
func (l *Loop) Arc() Arc {
	return Arc{Center: l.center, Radius: LoopRadius, Start: l.start, End: l.end, Anticlockwise: true}
}

func (l *Loop) Draw(s Surface, label string, highlighted bool) error {
	col := strokeColor(highlighted)
	s.StrokeArc(l.Arc(), Style{Stroke: col, Width: 1})

	tip := l.center.Polar(LoopRadius, l.end)
	angle := math.Atan2(tip.Y-l.state.Center.Y, tip.X-l.state.Center.X)
	s.FillPolygon(arrowhead(tip, angle), col)

	if label != "" {
		s.FillText(label, l.LabelPosition(), LabelFont, ColorDefault)
	}
	return nil
}

func (l *Loop) LabelPosition() Point {
	return l.center.Polar(1.5*LoopRadius, l.param)
}

func (l *Loop) LabelHit(x, y float64) bool {
	return l.LabelPosition().Dist(Point{x, y}) <= LabelRadius
}

// CurveHit accepts points inside the loop's disc that are not also inside
// the owning state, so the state stays clickable under its loop.
func (l *Loop) CurveHit(x, y float64) bool {
	inLoop := l.center.Dist(Point{x, y}) <= LoopRadius
	if inLoop && !l.state.Contains(x, y) {
		return true
	}
	return l.LabelHit(x, y)
}

func (l *Loop) Fit(x, y float64) bool {
	p := Point{x, y}
	if p == l.state.Center {
		return false
	}
	l.param = Angle(l.state.Center, p)
	l.Update(l.state, l.state)
	return true
}
