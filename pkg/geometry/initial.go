package geometry

// InitialLength is the length of the initial-state pointer.
const InitialLength = 70.0

// InitialMarker is the pointer into the initial state. Its tip touches the
// state's circumference at the parameter angle and its tail extends outward.
type InitialMarker struct {
	param     float64
	state     Circle
	tip, tail Point
}

func (m *InitialMarker) sealed() {}

func (m *InitialMarker) Kind() Kind { return KindInitial }

func (m *InitialMarker) Parameter() float64 { return m.param }

func (m *InitialMarker) SetParameter(p float64) {
	if p == 0 {
		return
	}
	m.param = p
}

func (m *InitialMarker) Update(_, to Circle) {
	m.state = to
	m.tip = to.Center.Polar(to.Radius, m.param)
	m.tail = m.tip.Polar(InitialLength, m.param)
}

// Segment returns the tail and tip of the pointer.
func (m *InitialMarker) Segment() (tail, tip Point) {
	return m.tail, m.tip
}

// Draw never draws a label; the initial marker has none.
func (m *InitialMarker) Draw(s Surface, _ string, highlighted bool) error {
	col := strokeColor(highlighted)
	s.StrokePath([]Point{m.tail, m.tip}, Style{Stroke: col, Width: 1})
	s.FillPolygon(arrowhead(m.tip, m.param), col)
	return nil
}

func (m *InitialMarker) LabelPosition() Point { return m.tail }

func (m *InitialMarker) LabelHit(x, y float64) bool { return false }

func (m *InitialMarker) CurveHit(x, y float64) bool {
	return segmentDistance(Point{x, y}, m.tail, m.tip) <= CurveThreshold
}

func (m *InitialMarker) Fit(x, y float64) bool {
	p := Point{x, y}
	if p == m.state.Center {
		return false
	}
	m.param = Angle(m.state.Center, p)
	m.Update(m.state, m.state)
	return true
}
