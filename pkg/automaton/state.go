package automaton

import (
	"math"

	"github.com/ha1tch/dfa-toolkit/pkg/geometry"
)

// Radii of drawn states.
const (
	StateRadius  = 35.0
	innerRadius  = 0.7
	auxiliaryDiv = 10.0
)

// AuxiliaryID is the id reserved for the auxiliary state that follows the
// pointer while a new transition is being dragged out.
const AuxiliaryID = -1

// State is a node of the automaton as drawn on the canvas.
type State struct {
	node        *Node
	name        string
	circle      geometry.Circle
	final       bool
	highlighted bool
	labelHidden bool
}

func newState(id int, name string, x, y float64) *State {
	return &State{
		node:   NewNode(id),
		name:   name,
		circle: geometry.Circle{Center: geometry.Point{X: x, Y: y}, Radius: StateRadius},
	}
}

// ID returns the state's stable id.
func (s *State) ID() int { return s.node.id }

// Node returns the state's transition table.
func (s *State) Node() *Node { return s.node }

// Name returns the display label.
func (s *State) Name() string { return s.name }

// IsAuxiliary reports whether s is the transient drag-target state.
func (s *State) IsAuxiliary() bool { return s.node.id == AuxiliaryID }

// Position returns the centre of the state's circle.
func (s *State) Position() geometry.Point { return s.circle.Center }

// SetPosition moves the state's centre.
func (s *State) SetPosition(x, y float64) {
	s.circle.Center = geometry.Point{X: x, Y: y}
}

// MoveBy translates the state.
func (s *State) MoveBy(dx, dy float64) {
	s.circle.Center.X += dx
	s.circle.Center.Y += dy
}

// Circle returns the disc the state occupies.
func (s *State) Circle() geometry.Circle { return s.circle }

// IsFinal reports whether the state is accepting.
func (s *State) IsFinal() bool { return s.final }

func (s *State) SetHighlight(b bool) { s.highlighted = b }

func (s *State) Highlighted() bool { return s.highlighted }

// SetLabelHidden hides the name, e.g. while a label editor covers it.
func (s *State) SetLabelHidden(b bool) { s.labelHidden = b }

func (s *State) LabelHidden() bool { return s.labelHidden }

// Transition is the deterministic step on symbol.
func (s *State) Transition(symbol string) *Node {
	return s.node.Transition(symbol)
}

// Transitions returns the state's outgoing table entries.
func (s *State) Transitions() []Transition {
	return s.node.Transitions()
}

// HitAt reports whether (x, y) lies on the state's disc.
func (s *State) HitAt(x, y float64) bool {
	return s.circle.Contains(x, y)
}

// Draw paints the disc, the accepting ring and the label.
func (s *State) Draw(surface geometry.Surface) error {
	fill := geometry.ColorFill
	if s.highlighted {
		fill = geometry.ColorActive
	}
	full := geometry.Arc{Center: s.circle.Center, Radius: s.circle.Radius, End: 2 * math.Pi}
	surface.StrokeArc(full, geometry.Style{Stroke: geometry.ColorDefault, Fill: fill, Width: 1})
	if s.final {
		inner := full
		inner.Radius = s.circle.Radius * innerRadius
		surface.StrokeArc(inner, geometry.Style{Stroke: geometry.ColorDefault, Width: 1})
	}
	if !s.labelHidden && s.name != "" {
		surface.FillText(s.name, s.circle.Center, geometry.StateFont, geometry.ColorDefault)
	}
	return nil
}

func (s *State) resolve(a *Automaton) *State {
	if s == nil || a.index[s.ID()] != s {
		return nil
	}
	return s
}
