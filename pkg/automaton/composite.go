package automaton

import (
	"slices"
	"strings"

	"github.com/ha1tch/dfa-toolkit/pkg/geometry"
)

// Composite aggregates every transition from one state to another and owns
// the shape that draws them. A composite without a source is the initial
// marker pointing at the initial state.
type Composite struct {
	id           int
	from         *State
	to           *State
	shape        geometry.Shape
	highlighted  bool
	labelVisible bool
}

// ID returns the composite's id.
func (c *Composite) ID() int { return c.id }

// From returns the source state, nil for the initial marker.
func (c *Composite) From() *State { return c.from }

// To returns the destination state.
func (c *Composite) To() *State { return c.to }

// IsInitialMarker reports whether c is the pointer at the initial state.
func (c *Composite) IsInitialMarker() bool { return c.from == nil }

// Shape returns the geometry, laid out for the current state positions.
func (c *Composite) Shape() geometry.Shape {
	c.refresh()
	return c.shape
}

// Transitions returns the source's table entries that lead to the
// destination, in table order.
func (c *Composite) Transitions() []Transition {
	if c.from == nil {
		return nil
	}
	var out []Transition
	for _, t := range c.from.node.transitions {
		if t.To == c.to.node {
			out = append(out, t)
		}
	}
	return out
}

// Symbols returns the symbols of Transitions.
func (c *Composite) Symbols() []string {
	ts := c.Transitions()
	symbols := make([]string, 0, len(ts))
	for _, t := range ts {
		symbols = append(symbols, t.Symbol)
	}
	return symbols
}

// Label is the display text: the non-empty symbols joined by ", ".
func (c *Composite) Label() string {
	symbols := slices.DeleteFunc(c.Symbols(), func(s string) bool { return s == "" })
	return strings.Join(symbols, ", ")
}

func (c *Composite) SetHighlight(b bool) { c.highlighted = b }

func (c *Composite) Highlighted() bool { return c.highlighted }

// SetLabelVisible toggles the label, e.g. while a label editor covers it.
// The initial marker never shows a label.
func (c *Composite) SetLabelVisible(b bool) { c.labelVisible = b && c.from != nil }

func (c *Composite) LabelVisible() bool { return c.labelVisible }

// HitAt tests the rendered path, not its bounding box.
func (c *Composite) HitAt(x, y float64) bool {
	c.refresh()
	return c.shape.CurveHit(x, y)
}

// LabelHitAt tests the label region.
func (c *Composite) LabelHitAt(x, y float64) bool {
	c.refresh()
	return c.shape.LabelHit(x, y)
}

// Fit reshapes the arrow so it follows a dragged point.
func (c *Composite) Fit(x, y float64) bool {
	c.refresh()
	return c.shape.Fit(x, y)
}

// LabelPosition returns where the label is drawn.
func (c *Composite) LabelPosition() geometry.Point {
	c.refresh()
	return c.shape.LabelPosition()
}

// Draw lays the shape out and draws it. It returns geometry.ErrUnsolvable
// when the curve cannot be anchored this frame.
func (c *Composite) Draw(s geometry.Surface) error {
	c.refresh()
	label := ""
	if c.labelVisible {
		label = c.Label()
	}
	return c.shape.Draw(s, label, c.highlighted)
}

func (c *Composite) refresh() {
	var from geometry.Circle
	if c.from != nil {
		from = c.from.circle
	}
	c.shape.Update(from, c.to.circle)
}
