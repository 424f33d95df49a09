// Package interact turns pointer and text events into edits of an
// automaton. All interaction state lives in an explicit Session owned by
// the Controller, so hosts only forward events and redraw.
package interact

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/ha1tch/dfa-toolkit/pkg/automaton"
	"github.com/ha1tch/dfa-toolkit/pkg/geometry"
)

// Pointer is a pointer event in canvas coordinates.
type Pointer struct {
	X, Y  float64
	Shift bool
	Ctrl  bool
}

func (p Pointer) point() geometry.Point { return geometry.Point{X: p.X, Y: p.Y} }

// EditKind says what a pending label edit applies to.
type EditKind int

const (
	EditNone EditKind = iota
	EditState
	EditComposite
)

// Edit is a label editor the host should show. At is where the label is
// drawn; Text is the current label.
type Edit struct {
	Kind      EditKind
	State     *automaton.State
	Composite *automaton.Composite
	At        geometry.Point
	Text      string

	// Placeholder is set when the composite's empty-symbol transition was
	// joined by the gesture that opened this edit; NewComposite when the
	// composite itself was. Both are undone unless a label is committed.
	Placeholder  bool
	NewComposite bool
}

// Session is the interaction state between events.
type Session struct {
	Last geometry.Point // pointer position of the previous event

	State        *automaton.State // state being dragged
	StateDragged bool

	Composite        *automaton.Composite // composite being reshaped
	CompositeDragged bool

	// Creating is set while a new transition is dragged out of From; State
	// is then the auxiliary state following the pointer.
	Creating bool
	From     *automaton.State

	Edit Edit
}

// Controller applies events to one automaton.
type Controller struct {
	graph   *automaton.Automaton
	session Session
	logger  *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a controller for a.
func New(a *automaton.Automaton, opts ...Option) *Controller {
	c := &Controller{graph: a, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Automaton returns the automaton being edited.
func (c *Controller) Automaton() *automaton.Automaton { return c.graph }

// Session returns a copy of the interaction state.
func (c *Controller) Session() Session { return c.session }

// Editing returns the pending label edit, if any.
func (c *Controller) Editing() (Edit, bool) {
	return c.session.Edit, c.session.Edit.Kind != EditNone
}

// Busy reports whether a press has been taken and not yet released.
func (c *Controller) Busy() bool {
	s := c.session
	return s.State != nil || s.Composite != nil || s.Creating
}

// stateAt returns the front-most real state under (x, y).
func (c *Controller) stateAt(x, y float64) *automaton.State {
	for n := 0; ; n++ {
		e := c.graph.Registry().NthHit(n, x, y)
		if e == nil {
			return nil
		}
		if s, ok := e.(*automaton.State); ok && !s.IsAuxiliary() {
			return s
		}
	}
}

// PointerDown starts a drag, a reshape or a new transition. It is ignored
// while a label edit is open; hosts commit or cancel the edit first. It
// reports whether the automaton changed.
func (c *Controller) PointerDown(p Pointer) bool {
	if c.session.Edit.Kind != EditNone || c.Busy() {
		return false
	}
	c.session.Last = p.point()

	switch e := c.graph.Registry().NthHit(0, p.X, p.Y).(type) {
	case *automaton.State:
		switch {
		case p.Ctrl:
			c.graph.SetFinalState(e)
			c.logger.Debug("final state toggled", "state", e.Name(), "final", e.IsFinal())
			return true
		case p.Shift:
			aux := c.graph.CreateAuxiliaryState(p.X, p.Y)
			c.graph.Join(e, aux, "")
			c.session.Creating = true
			c.session.From = e
			c.session.State = aux
			return true
		default:
			c.session.State = e
			c.graph.Registry().BringToFront(e)
			return true
		}
	case *automaton.Composite:
		c.session.Composite = e
		c.graph.Registry().BringToFront(e)
		return true
	}
	return false
}

// PointerMove drags the selected state or reshapes the selected composite.
func (c *Controller) PointerMove(p Pointer) bool {
	s := &c.session
	prev := s.Last
	s.Last = p.point()
	switch {
	case s.State != nil:
		s.State.MoveBy(p.X-prev.X, p.Y-prev.Y)
		s.StateDragged = true
		return true
	case s.Composite != nil:
		if s.Composite.Fit(p.X, p.Y) {
			s.CompositeDragged = true
		}
		return true
	}
	return false
}

// PointerUp ends the gesture. A new transition is completed on the state
// under the pointer; a tap without movement opens a label edit.
func (c *Controller) PointerUp(p Pointer) bool {
	s := c.session
	c.session = Session{Last: p.point(), Edit: c.session.Edit}
	changed := s.StateDragged || s.CompositeDragged

	if s.Creating {
		if target := c.stateAt(p.X, p.Y); target != nil && s.From != nil {
			existed := c.graph.FindUnionComposite(s.From, target) != nil
			had := slices.ContainsFunc(s.From.Transitions(), func(t automaton.Transition) bool {
				return t.To == target.Node() && t.Symbol == ""
			})
			c.graph.Join(s.From, target, "")
			if comp := c.graph.FindUnionComposite(s.From, target); comp != nil {
				c.openCompositeEdit(comp)
				c.session.Edit.Placeholder = !had
				c.session.Edit.NewComposite = !existed
			}
			c.logger.Debug("transition drawn", "from", s.From.Name(), "to", target.Name())
		}
		c.graph.RemoveAuxiliaryState()
		return true
	}

	switch {
	case s.Composite != nil && !s.CompositeDragged:
		c.openCompositeEdit(s.Composite)
		return true
	case s.State != nil && !s.StateDragged:
		c.openStateEdit(s.State)
		return true
	}
	return changed
}

// DoubleClick makes the state under the pointer initial, or creates an
// unnamed state there and opens its label edit.
func (c *Controller) DoubleClick(p Pointer) bool {
	c.CancelEdit()
	if st := c.stateAt(p.X, p.Y); st != nil {
		c.graph.SetInitialState(st)
		c.logger.Debug("initial state set", "state", st.Name())
		return true
	}
	st := c.graph.CreateState("", p.X, p.Y)
	c.openStateEdit(st)
	return true
}

func (c *Controller) openStateEdit(s *automaton.State) {
	c.CancelEdit()
	s.SetLabelHidden(true)
	c.session.Edit = Edit{Kind: EditState, State: s, At: s.Position(), Text: s.Name()}
}

func (c *Controller) openCompositeEdit(comp *automaton.Composite) {
	c.CancelEdit()
	if comp.IsInitialMarker() {
		return
	}
	comp.SetLabelVisible(false)
	c.session.Edit = Edit{Kind: EditComposite, Composite: comp, At: comp.LabelPosition(), Text: comp.Label()}
}

// CommitText applies the text typed into the open label edit. Blank text
// leaves the label unchanged. Composite labels are comma-separated symbols;
// blank entries are skipped.
func (c *Controller) CommitText(text string) bool {
	edit := c.session.Edit
	if edit.Kind == EditNone {
		return false
	}
	c.closeEdit()

	text = strings.TrimSpace(text)
	if text == "" {
		c.logger.Debug("label edit discarded: empty text")
		c.discardPlaceholder(edit)
		return false
	}
	switch edit.Kind {
	case EditState:
		return c.graph.Rename(edit.State, text)
	case EditComposite:
		return c.graph.Relabel(edit.Composite, SplitSymbols(text))
	}
	return false
}

// CancelEdit closes the label edit without changes. A transition drawn by
// the gesture that opened the edit is removed again.
func (c *Controller) CancelEdit() {
	edit := c.session.Edit
	c.closeEdit()
	c.discardPlaceholder(edit)
}

// discardPlaceholder undoes the empty-symbol join of a freshly drawn
// transition, and drops its composite if nothing else is left in it.
func (c *Controller) discardPlaceholder(edit Edit) {
	if edit.Kind != EditComposite || !edit.Placeholder {
		return
	}
	comp := edit.Composite
	c.graph.Disjoin(comp.From(), comp.To(), "")
	if edit.NewComposite && len(comp.Transitions()) == 0 {
		c.graph.RemoveUnionComposite(comp)
	}
}

func (c *Controller) closeEdit() {
	edit := c.session.Edit
	switch edit.Kind {
	case EditState:
		edit.State.SetLabelHidden(false)
	case EditComposite:
		edit.Composite.SetLabelVisible(true)
	}
	c.session.Edit = Edit{}
}

// DeleteSelection removes the state or composite whose label edit is open.
func (c *Controller) DeleteSelection() bool {
	edit := c.session.Edit
	c.closeEdit()
	switch edit.Kind {
	case EditState:
		return c.graph.RemoveState(edit.State)
	case EditComposite:
		return c.graph.RemoveUnionComposite(edit.Composite)
	}
	return false
}

// SplitSymbols splits a comma-separated label into trimmed, non-empty
// symbols. Duplicates are kept; the table ignores them.
func SplitSymbols(text string) []string {
	var symbols []string
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			symbols = append(symbols, part)
		}
	}
	return symbols
}
