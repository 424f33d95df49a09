package automaton

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/ha1tch/dfa-toolkit/pkg/geometry"
)

// maxBias bounds the random shape parameter given to new composites so that
// arrows between the same states do not sit on top of each other.
const maxBias = 80.0

// Ref identifies a state either by reference (*State) or by display name
// (Name). A reference only resolves while the state belongs to the
// automaton; a name resolves to the first state carrying it.
type Ref interface {
	resolve(a *Automaton) *State
}

// Name refers to a state by its display label.
type Name string

func (n Name) resolve(a *Automaton) *State { return a.FindByName(string(n)) }

// Automaton owns the states, the transition composites and the element
// registry of one diagram. It is not safe for concurrent use.
type Automaton struct {
	states     []*State
	composites []*Composite
	registry   *Registry
	index      map[int]*State
	finals     map[*State]struct{}

	initial *State
	current *State
	aux     *State

	nextID          int
	nextCompositeID int

	rng    *rand.Rand
	logger *slog.Logger
}

// Option configures an Automaton.
type Option func(*Automaton)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *Automaton) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithRand sets the random source for new shape parameters.
func WithRand(r *rand.Rand) Option {
	return func(a *Automaton) {
		if r != nil {
			a.rng = r
		}
	}
}

// WithSeed makes shape parameters reproducible.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// New creates an empty automaton.
func New(opts ...Option) *Automaton {
	a := &Automaton{
		registry: NewRegistry(),
		index:    make(map[int]*State),
		finals:   make(map[*State]struct{}),
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CreateState adds a non-final state with a fresh id.
func (a *Automaton) CreateState(name string, x, y float64) *State {
	s := newState(a.nextID, name, x, y)
	a.nextID++
	a.addState(s)
	a.logger.Debug("state created", "id", s.ID(), "name", name)
	return s
}

// CreateAuxiliaryState adds the small, unlabelled state that follows the
// pointer while a transition is dragged out of a state. Only one exists at a
// time; an existing one is removed first.
func (a *Automaton) CreateAuxiliaryState(x, y float64) *State {
	a.RemoveAuxiliaryState()
	s := newState(AuxiliaryID, "", x, y)
	s.circle.Radius = StateRadius / auxiliaryDiv
	s.labelHidden = true
	a.addState(s)
	a.aux = s
	return s
}

// RemoveAuxiliaryState removes the auxiliary state and its composites.
func (a *Automaton) RemoveAuxiliaryState() bool {
	if a.aux == nil {
		return false
	}
	return a.RemoveState(a.aux)
}

// Auxiliary returns the auxiliary state, if any.
func (a *Automaton) Auxiliary() *State { return a.aux }

func (a *Automaton) addState(s *State) {
	a.states = append(a.states, s)
	a.index[s.ID()] = s
	a.registry.Add(s)
}

// FindByName returns the first state labelled name, or nil.
func (a *Automaton) FindByName(name string) *State {
	for _, s := range a.states {
		if s.name == name {
			return s
		}
	}
	return nil
}

func (a *Automaton) find(ref Ref) *State {
	if ref == nil {
		return nil
	}
	return ref.resolve(a)
}

// Join adds a transition on symbol and makes sure a composite exists for
// the pair. It fails only when a state cannot be resolved.
func (a *Automaton) Join(from, to Ref, symbol string) bool {
	f, t := a.find(from), a.find(to)
	if f == nil || t == nil {
		return false
	}
	f.node.Join(t.node, symbol)
	if a.FindUnionComposite(f, t) == nil {
		a.newComposite(f, t)
	}
	return true
}

// Disjoin removes a transition from the table. The composite for the pair
// is left in place even when it has no transitions left; removing it is
// RemoveUnionComposite's job. It reports whether an entry was removed.
func (a *Automaton) Disjoin(from, to Ref, symbol string) bool {
	f, t := a.find(from), a.find(to)
	if f == nil || t == nil {
		return false
	}
	return f.node.Disjoin(t.node, symbol)
}

func (a *Automaton) newComposite(from, to *State) *Composite {
	kind := geometry.KindFor(from != nil, from == to)
	shape := geometry.NewShape(kind)
	shape.SetParameter(a.bias())
	c := &Composite{
		id:           a.nextCompositeID,
		from:         from,
		to:           to,
		shape:        shape,
		labelVisible: from != nil,
	}
	a.nextCompositeID++
	c.refresh()
	a.composites = append(a.composites, c)
	a.registry.Add(c)
	return c
}

func (a *Automaton) bias() float64 {
	b := a.rng.Float64() * maxBias
	if a.rng.IntN(2) == 1 {
		b = -b
	}
	return b
}

// FindUnionComposite returns the composite for the ordered pair, or nil.
// A nil from finds the initial marker pointing at to.
func (a *Automaton) FindUnionComposite(from, to *State) *Composite {
	for _, c := range a.composites {
		if c.from == from && c.to == to {
			return c
		}
	}
	return nil
}

// RemoveUnionComposite deletes a composite. For an ordinary composite every
// transition it stands for is disjoined first; the initial marker is removed
// together with the initial designation.
func (a *Automaton) RemoveUnionComposite(c *Composite) bool {
	if c == nil || !slices.Contains(a.composites, c) {
		return false
	}
	if c.from == nil {
		return a.removeInitialMarker()
	}
	for _, t := range c.Transitions() {
		c.from.node.Disjoin(t.To, t.Symbol)
	}
	a.dropComposite(c)
	return true
}

func (a *Automaton) dropComposite(c *Composite) {
	a.composites = slices.DeleteFunc(a.composites, func(x *Composite) bool { return x == c })
	a.registry.Remove(c)
}

func (a *Automaton) removeInitialMarker() bool {
	for _, c := range a.composites {
		if c.from == nil {
			a.dropComposite(c)
			a.initial = nil
			return true
		}
	}
	return false
}

// RemoveState deletes a state along with every composite that touches it.
func (a *Automaton) RemoveState(ref Ref) bool {
	s := a.find(ref)
	if s == nil {
		return false
	}

	var doomed []*Composite
	for _, c := range a.composites {
		if c.from == s || c.to == s {
			doomed = append(doomed, c)
		}
	}
	for _, c := range doomed {
		a.RemoveUnionComposite(c)
	}

	// Entries from states that never got a composite to s (none in
	// practice) must not dangle either.
	for _, other := range a.states {
		for _, t := range other.node.Transitions() {
			if t.To == s.node {
				other.node.Disjoin(t.To, t.Symbol)
			}
		}
	}

	a.states = slices.DeleteFunc(a.states, func(x *State) bool { return x == s })
	delete(a.index, s.ID())
	delete(a.finals, s)
	a.registry.Remove(s)

	if a.initial == s {
		a.initial = nil
	}
	if a.current == s {
		a.current = nil
	}
	if a.aux == s {
		a.aux = nil
	}
	a.logger.Debug("state removed", "id", s.ID(), "name", s.name, "composites", len(doomed))
	return true
}

// SetInitialState designates the start state, replacing any previous
// initial marker, and moves the current-state cursor there.
func (a *Automaton) SetInitialState(ref Ref) bool {
	s := a.find(ref)
	if s == nil {
		return false
	}
	a.removeInitialMarker()
	a.newComposite(nil, s)
	a.initial = s
	a.current = s
	return true
}

// SetFinalState toggles whether the state is accepting.
func (a *Automaton) SetFinalState(ref Ref) bool {
	s := a.find(ref)
	if s == nil {
		return false
	}
	if s.final {
		s.final = false
		delete(a.finals, s)
	} else {
		s.final = true
		a.finals[s] = struct{}{}
	}
	return true
}

// Rename changes a state's display label.
func (a *Automaton) Rename(ref Ref, name string) bool {
	s := a.find(ref)
	if s == nil {
		return false
	}
	s.name = name
	return true
}

// Relabel replaces every transition a composite stands for with one
// transition per symbol.
func (a *Automaton) Relabel(c *Composite, symbols []string) bool {
	if c == nil || c.from == nil || !slices.Contains(a.composites, c) {
		return false
	}
	for _, t := range c.Transitions() {
		c.from.node.Disjoin(t.To, t.Symbol)
	}
	for _, sym := range symbols {
		c.from.node.Join(c.to.node, sym)
	}
	return true
}

// StepState maps a table node back to the state that owns it.
func (a *Automaton) StepState(n *Node) *State {
	if n == nil {
		return nil
	}
	return a.index[n.id]
}

// Initial returns the start state, if set.
func (a *Automaton) Initial() *State { return a.initial }

// Current returns the simulation cursor.
func (a *Automaton) Current() *State { return a.current }

// SetCurrent moves the simulation cursor.
func (a *Automaton) SetCurrent(s *State) { a.current = s }

// States returns the states in creation order.
func (a *Automaton) States() []*State { return slices.Clone(a.states) }

// UnionComposites returns the composites in creation order.
func (a *Automaton) UnionComposites() []*Composite { return slices.Clone(a.composites) }

// Elements returns every registered element in draw order.
func (a *Automaton) Elements() []Element { return a.registry.Elements() }

// Registry exposes the element registry for z-ordering and hit testing.
func (a *Automaton) Registry() *Registry { return a.registry }

// FinalStates returns the accepting states in creation order.
func (a *Automaton) FinalStates() []*State {
	var out []*State
	for _, s := range a.states {
		if _, ok := a.finals[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Clear removes everything. State ids keep increasing afterwards.
func (a *Automaton) Clear() {
	a.states = nil
	a.composites = nil
	a.registry.Clear()
	clear(a.index)
	clear(a.finals)
	a.initial = nil
	a.current = nil
	a.aux = nil
}

// Draw paints every element back to front. Composites whose curve cannot
// be anchored are skipped for this frame; the number skipped is returned.
func (a *Automaton) Draw(s geometry.Surface) int {
	skipped := 0
	for _, e := range a.registry.Elements() {
		err := e.Draw(s)
		if err == nil {
			continue
		}
		if errors.Is(err, geometry.ErrUnsolvable) {
			skipped++
			if c, ok := e.(*Composite); ok {
				a.logger.Debug("skipping composite", "id", c.id, "from", c.from.Name(), "to", c.to.Name(), "error", err)
			}
			continue
		}
		a.logger.Warn("draw failed", "error", err)
	}
	return skipped
}
