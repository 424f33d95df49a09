// Package automaton models a deterministic finite automaton as it is edited on
// a canvas: states with positions, their transition tables, the aggregates
// that draw every transition between one ordered pair of states, and the
// ordered registry shared by drawing and hit testing.
package automaton

// Transition is one (symbol, destination) entry in a state's table.
type Transition struct {
	Symbol string
	To     *Node
}

// Node is the bare transition table of a state. It knows nothing about
// positions or names; graph-level code maps it back to its State through
// Automaton.StepState.
type Node struct {
	id          int
	transitions []Transition
}

// NewNode creates an empty table with the given id.
func NewNode(id int) *Node {
	return &Node{id: id, transitions: make([]Transition, 0)}
}

// ID returns the node's id, shared with its owning State.
func (n *Node) ID() int { return n.id }

// Transition returns the destination of the first transition on symbol,
// or nil if there is none.
func (n *Node) Transition(symbol string) *Node {
	for _, t := range n.transitions {
		if t.Symbol == symbol {
			return t.To
		}
	}
	return nil
}

// Join appends a transition on symbol to to. An identical (to, symbol)
// entry is not added twice; the existing one is returned with false.
func (n *Node) Join(to *Node, symbol string) (Transition, bool) {
	for _, t := range n.transitions {
		if t.To == to && t.Symbol == symbol {
			return t, false
		}
	}
	t := Transition{Symbol: symbol, To: to}
	n.transitions = append(n.transitions, t)
	return t, true
}

// Disjoin removes the first transition matching both to and symbol.
func (n *Node) Disjoin(to *Node, symbol string) bool {
	for i, t := range n.transitions {
		if t.To == to && t.Symbol == symbol {
			n.transitions = append(n.transitions[:i], n.transitions[i+1:]...)
			return true
		}
	}
	return false
}

// Transitions returns a copy of the table in insertion order.
func (n *Node) Transitions() []Transition {
	out := make([]Transition, len(n.transitions))
	copy(out, n.transitions)
	return out
}
