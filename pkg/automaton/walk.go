package automaton

import (
	"fmt"
	"slices"
	"sort"
)

// Outcome is how a walk over an input word ended.
type Outcome int

const (
	OutcomeAccepted       Outcome = iota // word consumed, ended in a final state
	OutcomeRejected                      // word consumed, ended in a non-final state
	OutcomeNoInitialState                // nothing to start from
	OutcomeNoTransition                  // a symbol had no outgoing transition
	OutcomeCancelled                     // stopped by the caller
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejected:
		return "rejected"
	case OutcomeNoInitialState:
		return "no_initial_state"
	case OutcomeNoTransition:
		return "no_transition"
	case OutcomeCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Symbols splits a word into its symbols, one per rune.
func Symbols(word string) []string {
	symbols := make([]string, 0, len(word))
	for _, r := range word {
		symbols = append(symbols, string(r))
	}
	return symbols
}

// WalkResult describes the states visited for a word.
type WalkResult struct {
	Path     []*State // start state first; empty without an initial state
	Consumed int      // symbols consumed before stopping
	Outcome  Outcome
	Symbol   string // the symbol that had no transition, if any
}

// Accepted reports whether the word was accepted.
func (r WalkResult) Accepted() bool { return r.Outcome == OutcomeAccepted }

// Last returns the last state reached, or nil.
func (r WalkResult) Last() *State {
	if len(r.Path) == 0 {
		return nil
	}
	return r.Path[len(r.Path)-1]
}

// Walk runs word from the initial state without touching the current-state
// cursor or any highlight. It is a pure function of the graph and the word.
func (a *Automaton) Walk(word string) WalkResult {
	var res WalkResult
	s := a.initial
	if s == nil {
		res.Outcome = OutcomeNoInitialState
		return res
	}
	res.Path = append(res.Path, s)
	for _, sym := range Symbols(word) {
		next := a.StepState(s.Transition(sym))
		if next == nil {
			res.Outcome = OutcomeNoTransition
			res.Symbol = sym
			return res
		}
		s = next
		res.Path = append(res.Path, s)
		res.Consumed++
	}
	if s.final {
		res.Outcome = OutcomeAccepted
	} else {
		res.Outcome = OutcomeRejected
	}
	return res
}

// Warning is a non-fatal finding about the automaton's structure.
type Warning struct {
	Type    string // no_initial, no_final, nondeterministic, empty_symbol, unreachable
	State   string
	Message string
}

// Analyse reports structural issues. None of them prevent simulation.
func (a *Automaton) Analyse() []Warning {
	var warnings []Warning
	if a.initial == nil {
		warnings = append(warnings, Warning{Type: "no_initial", Message: "no initial state set"})
	}
	if len(a.finals) == 0 {
		warnings = append(warnings, Warning{Type: "no_final", Message: "no final states"})
	}

	for _, s := range a.states {
		if s.IsAuxiliary() {
			continue
		}
		seen := make(map[string]*Node)
		for _, t := range s.node.transitions {
			if t.Symbol == "" {
				warnings = append(warnings, Warning{
					Type:    "empty_symbol",
					State:   s.name,
					Message: fmt.Sprintf("state %q has a transition with no symbol", s.name),
				})
				continue
			}
			if prev, ok := seen[t.Symbol]; ok && prev != t.To {
				warnings = append(warnings, Warning{
					Type:    "nondeterministic",
					State:   s.name,
					Message: fmt.Sprintf("state %q has several transitions on %q; the first one is used", s.name, t.Symbol),
				})
				continue
			}
			seen[t.Symbol] = t.To
		}
	}

	if a.initial != nil {
		reached := a.reachable()
		for _, s := range a.states {
			if !s.IsAuxiliary() && !reached[s] {
				warnings = append(warnings, Warning{
					Type:    "unreachable",
					State:   s.name,
					Message: fmt.Sprintf("state %q cannot be reached from the initial state", s.name),
				})
			}
		}
	}
	return warnings
}

func (a *Automaton) reachable() map[*State]bool {
	reached := map[*State]bool{a.initial: true}
	queue := []*State{a.initial}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, t := range s.node.transitions {
			next := a.StepState(t.To)
			if next != nil && !reached[next] {
				reached[next] = true
				queue = append(queue, next)
			}
		}
	}
	return reached
}

// Alphabet returns the distinct non-empty symbols in use, sorted.
func (a *Automaton) Alphabet() []string {
	seen := make(map[string]bool)
	var symbols []string
	for _, s := range a.states {
		for _, t := range s.node.transitions {
			if t.Symbol != "" && !seen[t.Symbol] {
				seen[t.Symbol] = true
				symbols = append(symbols, t.Symbol)
			}
		}
	}
	sort.Strings(symbols)
	return symbols
}

// Reset moves the current-state cursor back to the initial state.
func (a *Automaton) Reset() { a.current = a.initial }

// Step advances the current-state cursor on one symbol. It returns the new
// current state, or false when there is no cursor or no transition; the
// cursor is left where it was in that case.
func (a *Automaton) Step(symbol string) (*State, bool) {
	if a.current == nil {
		return nil, false
	}
	next := a.StepState(a.current.Transition(symbol))
	if next == nil {
		return a.current, false
	}
	a.current = next
	return next, true
}

// Inputs returns the symbols with a transition out of the current state, in
// table order without repeats.
func (a *Automaton) Inputs() []string {
	if a.current == nil {
		return nil
	}
	var symbols []string
	for _, t := range a.current.node.transitions {
		if !slices.Contains(symbols, t.Symbol) {
			symbols = append(symbols, t.Symbol)
		}
	}
	return symbols
}
