package automaton

import (
	"errors"
	"fmt"
)

// ErrUnknownSample is returned for a sample number outside 1..SampleCount.
var ErrUnknownSample = errors.New("unknown sample")

// SampleCount is the number of built-in sample automata.
const SampleCount = 4

type sampleState struct {
	name string
	x, y float64
}

type sample struct {
	description string
	states      []sampleState
	initial     string
	finals      []string
	joins       [][3]string // from, to, symbol
}

var samples = []sample{
	{
		description: "binary words with an odd number of 1s",
		states:      []sampleState{{"a", 200, 300}, {"b", 500, 300}},
		initial:     "a",
		finals:      []string{"b"},
		joins: [][3]string{
			{"a", "a", "0"}, {"a", "b", "1"},
			{"b", "a", "1"}, {"b", "b", "0"},
		},
	},
	{
		description: "a non-empty even run of b, optionally followed by a and anything",
		states: []sampleState{
			{"q", 100, 300}, {"r", 100, 500}, {"s", 300, 300}, {"t", 500, 300}, {"u", 700, 300},
		},
		initial: "q",
		finals:  []string{"t", "u"},
		joins: [][3]string{
			{"q", "r", "a"}, {"q", "s", "b"},
			{"r", "r", "a"}, {"r", "r", "b"},
			{"s", "r", "a"}, {"s", "t", "b"},
			{"t", "u", "a"}, {"t", "s", "b"},
			{"u", "u", "a"}, {"u", "u", "b"},
		},
	},
	{
		description: "ten-state machine over {a,b,c}",
		states: []sampleState{
			{"0", 100, 200}, {"1", 250, 200}, {"2", 400, 200}, {"3", 550, 200}, {"4", 700, 200},
			{"5", 100, 500}, {"6", 250, 500}, {"7", 400, 450}, {"8", 550, 500}, {"9", 700, 500},
		},
		initial: "0",
		finals:  []string{"4", "8"},
		joins: [][3]string{
			{"0", "1", "a"}, {"0", "0", "b"}, {"0", "5", "c"},
			{"1", "0", "a"}, {"1", "0", "b"}, {"1", "2", "c"},
			{"2", "3", "a"}, {"2", "5", "b"}, {"2", "5", "c"},
			{"3", "3", "a"}, {"3", "3", "b"}, {"3", "4", "c"},
			{"4", "4", "a"}, {"4", "4", "b"}, {"4", "3", "c"},
			{"5", "6", "a"}, {"5", "5", "b"}, {"5", "0", "c"},
			{"6", "5", "a"}, {"6", "5", "b"}, {"6", "7", "c"},
			{"7", "8", "a"}, {"7", "0", "b"}, {"7", "0", "c"},
			{"8", "8", "a"}, {"8", "8", "b"}, {"8", "9", "c"},
			{"9", "9", "a"}, {"9", "9", "b"}, {"9", "8", "c"},
		},
	},
	{
		description: "single transition",
		states:      []sampleState{{"0", 200, 200}, {"1", 500, 500}},
		initial:     "0",
		finals:      []string{"1"},
		joins:       [][3]string{{"0", "1", "a"}},
	},
}

// Sample builds one of the built-in automata (1-based).
func Sample(n int, opts ...Option) (*Automaton, error) {
	if n < 1 || n > len(samples) {
		return nil, fmt.Errorf("sample %d: %w", n, ErrUnknownSample)
	}
	def := samples[n-1]
	a := New(opts...)
	for _, s := range def.states {
		a.CreateState(s.name, s.x, s.y)
	}
	a.SetInitialState(Name(def.initial))
	for _, f := range def.finals {
		a.SetFinalState(Name(f))
	}
	for _, j := range def.joins {
		a.Join(Name(j[0]), Name(j[1]), j[2])
	}
	return a, nil
}

// SampleDescription returns a one-line summary of sample n.
func SampleDescription(n int) string {
	if n < 1 || n > len(samples) {
		return ""
	}
	return samples[n-1].description
}
