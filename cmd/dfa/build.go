package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/dfa-toolkit/pkg/automaton"
	"github.com/ha1tch/dfa-toolkit/pkg/interact"
)

// Layout of states given without a position.
const (
	rowStartX  = 150.0
	rowSpacing = 200.0
	rowY       = 300.0
)

// buildFlags describe the automaton a command works on.
type buildFlags struct {
	sample  int
	states  []string
	initial string
	finals  []string
	joins   []string
}

func addBuildFlags(cmd *cobra.Command, f *buildFlags) {
	cmd.Flags().IntVar(&f.sample, "sample", 0, "start from built-in sample N (see 'dfa samples')")
	cmd.Flags().StringArrayVar(&f.states, "state", nil, "add a state: NAME or NAME@X,Y (repeatable)")
	cmd.Flags().StringVar(&f.initial, "initial", "", "initial state")
	cmd.Flags().StringArrayVar(&f.finals, "final", nil, "toggle a final state (repeatable)")
	cmd.Flags().StringArrayVar(&f.joins, "join", nil, "add transitions: FROM->TO:SYM[,SYM...] (repeatable)")
}

// build creates the automaton described by f.
func (f buildFlags) build(opts ...automaton.Option) (*automaton.Automaton, error) {
	var a *automaton.Automaton
	if f.sample != 0 {
		var err error
		if a, err = automaton.Sample(f.sample, opts...); err != nil {
			return nil, err
		}
	} else {
		a = automaton.New(opts...)
	}

	for i, arg := range f.states {
		name, x, y, err := parseState(arg, i)
		if err != nil {
			return nil, err
		}
		a.CreateState(name, x, y)
	}
	if f.initial != "" && !a.SetInitialState(automaton.Name(f.initial)) {
		return nil, fmt.Errorf("initial state %q not found", f.initial)
	}
	for _, name := range f.finals {
		if !a.SetFinalState(automaton.Name(name)) {
			return nil, fmt.Errorf("final state %q not found", name)
		}
	}
	for _, arg := range f.joins {
		from, to, symbols, err := parseJoin(arg)
		if err != nil {
			return nil, err
		}
		for _, sym := range symbols {
			if !a.Join(automaton.Name(from), automaton.Name(to), sym) {
				return nil, fmt.Errorf("join %q: state not found", arg)
			}
		}
	}
	if len(a.States()) == 0 {
		return nil, errors.New("empty automaton: use --sample or --state")
	}
	return a, nil
}

// parseState reads NAME or NAME@X,Y. States without a position are laid
// out on a row by their index.
func parseState(arg string, index int) (string, float64, float64, error) {
	name, pos, found := strings.Cut(arg, "@")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, 0, fmt.Errorf("state %q: empty name", arg)
	}
	if !found {
		return name, rowStartX + float64(index)*rowSpacing, rowY, nil
	}
	xs, ys, ok := strings.Cut(pos, ",")
	if !ok {
		return "", 0, 0, fmt.Errorf("state %q: position must be X,Y", arg)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("state %q: %w", arg, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("state %q: %w", arg, err)
	}
	return name, x, y, nil
}

// parseJoin reads FROM->TO:SYM[,SYM...].
func parseJoin(arg string) (string, string, []string, error) {
	pair, syms, ok := strings.Cut(arg, ":")
	if !ok {
		return "", "", nil, fmt.Errorf("join %q: want FROM->TO:SYMBOLS", arg)
	}
	from, to, ok := strings.Cut(pair, "->")
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if !ok || from == "" || to == "" {
		return "", "", nil, fmt.Errorf("join %q: want FROM->TO:SYMBOLS", arg)
	}
	symbols := interact.SplitSymbols(syms)
	if len(symbols) == 0 {
		return "", "", nil, fmt.Errorf("join %q: no symbols", arg)
	}
	return from, to, symbols, nil
}
