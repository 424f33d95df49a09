package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/ha1tch/dfa-toolkit/pkg/animate"
	"github.com/ha1tch/dfa-toolkit/pkg/automaton"
	"github.com/ha1tch/dfa-toolkit/pkg/metrics"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		animated    bool
		showMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "run WORD...",
		Short: "Simulate words and report acceptance",
		Long: `Simulate each WORD from the initial state. Every character is one
symbol. With --animate the highlight sequence is played out in real time
and traced to stdout; Ctrl-C stops it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, words []string) error {
			g, err := a.build.build(automaton.WithLogger(a.logger))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			reg := prometheus.NewRegistry()
			m := metrics.New(reg)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if animated {
				err = runAnimated(ctx, a, g, m, words, out)
			} else {
				runWords(g, m, words, out)
			}
			if showMetrics {
				if merr := writeMetrics(reg, out); merr != nil && err == nil {
					err = merr
				}
			}
			return err
		},
	}
	addBuildFlags(cmd, &a.build)
	cmd.Flags().BoolVar(&animated, "animate", false, "play the highlight sequence in real time")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print Prometheus metrics after the run")
	return cmd
}

func runWords(g *automaton.Automaton, m *metrics.Metrics, words []string, out io.Writer) {
	for _, word := range words {
		m.RunStarted()
		res := g.Walk(word)
		m.RunFinished(res.Outcome.String(), res.Consumed, 0)
		printWalk(out, word, res)
	}
}

func runAnimated(ctx context.Context, a *app, g *automaton.Automaton, m *metrics.Metrics, words []string, out io.Writer) error {
	trace := &tracer{graph: g, out: out}
	seq := animate.New(g,
		animate.WithTiming(a.cfg.Animation.Timing()),
		animate.WithLogger(a.logger),
		animate.WithMetrics(m),
		animate.WithRedraw(trace.redraw),
	)
	for _, word := range words {
		res, err := seq.Run(ctx, word)
		if err != nil {
			printWalk(out, word, res.Walk)
			return fmt.Errorf("run %s: %w", res.RunID, err)
		}
		printWalk(out, word, res.Walk)
	}
	return nil
}

// tracer prints the highlighted elements whenever they change.
type tracer struct {
	graph *automaton.Automaton
	out   io.Writer
	last  string
}

func (t *tracer) redraw() {
	var lit []string
	for _, s := range t.graph.States() {
		if s.Highlighted() {
			lit = append(lit, s.Name())
		}
	}
	for _, c := range t.graph.UnionComposites() {
		if c.Highlighted() && !c.IsInitialMarker() {
			lit = append(lit, fmt.Sprintf("%s->%s", c.From().Name(), c.To().Name()))
		}
	}
	line := strings.Join(lit, " ")
	if line == t.last || line == "" {
		t.last = line
		return
	}
	t.last = line
	fmt.Fprintf(t.out, "  * %s\n", line)
}

func printWalk(out io.Writer, word string, res automaton.WalkResult) {
	names := make([]string, len(res.Path))
	for i, s := range res.Path {
		names[i] = s.Name()
	}
	path := strings.Join(names, " -> ")
	switch res.Outcome {
	case automaton.OutcomeNoInitialState:
		fmt.Fprintf(out, "%q: no initial state\n", word)
	case automaton.OutcomeNoTransition:
		fmt.Fprintf(out, "%q: stuck at %s on %q after %d symbols (%s)\n",
			word, res.Last().Name(), res.Symbol, res.Consumed, path)
	default:
		fmt.Fprintf(out, "%q: %s (%s)\n", word, res.Outcome, path)
	}
}

func writeMetrics(reg *prometheus.Registry, out io.Writer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func newShellCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Step through the automaton one symbol at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := a.build.build(automaton.WithLogger(a.logger))
			if err != nil {
				return err
			}
			return shell(g, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	addBuildFlags(cmd, &a.build)
	return cmd
}

// shell reads symbols and commands from in until EOF or quit.
func shell(g *automaton.Automaton, in io.Reader, out io.Writer) error {
	if g.Initial() == nil {
		return fmt.Errorf("no initial state")
	}
	g.Reset()
	var history []string

	fmt.Fprintln(out, "Commands: <symbols>, reset, status, history, inputs, quit")
	printStatus(out, g)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit", "q":
			return nil
		case "reset":
			g.Reset()
			history = history[:0]
			fmt.Fprintln(out, "Reset to initial state")
			printStatus(out, g)
		case "status":
			printStatus(out, g)
		case "history":
			if len(history) == 0 {
				fmt.Fprintln(out, "No history")
			}
			for i, h := range history {
				fmt.Fprintf(out, "  %d. %s\n", i+1, h)
			}
		case "inputs":
			if inputs := g.Inputs(); len(inputs) == 0 {
				fmt.Fprintln(out, "No inputs available from current state")
			} else {
				fmt.Fprintf(out, "Available inputs: %v\n", inputs)
			}
		default:
			for _, sym := range automaton.Symbols(line) {
				from := g.Current()
				to, ok := g.Step(sym)
				if !ok {
					fmt.Fprintf(out, "No transition from %s on %q\n", from.Name(), sym)
					break
				}
				history = append(history, fmt.Sprintf("%s --%s--> %s", from.Name(), sym, to.Name()))
			}
			printStatus(out, g)
		}
	}
}

func printStatus(out io.Writer, g *automaton.Automaton) {
	s := g.Current()
	mark := ""
	if s.IsFinal() {
		mark = " (accepting)"
	}
	fmt.Fprintf(out, "Current state: %s%s\n", s.Name(), mark)
}
