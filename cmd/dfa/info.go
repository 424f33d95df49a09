package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/dfa-toolkit/pkg/automaton"
)

func newInfoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the automaton's structure and any warnings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := a.build.build(automaton.WithLogger(a.logger))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			var names, finals []string
			transitions := 0
			for _, s := range g.States() {
				names = append(names, s.Name())
				transitions += len(s.Transitions())
				if s.IsFinal() {
					finals = append(finals, s.Name())
				}
			}
			initial := "(none)"
			if s := g.Initial(); s != nil {
				initial = s.Name()
			}

			fmt.Fprintf(out, "States:      %d\n", len(names))
			fmt.Fprintf(out, "Inputs:      %d\n", len(g.Alphabet()))
			fmt.Fprintf(out, "Transitions: %d\n", transitions)
			fmt.Fprintf(out, "Initial:     %s\n", initial)
			if len(finals) > 0 {
				fmt.Fprintf(out, "Accepting:   %v\n", finals)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "States:      %v\n", names)
			fmt.Fprintf(out, "Alphabet:    %v\n", g.Alphabet())
			for _, c := range g.UnionComposites() {
				if c.IsInitialMarker() {
					continue
				}
				fmt.Fprintf(out, "  %s -> %s: %s\n", c.From().Name(), c.To().Name(), c.Label())
			}

			warnings := g.Analyse()
			if len(warnings) == 0 {
				return nil
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Warnings:")
			for _, w := range warnings {
				fmt.Fprintf(out, "  [%s] %s\n", w.Type, w.Message)
			}
			return nil
		},
	}
	addBuildFlags(cmd, &a.build)
	return cmd
}

func newSamplesCmd(*app) *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "List the built-in sample automata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for n := 1; n <= automaton.SampleCount; n++ {
				g, err := automaton.Sample(n)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d  %-2d states  %-10s %s\n", n, len(g.States()),
					"{"+strings.Join(g.Alphabet(), ",")+"}", automaton.SampleDescription(n))
			}
			return nil
		},
	}
}
