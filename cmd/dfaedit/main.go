// Command dfaedit is a terminal editor for deterministic finite automata.
// States are drawn on a character canvas and edited with the mouse; words
// are simulated with the same timed highlighting as the graphical editor.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/ha1tch/dfa-toolkit/pkg/automaton"
	"github.com/ha1tch/dfa-toolkit/pkg/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		sample     int
	)
	cmd := &cobra.Command{
		Use:           "dfaedit",
		Short:         "Edit and simulate a DFA in the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("sample") {
				cfg.Editor.Sample = sample
			}

			// The screen owns the terminal, so logs only go to a file.
			logger, closer, err := cfg.Log.OpenLogger(io.Discard)
			if err != nil {
				return err
			}
			defer closer.Close()

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("creating screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initialising screen: %w", err)
			}
			defer screen.Fini()
			screen.EnableMouse()
			screen.Clear()

			ed, err := newEditor(screen, cfg, logger)
			if err != nil {
				return err
			}
			ed.run()
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", config.Path(), "config file")
	cmd.Flags().IntVar(&sample, "sample", 1, "sample automaton to load, 0 for an empty canvas")
	return cmd
}

// loadSample builds sample n, or an empty automaton for 0.
func loadSample(n int, logger *slog.Logger) (*automaton.Automaton, error) {
	if n == 0 {
		return automaton.New(automaton.WithLogger(logger)), nil
	}
	return automaton.Sample(n, automaton.WithLogger(logger))
}
