// Command dfa builds, simulates and renders deterministic finite automata.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ha1tch/dfa-toolkit/pkg/config"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg       config.Config
	logger    *slog.Logger
	logCloser io.Closer

	build buildFlags
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "dfa",
		Short: "Deterministic finite automaton toolkit",
		Long: `dfa builds an automaton from a sample or from flags, then simulates
words over it, renders it to PNG, or reports on its structure.

Examples:
  dfa samples
  dfa run --sample 1 101 0110
  dfa run --state p --state q --initial p --final q --join 'p->q:a' a
  dfa render --sample 3 -o sample3.png
  dfa info --sample 2`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.logCloser != nil {
				return a.logCloser.Close()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.Path(), "config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		newRunCmd(a),
		newShellCmd(a),
		newRenderCmd(a),
		newInfoCmd(a),
		newSamplesCmd(a),
	)
	return root
}

func (a *app) setup(stderr io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	logger, closer, err := cfg.Log.OpenLogger(stderr)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.logCloser = closer
	return nil
}
