package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ha1tch/dfa-toolkit/pkg/automaton"
	"github.com/ha1tch/dfa-toolkit/pkg/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		output        string
		width, height int
		seed          uint64
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the automaton to a PNG image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := []automaton.Option{automaton.WithLogger(a.logger)}
			if seed != 0 {
				opts = append(opts, automaton.WithSeed(seed))
			}
			g, err := a.build.build(opts...)
			if err != nil {
				return err
			}

			ropts := render.Options{
				Width:       a.cfg.Canvas.Width,
				Height:      a.cfg.Canvas.Height,
				Supersample: a.cfg.Canvas.Supersample,
			}
			if width > 0 {
				ropts.Width = width
			}
			if height > 0 {
				ropts.Height = height
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := render.PNG(g, f, ropts, a.logger); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d)\n", output, ropts.Width, ropts.Height)
			return nil
		},
	}
	addBuildFlags(cmd, &a.build)
	cmd.Flags().StringVarP(&output, "output", "o", "automaton.png", "output file")
	cmd.Flags().IntVar(&width, "width", 0, "image width (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "image height (default from config)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for arrow curvature, 0 for random")
	return cmd
}
