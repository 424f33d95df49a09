package render

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ha1tch/dfa-toolkit/pkg/automaton"
	"github.com/ha1tch/dfa-toolkit/pkg/geometry"
)

// Options configures PNG rendering.
type Options struct {
	Width       int
	Height      int
	Supersample int
}

// DefaultOptions returns an 800x600 canvas with 4x supersampling.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, Supersample: 4}
}

// Frame clears s and draws a. It returns the number of composites that
// could not be laid out.
func Frame(s geometry.Surface, a *automaton.Automaton, width, height int) int {
	s.Clear(geometry.Rect{W: float64(width), H: float64(height)})
	return a.Draw(s)
}

// PNG draws a and writes it to w as PNG.
func PNG(a *automaton.Automaton, w io.Writer, opts Options, logger *slog.Logger) error {
	c, err := NewCanvas(opts.Width, opts.Height, opts.Supersample)
	if err != nil {
		return err
	}
	if skipped := Frame(c, a, opts.Width, opts.Height); skipped > 0 && logger != nil {
		logger.Warn("some transitions could not be drawn", "skipped", skipped)
	}
	if err := c.EncodePNG(w); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
