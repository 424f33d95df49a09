package animate

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ha1tch/dfa-toolkit/pkg/automaton"
	"github.com/ha1tch/dfa-toolkit/pkg/metrics"
)

// ErrBusy is returned by Run while another run is in flight.
var ErrBusy = errors.New("animate: simulation already running")

// Result summarises one run.
type Result struct {
	RunID    string
	Walk     automaton.WalkResult
	Frames   int
	Duration time.Duration
}

// Sequencer applies a Walker's frames to the automaton's highlight flags,
// waiting between them. It refuses to run twice at once.
type Sequencer struct {
	graph   *automaton.Automaton
	timing  Timing
	clock   Clock
	redraw  func()
	logger  *slog.Logger
	metrics *metrics.Metrics

	running atomic.Bool
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithTiming overrides DefaultTiming.
func WithTiming(t Timing) Option {
	return func(s *Sequencer) { s.timing = t }
}

// WithClock replaces the timer-based clock.
func WithClock(c Clock) Option {
	return func(s *Sequencer) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithRedraw sets the hook called after every highlight change.
func WithRedraw(fn func()) Option {
	return func(s *Sequencer) { s.redraw = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sequencer) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records every run in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Sequencer) { s.metrics = m }
}

// New creates a sequencer over a.
func New(a *automaton.Automaton, opts ...Option) *Sequencer {
	s := &Sequencer{
		graph:  a,
		timing: DefaultTiming(),
		clock:  RealClock{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Running reports whether a run is in flight.
func (s *Sequencer) Running() bool { return s.running.Load() }

// Run walks word from the initial state. A missing initial state or a
// missing transition ends the run early with a nil error; the outcome says
// which. Cancelling ctx clears the highlight in flight and returns
// ctx.Err().
func (s *Sequencer) Run(ctx context.Context, word string) (Result, error) {
	if !s.running.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer s.running.Store(false)

	res := Result{RunID: uuid.NewString()}
	log := s.logger.With("run", res.RunID)
	log.Debug("simulation started", "word", word)
	s.metrics.RunStarted()
	start := time.Now()

	w := NewWalker(s.graph, word, s.timing)
	var (
		err error
		lit automaton.Element // switched on, off frame not yet applied
	)
	for {
		if err = ctx.Err(); err != nil {
			break
		}
		f, ok := w.Next()
		if !ok {
			break
		}
		res.Frames++
		f.Element.SetHighlight(f.On)
		switch {
		case f.On:
			lit = f.Element
		case f.Element == lit:
			lit = nil
		}
		s.draw()
		if err = s.clock.Sleep(ctx, f.Hold); err != nil {
			break
		}
	}
	if err != nil && lit != nil {
		lit.SetHighlight(false)
		s.draw()
	}

	res.Walk = w.Result()
	res.Duration = time.Since(start)
	if err != nil {
		res.Walk.Outcome = automaton.OutcomeCancelled
	}
	s.metrics.RunFinished(res.Walk.Outcome.String(), res.Walk.Consumed, res.Duration)

	switch res.Walk.Outcome {
	case automaton.OutcomeNoInitialState:
		log.Info("simulation aborted: no initial state")
	case automaton.OutcomeNoTransition:
		log.Warn("simulation aborted: no transition",
			"state", res.Walk.Last().Name(), "symbol", res.Walk.Symbol, "consumed", res.Walk.Consumed)
	case automaton.OutcomeCancelled:
		log.Info("simulation cancelled", "consumed", res.Walk.Consumed, "error", err)
	default:
		log.Debug("simulation finished", "outcome", res.Walk.Outcome, "consumed", res.Walk.Consumed,
			"frames", res.Frames, "duration", res.Duration)
	}
	return res, err
}

func (s *Sequencer) draw() {
	if s.redraw != nil {
		s.redraw()
	}
}
