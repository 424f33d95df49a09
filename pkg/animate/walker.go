// Package animate plays a word over an automaton as a timed sequence of
// highlight changes.
package animate

import (
	"time"

	"github.com/ha1tch/dfa-toolkit/pkg/automaton"
)

// Phase is the state of a walk.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFlickering
	PhaseTransitioning
	PhaseDone
	PhaseAborted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFlickering:
		return "flickering"
	case PhaseTransitioning:
		return "transitioning"
	case PhaseDone:
		return "done"
	case PhaseAborted:
		return "aborted"
	}
	return "unknown"
}

// Timing holds the delays of the highlight pattern.
type Timing struct {
	FlickerInterval time.Duration
	FlickerCount    int
	PulseHold       time.Duration
	PulseGap        time.Duration
	CompositeHold   time.Duration
}

// DefaultTiming returns the standard pattern: three 125ms flickers, state
// pulses of 100ms on and 50ms off, composite pulses of 100ms on and off.
func DefaultTiming() Timing {
	return Timing{
		FlickerInterval: 125 * time.Millisecond,
		FlickerCount:    3,
		PulseHold:       100 * time.Millisecond,
		PulseGap:        50 * time.Millisecond,
		CompositeHold:   100 * time.Millisecond,
	}
}

// Frame is one highlight change and how long it stays on screen.
type Frame struct {
	Element automaton.Element
	On      bool
	Hold    time.Duration
	Phase   Phase
	Step    int // symbols consumed when the frame is shown
}

// Walker generates the frames for one word, one at a time. Advancing past a
// symbol moves the automaton's current-state cursor; the walker never
// touches highlight flags itself.
type Walker struct {
	graph   *automaton.Automaton
	timing  Timing
	symbols []string

	phase    Phase
	queue    []Frame
	current  *automaton.State
	finished bool // final flicker queued
	result   automaton.WalkResult
}

// NewWalker prepares a walk of word over a.
func NewWalker(a *automaton.Automaton, word string, timing Timing) *Walker {
	return &Walker{
		graph:   a,
		timing:  timing,
		symbols: automaton.Symbols(word),
	}
}

// Phase returns the phase of the last frame handed out, or the terminal
// phase once Next has returned false.
func (w *Walker) Phase() Phase { return w.phase }

// Result returns the walk so far. Outcome is only meaningful once Next has
// returned false.
func (w *Walker) Result() automaton.WalkResult { return w.result }

// Next returns the next frame, or false when the walk is over.
func (w *Walker) Next() (Frame, bool) {
	for len(w.queue) == 0 {
		if !w.advance() {
			return Frame{}, false
		}
	}
	f := w.queue[0]
	w.queue = w.queue[1:]
	w.phase = f.Phase
	return f, true
}

// advance queues the frames of the next stage. It returns false once the
// walk has ended.
func (w *Walker) advance() bool {
	switch {
	case w.phase == PhaseDone || w.phase == PhaseAborted:
		return false

	case w.phase == PhaseIdle:
		start := w.graph.Initial()
		if start == nil {
			w.result.Outcome = automaton.OutcomeNoInitialState
			w.phase = PhaseAborted
			return false
		}
		w.current = start
		w.graph.SetCurrent(start)
		w.result.Path = append(w.result.Path, start)
		w.flicker(start)
		w.pulse(start)
		return true

	case w.result.Consumed < len(w.symbols):
		sym := w.symbols[w.result.Consumed]
		next := w.graph.StepState(w.current.Transition(sym))
		if next == nil {
			w.result.Outcome = automaton.OutcomeNoTransition
			w.result.Symbol = sym
			w.phase = PhaseAborted
			return false
		}
		from := w.current
		w.current = next
		w.graph.SetCurrent(next)
		w.result.Path = append(w.result.Path, next)
		w.result.Consumed++
		if c := w.graph.FindUnionComposite(from, next); c != nil {
			w.pulseComposite(c)
		}
		w.pulse(next)
		return true

	case !w.finished:
		w.finished = true
		w.flicker(w.current)
		return true
	}

	if w.current.IsFinal() {
		w.result.Outcome = automaton.OutcomeAccepted
	} else {
		w.result.Outcome = automaton.OutcomeRejected
	}
	w.phase = PhaseDone
	return false
}

func (w *Walker) push(e automaton.Element, on bool, hold time.Duration, p Phase) {
	w.queue = append(w.queue, Frame{Element: e, On: on, Hold: hold, Phase: p, Step: w.result.Consumed})
}

func (w *Walker) flicker(s *automaton.State) {
	for range w.timing.FlickerCount {
		w.push(s, true, w.timing.FlickerInterval, PhaseFlickering)
		w.push(s, false, w.timing.FlickerInterval, PhaseFlickering)
	}
}

func (w *Walker) pulse(s *automaton.State) {
	w.push(s, true, w.timing.PulseHold, PhaseTransitioning)
	w.push(s, false, w.timing.PulseGap, PhaseTransitioning)
}

func (w *Walker) pulseComposite(c *automaton.Composite) {
	w.push(c, true, w.timing.CompositeHold, PhaseTransitioning)
	w.push(c, false, w.timing.CompositeHold, PhaseTransitioning)
}
