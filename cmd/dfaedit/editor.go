package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/dfa-toolkit/pkg/animate"
	"github.com/ha1tch/dfa-toolkit/pkg/automaton"
	"github.com/ha1tch/dfa-toolkit/pkg/config"
	"github.com/ha1tch/dfa-toolkit/pkg/interact"
)

// Mode represents the current editor mode
type Mode int

const (
	ModeCanvas   Mode = iota
	ModeLabel         // typing into a state or transition label
	ModePrompt        // typing the word to simulate
	ModeSimulate      // a word is being animated
)

// MessageType determines how status messages are displayed
type MessageType int

const (
	MsgInfo MessageType = iota
	MsgError
	MsgSuccess
	MsgWarning
)

const doubleClickInterval = 400 * time.Millisecond

// tick is the interrupt payload that advances a simulation. Ticks from a
// cancelled simulation carry an old generation and are dropped.
type tick struct{ gen int }

// Editor holds the terminal editor state. Everything is touched only from
// the event loop; timers communicate through screen interrupts.
type Editor struct {
	screen  tcell.Screen
	cfg     config.Config
	logger  *slog.Logger
	graph   *automaton.Automaton
	ctl     *interact.Controller
	surface *cellSurface

	mode  Mode
	input []rune // label or word being typed

	message           string
	messageType       MessageType
	messageFlashStart time.Time

	walker *animate.Walker
	word   string
	gen    int

	// schedule arranges for tick{gen} to arrive after d.
	schedule func(d time.Duration, gen int)
	now      func() time.Time

	pressed   bool
	lastClick time.Time
	clickX    int
	clickY    int
}

func newEditor(screen tcell.Screen, cfg config.Config, logger *slog.Logger) (*Editor, error) {
	graph, err := loadSample(cfg.Editor.Sample, logger)
	if err != nil {
		return nil, err
	}
	w, h := screen.Size()
	surface := &cellSurface{
		screen: screen,
		cellW:  cfg.Canvas.CellWidth,
		cellH:  cfg.Canvas.CellHeight,
		width:  w,
		height: max(h-2, 0),
	}
	ed := &Editor{
		screen:  screen,
		cfg:     cfg,
		logger:  logger,
		surface: surface,
		now:     time.Now,
	}
	ed.schedule = func(d time.Duration, gen int) {
		time.AfterFunc(d, func() {
			screen.PostEvent(tcell.NewEventInterrupt(tick{gen}))
		})
	}
	ed.setAutomaton(graph)
	return ed, nil
}

func (ed *Editor) setAutomaton(a *automaton.Automaton) {
	ed.graph = a
	ed.ctl = interact.New(a, interact.WithLogger(ed.logger))
	ed.mode = ModeCanvas
	ed.input = nil
}

func (ed *Editor) run() {
	for {
		ed.draw()
		ed.screen.Show()

		ev := ed.screen.PollEvent()
		if ev == nil {
			return
		}
		if ed.handleEvent(ev) {
			return
		}
	}
}

// handleEvent applies one event and reports whether the editor should quit.
func (ed *Editor) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		ed.screen.Sync()
	case *tcell.EventKey:
		return ed.handleKey(ev)
	case *tcell.EventMouse:
		ed.handleMouse(ev)
	case *tcell.EventInterrupt:
		if t, ok := ev.Data().(tick); ok && t.gen == ed.gen && ed.mode == ModeSimulate {
			ed.step()
		}
	}
	return false
}

func (ed *Editor) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}

	switch ed.mode {
	case ModeSimulate:
		if ev.Key() == tcell.KeyEscape {
			ed.stopSimulation()
			ed.showMessage("Simulation cancelled", MsgWarning)
		}
		return false

	case ModeLabel:
		switch ev.Key() {
		case tcell.KeyEnter:
			ed.commitLabel()
		case tcell.KeyEscape:
			ed.ctl.CancelEdit()
			ed.mode = ModeCanvas
		case tcell.KeyDelete:
			if ed.ctl.DeleteSelection() {
				ed.showMessage("Deleted", MsgSuccess)
			}
			ed.mode = ModeCanvas
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			ed.backspace()
		case tcell.KeyRune:
			ed.input = append(ed.input, ev.Rune())
		}
		return false

	case ModePrompt:
		switch ev.Key() {
		case tcell.KeyEnter:
			ed.startSimulation(string(ed.input))
		case tcell.KeyEscape:
			ed.mode = ModeCanvas
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			ed.backspace()
		case tcell.KeyRune:
			ed.input = append(ed.input, ev.Rune())
		}
		return false
	}

	if ev.Key() != tcell.KeyRune {
		return false
	}
	switch r := ev.Rune(); r {
	case 'q':
		return true
	case 's':
		ed.mode = ModePrompt
		ed.input = nil
	case 'c':
		ed.graph.Clear()
		ed.showMessage("Canvas cleared", MsgInfo)
	case 'a':
		ed.analyse()
	case '0', '1', '2', '3', '4':
		n := int(r - '0')
		a, err := loadSample(n, ed.logger)
		if err != nil {
			ed.showMessage(err.Error(), MsgError)
			return false
		}
		ed.setAutomaton(a)
		if n == 0 {
			ed.showMessage("Empty canvas", MsgInfo)
		} else {
			ed.showMessage(fmt.Sprintf("Sample %d: %s", n, automaton.SampleDescription(n)), MsgInfo)
		}
	}
	return false
}

func (ed *Editor) backspace() {
	if len(ed.input) > 0 {
		ed.input = ed.input[:len(ed.input)-1]
	}
}

func (ed *Editor) commitLabel() {
	ed.ctl.CommitText(string(ed.input))
	ed.mode = ModeCanvas
	ed.input = nil
}

// pointer converts a cell to the canvas point at its centre.
func (ed *Editor) pointer(x, y int, mod tcell.ModMask) interact.Pointer {
	p := ed.surface.centre(x, y)
	return interact.Pointer{
		X:     p.X,
		Y:     p.Y,
		Shift: mod&tcell.ModShift != 0,
		Ctrl:  mod&tcell.ModCtrl != 0,
	}
}

// handleMouse turns tcell's button state into press, drag and release
// events, detecting double clicks on the same cell.
func (ed *Editor) handleMouse(ev *tcell.EventMouse) {
	if ed.mode == ModeSimulate || ed.mode == ModePrompt {
		return
	}
	x, y := ev.Position()
	down := ev.Buttons()&tcell.Button1 != 0
	p := ed.pointer(x, y, ev.Modifiers())

	switch {
	case down && !ed.pressed:
		ed.pressed = true
		now := ed.now()
		double := now.Sub(ed.lastClick) < doubleClickInterval && x == ed.clickX && y == ed.clickY
		ed.lastClick, ed.clickX, ed.clickY = now, x, y
		if double {
			ed.lastClick = time.Time{}
			ed.mode = ModeCanvas
			ed.ctl.DoubleClick(p)
			ed.syncEdit()
			return
		}
		if ed.mode == ModeLabel {
			ed.commitLabel()
		}
		ed.ctl.PointerDown(p)

	case down:
		ed.ctl.PointerMove(p)

	case ed.pressed:
		ed.pressed = false
		ed.ctl.PointerUp(p)
		ed.syncEdit()
	}
}

// syncEdit switches to label mode when the controller opened an edit.
func (ed *Editor) syncEdit() {
	edit, ok := ed.ctl.Editing()
	if !ok {
		ed.mode = ModeCanvas
		return
	}
	if ed.mode != ModeLabel {
		ed.input = []rune(edit.Text)
	}
	ed.mode = ModeLabel
}

func (ed *Editor) analyse() {
	warnings := ed.graph.Analyse()
	if len(warnings) == 0 {
		ed.showMessage("No warnings", MsgSuccess)
		return
	}
	for _, w := range warnings {
		ed.logger.Info("analysis", "type", w.Type, "state", w.State, "message", w.Message)
	}
	msg := warnings[0].Message
	if len(warnings) > 1 {
		msg = fmt.Sprintf("%s (+%d more)", msg, len(warnings)-1)
	}
	ed.showMessage(msg, MsgWarning)
}

// startSimulation begins animating word. Frames are applied one at a time
// as ticks arrive, so editing stays blocked until the walk ends.
func (ed *Editor) startSimulation(word string) {
	ed.ctl.CancelEdit()
	ed.input = nil
	ed.word = word
	ed.walker = animate.NewWalker(ed.graph, word, ed.cfg.Animation.Timing())
	ed.mode = ModeSimulate
	ed.gen++
	ed.logger.Debug("simulation started", "word", word)
	ed.step()
}

// step applies the next frame and schedules the one after it.
func (ed *Editor) step() {
	f, ok := ed.walker.Next()
	if !ok {
		ed.finishSimulation()
		return
	}
	f.Element.SetHighlight(f.On)
	ed.schedule(f.Hold, ed.gen)
}

func (ed *Editor) finishSimulation() {
	res := ed.walker.Result()
	ed.stopSimulation()
	ed.logger.Info("simulation finished", "word", ed.word, "outcome", res.Outcome.String(), "consumed", res.Consumed)

	switch res.Outcome {
	case automaton.OutcomeAccepted:
		ed.showMessage(fmt.Sprintf("%q accepted", ed.word), MsgSuccess)
	case automaton.OutcomeRejected:
		ed.showMessage(fmt.Sprintf("%q rejected", ed.word), MsgError)
	case automaton.OutcomeNoInitialState:
		ed.showMessage("No initial state", MsgError)
	case automaton.OutcomeNoTransition:
		ed.showMessage(fmt.Sprintf("No transition on %q", res.Symbol), MsgError)
	}
}

// stopSimulation clears highlights and drops any pending tick.
func (ed *Editor) stopSimulation() {
	for _, e := range ed.graph.Elements() {
		e.SetHighlight(false)
	}
	ed.gen++
	ed.walker = nil
	ed.mode = ModeCanvas
}

func (ed *Editor) showMessage(msg string, msgType MessageType) {
	ed.message = msg
	ed.messageType = msgType
	ed.messageFlashStart = ed.now()
	if !shouldFlashForType(msgType) || ed.screen == nil {
		return
	}
	// Redraw at each flash phase boundary.
	screen := ed.screen
	for i := 1; i <= 4; i++ {
		time.AfterFunc(time.Duration(i)*flashPhase, func() {
			screen.PostEvent(tcell.NewEventInterrupt(nil))
		})
	}
}
