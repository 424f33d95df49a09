package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/dfa-toolkit/pkg/geometry"
)

// Styles
var (
	styleDefault    = tcell.StyleDefault
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo    = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleMsgSuccess = tcell.StyleDefault.Foreground(tcell.ColorLime).Background(tcell.ColorNavy)
	styleMsgWarning = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorNavy)
	styleHelp       = tcell.StyleDefault.Foreground(tcell.ColorGray) // Help bar on default background
	styleCursor     = tcell.StyleDefault.Background(tcell.ColorDarkGray)
	styleInput      = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
)

// flashPhase is the length of one normal or inverted period of a flashing
// status message.
const flashPhase = 125 * time.Millisecond

func (ed *Editor) draw() {
	ed.screen.Clear()
	w, h := ed.screen.Size()

	// Bottom two rows hold the help and status bars.
	ed.surface.width, ed.surface.height = w, max(h-2, 0)
	if skipped := ed.graph.Draw(ed.surface); skipped > 0 {
		ed.logger.Debug("transitions not drawn", "count", skipped)
	}

	if ed.mode == ModeLabel {
		ed.drawLabelInput()
	}
	ed.drawHelpBar(w, h)
	ed.drawStatusBar(w, h)
}

// drawLabelInput shows the text being typed where the label will appear.
func (ed *Editor) drawLabelInput() {
	edit, ok := ed.ctl.Editing()
	if !ok {
		return
	}
	text := string(ed.input)
	n := ed.surface.textCells(text, geometry.LabelFont)
	x, y := ed.surface.cell(edit.At)
	x -= n / 2
	ed.drawString(x, y, text, styleInput)
	ed.screen.SetContent(x+n, y, ' ', nil, styleCursor)
}

func (ed *Editor) drawHelpBar(w, h int) {
	if h < 2 {
		return
	}
	help := ed.helpString()
	if len(help) > w {
		help = help[:w]
	}
	ed.drawString(0, h-2, help, styleHelp)
}

func (ed *Editor) helpString() string {
	switch ed.mode {
	case ModeLabel:
		return "Enter:apply  Esc:cancel  Del:delete  (transitions: a,b,c)"
	case ModePrompt:
		return "Enter:simulate  Esc:cancel"
	case ModeSimulate:
		return "Esc:stop"
	}
	return "dbl-click:new/initial  shift-drag:transition  ctrl-click:final  s:simulate  a:analyse  0-4:sample  c:clear  q:quit"
}

func (ed *Editor) drawStatusBar(w, h int) {
	y := h - 1
	if y < 0 {
		return
	}

	// Background
	for x := 0; x < w; x++ {
		ed.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	info := fmt.Sprintf("DFA  %d states", len(ed.graph.States()))
	if s := ed.graph.Initial(); s != nil {
		info += fmt.Sprintf("  start %s", s.Name())
	}
	ed.drawString(1, y, info, styleStatus)

	if ed.mode == ModePrompt {
		prompt := "Word: " + string(ed.input)
		ed.drawString(w/2-len(prompt)/2, y, prompt, styleInput)
		ed.screen.SetContent(w/2-len(prompt)/2+len([]rune(prompt)), y, ' ', nil, styleCursor)
	} else {
		modeStr := ed.modeString()
		ed.drawString(w/2-len(modeStr)/2, y, modeStr, styleStatus)
	}

	// Message
	if ed.message != "" {
		style := styleMsgInfo
		switch ed.messageType {
		case MsgError:
			style = styleMsgError
		case MsgSuccess:
			style = styleMsgSuccess
		case MsgWarning:
			style = styleMsgWarning
		}
		elapsed := ed.now().Sub(ed.messageFlashStart).Milliseconds()
		if shouldFlashForType(ed.messageType) && shouldBeInverted(elapsed) {
			style = style.Reverse(true)
		}
		msg := ed.message
		if len(msg) > w/2-2 && w > 8 {
			msg = msg[:w/2-5] + "..."
		}
		ed.drawString(w-len([]rune(msg))-1, y, msg, style)
	}
}

func (ed *Editor) drawString(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		ed.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (ed *Editor) modeString() string {
	switch ed.mode {
	case ModeLabel:
		return "LABEL"
	case ModePrompt:
		return "WORD"
	case ModeSimulate:
		return "SIMULATING " + fmt.Sprintf("%q", ed.word)
	default:
		return "" // No label for normal canvas mode
	}
}

// shouldBeInverted reports whether a flashing message is shown reversed
// elapsed milliseconds after it appeared: two inverted phases, then steady.
func shouldBeInverted(elapsed int64) bool {
	phase := flashPhase.Milliseconds()
	if elapsed < 0 || elapsed >= 4*phase {
		return false
	}
	n := elapsed / phase
	return n == 1 || n == 3
}

// shouldFlashForType reports whether messages of type t flash.
func shouldFlashForType(t MessageType) bool {
	return t != MsgInfo
}
