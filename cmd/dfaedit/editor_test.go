package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/dfa-toolkit/pkg/automaton"
	"github.com/ha1tch/dfa-toolkit/pkg/config"
)

type testEditor struct {
	*Editor
	screen tcell.SimulationScreen
	clock  time.Time
	holds  []time.Duration
}

// newTestEditor opens sample n on a 100x40 simulated terminal. Ticks are
// recorded instead of scheduled; tests deliver them with tickAll.
func newTestEditor(t *testing.T, sample int) *testEditor {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(100, 40)
	t.Cleanup(screen.Fini)

	cfg := config.Default()
	cfg.Editor.Sample = sample
	ed, err := newEditor(screen, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	te := &testEditor{Editor: ed, screen: screen, clock: time.Unix(1000, 0)}
	ed.now = func() time.Time { return te.clock }
	ed.schedule = func(d time.Duration, _ int) { te.holds = append(te.holds, d) }
	return te
}

func (te *testEditor) later() { te.clock = te.clock.Add(time.Second) }

func (te *testEditor) key(k tcell.Key) bool {
	return te.handleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func (te *testEditor) typeText(s string) {
	for _, r := range s {
		te.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func (te *testEditor) press(x, y int, mod tcell.ModMask) {
	te.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, mod))
}

func (te *testEditor) move(x, y int, mod tcell.ModMask) {
	te.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, mod))
}

func (te *testEditor) release(x, y int) {
	te.handleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func (te *testEditor) click(x, y int) {
	te.press(x, y, tcell.ModNone)
	te.release(x, y)
}

// tickAll delivers ticks until the simulation ends.
func (te *testEditor) tickAll(t *testing.T) {
	t.Helper()
	for i := 0; te.mode == ModeSimulate; i++ {
		require.Less(t, i, 1000, "simulation did not finish")
		te.handleEvent(tcell.NewEventInterrupt(tick{te.gen}))
	}
}

func (te *testEditor) row(y int) string {
	te.draw()
	te.screen.Show()
	cells, w, _ := te.screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		if r := cells[y*w+x].Runes; len(r) > 0 {
			b.WriteRune(r[0])
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// Sample 4 places state 0 at (200,200) and state 1 at (500,500); with
// 8x16 cells those are cells (25,12) and (62,31).

func TestDrawShowsStatesAndStatus(t *testing.T) {
	te := newTestEditor(t, 4)

	assert.Equal(t, '0', []rune(te.row(12))[25])
	assert.Equal(t, '1', []rune(te.row(31))[62])
	assert.Contains(t, te.row(39), "DFA  2 states  start 0")
	assert.Contains(t, te.row(38), "s:simulate")
}

func TestSimulateAccepts(t *testing.T) {
	te := newTestEditor(t, 4)

	te.typeText("s")
	assert.Equal(t, ModePrompt, te.mode)
	te.typeText("a")
	assert.Contains(t, te.row(39), "Word: a")
	te.key(tcell.KeyEnter)
	assert.Equal(t, ModeSimulate, te.mode)

	// Mouse and edit keys are ignored while simulating.
	te.click(25, 12)
	te.typeText("c")
	assert.Len(t, te.graph.States(), 2)

	te.tickAll(t)
	assert.Equal(t, ModeCanvas, te.mode)
	assert.Equal(t, `"a" accepted`, te.message)
	assert.Equal(t, MsgSuccess, te.messageType)
	assert.Len(t, te.holds, 18)
	var total time.Duration
	for _, d := range te.holds {
		total += d
	}
	assert.Equal(t, 2*time.Second, total)
	for _, e := range te.graph.Elements() {
		assert.False(t, e.Highlighted())
	}
}

func TestSimulateOutcomes(t *testing.T) {
	tests := []struct {
		name   string
		sample int
		word   string
		want   string
	}{
		{"rejected", 4, "", `"" rejected`},
		{"no transition", 4, "b", `No transition on "b"`},
		{"no initial", 0, "a", "No initial state"},
		{"odd ones", 1, "0100", `"0100" accepted`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := newTestEditor(t, tt.sample)
			te.typeText("s" + tt.word)
			te.key(tcell.KeyEnter)
			te.tickAll(t)
			assert.Equal(t, tt.want, te.message)
		})
	}
}

func TestCancelSimulationDropsPendingTicks(t *testing.T) {
	te := newTestEditor(t, 4)
	te.typeText("sa")
	te.key(tcell.KeyEnter)
	stale := te.gen
	require.True(t, te.graph.Initial().Highlighted())

	te.key(tcell.KeyEscape)
	assert.Equal(t, ModeCanvas, te.mode)
	assert.Equal(t, "Simulation cancelled", te.message)
	assert.False(t, te.graph.Initial().Highlighted())

	te.handleEvent(tcell.NewEventInterrupt(tick{stale}))
	assert.Equal(t, ModeCanvas, te.mode)
	assert.Nil(t, te.walker)
}

func TestPromptEscape(t *testing.T) {
	te := newTestEditor(t, 4)
	te.typeText("sab")
	te.key(tcell.KeyBackspace2)
	assert.Equal(t, "a", string(te.input))
	te.key(tcell.KeyEscape)
	assert.Equal(t, ModeCanvas, te.mode)
	assert.Empty(t, te.holds)
}

func TestDragMovesState(t *testing.T) {
	te := newTestEditor(t, 4)
	te.press(25, 12, tcell.ModNone)
	te.move(30, 12, tcell.ModNone)
	te.release(30, 12)

	s := te.graph.FindByName("0")
	assert.InDelta(t, 240, s.Position().X, 1e-9)
	assert.InDelta(t, 200, s.Position().Y, 1e-9)
	assert.Equal(t, ModeCanvas, te.mode)
}

func TestTapRenamesState(t *testing.T) {
	te := newTestEditor(t, 4)
	te.click(25, 12)
	require.Equal(t, ModeLabel, te.mode)
	assert.Equal(t, "0", string(te.input))
	assert.True(t, te.graph.FindByName("0").LabelHidden())

	te.key(tcell.KeyBackspace)
	te.typeText("start")
	te.key(tcell.KeyEnter)

	assert.Equal(t, ModeCanvas, te.mode)
	s := te.graph.FindByName("start")
	require.NotNil(t, s)
	assert.False(t, s.LabelHidden())
	assert.Same(t, te.graph.Initial(), s)
}

func TestLabelInputCentredOnLabel(t *testing.T) {
	te := newTestEditor(t, 4)
	te.click(25, 12)
	te.typeText("abc")

	// Four cells centred on column 25, cursor after them.
	row := []rune(te.row(12))
	assert.Equal(t, "0abc", string(row[23:27]))
	_, _, style, _ := te.screen.GetContent(27, 12)
	assert.Equal(t, styleCursor, style)
}

func TestEscapeCancelsLabel(t *testing.T) {
	te := newTestEditor(t, 4)
	te.click(25, 12)
	te.typeText("zz")
	te.key(tcell.KeyEscape)

	assert.Equal(t, ModeCanvas, te.mode)
	s := te.graph.FindByName("0")
	require.NotNil(t, s)
	assert.False(t, s.LabelHidden())
}

func TestPressElsewhereCommitsLabel(t *testing.T) {
	te := newTestEditor(t, 4)
	te.click(25, 12)
	te.key(tcell.KeyBackspace)
	te.typeText("p")
	te.later()
	te.click(90, 2)

	assert.NotNil(t, te.graph.FindByName("p"))
	assert.Equal(t, ModeCanvas, te.mode)
}

func TestDeleteKeyRemovesState(t *testing.T) {
	te := newTestEditor(t, 4)
	te.click(62, 31)
	te.key(tcell.KeyDelete)

	assert.Equal(t, ModeCanvas, te.mode)
	assert.Nil(t, te.graph.FindByName("1"))
	assert.Len(t, te.graph.States(), 1)
	assert.Equal(t, "Deleted", te.message)
}

func TestDoubleClickCreatesState(t *testing.T) {
	te := newTestEditor(t, 4)
	te.click(80, 5)
	te.click(80, 5)

	require.Equal(t, ModeLabel, te.mode)
	assert.Empty(t, te.input)
	te.typeText("n")
	te.key(tcell.KeyEnter)

	s := te.graph.FindByName("n")
	require.NotNil(t, s)
	assert.Len(t, te.graph.States(), 3)
	assert.InDelta(t, 644, s.Position().X, 1e-9)
	assert.InDelta(t, 88, s.Position().Y, 1e-9)
}

func TestDoubleClickSetsInitial(t *testing.T) {
	te := newTestEditor(t, 4)
	te.click(62, 31)
	te.click(62, 31)

	assert.Equal(t, ModeCanvas, te.mode)
	assert.Equal(t, "1", te.graph.Initial().Name())
	assert.False(t, te.graph.FindByName("1").LabelHidden())
}

func TestSlowClicksAreNotDouble(t *testing.T) {
	te := newTestEditor(t, 4)
	te.click(80, 5)
	te.later()
	te.click(80, 5)

	assert.Len(t, te.graph.States(), 2)
	assert.Equal(t, ModeCanvas, te.mode)
}

func TestCtrlClickTogglesFinal(t *testing.T) {
	te := newTestEditor(t, 4)
	te.press(25, 12, tcell.ModCtrl)
	te.release(25, 12)

	assert.True(t, te.graph.FindByName("0").IsFinal())
	assert.Equal(t, ModeCanvas, te.mode)
}

func TestShiftDragDrawsTransition(t *testing.T) {
	te := newTestEditor(t, 4)
	te.press(62, 31, tcell.ModShift)
	require.NotNil(t, te.graph.Auxiliary())
	te.move(40, 20, tcell.ModShift)
	te.move(25, 12, tcell.ModShift)
	te.release(25, 12)

	assert.Nil(t, te.graph.Auxiliary())
	require.Equal(t, ModeLabel, te.mode)
	te.typeText("b")
	te.key(tcell.KeyEnter)

	from, to := te.graph.FindByName("1"), te.graph.FindByName("0")
	c := te.graph.FindUnionComposite(from, to)
	require.NotNil(t, c)
	assert.Equal(t, []string{"b"}, c.Symbols())

	res := te.graph.Walk("ab")
	assert.Equal(t, automaton.OutcomeRejected, res.Outcome)
	assert.Equal(t, 2, res.Consumed)
}

func TestSampleKeys(t *testing.T) {
	te := newTestEditor(t, 4)

	te.typeText("2")
	assert.Len(t, te.graph.States(), 5)
	assert.Contains(t, te.message, "Sample 2")

	te.typeText("c")
	assert.Empty(t, te.graph.States())

	te.typeText("0")
	assert.Empty(t, te.graph.States())
	assert.Equal(t, "Empty canvas", te.message)
}

func TestAnalyseKey(t *testing.T) {
	te := newTestEditor(t, 1)
	te.typeText("a")
	assert.Equal(t, "No warnings", te.message)

	te.typeText("0")
	te.typeText("a")
	assert.Equal(t, "no initial state set (+1 more)", te.message)
	assert.Equal(t, MsgWarning, te.messageType)
}

func TestQuitKeys(t *testing.T) {
	te := newTestEditor(t, 4)
	assert.False(t, te.key(tcell.KeyEnter))
	assert.True(t, te.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, te.key(tcell.KeyCtrlC))

	// q is text while a label is open.
	te.click(25, 12)
	assert.False(t, te.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.Equal(t, "0q", string(te.input))
}
