package interact

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/dfa-toolkit/pkg/automaton"
)

func setup(t *testing.T) (*Controller, *automaton.State, *automaton.State) {
	t.Helper()
	a := automaton.New(automaton.WithRand(rand.New(rand.NewPCG(1, 2))))
	p := a.CreateState("p", 100, 100)
	q := a.CreateState("q", 300, 100)
	return New(a), p, q
}

func tap(c *Controller, x, y float64) {
	c.PointerDown(Pointer{X: x, Y: y})
	c.PointerUp(Pointer{X: x, Y: y})
}

func TestDragState(t *testing.T) {
	c, p, _ := setup(t)

	require.True(t, c.PointerDown(Pointer{X: 110, Y: 100}))
	assert.Same(t, p, c.Session().State)
	c.PointerMove(Pointer{X: 120, Y: 110})
	c.PointerMove(Pointer{X: 130, Y: 150})
	c.PointerUp(Pointer{X: 130, Y: 150})

	assert.Equal(t, 120.0, p.Position().X)
	assert.Equal(t, 150.0, p.Position().Y)
	_, editing := c.Editing()
	assert.False(t, editing, "a drag is not a tap")
	assert.False(t, c.Busy())
}

func TestPressBringsStateToFront(t *testing.T) {
	c, p, _ := setup(t)
	c.PointerDown(Pointer{X: 100, Y: 100})
	c.PointerUp(Pointer{X: 100, Y: 100})

	elems := c.Automaton().Elements()
	assert.Same(t, p, elems[len(elems)-1])
}

func TestTapStateRenames(t *testing.T) {
	c, p, _ := setup(t)
	tap(c, 100, 100)

	edit, ok := c.Editing()
	require.True(t, ok)
	assert.Equal(t, EditState, edit.Kind)
	assert.Same(t, p, edit.State)
	assert.Equal(t, "p", edit.Text)
	assert.True(t, p.LabelHidden())

	require.True(t, c.CommitText("  start "))
	assert.Equal(t, "start", p.Name())
	assert.False(t, p.LabelHidden())
	_, ok = c.Editing()
	assert.False(t, ok)
}

func TestCommitBlankKeepsLabel(t *testing.T) {
	c, p, _ := setup(t)
	tap(c, 100, 100)

	assert.False(t, c.CommitText("   "))
	assert.Equal(t, "p", p.Name())
	assert.False(t, p.LabelHidden())
	assert.False(t, c.CommitText("late"), "no edit open")
}

func TestPressIgnoredWhileEditing(t *testing.T) {
	c, _, q := setup(t)
	tap(c, 100, 100)

	assert.False(t, c.PointerDown(Pointer{X: 300, Y: 100}))
	c.PointerMove(Pointer{X: 400, Y: 100})
	assert.Equal(t, 300.0, q.Position().X)
}

func TestShiftDragCreatesTransition(t *testing.T) {
	c, p, q := setup(t)
	a := c.Automaton()

	require.True(t, c.PointerDown(Pointer{X: 100, Y: 100, Shift: true}))
	s := c.Session()
	require.True(t, s.Creating)
	assert.Same(t, p, s.From)
	require.NotNil(t, a.Auxiliary())
	assert.Same(t, a.Auxiliary(), s.State)

	c.PointerMove(Pointer{X: 200, Y: 100})
	assert.Equal(t, 200.0, a.Auxiliary().Position().X, "auxiliary state follows the pointer")
	c.PointerMove(Pointer{X: 300, Y: 100})
	c.PointerUp(Pointer{X: 300, Y: 100})

	assert.Nil(t, a.Auxiliary())
	comp := a.FindUnionComposite(p, q)
	require.NotNil(t, comp)
	edit, ok := c.Editing()
	require.True(t, ok)
	assert.Equal(t, EditComposite, edit.Kind)
	assert.Same(t, comp, edit.Composite)
	assert.False(t, comp.LabelVisible())

	require.True(t, c.CommitText("a, b,, c ,"))
	assert.Equal(t, []string{"a", "b", "c"}, comp.Symbols())
	assert.True(t, comp.LabelVisible())
	assert.Same(t, q, a.StepState(p.Transition("b")))
	assert.Len(t, a.UnionComposites(), 1, "drag composite to the auxiliary state is gone")
}

func drawTransition(c *Controller, fromX, fromY, toX, toY float64) {
	c.PointerDown(Pointer{X: fromX, Y: fromY, Shift: true})
	c.PointerMove(Pointer{X: toX, Y: toY})
	c.PointerUp(Pointer{X: toX, Y: toY})
}

func TestAbandonedTransitionIsRemoved(t *testing.T) {
	tests := []struct {
		name    string
		abandon func(c *Controller)
	}{
		{"cancel", func(c *Controller) { c.CancelEdit() }},
		{"blank commit", func(c *Controller) { assert.False(t, c.CommitText("  ")) }},
		{"double click elsewhere", func(c *Controller) { c.DoubleClick(Pointer{X: 600, Y: 400}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, p, q := setup(t)
			a := c.Automaton()
			drawTransition(c, 100, 100, 300, 100)
			require.NotNil(t, a.FindUnionComposite(p, q))

			tt.abandon(c)
			assert.Nil(t, a.FindUnionComposite(p, q))
			assert.Empty(t, p.Transitions())
		})
	}
}

func TestAbandonedTransitionKeepsExistingPair(t *testing.T) {
	c, p, q := setup(t)
	a := c.Automaton()
	a.Join(p, q, "x")
	comp := a.FindUnionComposite(p, q)

	drawTransition(c, 100, 100, 300, 100)
	edit, ok := c.Editing()
	require.True(t, ok)
	assert.Same(t, comp, edit.Composite)
	assert.Equal(t, "x", edit.Text)

	c.CancelEdit()
	assert.Same(t, comp, a.FindUnionComposite(p, q))
	assert.Equal(t, []string{"x"}, comp.Symbols())
	assert.Equal(t, "x", comp.Label())
}

func TestDrawnTransitionKeepsOlderEmptySymbol(t *testing.T) {
	c, p, q := setup(t)
	a := c.Automaton()
	a.Join(p, q, "")

	drawTransition(c, 100, 100, 300, 100)
	c.CancelEdit()
	assert.Equal(t, []string{""}, a.FindUnionComposite(p, q).Symbols())
}

func TestShiftDragReleasedOnNothing(t *testing.T) {
	c, p, _ := setup(t)
	a := c.Automaton()

	c.PointerDown(Pointer{X: 100, Y: 100, Shift: true})
	c.PointerMove(Pointer{X: 200, Y: 300})
	c.PointerUp(Pointer{X: 200, Y: 300})

	assert.Nil(t, a.Auxiliary())
	assert.Empty(t, a.UnionComposites())
	assert.Empty(t, p.Transitions())
	_, ok := c.Editing()
	assert.False(t, ok)
}

func TestShiftDragToSelf(t *testing.T) {
	c, p, _ := setup(t)
	a := c.Automaton()

	c.PointerDown(Pointer{X: 100, Y: 100, Shift: true})
	c.PointerMove(Pointer{X: 110, Y: 90})
	c.PointerUp(Pointer{X: 110, Y: 90})

	loop := a.FindUnionComposite(p, p)
	require.NotNil(t, loop)
	require.True(t, c.CommitText("0"))
	assert.Same(t, p, a.StepState(p.Transition("0")))
}

func TestCtrlPressTogglesFinal(t *testing.T) {
	c, p, _ := setup(t)

	require.True(t, c.PointerDown(Pointer{X: 100, Y: 100, Ctrl: true}))
	c.PointerUp(Pointer{X: 100, Y: 100, Ctrl: true})
	assert.True(t, p.IsFinal())
	_, ok := c.Editing()
	assert.False(t, ok)

	c.PointerDown(Pointer{X: 100, Y: 100, Ctrl: true})
	c.PointerUp(Pointer{X: 100, Y: 100, Ctrl: true})
	assert.False(t, p.IsFinal())
}

func TestTapCompositeRelabels(t *testing.T) {
	c, p, q := setup(t)
	a := c.Automaton()
	a.Join(p, q, "0")
	comp := a.FindUnionComposite(p, q)
	at := comp.LabelPosition()

	tap(c, at.X, at.Y)
	edit, ok := c.Editing()
	require.True(t, ok)
	assert.Same(t, comp, edit.Composite)
	assert.Equal(t, "0", edit.Text)

	require.True(t, c.CommitText("1"))
	assert.Nil(t, p.Transition("0"))
	assert.Same(t, q, a.StepState(p.Transition("1")))
}

func TestDragCompositeReshapes(t *testing.T) {
	c, p, q := setup(t)
	a := c.Automaton()
	a.Join(p, q, "0")
	comp := a.FindUnionComposite(p, q)
	at := comp.LabelPosition()

	require.True(t, c.PointerDown(Pointer{X: at.X, Y: at.Y}))
	assert.Same(t, comp, c.Session().Composite)
	c.PointerMove(Pointer{X: 200, Y: 40})
	c.PointerUp(Pointer{X: 200, Y: 40})

	assert.InDelta(t, -120, comp.Shape().Parameter(), 1e-6)
	assert.True(t, comp.HitAt(200, 40))
	_, ok := c.Editing()
	assert.False(t, ok)
}

func TestDoubleClick(t *testing.T) {
	c, p, _ := setup(t)
	a := c.Automaton()

	require.True(t, c.DoubleClick(Pointer{X: 100, Y: 100}))
	assert.Same(t, p, a.Initial())

	require.True(t, c.DoubleClick(Pointer{X: 500, Y: 400}))
	require.Len(t, a.States(), 3)
	created := a.States()[2]
	assert.Equal(t, "", created.Name())
	edit, ok := c.Editing()
	require.True(t, ok)
	assert.Same(t, created, edit.State)

	require.True(t, c.CommitText("r"))
	assert.Same(t, created, a.FindByName("r"))
}

func TestDoubleClickClosesTapEdit(t *testing.T) {
	c, p, _ := setup(t)
	tap(c, 100, 100)
	c.DoubleClick(Pointer{X: 100, Y: 100})

	_, ok := c.Editing()
	assert.False(t, ok)
	assert.False(t, p.LabelHidden())
	assert.Same(t, p, c.Automaton().Initial())
}

func TestCancelEdit(t *testing.T) {
	c, p, q := setup(t)
	a := c.Automaton()
	a.Join(p, q, "0")
	comp := a.FindUnionComposite(p, q)
	at := comp.LabelPosition()

	tap(c, at.X, at.Y)
	c.CancelEdit()
	assert.True(t, comp.LabelVisible())
	assert.Equal(t, "0", comp.Label())
}

func TestDeleteSelection(t *testing.T) {
	c, p, q := setup(t)
	a := c.Automaton()
	a.Join(p, q, "0")
	a.Join(q, p, "1")

	tap(c, 100, 100)
	require.True(t, c.DeleteSelection())
	assert.Equal(t, []*automaton.State{q}, a.States())
	assert.Empty(t, a.UnionComposites())

	assert.False(t, c.DeleteSelection(), "nothing selected")
}

func TestDeleteComposite(t *testing.T) {
	c, p, q := setup(t)
	a := c.Automaton()
	a.Join(p, q, "0")
	at := a.FindUnionComposite(p, q).LabelPosition()

	tap(c, at.X, at.Y)
	require.True(t, c.DeleteSelection())
	assert.Empty(t, a.UnionComposites())
	assert.Nil(t, p.Transition("0"))
}

func TestPressOnNothing(t *testing.T) {
	c, _, _ := setup(t)
	assert.False(t, c.PointerDown(Pointer{X: 700, Y: 500}))
	assert.False(t, c.PointerMove(Pointer{X: 710, Y: 500}))
	assert.False(t, c.PointerUp(Pointer{X: 710, Y: 500}))
}

func TestSplitSymbols(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitSymbols(" a ,b"))
	assert.Nil(t, SplitSymbols(" , ,"))
	assert.Equal(t, []string{"x y"}, SplitSymbols("x y"))
}
