package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/dfa-toolkit/pkg/automaton"
	"github.com/ha1tch/dfa-toolkit/pkg/geometry"
)

var red = color.RGBA{255, 0, 0, 255}

func rgba(img image.Image, x, y int) color.RGBA {
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

// isWhite allows for rounding in the downscale filter.
func isWhite(c color.RGBA) bool { return c.R >= 250 && c.G >= 250 && c.B >= 250 }

func countInk(img image.Image, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if !isWhite(rgba(img, x, y)) {
				n++
			}
		}
	}
	return n
}

func TestNewCanvasRejectsEmptySize(t *testing.T) {
	_, err := NewCanvas(0, 10, 1)
	assert.Error(t, err)
	_, err = NewCanvas(10, -1, 1)
	assert.Error(t, err)
}

func TestCanvasStartsWhite(t *testing.T) {
	c, err := NewCanvas(20, 10, 2)
	require.NoError(t, err)
	w, h := c.Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 10, h)
	assert.Zero(t, countInk(c.Image(), c.Image().Bounds()))
}

func TestFillPolygon(t *testing.T) {
	c, err := NewCanvas(50, 50, 1)
	require.NoError(t, err)
	c.FillPolygon([]geometry.Point{{X: 10, Y: 10}, {X: 30, Y: 10}, {X: 30, Y: 30}, {X: 10, Y: 30}}, red)

	img := c.Image()
	assert.Equal(t, red, rgba(img, 20, 20))
	assert.Equal(t, red, rgba(img, 10, 10))
	assert.True(t, isWhite(rgba(img, 5, 5)))
	assert.True(t, isWhite(rgba(img, 31, 20)))
	assert.Equal(t, 400, countInk(img, img.Bounds()))
}

func TestStrokePath(t *testing.T) {
	c, err := NewCanvas(50, 50, 1)
	require.NoError(t, err)
	c.StrokePath([]geometry.Point{{X: 5, Y: 25}, {X: 45, Y: 25}}, geometry.Style{Stroke: red, Width: 1})

	img := c.Image()
	assert.Equal(t, red, rgba(img, 25, 25))
	assert.True(t, isWhite(rgba(img, 25, 10)))
}

func TestStrokeArcFill(t *testing.T) {
	c, err := NewCanvas(100, 100, 1)
	require.NoError(t, err)
	arc := geometry.Arc{Center: geometry.Point{X: 50, Y: 50}, Radius: 20, End: 2 * math.Pi}
	c.StrokeArc(arc, geometry.Style{Stroke: color.Black, Fill: red, Width: 1})

	img := c.Image()
	assert.Equal(t, red, rgba(img, 50, 50), "filled inside")
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, rgba(img, 70, 50), "stroked on the rim")
	assert.True(t, isWhite(rgba(img, 80, 50)))
}

func TestClear(t *testing.T) {
	c, err := NewCanvas(40, 40, 2)
	require.NoError(t, err)
	c.FillPolygon([]geometry.Point{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 40}, {X: 0, Y: 40}}, red)
	c.Clear(geometry.Rect{W: 40, H: 40})
	assert.Zero(t, countInk(c.Image(), c.Image().Bounds()))
}

func TestMeasureTextWidth(t *testing.T) {
	small, err := NewCanvas(10, 10, 1)
	require.NoError(t, err)
	big, err := NewCanvas(10, 10, 4)
	require.NoError(t, err)

	w1 := small.MeasureTextWidth("state", geometry.StateFont)
	w4 := big.MeasureTextWidth("state", geometry.StateFont)
	assert.Greater(t, w1, 0.0)
	assert.InDelta(t, w1, w4, 1, "width is in canvas units whatever the supersampling")
	assert.Greater(t, small.MeasureTextWidth("longer label", geometry.LabelFont), small.MeasureTextWidth("a", geometry.LabelFont))
	assert.Zero(t, small.MeasureTextWidth("", geometry.LabelFont))
}

func TestFillTextIsCentred(t *testing.T) {
	c, err := NewCanvas(200, 100, 1)
	require.NoError(t, err)
	c.FillText("Hello", geometry.Point{X: 100, Y: 50}, geometry.StateFont, color.Black)

	img := c.Image()
	left := countInk(img, image.Rect(0, 0, 100, 100))
	right := countInk(img, image.Rect(100, 0, 200, 100))
	assert.Positive(t, left)
	assert.Positive(t, right)
	assert.Zero(t, countInk(img, image.Rect(0, 0, 200, 25)), "nothing far above the centre line")
	assert.Zero(t, countInk(img, image.Rect(0, 75, 200, 100)), "nothing far below the centre line")
}

func TestPNG(t *testing.T) {
	a, err := automaton.Sample(1)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, PNG(a, &buf, DefaultOptions(), nil))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 800, 600), img.Bounds())
	assert.Positive(t, countInk(img, image.Rect(150, 250, 250, 350)), "state a is drawn")
	assert.Zero(t, countInk(img, image.Rect(0, 0, 60, 60)), "corner stays empty")
}

func TestPNGRejectsBadOptions(t *testing.T) {
	a := automaton.New()
	var buf bytes.Buffer
	assert.Error(t, PNG(a, &buf, Options{Width: 0, Height: 10, Supersample: 1}, nil))
}

func TestRecorder(t *testing.T) {
	a, err := automaton.Sample(4)
	require.NoError(t, err)
	var r Recorder

	skipped := Frame(&r, a, 800, 600)
	assert.Zero(t, skipped)
	assert.Equal(t, 1, r.Count("clear"))
	assert.Equal(t, 3, r.Count("arc"), "two states and one accepting ring")
	assert.Equal(t, 2, r.Count("path"), "initial marker and one curve")
	assert.Equal(t, 2, r.Count("polygon"), "two arrowheads")
	assert.ElementsMatch(t, []string{"0", "1", "a"}, r.Texts())

	r.Reset()
	assert.Empty(t, r.Ops)
	assert.Equal(t, 10.0, r.MeasureTextWidth("ab", geometry.Font{Size: 10}))
}
