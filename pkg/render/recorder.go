package render

import (
	"image/color"

	"github.com/ha1tch/dfa-toolkit/pkg/geometry"
)

// Op is one recorded draw call.
type Op struct {
	Kind   string // path, arc, polygon, text, clear
	Points []geometry.Point
	Arc    geometry.Arc
	Text   string
	Style  geometry.Style
	Color  color.Color
}

// Recorder is a geometry.Surface that keeps every call, for tests and
// headless inspection. Text is measured as half the font size per rune.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) StrokePath(points []geometry.Point, style geometry.Style) {
	r.Ops = append(r.Ops, Op{Kind: "path", Points: points, Style: style, Color: style.Stroke})
}

func (r *Recorder) StrokeArc(arc geometry.Arc, style geometry.Style) {
	r.Ops = append(r.Ops, Op{Kind: "arc", Arc: arc, Style: style, Color: style.Stroke})
}

func (r *Recorder) FillPolygon(points []geometry.Point, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "polygon", Points: points, Color: c})
}

func (r *Recorder) FillText(text string, at geometry.Point, _ geometry.Font, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "text", Points: []geometry.Point{at}, Text: text, Color: c})
}

func (r *Recorder) MeasureTextWidth(text string, f geometry.Font) float64 {
	return float64(len([]rune(text))) * f.Size / 2
}

func (r *Recorder) Clear(geometry.Rect) {
	r.Ops = append(r.Ops, Op{Kind: "clear"})
}

// Count returns how many ops of kind were recorded.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns the recorded text in call order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Reset forgets every op.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
