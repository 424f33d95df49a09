// Package render draws automata onto raster images.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sort"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ha1tch/dfa-toolkit/pkg/geometry"
)

// Canvas is a geometry.Surface backed by an RGBA image. It draws at
// supersample times the requested size and scales down on output, which
// gives smooth edges without an anti-aliasing rasteriser.
//
// Every font family is drawn with Go Regular.
type Canvas struct {
	img    *image.RGBA
	width  int
	height int
	scale  float64
	font   *opentype.Font
	faces  map[float64]font.Face
}

// NewCanvas creates a white canvas of width x height canvas units.
func NewCanvas(width, height, supersample int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas size %dx%d must be positive", width, height)
	}
	if supersample < 1 {
		supersample = 1
	}
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	c := &Canvas{
		img:    image.NewRGBA(image.Rect(0, 0, width*supersample, height*supersample)),
		width:  width,
		height: height,
		scale:  float64(supersample),
		font:   fnt,
		faces:  make(map[float64]font.Face),
	}
	c.Clear(geometry.Rect{W: float64(width), H: float64(height)})
	return c, nil
}

// Size returns the canvas size in canvas units.
func (c *Canvas) Size() (int, int) { return c.width, c.height }

func (c *Canvas) face(f geometry.Font) font.Face {
	size := f.Size
	if size <= 0 {
		size = geometry.LabelFont.Size
	}
	if face, ok := c.faces[size]; ok {
		return face
	}
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    size * c.scale,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		face = basicfont.Face7x13
	}
	c.faces[size] = face
	return face
}

func (c *Canvas) px(p geometry.Point) geometry.Point { return p.Scale(c.scale) }

// StrokePath draws a polyline, filling it first when style.Fill is set.
func (c *Canvas) StrokePath(points []geometry.Point, style geometry.Style) {
	if len(points) == 0 {
		return
	}
	if style.Fill != nil && len(points) > 2 {
		c.FillPolygon(points, style.Fill)
	}
	stroke := style.Stroke
	if stroke == nil {
		return
	}
	thickness := c.thickness(style.Width)
	for i := 1; i < len(points); i++ {
		c.drawLine(c.px(points[i-1]), c.px(points[i]), thickness, stroke)
	}
	if len(points) == 1 {
		c.drawLine(c.px(points[0]), c.px(points[0]), thickness, stroke)
	}
}

// StrokeArc draws an arc as a polyline fine enough to look round.
func (c *Canvas) StrokeArc(arc geometry.Arc, style geometry.Style) {
	segments := int(math.Ceil(math.Abs(arc.Sweep()) * arc.Radius * c.scale / 2))
	segments = max(segments, 16)
	c.StrokePath(arc.Points(segments), style)
}

// FillPolygon fills a closed polygon with the even-odd rule.
func (c *Canvas) FillPolygon(points []geometry.Point, col color.Color) {
	if len(points) < 3 {
		return
	}
	scaled := make([]geometry.Point, len(points))
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		scaled[i] = c.px(p)
		minY = math.Min(minY, scaled[i].Y)
		maxY = math.Max(maxY, scaled[i].Y)
	}
	b := c.img.Bounds()
	y0 := max(int(math.Floor(minY)), b.Min.Y)
	y1 := min(int(math.Ceil(maxY)), b.Max.Y-1)
	var xs []float64
	for y := y0; y <= y1; y++ {
		cy := float64(y) + 0.5
		xs = xs[:0]
		for i := range scaled {
			p, q := scaled[i], scaled[(i+1)%len(scaled)]
			if (p.Y <= cy) == (q.Y <= cy) {
				continue
			}
			xs = append(xs, p.X+(cy-p.Y)*(q.X-p.X)/(q.Y-p.Y))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			from := max(int(math.Ceil(xs[i]-0.5)), b.Min.X)
			to := min(int(math.Floor(xs[i+1]-0.5)), b.Max.X-1)
			for x := from; x <= to; x++ {
				c.img.Set(x, y, col)
			}
		}
	}
}

// FillText draws text centred on at.
func (c *Canvas) FillText(text string, at geometry.Point, f geometry.Font, col color.Color) {
	if text == "" {
		return
	}
	face := c.face(f)
	width := font.MeasureString(face, text)
	m := face.Metrics()
	p := c.px(at)
	dot := fixed.Point26_6{
		X: fixed.Int26_6(p.X*64) - width/2,
		Y: fixed.Int26_6(p.Y*64) + (m.Ascent-m.Descent)/2,
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  dot,
	}
	d.DrawString(text)
}

// MeasureTextWidth returns the advance width of text in canvas units.
func (c *Canvas) MeasureTextWidth(text string, f geometry.Font) float64 {
	w := font.MeasureString(c.face(f), text)
	return float64(w) / 64 / c.scale
}

// Clear paints the region white.
func (c *Canvas) Clear(r geometry.Rect) {
	rect := image.Rect(
		int(math.Floor(r.X*c.scale)), int(math.Floor(r.Y*c.scale)),
		int(math.Ceil((r.X+r.W)*c.scale)), int(math.Ceil((r.Y+r.H)*c.scale)),
	).Intersect(c.img.Bounds())
	draw.Draw(c.img, rect, image.NewUniform(color.White), image.Point{}, draw.Src)
}

// Image returns the canvas scaled down to its nominal size.
func (c *Canvas) Image() *image.RGBA {
	if c.scale == 1 {
		return c.img
	}
	out := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	draw.CatmullRom.Scale(out, out.Bounds(), c.img, c.img.Bounds(), draw.Over, nil)
	return out
}

// EncodePNG writes the scaled-down image as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.Image()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (c *Canvas) thickness(w float64) float64 {
	if w <= 0 {
		w = 1
	}
	return w * c.scale
}

// drawLine draws a thick line by stamping offsets along its normal.
func (c *Canvas) drawLine(a, b geometry.Point, thickness float64, col color.Color) {
	dx, dy := b.X-a.X, b.Y-a.Y
	half := thickness / 2
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		for ty := -half; ty <= half; ty++ {
			for tx := -half; tx <= half; tx++ {
				c.img.Set(int(a.X+tx), int(a.Y+ty), col)
			}
		}
		return
	}
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	nx, ny := -dy/dist, dx/dist
	for i := 0.0; i <= steps; i++ {
		t := i / steps
		cx, cy := a.X+dx*t, a.Y+dy*t
		for off := -half; off <= half; off += 0.5 {
			c.img.Set(int(cx+nx*off), int(cy+ny*off), col)
		}
	}
}
