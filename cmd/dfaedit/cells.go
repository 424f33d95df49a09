package main

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/dfa-toolkit/pkg/geometry"
)

// cellSurface draws onto terminal cells. One cell covers cellW x cellH
// canvas units; the canvas origin sits at the top left of the screen.
type cellSurface struct {
	screen tcell.Screen
	cellW  float64
	cellH  float64
	width  int // columns available to the canvas
	height int // rows available to the canvas
}

func (s *cellSurface) cell(p geometry.Point) (int, int) {
	return int(math.Floor(p.X / s.cellW)), int(math.Floor(p.Y / s.cellH))
}

// centre returns the canvas point at the middle of cell (x, y).
func (s *cellSurface) centre(x, y int) geometry.Point {
	return geometry.Point{X: (float64(x) + 0.5) * s.cellW, Y: (float64(y) + 0.5) * s.cellH}
}

func (s *cellSurface) set(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	s.screen.SetContent(x, y, r, nil, style)
}

// styleFor maps drawing colours to terminal styles. Black and white are
// left to the terminal's own foreground and background.
func styleFor(c color.Color) tcell.Style {
	if c == nil {
		return styleDefault
	}
	r, g, b, _ := c.RGBA()
	if r == g && g == b && (r == 0 || r == 0xffff) {
		return styleDefault
	}
	return styleDefault.Foreground(tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8)))
}

// backgroundFor is the fill style for a disc of colour c.
func backgroundFor(c color.Color) tcell.Style {
	if styleFor(c) == styleDefault {
		return styleDefault
	}
	r, g, b, _ := c.RGBA()
	return styleDefault.Background(tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8)))
}

// lineRune picks a box-drawing rune for a segment's slope. Screen y grows
// downwards.
func lineRune(dx, dy float64) rune {
	angle := math.Atan2(-dy, dx)
	if angle < 0 {
		angle += math.Pi
	}
	switch {
	case angle < math.Pi/8 || angle >= 7*math.Pi/8:
		return '─'
	case angle < 3*math.Pi/8:
		return '╱'
	case angle < 5*math.Pi/8:
		return '│'
	default:
		return '╲'
	}
}

func (s *cellSurface) StrokePath(points []geometry.Point, style geometry.Style) {
	if style.Fill != nil && len(points) > 2 {
		s.fill(points, ' ', styleDefault)
	}
	st := styleFor(style.Stroke)
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		r := lineRune(b.X-a.X, b.Y-a.Y)
		steps := int(math.Ceil(math.Max(math.Abs(b.X-a.X)/s.cellW, math.Abs(b.Y-a.Y)/s.cellH)*2)) + 1
		for k := 0; k <= steps; k++ {
			t := float64(k) / float64(steps)
			x, y := s.cell(a.Add(b.Sub(a).Scale(t)))
			s.set(x, y, r, st)
		}
	}
}

func (s *cellSurface) StrokeArc(arc geometry.Arc, style geometry.Style) {
	points := arc.Points(max(16, int(math.Abs(arc.Sweep())*arc.Radius/2)))
	if style.Fill != nil {
		s.fill(points, ' ', backgroundFor(style.Fill))
	}
	st := styleFor(style.Stroke)
	for _, p := range points {
		x, y := s.cell(p)
		s.set(x, y, '·', st)
	}
}

func (s *cellSurface) FillPolygon(points []geometry.Point, c color.Color) {
	if !s.fill(points, '▪', styleFor(c)) && len(points) > 0 {
		x, y := s.cell(points[0])
		s.set(x, y, '▸', styleFor(c))
	}
}

// fill sets every cell whose centre lies inside the polygon. It reports
// whether any cell was set.
func (s *cellSurface) fill(points []geometry.Point, r rune, style tcell.Style) bool {
	if len(points) < 3 {
		return false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	x0, y0 := s.cell(geometry.Point{X: minX, Y: minY})
	x1, y1 := s.cell(geometry.Point{X: maxX, Y: maxY})
	hit := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if inside(points, s.centre(x, y)) {
				s.set(x, y, r, style)
				hit = true
			}
		}
	}
	return hit
}

// inside is the even-odd point-in-polygon test.
func inside(points []geometry.Point, p geometry.Point) bool {
	in := false
	for i, j := 0, len(points)-1; i < len(points); j, i = i, i+1 {
		a, b := points[i], points[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

func (s *cellSurface) FillText(text string, at geometry.Point, font geometry.Font, c color.Color) {
	runes := []rune(text)
	x, y := s.cell(at)
	x -= s.textCells(text, font) / 2
	for i, r := range runes {
		// Keep the background of the disc underneath.
		_, _, under, _ := s.screen.GetContent(x+i, y)
		_, bg, _ := under.Decompose()
		s.set(x+i, y, r, styleFor(c).Background(bg).Bold(true))
	}
}

// textCells is the number of columns text occupies.
func (s *cellSurface) textCells(text string, font geometry.Font) int {
	return int(math.Round(s.MeasureTextWidth(text, font) / s.cellW))
}

func (s *cellSurface) MeasureTextWidth(text string, _ geometry.Font) float64 {
	return float64(len([]rune(text))) * s.cellW
}

func (s *cellSurface) Clear(r geometry.Rect) {
	x0, y0 := s.cell(geometry.Point{X: r.X, Y: r.Y})
	x1, y1 := s.cell(geometry.Point{X: r.X + r.W, Y: r.Y + r.H})
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			s.set(x, y, ' ', styleDefault)
		}
	}
}
