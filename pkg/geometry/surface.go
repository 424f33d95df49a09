package geometry

import "image/color"

// Surface is the drawing target the engine renders onto. Implementations
// live with the host: a raster image, a terminal, or a recorder in tests.
type Surface interface {
	StrokePath(points []Point, style Style)
	StrokeArc(arc Arc, style Style)
	FillPolygon(points []Point, c color.Color)
	FillText(text string, at Point, font Font, c color.Color)
	MeasureTextWidth(text string, font Font) float64
	Clear(region Rect)
}

// Style configures a stroke. A non-nil Fill fills the closed shape first.
type Style struct {
	Stroke color.Color
	Fill   color.Color
	Width  float64
}

// Font names a typeface and its pixel size.
type Font struct {
	Family string
	Size   float64
}

// Colors used when drawing arrows and states.
var (
	ColorDefault   color.Color = color.RGBA{0, 0, 0, 255}       // black
	ColorHighlight color.Color = color.RGBA{255, 0, 0, 255}     // red
	ColorFill      color.Color = color.RGBA{255, 255, 255, 255} // white
	ColorActive    color.Color = color.RGBA{255, 165, 0, 255}   // orange
)

// Fonts used for labels.
var (
	LabelFont = Font{Family: "Times New Roman", Size: 20}
	StateFont = Font{Family: "Times New Roman", Size: 25}
)

func strokeColor(highlighted bool) color.Color {
	if highlighted {
		return ColorHighlight
	}
	return ColorDefault
}
