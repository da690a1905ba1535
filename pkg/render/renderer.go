// renderer.go - Text measurement and drawing onto a padded canvas.
// The canvas is sized from the tight ink box of the text, so the glyphs sit
// exactly inside the padding.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Padding is the space kept around the text on each side, in pixels.
type Padding struct {
	Left   int `yaml:"left" json:"left"`
	Top    int `yaml:"top" json:"top"`
	Right  int `yaml:"right" json:"right"`
	Bottom int `yaml:"bottom" json:"bottom"`
}

// Bounds is the ink box of a rendered string.
type Bounds struct {
	Width  int
	Height int
	// Dot is where the drawing origin goes so the ink box starts at (0,0).
	Dot image.Point
}

// Measure returns the tight ink box of text drawn with face.
func Measure(face font.Face, text string) Bounds {
	b, _ := font.BoundString(face, text)
	minX, minY := b.Min.X.Floor(), b.Min.Y.Floor()
	maxX, maxY := b.Max.X.Ceil(), b.Max.Y.Ceil()
	if maxX <= minX || maxY <= minY {
		return Bounds{}
	}
	return Bounds{
		Width:  maxX - minX,
		Height: maxY - minY,
		Dot:    image.Pt(-minX, -minY),
	}
}

// CanvasSize returns the canvas dimensions that fit b plus padding.
func CanvasSize(b Bounds, p Padding) (w, h int) {
	return b.Width + p.Left + p.Right, b.Height + p.Top + p.Bottom
}

// Draw renders text onto dst with the ink box's top-left corner at
// (p.Left, p.Top). b must come from Measure with the same face and text.
func Draw(dst draw.Image, face font.Face, text string, b Bounds, p Padding, col color.Color) {
	origin := dst.Bounds().Min
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(origin.X+p.Left+b.Dot.X, origin.Y+p.Top+b.Dot.Y),
	}
	drawer.DrawString(text)
}
