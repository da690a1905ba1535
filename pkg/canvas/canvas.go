// Package canvas fits a background image to an exact canvas size without
// stretching: small backgrounds are tiled, large ones are randomly cropped.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

var (
	// ErrEmptyBackground is returned for a background with no pixels.
	ErrEmptyBackground = errors.New("canvas: empty background")
	// ErrInvalidSize is returned for a non-positive canvas dimension.
	ErrInvalidSize = errors.New("canvas: invalid size")
)

// Fit returns a w×h image filled with background content. The result is
// always opaque: any alpha in bg is dropped and its RGB values kept.
//
// If bg is narrower or shorter than the canvas, copies of bg are laid out
// from (0,0) in steps of its own size and clipped at the right and bottom
// edges. Otherwise a w×h region is cropped at an origin drawn by CropOrigin.
func Fit(bg image.Image, w, h int, rng *rand.Rand) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	b := bg.Bounds()
	if b.Empty() {
		return nil, ErrEmptyBackground
	}

	if b.Dx() < w || b.Dy() < h {
		return Tile(bg, w, h), nil
	}

	origin := CropOrigin(b.Dx(), b.Dy(), w, h, rng).Add(b.Min)
	return opaque(imaging.Crop(bg, image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))})), nil
}

// Tile covers an opaque w×h canvas with repeated copies of bg.
func Tile(bg image.Image, w, h int) *image.NRGBA {
	src := opaque(imaging.Clone(bg))
	tw, th := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y += th {
		for x := 0; x < w; x += tw {
			draw.Draw(dst, image.Rect(x, y, x+tw, y+th), src, src.Rect.Min, draw.Src)
		}
	}
	return dst
}

// opaque sets every alpha byte of img to 0xff in place, keeping the
// straight RGB values.
func opaque(img *image.NRGBA) *image.NRGBA {
	for y := 0; y < img.Rect.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+img.Rect.Dx()*4]
		for i := 3; i < len(row); i += 4 {
			row[i] = 0xff
		}
	}
	return img
}

// CropOrigin draws a crop origin uniformly from
// [0, bgW-w] × [0, bgH-h], bounds inclusive.
func CropOrigin(bgW, bgH, w, h int, rng *rand.Rand) image.Point {
	return image.Pt(rng.IntN(bgW-w+1), rng.IntN(bgH-h+1))
}
