package augment

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// TiltConfig controls the horizontal shear.
type TiltConfig struct {
	Enabled    bool  `yaml:"enabled" json:"enabled"`
	AngleRange Range `yaml:"angle_range" json:"angle_range"` // degrees
}

// Tilt shears the image horizontally by tan(angle), with angle drawn from
// cfg.AngleRange. The canvas grows to TiltWidth so nothing is clipped;
// height is unchanged and uncovered areas are black.
func Tilt(src image.Image, cfg TiltConfig, rng *rand.Rand) *image.NRGBA {
	return shear(src, cfg.AngleRange.Uniform(rng))
}

// TiltWidth returns the output width for a w×h image sheared by angle degrees.
func TiltWidth(w, h int, angle float64) int {
	m := math.Tan(angle * math.Pi / 180)
	return int(math.Ceil(float64(w) + float64(h)*math.Abs(m)))
}

func shear(src image.Image, angle float64) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return imaging.Clone(src)
	}

	m := math.Tan(angle * math.Pi / 180)
	tx := 0.0
	if m < 0 {
		// Negative shear moves the bottom rows left; shift right to keep them.
		tx = float64(h) * -m
	}

	dst := imaging.New(TiltWidth(w, h, angle), h, color.NRGBA{A: 0xff})
	// Aff3 maps source coordinates (relative to b.Min) into dst.
	aff := f64.Aff3{
		1, m, tx - float64(b.Min.X) - m*float64(b.Min.Y),
		0, 1, -float64(b.Min.Y),
	}
	draw.BiLinear.Transform(dst, aff, src, b, draw.Src, nil)
	return dst
}
