package augment

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/disintegration/imaging"
)

// BrightnessContrastConfig controls the linear intensity adjustment.
// Brightness is a fraction of full scale (0.1 adds 25.5 to every channel);
// contrast is a plain multiplier.
type BrightnessContrastConfig struct {
	Enabled         bool  `yaml:"enabled" json:"enabled"`
	BrightnessRange Range `yaml:"brightness_range" json:"brightness_range"`
	ContrastRange   Range `yaml:"contrast_range" json:"contrast_range"`
}

// BrightnessContrast maps every channel v to v*contrast + brightness*255,
// saturated to [0, 255].
func BrightnessContrast(src image.Image, cfg BrightnessContrastConfig, rng *rand.Rand) *image.NRGBA {
	brightness := cfg.BrightnessRange.Uniform(rng)
	contrast := cfg.ContrastRange.Uniform(rng)
	return scaleLinear(src, contrast, brightness*255)
}

func scaleLinear(src image.Image, alpha, beta float64) *image.NRGBA {
	return imaging.AdjustFunc(src, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: clamp8(float64(c.R)*alpha + beta),
			G: clamp8(float64(c.G)*alpha + beta),
			B: clamp8(float64(c.B)*alpha + beta),
			A: c.A,
		}
	})
}
