package augment

import (
	"image"
	"math"
	"math/rand/v2"

	"github.com/disintegration/imaging"
)

// NoiseSaltPepper is the only noise type that modifies pixels.
const NoiseSaltPepper = "salt & pepper"

// NoiseConfig controls the impulse noise.
type NoiseConfig struct {
	Enabled     bool   `yaml:"enabled" json:"enabled"`
	Type        string `yaml:"type" json:"type"`
	AmountRange Range  `yaml:"amount_range" json:"amount_range"` // fraction of pixels
}

// Noise sets NoiseCount random pixels to white and as many again to black.
// Coordinates are drawn with replacement, so collisions are possible.
// Types other than NoiseSaltPepper return an unmodified copy.
//
// Coordinates never land on the last row or column: each axis samples
// [0, size-2].
func Noise(src image.Image, cfg NoiseConfig, rng *rand.Rand) *image.NRGBA {
	out := imaging.Clone(src)
	if cfg.Type != NoiseSaltPepper {
		return out
	}
	w, h := out.Rect.Dx(), out.Rect.Dy()
	if w == 0 || h == 0 {
		return out
	}

	n := NoiseCount(cfg.AmountRange.Uniform(rng), w, h)
	sprinkle(out, n, 0xff, rng)
	sprinkle(out, n, 0x00, rng)
	return out
}

// NoiseCount returns how many pixels each of the salt and pepper passes sets.
func NoiseCount(amount float64, w, h int) int {
	return int(math.Ceil(amount * float64(w*h) * 0.5))
}

func sprinkle(img *image.NRGBA, n int, v uint8, rng *rand.Rand) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for i := 0; i < n; i++ {
		y := noiseCoord(h, rng)
		x := noiseCoord(w, rng)
		p := img.PixOffset(x, y)
		img.Pix[p], img.Pix[p+1], img.Pix[p+2] = v, v, v
	}
}

func noiseCoord(size int, rng *rand.Rand) int {
	if size < 2 {
		return 0
	}
	return rng.IntN(size - 1)
}
