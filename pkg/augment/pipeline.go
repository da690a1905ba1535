// Package augment implements the randomized image transforms applied to a
// rendered text canvas: perspective warp, tilt, Gaussian blur, salt-and-pepper
// noise, and brightness/contrast.
//
// Every transform takes its source image, its own config section and an
// explicit random source, and returns a new *image.NRGBA. Sources are never
// modified.
package augment

import (
	"image"
	"math/rand/v2"

	"github.com/disintegration/imaging"
)

// Config groups the per-transform sections of the augmentations block.
type Config struct {
	Warp               WarpConfig               `yaml:"warp" json:"warp"`
	Tilt               TiltConfig               `yaml:"tilt" json:"tilt"`
	Blur               BlurConfig               `yaml:"blur" json:"blur"`
	Noise              NoiseConfig              `yaml:"noise" json:"noise"`
	BrightnessContrast BrightnessContrastConfig `yaml:"brightness_contrast" json:"brightness_contrast"`
}

// Step is one named transform in the pipeline.
type Step struct {
	Name    string
	Enabled bool
	Apply   func(image.Image, *rand.Rand) *image.NRGBA
}

// Pipeline runs the enabled steps in a fixed order:
// warp, tilt, blur, noise, brightness_contrast.
type Pipeline struct {
	steps []Step
}

// NewPipeline binds each transform to its config section.
func NewPipeline(cfg Config) Pipeline {
	return Pipeline{steps: []Step{
		{"warp", cfg.Warp.Enabled, func(img image.Image, rng *rand.Rand) *image.NRGBA {
			return Warp(img, cfg.Warp, rng)
		}},
		{"tilt", cfg.Tilt.Enabled, func(img image.Image, rng *rand.Rand) *image.NRGBA {
			return Tilt(img, cfg.Tilt, rng)
		}},
		{"blur", cfg.Blur.Enabled, func(img image.Image, rng *rand.Rand) *image.NRGBA {
			return Blur(img, cfg.Blur, rng)
		}},
		{"noise", cfg.Noise.Enabled, func(img image.Image, rng *rand.Rand) *image.NRGBA {
			return Noise(img, cfg.Noise, rng)
		}},
		{"brightness_contrast", cfg.BrightnessContrast.Enabled, func(img image.Image, rng *rand.Rand) *image.NRGBA {
			return BrightnessContrast(img, cfg.BrightnessContrast, rng)
		}},
	}}
}

// Steps returns every step, enabled or not, in application order.
func (p Pipeline) Steps() []Step {
	return append([]Step(nil), p.steps...)
}

// Enabled returns the names of the steps that will run.
func (p Pipeline) Enabled() []string {
	var names []string
	for _, s := range p.steps {
		if s.Enabled {
			names = append(names, s.Name)
		}
	}
	return names
}

// Apply runs the enabled steps over src. With nothing enabled it returns a copy.
func (p Pipeline) Apply(src image.Image, rng *rand.Rand) *image.NRGBA {
	var out *image.NRGBA
	cur := src
	for _, s := range p.steps {
		if !s.Enabled {
			continue
		}
		out = s.Apply(cur, rng)
		cur = out
	}
	if out == nil {
		return imaging.Clone(src)
	}
	return out
}
