// validator.go — Check a loaded config before any generation starts.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/xob0t/textsynth/pkg/augment"
	"github.com/xob0t/textsynth/pkg/render"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate reports every problem in cfg at once.
func Validate(cfg *Config) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	p := cfg.Paths
	for _, f := range []struct{ name, value string }{
		{"paths.corpus_dir", p.CorpusDir},
		{"paths.fonts_dir", p.FontsDir},
		{"paths.backgrounds_dir", p.BackgroundsDir},
		{"paths.output_dir", p.OutputDir},
	} {
		if strings.TrimSpace(f.value) == "" {
			add("%s is required", f.name)
		}
	}

	d := cfg.Dataset
	if d.NumImages < 0 {
		add("dataset.num_images must be >= 0, got %d", d.NumImages)
	}
	checkIntRange(add, "dataset.word_count_range", d.WordCountRange, 1, math.MaxInt)
	if d.Workers < 1 {
		add("dataset.workers must be >= 1, got %d", d.Workers)
	}
	if d.OnError != OnErrorSkip && d.OnError != OnErrorAbort {
		add("dataset.on_error must be %q or %q, got %q", OnErrorSkip, OnErrorAbort, d.OnError)
	}

	t := cfg.Text
	checkIntRange(add, "text.font_size_range", t.FontSizeRange, 1, math.MaxInt)
	if t.Padding.Left < 0 || t.Padding.Top < 0 || t.Padding.Right < 0 || t.Padding.Bottom < 0 {
		add("text.padding values must be >= 0, got %+v", t.Padding)
	}
	if t.Color.Enabled {
		checkIntRange(add, "text.color.rgb_range", t.Color.RGBRange, 0, 255)
	}
	if _, err := render.ParseHex(t.Color.Fixed); err != nil {
		add("text.color.fixed: %v", err)
	}

	a := cfg.Augmentations
	if a.Warp.Magnitude < 0 {
		add("augmentations.warp.magnitude must be >= 0, got %v", a.Warp.Magnitude)
	}
	checkRange(add, "augmentations.tilt.angle_range", a.Tilt.AngleRange, -89, 89)
	checkIntRange(add, "augmentations.blur.kernel_size_range", a.Blur.KernelSizeRange, 0, math.MaxInt)
	if a.Blur.Enabled {
		if lo, hi := a.Blur.KernelSizeRange.OddBounds(); lo > hi || lo < 1 {
			add("augmentations.blur.kernel_size_range %v contains no odd kernel size", a.Blur.KernelSizeRange)
		}
	}
	checkRange(add, "augmentations.noise.amount_range", a.Noise.AmountRange, 0, 1)
	checkRange(add, "augmentations.brightness_contrast.brightness_range", a.BrightnessContrast.BrightnessRange, -1, 1)
	checkRange(add, "augmentations.brightness_contrast.contrast_range", a.BrightnessContrast.ContrastRange, 0, math.Inf(1))

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// Warnings returns non-fatal oddities worth logging.
func Warnings(cfg *Config) []string {
	var warnings []string
	n := cfg.Augmentations.Noise
	if n.Enabled && n.Type != augment.NoiseSaltPepper {
		warnings = append(warnings, fmt.Sprintf("noise is enabled with type %q; only %q modifies pixels", n.Type, augment.NoiseSaltPepper))
	}
	if cfg.Dataset.NumImages == 0 {
		warnings = append(warnings, "dataset.num_images is 0")
	}
	return warnings
}

func checkIntRange(add func(string, ...any), name string, r augment.IntRange, lo, hi int) {
	if !r.Valid() {
		add("%s: lower bound %d exceeds upper bound %d", name, r[0], r[1])
		return
	}
	if r[0] < lo || r[1] > hi {
		add("%s %v outside [%d, %d]", name, r, lo, hi)
	}
}

func checkRange(add func(string, ...any), name string, r augment.Range, lo, hi float64) {
	if !r.Valid() {
		add("%s: lower bound %v exceeds upper bound %v", name, r[0], r[1])
		return
	}
	if r[0] < lo || r[1] > hi {
		add("%s %v outside [%v, %v]", name, r, lo, hi)
	}
}
