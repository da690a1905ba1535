// color.go — Text fill colour: fixed hex or random per channel.
package render

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/xob0t/textsynth/pkg/augment"
)

// ColorConfig selects the text fill. When Enabled, each channel is drawn
// independently from RGBRange; otherwise Fixed is used.
type ColorConfig struct {
	Enabled  bool             `yaml:"enabled" json:"enabled"`
	RGBRange augment.IntRange `yaml:"rgb_range" json:"rgb_range"`
	Fixed    string           `yaml:"fixed" json:"fixed"` // "#rrggbb", default black
}

// TextColor picks the fill colour for one image.
func TextColor(cfg ColorConfig, rng *rand.Rand) color.NRGBA {
	if !cfg.Enabled {
		c, err := ParseHex(cfg.Fixed)
		if err != nil {
			return color.NRGBA{A: 0xff}
		}
		return c
	}
	return color.NRGBA{
		R: uint8(cfg.RGBRange.Int(rng)),
		G: uint8(cfg.RGBRange.Int(rng)),
		B: uint8(cfg.RGBRange.Int(rng)),
		A: 0xff,
	}
}

// ParseHex parses "#rrggbb". The empty string is black.
func ParseHex(s string) (color.NRGBA, error) {
	if s == "" {
		return color.NRGBA{A: 0xff}, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected 6-char hex", s)
	}

	rv, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid red channel in %q: %w", s, err)
	}
	gv, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid green channel in %q: %w", s, err)
	}
	bv, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid blue channel in %q: %w", s, err)
	}

	return color.NRGBA{R: uint8(rv), G: uint8(gv), B: uint8(bv), A: 0xff}, nil
}
