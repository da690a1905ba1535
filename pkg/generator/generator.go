// Package generator turns a config, a corpus and asset lists into labeled
// text images, one Generate call per image.
//
// Each image follows the same pipeline: pick a snippet, font, size and
// background; measure the text; fit the background to the padded text box;
// draw the text; then run the augmentation pipeline.
package generator

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/xob0t/textsynth/pkg/augment"
	"github.com/xob0t/textsynth/pkg/canvas"
	"github.com/xob0t/textsynth/pkg/config"
	"github.com/xob0t/textsynth/pkg/corpus"
	"github.com/xob0t/textsynth/pkg/render"
)

var (
	ErrEmptyCorpus    = errors.New("corpus is empty")
	ErrCorpusTooShort = errors.New("corpus is shorter than the minimum word count")
	ErrNoFonts        = errors.New("no fonts found")
	ErrNoBackgrounds  = errors.New("no backgrounds found")
)

// Sample is one generated image and its label.
type Sample struct {
	Index          int
	Filename       string
	Text           string
	Image          *image.NRGBA
	FontPath       string
	FontSize       int
	BackgroundPath string
	// Canvas is the padded text canvas size before augmentation.
	Canvas image.Point
}

// Generator produces samples. It holds only read-only state and is safe for
// concurrent use as long as each goroutine brings its own *rand.Rand.
type Generator struct {
	cfg         *config.Config
	words       corpus.Corpus
	fonts       []string
	backgrounds []string
	fontManager *render.FontManager
	pipeline    augment.Pipeline
	openImage   func(path string) (image.Image, error)
}

// Option customizes a Generator.
type Option func(*Generator)

// WithFontManager shares an existing font cache.
func WithFontManager(fm *render.FontManager) Option {
	return func(g *Generator) { g.fontManager = fm }
}

// WithImageOpener replaces the background decoder.
func WithImageOpener(open func(path string) (image.Image, error)) Option {
	return func(g *Generator) { g.openImage = open }
}

// New checks that every essential asset is present and builds a Generator.
func New(cfg *config.Config, words corpus.Corpus, fonts, backgrounds []string, opts ...Option) (*Generator, error) {
	switch {
	case len(words) == 0:
		return nil, ErrEmptyCorpus
	case len(words) < cfg.Dataset.WordCountRange[0]:
		return nil, fmt.Errorf("%w: %d words, need %d", ErrCorpusTooShort, len(words), cfg.Dataset.WordCountRange[0])
	case len(fonts) == 0:
		return nil, ErrNoFonts
	case len(backgrounds) == 0:
		return nil, ErrNoBackgrounds
	}

	g := &Generator{
		cfg:         cfg,
		words:       words,
		fonts:       fonts,
		backgrounds: backgrounds,
		pipeline:    augment.NewPipeline(cfg.Augmentations),
		openImage:   openBackground,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.fontManager == nil {
		fm, err := render.NewFontManager()
		if err != nil {
			return nil, err
		}
		g.fontManager = fm
	}
	return g, nil
}

// Pipeline returns the augmentation pipeline built from the config.
func (g *Generator) Pipeline() augment.Pipeline { return g.pipeline }

// Generate builds the sample for index using rng for every random choice.
func (g *Generator) Generate(rng *rand.Rand, index int) (*Sample, error) {
	count := min(g.cfg.Dataset.WordCountRange.Int(rng), len(g.words))
	start := rng.IntN(len(g.words) - count + 1)
	text := g.words.Snippet(start, count)

	fontPath := g.fonts[rng.IntN(len(g.fonts))]
	bgPath := g.backgrounds[rng.IntN(len(g.backgrounds))]
	fontSize := g.cfg.Text.FontSizeRange.Int(rng)

	face, err := g.fontManager.Face(fontPath, float64(fontSize))
	if err != nil {
		return nil, err
	}
	defer face.Close()

	pad := g.cfg.Text.Padding
	bounds := render.Measure(face, text)
	w, h := render.CanvasSize(bounds, pad)

	bg, err := g.openImage(bgPath)
	if err != nil {
		return nil, err
	}
	base, err := canvas.Fit(bg, w, h, rng)
	if err != nil {
		return nil, fmt.Errorf("background %s: %w", bgPath, err)
	}

	render.Draw(base, face, text, bounds, pad, render.TextColor(g.cfg.Text.Color, rng))

	return &Sample{
		Index:          index,
		Filename:       Filename(index),
		Text:           text,
		Image:          g.pipeline.Apply(base, rng),
		FontPath:       fontPath,
		FontSize:       fontSize,
		BackgroundPath: bgPath,
		Canvas:         image.Pt(w, h),
	}, nil
}

// Filename returns the image file name for a 1-based index.
func Filename(index int) string {
	return fmt.Sprintf("image_%05d.png", index)
}

// SeedFor returns the random source for one image. Output depends only on
// (seed, index), never on which worker runs it.
func SeedFor(seed uint64, index int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(index)))
}

func openBackground(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open background %s: %w", path, err)
	}
	return img, nil
}
