// Package config loads the YAML configuration that drives dataset generation.
// A Config is read once and then shared read-only by every generation call.
package config

import (
	"github.com/xob0t/textsynth/pkg/augment"
	"github.com/xob0t/textsynth/pkg/render"
)

// Failure policies for dataset.on_error.
const (
	OnErrorSkip  = "skip"  // log the failed index and keep going
	OnErrorAbort = "abort" // stop the whole run
)

// Config is the top-level structure of config.yaml.
type Config struct {
	Paths         Paths          `yaml:"paths" json:"paths"`
	Dataset       Dataset        `yaml:"dataset" json:"dataset"`
	Text          Text           `yaml:"text" json:"text"`
	Augmentations augment.Config `yaml:"augmentations" json:"augmentations"`
}

// Paths locates the inputs and the output directory.
type Paths struct {
	CorpusDir      string `yaml:"corpus_dir" json:"corpus_dir"`
	FontsDir       string `yaml:"fonts_dir" json:"fonts_dir"`
	BackgroundsDir string `yaml:"backgrounds_dir" json:"backgrounds_dir"`
	OutputDir      string `yaml:"output_dir" json:"output_dir"`
}

// Dataset controls how many images are produced and how.
type Dataset struct {
	NumImages      int              `yaml:"num_images" json:"num_images"`
	WordCountRange augment.IntRange `yaml:"word_count_range" json:"word_count_range"`
	Seed           uint64           `yaml:"seed" json:"seed"` // 0 = time-based
	Workers        int              `yaml:"workers" json:"workers"`
	OnError        string           `yaml:"on_error" json:"on_error"` // "skip" or "abort"
}

// Text controls snippet rendering.
type Text struct {
	FontSizeRange augment.IntRange   `yaml:"font_size_range" json:"font_size_range"`
	Padding       render.Padding     `yaml:"padding" json:"padding"`
	Color         render.ColorConfig `yaml:"color" json:"color"`
}
