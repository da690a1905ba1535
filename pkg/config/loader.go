// loader.go — Read config.yaml, apply defaults, and validate.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xob0t/textsynth/pkg/augment"
)

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML, applies defaults and environment overrides, and
// validates the result. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// num_images: 0 is a valid request, so only an absent key is defaulted.
	var keys explicitKeys
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if keys.Dataset.NumImages == nil {
		cfg.Dataset.NumImages = DefaultNumImages
	}

	ApplyDefaults(&cfg)
	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultNumImages is used when dataset.num_images is absent.
const DefaultNumImages = 100

// explicitKeys records keys whose zero value differs from "not set".
type explicitKeys struct {
	Dataset struct {
		NumImages *int `yaml:"num_images"`
	} `yaml:"dataset"`
}

// ApplyDefaults fills fields left empty in the file. dataset.num_images is
// handled by Parse, which can tell an explicit 0 from a missing key.
func ApplyDefaults(cfg *Config) {
	d := &cfg.Dataset
	if d.WordCountRange == (augment.IntRange{}) {
		d.WordCountRange = augment.IntRange{1, 5}
	}
	if d.Workers <= 0 {
		d.Workers = 1
	}
	if d.OnError == "" {
		d.OnError = OnErrorSkip
	}

	if cfg.Paths.OutputDir == "" {
		cfg.Paths.OutputDir = "output"
	}

	t := &cfg.Text
	if t.FontSizeRange == (augment.IntRange{}) {
		t.FontSizeRange = augment.IntRange{24, 48}
	}
	if t.Color.Enabled && t.Color.RGBRange == (augment.IntRange{}) {
		t.Color.RGBRange = augment.IntRange{0, 255}
	}
	if t.Color.Fixed == "" {
		t.Color.Fixed = "#000000"
	}

	if cfg.Augmentations.BrightnessContrast.ContrastRange == (augment.Range{}) {
		cfg.Augmentations.BrightnessContrast.ContrastRange = augment.Range{1, 1}
	}

	// Older configs spell salt-and-pepper "s&p".
	if cfg.Augmentations.Noise.Type == "s&p" {
		cfg.Augmentations.Noise.Type = augment.NoiseSaltPepper
	}
}
