package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xob0t/textsynth/pkg/augment"
	"github.com/xob0t/textsynth/pkg/render"
)

const minimalYAML = `
paths:
  corpus_dir: corpus
  fonts_dir: fonts
  backgrounds_dir: backgrounds
`

func TestParseExample(t *testing.T) {
	cfg, err := Parse([]byte(ExampleYAML()))
	if err != nil {
		t.Fatalf("Parse(ExampleYAML) returned error: %v", err)
	}
	if cfg.Dataset.NumImages != 1000 || cfg.Dataset.Workers != 4 {
		t.Fatalf("dataset mismatch: %+v", cfg.Dataset)
	}
	if cfg.Dataset.WordCountRange != (augment.IntRange{1, 5}) {
		t.Fatalf("word_count_range = %v", cfg.Dataset.WordCountRange)
	}
	if cfg.Text.Padding != (render.Padding{Left: 10, Top: 10, Right: 10, Bottom: 10}) {
		t.Fatalf("padding = %+v", cfg.Text.Padding)
	}
	if cfg.Augmentations.Noise.Type != augment.NoiseSaltPepper {
		t.Fatalf("noise type = %q", cfg.Augmentations.Noise.Type)
	}
	if cfg.Augmentations.Tilt.AngleRange != (augment.Range{-8, 8}) {
		t.Fatalf("tilt angle_range = %v", cfg.Augmentations.Tilt.AngleRange)
	}
	if w := Warnings(cfg); len(w) != 0 {
		t.Fatalf("unexpected warnings: %v", w)
	}
}

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.Dataset.NumImages != 100 {
		t.Errorf("num_images = %d, want 100", cfg.Dataset.NumImages)
	}
	if cfg.Dataset.WordCountRange != (augment.IntRange{1, 5}) {
		t.Errorf("word_count_range = %v", cfg.Dataset.WordCountRange)
	}
	if cfg.Dataset.Workers != 1 || cfg.Dataset.OnError != OnErrorSkip {
		t.Errorf("dataset = %+v", cfg.Dataset)
	}
	if cfg.Paths.OutputDir != "output" {
		t.Errorf("output_dir = %q", cfg.Paths.OutputDir)
	}
	if cfg.Text.FontSizeRange != (augment.IntRange{24, 48}) {
		t.Errorf("font_size_range = %v", cfg.Text.FontSizeRange)
	}
	if cfg.Text.Color.Fixed != "#000000" {
		t.Errorf("color.fixed = %q", cfg.Text.Color.Fixed)
	}
	if cfg.Augmentations.BrightnessContrast.ContrastRange != (augment.Range{1, 1}) {
		t.Errorf("contrast_range = %v", cfg.Augmentations.BrightnessContrast.ContrastRange)
	}
}

func TestParseNormalizesLegacyNoiseType(t *testing.T) {
	yml := minimalYAML + `
augmentations:
  noise:
    enabled: true
    type: "s&p"
    amount_range: [0.01, 0.02]
`
	cfg, err := Parse([]byte(yml))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.Augmentations.Noise.Type != augment.NoiseSaltPepper {
		t.Fatalf("noise type = %q, want %q", cfg.Augmentations.Noise.Type, augment.NoiseSaltPepper)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte(minimalYAML + "\nextra: 1\n")); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestValidateCollectsProblems(t *testing.T) {
	yml := `
paths:
  corpus_dir: corpus
  fonts_dir: ""
  backgrounds_dir: backgrounds
dataset:
  word_count_range: [3, 1]
  on_error: maybe
augmentations:
  blur:
    enabled: true
    kernel_size_range: [2, 2]
  noise:
    amount_range: [0.5, 2]
`
	_, err := Parse([]byte(yml))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("got %v, want ErrInvalid", err)
	}
	for _, want := range []string{
		"paths.fonts_dir is required",
		"dataset.word_count_range",
		"dataset.on_error",
		"kernel_size_range",
		"noise.amount_range",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestWarningsForInertNoise(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML + `
augmentations:
  noise:
    enabled: true
    type: gaussian
`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if w := Warnings(cfg); len(w) != 1 || !strings.Contains(w[0], "gaussian") {
		t.Fatalf("Warnings = %v", w)
	}
}

func TestParseKeepsExplicitZeroImages(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML + `
dataset:
  num_images: 0
`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.Dataset.NumImages != 0 {
		t.Fatalf("num_images = %d, want explicit 0 kept", cfg.Dataset.NumImages)
	}
	if cfg.Dataset.Workers != 1 {
		t.Fatalf("other dataset defaults not applied: %+v", cfg.Dataset)
	}
	if w := Warnings(cfg); len(w) != 1 || !strings.Contains(w[0], "num_images is 0") {
		t.Fatalf("Warnings = %v", w)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvSeed, "42")
	t.Setenv(EnvWorkers, "3")
	t.Setenv(EnvOutputDir, "/tmp/out")

	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.Dataset.Seed != 42 || cfg.Dataset.Workers != 3 || cfg.Paths.OutputDir != "/tmp/out" {
		t.Fatalf("env overrides not applied: %+v %+v", cfg.Dataset, cfg.Paths)
	}

	t.Setenv(EnvSeed, "not-a-number")
	if _, err := Parse([]byte(minimalYAML)); err == nil {
		t.Fatal("expected error for bad seed")
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv(EnvConfig, "")
	if got := ConfigPath(""); got != "config.yaml" {
		t.Fatalf("default ConfigPath = %q", got)
	}
	t.Setenv(EnvConfig, "from-env.yaml")
	if got := ConfigPath(""); got != "from-env.yaml" {
		t.Fatalf("env ConfigPath = %q", got)
	}
	if got := ConfigPath("flag.yaml"); got != "flag.yaml" {
		t.Fatalf("flag ConfigPath = %q", got)
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("TEXTSYNTH_OUTPUT_DIR=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv(EnvOutputDir, "already-set")
	LoadDotEnv(envFile, filepath.Join(dir, "missing.env"))
	if got := os.Getenv(EnvOutputDir); got != "already-set" {
		t.Fatalf("%s = %q, want already-set", EnvOutputDir, got)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(ExampleYAML()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
