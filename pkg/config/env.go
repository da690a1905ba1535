// env.go — .env loading and environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv and ConfigPath.
const (
	EnvConfig    = "TEXTSYNTH_CONFIG"
	EnvSeed      = "TEXTSYNTH_SEED"
	EnvWorkers   = "TEXTSYNTH_WORKERS"
	EnvOutputDir = "TEXTSYNTH_OUTPUT_DIR"
)

// LoadDotEnv reads .env files into the process environment if they exist.
// Variables already set are not overwritten.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// A missing file is fine.
		_ = godotenv.Load(f)
	}
}

// ConfigPath returns flagValue if set, then $TEXTSYNTH_CONFIG, then "config.yaml".
func ConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := strings.TrimSpace(os.Getenv(EnvConfig)); v != "" {
		return v
	}
	return "config.yaml"
}

// ApplyEnv overrides config fields from the environment.
func ApplyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvSeed)); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Dataset.Seed = seed
	}
	if v := strings.TrimSpace(os.Getenv(EnvWorkers)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		cfg.Dataset.Workers = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutputDir)); v != "" {
		cfg.Paths.OutputDir = v
	}
	return nil
}
