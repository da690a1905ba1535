// textsynth: synthetic text-image dataset generator for OCR training.
//
// Usage:
//
//	textsynth [generate] [-config path] [-n N] [-yes] [-workers N] [-seed S]
//	textsynth sample -o <file> [-config path] [-seed S] [-index I]
//	textsynth serve [-config path] [-port 8080]
//	textsynth init [-config config.yaml]
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/xob0t/textsynth/clients/server"
	"github.com/xob0t/textsynth/pkg/config"
	"github.com/xob0t/textsynth/pkg/corpus"
	"github.com/xob0t/textsynth/pkg/dataset"
	"github.com/xob0t/textsynth/pkg/generator"
	"github.com/xob0t/textsynth/pkg/logging"
)

func main() {
	config.LoadDotEnv()
	logger := logging.New(os.Getenv("APP_ENV"))

	args := os.Args[1:]
	cmd := "generate"
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "generate":
		err = runGenerate(args, logger)
	case "sample":
		err = runSample(args, logger)
	case "serve":
		err = runServe(args, logger)
	case "init":
		err = runInit(args)
	case "help":
		printUsage()
	default:
		printUsage()
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		fatal(err)
	}
}

// setup loads the config and every asset a run needs. Missing corpus, fonts
// or backgrounds are returned as errors.
func setup(configPath string, seed uint64, logger zerolog.Logger) (*config.Config, *generator.Generator, error) {
	path := config.ConfigPath(configPath)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range config.Warnings(cfg) {
		logger.Warn().Str("config", path).Msg(w)
	}

	if seed != 0 {
		cfg.Dataset.Seed = seed
	}
	if cfg.Dataset.Seed == 0 {
		cfg.Dataset.Seed = uint64(time.Now().UnixNano())
		logger.Info().Uint64("seed", cfg.Dataset.Seed).Msg("no seed configured, using time-based seed")
	}

	words, err := corpus.Load(cfg.Paths.CorpusDir, logger)
	if err != nil {
		return nil, nil, err
	}
	fonts, err := corpus.Assets(cfg.Paths.FontsDir, corpus.FontExtensions...)
	if err != nil {
		return nil, nil, fmt.Errorf("fonts: %w", err)
	}
	backgrounds, err := corpus.Assets(cfg.Paths.BackgroundsDir, corpus.BackgroundExtensions...)
	if err != nil {
		return nil, nil, fmt.Errorf("backgrounds: %w", err)
	}
	logger.Info().Int("fonts", len(fonts)).Int("backgrounds", len(backgrounds)).Msg("assets discovered")

	gen, err := generator.New(cfg, words, fonts, backgrounds)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Strs("augmentations", gen.Pipeline().Enabled()).Msg("generator ready")
	return cfg, gen, nil
}

func runGenerate(args []string, logger zerolog.Logger) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		configPath string
		count      int
		yes        bool
		workers    int
		seed       uint64
	)
	fs.StringVar(&configPath, "config", "", "Path to config YAML (default $TEXTSYNTH_CONFIG or config.yaml)")
	fs.IntVar(&count, "n", -1, "Number of images (skips the prompt)")
	fs.BoolVar(&yes, "yes", false, "Do not ask for confirmation")
	fs.IntVar(&workers, "workers", 0, "Worker goroutines (default from config)")
	fs.Uint64Var(&seed, "seed", 0, "Base seed (default from config)")
	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, gen, err := setup(configPath, seed, logger)
	if err != nil {
		return err
	}
	if workers > 0 {
		cfg.Dataset.Workers = workers
	}

	in := bufio.NewReader(os.Stdin)
	if count < 0 {
		count = promptCount(in, os.Stdout, cfg.Dataset.NumImages)
	}
	if !yes && !confirm(in, os.Stdout, count, cfg.Paths.OutputDir) {
		fmt.Println("Cancelled.")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := dataset.Run(ctx, gen, dataset.Options{
		OutputDir:    cfg.Paths.OutputDir,
		Count:        count,
		Workers:      cfg.Dataset.Workers,
		Seed:         cfg.Dataset.Seed,
		AbortOnError: cfg.Dataset.OnError == config.OnErrorAbort,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	if rep.Interrupted {
		fmt.Printf("Interrupted: %d of %d images written, labels in %s\n", rep.Completed, rep.Requested, rep.LabelsPath)
		return nil
	}
	fmt.Printf("Done: %d images (%d failed), labels in %s\n", rep.Completed, rep.Failed, rep.LabelsPath)
	return nil
}

func runSample(args []string, logger zerolog.Logger) error {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	var (
		output     string
		configPath string
		seed       uint64
		index      int
	)
	fs.StringVar(&output, "o", "", "Output PNG path")
	fs.StringVar(&output, "output", "", "Output PNG path")
	fs.StringVar(&configPath, "config", "", "Path to config YAML")
	fs.Uint64Var(&seed, "seed", 0, "Base seed (default from config)")
	fs.IntVar(&index, "index", 1, "Image index")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if output == "" {
		printUsage()
		return errors.New("output file is required (-o)")
	}
	if index < 1 {
		return fmt.Errorf("index must be >= 1, got %d", index)
	}

	cfg, gen, err := setup(configPath, seed, logger)
	if err != nil {
		return err
	}
	s, err := gen.Generate(generator.SeedFor(cfg.Dataset.Seed, index), index)
	if err != nil {
		return err
	}
	if err := generator.WritePNG(output, s.Image); err != nil {
		return err
	}
	logger.Debug().Str("font", s.FontPath).Int("size", s.FontSize).Str("background", s.BackgroundPath).Msg("sample rendered")
	fmt.Printf("%s\t%s\n", output, s.Text)
	return nil
}

func runServe(args []string, logger zerolog.Logger) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var configPath, port string
	fs.StringVar(&configPath, "config", "", "Path to config YAML")
	fs.StringVar(&port, "port", "8080", "Listen port")
	fs.StringVar(&port, "p", "8080", "Listen port")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, gen, err := setup(configPath, 0, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("textsynth preview → http://localhost:%s/api/sample?index=1\n", port)
	return server.New(cfg, gen, logger).Serve(ctx, ":"+port)
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var out string
	var force bool
	fs.StringVar(&out, "config", "config.yaml", "Output path for the example config")
	fs.BoolVar(&force, "force", false, "Overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := os.Stat(out); err == nil && !force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", out)
	}
	if err := os.WriteFile(out, []byte(config.ExampleYAML()), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Created: %s\n", out)
	fmt.Println("Run: textsynth -config " + out)
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`textsynth — synthetic text images for OCR training

USAGE:
    textsynth [generate] [options]
    textsynth sample -o <file> [options]
    textsynth serve [--port 8080]
    textsynth init [--config config.yaml]

GENERATE:
    --config <path>     Config YAML (default: $TEXTSYNTH_CONFIG or config.yaml)
    -n <count>          Number of images; prompts when omitted
    --yes               Skip the confirmation prompt
    --workers <n>       Worker goroutines (default: dataset.workers)
    --seed <n>          Base seed (default: dataset.seed, 0 = time-based)

SAMPLE:
    -o, --output <path> Output PNG
    --index <n>         Image index (default: 1)
    --seed <n>          Base seed

PREVIEW SERVER:
    textsynth serve [--port 8080]
    GET /healthz, /api/config, /api/sample?seed=S&index=I

ENVIRONMENT:
    TEXTSYNTH_CONFIG, TEXTSYNTH_SEED, TEXTSYNTH_WORKERS, TEXTSYNTH_OUTPUT_DIR,
    APP_ENV=development for console logs. A .env file is loaded if present.

EXAMPLES:
    textsynth init
    textsynth -n 1000 --yes --workers 8
    textsynth sample -o preview.png --index 42
`)
}
