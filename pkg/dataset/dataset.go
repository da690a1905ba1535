// Package dataset runs a whole generation job: it lays out the output
// directory, fans image generation out to a worker pool, and writes
// labels.csv in index order.
package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/xob0t/textsynth/pkg/generator"
)

// Options configures a Run.
type Options struct {
	OutputDir string
	Count     int
	Workers   int
	Seed      uint64
	// AbortOnError stops the run at the first failed image. Otherwise the
	// failure is logged and the index is skipped.
	AbortOnError bool
	Logger       zerolog.Logger
}

// Report summarizes a Run.
type Report struct {
	RunID       string
	Requested   int
	Completed   int
	Failed      int
	Interrupted bool
	LabelsPath  string
	ImagesDir   string
}

type result struct {
	index  int
	sample *generator.Sample
	err    error
}

// ImagesDir and LabelsPath return the output layout under dir.
func ImagesDir(dir string) string  { return filepath.Join(dir, "images") }
func LabelsPath(dir string) string { return filepath.Join(dir, "labels.csv") }

// Run generates opts.Count images with indices 1..Count.
//
// Workers write image files as soon as they are ready; label rows are
// appended in index order. Cancelling ctx stops new work, records what was
// already produced, and returns a Report with Interrupted set and a nil
// error. With AbortOnError the first failure is returned as the error.
func Run(ctx context.Context, src generator.SampleSource, opts Options) (Report, error) {
	rep := Report{
		RunID:      uuid.NewString(),
		Requested:  opts.Count,
		LabelsPath: LabelsPath(opts.OutputDir),
		ImagesDir:  ImagesDir(opts.OutputDir),
	}
	logger := opts.Logger.With().Str("run_id", rep.RunID).Logger()

	if err := os.MkdirAll(rep.ImagesDir, 0o755); err != nil {
		return rep, fmt.Errorf("create images dir: %w", err)
	}
	labels, err := CreateLabels(rep.LabelsPath)
	if err != nil {
		return rep, err
	}

	workers := max(opts.Workers, 1)
	logger.Info().Int("count", opts.Count).Int("workers", workers).Uint64("seed", opts.Seed).Msg("starting generation")

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	indices := make(chan int)
	results := make(chan result, workers)

	g.Go(func() error {
		defer close(indices)
		for i := 1; i <= opts.Count; i++ {
			select {
			case indices <- i:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range indices {
				if gctx.Err() != nil {
					continue
				}
				r := produce(src, opts.Seed, i, rep.ImagesDir)
				results <- r
				if r.err != nil && opts.AbortOnError {
					return fmt.Errorf("image %d: %w", i, r.err)
				}
			}
			return nil
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
		close(results)
	}()

	// Reorder buffer: rows are released only once every lower index is in.
	pending := make(map[int]result)
	next := 1
	var labelErr error
	record := func(r result) {
		if r.err != nil {
			rep.Failed++
			logger.Error().Err(r.err).Int("index", r.index).Msg("image failed")
			return
		}
		if labelErr != nil {
			return
		}
		if err := labels.Append(Label{Filename: r.sample.Filename, Text: r.sample.Text}); err != nil {
			labelErr = err
			cancel()
			return
		}
		rep.Completed = labels.Rows()
		logger.Info().Int("index", r.index).Int("of", opts.Count).Str("file", r.sample.Filename).Msg("generated image")
	}

	for r := range results {
		pending[r.index] = r
		for {
			p, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			record(p)
			next++
		}
	}
	runErr := <-done

	// After an interruption or abort there may be gaps; keep what finished.
	for len(pending) > 0 {
		if p, ok := pending[next]; ok {
			delete(pending, next)
			record(p)
		}
		next++
	}

	if err := labels.Close(); err != nil && labelErr == nil {
		labelErr = err
	}

	rep.Interrupted = ctx.Err() != nil && rep.Completed+rep.Failed < rep.Requested
	ev := logger.Info()
	if rep.Interrupted {
		ev = logger.Warn()
	}
	ev.Int("completed", rep.Completed).Int("failed", rep.Failed).Bool("interrupted", rep.Interrupted).
		Str("labels", rep.LabelsPath).Msg("generation finished")

	switch {
	case labelErr != nil:
		return rep, labelErr
	case runErr != nil:
		return rep, runErr
	}
	return rep, nil
}

// produce generates one image and writes it under imagesDir.
func produce(src generator.SampleSource, seed uint64, index int, imagesDir string) result {
	s, err := src.Generate(generator.SeedFor(seed, index), index)
	if err != nil {
		return result{index: index, err: err}
	}
	if err := generator.WritePNG(filepath.Join(imagesDir, s.Filename), s.Image); err != nil {
		return result{index: index, err: err}
	}
	return result{index: index, sample: s}
}
