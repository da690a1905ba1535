// Package server provides the textsynth preview server: it renders single
// samples on demand so a config can be inspected before a full run.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xob0t/textsynth/pkg/config"
	"github.com/xob0t/textsynth/pkg/generator"
)

// ── Sample cache ──

type rendered struct {
	PNG      []byte
	Label    string
	Filename string
}

type sampleKey struct {
	seed  uint64
	index int
}

// sampleCache keeps the most recent renders. Samples are pure functions of
// (seed, index), so entries never go stale.
type sampleCache struct {
	mu      sync.RWMutex
	limit   int
	order   []sampleKey
	entries map[sampleKey]*rendered
}

func newSampleCache(limit int) *sampleCache {
	return &sampleCache{limit: limit, entries: make(map[sampleKey]*rendered)}
}

func (c *sampleCache) get(k sampleKey) (*rendered, bool) {
	c.mu.RLock()
	r, ok := c.entries[k]
	c.mu.RUnlock()
	return r, ok
}

func (c *sampleCache) add(k sampleKey, r *rendered) {
	if c.limit <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[k]; ok {
		return
	}
	if len(c.order) >= c.limit {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}
	c.order = append(c.order, k)
	c.entries[k] = r
}

// ── Server ──

// Server serves previews for one loaded configuration.
type Server struct {
	cfg    *config.Config
	src    generator.SampleSource
	logger zerolog.Logger
	cache  *sampleCache
}

// New builds a Server around an already constructed sample source.
func New(cfg *config.Config, src generator.SampleSource, logger zerolog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		src:    src,
		logger: logger,
		cache:  newSampleCache(64),
	}
}

// Handler returns the chi router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		requestLogger(s.logger),
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/config", s.handleConfig)
		r.Get("/sample", s.handleSample)
	})
	return r
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("preview server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info().Msg("preview server stopped")
	return nil
}

func (s *Server) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	s.json(w, http.StatusOK, s.cfg)
}

// ── Sample ──

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	seed := s.cfg.Dataset.Seed
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			s.json(w, http.StatusBadRequest, map[string]string{"error": "invalid seed"})
			return
		}
		seed = n
	}
	index := 1
	if v := q.Get("index"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.json(w, http.StatusBadRequest, map[string]string{"error": "index must be a positive integer"})
			return
		}
		index = n
	}

	key := sampleKey{seed: seed, index: index}
	out, ok := s.cache.get(key)
	if !ok {
		var err error
		out, err = s.render(seed, index)
		if err != nil {
			s.logger.Error().Err(err).Uint64("seed", seed).Int("index", index).Msg("render sample")
			s.json(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		s.cache.add(key, out)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Label", out.Label)
	w.Header().Set("X-Filename", out.Filename)
	w.Write(out.PNG)
}

func (s *Server) render(seed uint64, index int) (*rendered, error) {
	sample, err := s.src.Generate(generator.SeedFor(seed, index), index)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := generator.EncodePNG(&buf, sample.Image); err != nil {
		return nil, err
	}
	return &rendered{PNG: buf.Bytes(), Label: sample.Text, Filename: sample.Filename}, nil
}

// ── Middleware ──

// requestLogger logs one line per request with the chi request id, falling
// back to a fresh uuid when RequestID did not run.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			reqID := middleware.GetReqID(r.Context())
			if reqID == "" {
				reqID = uuid.NewString()
			}
			logger.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("http request")
		})
	}
}
