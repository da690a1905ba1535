// fonts.go - Font loading and caching with an embedded fallback font.
// Uses golang.org/x/image/font/opentype. Parsed fonts are shared between
// goroutines; faces are created per call because font.Face is not safe for
// concurrent use.
package render

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontManager parses each font file once and hands out sized faces.
type FontManager struct {
	mu       sync.RWMutex
	parsed   map[string]*opentype.Font
	fallback *opentype.Font
	dpi      float64
}

// NewFontManager creates a font manager. An empty font path resolves to the
// embedded Go Regular font.
func NewFontManager() (*FontManager, error) {
	fallback, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fallback font: %w", err)
	}
	return &FontManager{
		parsed:   make(map[string]*opentype.Font),
		fallback: fallback,
		dpi:      72,
	}, nil
}

// Font returns the parsed font at path, loading it on first use.
func (fm *FontManager) Font(path string) (*opentype.Font, error) {
	if path == "" {
		return fm.fallback, nil
	}

	fm.mu.RLock()
	f, ok := fm.parsed[path]
	fm.mu.RUnlock()
	if ok {
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	f, err = opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}

	fm.mu.Lock()
	if cached, ok := fm.parsed[path]; ok {
		f = cached
	} else {
		fm.parsed[path] = f
	}
	fm.mu.Unlock()
	return f, nil
}

// Face returns a new font.Face for the font at path and the given pixel size.
// Callers own the face and should Close it.
func (fm *FontManager) Face(path string, size float64) (font.Face, error) {
	f, err := fm.Font(path)
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     fm.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}
