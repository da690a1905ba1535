// Package corpus loads the word pool that snippets are drawn from and
// discovers font and background files.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
)

// Corpus is the ordered word pool. It is never modified after Load.
type Corpus []string

// Snippet joins n words starting at start with single spaces.
func (c Corpus) Snippet(start, n int) string {
	return strings.Join(c[start:start+n], " ")
}

// Extensions discovered by the CLI.
var (
	FontExtensions       = []string{".ttf", ".otf"}
	BackgroundExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff", ".webp"}
)

// Load reads every *.txt file and then every *.docx file in dir, each group
// in name order, and returns their words in reading order. Words are
// NFC-normalized and split on whitespace. A document that cannot be read is
// logged and skipped.
func Load(dir string, logger zerolog.Logger) (Corpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}

	readers := []struct {
		ext  string
		read func(string) (string, error)
	}{
		{".txt", readText},
		{".docx", readDocx},
	}

	var words Corpus
	for _, r := range readers {
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), r.ext) {
				continue
			}
			path := filepath.Join(dir, e.Name())
			text, err := r.read(path)
			if err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable corpus document")
				continue
			}
			words = append(words, strings.Fields(norm.NFC.String(text))...)
		}
	}

	logger.Info().Int("words", len(words)).Str("dir", dir).Msg("corpus loaded")
	return words, nil
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Assets lists the regular files in dir whose extension matches one of exts,
// ignoring case. Subdirectories are not searched.
func Assets(dir string, exts ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read asset dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		ext := filepath.Ext(e.Name())
		for _, want := range exts {
			if strings.EqualFold(ext, want) {
				paths = append(paths, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	return paths, nil
}
