// labels.go — labels.csv writer and reader.
package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

const labelsHeader = "filename,text\n"

// Label pairs an image file with the exact text rendered into it.
type Label struct {
	Filename string
	Text     string
}

// LabelWriter appends one fully quoted row per image and flushes after each
// row, so an interrupted run leaves a readable file behind.
type LabelWriter struct {
	f    *os.File
	w    *bufio.Writer
	rows int
}

// CreateLabels truncates path and writes the header.
func CreateLabels(path string) (*LabelWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create labels: %w", err)
	}
	lw := &LabelWriter{f: f, w: bufio.NewWriter(f)}
	if _, err := lw.w.WriteString(labelsHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("write labels header: %w", err)
	}
	if err := lw.w.Flush(); err != nil {
		f.Close()
		return nil, fmt.Errorf("write labels header: %w", err)
	}
	return lw, nil
}

// Append writes `"filename","text"`, doubling any embedded quotes.
func (lw *LabelWriter) Append(l Label) error {
	row := quote(l.Filename) + "," + quote(l.Text) + "\n"
	if _, err := lw.w.WriteString(row); err != nil {
		return fmt.Errorf("write label %s: %w", l.Filename, err)
	}
	if err := lw.w.Flush(); err != nil {
		return fmt.Errorf("flush label %s: %w", l.Filename, err)
	}
	lw.rows++
	return nil
}

// Rows returns the number of rows appended so far.
func (lw *LabelWriter) Rows() int { return lw.rows }

// Close flushes and closes the file.
func (lw *LabelWriter) Close() error {
	if err := lw.w.Flush(); err != nil {
		lw.f.Close()
		return fmt.Errorf("flush labels: %w", err)
	}
	return lw.f.Close()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ReadLabels parses a labels file written by LabelWriter.
func ReadLabels(path string) ([]Label, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open labels: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse labels: %w", err)
	}
	if len(rows) == 0 || rows[0][0] != "filename" || rows[0][1] != "text" {
		return nil, fmt.Errorf("labels %s: missing header", path)
	}

	labels := make([]Label, 0, len(rows)-1)
	for _, row := range rows[1:] {
		labels = append(labels, Label{Filename: row[0], Text: row[1]})
	}
	return labels, nil
}
