// Package colorlog writes saved colors to the plain-text color log and
// renders palette documents in the same style.
package colorlog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ayusman/chromatip/internal/chroma"
	"github.com/ayusman/chromatip/internal/detector"
)

// DefaultFileName is the log file name used when none is configured.
const DefaultFileName = "detected_colors.txt"

var (
	separator = strings.Repeat("-", 30)
	rule      = strings.Repeat("=", 40)
)

// Record is one saved color.
type Record struct {
	Classification chroma.Classification
	Mode           detector.Mode
}

// Log appends records to a text file. Existing content is never rewritten.
type Log struct {
	path string
	mu   sync.Mutex
}

// Open prepares a log at path, creating its directory if needed.
// The file itself is created on the first Append.
func Open(path string) (*Log, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	return &Log{path: path}, nil
}

// Path returns the log file location.
func (l *Log) Path() string {
	return l.path
}

// Append writes r at the end of the log.
func (l *Log) Append(r Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open color log: %w", err)
	}

	if err := WriteRecord(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write color log: %w", err)
	}

	return f.Close()
}

// WriteRecord writes a single log entry:
//
//	Color: red
//	RGB: (255, 0, 0)
//	HEX: #ff0000
//	HSV: (0, 100, 100)
//	Detection Mode: click
//	------------------------------
func WriteRecord(w io.Writer, r Record) error {
	c := r.Classification
	_, err := fmt.Fprintf(w, "Color: %s\nRGB: %s\nHEX: %s\nHSV: %s\nDetection Mode: %s\n%s\n",
		c.Name, c.RGB, c.Hex, c.HSV, r.Mode, separator)
	return err
}

// WritePalette writes colors as a numbered palette document.
func WritePalette(w io.Writer, colors []chroma.Classification) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Color Palette\n%s\n", rule)
	for i, c := range colors {
		fmt.Fprintf(bw, "\nColor %d: %s\nRGB: %s\nHEX: %s\nHSV: %s\nHSL: %s\n%s\n",
			i+1, c.Name, c.RGB, c.Hex, c.HSV, c.HSL, separator)
	}

	return bw.Flush()
}
