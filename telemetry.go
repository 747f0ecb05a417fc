package fireworks

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
)

// CSVWriter appends FrameStats rows to a CSV stream. The header is written
// with the first row. A nil *CSVWriter discards everything, so callers can
// leave telemetry disabled without branching.
type CSVWriter struct {
	mu            sync.Mutex
	w             io.Writer
	closer        io.Closer
	headerWritten bool
	observeErr    error
}

// NewCSVWriter writes rows to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

// CreateCSV creates (or truncates) the file at path, creating parent
// directories as needed. An empty path returns a nil writer.
func CreateCSV(path string) (*CSVWriter, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating telemetry directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating telemetry file: %w", err)
	}
	return &CSVWriter{w: f, closer: f}, nil
}

// Write appends one row.
func (c *CSVWriter) Write(f FrameStats) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	records := []FrameStats{f}
	if !c.headerWritten {
		if err := gocsv.Marshal(records, c.w); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		c.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, c.w); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// ObserveFrame writes f so a CSVWriter can be passed to
// Engine.AddFrameObserver. The first write error is logged and kept for
// Close to return.
func (c *CSVWriter) ObserveFrame(f FrameStats) {
	err := c.Write(f)
	if err == nil {
		return
	}
	c.mu.Lock()
	first := c.observeErr == nil
	if first {
		c.observeErr = err
	}
	c.mu.Unlock()
	if first {
		slog.Error("telemetry write failed", "frame", f.Frame, "error", err)
	}
}

// Close closes the underlying file if the writer owns one. It also returns
// the first error ObserveFrame ran into.
func (c *CSVWriter) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	err := c.observeErr
	c.mu.Unlock()
	if c.closer != nil {
		if cerr := c.closer.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing telemetry file: %w", cerr))
		}
	}
	return err
}

// ReadCSV parses rows previously written by a CSVWriter.
func ReadCSV(r io.Reader) ([]FrameStats, error) {
	var rows []FrameStats
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("reading telemetry: %w", err)
	}
	return rows, nil
}
