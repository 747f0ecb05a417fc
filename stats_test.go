package fireworks

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
)

func TestStatsWindowRing(t *testing.T) {
	w := NewStatsWindow(3)
	if w.Len() != 0 {
		t.Fatalf("empty window len = %d", w.Len())
	}
	for i := uint64(1); i <= 5; i++ {
		w.Record(FrameStats{Frame: i})
	}
	if w.Len() != 3 {
		t.Fatalf("len = %d, want 3", w.Len())
	}
	frames := w.Frames()
	for i, want := range []uint64{3, 4, 5} {
		if frames[i].Frame != want {
			t.Errorf("frames[%d] = %d, want %d", i, frames[i].Frame, want)
		}
	}
}

func TestStatsWindowSummary(t *testing.T) {
	w := NewStatsWindow(10)
	if s := w.Summary(); s.Frames != 0 {
		t.Fatalf("empty summary = %+v", s)
	}

	for i, ms := range []float64{10, 20, 30, 40} {
		w.Record(FrameStats{
			ElapsedMs:  ms,
			Particles:  (i + 1) * 100,
			Launched:   1,
			Exploded:   i % 2,
			PassMicros: int64(ms),
		})
	}
	s := w.Summary()
	if s.Frames != 4 {
		t.Errorf("frames = %d, want 4", s.Frames)
	}
	if s.ElapsedMean != 25 {
		t.Errorf("elapsed mean = %v, want 25", s.ElapsedMean)
	}
	// Sample standard deviation of 10, 20, 30, 40.
	if want := math.Sqrt(500.0 / 3); math.Abs(s.ElapsedStd-want) > 1e-9 {
		t.Errorf("elapsed std = %v, want %v", s.ElapsedStd, want)
	}
	if s.ElapsedP50 != 20 || s.ElapsedP90 != 40 {
		t.Errorf("elapsed quantiles = (%v, %v), want (20, 40)", s.ElapsedP50, s.ElapsedP90)
	}
	if s.ParticlesMean != 250 || s.ParticlesMax != 400 {
		t.Errorf("particles = (%v, %d), want (250, 400)", s.ParticlesMean, s.ParticlesMax)
	}
	if s.Launched != 4 || s.Exploded != 2 {
		t.Errorf("launched/exploded = %d/%d, want 4/2", s.Launched, s.Exploded)
	}

	one := NewStatsWindow(5)
	one.Record(FrameStats{ElapsedMs: 16})
	if s := one.Summary(); s.ElapsedStd != 0 || s.ElapsedMean != 16 {
		t.Errorf("single frame summary = %+v", s)
	}
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	for i := uint64(1); i <= 3; i++ {
		if err := w.Write(FrameStats{Frame: i, State: "running", Particles: int(i) * 10}); err != nil {
			t.Fatal(err)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3 rows:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "frame,elapsed_ms,state,particles") {
		t.Errorf("header = %q", lines[0])
	}

	rows, err := ReadCSV(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[2].Frame != 3 || rows[2].Particles != 30 || rows[0].State != "running" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestCreateCSV(t *testing.T) {
	if w, err := CreateCSV(""); w != nil || err != nil {
		t.Errorf("CreateCSV(\"\") = (%v, %v), want disabled writer", w, err)
	}
	var nilWriter *CSVWriter
	if err := nilWriter.Write(FrameStats{}); err != nil {
		t.Errorf("nil writer Write: %v", err)
	}
	if err := nilWriter.Close(); err != nil {
		t.Errorf("nil writer Close: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out", "frames.csv")
	w, err := CreateCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	w.ObserveFrame(FrameStats{Frame: 1})
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestCSVWriterObserveKeepsError(t *testing.T) {
	w := NewCSVWriter(failingWriter{})
	w.ObserveFrame(FrameStats{Frame: 1})
	w.ObserveFrame(FrameStats{Frame: 2})
	if err := w.Close(); !errors.Is(err, errDiskFull) {
		t.Errorf("Close = %v, want %v", err, errDiskFull)
	}

	ok := NewCSVWriter(&bytes.Buffer{})
	ok.ObserveFrame(FrameStats{Frame: 1})
	if err := ok.Close(); err != nil {
		t.Errorf("Close after clean writes = %v", err)
	}
}

func TestDisplayListReplay(t *testing.T) {
	d := NewDisplayList(320, 240)
	d.DrawRect(1, 2, 3, 4, ColorRed)
	d.DrawLine(0, 0, 10, 10, ColorGold)
	d.DrawRect(5, 5, 1, 1, ColorWhite)

	if d.Count(OpRect) != 2 || d.Count(OpLine) != 1 {
		t.Errorf("counts = %d rects, %d lines", d.Count(OpRect), d.Count(OpLine))
	}
	if w, h := d.Size(); w != 320 || h != 240 {
		t.Errorf("Size = %vx%v", w, h)
	}

	c := &recordCanvas{w: 320, h: 240}
	d.Replay(c)
	if c.rects != 2 || c.lines != 1 {
		t.Errorf("replayed %d rects, %d lines", c.rects, c.lines)
	}

	d.Reset()
	if len(d.Ops) != 0 {
		t.Errorf("Reset left %d ops", len(d.Ops))
	}
}
