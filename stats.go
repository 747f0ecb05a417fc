package fireworks

import (
	"log/slog"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"
)

// FrameStats records what one Redraw did.
type FrameStats struct {
	Frame     uint64  `csv:"frame"`
	ElapsedMs float64 `csv:"elapsed_ms"`
	State     string  `csv:"state"`

	// Registry contents after the pass
	Particles int `csv:"particles"`
	Rockets   int `csv:"rockets"`
	Sparks    int `csv:"sparks"`
	Trails    int `csv:"trails"`

	// Pass activity
	Launched int `csv:"launched"`
	Exploded int `csv:"exploded"`
	Removed  int `csv:"removed"`
	Spawned  int `csv:"spawned"`
	Rendered int `csv:"rendered"`

	PassMicros int64 `csv:"pass_us"`
}

// LogValue implements slog.LogValuer for structured logging.
func (f FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("frame", f.Frame),
		slog.Float64("elapsed_ms", f.ElapsedMs),
		slog.String("state", f.State),
		slog.Int("particles", f.Particles),
		slog.Int("rockets", f.Rockets),
		slog.Int("sparks", f.Sparks),
		slog.Int("trails", f.Trails),
		slog.Int("launched", f.Launched),
		slog.Int("exploded", f.Exploded),
		slog.Int("removed", f.Removed),
		slog.Int64("pass_us", f.PassMicros),
	)
}

// Summary aggregates a window of frames.
type Summary struct {
	Frames int

	ElapsedMean float64 // ms between redraws
	ElapsedStd  float64
	ElapsedP50  float64
	ElapsedP90  float64

	ParticlesMean float64
	ParticlesMax  int

	PassMeanMicros float64
	PassP90Micros  float64

	Launched int
	Exploded int
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("frames", s.Frames),
		slog.Float64("elapsed_mean", s.ElapsedMean),
		slog.Float64("elapsed_std", s.ElapsedStd),
		slog.Float64("elapsed_p50", s.ElapsedP50),
		slog.Float64("elapsed_p90", s.ElapsedP90),
		slog.Float64("particles_mean", s.ParticlesMean),
		slog.Int("particles_max", s.ParticlesMax),
		slog.Float64("pass_mean_us", s.PassMeanMicros),
		slog.Float64("pass_p90_us", s.PassP90Micros),
		slog.Int("launched", s.Launched),
		slog.Int("exploded", s.Exploded),
	)
}

// StatsWindow keeps the most recent frames in a ring buffer. Safe for
// concurrent use.
type StatsWindow struct {
	mu     sync.Mutex
	frames []FrameStats
	next   int
	full   bool
}

// NewStatsWindow returns a window holding up to size frames. A size below 1
// is treated as 1.
func NewStatsWindow(size int) *StatsWindow {
	if size < 1 {
		size = 1
	}
	return &StatsWindow{frames: make([]FrameStats, size)}
}

// Record adds a frame, evicting the oldest when the window is full.
func (w *StatsWindow) Record(f FrameStats) {
	w.mu.Lock()
	w.frames[w.next] = f
	w.next++
	if w.next == len(w.frames) {
		w.next = 0
		w.full = true
	}
	w.mu.Unlock()
}

// Len returns the number of frames held.
func (w *StatsWindow) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.full {
		return len(w.frames)
	}
	return w.next
}

// Frames returns the held frames, oldest first.
func (w *StatsWindow) Frames() []FrameStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.full {
		return append([]FrameStats(nil), w.frames[:w.next]...)
	}
	out := make([]FrameStats, 0, len(w.frames))
	out = append(out, w.frames[w.next:]...)
	return append(out, w.frames[:w.next]...)
}

// Summary computes aggregate statistics over the held frames. An empty
// window yields the zero Summary.
func (w *StatsWindow) Summary() Summary {
	frames := w.Frames()
	n := len(frames)
	if n == 0 {
		return Summary{}
	}

	elapsed := make([]float64, n)
	particles := make([]float64, n)
	pass := make([]float64, n)
	s := Summary{Frames: n}
	for i, f := range frames {
		elapsed[i] = f.ElapsedMs
		particles[i] = float64(f.Particles)
		pass[i] = float64(f.PassMicros)
		s.ParticlesMax = max(s.ParticlesMax, f.Particles)
		s.Launched += f.Launched
		s.Exploded += f.Exploded
	}

	s.ElapsedMean, s.ElapsedStd = stat.MeanStdDev(elapsed, nil)
	if n < 2 {
		s.ElapsedStd = 0 // sample stddev of one value is NaN
	}
	s.ParticlesMean = stat.Mean(particles, nil)
	s.PassMeanMicros = stat.Mean(pass, nil)

	// stat.Quantile requires sorted input.
	sort.Float64s(elapsed)
	sort.Float64s(pass)
	s.ElapsedP50 = stat.Quantile(0.5, stat.Empirical, elapsed, nil)
	s.ElapsedP90 = stat.Quantile(0.9, stat.Empirical, elapsed, nil)
	s.PassP90Micros = stat.Quantile(0.9, stat.Empirical, pass, nil)
	return s
}
