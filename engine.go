package fireworks

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"
)

// Clock supplies the current time to the engine.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// FrameObserver receives the statistics of every Redraw.
type FrameObserver interface {
	ObserveFrame(FrameStats)
}

// FrameObserverFunc adapts a function to the FrameObserver interface.
type FrameObserverFunc func(FrameStats)

// ObserveFrame calls f.
func (f FrameObserverFunc) ObserveFrame(s FrameStats) { f(s) }

const defaultStatsWindow = 300

// Options configures a new Engine. The zero value is usable.
type Options struct {
	// Config supplies rates, seed, fade easing and tuning. Nil uses
	// DefaultConfig. A zero seed draws a random one.
	Config *Config
	// Logger defaults to slog.Default.
	Logger *slog.Logger
	// Clock defaults to the system clock.
	Clock Clock
	// StatsWindow is the number of frames kept for Stats. Default 300.
	StatsWindow int
	// ManualPacing skips the background loop. The caller drives Redraw
	// itself, for example a headless run on a simulated clock.
	ManualPacing bool
}

// Engine owns the particle registry, the run state and the pacing loop.
//
// Start, Pause, Stop, the setters and the getters are safe to call from any
// goroutine. Redraw, Resize and Burst are serialized against each other and
// are meant to be called from the host's rendering thread.
type Engine struct {
	host   Host
	log    *slog.Logger
	clock  Clock
	manual bool

	state atomic.Uint32

	// mu guards the fields below and every state transition.
	mu             sync.Mutex
	framerate      float64
	launchRate     float64
	interval       time.Duration
	launchInterval time.Duration
	stop           chan struct{}
	run            uint64
	resumeTo       State
	suspended      bool
	closed         bool
	sinks          []EventSink
	observers      []FrameObserver
	wg             sync.WaitGroup

	// Set by Start and SetLaunchRate, consumed by the next Redraw.
	resetClock  atomic.Bool
	resetLaunch atomic.Bool

	// drawMu serializes Redraw, Resize and Burst and guards the fields below.
	drawMu        sync.Mutex
	env           *Env
	reg           *Registry
	lastFrame     time.Time
	lastLaunch    time.Time
	width, height float64
	frame         uint64
	stale         []int
	events        []Event
	last          FrameStats

	stats *StatsWindow
}

// New creates a stopped engine that requests redraws from host.
func New(host Host, opts Options) *Engine {
	cfg := opts.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e := &Engine{
		host:   host,
		log:    opts.Logger,
		clock:  opts.Clock,
		manual: opts.ManualPacing,
		reg:    NewRegistry(),
		stale:  make([]int, 0, 64),
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	if e.clock == nil {
		e.clock = systemClock{}
	}
	if opts.StatsWindow <= 0 {
		opts.StatsWindow = defaultStatsWindow
	}
	e.stats = NewStatsWindow(opts.StatsWindow)

	fade, err := LookupFadeCurve(cfg.Engine.FadeEasing)
	if err != nil {
		e.log.Warn("unknown fade easing, using linear", "easing", cfg.Engine.FadeEasing)
	}
	seed := cfg.Engine.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	e.env = NewEnv(seed, cfg.Tuning, fade)

	e.setFramerateLocked(cfg.Engine.Framerate)
	e.setLaunchRateLocked(cfg.Engine.LaunchRate)
	e.log.Debug("engine created",
		"seed", seed,
		"framerate", e.framerate,
		"launch_rate", e.launchRate,
		"fade", cfg.Engine.FadeEasing)
	return e
}

// State returns the current run state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Framerate returns the target redraws per second.
func (e *Engine) Framerate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.framerate
}

// Interval returns the time between redraw requests.
func (e *Engine) Interval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.interval
}

// LaunchRate returns the rockets launched per second while running.
func (e *Engine) LaunchRate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.launchRate
}

// SetFramerate sets the redraw rate, rounded and clamped to
// [MinimumFramerate, MaximumFramerate]. Particles already alive keep the
// framerate they were created with.
func (e *Engine) SetFramerate(v float64) {
	e.mu.Lock()
	e.setFramerateLocked(v)
	fr := e.framerate
	e.mu.Unlock()
	e.log.Debug("framerate set", "framerate", fr)
}

func (e *Engine) setFramerateLocked(v float64) {
	e.framerate = clampRound(v, MinimumFramerate, MaximumFramerate)
	e.interval = time.Duration(float64(time.Second) / e.framerate)
}

// SetLaunchRate sets the rockets per second, rounded and clamped to
// [MinimumLaunchRate, MaximumLaunchRate], and restarts the launch clock.
func (e *Engine) SetLaunchRate(v float64) {
	e.mu.Lock()
	e.setLaunchRateLocked(v)
	rate := e.launchRate
	e.mu.Unlock()
	e.resetLaunch.Store(true)
	e.log.Debug("launch rate set", "launch_rate", rate)
}

func (e *Engine) setLaunchRateLocked(v float64) {
	e.launchRate = clampRound(v, MinimumLaunchRate, MaximumLaunchRate)
	e.launchInterval = time.Duration(float64(time.Second) / e.launchRate)
}

// AddEventSink registers a sink for launch, explode and state events.
func (e *Engine) AddEventSink(s EventSink) {
	if s == nil {
		return
	}
	e.mu.Lock()
	e.sinks = append(e.sinks, s)
	e.mu.Unlock()
}

// AddFrameObserver registers an observer called after every Redraw.
func (e *Engine) AddFrameObserver(o FrameObserver) {
	if o == nil {
		return
	}
	e.mu.Lock()
	e.observers = append(e.observers, o)
	e.mu.Unlock()
}

// Start begins or resumes the animation. From Stopped it starts the pacing
// loop; from Paused it only resets the frame clock so the pause does not
// count as elapsed time. Starting a running or closed engine does nothing.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	prev := e.State()
	switch prev {
	case Running:
		e.mu.Unlock()
		return
	case Stopped:
		e.run++
		e.stop = make(chan struct{})
		if !e.manual {
			e.wg.Add(1)
			go e.loop(e.stop, e.run)
		}
	}
	e.suspended = false
	e.resetClock.Store(true)
	e.state.Store(uint32(Running))
	e.mu.Unlock()
	e.transitioned(prev, Running)
}

// Pause freezes physics and launching while rendering continues. It only
// acts on a running engine.
func (e *Engine) Pause() {
	e.mu.Lock()
	if e.State() != Running {
		e.mu.Unlock()
		return
	}
	e.state.Store(uint32(Paused))
	e.mu.Unlock()
	e.transitioned(Running, Paused)
}

// Stop halts the animation and removes every particle. The loop goroutine
// exits on its next wake after requesting one last redraw.
func (e *Engine) Stop() {
	e.mu.Lock()
	prev := e.State()
	e.suspended = false
	if prev == Stopped {
		e.mu.Unlock()
		return
	}
	e.stopLocked()
	e.mu.Unlock()
	e.transitioned(prev, Stopped)
}

func (e *Engine) stopLocked() {
	e.state.Store(uint32(Stopped))
	if e.stop != nil {
		close(e.stop)
		e.stop = nil
	}
	e.reg.Clear()
}

// Close stops the engine and waits for the pacing loop to exit. A closed
// engine cannot be started again.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.Stop()
	e.wg.Wait()
}

// Suspend stops the engine because its surface went away, remembering the
// state to restore on Resume.
func (e *Engine) Suspend() {
	e.mu.Lock()
	prev := e.State()
	if prev == Stopped || e.suspended {
		e.mu.Unlock()
		return
	}
	e.stopLocked()
	e.resumeTo = prev
	e.suspended = true
	e.mu.Unlock()
	e.transitioned(prev, Stopped)
}

// Resume restores the state saved by Suspend. It does nothing unless the
// engine is suspended.
func (e *Engine) Resume() {
	e.mu.Lock()
	if !e.suspended {
		e.mu.Unlock()
		return
	}
	to := e.resumeTo
	e.suspended = false
	e.mu.Unlock()

	e.Start()
	if to == Paused {
		e.Pause()
	}
}

// Suspended reports whether the engine is waiting for Resume.
func (e *Engine) Suspended() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.suspended
}

// transitioned logs a state change and notifies the sinks. It must be
// called without holding mu.
func (e *Engine) transitioned(from, to State) {
	e.log.Debug("state change", "from", from, "to", to)
	e.emit(Event{Type: EventStateChange, State: to, Previous: from})
}

func (e *Engine) emit(events ...Event) {
	if len(events) == 0 {
		return
	}
	e.mu.Lock()
	sinks := e.sinks
	e.mu.Unlock()
	for _, ev := range events {
		for _, s := range sinks {
			s.EmitEvent(ev)
		}
	}
}

// Env returns the spawn context shared by the engine's particles. It must
// only be used from the rendering thread.
func (e *Engine) Env() *Env { return e.env }

// Len returns the number of live particles.
func (e *Engine) Len() int { return e.reg.Len() }

// Particles returns a snapshot of the live particles. The particles are
// owned by the engine and are only valid until the next Redraw.
func (e *Engine) Particles() []*Particle {
	return e.reg.Snapshot(nil)
}

// Stats summarizes the most recent frames.
func (e *Engine) Stats() Summary {
	return e.stats.Summary()
}

// LastFrame returns the statistics of the most recent Redraw.
func (e *Engine) LastFrame() FrameStats {
	e.drawMu.Lock()
	defer e.drawMu.Unlock()
	return e.last
}

// Resize records a new canvas size. A running engine discards its
// particles, since their paths were computed for the old size.
func (e *Engine) Resize(width, height float64) {
	e.drawMu.Lock()
	defer e.drawMu.Unlock()
	e.resizeLocked(width, height)
}

func (e *Engine) resizeLocked(width, height float64) {
	if width == e.width && height == e.height {
		return
	}
	e.width, e.height = width, height
	if e.State() == Running {
		e.reg.Clear()
		e.log.Debug("canvas resized, particles cleared", "width", width, "height", height)
	}
}

// Burst explodes a random pattern in a random hue at the given canvas
// location. It does nothing while stopped.
func (e *Engine) Burst(at Vector) Burst {
	e.drawMu.Lock()
	if e.State() == Stopped {
		e.drawMu.Unlock()
		return Burst{}
	}
	c := HueToColor(e.env.Rand, 0)
	b := AddSparks(e.env, e.reg, at, c, e.Framerate())
	frame := e.frame
	e.drawMu.Unlock()

	e.emit(Event{Type: EventExplode, Frame: frame, Location: at, Color: c, Spark: b.Kind, Count: b.Count})
	return b
}

// Redraw advances and renders one frame onto c. While Running it launches a
// rocket when the launch interval has elapsed and updates every particle;
// while Paused it only renders; while Stopped it draws nothing. Particles
// that are done are removed after the pass, and rockets explode instead of
// rendering on their final frame.
func (e *Engine) Redraw(c Canvas) {
	e.drawMu.Lock()

	passStart := time.Now()
	now := e.clock.Now()
	if e.resetClock.Swap(false) {
		e.lastFrame = now
		e.lastLaunch = now
	}
	if e.resetLaunch.Swap(false) {
		e.lastLaunch = now
	}
	elapsed := now.Sub(e.lastFrame)
	e.lastFrame = now
	e.frame++

	state := e.State()
	fs := FrameStats{
		Frame:     e.frame,
		ElapsedMs: float64(elapsed) / float64(time.Millisecond),
		State:     state.String(),
	}
	if state == Stopped {
		e.finishFrame(fs, passStart)
		return
	}

	w, h := c.Size()
	e.resizeLocked(w, h)

	e.mu.Lock()
	framerate := e.framerate
	launchInterval := e.launchInterval
	e.mu.Unlock()

	if state == Running && now.Sub(e.lastLaunch) >= launchInterval && w > 0 && h > 0 {
		e.lastLaunch = now
		p := LaunchRocket(e.env, e.reg, w, h, framerate)
		fs.Launched++
		e.events = append(e.events, Event{Type: EventLaunch, Frame: e.frame, Location: p.Location(), Color: p.Color()})
	}

	e.stale = e.stale[:0]
	n := e.reg.BeginPass()
	for i := 0; i < n; i++ {
		p := e.reg.At(i)
		if p == nil {
			// Cleared by a concurrent Stop.
			break
		}
		state = e.State()
		if state == Stopped {
			break
		}
		if state == Running {
			p.Update(e.reg, fs.ElapsedMs)
		}
		if p.IsDone() {
			e.stale = append(e.stale, i)
			if p.CanExplode() {
				b := p.Explode(e.reg)
				fs.Exploded++
				e.events = append(e.events, Event{
					Type: EventExplode, Frame: e.frame,
					Location: p.Location(), Color: p.Color(),
					Spark: b.Kind, Count: b.Count,
				})
				continue
			}
		}
		if e.State() == Stopped {
			break
		}
		p.Render(c)
		fs.Rendered++
	}
	fs.Removed, fs.Spawned = e.reg.EndPass(e.stale)
	if e.State() == Stopped {
		// Children merged after a concurrent Stop must not survive it.
		e.reg.Clear()
	}
	e.finishFrame(fs, passStart)
}

// finishFrame completes fs, records it, releases drawMu and then delivers
// the frame's events and statistics.
func (e *Engine) finishFrame(fs FrameStats, passStart time.Time) {
	fs.Rockets, fs.Sparks, fs.Trails = e.reg.Counts()
	fs.Particles = fs.Rockets + fs.Sparks + fs.Trails
	fs.PassMicros = time.Since(passStart).Microseconds()
	e.last = fs
	events := e.events
	e.events = nil
	e.drawMu.Unlock()

	e.stats.Record(fs)
	e.emit(events...)

	e.mu.Lock()
	observers := e.observers
	e.mu.Unlock()
	for _, o := range observers {
		o.ObserveFrame(fs)
	}
}
