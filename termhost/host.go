package termhost

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/fireworks"
)

// redrawTag marks the interrupt events posted by Host.
type redrawTag struct{}

// Host turns redraw requests into interrupt events on the screen's queue,
// so Redraw runs on the goroutine polling events.
type Host struct {
	screen tcell.Screen
	closed atomic.Bool
}

// NewHost creates a host posting to screen.
func NewHost(screen tcell.Screen) *Host {
	return &Host{screen: screen}
}

// RequestRedraw posts a redraw event. A full event queue drops the request,
// which only delays the frame. It returns false once the host is closed.
func (h *Host) RequestRedraw() bool {
	if h.closed.Load() {
		return false
	}
	_ = h.screen.PostEvent(tcell.NewEventInterrupt(redrawTag{}))
	return true
}

// Close marks the terminal as gone; later requests fail.
func (h *Host) Close() {
	h.closed.Store(true)
}

// Config configures Run.
type Config struct {
	// Background is the terminal fill color. The zero value is black.
	Background fireworks.Color
	// Paused starts the engine paused.
	Paused bool
}

const framerateStep = 10

// Run animates engine on screen until the user quits with q, Esc or
// Ctrl-C, or the screen is finalized. The engine is started before the
// first event and closed on return. The caller owns screen and must call
// Fini afterwards.
//
// Keys: space pauses and resumes, s stops and starts, + and - change the
// framerate, up and down change the launch rate. A left click bursts a
// firework at the pointer.
func Run(screen tcell.Screen, engine *fireworks.Engine, host *Host, cfg Config) error {
	cfg.Background.A = 255
	canvas := NewCanvas(screen)
	canvas.SetBackground(cfg.Background)
	screen.EnableMouse()
	screen.HideCursor()

	w, h := canvas.Size()
	engine.Resize(w, h)
	engine.Start()
	if cfg.Paused {
		engine.Pause()
	}
	defer func() {
		host.Close()
		engine.Close()
	}()

	var ptr pointer
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventInterrupt:
			if _, ok := ev.Data().(redrawTag); !ok {
				continue
			}
			canvas.Clear()
			engine.Redraw(canvas)
			screen.Show()
		case *tcell.EventResize:
			screen.Sync()
			engine.Resize(canvas.Size())
		case *tcell.EventKey:
			if !handleKey(engine, ev) {
				return nil
			}
		case *tcell.EventMouse:
			ptr.handle(engine, ev)
		}
	}
}

// pointer tracks the left button so a held button or a drag bursts once.
type pointer struct {
	held bool
}

// handle bursts at the cell under ev when the left button goes down. It
// reports whether a burst was requested.
func (p *pointer) handle(e *fireworks.Engine, ev *tcell.EventMouse) bool {
	down := ev.Buttons()&tcell.Button1 != 0
	pressed := down && !p.held
	p.held = down
	if !pressed {
		return false
	}
	x, y := ev.Position()
	e.Burst(fireworks.Vector{
		X: float64(x*CellWidth + CellWidth/2),
		Y: float64(y*CellHeight + CellHeight/2),
	})
	return true
}

// handleKey applies a key binding. It returns false when the key quits.
func handleKey(e *fireworks.Engine, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		e.SetLaunchRate(e.LaunchRate() + 1)
	case tcell.KeyDown:
		e.SetLaunchRate(e.LaunchRate() - 1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case ' ', 'p':
			if e.State() == fireworks.Running {
				e.Pause()
			} else {
				e.Start()
			}
		case 's':
			if e.State() == fireworks.Stopped {
				e.Start()
			} else {
				e.Stop()
			}
		case '+', '=':
			e.SetFramerate(e.Framerate() + framerateStep)
		case '-':
			e.SetFramerate(e.Framerate() - framerateStep)
		}
	}
	return true
}
