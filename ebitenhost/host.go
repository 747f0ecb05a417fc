// Package ebitenhost runs a fireworks engine in an ebiten window.
//
// The engine's pacing goroutine calls Host.RequestRedraw, which only queues
// a token. Game.Update drains the token on ebiten's thread, runs
// Engine.Redraw into a display list, and Game.Draw replays the list onto the
// screen every frame.
package ebitenhost

import (
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/fireworks"
)

// Host queues redraw requests for the ebiten thread.
type Host struct {
	redraw chan struct{}
	closed atomic.Bool
}

// NewHost creates an open host.
func NewHost() *Host {
	return &Host{redraw: make(chan struct{}, 1)}
}

// RequestRedraw queues a redraw. Requests coalesce while one is pending.
// It returns false once the host is closed.
func (h *Host) RequestRedraw() bool {
	if h.closed.Load() {
		return false
	}
	select {
	case h.redraw <- struct{}{}:
	default:
	}
	return true
}

// Close marks the window as gone; later requests fail.
func (h *Host) Close() {
	h.closed.Store(true)
}

// take reports whether a redraw was pending, consuming it.
func (h *Host) take() bool {
	select {
	case <-h.redraw:
		return true
	default:
		return false
	}
}

// screenCanvas draws onto an ebiten image.
type screenCanvas struct {
	dst       *ebiten.Image
	antialias bool
}

func (s screenCanvas) DrawRect(x, y, w, h float64, c fireworks.Color) {
	if c.A == 0 {
		return
	}
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), c, s.antialias)
}

func (s screenCanvas) DrawLine(x0, y0, x1, y1 float64, c fireworks.Color) {
	if c.A == 0 {
		return
	}
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), 1, c, s.antialias)
}

func (s screenCanvas) Size() (float64, float64) {
	b := s.dst.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}
