package ebitenhost

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/fireworks"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Background is the clear color. The zero value is opaque black.
	Background fireworks.Color
	// Antialias smooths rectangles and lines at some cost per draw.
	Antialias bool
	// Paused starts the engine paused instead of running.
	Paused bool
	// ScreenshotDir receives the PNGs saved by ActionScreenshot. Empty
	// means "screenshots".
	ScreenshotDir string
}

// Game implements ebiten.Game around an engine.
type Game struct {
	engine *fireworks.Engine
	host   *Host
	cfg    RunConfig
	list   *fireworks.DisplayList
	input  inputState
	fps    *overlay

	actions       []Action
	width, height int
	minimized     bool
	shots         int
}

// NewGame wires engine to the ebiten callbacks. host must be the Host the
// engine was created with.
func NewGame(engine *fireworks.Engine, host *Host, cfg RunConfig) *Game {
	if cfg.Background.A == 0 {
		cfg.Background.A = 255
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	g := &Game{
		engine: engine,
		host:   host,
		cfg:    cfg,
		list:   fireworks.NewDisplayList(float64(cfg.Width), float64(cfg.Height)),
	}
	if cfg.ShowFPS {
		g.fps = newOverlay()
	}
	return g
}

// Update handles input and window visibility, then runs a pending redraw.
func (g *Game) Update() error {
	var clicked bool
	g.actions, clicked = g.input.poll(g.actions[:0])
	for _, a := range g.actions {
		if a == ActionScreenshot {
			g.shots++
			continue
		}
		apply(g.engine, a)
	}
	if clicked {
		mx, my := ebiten.CursorPosition()
		g.engine.Burst(fireworks.Vector{X: float64(mx), Y: float64(my)})
	}

	g.setMinimized(ebiten.IsWindowMinimized())
	g.pump()

	if g.fps != nil {
		g.fps.update(1/float64(ebiten.TPS()), g.engine)
	}
	return nil
}

// setMinimized suspends the engine while the window is hidden and restores
// its previous state when it comes back.
func (g *Game) setMinimized(minimized bool) {
	if minimized == g.minimized {
		return
	}
	g.minimized = minimized
	if minimized {
		g.engine.Suspend()
	} else {
		g.engine.Resume()
	}
}

// pump records a new frame if the engine asked for one.
func (g *Game) pump() bool {
	if !g.host.take() {
		return false
	}
	g.list.Reset()
	g.list.Width, g.list.Height = float64(g.width), float64(g.height)
	g.engine.Redraw(g.list)
	return true
}

// Draw replays the most recent frame.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background)
	g.list.Replay(screenCanvas{dst: screen, antialias: g.cfg.Antialias})
	if g.shots > 0 {
		g.shots = 0
		if path, err := saveScreenshot(screen, g.cfg.ScreenshotDir, time.Now()); err != nil {
			slog.Error("screenshot failed", "err", err)
		} else {
			slog.Info("screenshot saved", "path", path)
		}
	}
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

// Layout uses the window size as the canvas size and forwards changes to
// the engine.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.engine.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and animates engine until the window closes. The
// engine is started (or paused, per cfg) before the window opens and closed
// afterwards.
func Run(engine *fireworks.Engine, host *Host, cfg RunConfig) error {
	if cfg.Title == "" {
		cfg.Title = "Fireworks"
	}
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// Poll often enough to serve the highest engine framerate.
	ebiten.SetTPS(fireworks.MaximumFramerate)

	g := NewGame(engine, host, cfg)
	engine.Start()
	if cfg.Paused {
		engine.Pause()
	}
	err := ebiten.RunGame(g)
	host.Close()
	engine.Close()
	if err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}
