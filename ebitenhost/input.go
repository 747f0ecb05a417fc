package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/fireworks"
)

// Action is a host command bound to a key.
type Action uint8

const (
	ActionTogglePause Action = iota // running <-> paused; starts a stopped engine
	ActionToggleStop                // stop, or start when stopped
	ActionFaster                    // framerate +framerateStep
	ActionSlower                    // framerate -framerateStep
	ActionMoreRockets               // launch rate +1
	ActionFewerRockets              // launch rate -1
	ActionScreenshot                // save the next frame as a PNG
	actionCount
)

const framerateStep = 10

// bindings maps each action to the keys that trigger it.
var bindings = [actionCount][]ebiten.Key{
	ActionTogglePause:  {ebiten.KeySpace, ebiten.KeyP},
	ActionToggleStop:   {ebiten.KeyS},
	ActionFaster:       {ebiten.KeyEqual, ebiten.KeyNumpadAdd},
	ActionSlower:       {ebiten.KeyMinus, ebiten.KeyNumpadSubtract},
	ActionMoreRockets:  {ebiten.KeyArrowUp},
	ActionFewerRockets: {ebiten.KeyArrowDown},
	ActionScreenshot:   {ebiten.KeyF12},
}

// inputState turns held keys and buttons into press edges.
type inputState struct {
	held      [actionCount]bool
	mouseHeld bool
}

// poll returns the actions whose keys went down since the last poll, and
// whether the left button was just pressed.
func (s *inputState) poll(dst []Action) ([]Action, bool) {
	for a := Action(0); a < actionCount; a++ {
		down := false
		for _, k := range bindings[a] {
			if ebiten.IsKeyPressed(k) {
				down = true
				break
			}
		}
		if down && !s.held[a] {
			dst = append(dst, a)
		}
		s.held[a] = down
	}
	mouse := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	clicked := mouse && !s.mouseHeld
	s.mouseHeld = mouse
	return dst, clicked
}

// apply performs a on e. Actions that concern the window rather than the
// engine are handled by Game.
func apply(e *fireworks.Engine, a Action) {
	switch a {
	case ActionTogglePause:
		if e.State() == fireworks.Running {
			e.Pause()
		} else {
			e.Start()
		}
	case ActionToggleStop:
		if e.State() == fireworks.Stopped {
			e.Start()
		} else {
			e.Stop()
		}
	case ActionFaster:
		e.SetFramerate(e.Framerate() + framerateStep)
	case ActionSlower:
		e.SetFramerate(e.Framerate() - framerateStep)
	case ActionMoreRockets:
		e.SetLaunchRate(e.LaunchRate() + 1)
	case ActionFewerRockets:
		e.SetLaunchRate(e.LaunchRate() - 1)
	}
}
