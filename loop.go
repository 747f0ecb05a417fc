package fireworks

import "time"

// loop paces redraw requests for one run. It exits when the run's stop
// channel closes, asking the host for one final redraw so the surface is
// cleared, or when the host reports its surface is gone.
func (e *Engine) loop(stop <-chan struct{}, run uint64) {
	defer e.wg.Done()

	timer := time.NewTimer(e.Interval())
	defer timer.Stop()
	for {
		select {
		case <-stop:
			e.host.RequestRedraw()
			return
		case <-timer.C:
		}

		switch e.State() {
		case Running, Paused:
			if !e.host.RequestRedraw() {
				e.hostLost(run)
				return
			}
		}
		timer.Reset(e.Interval())
	}
}

// hostLost stops the engine after the host refused a redraw, unless a
// newer run has started in the meantime.
func (e *Engine) hostLost(run uint64) {
	e.mu.Lock()
	prev := e.State()
	if e.run != run || prev == Stopped {
		e.mu.Unlock()
		return
	}
	e.stopLocked()
	e.mu.Unlock()

	e.log.Warn("redraw surface unavailable, stopping", "run", run)
	e.transitioned(prev, Stopped)
}
