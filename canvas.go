package fireworks

// Canvas is the drawing surface particles render to. Coordinates have their
// origin at the top-left with Y increasing downward.
type Canvas interface {
	// DrawRect fills the axis-aligned rectangle at (x, y) with size (w, h).
	DrawRect(x, y, w, h float64, c Color)
	// DrawLine strokes a one unit wide line from (x0, y0) to (x1, y1).
	DrawLine(x0, y0, x1, y1 float64, c Color)
	// Size returns the current canvas dimensions. It may change between calls.
	Size() (width, height float64)
}

// Host receives redraw requests from the engine's pacing loop. The request is
// fire-and-forget: the host arranges for Engine.Redraw to be called on its
// rendering thread. RequestRedraw returns false once the surface is gone,
// which stops the engine.
type Host interface {
	RequestRedraw() bool
}

// HostFunc adapts a function to the Host interface.
type HostFunc func() bool

// RequestRedraw calls f.
func (f HostFunc) RequestRedraw() bool {
	return f()
}
