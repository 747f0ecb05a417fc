package fireworks

// Vector is an immutable 2D value used for locations and per-tick velocities.
type Vector struct {
	X, Y float64
}

// Zero is the vector with both components set to zero.
var Zero = Vector{}

// Add returns the component-wise sum of v and o.
func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y}
}

// Sub returns the component-wise difference v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y}
}

// Scale returns v with both components multiplied by s.
func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * s, v.Y * s}
}

// Range is a (Start, End) pair used for the rocket's ascent corridors.
// Start is not required to be less than End.
type Range struct {
	Start, End float64
}

// Contains reports whether x lies between Start and End inclusive, in either order.
func (r Range) Contains(x float64) bool {
	lo, hi := r.Start, r.End
	if lo > hi {
		lo, hi = hi, lo
	}
	return x >= lo && x <= hi
}

// Span returns |End - Start|.
func (r Range) Span() float64 {
	if r.End > r.Start {
		return r.End - r.Start
	}
	return r.Start - r.End
}
