package fireworks

// OpKind identifies a recorded draw operation.
type OpKind uint8

const (
	OpRect OpKind = iota
	OpLine
)

// DrawOp is one recorded draw call. For OpRect (X0, Y0) is the top-left
// corner and (X1, Y1) the width and height; for OpLine they are the two
// end points.
type DrawOp struct {
	Kind           OpKind
	X0, Y0, X1, Y1 float64
	Color          Color
}

// DisplayList is a Canvas that records draw calls instead of executing them.
// Hosts whose rendering happens on a different schedule than Redraw record a
// frame into a DisplayList and replay it later. Not safe for concurrent use.
type DisplayList struct {
	Width, Height float64
	Ops           []DrawOp
}

// NewDisplayList returns an empty list reporting the given canvas size.
func NewDisplayList(width, height float64) *DisplayList {
	return &DisplayList{Width: width, Height: height, Ops: make([]DrawOp, 0, 1024)}
}

// DrawRect records a filled rectangle.
func (d *DisplayList) DrawRect(x, y, w, h float64, c Color) {
	d.Ops = append(d.Ops, DrawOp{Kind: OpRect, X0: x, Y0: y, X1: w, Y1: h, Color: c})
}

// DrawLine records a line.
func (d *DisplayList) DrawLine(x0, y0, x1, y1 float64, c Color) {
	d.Ops = append(d.Ops, DrawOp{Kind: OpLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Color: c})
}

// Size returns the recorded canvas size.
func (d *DisplayList) Size() (float64, float64) {
	return d.Width, d.Height
}

// Reset drops the recorded operations, keeping capacity.
func (d *DisplayList) Reset() {
	d.Ops = d.Ops[:0]
}

// Count returns the number of recorded operations of kind k.
func (d *DisplayList) Count(k OpKind) int {
	n := 0
	for _, op := range d.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Replay issues every recorded operation on c in order.
func (d *DisplayList) Replay(c Canvas) {
	for _, op := range d.Ops {
		switch op.Kind {
		case OpRect:
			c.DrawRect(op.X0, op.Y0, op.X1, op.Y1, op.Color)
		case OpLine:
			c.DrawLine(op.X0, op.Y0, op.X1, op.Y1, op.Color)
		}
	}
}
