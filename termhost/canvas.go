// Package termhost runs a fireworks engine in a terminal using tcell.
//
// Each terminal cell stands for a block of CellWidth x CellHeight virtual
// pixels, so particle sizes computed from the canvas height stay
// proportional. Colors are blended toward the background by their alpha,
// since a cell cannot be translucent.
package termhost

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/fireworks"
)

// Virtual pixels per terminal cell. Cells are roughly twice as tall as
// they are wide.
const (
	CellWidth  = 4
	CellHeight = 8
)

const block = '█'

// Canvas draws onto a tcell screen.
type Canvas struct {
	screen     tcell.Screen
	background fireworks.Color
}

// NewCanvas returns a canvas over screen with a black background.
func NewCanvas(screen tcell.Screen) *Canvas {
	return &Canvas{screen: screen, background: fireworks.Color{A: 255}}
}

// SetBackground sets the color translucent particles blend toward.
func (c *Canvas) SetBackground(bg fireworks.Color) {
	c.background = bg
}

// Size returns the screen size in virtual pixels.
func (c *Canvas) Size() (float64, float64) {
	cols, rows := c.screen.Size()
	return float64(cols * CellWidth), float64(rows * CellHeight)
}

// Clear fills the screen with the background color.
func (c *Canvas) Clear() {
	c.screen.Fill(' ', c.bgStyle())
}

// DrawRect fills every cell the rectangle touches.
func (c *Canvas) DrawRect(x, y, w, h float64, col fireworks.Color) {
	if col.A == 0 || w <= 0 || h <= 0 {
		return
	}
	cols, rows := c.screen.Size()
	c0, r0 := toCell(x, y)
	c1, r1 := toCell(x+w-1, y+h-1)
	c1, r1 = max(c1, c0), max(r1, r0)
	c0, c1 = max(c0, 0), min(c1, cols-1)
	r0, r1 = max(r0, 0), min(r1, rows-1)
	style := c.style(col)
	for row := r0; row <= r1; row++ {
		for cx := c0; cx <= c1; cx++ {
			c.screen.SetContent(cx, row, block, nil, style)
		}
	}
}

// DrawLine plots the cells between the end points with Bresenham's
// algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 float64, col fireworks.Color) {
	if col.A == 0 {
		return
	}
	cols, rows := c.screen.Size()
	style := c.style(col)
	cx, cy := toCell(x0, y0)
	ex, ey := toCell(x1, y1)
	dx := abs(ex - cx)
	dy := -abs(ey - cy)
	sx, sy := 1, 1
	if cx > ex {
		sx = -1
	}
	if cy > ey {
		sy = -1
	}
	err := dx + dy
	for {
		if cx >= 0 && cx < cols && cy >= 0 && cy < rows {
			c.screen.SetContent(cx, cy, block, nil, style)
		}
		if cx == ex && cy == ey {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			cx += sx
		}
		if e2 <= dx {
			err += dx
			cy += sy
		}
	}
}

func (c *Canvas) style(col fireworks.Color) tcell.Style {
	return tcell.StyleDefault.
		Foreground(blend(col, c.background)).
		Background(toTcell(c.background))
}

func (c *Canvas) bgStyle() tcell.Style {
	bg := toTcell(c.background)
	return tcell.StyleDefault.Foreground(bg).Background(bg)
}

// blend mixes col over bg by col's alpha.
func blend(col, bg fireworks.Color) tcell.Color {
	a := float64(col.A) / 255
	mix := func(f, b uint8) int32 {
		return int32(math.Round(float64(f)*a + float64(b)*(1-a)))
	}
	return tcell.NewRGBColor(mix(col.R, bg.R), mix(col.G, bg.G), mix(col.B, bg.B))
}

func toTcell(c fireworks.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func toCell(x, y float64) (int, int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
