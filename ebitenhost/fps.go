package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/fireworks"
)

// overlay shows FPS, TPS and engine status in the top-left corner. The text
// is re-rendered every ~0.5 seconds.
type overlay struct {
	img     *ebiten.Image
	elapsed float64
}

func newOverlay() *overlay {
	// 160x64 fits four lines of debug text.
	return &overlay{img: ebiten.NewImage(160, 64), elapsed: 1}
}

func (o *overlay) update(dt float64, e *fireworks.Engine) {
	o.elapsed += dt
	if o.elapsed < 0.5 {
		return
	}
	o.elapsed = 0

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\n%s @ %.0f/s\nparticles: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), e.State(), e.Framerate(), e.Len()))
}

func (o *overlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}
