package trackswipe

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawDebugOverlay prints the current FPS and TPS in the top-left corner.
func drawDebugOverlay(dst *ebiten.Image) {
	fillRect(dst, Rect{X: 0, Y: 0, Width: 100, Height: 32}, Color{A: 0.5})
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()), 2, 0)
}
