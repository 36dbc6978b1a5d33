package thicket

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// 100x32 is enough for "FPS: 60\nTPS: 60"
var fpsImage *ebiten.Image

// drawFPS paints the engine's last per-second counters in the top-left
// corner. The counters come from the engine's sampler, not ebiten's, so they
// reflect simulation steps rather than ebiten ticks.
func drawFPS(screen *ebiten.Image, fps, tps int) {
	if fpsImage == nil {
		fpsImage = ebiten.NewImage(100, 32)
	}
	fpsImage.Clear()
	// Semi-transparent background for readability
	fpsImage.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(fpsImage, fmt.Sprintf("FPS: %d\nTPS: %d", fps, tps))
	screen.DrawImage(fpsImage, nil)
}
