package thicket

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawItem is one entry of the per-frame draw list, in viewport coordinates.
type drawItem struct {
	image    *ebiten.Image // costume; nil for a solid fill
	bounds   Rect
	fill     Color
	hasFill  bool
	alpha    float64
	rotation float64 // radians
	ellipse  bool
}

// ellipseSize is the edge of the cached circle texture used for ellipse fills.
const ellipseSize = 64

var ellipseImage *ebiten.Image

// ellipseTexture lazily rasterizes a white circle that is stretched to each
// ellipse's bounds.
func ellipseTexture() *ebiten.Image {
	if ellipseImage == nil {
		ellipseImage = ebiten.NewImage(ellipseSize, ellipseSize)
		r := float32(ellipseSize) / 2
		vector.DrawFilledCircle(ellipseImage, r, r, r, color.White, true)
	}
	return ellipseImage
}

// EbitenRenderer is the Ebitengine backend. DrawPass snapshots the visible
// sprites and particles into a draw list; Paint replays it onto the screen
// during ebiten's Draw.
type EbitenRenderer struct {
	// ClearColor fills the screen before drawing. Zero alpha leaves ebiten's
	// default clear.
	ClearColor Color
	// ShowFPS overlays the engine's FPS and TPS counters.
	ShowFPS bool
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	width, height float64
	scale         float64

	engine *Engine
	items  []drawItem
	drawFn func(screen *ebiten.Image)

	screenshotQueue []string
}

// NewEbitenRenderer creates a renderer for a window of width by height
// pixels divided by scale into world units.
func NewEbitenRenderer(width, height int, scale float64) *EbitenRenderer {
	if scale <= 0 {
		scale = 1
	}
	return &EbitenRenderer{
		width:         float64(width) / scale,
		height:        float64(height) / scale,
		scale:         scale,
		ScreenshotDir: "screenshots",
	}
}

// bind is called by Engine.Init.
func (r *EbitenRenderer) bind(e *Engine) {
	r.engine = e
	r.drawFn = e.settings.Draw
	if e.settings.ShowFPS {
		r.ShowFPS = true
	}
}

// ViewportWidth implements Renderer.
func (r *EbitenRenderer) ViewportWidth() float64 { return r.width }

// ViewportHeight implements Renderer.
func (r *EbitenRenderer) ViewportHeight() float64 { return r.height }

// Scale returns the window-pixels-per-world-unit factor.
func (r *EbitenRenderer) Scale() float64 { return r.scale }

// Layout records the window size and returns the logical screen size; hook
// it into ebiten.Game.Layout.
func (r *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	r.width = math.Floor(float64(outsideWidth) / r.scale)
	r.height = math.Floor(float64(outsideHeight) / r.scale)
	return int(r.width), int(r.height)
}

// DrawPass implements Renderer. It collects on-screen, non-hidden sprites in
// stage order followed by particles.
func (r *EbitenRenderer) DrawPass() {
	r.items = r.items[:0]
	if r.engine == nil {
		return
	}
	g, cam := r.engine.game, r.engine.camera

	for _, e := range g.sprites {
		s := e.AsSprite()
		if s.Effects.Hidden || !cam.IsOnScreen(s.Bounds()) {
			continue
		}
		r.items = append(r.items, makeDrawItem(&s.Object, &s.Effects, s.Costumes.Image(), cam))
	}
	for _, e := range g.particles {
		p := e.AsParticle()
		if p.Effects.Hidden || !cam.IsOnScreen(p.Bounds()) {
			continue
		}
		r.items = append(r.items, makeDrawItem(&p.Object, &p.Effects, nil, cam))
	}
}

func makeDrawItem(o *Object, fx *Effects, img *ebiten.Image, cam *Camera) drawItem {
	sx, sy := cam.WorldToScreen(o.X, o.Y)
	it := drawItem{
		image:    img,
		bounds:   Rect{X: sx, Y: sy, Width: o.Width, Height: o.Height},
		alpha:    fx.alpha(),
		rotation: fx.Rotation * math.Pi / 180,
		ellipse:  fx.IsEllipse,
	}
	it.fill, it.hasFill = o.fillColor()
	return it
}

// Paint draws the latest draw list, the host Draw callback and the overlay.
func (r *EbitenRenderer) Paint(screen *ebiten.Image) {
	if r.ClearColor.A > 0 {
		screen.Fill(r.ClearColor.toRGBA())
	}
	if r.engine != nil {
		if bg := r.engine.game.background; bg != nil {
			b := bg.Bounds()
			var op ebiten.DrawImageOptions
			op.GeoM.Scale(r.width/float64(b.Dx()), r.height/float64(b.Dy()))
			screen.DrawImage(bg, &op)
		}
	}

	var op ebiten.DrawImageOptions
	for i := range r.items {
		drawOne(screen, &r.items[i], &op)
	}

	if r.drawFn != nil {
		r.drawFn(screen)
	}
	if r.ShowFPS && r.engine != nil {
		drawFPS(screen, r.engine.FPS(), r.engine.TPS())
	}
	r.flushScreenshots(screen)
}

// drawOne draws a single item: the costume if set, otherwise the fill.
func drawOne(screen *ebiten.Image, it *drawItem, op *ebiten.DrawImageOptions) {
	src := it.image
	tint := ColorWhite
	if src == nil {
		if !it.hasFill {
			return
		}
		tint = it.fill
		src = WhitePixel
		if it.ellipse {
			src = ellipseTexture()
		}
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	op.GeoM.Reset()
	op.GeoM.Scale(it.bounds.Width/float64(b.Dx()), it.bounds.Height/float64(b.Dy()))
	if it.rotation != 0 {
		op.GeoM.Translate(-it.bounds.Width/2, -it.bounds.Height/2)
		op.GeoM.Rotate(it.rotation)
		op.GeoM.Translate(it.bounds.Width/2, it.bounds.Height/2)
	}
	op.GeoM.Translate(it.bounds.X, it.bounds.Y)

	a := float32(it.alpha)
	op.ColorScale.Reset()
	op.ColorScale.Scale(float32(tint.R)*a, float32(tint.G)*a, float32(tint.B)*a, a)
	screen.DrawImage(src, op)
}
