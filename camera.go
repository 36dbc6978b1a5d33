package thicket

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Viewport reports the current drawable size in world units. The renderer
// implements it; the camera never caches the values.
type Viewport interface {
	ViewportWidth() float64
	ViewportHeight() float64
}

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is the world-space offset of the viewport's top-left corner.
type Camera struct {
	x, y float64

	game     *Game
	viewport Viewport

	toFollow    SpriteEntity
	scrollTween *scrollAnim
}

// NewCamera creates a camera at the origin for the given registry and viewport.
func NewCamera(g *Game, vp Viewport) *Camera {
	return &Camera{game: g, viewport: vp}
}

// X returns the camera's left edge in world units.
func (c *Camera) X() float64 { return c.x }

// Y returns the camera's top edge in world units.
func (c *Camera) Y() float64 { return c.y }

// Width returns the viewport width, or 0 without a viewport.
func (c *Camera) Width() float64 {
	if c.viewport == nil {
		return 0
	}
	return c.viewport.ViewportWidth()
}

// Height returns the viewport height, or 0 without a viewport.
func (c *Camera) Height() float64 {
	if c.viewport == nil {
		return 0
	}
	return c.viewport.ViewportHeight()
}

// GoTo places the camera, rounding each coordinate to one decimal. Any
// running scroll animation is cancelled.
func (c *Camera) GoTo(x, y float64) {
	c.scrollTween = nil
	c.set(x, y)
}

func (c *Camera) set(x, y float64) {
	c.x = round1(x)
	c.y = round1(y)
}

// SetFollow makes the camera center on s every simulation step. nil hands
// the position back to the host. The camera does not own s: once s leaves
// the registry the camera stops moving.
func (c *Camera) SetFollow(s SpriteEntity) {
	c.toFollow = s
	if s != nil {
		c.scrollTween = nil
	}
}

// Following returns the followed sprite, or nil.
func (c *Camera) Following() SpriteEntity {
	return c.toFollow
}

// ScrollTo animates the camera's top-left corner to (x, y) over duration
// seconds. Ignored while following a sprite.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if c.toFollow != nil {
		return
	}
	if easeFn == nil {
		easeFn = ease.Linear
	}
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.x), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// update advances follow and scroll. Called once per simulation step.
func (c *Camera) update(dt float32) {
	if c.toFollow != nil {
		if c.game != nil && !c.game.Contains(c.toFollow) {
			return
		}
		s := c.toFollow.Base()
		c.set(s.X-c.Width()/2, s.Y-c.Height()/2)
		return
	}

	if c.scrollTween != nil {
		x, y := c.x, c.y
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			x = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			y = float64(val)
			c.scrollTween.doneY = done
		}
		c.set(x, y)
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}
}

// WorldToScreen converts world coordinates to viewport coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return wx - c.x, wy - c.y
}

// ScreenToWorld converts viewport coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return sx + c.x, sy + c.y
}

// VisibleBounds returns the world-space rectangle covered by the viewport.
func (c *Camera) VisibleBounds() Rect {
	return Rect{X: c.x, Y: c.y, Width: c.Width(), Height: c.Height()}
}

// IsOnScreen reports whether r overlaps the visible area.
func (c *Camera) IsOnScreen(r Rect) bool {
	return Touching(r, c.VisibleBounds())
}
