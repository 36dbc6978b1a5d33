package thicket

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// CostumeNone is the reserved costume name meaning "draw no image".
const CostumeNone = "NONE"

// Effects are the visual modifiers honored by the renderer.
type Effects struct {
	// Hidden skips drawing entirely.
	Hidden bool
	// Rotation is in degrees, clockwise, about the object's center.
	Rotation float64
	// IsEllipse draws the fill as an ellipse inscribed in the bounds.
	IsEllipse bool

	transparency float64
}

// Transparency returns the transparency percentage (0 opaque, 100 invisible).
func (e *Effects) Transparency() float64 { return e.transparency }

// SetTransparency sets the transparency percentage. Values outside [0, 100]
// fail with ErrInvalidParameter and leave the current value unchanged.
func (e *Effects) SetTransparency(t float64) error {
	if t < 0 || t > 100 || t != t {
		return fmt.Errorf("%w: transparency %v outside [0,100]", ErrInvalidParameter, t)
	}
	e.transparency = t
	return nil
}

// alpha returns the draw alpha derived from transparency.
func (e *Effects) alpha() float64 {
	return (100 - e.transparency) / 100
}

// Costumes maps names to images with one current selection.
type Costumes struct {
	images  map[string]*ebiten.Image
	order   []string
	current string
}

func newCostumes() Costumes {
	return Costumes{images: make(map[string]*ebiten.Image), current: CostumeNone}
}

// Add registers img under name. CostumeNone cannot be redefined.
func (c *Costumes) Add(name string, img *ebiten.Image) error {
	if name == CostumeNone || name == "" {
		return fmt.Errorf("%w: costume name %q is reserved", ErrInvalidParameter, name)
	}
	if img == nil {
		return fmt.Errorf("%w: costume %q has no image", ErrInvalidParameter, name)
	}
	if c.images == nil {
		c.images = make(map[string]*ebiten.Image)
	}
	if _, ok := c.images[name]; !ok {
		c.order = append(c.order, name)
	}
	c.images[name] = img
	return nil
}

// Set selects the current costume. CostumeNone is always accepted.
func (c *Costumes) Set(name string) error {
	if name != CostumeNone {
		if _, ok := c.images[name]; !ok {
			return fmt.Errorf("%w: unknown costume %q", ErrInvalidParameter, name)
		}
	}
	c.current = name
	return nil
}

// Current returns the selected costume name.
func (c *Costumes) Current() string {
	if c.current == "" {
		return CostumeNone
	}
	return c.current
}

// Image returns the selected costume image, or nil for CostumeNone.
func (c *Costumes) Image() *ebiten.Image {
	if c.current == CostumeNone {
		return nil
	}
	return c.images[c.current]
}

// Names returns costume names in registration order.
func (c *Costumes) Names() []string {
	return c.order
}

// Next advances to the costume after the current one, wrapping around.
// No-op when no costumes are registered.
func (c *Costumes) Next() {
	if len(c.order) == 0 {
		return
	}
	for i, n := range c.order {
		if n == c.current {
			c.current = c.order[(i+1)%len(c.order)]
			return
		}
	}
	c.current = c.order[0]
}

// Sprite is a drawable, collidable entity ordered by StageLevel.
type Sprite struct {
	Object

	// Costumes holds the sprite's images.
	Costumes Costumes
	// Effects holds visual modifiers.
	Effects Effects

	stageLevel float64
}

// SpriteEntity is an Entity backed by a Sprite.
type SpriteEntity interface {
	Entity
	AsSprite() *Sprite
}

// NewSprite creates a sprite. It is not registered; call Game.AddSprite.
// An empty id generates one. Fails with ErrDuplicateID if id is live.
func (g *Game) NewSprite(id string, x, y, w, h float64, color string) (*Sprite, error) {
	obj, err := g.newObject("sprite", id, x, y, w, h, color)
	if err != nil {
		return nil, err
	}
	return &Sprite{Object: obj, Costumes: newCostumes()}, nil
}

// Kind returns KindSprite.
func (s *Sprite) Kind() Kind { return KindSprite }

// AsSprite returns s.
func (s *Sprite) AsSprite() *Sprite { return s }

// StageLevel returns the draw-order key; lower levels draw first.
func (s *Sprite) StageLevel() float64 { return s.stageLevel }

// SetStageLevel changes the draw-order key and re-sorts the registry when the
// sprite is registered.
func (s *Sprite) SetStageLevel(level float64) {
	s.stageLevel = level
	if s.game != nil && s.game.indexOfSprite(&s.Object) >= 0 {
		s.game.sortSprites()
	}
}

// Collision returns the collision helper bound to this sprite.
func (s *Sprite) Collision() Collision {
	return Collision{self: s}
}

// sortSprites restores ascending StageLevel order. Stable, so equal levels
// keep insertion order.
func (g *Game) sortSprites() {
	sort.SliceStable(g.sprites, func(i, j int) bool {
		return g.sprites[i].AsSprite().stageLevel < g.sprites[j].AsSprite().stageLevel
	})
}
