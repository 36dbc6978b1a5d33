package thicket

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game is the registry of live entities. Sprites are kept in ascending
// StageLevel order (stable); particles keep insertion order and draw after
// all sprites.
type Game struct {
	sprites   []SpriteEntity
	particles []ParticleEntity

	background *ebiten.Image

	// reused by the engine for update snapshots
	spriteBuf   []SpriteEntity
	particleBuf []ParticleEntity
}

// NewGame creates an empty registry.
func NewGame() *Game {
	return &Game{}
}

// AddSprite registers sprites that are not already present and re-sorts the
// registry by StageLevel. Re-adding a registered sprite is a no-op. A sprite
// whose id is held by a different live entity fails with ErrDuplicateID;
// sprites before it in the argument list stay registered.
func (g *Game) AddSprite(sprites ...SpriteEntity) error {
	added := false
	var err error
	for _, s := range sprites {
		if s == nil {
			continue
		}
		if g.indexOfSprite(s.Base()) >= 0 {
			continue
		}
		if e, ok := g.GetByID(s.Base().id); ok && e.Base() != s.Base() {
			err = fmt.Errorf("%w: %q", ErrDuplicateID, s.Base().id)
			break
		}
		s.Base().game = g
		g.sprites = append(g.sprites, s)
		added = true
	}
	if added {
		g.sortSprites()
	}
	return err
}

// AddParticle registers particles that are not already present, in order.
func (g *Game) AddParticle(particles ...ParticleEntity) error {
	for _, p := range particles {
		if p == nil {
			continue
		}
		if g.indexOfParticle(p.Base()) >= 0 {
			continue
		}
		if e, ok := g.GetByID(p.Base().id); ok && e.Base() != p.Base() {
			return fmt.Errorf("%w: %q", ErrDuplicateID, p.Base().id)
		}
		p.Base().game = g
		g.particles = append(g.particles, p)
	}
	return nil
}

// GetByID returns the live entity with the given id.
func (g *Game) GetByID(id string) (Entity, bool) {
	for _, s := range g.sprites {
		if s.Base().id == id {
			return s, true
		}
	}
	for _, p := range g.particles {
		if p.Base().id == id {
			return p, true
		}
	}
	return nil, false
}

// GetByKind returns every live entity whose kind is k or derives from k:
// sprites in stage order, then particles in insertion order.
func (g *Game) GetByKind(k Kind) []Entity {
	var out []Entity
	for _, s := range g.sprites {
		if s.Kind().Is(k) {
			out = append(out, s)
		}
	}
	for _, p := range g.particles {
		if p.Kind().Is(k) {
			out = append(out, p)
		}
	}
	return out
}

// Contains reports whether e is registered.
func (g *Game) Contains(e Entity) bool {
	if e == nil {
		return false
	}
	return g.indexOfSprite(e.Base()) >= 0 || g.indexOfParticle(e.Base()) >= 0
}

// Sprites returns the registered sprites in draw order. The returned slice
// MUST NOT be mutated.
func (g *Game) Sprites() []SpriteEntity {
	return g.sprites
}

// Particles returns the registered particles. The returned slice MUST NOT be mutated.
func (g *Game) Particles() []ParticleEntity {
	return g.particles
}

// Platformers returns every registered Platformer-kind sprite.
func (g *Game) Platformers() []PlatformerEntity {
	return g.appendPlatformers(nil)
}

func (g *Game) appendPlatformers(buf []PlatformerEntity) []PlatformerEntity {
	for _, s := range g.sprites {
		if p, ok := s.(PlatformerEntity); ok && s.Kind().Is(KindPlatformer) {
			buf = append(buf, p)
		}
	}
	return buf
}

// DeleteByID unregisters the entity with the given id, if any.
func (g *Game) DeleteByID(id string) {
	g.sprites = filterInPlace(g.sprites, func(s SpriteEntity) bool { return s.Base().id != id })
	g.particles = filterInPlace(g.particles, func(p ParticleEntity) bool { return p.Base().id != id })
}

// DeleteByKind unregisters every entity whose kind is k or derives from k.
func (g *Game) DeleteByKind(k Kind) {
	g.sprites = filterInPlace(g.sprites, func(s SpriteEntity) bool { return !s.Kind().Is(k) })
	g.particles = filterInPlace(g.particles, func(p ParticleEntity) bool { return !p.Kind().Is(k) })
}

// Delete unregisters e, if registered.
func (g *Game) Delete(e Entity) {
	if e == nil {
		return
	}
	b := e.Base()
	g.sprites = filterInPlace(g.sprites, func(s SpriteEntity) bool { return s.Base() != b })
	g.particles = filterInPlace(g.particles, func(p ParticleEntity) bool { return p.Base() != b })
}

// DeleteAll unregisters every entity. The static background is kept.
func (g *Game) DeleteAll() {
	clear(g.sprites)
	clear(g.particles)
	g.sprites = g.sprites[:0]
	g.particles = g.particles[:0]
}

// --- Background ---

// SetBackgroundImage sets a static image stretched over the whole viewport
// behind every sprite. nil removes it.
func (g *Game) SetBackgroundImage(img *ebiten.Image) {
	g.background = img
}

// BackgroundImage returns the static background, or nil.
func (g *Game) BackgroundImage() *ebiten.Image {
	return g.background
}

// SetBackgroundImageAt registers a world-space background: a stage level 0
// sprite at (x, y) sized w by h whose only costume is img. The sprite is
// returned so the host can move or delete it.
func (g *Game) SetBackgroundImageAt(img *ebiten.Image, x, y, w, h float64) (*Sprite, error) {
	s, err := g.NewSprite(NewID("background"), x, y, w, h, "")
	if err != nil {
		return nil, err
	}
	if err := s.Costumes.Add("background", img); err != nil {
		return nil, err
	}
	if err := s.Costumes.Set("background"); err != nil {
		return nil, err
	}
	if err := g.AddSprite(s); err != nil {
		return nil, err
	}
	return s, nil
}

// --- internal ---

func (g *Game) indexOfSprite(b *Object) int {
	for i, s := range g.sprites {
		if s.Base() == b {
			return i
		}
	}
	return -1
}

func (g *Game) indexOfParticle(b *Object) int {
	for i, p := range g.particles {
		if p.Base() == b {
			return i
		}
	}
	return -1
}

// snapshot copies the registry into reusable buffers so entity updates may
// add or delete entities without disturbing the current step's iteration.
func (g *Game) snapshot() ([]SpriteEntity, []ParticleEntity) {
	g.spriteBuf = append(g.spriteBuf[:0], g.sprites...)
	g.particleBuf = append(g.particleBuf[:0], g.particles...)
	return g.spriteBuf, g.particleBuf
}

// filterInPlace keeps the elements for which keep returns true and zeroes the tail.
func filterInPlace[T any](s []T, keep func(T) bool) []T {
	n := 0
	for _, v := range s {
		if keep(v) {
			s[n] = v
			n++
		}
	}
	clear(s[n:])
	return s[:n]
}
