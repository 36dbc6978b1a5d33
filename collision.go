package thicket

// Collision answers overlap queries for one sprite against the live registry.
// It holds no state of its own, so every query sees the registry as it is at
// call time.
type Collision struct {
	self *Sprite
}

// Touching reports whether the sprite overlaps other.
func (c Collision) Touching(other SpriteEntity) bool {
	if other == nil {
		return false
	}
	o := other.AsSprite()
	if o == c.self {
		return false
	}
	return Touching(c.self.Bounds(), o.Bounds())
}

// TouchingAny returns every other registered sprite overlapping this one, in
// registry order.
func (c Collision) TouchingAny() []SpriteEntity {
	return c.touchingAt(c.self.Bounds())
}

// Probe returns the registered sprites that would overlap this one if it were
// displaced one unit toward d. The sprite itself is not moved.
func (c Collision) Probe(d Direction) []SpriteEntity {
	dx, dy := d.offset()
	return c.touchingAt(c.self.Bounds().Offset(dx, dy))
}

// touchingAt tests a hypothetical bounding box for the sprite against every
// other registered sprite.
func (c Collision) touchingAt(r Rect) []SpriteEntity {
	g := c.self.game
	if g == nil {
		return nil
	}
	var out []SpriteEntity
	for _, e := range g.sprites {
		s := e.AsSprite()
		if s == c.self {
			continue
		}
		if Touching(r, s.Bounds()) {
			out = append(out, e)
		}
	}
	return out
}

// platformersOnly filters sprites down to Platformer-kind entities.
func platformersOnly(list []SpriteEntity) []PlatformerEntity {
	var out []PlatformerEntity
	for _, e := range list {
		if p, ok := e.(PlatformerEntity); ok && e.Kind().Is(KindPlatformer) {
			out = append(out, p)
		}
	}
	return out
}
