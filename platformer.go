package thicket

// contactNudge separates two boxes that still overlap after a snap because of
// floating-point error.
const contactNudge = 0.1

// Platformer is a sprite with gravity, clamped velocity and collision
// resolution against other platformers.
//
// A typical host update, called once per simulation step:
//
//	p.OnUpdate = func() error {
//		if input.IsKeyDown(ebiten.KeyRight) {
//			p.SetVX(p.VX() + p.VXSpeed)
//		}
//		p.AddFrictionX(0.8)
//		p.MoveX(p.VX())
//		p.DoGravity()
//		if input.IsKeyDown(ebiten.KeySpace) {
//			p.DoJump(18)
//		}
//		return nil
//	}
type Platformer struct {
	Sprite

	// VXSpeed and VYSpeed are per-call increments for host movement code.
	// The engine never reads them.
	VXSpeed, VYSpeed float64
	// GravityAcc is added to the vertical velocity on every airborne DoGravity.
	GravityAcc float64

	vx, vy             velocity
	hasPlatformerBelow bool

	checkAll   bool
	candidates []PlatformerEntity
}

// PlatformerEntity is an Entity backed by a Platformer.
type PlatformerEntity interface {
	SpriteEntity
	AsPlatformer() *Platformer
}

// NewPlatformer creates a platformer with no velocity bounds that checks
// collisions against every registered platformer. It is not registered; call
// Game.AddSprite.
func (g *Game) NewPlatformer(id string, x, y, w, h float64, color string) (*Platformer, error) {
	obj, err := g.newObject("platformer", id, x, y, w, h, color)
	if err != nil {
		return nil, err
	}
	return &Platformer{
		Sprite:   Sprite{Object: obj, Costumes: newCostumes()},
		checkAll: true,
	}, nil
}

// Kind returns KindPlatformer.
func (p *Platformer) Kind() Kind { return KindPlatformer }

// AsPlatformer returns p.
func (p *Platformer) AsPlatformer() *Platformer { return p }

// --- Velocity ---

// VX returns the horizontal velocity.
func (p *Platformer) VX() float64 { return p.vx.v }

// VY returns the vertical velocity.
func (p *Platformer) VY() float64 { return p.vy.v }

// SetVX stores vx rounded to one decimal and clamped to [-MaxVX, MaxVX].
func (p *Platformer) SetVX(vx float64) { p.vx.set(vx) }

// SetVY stores vy rounded to one decimal and clamped to [-MaxVY, MaxVY].
func (p *Platformer) SetVY(vy float64) { p.vy.set(vy) }

// MaxVX returns the horizontal velocity bound and whether one is set.
func (p *Platformer) MaxVX() (float64, bool) { return p.vx.max, p.vx.hasMax }

// MaxVY returns the vertical velocity bound and whether one is set.
func (p *Platformer) MaxVY() (float64, bool) { return p.vy.max, p.vy.hasMax }

// SetMaxVX bounds future horizontal velocity writes. The current value is
// not clamped until the next write.
func (p *Platformer) SetMaxVX(max float64) { p.vx.setMax(max) }

// SetMaxVY bounds future vertical velocity writes.
func (p *Platformer) SetMaxVY(max float64) { p.vy.setMax(max) }

// ClearMaxVX removes the horizontal bound.
func (p *Platformer) ClearMaxVX() { p.vx.clearMax() }

// ClearMaxVY removes the vertical bound.
func (p *Platformer) ClearMaxVY() { p.vy.clearMax() }

// AddFrictionX multiplies vx by friction (expected 0..1) and stops it once
// the magnitude drops below 0.3.
func (p *Platformer) AddFrictionX(friction float64) { p.vx.friction(friction) }

// AddFrictionY multiplies vy by friction and stops it below 0.3.
func (p *Platformer) AddFrictionY(friction float64) { p.vy.friction(friction) }

// --- Collision candidates ---

// SetCollisionCandidates narrows the platformers this one resolves against.
// Automatic refresh from the registry stops until CheckAllPlatformers.
func (p *Platformer) SetCollisionCandidates(list []PlatformerEntity) {
	p.checkAll = false
	p.candidates = append(p.candidates[:0], list...)
}

// CheckAllPlatformers restores the default candidate set: every registered
// platformer, refreshed on each movement call.
func (p *Platformer) CheckAllPlatformers() {
	p.checkAll = true
}

// CollisionCandidates returns the current candidate set.
func (p *Platformer) CollisionCandidates() []PlatformerEntity {
	p.refreshCandidates()
	return p.candidates
}

func (p *Platformer) refreshCandidates() {
	if !p.checkAll || p.game == nil {
		return
	}
	p.candidates = p.game.appendPlatformers(p.candidates[:0])
}

// HasPlatformerBelow reports whether the latest DoGravity landed on a platformer.
func (p *Platformer) HasPlatformerBelow() bool { return p.hasPlatformerBelow }

// --- Movement ---

// DoGravity integrates vy, resolves vertical contacts and applies GravityAcc
// when nothing was landed on. Call once per simulation step.
//
// Each touched candidate snaps the platformer outside it and zeroes vy, so
// with several contacts in one step the last one in candidate order wins.
func (p *Platformer) DoGravity() {
	p.refreshCandidates()
	p.hasPlatformerBelow = false

	p.Y += p.vy.v

	for _, c := range p.candidates {
		other := c.AsPlatformer()
		if other == p || !Touching(p.Bounds(), other.Bounds()) {
			continue
		}
		if p.vy.v < 0 {
			p.Y = other.Y + other.Height
		} else {
			p.Y = other.Y - p.Height
			p.hasPlatformerBelow = true
		}
		if Touching(p.Bounds(), other.Bounds()) {
			p.Y += contactNudge
		}
		p.vy.set(0)
	}

	if !p.hasPlatformerBelow {
		p.vy.set(p.vy.v + p.GravityAcc)
	}
}

// MoveX moves horizontally by dx and stops at the edge of any candidate it
// runs into. Velocity is left untouched.
func (p *Platformer) MoveX(dx float64) {
	p.refreshCandidates()
	p.X += dx

	for _, c := range p.candidates {
		other := c.AsPlatformer()
		if other == p || !Touching(p.Bounds(), other.Bounds()) {
			continue
		}
		if dx > 0 {
			p.X = other.X - p.Width
		} else {
			p.X = other.X + other.Width
		}
	}
}

// MoveY moves vertically by dy and stops at the edge of any candidate it runs
// into. Velocity is left untouched.
func (p *Platformer) MoveY(dy float64) {
	p.refreshCandidates()
	p.Y += dy

	for _, c := range p.candidates {
		other := c.AsPlatformer()
		if other == p || !Touching(p.Bounds(), other.Bounds()) {
			continue
		}
		if dy > 0 {
			p.Y = other.Y - p.Height
		} else {
			p.Y = other.Y + other.Height
		}
	}
}

// DoJump sets vy to -jumpHeight when a platformer is directly below and
// reports whether one was. Calling it again before the platformer moves
// re-applies the same vy and reports true again, so the result is not a
// "jumped this step" signal; compare VY before and after for that.
func (p *Platformer) DoJump(jumpHeight float64) bool {
	if len(p.PlatformersBelow()) == 0 {
		return false
	}
	p.vy.set(-jumpHeight)
	return true
}

// --- Directional queries ---

// PlatformersAbove returns platformers one unit above.
func (p *Platformer) PlatformersAbove() []PlatformerEntity {
	return platformersOnly(p.Collision().Probe(Above))
}

// PlatformersBelow returns platformers one unit below.
func (p *Platformer) PlatformersBelow() []PlatformerEntity {
	return platformersOnly(p.Collision().Probe(Below))
}

// PlatformersLeft returns platformers one unit to the left.
func (p *Platformer) PlatformersLeft() []PlatformerEntity {
	return platformersOnly(p.Collision().Probe(Left))
}

// PlatformersRight returns platformers one unit to the right.
func (p *Platformer) PlatformersRight() []PlatformerEntity {
	return platformersOnly(p.Collision().Probe(Right))
}
