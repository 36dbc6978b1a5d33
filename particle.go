package thicket

// Particle is a lightweight drawable for high-count, logic-light objects. It
// has no collision and no costumes. Velocity follows the same write rules as
// Platformer: one-decimal rounding and an optional symmetric bound.
type Particle struct {
	Object

	// Effects holds visual modifiers.
	Effects Effects

	vx, vy velocity
}

// ParticleEntity is an Entity backed by a Particle.
type ParticleEntity interface {
	Entity
	AsParticle() *Particle
}

// NewParticle creates a particle. It is not registered; call Game.AddParticle.
func (g *Game) NewParticle(id string, x, y, w, h float64, color string) (*Particle, error) {
	obj, err := g.newObject("particle", id, x, y, w, h, color)
	if err != nil {
		return nil, err
	}
	return &Particle{Object: obj}, nil
}

// Kind returns KindParticle.
func (p *Particle) Kind() Kind { return KindParticle }

// AsParticle returns p.
func (p *Particle) AsParticle() *Particle { return p }

// VX returns the horizontal velocity.
func (p *Particle) VX() float64 { return p.vx.v }

// VY returns the vertical velocity.
func (p *Particle) VY() float64 { return p.vy.v }

// SetVX stores vx rounded to one decimal and clamped when a bound is set.
func (p *Particle) SetVX(vx float64) { p.vx.set(vx) }

// SetVY stores vy rounded to one decimal and clamped when a bound is set.
func (p *Particle) SetVY(vy float64) { p.vy.set(vy) }

// SetMaxVX bounds future horizontal velocity writes.
func (p *Particle) SetMaxVX(max float64) { p.vx.setMax(max) }

// SetMaxVY bounds future vertical velocity writes.
func (p *Particle) SetMaxVY(max float64) { p.vy.setMax(max) }

// ClearMaxVX removes the horizontal bound.
func (p *Particle) ClearMaxVX() { p.vx.clearMax() }

// ClearMaxVY removes the vertical bound.
func (p *Particle) ClearMaxVY() { p.vy.clearMax() }

// AddFrictionX scales vx, stopping it below 0.3.
func (p *Particle) AddFrictionX(friction float64) { p.vx.friction(friction) }

// AddFrictionY scales vy, stopping it below 0.3.
func (p *Particle) AddFrictionY(friction float64) { p.vy.friction(friction) }

// Move advances the position by the current velocity. Nothing is resolved.
func (p *Particle) Move() {
	p.X += p.vx.v
	p.Y += p.vy.v
}
