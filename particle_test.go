package thicket

import "testing"

func TestParticleMove(t *testing.T) {
	g := NewGame()
	p, err := g.NewParticle("", 10, 10, 2, 2, "#ffffff")
	if err != nil {
		t.Fatal(err)
	}
	p.SetVX(1.25)
	p.SetVY(-0.5)
	p.Move()
	p.Move()
	if !approxEqual(p.X, 12.6, 1e-9) || p.Y != 9 {
		t.Errorf("pos = (%v,%v), want (12.6,9)", p.X, p.Y)
	}
}

func TestParticleVelocityBounds(t *testing.T) {
	g := NewGame()
	p, _ := g.NewParticle("", 0, 0, 1, 1, "")
	p.SetMaxVX(3)
	p.SetMaxVY(2)
	p.SetVX(-9)
	p.SetVY(9)
	if p.VX() != -3 || p.VY() != 2 {
		t.Errorf("v = (%v,%v), want (-3,2)", p.VX(), p.VY())
	}
	p.ClearMaxVX()
	p.ClearMaxVY()
	p.SetVX(9)
	if p.VX() != 9 {
		t.Errorf("vx = %v, want 9", p.VX())
	}
	p.AddFrictionX(0.5)
	if p.VX() != 4.5 {
		t.Errorf("vx = %v, want 4.5", p.VX())
	}
	p.SetVY(0.3)
	p.AddFrictionY(0.5)
	if p.VY() != 0 {
		t.Errorf("vy = %v, want 0", p.VY())
	}
}

func TestParticleKind(t *testing.T) {
	g := NewGame()
	p, _ := g.NewParticle("", 0, 0, 1, 1, "")
	if p.Kind() != KindParticle || p.Kind().Is(KindSprite) {
		t.Errorf("kind = %v", p.Kind())
	}
	if p.AsParticle() != p {
		t.Error("AsParticle mismatch")
	}
}
