package thicket

import "testing"

func TestCollisionTouching(t *testing.T) {
	g := NewGame()
	a, _ := g.NewSprite("a", 0, 0, 10, 10, "")
	b, _ := g.NewSprite("b", 5, 5, 10, 10, "")
	c, _ := g.NewSprite("c", 10, 0, 10, 10, "") // shares an edge with a
	if err := g.AddSprite(a, b, c); err != nil {
		t.Fatal(err)
	}

	if !a.Collision().Touching(b) {
		t.Error("a should touch b")
	}
	if a.Collision().Touching(c) {
		t.Error("a should not touch c (edge only)")
	}
	if a.Collision().Touching(a) {
		t.Error("a should not touch itself")
	}
	if a.Collision().Touching(nil) {
		t.Error("nil should not touch")
	}
}

func TestTouchingAnyOrder(t *testing.T) {
	g := NewGame()
	self, _ := g.NewSprite("self", 0, 0, 10, 10, "")
	hi, _ := g.NewSprite("hi", 1, 1, 2, 2, "")
	lo, _ := g.NewSprite("lo", 2, 2, 2, 2, "")
	far, _ := g.NewSprite("far", 100, 100, 2, 2, "")
	hi.SetStageLevel(5)
	lo.SetStageLevel(1)
	if err := g.AddSprite(self, hi, lo, far); err != nil {
		t.Fatal(err)
	}

	got := self.Collision().TouchingAny()
	if len(got) != 2 || got[0].Base().ID() != "lo" || got[1].Base().ID() != "hi" {
		t.Errorf("TouchingAny = %v, want [lo hi]", idsOf(got))
	}
}

func TestProbeDoesNotMove(t *testing.T) {
	g := NewGame()
	self, _ := g.NewSprite("self", 0, 0, 10, 10, "")
	floor, _ := g.NewSprite("floor", 0, 10, 10, 10, "")
	wall, _ := g.NewSprite("wall", 10, 0, 10, 10, "")
	if err := g.AddSprite(self, floor, wall); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		d    Direction
		want string
	}{
		{Below, "floor"},
		{Right, "wall"},
		{Above, ""},
		{Left, ""},
	}
	for _, tt := range tests {
		got := self.Collision().Probe(tt.d)
		if tt.want == "" {
			if len(got) != 0 {
				t.Errorf("Probe(%v) = %v, want none", tt.d, idsOf(got))
			}
		} else if len(got) != 1 || got[0].Base().ID() != tt.want {
			t.Errorf("Probe(%v) = %v, want [%s]", tt.d, idsOf(got), tt.want)
		}
		if self.X != 0 || self.Y != 0 {
			t.Fatalf("Probe(%v) moved the sprite to (%v,%v)", tt.d, self.X, self.Y)
		}
	}
}

func TestProbeUnregistered(t *testing.T) {
	g := NewGame()
	self, _ := g.NewSprite("self", 0, 0, 10, 10, "")
	floor, _ := g.NewSprite("floor", 0, 10, 10, 10, "")
	if err := g.AddSprite(floor); err != nil {
		t.Fatal(err)
	}
	// Queries go through the registry the sprite was created for, even
	// before the sprite itself is added.
	if got := self.Collision().Probe(Below); len(got) != 1 {
		t.Errorf("Probe = %v, want [floor]", idsOf(got))
	}
	g.Delete(floor)
	if got := self.Collision().Probe(Below); len(got) != 0 {
		t.Errorf("Probe after delete = %v, want none", idsOf(got))
	}
}

func TestPlatformersOnly(t *testing.T) {
	g := NewGame()
	self, _ := g.NewSprite("self", 0, 0, 10, 10, "")
	deco, _ := g.NewSprite("deco", 0, 10, 10, 10, "")
	ground, _ := g.NewPlatformer("ground", 0, 10, 10, 10, "")
	if err := g.AddSprite(self, deco, ground); err != nil {
		t.Fatal(err)
	}
	got := platformersOnly(self.Collision().Probe(Below))
	if len(got) != 1 || got[0].AsPlatformer() != ground {
		t.Errorf("platformersOnly returned %d entries, want ground only", len(got))
	}
}

func idsOf[E Entity](list []E) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Base().ID()
	}
	return out
}
