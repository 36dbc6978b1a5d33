package thicket

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func newRenderEngine(t *testing.T) (*Engine, *EbitenRenderer) {
	t.Helper()
	r := NewEbitenRenderer(640, 480, 2)
	e := NewEngine()
	clock := NewManualClock(time.Unix(0, 0))
	err := e.Init(Settings{
		Renderer:  r,
		Clock:     clock,
		Scheduler: NewFrameScheduler(clock),
		Logger:    NewLogger(&bytes.Buffer{}, "error"),
	})
	if err != nil {
		t.Fatal(err)
	}
	return e, r
}

func TestEbitenRendererViewport(t *testing.T) {
	r := NewEbitenRenderer(640, 480, 2)
	if r.ViewportWidth() != 320 || r.ViewportHeight() != 240 {
		t.Errorf("viewport = %vx%v, want 320x240", r.ViewportWidth(), r.ViewportHeight())
	}
	w, h := r.Layout(801, 601)
	if w != 400 || h != 300 {
		t.Errorf("Layout = %dx%d, want 400x300", w, h)
	}
	if r.ViewportWidth() != 400 {
		t.Errorf("viewport width after Layout = %v", r.ViewportWidth())
	}
	if NewEbitenRenderer(10, 10, 0).Scale() != 1 {
		t.Error("non-positive scale should default to 1")
	}
}

func TestDrawPassCullsAndFilters(t *testing.T) {
	e, r := newRenderEngine(t)
	g := e.Game()

	visible, _ := g.NewSprite("visible", 10, 10, 20, 20, "#ff0000")
	hidden, _ := g.NewSprite("hidden", 10, 10, 20, 20, "#00ff00")
	hidden.Effects.Hidden = true
	offscreen, _ := g.NewSprite("offscreen", 1000, 1000, 20, 20, "#0000ff")
	back, _ := g.NewSprite("back", 0, 0, 5, 5, "#ffffff")
	back.SetStageLevel(-1)
	spark, _ := g.NewParticle("spark", 50, 50, 2, 2, "#ffff00")
	_ = g.AddSprite(visible, hidden, offscreen, back)
	_ = g.AddParticle(spark)

	r.DrawPass()
	if len(r.items) != 3 {
		t.Fatalf("items = %d, want 3", len(r.items))
	}
	if r.items[0].bounds.Width != 5 {
		t.Error("lower stage level should draw first")
	}
	if r.items[2].bounds.Width != 2 {
		t.Error("particles should draw after sprites")
	}
}

func TestDrawPassCameraOffset(t *testing.T) {
	e, r := newRenderEngine(t)
	g := e.Game()
	s, _ := g.NewSprite("s", 110, 60, 10, 10, "#ffffff")
	s.Effects.Rotation = 90
	_ = s.Effects.SetTransparency(25)
	s.Effects.IsEllipse = true
	_ = g.AddSprite(s)
	e.Camera().GoTo(100, 50)

	r.DrawPass()
	if len(r.items) != 1 {
		t.Fatalf("items = %d, want 1", len(r.items))
	}
	it := r.items[0]
	if it.bounds.X != 10 || it.bounds.Y != 10 {
		t.Errorf("screen pos = (%v,%v), want (10,10)", it.bounds.X, it.bounds.Y)
	}
	if !approxEqual(it.rotation, math.Pi/2, 1e-9) {
		t.Errorf("rotation = %v, want pi/2", it.rotation)
	}
	if it.alpha != 0.75 {
		t.Errorf("alpha = %v, want 0.75", it.alpha)
	}
	if !it.ellipse || !it.hasFill || it.fill != ColorWhite {
		t.Errorf("item = %+v", it)
	}
}

func TestDrawPassCostume(t *testing.T) {
	e, r := newRenderEngine(t)
	g := e.Game()
	s, _ := g.NewSprite("s", 0, 0, 10, 10, "")
	img := ebiten.NewImage(4, 4)
	_ = s.Costumes.Add("idle", img)
	_ = s.Costumes.Set("idle")
	_ = g.AddSprite(s)

	r.DrawPass()
	if len(r.items) != 1 || r.items[0].image != img {
		t.Fatal("costume image not in the draw list")
	}
	if r.items[0].hasFill {
		t.Error("sprite without a color should have no fill")
	}
}

func TestDrawPassWithoutEngine(t *testing.T) {
	r := NewEbitenRenderer(100, 100, 1)
	r.DrawPass()
	if len(r.items) != 0 {
		t.Errorf("items = %d, want 0", len(r.items))
	}
}

func TestDrawPassOncePerFrame(t *testing.T) {
	r := NewEbitenRenderer(100, 100, 1)
	e := NewEngine()
	clock := NewManualClock(time.Unix(0, 0))
	sched := NewFrameScheduler(clock)
	g := NewGame()
	s, _ := g.NewSprite("s", 0, 0, 10, 10, "#ffffff")
	_ = g.AddSprite(s)
	err := e.Init(Settings{
		Renderer:  r,
		Clock:     clock,
		Scheduler: sched,
		Game:      g,
		Logger:    NewLogger(&bytes.Buffer{}, "error"),
	})
	if err != nil {
		t.Fatal(err)
	}
	clock.Advance(100 * time.Millisecond)
	if err := sched.Pump(); err != nil {
		t.Fatal(err)
	}
	if len(r.items) != 1 {
		t.Errorf("items = %d, want 1 after a frame", len(r.items))
	}
}
