package thicket

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

type fixedViewport struct {
	w, h float64
}

func (v *fixedViewport) ViewportWidth() float64  { return v.w }
func (v *fixedViewport) ViewportHeight() float64 { return v.h }

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestCameraGoToRounds(t *testing.T) {
	cam := NewCamera(NewGame(), &fixedViewport{800, 600})
	cam.GoTo(10.26, -3.24)
	if cam.X() != 10.3 || cam.Y() != -3.2 {
		t.Errorf("camera = (%v,%v), want (10.3,-3.2)", cam.X(), cam.Y())
	}
}

func TestCameraSize(t *testing.T) {
	vp := &fixedViewport{800, 600}
	cam := NewCamera(NewGame(), vp)
	if cam.Width() != 800 || cam.Height() != 600 {
		t.Errorf("size = %vx%v", cam.Width(), cam.Height())
	}
	// The viewport is read live.
	vp.w = 400
	if cam.Width() != 400 {
		t.Errorf("Width = %v after resize, want 400", cam.Width())
	}
	if w := NewCamera(nil, nil).Width(); w != 0 {
		t.Errorf("Width without viewport = %v", w)
	}
}

func TestCameraFollow(t *testing.T) {
	g := NewGame()
	cam := NewCamera(g, &fixedViewport{800, 600})
	s, _ := g.NewSprite("hero", 1000, 500, 10, 10, "")
	_ = g.AddSprite(s)

	cam.SetFollow(s)
	cam.update(1.0 / 60)
	if cam.X() != 600 || cam.Y() != 200 {
		t.Errorf("camera = (%v,%v), want (600,200)", cam.X(), cam.Y())
	}
	if cam.Following() != SpriteEntity(s) {
		t.Error("Following mismatch")
	}

	s.GoTo(1200.56, 500)
	cam.update(1.0 / 60)
	if cam.X() != 800.6 {
		t.Errorf("camera x = %v, want 800.6", cam.X())
	}
}

func TestCameraFollowUnregistered(t *testing.T) {
	g := NewGame()
	cam := NewCamera(g, &fixedViewport{800, 600})
	s, _ := g.NewSprite("hero", 1000, 500, 10, 10, "")
	_ = g.AddSprite(s)
	cam.SetFollow(s)
	cam.update(1.0 / 60)

	g.Delete(s)
	s.GoTo(0, 0)
	cam.update(1.0 / 60)
	if cam.X() != 600 || cam.Y() != 200 {
		t.Errorf("camera moved to (%v,%v) after the sprite was deleted", cam.X(), cam.Y())
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := NewCamera(NewGame(), &fixedViewport{800, 600})
	cam.ScrollTo(100, 50, 1.0, ease.Linear)
	if !cam.Scrolling() {
		t.Fatal("Scrolling = false after ScrollTo")
	}

	cam.update(0.5)
	if !approxEqual(cam.X(), 50, 0.11) || !approxEqual(cam.Y(), 25, 0.11) {
		t.Errorf("halfway = (%v,%v), want (50,25)", cam.X(), cam.Y())
	}
	cam.update(0.6)
	if cam.X() != 100 || cam.Y() != 50 {
		t.Errorf("end = (%v,%v), want (100,50)", cam.X(), cam.Y())
	}
	if cam.Scrolling() {
		t.Error("Scrolling = true after the tween finished")
	}
}

func TestCameraScrollToCancelled(t *testing.T) {
	cam := NewCamera(NewGame(), &fixedViewport{800, 600})
	cam.ScrollTo(100, 100, 1.0, nil)
	cam.GoTo(5, 5)
	if cam.Scrolling() {
		t.Error("GoTo should cancel the scroll")
	}
	cam.update(1)
	if cam.X() != 5 {
		t.Errorf("x = %v, want 5", cam.X())
	}
}

func TestCameraScrollToWhileFollowing(t *testing.T) {
	g := NewGame()
	cam := NewCamera(g, &fixedViewport{800, 600})
	s, _ := g.NewSprite("hero", 1000, 500, 10, 10, "")
	_ = g.AddSprite(s)
	cam.SetFollow(s)
	cam.update(1.0 / 60)

	cam.ScrollTo(0, 0, 1.0, nil)
	if cam.Scrolling() {
		t.Error("Scrolling = true after ScrollTo while following")
	}
	cam.SetFollow(nil)
	cam.update(0.5)
	if cam.X() != 600 || cam.Y() != 200 {
		t.Errorf("camera = (%v,%v) after unfollow, want (600,200)", cam.X(), cam.Y())
	}
}

func TestCameraCoordinates(t *testing.T) {
	cam := NewCamera(NewGame(), &fixedViewport{800, 600})
	cam.GoTo(100, 50)
	sx, sy := cam.WorldToScreen(150, 80)
	if sx != 50 || sy != 30 {
		t.Errorf("WorldToScreen = (%v,%v), want (50,30)", sx, sy)
	}
	wx, wy := cam.ScreenToWorld(sx, sy)
	if wx != 150 || wy != 80 {
		t.Errorf("ScreenToWorld = (%v,%v), want (150,80)", wx, wy)
	}
	if vb := cam.VisibleBounds(); vb != (Rect{X: 100, Y: 50, Width: 800, Height: 600}) {
		t.Errorf("VisibleBounds = %+v", vb)
	}
}

func TestCameraIsOnScreen(t *testing.T) {
	cam := NewCamera(NewGame(), &fixedViewport{800, 600})
	tests := []struct {
		r    Rect
		want bool
	}{
		{Rect{X: 10, Y: 10, Width: 5, Height: 5}, true},
		{Rect{X: -5, Y: -5, Width: 10, Height: 10}, true},
		{Rect{X: 800, Y: 0, Width: 10, Height: 10}, false},
		{Rect{X: -10, Y: 0, Width: 10, Height: 10}, false},
	}
	for _, tt := range tests {
		if got := cam.IsOnScreen(tt.r); got != tt.want {
			t.Errorf("IsOnScreen(%+v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}
