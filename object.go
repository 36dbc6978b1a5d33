package thicket

import (
	"fmt"

	"github.com/google/uuid"
)

// Entity is anything the Game registry can hold. Sprite, Particle and
// Platformer implement it; hosts usually embed one of those and may override
// Kind to tag their own entity kinds.
type Entity interface {
	// Base returns the shared position/size record.
	Base() *Object
	// Kind returns the runtime kind tag used by registry queries.
	Kind() Kind
}

// NewID returns a fresh random id with the given prefix, for objects the host
// does not need to look up by name.
func NewID(prefix string) string {
	if prefix == "" {
		return uuid.NewString()
	}
	return prefix + "-" + uuid.NewString()
}

// Object is the position/size/color record shared by every entity.
type Object struct {
	// X and Y are the top-left corner in world units.
	X, Y float64
	// Width and Height are the extent of the bounding box.
	Width, Height float64
	// Color is a "#rrggbb" fill used when no costume is shown. Empty means no fill.
	Color string

	// OnUpdate is called once per simulation step while the entity is registered.
	// A returned error stops the engine.
	OnUpdate func() error

	id   string
	game *Game
}

// newObject validates and fills an Object. An empty id is replaced with a
// generated one; a live duplicate fails with ErrDuplicateID.
func (g *Game) newObject(prefix, id string, x, y, w, h float64, color string) (Object, error) {
	if g == nil {
		return Object{}, fmt.Errorf("%w: nil Game, create one with NewGame", ErrInvalidParameter)
	}
	if id == "" {
		id = NewID(prefix)
	}
	if _, ok := g.GetByID(id); ok {
		return Object{}, fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	if w < 0 || h < 0 {
		return Object{}, fmt.Errorf("%w: size %vx%v for %q", ErrInvalidParameter, w, h, id)
	}
	if color != "" {
		if _, err := ParseHexColor(color); err != nil {
			return Object{}, err
		}
	}
	return Object{X: x, Y: y, Width: w, Height: h, Color: color, id: id, game: g}, nil
}

// Base returns o.
func (o *Object) Base() *Object { return o }

// Kind returns KindObject.
func (o *Object) Kind() Kind { return KindObject }

// ID returns the object's id.
func (o *Object) ID() string { return o.id }

// Game returns the registry the object was created for.
func (o *Object) Game() *Game { return o.game }

// SetID renames the object. It fails with ErrDuplicateID when another live
// entity already uses id.
func (o *Object) SetID(id string) error {
	if id == o.id {
		return nil
	}
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidParameter)
	}
	if o.game != nil {
		if e, ok := o.game.GetByID(id); ok && e.Base() != o {
			return fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
	}
	o.id = id
	return nil
}

// Bounds returns the object's bounding box.
func (o *Object) Bounds() Rect {
	return Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
}

// GoTo moves the object's top-left corner to (x, y) without collision checks.
func (o *Object) GoTo(x, y float64) {
	o.X, o.Y = x, y
}

// Center returns the center point of the bounding box.
func (o *Object) Center() Vec2 {
	return Vec2{o.X + o.Width/2, o.Y + o.Height/2}
}

// fillColor returns the parsed fill and whether one is set.
func (o *Object) fillColor() (Color, bool) {
	if o.Color == "" {
		return Color{}, false
	}
	c, err := ParseHexColor(o.Color)
	if err != nil {
		return Color{}, false
	}
	return c, true
}
