package thicket

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is the key/pointer state read by host update code.
type Input interface {
	IsKeyDown(key ebiten.Key) bool
	// PointerX and PointerY are in viewport coordinates.
	PointerX() float64
	PointerY() float64
	IsPointerDown() bool
}

// InputState is a plain key/pointer table. Platform listeners (or tests)
// write it; the engine and host read it.
type InputState struct {
	keys        map[ebiten.Key]bool
	pointerX    float64
	pointerY    float64
	pointerDown bool
}

// NewInputState creates an empty table.
func NewInputState() *InputState {
	return &InputState{keys: make(map[ebiten.Key]bool)}
}

// IsKeyDown implements Input.
func (s *InputState) IsKeyDown(key ebiten.Key) bool { return s.keys[key] }

// PointerX implements Input.
func (s *InputState) PointerX() float64 { return s.pointerX }

// PointerY implements Input.
func (s *InputState) PointerY() float64 { return s.pointerY }

// IsPointerDown implements Input.
func (s *InputState) IsPointerDown() bool { return s.pointerDown }

// Press marks key as held.
func (s *InputState) Press(key ebiten.Key) {
	if s.keys == nil {
		s.keys = make(map[ebiten.Key]bool)
	}
	s.keys[key] = true
}

// Release marks key as up.
func (s *InputState) Release(key ebiten.Key) { delete(s.keys, key) }

// ReleaseAll clears every held key.
func (s *InputState) ReleaseAll() { clear(s.keys) }

// MovePointer sets the pointer position in viewport coordinates.
func (s *InputState) MovePointer(x, y float64) {
	s.pointerX, s.pointerY = x, y
}

// SetPointerDown sets the pointer button state.
func (s *InputState) SetPointerDown(down bool) { s.pointerDown = down }

// EbitenInput fills an InputState from Ebitengine once per frame. Mouse
// and the first active touch both drive the single pointer.
type EbitenInput struct {
	InputState

	keyBuf   []ebiten.Key
	touchBuf []ebiten.TouchID
}

// NewEbitenInput creates an input source polled from Ebitengine.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{InputState: InputState{keys: make(map[ebiten.Key]bool)}}
}

// Poll refreshes the table. Called by the engine at the start of each frame.
func (in *EbitenInput) Poll() {
	clear(in.keys)
	in.keyBuf = inpututil.AppendPressedKeys(in.keyBuf[:0])
	for _, k := range in.keyBuf {
		in.keys[k] = true
	}

	mx, my := ebiten.CursorPosition()
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	in.touchBuf = ebiten.AppendTouchIDs(in.touchBuf[:0])
	if len(in.touchBuf) > 0 {
		mx, my = ebiten.TouchPosition(in.touchBuf[0])
		down = true
	}

	in.MovePointer(float64(mx), float64(my))
	in.SetPointerDown(down)
}
