package ebitenplatform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/kestrel"
)

// keyMap maps the keys the core reacts to onto ebiten keys.
var keyMap = map[kestrel.Key]ebiten.Key{
	kestrel.KeyF1: ebiten.KeyF1,
	kestrel.KeyF2: ebiten.KeyF2,
	kestrel.KeyF3: ebiten.KeyF3,
	kestrel.KeyP:  ebiten.KeyP,
	kestrel.KeyS:  ebiten.KeyS,
	kestrel.KeyM:  ebiten.KeyM,
	kestrel.KeyR:  ebiten.KeyR,
}

var buttonMap = [...]ebiten.MouseButton{
	kestrel.MouseButtonLeft:   ebiten.MouseButtonLeft,
	kestrel.MouseButtonRight:  ebiten.MouseButtonRight,
	kestrel.MouseButtonMiddle: ebiten.MouseButtonMiddle,
}

// Input reads ebiten's keyboard and mouse state. The cursor is reported in
// world coordinates through the camera.
type Input struct {
	camera *kestrel.Camera
	mouse  kestrel.Vec2
}

// NewInput creates an input mapping the cursor through camera.
func NewInput(camera *kestrel.Camera) *Input {
	return &Input{camera: camera}
}

// Poll latches the cursor position for the frame.
func (in *Input) Poll() {
	x, y := ebiten.CursorPosition()
	p := kestrel.Vec2{X: float64(x), Y: float64(y)}
	if in.camera != nil {
		p = in.camera.ScreenToWorld(p)
	}
	in.mouse = p
}

// KeyPressed reports whether k went down this frame.
func (in *Input) KeyPressed(k kestrel.Key) bool {
	ek, ok := keyMap[k]
	return ok && inpututil.IsKeyJustPressed(ek)
}

// KeyReleased reports whether k went up this frame.
func (in *Input) KeyReleased(k kestrel.Key) bool {
	ek, ok := keyMap[k]
	return ok && inpututil.IsKeyJustReleased(ek)
}

// KeyDown reports whether k is held.
func (in *Input) KeyDown(k kestrel.Key) bool {
	ek, ok := keyMap[k]
	return ok && ebiten.IsKeyPressed(ek)
}

// MousePressed reports whether b went down this frame.
func (in *Input) MousePressed(b kestrel.MouseButton) bool {
	return int(b) < len(buttonMap) && inpututil.IsMouseButtonJustPressed(buttonMap[b])
}

// MouseReleased reports whether b went up this frame.
func (in *Input) MouseReleased(b kestrel.MouseButton) bool {
	return int(b) < len(buttonMap) && inpututil.IsMouseButtonJustReleased(buttonMap[b])
}

// MouseDown reports whether b is held. Unknown buttons are never down.
func (in *Input) MouseDown(b kestrel.MouseButton) bool {
	return int(b) < len(buttonMap) && ebiten.IsMouseButtonPressed(buttonMap[b])
}

// MousePosition returns the cursor in world space as of the last Poll.
func (in *Input) MousePosition() kestrel.Vec2 {
	return in.mouse
}
