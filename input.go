package kestrel

// inputEvent is one scripted change applied by VirtualInput.Poll.
type inputEvent struct {
	kind   inputEventKind
	key    Key
	button MouseButton
	pos    Vec2
}

type inputEventKind uint8

const (
	evKeyDown inputEventKind = iota
	evKeyUp
	evMouseDown
	evMouseUp
	evMouseMove
	evIdle
)

// VirtualInput is a scripted Input. Events are queued ahead of time and
// applied one per Poll, so a press and its release land on different frames
// just like real input. Pressed and released edges last for exactly one
// frame. Mouse positions are in world coordinates.
//
// Pass it to NewScene with WithInput; the scene polls it at the start of
// every Update.
type VirtualInput struct {
	queue []inputEvent

	keysDown     map[Key]bool
	keysPressed  map[Key]bool
	keysReleased map[Key]bool

	buttonsDown     [3]bool
	buttonsPressed  [3]bool
	buttonsReleased [3]bool

	mouse Vec2
}

// NewVirtualInput creates a VirtualInput with nothing held and the cursor at
// the origin.
func NewVirtualInput() *VirtualInput {
	return &VirtualInput{
		keysDown:     make(map[Key]bool),
		keysPressed:  make(map[Key]bool),
		keysReleased: make(map[Key]bool),
	}
}

// Pending returns the number of queued events.
func (in *VirtualInput) Pending() int {
	return len(in.queue)
}

// QueueKeyDown queues a key press.
func (in *VirtualInput) QueueKeyDown(k Key) {
	in.queue = append(in.queue, inputEvent{kind: evKeyDown, key: k})
}

// QueueKeyUp queues a key release.
func (in *VirtualInput) QueueKeyUp(k Key) {
	in.queue = append(in.queue, inputEvent{kind: evKeyUp, key: k})
}

// QueueKeyTap queues a press followed by a release. Consumes two frames.
func (in *VirtualInput) QueueKeyTap(k Key) {
	in.QueueKeyDown(k)
	in.QueueKeyUp(k)
}

// QueueIdle queues a frame with no change.
func (in *VirtualInput) QueueIdle() {
	in.queue = append(in.queue, inputEvent{kind: evIdle})
}

// QueueMove queues a cursor move to p.
func (in *VirtualInput) QueueMove(p Vec2) {
	in.queue = append(in.queue, inputEvent{kind: evMouseMove, pos: p})
}

// QueuePress queues a button press at p.
func (in *VirtualInput) QueuePress(b MouseButton, p Vec2) {
	in.queue = append(in.queue, inputEvent{kind: evMouseDown, button: b, pos: p})
}

// QueueRelease queues a button release at p.
func (in *VirtualInput) QueueRelease(b MouseButton, p Vec2) {
	in.queue = append(in.queue, inputEvent{kind: evMouseUp, button: b, pos: p})
}

// QueueClick queues a left press followed by a release at p. Consumes two
// frames.
func (in *VirtualInput) QueueClick(p Vec2) {
	in.QueuePress(MouseButtonLeft, p)
	in.QueueRelease(MouseButtonLeft, p)
}

// QueueDrag queues a left-button drag: a press at from, frames-2 moves
// interpolated linearly and a release at to. The sequence consumes frames
// frames; fewer than 2 is treated as 2.
func (in *VirtualInput) QueueDrag(from, to Vec2, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.QueuePress(MouseButtonLeft, from)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.QueueMove(Vec2{
			X: from.X + (to.X-from.X)*t,
			Y: from.Y + (to.Y-from.Y)*t,
		})
	}
	in.QueueRelease(MouseButtonLeft, to)
}

// SetMousePosition moves the cursor immediately.
func (in *VirtualInput) SetMousePosition(p Vec2) {
	in.mouse = p
}

// Poll clears last frame's edges and applies the next queued event.
func (in *VirtualInput) Poll() {
	clear(in.keysPressed)
	clear(in.keysReleased)
	in.buttonsPressed = [3]bool{}
	in.buttonsReleased = [3]bool{}

	if len(in.queue) == 0 {
		return
	}
	ev := in.queue[0]
	copy(in.queue, in.queue[1:])
	in.queue = in.queue[:len(in.queue)-1]

	switch ev.kind {
	case evKeyDown:
		if !in.keysDown[ev.key] {
			in.keysPressed[ev.key] = true
		}
		in.keysDown[ev.key] = true
	case evKeyUp:
		if in.keysDown[ev.key] {
			in.keysReleased[ev.key] = true
		}
		delete(in.keysDown, ev.key)
	case evMouseMove:
		in.mouse = ev.pos
	case evMouseDown:
		in.mouse = ev.pos
		if int(ev.button) < len(in.buttonsDown) {
			if !in.buttonsDown[ev.button] {
				in.buttonsPressed[ev.button] = true
			}
			in.buttonsDown[ev.button] = true
		}
	case evMouseUp:
		in.mouse = ev.pos
		if int(ev.button) < len(in.buttonsDown) {
			if in.buttonsDown[ev.button] {
				in.buttonsReleased[ev.button] = true
			}
			in.buttonsDown[ev.button] = false
		}
	}
}

func (in *VirtualInput) KeyPressed(k Key) bool  { return in.keysPressed[k] }
func (in *VirtualInput) KeyReleased(k Key) bool { return in.keysReleased[k] }
func (in *VirtualInput) KeyDown(k Key) bool     { return in.keysDown[k] }

func (in *VirtualInput) MousePressed(b MouseButton) bool {
	return int(b) < len(in.buttonsPressed) && in.buttonsPressed[b]
}

func (in *VirtualInput) MouseReleased(b MouseButton) bool {
	return int(b) < len(in.buttonsReleased) && in.buttonsReleased[b]
}

func (in *VirtualInput) MouseDown(b MouseButton) bool {
	return int(b) < len(in.buttonsDown) && in.buttonsDown[b]
}

func (in *VirtualInput) MousePosition() Vec2 { return in.mouse }
