package kestrel

import "log/slog"

// AnimationMode controls what an animation does after its last frame.
type AnimationMode uint8

const (
	AnimLoop     AnimationMode = iota // wrap to the first frame
	AnimPingPong                      // run backwards, then forwards again
	AnimStop                          // hold the last frame
	AnimOnce                          // hold the last frame and stop playing
)

// String returns the mode name.
func (m AnimationMode) String() string {
	switch m {
	case AnimPingPong:
		return "pingpong"
	case AnimStop:
		return "stop"
	case AnimOnce:
		return "once"
	}
	return "loop"
}

// Animation is a run of equally sized frames on a sprite sheet, read left to
// right and top to bottom.
type Animation struct {
	Graph         *Graph
	Rows          int
	Columns       int
	FrameCount    int
	FrameDuration float64

	frame    int
	time     float64
	reversed bool
}

// Frame returns the current frame index.
func (a *Animation) Frame() int { return a.frame }

// Reversed reports whether a ping-pong animation is running backwards.
func (a *Animation) Reversed() bool { return a.reversed }

func (a *Animation) reset() {
	a.frame = 0
	a.time = 0
	a.reversed = false
}

// FrameRect returns the source rectangle of the current frame. It is empty
// when the graph is missing or the sheet layout is degenerate.
func (a *Animation) FrameRect() Rect {
	if a.Graph == nil || a.Columns <= 0 || a.Rows <= 0 {
		return Rect{}
	}
	w := float64(a.Graph.Width / a.Columns)
	h := float64(a.Graph.Height / a.Rows)
	return Rect{
		X:      float64(a.frame%a.Columns) * w,
		Y:      float64(a.frame/a.Columns) * h,
		Width:  w,
		Height: h,
	}
}

func (a *Animation) advance(dt float64, mode AnimationMode) {
	if a.Graph == nil || a.FrameCount <= 0 || a.FrameDuration <= 0 {
		return
	}
	a.time += dt

	switch mode {
	case AnimLoop:
		for a.time >= a.FrameDuration {
			a.frame = (a.frame + 1) % a.FrameCount
			a.time -= a.FrameDuration
		}
	case AnimPingPong:
		if a.FrameCount == 1 {
			a.time = 0
			return
		}
		for a.time >= a.FrameDuration {
			if a.reversed {
				a.frame--
			} else {
				a.frame++
			}
			if a.frame < 0 {
				a.frame = 1
				a.reversed = false
			} else if a.frame >= a.FrameCount {
				a.frame = a.FrameCount - 2
				a.reversed = true
			}
			a.time -= a.FrameDuration
		}
	case AnimStop, AnimOnce:
		for a.frame < a.FrameCount-1 && a.time >= a.FrameDuration {
			a.frame++
			a.time -= a.FrameDuration
		}
	}
}

func (a *Animation) atEnd() bool {
	return a.frame == a.FrameCount-1
}

// Animator drives the clip of its entity's Sprite from named animations. It
// must be added after the Sprite; without one it logs an error and stays
// disabled for the entity's lifetime.
type Animator struct {
	BaseComponent

	assets     *Assets
	animations map[string]*Animation
	order      []string
	current    string
	next       string
	mode       AnimationMode
	playing    bool
	disabled   bool
	sprite     *Sprite
}

// NewAnimator creates an animator whose sheets are looked up in assets.
func NewAnimator(assets *Assets) *Animator {
	return &Animator{
		assets:     assets,
		animations: make(map[string]*Animation),
		playing:    true,
	}
}

// OnInit binds the sibling Sprite.
func (an *Animator) OnInit() {
	an.sprite = GetComponent[*Sprite](an.entity)
	if an.sprite == nil {
		an.entity.logger().Error("animator has no sprite", "entity", an.entity.Name)
		an.disabled = true
		return
	}
	an.apply()
}

// Add registers an animation over the sheet loaded under graphKey, split into
// rows by columns cells, of which the first frameCount are played at fps. The
// first animation added becomes current.
func (an *Animator) Add(name, graphKey string, rows, columns, frameCount int, fps float64) *Animation {
	var g *Graph
	if an.assets != nil {
		g = an.assets.Graph(graphKey)
	}
	if g == nil {
		an.logger().Error("animation graph not found", "animation", name, "graph", graphKey)
	}
	a := &Animation{
		Graph:      g,
		Rows:       rows,
		Columns:    columns,
		FrameCount: frameCount,
	}
	if fps > 0 {
		a.FrameDuration = 1 / fps
	}
	if _, ok := an.animations[name]; !ok {
		an.order = append(an.order, name)
	}
	an.animations[name] = a
	if an.current == "" {
		an.current = name
	}
	an.apply()
	return a
}

func (an *Animator) logger() *slog.Logger {
	if an.entity != nil {
		return an.entity.logger()
	}
	if an.assets != nil {
		return an.assets.log
	}
	return Logger()
}

// Animation returns the animation registered under name, or nil.
func (an *Animator) Animation(name string) *Animation {
	return an.animations[name]
}

// active returns the current animation, falling back to the first one added.
func (an *Animator) active() *Animation {
	if a, ok := an.animations[an.current]; ok {
		return a
	}
	if len(an.order) == 0 {
		return nil
	}
	return an.animations[an.order[0]]
}

// Current returns the name of the playing animation.
func (an *Animator) Current() string { return an.current }

// Next returns the name of the queued animation, or "".
func (an *Animator) Next() string { return an.next }

// Mode returns the playback mode.
func (an *Animator) Mode() AnimationMode { return an.mode }

// Playing reports whether frames advance on update.
func (an *Animator) Playing() bool { return an.playing }

// Disabled reports whether the animator gave up for lack of a Sprite.
func (an *Animator) Disabled() bool { return an.disabled }

// Play resumes playback.
func (an *Animator) Play() { an.playing = true }

// Pause freezes playback on the current frame.
func (an *Animator) Pause() { an.playing = false }

// Stop freezes playback and rewinds the current animation.
func (an *Animator) Stop() {
	an.playing = false
	if a := an.active(); a != nil {
		a.frame = 0
		a.time = 0
	}
}

// SetMode changes the playback mode and rewinds the current animation.
func (an *Animator) SetMode(mode AnimationMode) {
	an.mode = mode
	if a := an.active(); a != nil {
		a.reset()
	}
}

// SetAnimation switches to name. With now the switch is immediate; otherwise
// name is queued to start once the current animation reaches its last frame,
// replacing any animation already queued.
func (an *Animator) SetAnimation(name string, now bool) {
	if an.disabled || len(an.animations) == 0 {
		return
	}
	if now {
		an.current = name
		an.next = ""
		an.Play()
		an.apply()
		return
	}
	if an.current != name {
		an.next = name
	}
}

// OnUpdate advances the current animation and copies its frame into the
// sprite clip.
func (an *Animator) OnUpdate(dt float64) {
	if an.disabled || len(an.animations) == 0 {
		return
	}
	if an.playing {
		a := an.active()
		a.advance(dt, an.mode)
		if a.atEnd() {
			switch {
			case an.next != "":
				a.frame = 0
				a.time = 0
				an.current = an.next
				an.next = ""
			case an.mode == AnimOnce:
				an.playing = false
			}
		}
	}
	an.apply()
}

func (an *Animator) apply() {
	if an.sprite == nil {
		return
	}
	a := an.active()
	if a == nil || a.Graph == nil {
		return
	}
	an.sprite.Graph = a.Graph
	an.sprite.GraphKey = a.Graph.Key
	an.sprite.Clip = a.FrameRect()
}
