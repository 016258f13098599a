package kestrel

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields of a Transform together. Build
// one with Tween.Position, Tween.Scale, Tween.Rotation or Tween.Pivot.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool

	// OnDone is called once, on the update that finishes the group.
	OnDone func()
}

// Update advances all tweens by dt seconds and writes the values to the
// target fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	if g.Done && g.OnDone != nil {
		g.OnDone()
	}
}

// Cancel stops the group where it is.
func (g *TweenGroup) Cancel() {
	g.Done = true
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// Tween runs transform tweens on its entity every update. Finished groups are
// dropped. A nil easing function means linear.
type Tween struct {
	BaseComponent
	groups []*TweenGroup
}

// NewTween creates an idle tween component.
func NewTween() *Tween {
	return &Tween{}
}

func (tw *Tween) start(fn ease.TweenFunc, build func(g *TweenGroup, fn ease.TweenFunc)) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{}
	build(g, fn)
	tw.groups = append(tw.groups, g)
	return g
}

// Position animates Transform.Position to (x, y).
func (tw *Tween) Position(x, y float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	t := tw.entity.Transform
	return tw.start(fn, func(g *TweenGroup, fn ease.TweenFunc) {
		g.add(&t.Position.X, x, duration, fn)
		g.add(&t.Position.Y, y, duration, fn)
	})
}

// Scale animates Transform.Scale to (sx, sy).
func (tw *Tween) Scale(sx, sy float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	t := tw.entity.Transform
	return tw.start(fn, func(g *TweenGroup, fn ease.TweenFunc) {
		g.add(&t.Scale.X, sx, duration, fn)
		g.add(&t.Scale.Y, sy, duration, fn)
	})
}

// Rotation animates Transform.Rotation to deg.
func (tw *Tween) Rotation(deg float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	t := tw.entity.Transform
	return tw.start(fn, func(g *TweenGroup, fn ease.TweenFunc) {
		g.add(&t.Rotation, deg, duration, fn)
	})
}

// Pivot animates Transform.Pivot to (px, py).
func (tw *Tween) Pivot(px, py float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	t := tw.entity.Transform
	return tw.start(fn, func(g *TweenGroup, fn ease.TweenFunc) {
		g.add(&t.Pivot.X, px, duration, fn)
		g.add(&t.Pivot.Y, py, duration, fn)
	})
}

// Active returns the number of running groups.
func (tw *Tween) Active() int {
	return len(tw.groups)
}

// Cancel stops every running group.
func (tw *Tween) Cancel() {
	for _, g := range tw.groups {
		g.Cancel()
	}
	tw.groups = tw.groups[:0]
}

// OnUpdate advances the running groups.
func (tw *Tween) OnUpdate(dt float64) {
	if len(tw.groups) == 0 {
		return
	}
	// Groups started from OnDone land in tw.groups and run next frame.
	running := tw.groups
	tw.groups = nil
	kept := running[:0]
	for _, g := range running {
		g.Update(float32(dt))
		if !g.Done {
			kept = append(kept, g)
		}
	}
	clear(running[len(kept):])
	tw.groups = append(kept, tw.groups...)
}

// OnDestroy drops the running groups.
func (tw *Tween) OnDestroy() {
	tw.groups = nil
}
