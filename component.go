package kestrel

import (
	"fmt"
	"reflect"
)

// ComponentKind is the dense, process-wide identity of a component type. Kinds
// are assigned lazily, in first-use order, and never released.
type ComponentKind uint8

// MaxComponentKinds is the number of distinct component kinds a process may
// register. Each Entity reserves one slot per kind.
const MaxComponentKinds = 8

// Component is implemented by every attachable behavior. Concrete kinds embed
// BaseComponent and implement any subset of Initializer, Updater, Drawer,
// Debugger and Destroyer.
type Component interface {
	componentBase() *BaseComponent
}

// BaseComponent carries the back-reference to the owning entity. Embed it in
// every component kind.
type BaseComponent struct {
	entity *Entity
	kind   ComponentKind
}

func (b *BaseComponent) componentBase() *BaseComponent { return b }

// Entity returns the entity the component is attached to, or nil.
func (b *BaseComponent) Entity() *Entity { return b.entity }

// Kind returns the kind assigned when the component was attached.
func (b *BaseComponent) Kind() ComponentKind { return b.kind }

// Initializer is called once, right after the component is attached.
type Initializer interface{ OnInit() }

// Updater is called every frame the owning entity updates.
type Updater interface{ OnUpdate(dt float64) }

// Drawer is called when the owning entity renders.
type Drawer interface{ OnDraw(r Renderer) }

// Debugger draws diagnostic overlays when the entity has ShowComponents set.
type Debugger interface{ OnDebug(r Renderer) }

// Destroyer is called before the component is detached or its entity destroyed.
type Destroyer interface{ OnDestroy() }

// componentEntry is one element of an entity's dispatch list. Capability
// interfaces are resolved once at attach time.
type componentEntry struct {
	c       Component
	kind    ComponentKind
	update  Updater
	draw    Drawer
	debug   Debugger
	destroy Destroyer
}

// --- Kind registry ---

// kestrel is single-threaded; the registry is not guarded.
var (
	nextComponentKind ComponentKind
	componentKinds    = make(map[reflect.Type]ComponentKind, MaxComponentKinds)
	componentNames    [MaxComponentKinds]string
)

// KindOf returns the kind of component type T, registering it on first use.
// Panics when more than MaxComponentKinds types are registered.
func KindOf[T Component]() ComponentKind {
	typ := reflect.TypeFor[T]()
	if k, ok := componentKinds[typ]; ok {
		return k
	}
	if int(nextComponentKind) >= MaxComponentKinds {
		panic(fmt.Sprintf("kestrel: cannot register component %s: limit of %d kinds reached", typ, MaxComponentKinds))
	}
	k := nextComponentKind
	componentKinds[typ] = k
	componentNames[k] = typ.String()
	nextComponentKind++
	return k
}

// KindName returns the Go type name registered for k.
func KindName(k ComponentKind) string {
	if int(k) >= MaxComponentKinds {
		return ""
	}
	return componentNames[k]
}

// --- Generic access ---

// AddComponent attaches c to e and calls its OnInit. If e already has a
// component of type T, that component is returned and c is discarded.
func AddComponent[T Component](e *Entity, c T) T {
	k := KindOf[T]()
	if e.hasKind(k) {
		return e.slots[k].(T)
	}
	e.attach(c, k)
	if in, ok := any(c).(Initializer); ok {
		in.OnInit()
	}
	return c
}

// AddComponentManualInit attaches c like AddComponent but leaves the OnInit
// call to the caller.
func AddComponentManualInit[T Component](e *Entity, c T) T {
	k := KindOf[T]()
	if e.hasKind(k) {
		return e.slots[k].(T)
	}
	e.attach(c, k)
	return c
}

// GetComponent returns e's component of type T, or the zero value (nil for
// pointer kinds) if none is attached.
func GetComponent[T Component](e *Entity) T {
	k := KindOf[T]()
	if !e.hasKind(k) {
		var zero T
		return zero
	}
	return e.slots[k].(T)
}

// HasComponent reports whether e has a component of type T.
func HasComponent[T Component](e *Entity) bool {
	return e.hasKind(KindOf[T]())
}

// RemoveComponent calls OnDestroy on e's component of type T and detaches it.
// No-op if none is attached.
func RemoveComponent[T Component](e *Entity) {
	e.detach(KindOf[T]())
}

// --- Entity slot plumbing ---

func (e *Entity) hasKind(k ComponentKind) bool {
	return e.componentMask&(1<<k) != 0
}

func (e *Entity) attach(c Component, k ComponentKind) {
	base := c.componentBase()
	base.entity = e
	base.kind = k

	entry := componentEntry{c: c, kind: k}
	entry.update, _ = c.(Updater)
	entry.draw, _ = c.(Drawer)
	entry.debug, _ = c.(Debugger)
	entry.destroy, _ = c.(Destroyer)

	e.components = append(e.components, entry)
	e.slots[k] = c
	e.componentMask |= 1 << k
}

func (e *Entity) detach(k ComponentKind) {
	if !e.hasKind(k) {
		return
	}
	for i, entry := range e.components {
		if entry.kind != k {
			continue
		}
		if entry.destroy != nil {
			entry.destroy.OnDestroy()
		}
		copy(e.components[i:], e.components[i+1:])
		e.components[len(e.components)-1] = componentEntry{}
		e.components = e.components[:len(e.components)-1]
		break
	}
	e.slots[k] = nil
	e.componentMask &^= 1 << k
}

// Components returns the attached components in insertion order.
func (e *Entity) Components() []Component {
	out := make([]Component, len(e.components))
	for i, entry := range e.components {
		out[i] = entry.c
	}
	return out
}

// NumComponents returns the number of attached components.
func (e *Entity) NumComponents() int {
	return len(e.components)
}
