package kestrel

import (
	"log/slog"
)

// EventSink is the interface for optional ECS integration.
// When set on a Scene, lifecycle and collision events are forwarded to it.
type EventSink interface {
	EmitEvent(event SceneEvent)
}

// EventType identifies the kind of a SceneEvent.
type EventType uint8

const (
	EventEntityAdded   EventType = iota // entity joined the scene
	EventEntityRemoved                  // entity left the scene and was destroyed
	EventCollision                      // two entities' colliders overlapped
)

// String returns a lowercase name for the event type.
func (t EventType) String() string {
	switch t {
	case EventEntityAdded:
		return "added"
	case EventEntityRemoved:
		return "removed"
	case EventCollision:
		return "collision"
	}
	return "unknown"
}

// SceneEvent carries event data for the ECS bridge. OtherID and OtherName
// are only set for EventCollision.
type SceneEvent struct {
	Type      EventType
	Frame     uint64
	EntityID  uint32
	Name      string
	OtherID   uint32
	OtherName string
}

// Option configures a Scene at construction.
type Option func(*Scene)

// WithRenderer sets the renderer Render falls back to when called with nil.
func WithRenderer(r Renderer) Option {
	return func(s *Scene) { s.renderer = r }
}

// WithInput sets the input source for hotkeys, picking and the editor.
func WithInput(in Input) Option {
	return func(s *Scene) { s.input = in }
}

// WithClock sets the time source of the frame timer.
func WithClock(c Clock) Option {
	return func(s *Scene) { s.clock = c }
}

// WithAssets sets the graph cache components resolve textures from.
func WithAssets(a *Assets) Option {
	return func(s *Scene) { s.assets = a }
}

// WithTextureLoader builds the scene's graph cache on top of loader.
func WithTextureLoader(loader TextureLoader) Option {
	return func(s *Scene) { s.loader = loader }
}

// WithLogger sets the scene logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scene) { s.log = l }
}

// WithEventSink sets the optional ECS bridge.
func WithEventSink(sink EventSink) Option {
	return func(s *Scene) { s.sink = sink }
}

// Scene owns every root entity, the draw-order layers, the frame timer, the
// camera and the spatial index, and drives the per-frame pipeline.
//
// Entities added or removed while a frame is running go through deferred
// queues that Update drains at fixed points, so the entity list is never
// mutated while it is being iterated.
type Scene struct {
	EnableEditor     bool
	EnableCollisions bool
	ShowDebug        bool
	ShowStats        bool
	// ShowQuadtree outlines the spatial index nodes when ShowDebug is on.
	ShowQuadtree  bool
	CollisionMode CollisionMode

	cfg      Config
	log      *slog.Logger
	renderer Renderer
	input    Input
	clock    Clock
	loader   TextureLoader
	assets   *Assets
	sink     EventSink

	timer  *Timer
	fps    fpsMeter
	camera *Camera
	index  *Quadtree

	gameObjects []*Entity
	toAdd       []*Entity
	toRemove    []*Entity
	layers      [][]*Entity

	editor editor

	frame           uint64
	numRemoved      int
	objectsRendered int
	background      Color
	worldSize       Vec2
}

// NewScene creates a scene from cfg. Collaborators not supplied through
// options default to a system clock, no input, a no-op renderer and an empty
// graph cache. The scene starts with two layers.
func NewScene(cfg Config, opts ...Option) *Scene {
	s := &Scene{
		EnableEditor:     cfg.EnableEditor,
		EnableCollisions: cfg.EnableCollisions,
		ShowDebug:        cfg.ShowDebug,
		ShowStats:        cfg.ShowStats,
		CollisionMode:    cfg.CollisionMode,
		cfg:              cfg,
		background:       cfg.Background,
		worldSize:        Vec2{cfg.WorldWidth, cfg.WorldHeight},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = NewLoggerFromConfig(cfg)
	}
	if s.clock == nil {
		s.clock = NewSystemClock()
	}
	if s.input == nil {
		s.input = nopInput{}
	}
	if s.renderer == nil {
		s.renderer = nopRenderer{}
	}
	if s.assets == nil {
		s.assets = NewAssets(s.loader, s.log, cfg.AssetPaths...)
	}
	if cfg.DebugChecks {
		SetDebugChecks(true)
	}

	s.timer = NewTimer(s.clock)
	s.camera = newCamera(float64(cfg.WindowWidth), float64(cfg.WindowHeight))
	s.index = NewQuadtree(s.worldBounds())
	s.editor.mode = EditNone
	s.AddLayers(2)
	return s
}

// NewLoggerFromConfig builds the logger a scene uses when none is supplied.
func NewLoggerFromConfig(cfg Config) *slog.Logger {
	if cfg.LogLevel == "" && cfg.LogFormat == "" {
		return Logger()
	}
	return NewLogger(cfg.LogLevel, cfg.LogFormat, logOutput)
}

func (s *Scene) worldBounds() Rect {
	w, h := s.worldSize.X, s.worldSize.Y
	if w <= 0 || h <= 0 {
		w, h = float64(s.cfg.WindowWidth), float64(s.cfg.WindowHeight)
	}
	return Rect{Width: w, Height: h}
}

// --- Accessors ---

// Config returns the settings the scene was created with.
func (s *Scene) Config() Config { return s.cfg }

// Logger returns the scene logger.
func (s *Scene) Logger() *slog.Logger { return s.log }

// Assets returns the graph cache.
func (s *Scene) Assets() *Assets { return s.assets }

// Input returns the input source.
func (s *Scene) Input() Input { return s.input }

// Timer returns the frame timer.
func (s *Scene) Timer() *Timer { return s.timer }

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Index returns the spatial index over root entities.
func (s *Scene) Index() *Quadtree { return s.index }

// Frame returns the number of completed Update calls.
func (s *Scene) Frame() uint64 { return s.frame }

// Background returns the clear color.
func (s *Scene) Background() Color { return s.background }

// WorldSize returns the world dimensions set by SetWorld.
func (s *Scene) WorldSize() Vec2 { return s.worldSize }

// GameObjects returns the live entity list. The returned slice MUST NOT be
// mutated by the caller.
func (s *Scene) GameObjects() []*Entity { return s.gameObjects }

// Len returns the number of live entities.
func (s *Scene) Len() int { return len(s.gameObjects) }

// Pending returns the number of queued additions and removals.
func (s *Scene) Pending() (adds, removes int) { return len(s.toAdd), len(s.toRemove) }

// SetEventSink sets the optional ECS bridge.
func (s *Scene) SetEventSink(sink EventSink) { s.sink = sink }

func (s *Scene) emit(ev SceneEvent) {
	if s.sink == nil {
		return
	}
	ev.Frame = s.frame
	s.sink.EmitEvent(ev)
}

// --- Entity lifecycle ---

// AddGameObject registers e immediately: it joins the entity list, its layer
// bucket and the spatial index. Do not call it while the scene is iterating;
// use AddQueueObject from callbacks.
func (s *Scene) AddGameObject(e *Entity) {
	e.setScene(s)
	s.gameObjects = append(s.gameObjects, e)
	s.addToLayer(e)
	s.index.Insert(e)
	s.emit(SceneEvent{Type: EventEntityAdded, EntityID: e.ID, Name: e.Name})
}

// AddQueueObject schedules e to join the scene at the next Update. Until
// then it is not part of GameObjects.
func (s *Scene) AddQueueObject(e *Entity) {
	e.setScene(s)
	s.toAdd = append(s.toAdd, e)
}

// RemoveGameObject schedules e for removal at the next Update. Removal calls
// OnRemove and then destroys e with all its descendants.
func (s *Scene) RemoveGameObject(e *Entity) {
	s.toRemove = append(s.toRemove, e)
}

// GetGameObjectByName returns the first entity named name, logging a warning
// and returning nil when there is none.
func (s *Scene) GetGameObjectByName(name string) *Entity {
	for _, e := range s.gameObjects {
		if e.Name == name {
			return e
		}
	}
	s.log.Warn("game object not found", "name", name)
	return nil
}

func (s *Scene) drainRemovals() {
	// Removals queued from OnRemove hooks land next frame.
	pending := s.toRemove
	s.toRemove = nil
	for _, e := range pending {
		// A directly destroyed entity still leaves the scene but gets no
		// second OnRemove or Destroy.
		disposed := e.disposed
		s.removeFromLayer(e)
		s.index.Remove(e)
		if s.editor.selected == e {
			s.editor.selected = nil
		}

		idx := s.indexOf(e)
		switch {
		case idx >= 0:
			copy(s.gameObjects[idx:], s.gameObjects[idx+1:])
			s.gameObjects[len(s.gameObjects)-1] = nil
			s.gameObjects = s.gameObjects[:len(s.gameObjects)-1]
		case e.parent != nil:
			// A child removed on its own leaves its parent's subtree.
			e.RemoveFromParent()
		default:
			continue
		}
		s.numRemoved++
		id, name := e.ID, e.Name
		if !disposed {
			e.removed()
			e.Destroy()
		}
		s.emit(SceneEvent{Type: EventEntityRemoved, EntityID: id, Name: name})
	}
}

func (s *Scene) drainAdditions() {
	// Additions queued while draining land next frame.
	pending := s.toAdd
	s.toAdd = nil
	for _, e := range pending {
		if e.disposed {
			continue
		}
		e.UpdateWorld()
		s.AddGameObject(e)
	}
}

func (s *Scene) indexOf(e *Entity) int {
	for i, o := range s.gameObjects {
		if o == e {
			return i
		}
	}
	return -1
}

// ClearScene schedules every non-persistent entity for removal and drops
// pending additions. Non-persistent entities leave their layers at once, so
// they stop rendering immediately.
func (s *Scene) ClearScene() {
	for i, layer := range s.layers {
		kept := layer[:0]
		for _, e := range layer {
			if e.Persistent {
				kept = append(kept, e)
			} else {
				e.inLayer = false
			}
		}
		clear(layer[len(kept):])
		s.layers[i] = kept
	}

	for _, e := range s.toAdd {
		e.removed()
		e.Destroy()
	}
	s.toAdd = s.toAdd[:0]

	for _, e := range s.gameObjects {
		if !e.Persistent {
			s.toRemove = append(s.toRemove, e)
		}
	}
	s.log.Info("scene cleared", "pending_removals", len(s.toRemove))
}

// ClearAndFree destroys every entity, persistent or not, including pending
// additions and removals, and drops all layers.
func (s *Scene) ClearAndFree() {
	s.log.Info("clearing and freeing scene", "entities", len(s.gameObjects))
	for _, layer := range s.layers {
		for _, e := range layer {
			e.inLayer = false
		}
	}
	s.layers = nil
	s.index.Clear()

	for _, e := range s.gameObjects {
		e.removed()
		e.Destroy()
	}
	clear(s.gameObjects)
	s.gameObjects = s.gameObjects[:0]

	for _, e := range s.toRemove {
		e.Destroy()
	}
	clear(s.toRemove)
	s.toRemove = s.toRemove[:0]

	for _, e := range s.toAdd {
		e.Destroy()
	}
	clear(s.toAdd)
	s.toAdd = s.toAdd[:0]
	s.editor.selected = nil
}

// --- Layers ---

// AddLayer appends an empty layer and returns the new layer count.
func (s *Scene) AddLayer() int {
	s.layers = append(s.layers, make([]*Entity, 0, 64))
	return len(s.layers)
}

// AddLayers appends count empty layers and returns the new layer count.
func (s *Scene) AddLayers(count int) int {
	for range count {
		s.AddLayer()
	}
	return len(s.layers)
}

// LayersCount returns the number of layers.
func (s *Scene) LayersCount() int {
	return len(s.layers)
}

// Layer returns the entities on layer i in draw order, or nil when the layer
// does not exist. The returned slice MUST NOT be mutated by the caller.
func (s *Scene) Layer(i int) []*Entity {
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	return s.layers[i]
}

func (s *Scene) addToLayer(e *Entity) {
	if e.Layer < 0 {
		e.Layer = 0
	}
	for len(s.layers) <= e.Layer {
		s.AddLayer()
	}
	s.layers[e.Layer] = append(s.layers[e.Layer], e)
	e.bucket = e.Layer
	e.inLayer = true
}

// removeFromLayer drops e from the bucket it was inserted into, which may
// differ from e.Layer when the field was changed directly.
func (s *Scene) removeFromLayer(e *Entity) {
	if !e.inLayer {
		return
	}
	e.inLayer = false
	if e.bucket >= len(s.layers) {
		return
	}
	layer := s.layers[e.bucket]
	for i, o := range layer {
		if o == e {
			copy(layer[i:], layer[i+1:])
			layer[len(layer)-1] = nil
			s.layers[e.bucket] = layer[:len(layer)-1]
			return
		}
	}
}

// --- Camera and world ---

// SetCamera points the camera target at (x, y).
func (s *Scene) SetCamera(x, y float64) {
	s.camera.Target = Vec2{x, y}
	s.camera.computeView()
}

// SetPositionCamera moves the camera so (x, y) is the top-left corner of the
// visible area.
func (s *Scene) SetPositionCamera(x, y float64) {
	z := s.camera.zoom()
	s.camera.Target = Vec2{x + s.camera.Offset.X/z, y + s.camera.Offset.Y/z}
	s.camera.computeView()
}

// InView reports whether r overlaps the visible area as of the last Update.
func (s *Scene) InView(r Rect) bool {
	return r.Intersects(s.camera.View())
}

// SetWorld resizes the world and rebuilds the spatial index over it.
func (s *Scene) SetWorld(width, height float64) {
	s.worldSize = Vec2{width, height}
	s.index.Clear()
	s.index = NewQuadtree(s.worldBounds())
	for _, e := range s.gameObjects {
		s.index.Insert(e)
	}
}

// SetBackground sets the clear color.
func (s *Scene) SetBackground(c Color) {
	s.background = c
}

// --- Frame ---

// Update runs one frame: timer tick, camera, hotkeys, entity updates,
// removal and addition queues, collisions and spatial index sync.
func (s *Scene) Update() {
	if p, ok := s.input.(Poller); ok {
		p.Poll()
	}
	s.timer.Update()
	s.fps.tick(s.timer.Delta())
	s.objectsRendered = 0
	s.camera.update(s.timer.Delta())

	s.handleHotkeys()

	if !s.timer.Paused() {
		dt := s.timer.Delta()
		for _, e := range s.gameObjects {
			if e.Alive && e.Active {
				e.Update(dt)
			}
			if !e.Alive {
				s.toRemove = append(s.toRemove, e)
			}
		}
	}

	s.drainRemovals()
	s.drainAdditions()

	if s.EnableCollisions {
		s.Collision()
	}
	s.syncIndex()

	if s.input.KeyReleased(KeyF2) {
		s.ClearScene()
	}
	s.frame++
}

func (s *Scene) handleHotkeys() {
	in := s.input
	if in.KeyReleased(KeyF1) {
		s.ShowDebug = !s.ShowDebug
	}
	if in.KeyPressed(KeyP) {
		s.editor.deselect()
		s.timer.Toggle()
		s.log.Info("timer toggled", "paused", s.timer.Paused())
	}
	if in.KeyReleased(KeyF3) {
		s.EnableCollisions = !s.EnableCollisions
		if s.EnableCollisions {
			s.log.Info("collisions enabled")
		} else {
			s.log.Info("collisions disabled")
		}
	}
}

// syncIndex re-inserts root entities whose bound moved since they were indexed.
func (s *Scene) syncIndex() {
	for _, e := range s.gameObjects {
		s.index.Update(e)
	}
}

// Render draws one frame through r (or the WithRenderer renderer when r is
// nil): layers back to front, then debug overlays, the paused-state hooks and
// editor, and the stats overlay.
func (s *Scene) Render(r Renderer) {
	if r == nil {
		r = s.renderer
	}

	for _, layer := range s.layers {
		for _, e := range layer {
			if e.Alive && e.Visible && s.InView(e.Bound) {
				e.Render(r)
				s.objectsRendered++
			}
		}
	}

	if s.ShowDebug {
		for _, e := range s.gameObjects {
			if e.Visible && e.Active {
				e.Debug(r)
			}
		}
		if s.ShowQuadtree {
			s.index.Draw(r)
		}
	}

	if s.timer.Paused() {
		for _, e := range s.gameObjects {
			if e.Alive && e.Active {
				e.pause()
			}
		}
		if s.EnableEditor {
			s.runEditor(r)
		}
	}

	if s.ShowStats {
		s.drawStats(r)
	}
}

// ObjectsRendered returns the number of entities drawn since the last Update.
func (s *Scene) ObjectsRendered() int {
	return s.objectsRendered
}
