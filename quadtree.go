package kestrel

const (
	// MaxObjects is the number of entities a node holds before it splits.
	MaxObjects = 4
	// MaxLevels is the depth at which nodes stop splitting.
	MaxLevels = 5
)

// Quadtree is a recursive 4-way subdivision over entity bounds. It holds
// non-owning references: an entity must be removed before it is destroyed.
//
// Child order is 0 = top-right, 1 = top-left, 2 = bottom-left,
// 3 = bottom-right. Each entity remembers the bound it was inserted with so
// removal routes the same way even after the entity has moved. An entity can
// be tracked by at most one Quadtree at a time.
//
// Entities that do not fit inside the root bounds are kept at the root.
type Quadtree struct {
	level   int
	bounds  Rect
	objects []*Entity
	nodes   [4]*Quadtree
}

// NewQuadtree creates an empty tree covering bounds.
func NewQuadtree(bounds Rect) *Quadtree {
	return &Quadtree{bounds: bounds}
}

// Bounds returns the area covered by this node.
func (q *Quadtree) Bounds() Rect {
	return q.bounds
}

// Level returns the depth of this node; the root is level 0.
func (q *Quadtree) Level() int {
	return q.level
}

// Node returns child i (0..3), or nil when the node is a leaf.
func (q *Quadtree) Node(i int) *Quadtree {
	if i < 0 || i > 3 {
		return nil
	}
	return q.nodes[i]
}

// IsLeaf reports whether the node has no children.
func (q *Quadtree) IsLeaf() bool {
	return q.nodes[0] == nil
}

// --- Insert / remove ---

// Insert adds e using its current Bound. An entity already tracked is moved
// to its new place.
func (q *Quadtree) Insert(e *Entity) {
	if e.inIndex {
		q.Remove(e)
	}
	e.indexed = e.Bound
	e.inIndex = true
	q.insert(e, e.indexed)
}

func (q *Quadtree) insert(e *Entity, r Rect) {
	if !q.IsLeaf() {
		if i := q.index(r); i != -1 {
			q.nodes[i].insert(e, r)
			return
		}
	}

	q.objects = append(q.objects, e)
	if len(q.objects) <= MaxObjects || q.level >= MaxLevels {
		return
	}
	if q.IsLeaf() {
		q.split()
	}
	kept := q.objects[:0]
	for _, o := range q.objects {
		if i := q.index(o.indexed); i != -1 {
			q.nodes[i].insert(o, o.indexed)
			continue
		}
		kept = append(kept, o)
	}
	clear(q.objects[len(kept):])
	q.objects = kept
}

// Remove drops e from the tree and collapses nodes whose subtree fell to
// MaxObjects or fewer entities. Reports whether e was found.
func (q *Quadtree) Remove(e *Entity) bool {
	if !e.inIndex {
		return false
	}
	ok := q.remove(e, e.indexed)
	if !ok {
		ok = q.removeScan(e)
	}
	if ok {
		e.inIndex = false
	}
	return ok
}

func (q *Quadtree) remove(e *Entity, r Rect) bool {
	removed := false
	if !q.IsLeaf() {
		if i := q.index(r); i != -1 {
			removed = q.nodes[i].remove(e, r)
		}
	}
	if !removed {
		removed = q.removeObject(e)
	}
	if removed {
		q.collapse()
	}
	return removed
}

// removeScan searches the whole subtree. Used when routing by the recorded
// bound misses.
func (q *Quadtree) removeScan(e *Entity) bool {
	removed := q.removeObject(e)
	if !removed && !q.IsLeaf() {
		for _, n := range q.nodes {
			if n.removeScan(e) {
				removed = true
				break
			}
		}
	}
	if removed {
		q.collapse()
	}
	return removed
}

func (q *Quadtree) removeObject(e *Entity) bool {
	for i, o := range q.objects {
		if o == e {
			copy(q.objects[i:], q.objects[i+1:])
			q.objects[len(q.objects)-1] = nil
			q.objects = q.objects[:len(q.objects)-1]
			return true
		}
	}
	return false
}

// Update re-inserts e when its Bound differs from the one it was indexed
// with, or inserts it when untracked. Reports whether the tree changed.
func (q *Quadtree) Update(e *Entity) bool {
	if e.inIndex && e.indexed == e.Bound {
		return false
	}
	q.Insert(e)
	return true
}

// Clear drops every entity and all children.
func (q *Quadtree) Clear() {
	for _, o := range q.objects {
		o.inIndex = false
	}
	clear(q.objects)
	q.objects = q.objects[:0]
	for i, n := range q.nodes {
		if n != nil {
			n.Clear()
			q.nodes[i] = nil
		}
	}
}

// --- Split / merge ---

func (q *Quadtree) split() {
	w := q.bounds.Width / 2
	h := q.bounds.Height / 2
	x, y := q.bounds.X, q.bounds.Y
	lvl := q.level + 1

	q.nodes[0] = &Quadtree{level: lvl, bounds: Rect{X: x + w, Y: y, Width: w, Height: h}}
	q.nodes[1] = &Quadtree{level: lvl, bounds: Rect{X: x, Y: y, Width: w, Height: h}}
	q.nodes[2] = &Quadtree{level: lvl, bounds: Rect{X: x, Y: y + h, Width: w, Height: h}}
	q.nodes[3] = &Quadtree{level: lvl, bounds: Rect{X: x + w, Y: y + h, Width: w, Height: h}}
}

// collapse pulls every descendant up into q and drops the children once the
// subtree holds MaxObjects or fewer entities.
func (q *Quadtree) collapse() {
	if q.IsLeaf() || q.Count() > MaxObjects {
		return
	}
	for i, n := range q.nodes {
		q.objects = n.collect(q.objects)
		q.nodes[i] = nil
	}
}

func (q *Quadtree) collect(out []*Entity) []*Entity {
	out = append(out, q.objects...)
	if !q.IsLeaf() {
		for _, n := range q.nodes {
			out = n.collect(out)
		}
	}
	return out
}

// index returns the quadrant that strictly contains r, or -1 when r
// straddles a midpoint or leaves this node.
func (q *Quadtree) index(r Rect) int {
	if !q.bounds.ContainsRect(r) {
		return -1
	}
	vMid := q.bounds.X + q.bounds.Width/2
	hMid := q.bounds.Y + q.bounds.Height/2

	top := r.Y < hMid && r.Y+r.Height < hMid
	bottom := r.Y > hMid

	switch {
	case r.X < vMid && r.X+r.Width < vMid:
		if top {
			return 1
		}
		if bottom {
			return 2
		}
	case r.X > vMid:
		if top {
			return 0
		}
		if bottom {
			return 3
		}
	}
	return -1
}

// --- Queries ---

// Count returns the number of entities in this subtree.
func (q *Quadtree) Count() int {
	n := len(q.objects)
	if !q.IsLeaf() {
		for _, c := range q.nodes {
			n += c.Count()
		}
	}
	return n
}

// Contains reports whether e is tracked by this subtree.
func (q *Quadtree) Contains(e *Entity) bool {
	for _, o := range q.objects {
		if o == e {
			return true
		}
	}
	if !q.IsLeaf() {
		for _, n := range q.nodes {
			if n.Contains(e) {
				return true
			}
		}
	}
	return false
}

// QueryPoint returns the entities whose bound contains p.
func (q *Quadtree) QueryPoint(p Vec2) []*Entity {
	return q.query(nil,
		func(b Rect) bool { return b.Contains(p.X, p.Y) },
		func(e *Entity) bool { return e.Bound.Contains(p.X, p.Y) })
}

// QueryRect returns the entities whose bound overlaps r.
func (q *Quadtree) QueryRect(r Rect) []*Entity {
	return q.query(nil,
		func(b Rect) bool { return b.Intersects(r) },
		func(e *Entity) bool { return e.Bound.Intersects(r) })
}

// QueryCircle returns the entities whose bound touches the circle.
func (q *Quadtree) QueryCircle(center Vec2, radius float64) []*Entity {
	return q.query(nil,
		func(b Rect) bool { return b.IntersectsCircle(center, radius) },
		func(e *Entity) bool { return e.Bound.IntersectsCircle(center, radius) })
}

// query prunes by node bound and tests every held entity individually. The
// root always tests its own entities since it also holds the ones that fall
// outside its bounds.
func (q *Quadtree) query(out []*Entity, node func(Rect) bool, hit func(*Entity) bool) []*Entity {
	overlaps := node(q.bounds)
	if !overlaps && q.level > 0 {
		return out
	}
	for _, o := range q.objects {
		if hit(o) {
			out = append(out, o)
		}
	}
	if !overlaps || q.IsLeaf() {
		return out
	}
	for _, n := range q.nodes {
		out = n.query(out, node, hit)
	}
	return out
}

// Walk calls fn for every node, parents before children.
func (q *Quadtree) Walk(fn func(n *Quadtree, objects []*Entity)) {
	fn(q, q.objects)
	if !q.IsLeaf() {
		for _, n := range q.nodes {
			n.Walk(fn)
		}
	}
}

// Draw outlines every node bound.
func (q *Quadtree) Draw(r Renderer) {
	q.Walk(func(n *Quadtree, _ []*Entity) {
		r.DrawRectLines(n.bounds, 1, ColorSkyBlue.Fade(0.5))
	})
}
