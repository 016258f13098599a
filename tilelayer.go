package kestrel

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// EmptyTile marks a cell with no tile.
const EmptyTile = -1

// solidsLayer is the layer CreateSolids puts its blockers on.
const solidsLayer = 2

// TileLayer is a grid of tile ids drawn from a tileset graph. Cells hold
// EmptyTile until painted. Tile ids index the tileset left to right, top to
// bottom, honoring Margin around the sheet and Spacing between tiles.
type TileLayer struct {
	BaseComponent

	GraphKey string
	Graph    *Graph

	Width, Height         int // in tiles
	TileWidth, TileHeight int // in pixels
	Spacing, Margin       int

	tiles    []int
	disabled bool
}

// NewTileLayer creates a width by height layer of empty cells using the
// tileset loaded under graphKey. A missing tileset disables drawing; the grid
// itself stays editable.
func NewTileLayer(assets *Assets, width, height, tileWidth, tileHeight, spacing, margin int, graphKey string) *TileLayer {
	t := &TileLayer{
		GraphKey:   graphKey,
		Width:      max(width, 0),
		Height:     max(height, 0),
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		Spacing:    spacing,
		Margin:     margin,
	}
	if assets != nil {
		t.Graph = assets.Graph(graphKey)
	}
	if t.Graph == nil {
		t.disabled = true
	}
	t.tiles = make([]int, t.Width*t.Height)
	t.Clear()
	return t
}

// Disabled reports whether the layer has no tileset to draw from.
func (t *TileLayer) Disabled() bool { return t.disabled }

// PixelSize returns the layer size in pixels.
func (t *TileLayer) PixelSize() (w, h float64) {
	return float64(t.Width * t.TileWidth), float64(t.Height * t.TileHeight)
}

// OnInit sizes the entity's hit box to the whole map with a top-left origin.
func (t *TileLayer) OnInit() {
	e := t.entity
	w, h := t.PixelSize()
	e.OriginX, e.OriginY = 0, 0
	e.Width, e.Height = w, h
	e.UpdateWorld()
	if t.disabled {
		e.logger().Error("tile layer graph not found", "entity", e.Name, "graph", t.GraphKey)
	}
}

func (t *TileLayer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < t.Width && y < t.Height
}

// SetTile stores id at cell (x, y). Out-of-range cells are ignored.
func (t *TileLayer) SetTile(x, y, id int) {
	if !t.inBounds(x, y) {
		return
	}
	t.tiles[x+y*t.Width] = id
}

// Tile returns the id at cell (x, y), or EmptyTile when out of range.
func (t *TileLayer) Tile(x, y int) int {
	if !t.inBounds(x, y) {
		return EmptyTile
	}
	return t.tiles[x+y*t.Width]
}

// Tiles returns the row-major tile ids. The slice MUST NOT be mutated by the
// caller.
func (t *TileLayer) Tiles() []int { return t.tiles }

// Clear empties every cell.
func (t *TileLayer) Clear() {
	for i := range t.tiles {
		t.tiles[i] = EmptyTile
	}
}

// PaintRectangle fills the w by h block whose top-left cell is (x, y). The
// top-left cell must be on the map; cells past the edge are clipped.
func (t *TileLayer) PaintRectangle(x, y, w, h, id int) {
	if !t.inBounds(x, y) {
		return
	}
	for i := x; i < x+w; i++ {
		for j := y; j < y+h; j++ {
			t.SetTile(i, j, id)
		}
	}
}

// PaintCircle fills the cells within radius of (x, y). The center must be on
// the map; cells past the edge are clipped.
func (t *TileLayer) PaintCircle(x, y, radius, id int) {
	if !t.inBounds(x, y) {
		return
	}
	rsq := radius * radius
	for i := x - radius; i <= x+radius; i++ {
		for j := y - radius; j <= y+radius; j++ {
			dx, dy := i-x, j-y
			if dx*dx+dy*dy <= rsq {
				t.SetTile(i, j, id)
			}
		}
	}
}

// Clip returns the tileset rectangle of tile id. It is empty while the layer
// is disabled.
func (t *TileLayer) Clip(id int) Rect {
	if t.Graph == nil || t.TileWidth <= 0 {
		return Rect{}
	}
	columns := t.Graph.Width / t.TileWidth
	if columns <= 0 {
		return Rect{}
	}
	row, col := id/columns, id%columns
	return Rect{
		X:      float64(t.Margin + (t.Spacing+t.TileWidth)*col),
		Y:      float64(t.Margin + (t.Spacing+t.TileHeight)*row),
		Width:  float64(t.TileWidth),
		Height: float64(t.TileHeight),
	}
}

// LoadTiles copies ids row-major into the grid. Extra ids are ignored; a
// short slice leaves the remaining cells untouched.
func (t *TileLayer) LoadTiles(ids []int) {
	copy(t.tiles, ids)
}

// LoadCSV reads comma separated ids, one map row per line, adding shift to
// every id.
func (t *TileLayer) LoadCSV(r io.Reader, shift int) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return errors.Wrap(err, "read tile csv")
	}
	ids := make([]int, 0, len(t.tiles))
	for row, rec := range records {
		for col, cell := range rec {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			id, err := strconv.Atoi(cell)
			if err != nil {
				return errors.Wrapf(err, "tile csv row %d column %d", row+1, col+1)
			}
			ids = append(ids, id+shift)
		}
	}
	t.LoadTiles(ids)
	return nil
}

// LoadCSVFile reads a tile csv from path.
func (t *TileLayer) LoadCSVFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open tile csv %q", path)
	}
	defer f.Close()
	return t.LoadCSV(f, 0)
}

// WriteCSV writes the grid one map row per line.
func (t *TileLayer) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	row := make([]string, t.Width)
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			row[x] = strconv.Itoa(t.tiles[x+y*t.Width])
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "write tile csv")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "write tile csv")
}

// SaveCSVFile writes the grid to path.
func (t *TileLayer) SaveCSVFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create tile csv %q", path)
	}
	if err := t.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "close tile csv %q", path)
}

// CreateSolids adds a static, collidable blocker on layer 2 of the owning
// entity's scene for every cell holding an id of 1 or more. It returns the
// number of blockers added.
func (t *TileLayer) CreateSolids() int {
	e := t.entity
	if e == nil || e.scene == nil {
		Logger().Warn("tile layer not in a scene, no solids created", "graph", t.GraphKey)
		return 0
	}
	ox, oy := e.Transform.Position.X, e.Transform.Position.Y
	n := 0
	for x := 0; x < t.Width; x++ {
		for y := 0; y < t.Height; y++ {
			if t.Tile(x, y) < 1 {
				continue
			}
			solid := NewEntityOnLayer("solid", solidsLayer)
			solid.Solid = true
			solid.Prefab = true
			solid.Transform.Position = Vec2{
				ox + float64(x*t.TileWidth),
				oy + float64(y*t.TileHeight),
			}
			solid.Width = float64(t.TileWidth)
			solid.Height = float64(t.TileHeight)
			solid.UpdateWorld()
			e.scene.AddGameObject(solid)
			n++
		}
	}
	e.logger().Debug("solids created", "entity", e.Name, "count", n)
	return n
}

// visibleCells returns the half-open cell range covering view, clamped to the
// map.
func (t *TileLayer) visibleCells(view Rect, ox, oy float64) (x0, y0, x1, y1 int) {
	tw, th := float64(t.TileWidth), float64(t.TileHeight)
	x0 = int(math.Floor((view.X - ox) / tw))
	y0 = int(math.Floor((view.Y - oy) / th))
	x1 = int(math.Floor((view.X+view.Width-ox)/tw)) + 1
	y1 = int(math.Floor((view.Y+view.Height-oy)/th)) + 1
	x0 = min(max(x0, 0), t.Width)
	y0 = min(max(y0, 0), t.Height)
	x1 = min(max(x1, 0), t.Width)
	y1 = min(max(y1, 0), t.Height)
	return x0, y0, x1, y1
}

// OnDraw draws the cells inside the camera view. Outside a scene the whole
// map is drawn.
func (t *TileLayer) OnDraw(r Renderer) {
	if t.disabled {
		return
	}
	e := t.entity
	if t.TileWidth <= 0 || t.TileHeight <= 0 || t.Width == 0 || t.Height == 0 {
		e.logger().Error("tile layer has no size",
			"entity", e.Name, "width", t.Width, "height", t.Height,
			"tile_width", t.TileWidth, "tile_height", t.TileHeight)
		t.disabled = true
		return
	}

	ox, oy := e.Transform.Position.X, e.Transform.Position.Y
	x0, y0, x1, y1 := 0, 0, t.Width, t.Height
	if e.scene != nil {
		x0, y0, x1, y1 = t.visibleCells(e.scene.camera.View(), ox, oy)
	}

	tw, th := float64(t.TileWidth), float64(t.TileHeight)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			id := t.tiles[x+y*t.Width]
			if id == EmptyTile {
				continue
			}
			px, py := ox+float64(x)*tw, oy+float64(y)*th
			r.DrawQuad(t.Graph.Texture, tileQuad(px, py, tw, th, t.Clip(id)))
		}
	}
}

// OnDebug outlines the map.
func (t *TileLayer) OnDebug(r Renderer) {
	w, h := t.PixelSize()
	p := t.entity.Transform.Position
	r.DrawRectLines(Rect{X: p.X, Y: p.Y, Width: w, Height: h}, 1, ColorRed)
}

func tileQuad(x, y, w, h float64, clip Rect) [4]Vertex {
	l, tp := clip.X, clip.Y
	rt, b := clip.X+clip.Width, clip.Y+clip.Height
	return [4]Vertex{
		{X: x, Y: y, U: l, V: tp, Color: ColorWhite},
		{X: x + w, Y: y, U: rt, V: tp, Color: ColorWhite},
		{X: x + w, Y: y + h, U: rt, V: b, Color: ColorWhite},
		{X: x, Y: y + h, U: l, V: b, Color: ColorWhite},
	}
}
