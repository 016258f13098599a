package kestrel

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tileAssets holds a 3 column tileset of 16x16 tiles with a 1px margin and
// 2px spacing.
func tileAssets() *Assets {
	a := NewAssets(nil, quietLogger())
	a.AddGraph("tiles", &fakeTexture{w: 54, h: 54})
	return a
}

func TestTileLayerStartsEmpty(t *testing.T) {
	tl := NewTileLayer(tileAssets(), 3, 2, 16, 16, 2, 1, "tiles")
	assert.False(t, tl.Disabled())
	assert.Equal(t, []int{-1, -1, -1, -1, -1, -1}, tl.Tiles())
	w, h := tl.PixelSize()
	assert.Equal(t, 48.0, w)
	assert.Equal(t, 32.0, h)
}

func TestTileLayerSetAndGet(t *testing.T) {
	tl := NewTileLayer(tileAssets(), 3, 2, 16, 16, 0, 0, "tiles")
	tl.SetTile(2, 1, 7)
	assert.Equal(t, 7, tl.Tile(2, 1))
	assert.Equal(t, 7, tl.Tiles()[5])

	tl.SetTile(3, 0, 1)
	tl.SetTile(-1, 0, 1)
	assert.Equal(t, EmptyTile, tl.Tile(3, 0))
	assert.Equal(t, EmptyTile, tl.Tile(0, -1))

	tl.Clear()
	assert.Equal(t, EmptyTile, tl.Tile(2, 1))
}

func TestTileLayerPaintRectangleClipsAtEdge(t *testing.T) {
	tl := NewTileLayer(tileAssets(), 4, 4, 16, 16, 0, 0, "tiles")
	tl.PaintRectangle(2, 1, 5, 2, 3)
	want := []int{
		-1, -1, -1, -1,
		-1, -1, 3, 3,
		-1, -1, 3, 3,
		-1, -1, -1, -1,
	}
	assert.Equal(t, want, tl.Tiles())

	tl.PaintRectangle(-1, 0, 3, 3, 9)
	assert.Equal(t, want, tl.Tiles(), "off-map corner must not paint")
}

func TestTileLayerPaintCircle(t *testing.T) {
	tl := NewTileLayer(tileAssets(), 5, 5, 16, 16, 0, 0, "tiles")
	tl.PaintCircle(0, 0, 1, 2)
	want := []int{
		2, 2, -1, -1, -1,
		2, -1, -1, -1, -1,
	}
	assert.Equal(t, want, tl.Tiles()[:10])

	tl.Clear()
	tl.PaintCircle(2, 2, 2, 1)
	painted := 0
	for _, id := range tl.Tiles() {
		if id == 1 {
			painted++
		}
	}
	assert.Equal(t, 13, painted)
	assert.Equal(t, EmptyTile, tl.Tile(0, 0))
	assert.Equal(t, 1, tl.Tile(0, 2))
}

func TestTileLayerClip(t *testing.T) {
	tl := NewTileLayer(tileAssets(), 1, 1, 16, 16, 2, 1, "tiles")
	assertRect(t, "tile 0", tl.Clip(0), Rect{X: 1, Y: 1, Width: 16, Height: 16})
	assertRect(t, "tile 4", tl.Clip(4), Rect{X: 19, Y: 19, Width: 16, Height: 16})
	assertRect(t, "tile 2", tl.Clip(2), Rect{X: 37, Y: 1, Width: 16, Height: 16})
}

func TestTileLayerLoadTiles(t *testing.T) {
	tl := NewTileLayer(tileAssets(), 2, 2, 16, 16, 0, 0, "tiles")
	tl.LoadTiles([]int{1, 2})
	assert.Equal(t, []int{1, 2, -1, -1}, tl.Tiles())
	tl.LoadTiles([]int{5, 6, 7, 8, 9})
	assert.Equal(t, []int{5, 6, 7, 8}, tl.Tiles())
}

func TestTileLayerCSV(t *testing.T) {
	tl := NewTileLayer(tileAssets(), 3, 2, 16, 16, 0, 0, "tiles")
	require.NoError(t, tl.LoadCSV(strings.NewReader("0, 1, 2\n3,4,-2\n"), 1))
	assert.Equal(t, []int{1, 2, 3, 4, 5, -1}, tl.Tiles())

	var buf bytes.Buffer
	require.NoError(t, tl.WriteCSV(&buf))
	assert.Equal(t, "1,2,3\n4,5,-1\n", buf.String())
}

func TestTileLayerCSVBadCell(t *testing.T) {
	tl := NewTileLayer(tileAssets(), 2, 1, 16, 16, 0, 0, "tiles")
	err := tl.LoadCSV(strings.NewReader("1,x\n"), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1 column 2")
}

func TestTileLayerCSVFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.csv")
	src := NewTileLayer(tileAssets(), 2, 2, 16, 16, 0, 0, "tiles")
	src.LoadTiles([]int{0, 1, 2, 3})
	require.NoError(t, src.SaveCSVFile(path))

	dst := NewTileLayer(tileAssets(), 2, 2, 16, 16, 0, 0, "tiles")
	require.NoError(t, dst.LoadCSVFile(path))
	assert.Equal(t, src.Tiles(), dst.Tiles())

	assert.Error(t, dst.LoadCSVFile(filepath.Join(t.TempDir(), "missing.csv")))
}

func TestTileLayerInitSizesEntity(t *testing.T) {
	e := NewEntity("map")
	e.Transform.SetPosition(10, 20)
	AddComponent(e, NewTileLayer(tileAssets(), 4, 3, 16, 16, 0, 0, "tiles"))
	assert.Equal(t, 64.0, e.Width)
	assert.Equal(t, 48.0, e.Height)
	assert.Zero(t, e.OriginX)
	assertRect(t, "bound", e.Bound, Rect{X: 10, Y: 20, Width: 64, Height: 48})
}

func TestTileLayerCreateSolids(t *testing.T) {
	s, _, _, _ := newTestScene(t)
	e := NewEntity("map")
	e.Transform.SetPosition(100, 50)
	s.AddGameObject(e)
	tl := AddComponent(e, NewTileLayer(s.Assets(), 3, 2, 16, 16, 0, 0, "tiles"))
	tl.LoadTiles([]int{0, 1, -1, 2, 0, 5})

	n := tl.CreateSolids()
	require.Equal(t, 3, n)
	solids := s.Layer(solidsLayer)
	require.Len(t, solids, 3)

	var got []Vec2
	for _, solid := range solids {
		assert.True(t, solid.Solid)
		assert.True(t, solid.Prefab)
		assert.Equal(t, 16.0, solid.Width)
		got = append(got, solid.Transform.Position)
	}
	assert.ElementsMatch(t, []Vec2{{116, 50}, {100, 66}, {132, 66}}, got)
}

func TestTileLayerCreateSolidsOutsideScene(t *testing.T) {
	e := NewEntity("map")
	tl := AddComponent(e, NewTileLayer(tileAssets(), 1, 1, 16, 16, 0, 0, "tiles"))
	tl.SetTile(0, 0, 1)
	assert.Zero(t, tl.CreateSolids())
}

func TestTileLayerDrawWithoutScene(t *testing.T) {
	e := NewEntity("map")
	e.Transform.SetPosition(5, 5)
	tl := AddComponent(e, NewTileLayer(tileAssets(), 2, 2, 16, 16, 2, 1, "tiles"))
	tl.LoadTiles([]int{4, -1, 0, 0})

	r := newRecordRenderer()
	e.Render(r)
	require.Equal(t, 3, r.count("quad"))
	first := r.calls[0].quad
	assert.Equal(t, Vertex{X: 5, Y: 5, U: 19, V: 19, Color: ColorWhite}, first[0])
	assert.Equal(t, Vertex{X: 21, Y: 21, U: 35, V: 35, Color: ColorWhite}, first[2])
}

func TestTileLayerDrawCullsToCamera(t *testing.T) {
	s, _, _, _ := newTestScene(t)
	e := NewEntity("map")
	s.AddGameObject(e)
	s.Assets().AddGraph("tiles", &fakeTexture{w: 64, h: 64})
	tl := AddComponent(e, NewTileLayer(s.Assets(), 4, 4, 32, 32, 0, 0, "tiles"))
	tl.PaintRectangle(0, 0, 4, 4, 0)

	s.SetPositionCamera(64, 64)
	r := newRecordRenderer()
	e.Render(r)
	assert.Equal(t, 4, r.count("quad"))
}

func TestTileLayerMissingGraphDisablesDrawing(t *testing.T) {
	e := NewEntity("map")
	tl := AddComponent(e, NewTileLayer(NewAssets(nil, quietLogger()), 2, 2, 16, 16, 0, 0, "nope"))
	assert.True(t, tl.Disabled())
	tl.SetTile(0, 0, 3)
	assert.Equal(t, 3, tl.Tile(0, 0))
	assertRect(t, "clip", tl.Clip(3), Rect{})

	r := newRecordRenderer()
	e.Render(r)
	assert.Empty(t, r.calls)
}

func TestTileLayerZeroSizeDisablesOnDraw(t *testing.T) {
	e := NewEntity("map")
	tl := AddComponent(e, NewTileLayer(tileAssets(), 0, 2, 16, 16, 0, 0, "tiles"))
	r := newRecordRenderer()
	e.Render(r)
	assert.True(t, tl.Disabled())
	assert.Empty(t, r.calls)
}

func TestTileLayerDebugOutline(t *testing.T) {
	e := NewEntity("map")
	e.Transform.SetPosition(3, 4)
	tl := AddComponent(e, NewTileLayer(tileAssets(), 2, 1, 16, 16, 0, 0, "tiles"))
	r := newRecordRenderer()
	tl.OnDebug(r)
	require.Len(t, r.calls, 1)
	assertRect(t, "outline", r.calls[0].rect, Rect{X: 3, Y: 4, Width: 32, Height: 16})
}
