package kestrel

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGraphDirectPath(t *testing.T) {
	loader := newFakeLoader()
	tex := loader.add("hero.png", 32, 48)
	a := NewAssets(loader, quietLogger())

	g, err := a.LoadGraph("hero", "hero.png")
	require.NoError(t, err)
	assert.Equal(t, "hero", g.Key)
	assert.Equal(t, "hero.png", g.Path)
	assert.Equal(t, 32, g.Width)
	assert.Equal(t, 48, g.Height)
	assert.Same(t, tex, g.Texture)
	assert.True(t, a.HasGraph("hero"))
	assert.Equal(t, 1, a.Len())
}

func TestLoadGraphSearchPaths(t *testing.T) {
	loader := newFakeLoader()
	want := filepath.Join("data", "tiles", "grass.png")
	loader.add(want, 16, 16)
	a := NewAssets(loader, quietLogger(), "data", filepath.Join("data", "tiles"))

	g, err := a.LoadGraph("grass", "grass.png")
	require.NoError(t, err)
	assert.Equal(t, want, g.Path)
	assert.Equal(t, []string{"grass.png", filepath.Join("data", "grass.png"), want}, loader.tried)
}

func TestLoadGraphCachesByKey(t *testing.T) {
	loader := newFakeLoader()
	loader.add("a.png", 1, 1)
	a := NewAssets(loader, quietLogger())

	first, err := a.LoadGraph("k", "a.png")
	require.NoError(t, err)
	second, err := a.LoadGraph("k", "does-not-matter.png")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Len(t, loader.tried, 1)
}

func TestLoadGraphFailure(t *testing.T) {
	a := NewAssets(newFakeLoader(), quietLogger(), "x")
	_, err := a.LoadGraph("missing", "missing.png")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTextureLoad))
	assert.False(t, a.HasGraph("missing"))

	noLoader := NewAssets(nil, quietLogger())
	_, err = noLoader.LoadGraph("k", "k.png")
	assert.True(t, errors.Is(err, ErrTextureLoad))
}

func TestLoadGraphAbsolutePathSkipsSearch(t *testing.T) {
	loader := newFakeLoader()
	a := NewAssets(loader, quietLogger(), "data")
	abs := filepath.Join(t.TempDir(), "x.png")
	_, err := a.LoadGraph("x", abs)
	require.Error(t, err)
	assert.Equal(t, []string{abs}, loader.tried)
}

func TestGraphLookup(t *testing.T) {
	a := NewAssets(nil, quietLogger())
	tex := &fakeTexture{w: 8, h: 4}
	g := a.AddGraph("dot", tex)
	assert.Equal(t, 8, g.Width)

	assert.Same(t, g, a.Graph("dot"))
	assert.Nil(t, a.Graph("nope"))

	got, err := a.LookupGraph("dot")
	require.NoError(t, err)
	assert.Same(t, g, got)

	_, err = a.LookupGraph("nope")
	assert.True(t, errors.Is(err, ErrGraphNotFound))
}

func TestUnloadAndClear(t *testing.T) {
	loader := newFakeLoader()
	a := NewAssets(loader, quietLogger())
	t1 := &fakeTexture{w: 1, h: 1}
	t2 := &fakeTexture{w: 2, h: 2}
	a.AddGraph("one", t1)
	a.AddGraph("two", t2)

	a.UnloadGraph("one")
	a.UnloadGraph("unknown")
	assert.False(t, a.HasGraph("one"))
	assert.Equal(t, []Texture{t1}, loader.unloaded)

	a.Clear()
	assert.Equal(t, 0, a.Len())
	assert.Len(t, loader.unloaded, 2)
}

func TestNewAssetsDefaultSearchPaths(t *testing.T) {
	a := NewAssets(nil, nil)
	assert.Equal(t, DefaultSearchPaths, a.searchPaths)
	assert.NotNil(t, a.log)
}

func TestSceneBuildsAssetsFromLoader(t *testing.T) {
	loader := newFakeLoader()
	loader.add("hero.png", 4, 4)
	s, _, _, _ := newTestScene(t, WithTextureLoader(loader))
	_, err := s.Assets().LoadGraph("hero", "hero.png")
	require.NoError(t, err)
}
