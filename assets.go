package kestrel

import (
	"log/slog"
	"path/filepath"

	"github.com/pkg/errors"
)

var (
	// ErrGraphNotFound is returned when a graph key has not been loaded.
	ErrGraphNotFound = errors.New("kestrel: graph not found")
	// ErrTextureLoad is returned when no candidate path yields a texture.
	ErrTextureLoad = errors.New("kestrel: texture load failed")
)

// DefaultSearchPaths are the directories tried, in order, when a texture
// path does not load as given.
var DefaultSearchPaths = []string{
	"assets",
	"assets/images",
	"assets/textures",
	"assets/levels",
	"../assets/levels",
	"../assets/images",
	"../assets/textures",
}

// Graph is a loaded texture registered under a key.
type Graph struct {
	Key     string
	Path    string
	Texture Texture
	Width   int
	Height  int
}

// Assets caches graphs by key. A scene owns one Assets and components reach
// it through their entity's scene.
type Assets struct {
	loader      TextureLoader
	log         *slog.Logger
	searchPaths []string
	graphs      map[string]*Graph
}

// NewAssets creates an empty cache loading through loader. With no search
// paths DefaultSearchPaths is used. loader may be nil, in which case only
// AddGraph can populate the cache.
func NewAssets(loader TextureLoader, log *slog.Logger, searchPaths ...string) *Assets {
	if log == nil {
		log = Logger()
	}
	if len(searchPaths) == 0 {
		searchPaths = DefaultSearchPaths
	}
	return &Assets{
		loader:      loader,
		log:         log,
		searchPaths: searchPaths,
		graphs:      make(map[string]*Graph),
	}
}

// LoadGraph loads the texture at path under key. If key is already loaded the
// cached graph is returned. The path is tried as given and then below each
// search path.
func (a *Assets) LoadGraph(key, path string) (*Graph, error) {
	if g, ok := a.graphs[key]; ok {
		return g, nil
	}
	if a.loader == nil {
		return nil, errors.Wrapf(ErrTextureLoad, "load %q: no texture loader", path)
	}

	var lastErr error
	for _, candidate := range a.candidates(path) {
		tex, err := a.loader.Load(candidate)
		if err != nil {
			lastErr = err
			continue
		}
		g := &Graph{
			Key:     key,
			Path:    candidate,
			Texture: tex,
			Width:   tex.Width(),
			Height:  tex.Height(),
		}
		a.graphs[key] = g
		a.log.Debug("graph loaded", "key", key, "path", candidate, "width", g.Width, "height", g.Height)
		return g, nil
	}

	a.log.Error("failed to load image", "key", key, "path", path, "err", lastErr)
	return nil, errors.Wrapf(ErrTextureLoad, "load %q: %v", path, lastErr)
}

func (a *Assets) candidates(path string) []string {
	out := make([]string, 0, len(a.searchPaths)+1)
	out = append(out, path)
	if filepath.IsAbs(path) {
		return out
	}
	for _, dir := range a.searchPaths {
		out = append(out, filepath.Join(dir, path))
	}
	return out
}

// AddGraph registers an already loaded texture under key, replacing any
// previous graph with that key.
func (a *Assets) AddGraph(key string, tex Texture) *Graph {
	g := &Graph{Key: key, Texture: tex, Width: tex.Width(), Height: tex.Height()}
	a.graphs[key] = g
	return g
}

// Graph returns the graph loaded under key. A missing key is logged as a
// warning and yields nil.
func (a *Assets) Graph(key string) *Graph {
	if g, ok := a.graphs[key]; ok {
		return g
	}
	a.log.Warn("graph not found", "key", key)
	return nil
}

// LookupGraph returns the graph under key or ErrGraphNotFound.
func (a *Assets) LookupGraph(key string) (*Graph, error) {
	if g, ok := a.graphs[key]; ok {
		return g, nil
	}
	return nil, errors.Wrapf(ErrGraphNotFound, "key %q", key)
}

// HasGraph reports whether key is loaded.
func (a *Assets) HasGraph(key string) bool {
	_, ok := a.graphs[key]
	return ok
}

// Len returns the number of loaded graphs.
func (a *Assets) Len() int {
	return len(a.graphs)
}

// UnloadGraph releases the texture under key. No-op for unknown keys.
func (a *Assets) UnloadGraph(key string) {
	g, ok := a.graphs[key]
	if !ok {
		return
	}
	if a.loader != nil {
		a.loader.Unload(g.Texture)
	}
	delete(a.graphs, key)
}

// Clear releases every texture.
func (a *Assets) Clear() {
	for key, g := range a.graphs {
		a.log.Debug("unload image", "key", key, "path", g.Path)
		if a.loader != nil {
			a.loader.Unload(g.Texture)
		}
	}
	clear(a.graphs)
}
