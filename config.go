package kestrel

import (
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
)

// CollisionMode selects how many colliding pairs Scene.Collision resolves per
// call.
type CollisionMode uint8

const (
	// CollideFirstPair stops the scan at the first colliding pair.
	CollideFirstPair CollisionMode = iota
	// CollideAllPairs resolves every colliding pair.
	CollideAllPairs
)

// String returns the config spelling of m.
func (m CollisionMode) String() string {
	if m == CollideAllPairs {
		return "all"
	}
	return "first"
}

// Config holds the scene and window settings. The zero value is not useful;
// start from DefaultConfig.
type Config struct {
	Title        string
	FPS          int
	WindowWidth  int
	WindowHeight int
	Fullscreen   bool

	// World size; also the root bounds of the spatial index.
	WorldWidth  float64
	WorldHeight float64

	Background Color

	EnableEditor     bool
	EnableCollisions bool
	ShowDebug        bool
	ShowStats        bool
	CollisionMode    CollisionMode

	// DebugChecks enables hierarchy sanity checks (disposed entities, deep
	// trees, very wide parents).
	DebugChecks bool

	LogLevel  string
	LogFormat string

	// AssetPaths are searched in order by Assets when a path is not found as given.
	AssetPaths []string
}

// DefaultConfig returns the settings a scene uses when none are given.
func DefaultConfig() Config {
	return Config{
		Title:            "kestrel",
		FPS:              60,
		WindowWidth:      800,
		WindowHeight:     600,
		WorldWidth:       800,
		WorldHeight:      600,
		Background:       ColorBlack,
		EnableEditor:     true,
		EnableCollisions: true,
		ShowDebug:        true,
		ShowStats:        true,
		CollisionMode:    CollideFirstPair,
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

// hclConfig is the on-disk shape of Config. Absent attributes keep the value
// the struct was primed with.
type hclConfig struct {
	Title            string   `hcl:"title,optional"`
	FPS              int      `hcl:"fps,optional"`
	WindowWidth      int      `hcl:"window_width,optional"`
	WindowHeight     int      `hcl:"window_height,optional"`
	Fullscreen       bool     `hcl:"fullscreen,optional"`
	WorldWidth       float64  `hcl:"world_width,optional"`
	WorldHeight      float64  `hcl:"world_height,optional"`
	Background       []int    `hcl:"background,optional"`
	EnableEditor     bool     `hcl:"enable_editor,optional"`
	EnableCollisions bool     `hcl:"enable_collisions,optional"`
	ShowDebug        bool     `hcl:"show_debug,optional"`
	ShowStats        bool     `hcl:"show_stats,optional"`
	CollisionMode    string   `hcl:"collision_mode,optional"`
	DebugChecks      bool     `hcl:"debug_checks,optional"`
	LogLevel         string   `hcl:"log_level,optional"`
	LogFormat        string   `hcl:"log_format,optional"`
	AssetPaths       []string `hcl:"asset_paths,optional"`
}

// LoadConfig reads an HCL settings file. Attributes missing from the file
// keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	return ParseConfig(src, path)
}

// ParseConfig decodes HCL settings from src. filename is only used in
// diagnostics.
func ParseConfig(src []byte, filename string) (Config, error) {
	def := DefaultConfig()
	raw := hclConfig{
		Title:            def.Title,
		FPS:              def.FPS,
		WindowWidth:      def.WindowWidth,
		WindowHeight:     def.WindowHeight,
		Fullscreen:       def.Fullscreen,
		WorldWidth:       def.WorldWidth,
		WorldHeight:      def.WorldHeight,
		EnableEditor:     def.EnableEditor,
		EnableCollisions: def.EnableCollisions,
		ShowDebug:        def.ShowDebug,
		ShowStats:        def.ShowStats,
		CollisionMode:    def.CollisionMode.String(),
		DebugChecks:      def.DebugChecks,
		LogLevel:         def.LogLevel,
		LogFormat:        def.LogFormat,
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, errors.Wrapf(diags, "parse config %s", filename)
	}
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return Config{}, errors.Wrapf(diags, "decode config %s", filename)
	}

	cfg := Config{
		Title:            raw.Title,
		FPS:              raw.FPS,
		WindowWidth:      raw.WindowWidth,
		WindowHeight:     raw.WindowHeight,
		Fullscreen:       raw.Fullscreen,
		WorldWidth:       raw.WorldWidth,
		WorldHeight:      raw.WorldHeight,
		Background:       def.Background,
		EnableEditor:     raw.EnableEditor,
		EnableCollisions: raw.EnableCollisions,
		ShowDebug:        raw.ShowDebug,
		ShowStats:        raw.ShowStats,
		DebugChecks:      raw.DebugChecks,
		LogLevel:         raw.LogLevel,
		LogFormat:        raw.LogFormat,
		AssetPaths:       raw.AssetPaths,
	}

	switch raw.CollisionMode {
	case "first":
		cfg.CollisionMode = CollideFirstPair
	case "all":
		cfg.CollisionMode = CollideAllPairs
	default:
		return Config{}, errors.Errorf("config %s: collision_mode must be \"first\" or \"all\", got %q", filename, raw.CollisionMode)
	}

	if raw.Background != nil {
		if len(raw.Background) != 3 && len(raw.Background) != 4 {
			return Config{}, errors.Errorf("config %s: background needs 3 or 4 components, got %d", filename, len(raw.Background))
		}
		c := Color{A: 1}
		ch := []*float64{&c.R, &c.G, &c.B, &c.A}
		for i, v := range raw.Background {
			*ch[i] = float64(min(max(v, 0), 255)) / 255
		}
		cfg.Background = c
	}

	if cfg.WindowWidth <= 0 || cfg.WindowHeight <= 0 {
		return Config{}, errors.Errorf("config %s: window size must be positive, got %dx%d", filename, cfg.WindowWidth, cfg.WindowHeight)
	}
	return cfg, nil
}
