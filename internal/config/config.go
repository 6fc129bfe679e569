package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Camera is the orbit camera of a render. Angles in degrees.
type Camera struct {
	Yaw         float64 `json:"yaw" toml:"yaw"`
	Pitch       float64 `json:"pitch" toml:"pitch"`
	Roll        float64 `json:"roll" toml:"roll"`
	FOV         float64 `json:"fov" toml:"fov"`
	Perspective bool    `json:"perspective" toml:"perspective"`
}

// Config holds scenario, output and render settings.
type Config struct {
	// Simulation
	Scene       string `json:"scene" toml:"scene"`
	Frames      int    `json:"frames" toml:"frames"`
	RenderEvery int    `json:"render_every" toml:"render_every"`
	Seed        uint64 `json:"seed" toml:"seed"`
	GridX       int    `json:"grid_x" toml:"grid_x"`
	GridY       int    `json:"grid_y" toml:"grid_y"`

	// Output
	OutputDir string `json:"output_dir" toml:"output_dir"`
	Format    string `json:"format" toml:"format"`

	// Render settings
	RenderSize  int     `json:"render_size" toml:"render_size"`
	Supersample int     `json:"supersample" toml:"supersample"`
	Workers     int     `json:"workers" toml:"workers"`
	Texture     string  `json:"texture" toml:"texture"`
	TextureTile int     `json:"texture_tile" toml:"texture_tile"` // repeat count across the cloth; 0 stretches once
	Background  string  `json:"background" toml:"background"` // "#rrggbb", empty for transparent
	Camera      *Camera `json:"camera" toml:"camera"`
}

// Load reads a .toml or .json config file. Fields not set in the file
// keep their zero values. Relative paths in the file are resolved against
// the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config: %s: unknown extension (want .toml or .json)", path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	cfg.OutputDir = relTo(dir, cfg.OutputDir)
	cfg.Texture = relTo(dir, cfg.Texture)
	return cfg, nil
}

func relTo(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Scene     string
	Frames    int
	Seed      uint64
	OutputDir string
	Format    string
	Size      int
	Workers   int
	Texture   string
}

// Resolve applies CLI flags, which take priority when non-zero, then
// fills remaining empty fields with defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Texture != "" {
		c.Texture = flags.Texture
	}

	if c.Scene == "" {
		c.Scene = "spheres"
	}
	if c.Frames <= 0 {
		c.Frames = 300
	}
	if c.RenderEvery <= 0 {
		c.RenderEvery = 1
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join("frames", c.Scene)
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Camera == nil {
		cam := DefaultCamera(c.Scene)
		c.Camera = &cam
	}
}

// DefaultCamera frames each scenario the way it is usually viewed.
func DefaultCamera(scene string) Camera {
	switch scene {
	case "spheres":
		// Looking down at the balls from the front left.
		return Camera{Yaw: 215, Pitch: 25, Perspective: true}
	case "hanging":
		return Camera{Yaw: 20, Pitch: 10}
	}
	return Camera{}
}

// Validate reports settings that cannot be rendered. Call after Resolve.
func (c *Config) Validate() error {
	switch c.Format {
	case "webp", "tga":
	default:
		return fmt.Errorf("config: format %q: want webp or tga", c.Format)
	}
	if c.GridX < 0 || c.GridY < 0 {
		return fmt.Errorf("config: grid %dx%d: must not be negative", c.GridX, c.GridY)
	}
	if c.TextureTile < 0 {
		return fmt.Errorf("config: texture_tile %d: must not be negative", c.TextureTile)
	}
	if c.Supersample > 8 {
		return fmt.Errorf("config: supersample %d: at most 8", c.Supersample)
	}
	if _, err := c.BackgroundRGBA(); err != nil {
		return err
	}
	return nil
}

// BackgroundRGBA parses Background. Empty means fully transparent.
func (c *Config) BackgroundRGBA() ([4]uint8, error) {
	s := strings.TrimPrefix(c.Background, "#")
	if s == "" {
		return [4]uint8{}, nil
	}
	if len(s) != 6 {
		return [4]uint8{}, fmt.Errorf("config: background %q: want #rrggbb", c.Background)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return [4]uint8{}, fmt.Errorf("config: background %q: %w", c.Background, err)
	}
	return [4]uint8{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
}
