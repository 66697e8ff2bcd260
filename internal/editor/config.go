package editor

import (
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"

	edimg "github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// Config holds the session defaults. Every field can be set from a TOML file;
// missing keys keep their DefaultConfig values.
type Config struct {
	CanvasWidth  int    `toml:"canvas_width"`
	CanvasHeight int    `toml:"canvas_height"`
	Background   string `toml:"background"`

	BrushSize  float64 `toml:"brush_size"`
	BrushColor string  `toml:"brush_color"`

	MosaicSize  int    `toml:"mosaic_size"`
	MosaicStyle string `toml:"mosaic_style"`
	// ThrottleMillis is the minimum time between mosaic applications while
	// dragging. Zero disables throttling.
	ThrottleMillis int `toml:"throttle_ms"`

	TextSize    float64     `toml:"text_size"`
	TextColor   string      `toml:"text_color"`
	TextContent string      `toml:"text_content"`
	TextFont    string      `toml:"text_font"`
	TextAnchor  edimg.Point `toml:"text_anchor"`

	// CropFallback is the crop selection used when crop mode starts without an image.
	CropFallback edimg.Rect `toml:"crop_fallback"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		CanvasWidth:    800,
		CanvasHeight:   500,
		Background:     "#f0f0f0",
		BrushSize:      10,
		BrushColor:     "#000000",
		MosaicSize:     edimg.DefaultMosaicSize,
		MosaicStyle:    string(edimg.MosaicCircle),
		ThrottleMillis: int(edimg.DefaultMosaicThrottle / time.Millisecond),
		TextSize:       24,
		TextColor:      "#000000",
		TextContent:    "added text",
		TextFont:       "Go Regular",
		TextAnchor:     edimg.Point{X: 100, Y: 100},
		CropFallback:   edimg.Rect{Left: 100, Top: 100, Width: 200, Height: 200},
	}
}

// LoadConfig reads a TOML file over the defaults and validates the result.
//
// # Errors
//
//   - Returns error if the file cannot be read or is not valid TOML
//   - Returns error if the file contains unknown keys
//   - Returns error if a value fails validation
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// WriteConfig encodes cfg as TOML.
func WriteConfig(w io.Writer, cfg Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.CanvasWidth, c.CanvasHeight)
	}
	if c.BrushSize <= 0 {
		return fmt.Errorf("brush_size must be positive, got %v", c.BrushSize)
	}
	if c.MosaicSize <= 0 {
		return fmt.Errorf("mosaic_size must be positive, got %d", c.MosaicSize)
	}
	if _, err := edimg.ParseMosaicStyle(c.MosaicStyle); err != nil {
		return err
	}
	if c.ThrottleMillis < 0 {
		return fmt.Errorf("throttle_ms must not be negative, got %d", c.ThrottleMillis)
	}
	if c.TextSize <= 0 {
		return fmt.Errorf("text_size must be positive, got %v", c.TextSize)
	}
	if c.CropFallback.Empty() {
		return fmt.Errorf("crop_fallback must have a positive size")
	}

	for name, value := range map[string]string{
		"background":  c.Background,
		"brush_color": c.BrushColor,
		"text_color":  c.TextColor,
	} {
		if _, err := edimg.ParseColor(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// Throttle returns the mosaic throttle interval.
func (c Config) Throttle() time.Duration {
	return time.Duration(c.ThrottleMillis) * time.Millisecond
}
