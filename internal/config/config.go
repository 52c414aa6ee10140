package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/katalvlaran/fracturedpane/fracture"
	"github.com/katalvlaran/fracturedpane/render"
)

type Config struct {
	Port string

	// Auth; an empty key leaves the API open.
	APIKey string

	// Fracturing defaults, overridable per request.
	Seed      int64
	OffsetMin float64
	OffsetMax float64
	Size      float64

	// Rendering
	ShowUnnamed bool

	// Request limits
	MaxBodyBytes int64
	MaxRelations int

	ShutdownTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("FRACTUREDPANE_API_KEY"),

		Seed:      envInt64("FRACTURE_SEED", 1),
		OffsetMin: envFloat("FRACTURE_OFFSET_MIN", 0.2),
		OffsetMax: envFloat("FRACTURE_OFFSET_MAX", 0.8),
		Size:      envFloat("FRACTURE_SIZE", fracture.DefaultSize),

		ShowUnnamed: envBool("SHOW_UNNAMED", true),

		MaxBodyBytes: envInt64("MAX_BODY_BYTES", 1<<20), // 1MB
		MaxRelations: envInt("MAX_RELATIONS", 5000),

		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	if cfg.MaxRelations <= 0 {
		cfg.MaxRelations = 5000
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if !(c.OffsetMin >= 0 && c.OffsetMin < c.OffsetMax && c.OffsetMax <= 1) {
		return fmt.Errorf("FRACTURE_OFFSET_MIN/MAX must satisfy 0 <= min < max <= 1 (got %v, %v)", c.OffsetMin, c.OffsetMax)
	}
	if !(c.Size > 0) {
		return fmt.Errorf("FRACTURE_SIZE must be positive (got %v)", c.Size)
	}
	return nil
}

// FractureOptions turns the defaults into traversal options.
func (c Config) FractureOptions() []fracture.Option {
	return []fracture.Option{
		fracture.WithSize(c.Size),
		fracture.WithOffsetBand(c.OffsetMin, c.OffsetMax),
		fracture.WithSeed(c.Seed),
	}
}

// RenderOptions turns the defaults into SVG options.
func (c Config) RenderOptions() []render.Option {
	return []render.Option{render.WithShowUnnamed(c.ShowUnnamed)}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
