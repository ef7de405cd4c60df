package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/Garsondee/Virtual-Billiard/internal/table"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "billiard.toml"

// Config holds the runtime presentation knobs. Table geometry and physics
// are fixed and not configurable.
type Config struct {
	// Window
	WindowWidth  int    `toml:"window_width"`
	WindowHeight int    `toml:"window_height"`
	Title        string `toml:"title"`
	TPS          int    `toml:"tps"`

	// Audio
	Sound bool `toml:"sound"`

	// Event log
	Verbose    bool `toml:"verbose"`
	EventLines int  `toml:"event_lines"`
	EventCap   int  `toml:"event_cap"`

	// Headless runs
	FrameTime float64 `toml:"frame_time"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() *Config {
	return &Config{
		WindowWidth:  1024,
		WindowHeight: 768,
		Title:        "Virtual Billiard",
		TPS:          60,
		Sound:        true,
		EventLines:   8,
		EventCap:     2000,
		FrameTime:    1.0 / 60,
	}
}

// Load layers the configuration: defaults, then the TOML file at path (if
// it exists), then a .env file, then BILLIARD_* environment variables. An
// empty path means DefaultPath.
func Load(path string) (*Config, error) {
	c := Defaults()
	if path == "" {
		path = DefaultPath
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		log.Printf("[CONFIG] loaded %s", path)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[CONFIG] .env not loaded: %v", err)
	}

	c.WindowWidth = getEnvInt("BILLIARD_WINDOW_WIDTH", c.WindowWidth)
	c.WindowHeight = getEnvInt("BILLIARD_WINDOW_HEIGHT", c.WindowHeight)
	c.Title = getEnv("BILLIARD_TITLE", c.Title)
	c.TPS = getEnvInt("BILLIARD_TPS", c.TPS)
	c.Sound = getEnvBool("BILLIARD_SOUND", c.Sound)
	c.Verbose = getEnvBool("BILLIARD_VERBOSE", c.Verbose)
	c.EventLines = getEnvInt("BILLIARD_EVENT_LINES", c.EventLines)
	c.EventCap = getEnvInt("BILLIARD_EVENT_CAP", c.EventCap)
	c.FrameTime = getEnvFloat("BILLIARD_FRAME_TIME", c.FrameTime)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects values the frontends cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.WindowWidth <= 0 || c.WindowHeight <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.WindowWidth, c.WindowHeight)
	case c.TPS <= 0:
		return fmt.Errorf("tps %d must be positive", c.TPS)
	case c.EventLines < 0:
		return fmt.Errorf("event_lines %d must not be negative", c.EventLines)
	case c.FrameTime <= 0 || c.FrameTime > table.MaxFrameTime:
		return fmt.Errorf("frame_time %g must be in (0, %g]", c.FrameTime, table.MaxFrameTime)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
