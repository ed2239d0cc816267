// Package config loads application configuration: built-in defaults,
// overridden by an optional TOML file, overridden by environment variables.
//
// Environment Variables:
//
// Media Directory Configuration:
// - MOVIE_DIR: Movie directory (default: /movies)
// - ANIMATION_DIR: Animation directory (default: /animations)
// - TELEPLAY_DIR: Teleplay directory (default: /teleplays)
// - SHOW_DIR: Show directory (default: /shows)
// - DOCUMENTARY_DIR: Documentary directory (default: /documentaries)
//
// Pipeline Configuration:
// - SIMILARITY_THRESHOLD: near-duplicate cutoff, 0-100 (default: 96)
// - SDH_THRESHOLD: SDH score cutoff (default: 45)
// - DIALECT_RATIO: dialect majority factor (default: 1.5)
//
// System Configuration:
// - CRON_EXPR: sweep schedule (default: "0 0 * * *")
// - LOG_LEVEL: debug/info/warn/error (default: info)
// - DB_PATH: run-history database path (default: /data/subtidy.db)
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// SampleConfig returns the annotated sample configuration file.
func SampleConfig() string {
	return sampleConfig
}

type Config struct {
	Media    MediaConfig    `toml:"media"`
	Pipeline PipelineConfig `toml:"pipeline"`
	System   SystemConfig   `toml:"system"`
}

// MediaConfig holds the configuration for media directories
type MediaConfig struct {
	MovieDir       string `toml:"movie_dir"`
	AnimationDir   string `toml:"animation_dir"`
	TeleplayDir    string `toml:"teleplay_dir"`
	ShowDir        string `toml:"show_dir"`
	DocumentaryDir string `toml:"documentary_dir"`
}

func (c MediaConfig) MediaPaths() []string {
	ret := make([]string, 0)
	if c.MovieDir != "" {
		ret = append(ret, c.MovieDir)
	}
	if c.AnimationDir != "" {
		ret = append(ret, c.AnimationDir)
	}
	if c.TeleplayDir != "" {
		ret = append(ret, c.TeleplayDir)
	}
	if c.ShowDir != "" {
		ret = append(ret, c.ShowDir)
	}
	if c.DocumentaryDir != "" {
		ret = append(ret, c.DocumentaryDir)
	}
	return ret
}

// PipelineConfig holds the tunable canonicalization thresholds
type PipelineConfig struct {
	SimilarityThreshold float64  `toml:"similarity_threshold"`
	SDHThreshold        float64  `toml:"sdh_threshold"`
	DialectRatio        float64  `toml:"dialect_ratio"`
	AllowedForced       []string `toml:"allowed_forced"`
}

// SystemConfig holds the system configuration
type SystemConfig struct {
	CronExpr string `toml:"cron_expr"`
	LogLevel string `toml:"log_level"`
	DBPath   string `toml:"db_path"`
}

// Option is a function type for configuring Config
type Option func(*Config)

func defaults() Config {
	return Config{
		Media: MediaConfig{
			MovieDir:       "/movies",
			AnimationDir:   "/animations",
			TeleplayDir:    "/teleplays",
			ShowDir:        "/shows",
			DocumentaryDir: "/documentaries",
		},
		Pipeline: PipelineConfig{
			SimilarityThreshold: 96,
			SDHThreshold:        45,
			DialectRatio:        1.5,
			AllowedForced:       []string{"en", "en-US", "en-GB", "en-CA", "en-AU"},
		},
		System: SystemConfig{
			CronExpr: "0 0 * * *",
			LogLevel: "info",
			DBPath:   "/data/subtidy.db",
		},
	}
}

// Load builds the configuration: defaults, then the TOML file at path (if
// path is "" or the file is absent it is skipped), then environment
// variables. A .env file in the working directory is honored.
func Load(path string, opts ...Option) (*Config, error) {
	_ = godotenv.Load()

	config := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// fall through to defaults + env
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := toml.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	config.Media.MovieDir = getEnvString("MOVIE_DIR", config.Media.MovieDir)
	config.Media.AnimationDir = getEnvString("ANIMATION_DIR", config.Media.AnimationDir)
	config.Media.TeleplayDir = getEnvString("TELEPLAY_DIR", config.Media.TeleplayDir)
	config.Media.ShowDir = getEnvString("SHOW_DIR", config.Media.ShowDir)
	config.Media.DocumentaryDir = getEnvString("DOCUMENTARY_DIR", config.Media.DocumentaryDir)

	config.Pipeline.SimilarityThreshold = getEnvFloat("SIMILARITY_THRESHOLD", config.Pipeline.SimilarityThreshold)
	config.Pipeline.SDHThreshold = getEnvFloat("SDH_THRESHOLD", config.Pipeline.SDHThreshold)
	config.Pipeline.DialectRatio = getEnvFloat("DIALECT_RATIO", config.Pipeline.DialectRatio)

	config.System.CronExpr = getEnvString("CRON_EXPR", config.System.CronExpr)
	config.System.LogLevel = getEnvString("LOG_LEVEL", config.System.LogLevel)
	config.System.DBPath = getEnvString("DB_PATH", config.System.DBPath)

	// Apply custom options
	for _, opt := range opts {
		opt(&config)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// validate checks if all required configuration is properly set
func (c *Config) validate() error {
	if c.Pipeline.SimilarityThreshold <= 0 || c.Pipeline.SimilarityThreshold > 100 {
		return fmt.Errorf("similarity_threshold must be in (0, 100]")
	}
	if c.Pipeline.DialectRatio <= 0 {
		return fmt.Errorf("dialect_ratio must be positive")
	}
	if c.Pipeline.SDHThreshold <= 0 {
		return fmt.Errorf("sdh_threshold must be positive")
	}
	return nil
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat gets a float value from environment variables with default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
