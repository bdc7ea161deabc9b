package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/phanxgames/trackswipe"
)

//go:embed sample_config.toml
var sampleConfig string

// Store contains the track database location.
type Store struct {
	Path string `toml:"path" env:"TRACKSWIPE_DB"`
}

// Webhook contains the approval notification endpoint.
type Webhook struct {
	URL            string `toml:"url" env:"TRACKSWIPE_WEBHOOK_URL"`
	TimeoutSeconds int    `toml:"timeout_seconds" env:"TRACKSWIPE_WEBHOOK_TIMEOUT"`
}

// Swipe contains gesture tuning.
type Swipe struct {
	Threshold float64 `toml:"threshold" env:"TRACKSWIPE_SWIPE_THRESHOLD"`
	Policy    string  `toml:"policy" env:"TRACKSWIPE_SWIPE_POLICY"`
}

// Player contains playback defaults.
type Player struct {
	Volume float64 `toml:"volume" env:"TRACKSWIPE_VOLUME"`
}

// Window contains the review window geometry.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level string `toml:"level" env:"TRACKSWIPE_LOG_LEVEL"`
}

// Config encapsulates all configuration values for trackswipe.
type Config struct {
	Store   Store   `toml:"store"`
	Webhook Webhook `toml:"webhook"`
	Swipe   Swipe   `toml:"swipe"`
	Player  Player  `toml:"player"`
	Window  Window  `toml:"window"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/trackswipe/config.toml")
}

// SampleConfig returns the commented sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// Load locates and parses a configuration file, applies environment
// overrides, then normalizes and validates the result. It returns the
// resolved path and whether a file existed there. A missing file is not an
// error.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, "", false, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// WriteSample writes the sample configuration to path, creating parent
// directories. An existing file is only replaced when overwrite is set.
func WriteSample(path string, overwrite bool) (string, error) {
	if path == "" {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return "", err
		}
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", err
	}
	if !overwrite {
		if _, err := os.Stat(expanded); err == nil {
			return "", fmt.Errorf("config %s already exists", expanded)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat config: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return expanded, nil
}

// EnsureDirectories creates the directory holding the track database.
func (c *Config) EnsureDirectories() error {
	dir := filepath.Dir(c.Store.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}

// SetStorePath replaces the track database path, expanding it the same way
// as store.path in the config file.
func (c *Config) SetStorePath(path string) error {
	expanded, err := expandPath(strings.TrimSpace(path))
	if err != nil {
		return fmt.Errorf("store path: %w", err)
	}
	if expanded == "" {
		return fmt.Errorf("store path is empty")
	}
	c.Store.Path = expanded
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// WebhookTimeout returns the webhook request timeout.
func (c *Config) WebhookTimeout() time.Duration {
	return time.Duration(c.Webhook.TimeoutSeconds) * time.Second
}

// ZonePolicy returns the parsed swipe start policy.
func (c *Config) ZonePolicy() trackswipe.ZonePolicy {
	p, _ := trackswipe.ParseZonePolicy(c.Swipe.Policy)
	return p
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("trackswipe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
