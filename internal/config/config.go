package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/pokedex/internal/catalog"
	"github.com/five82/pokedex/internal/pokeapi"
)

// Config holds everything the pokedex reads at startup.
type Config struct {
	APIBase        string
	ListingLimit   int
	ImageTemplate  string
	RequestTimeout time.Duration
	DetailRPS      float64
	StartupDelay   time.Duration
	RevealLatency  time.Duration
	LogFile        string
	Sound          SoundConfig
}

// SoundConfig selects how audio cues are played.
type SoundConfig struct {
	Enabled bool
	Player  string
	Dir     string
}

const (
	defaultConfigPath     = "~/.config/pokedex/config.toml"
	defaultLogFile        = "~/.local/state/pokedex/pokedex.log"
	defaultRequestTimeout = 15 * time.Second
	defaultDetailRPS      = 10
	defaultStartupDelay   = time.Second
)

// Environment overrides, applied after the file.
const (
	EnvAPIBase       = "POKEDEX_API_BASE"
	EnvLogFile       = "POKEDEX_LOG_FILE"
	EnvRevealLatency = "POKEDEX_REVEAL_LATENCY"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBase:        pokeapi.DefaultBaseURL,
		ListingLimit:   pokeapi.DefaultListingLimit,
		ImageTemplate:  catalog.DefaultImageTemplate,
		RequestTimeout: defaultRequestTimeout,
		DetailRPS:      defaultDetailRPS,
		StartupDelay:   defaultStartupDelay,
		RevealLatency:  catalog.DefaultRevealLatency,
		LogFile:        mustExpand(defaultLogFile),
		Sound:          SoundConfig{Enabled: true},
	}
}

type rawConfig struct {
	APIBase        string  `toml:"api_base"`
	ListingLimit   int     `toml:"listing_limit"`
	ImageTemplate  string  `toml:"image_template"`
	RequestTimeout string  `toml:"request_timeout"`
	DetailRPS      float64 `toml:"detail_rps"`
	StartupDelay   *string `toml:"startup_delay"`
	RevealLatency  *string `toml:"reveal_latency"`
	LogFile        string  `toml:"log_file"`
	Sound          struct {
		Enabled *bool  `toml:"enabled"`
		Player  string `toml:"player"`
		Dir     string `toml:"dir"`
	} `toml:"sound"`
}

// LoadEnv reads .env and .env.local from the working directory when present.
func LoadEnv() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load locates and parses the config, falling back to defaults when missing.
// Environment overrides are applied last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg)
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := merge(&cfg, raw); err != nil {
		return Config{}, err
	}
	return applyEnv(cfg)
}

func merge(cfg *Config, raw rawConfig) error {
	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if raw.ListingLimit > 0 {
		cfg.ListingLimit = raw.ListingLimit
	}
	if v := strings.TrimSpace(raw.ImageTemplate); v != "" {
		cfg.ImageTemplate = v
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := parseDuration("request_timeout", v)
		if err != nil {
			return err
		}
		if d > 0 {
			cfg.RequestTimeout = d
		}
	}
	if raw.DetailRPS > 0 {
		cfg.DetailRPS = raw.DetailRPS
	}
	if raw.StartupDelay != nil {
		d, err := parseDuration("startup_delay", *raw.StartupDelay)
		if err != nil {
			return err
		}
		cfg.StartupDelay = d
	}
	if raw.RevealLatency != nil {
		d, err := parseDuration("reveal_latency", *raw.RevealLatency)
		if err != nil {
			return err
		}
		cfg.RevealLatency = d
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if raw.Sound.Enabled != nil {
		cfg.Sound.Enabled = *raw.Sound.Enabled
	}
	cfg.Sound.Player = strings.TrimSpace(raw.Sound.Player)
	if v := strings.TrimSpace(raw.Sound.Dir); v != "" {
		cfg.Sound.Dir = mustExpand(v)
	}
	return nil
}

func applyEnv(cfg Config) (Config, error) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIBase)); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvRevealLatency)); v != "" {
		d, err := parseDuration(EnvRevealLatency, v)
		if err != nil {
			return Config{}, err
		}
		cfg.RevealLatency = d
	}
	return cfg, nil
}

func parseDuration(field, value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse %s: negative duration %s", field, value)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
