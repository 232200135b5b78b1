package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/five82/pokedex/internal/catalog"
	"github.com/five82/pokedex/internal/config"
	"github.com/five82/pokedex/internal/metrics"
	"github.com/five82/pokedex/internal/pokeapi"
	"github.com/five82/pokedex/internal/prefs"
	"github.com/five82/pokedex/internal/sound"
	"github.com/five82/pokedex/internal/ui"
)

// Options configure the pokedex TUI.
type Options struct {
	Config    config.Config
	PrefsPath string // empty uses default ~/.config/pokedex/prefs.toml
	Debug     bool
}

// Services are the wired components shared by the TUI, the CLI subcommands
// and the HTTP server.
type Services struct {
	Config   config.Config
	Logger   *slog.Logger
	Client   *pokeapi.Client
	Store    *catalog.Store
	Hydrator *catalog.Hydrator
	Metrics  *metrics.Recorder
}

// NewServices builds the client, store and hydrator for cfg.
func NewServices(cfg config.Config, logger *slog.Logger) (*Services, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := pokeapi.NewClient(cfg.APIBase, pokeapi.Options{
		Timeout:   cfg.RequestTimeout,
		DetailRPS: cfg.DetailRPS,
	})
	if err != nil {
		return nil, fmt.Errorf("init pokeapi client: %w", err)
	}
	recorder := metrics.New()
	return &Services{
		Config:  cfg,
		Logger:  logger,
		Client:  client,
		Store:   catalog.NewStore(cfg.ImageTemplate, logger),
		Metrics: recorder,
		Hydrator: &catalog.Hydrator{
			Fetcher: client,
			Latency: cfg.RevealLatency,
			Metrics: recorder,
			Logger:  logger,
		},
	}, nil
}

// LoaderOptions derives the listing load settings from the config.
func (s *Services) LoaderOptions(delay bool) LoaderOptions {
	opts := LoaderOptions{
		Limit:   s.Config.ListingLimit,
		Metrics: s.Metrics,
		Logger:  s.Logger,
	}
	if delay {
		opts.Delay = s.Config.StartupDelay
	}
	return opts
}

// Run boots the pokedex TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config

	logFile, err := OpenLogFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(logFile, level)

	svc, err := NewServices(cfg, logger)
	if err != nil {
		return err
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("load prefs", "error", err)
	}

	var player *sound.Player
	if cfg.Sound.Enabled {
		player = sound.New(sound.Options{
			Enabled: userPrefs.Sound,
			Command: cfg.Sound.Player,
			Dir:     cfg.Sound.Dir,
			Logger:  logger,
		})
		defer player.StopIntro()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger.Info("pokedex starting", "api_base", svc.Client.BaseURL(), "limit", cfg.ListingLimit)
	StartLoader(ctx, svc.Store, svc.Client, svc.LoaderOptions(true))

	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     svc.Store,
		Hydrator:  svc.Hydrator,
		Metrics:   svc.Metrics,
		Player:    player,
		Logger:    logger,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
	})
}
