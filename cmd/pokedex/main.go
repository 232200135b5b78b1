// Package main is the entry point for the pokedex terminal viewer.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/pokedex/internal/app"
	"github.com/five82/pokedex/internal/config"
)

var (
	configPath    string
	prefsPath     string
	apiBase       string
	listingLimit  int
	revealLatency time.Duration
	debug         bool
)

var rootCmd = &cobra.Command{
	Use:           "pokedex",
	Short:         "Browse the PokeAPI catalog as flippable cards",
	Long:          `pokedex loads the PokeAPI listing and shows each entry as a card you can flip to reveal its stats.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pokedex: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file path (default ~/.config/pokedex/config.toml)")
	flags.StringVar(&prefsPath, "prefs", "", "preferences file path (default ~/.config/pokedex/prefs.toml)")
	flags.StringVar(&apiBase, "api-base", "", "PokeAPI base URL")
	flags.IntVar(&listingLimit, "limit", 0, "number of entries to load")
	flags.DurationVar(&revealLatency, "latency", 0, "delay before a fetched detail is shown")
	flags.BoolVar(&debug, "debug", false, "log at debug level")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(logsCmd)
}

// loadConfig reads .env files, the config file, then applies flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	config.LoadEnv()
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("api-base") {
		cfg.APIBase = apiBase
	}
	if flags.Changed("limit") && listingLimit > 0 {
		cfg.ListingLimit = listingLimit
	}
	if flags.Changed("latency") {
		cfg.RevealLatency = revealLatency
	}
	return cfg, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// stderrLogger is used by the non-interactive subcommands.
func stderrLogger() *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return app.NewLogger(os.Stderr, level)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	return app.Run(ctx, app.Options{
		Config:    cfg,
		PrefsPath: prefsPath,
		Debug:     debug,
	})
}
