package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/five82/pokedex/internal/api"
	"github.com/five82/pokedex/internal/app"
)

var (
	serveAddr    string
	serveOrigins []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over HTTP",
	Long:  `Load the listing in the background and expose the catalog, reveal toggles and metrics as a JSON API.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8080", "listen address")
	serveCmd.Flags().StringSliceVar(&serveOrigins, "cors-origin", nil, "allowed CORS origins (default localhost)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := app.NewLogger(os.Stderr, level)

	svc, err := app.NewServices(cfg, logger)
	if err != nil {
		return err
	}
	app.StartLoader(ctx, svc.Store, svc.Client, svc.LoaderOptions(false))

	srv := api.New(api.Options{
		Store:          svc.Store,
		Hydrator:       svc.Hydrator,
		Metrics:        svc.Metrics,
		Logger:         logger,
		Context:        ctx,
		AllowedOrigins: serveOrigins,
	})
	return api.Serve(ctx, serveAddr, srv)
}
