package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/five82/pokedex/internal/catalog"
	"github.com/five82/pokedex/internal/metrics"
	"github.com/five82/pokedex/internal/pokeapi"
)

// LoaderOptions tune the listing load.
type LoaderOptions struct {
	// Delay is waited before the fetch starts.
	Delay   time.Duration
	Limit   int
	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

// StartLoader launches a background goroutine that waits opts.Delay and then
// loads the listing into store. It returns immediately; the channel closes
// once the goroutine is done.
func StartLoader(ctx context.Context, store *catalog.Store, fetcher pokeapi.ListingFetcher, opts LoaderOptions) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if opts.Delay > 0 {
			timer := time.NewTimer(opts.Delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
		}
		_ = LoadListing(ctx, store, fetcher, opts)
	}()
	return done
}

// LoadListing fetches the listing once and populates store. A failure is
// recorded on the store and returned wrapped in catalog.ErrListingFetchFailed.
func LoadListing(ctx context.Context, store *catalog.Store, fetcher pokeapi.ListingFetcher, opts LoaderOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = pokeapi.DefaultListingLimit
	}

	start := time.Now()
	listing, err := fetcher.FetchListing(ctx, limit)
	if err != nil {
		opts.Metrics.ObserveListing(false)
		err = fmt.Errorf("%w: %w", catalog.ErrListingFetchFailed, err)
		store.LoadFailed(err)
		return err
	}
	opts.Metrics.ObserveListing(true)

	entities := store.Load(listing)
	logger.Info("listing loaded", "count", len(entities), "elapsed", time.Since(start))
	return nil
}
