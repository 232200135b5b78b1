package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/five82/pokedex/internal/metrics"
	"github.com/five82/pokedex/internal/pokeapi"
)

// DefaultRevealLatency paces the merge of a fetched detail.
const DefaultRevealLatency = 500 * time.Millisecond

// HydrationRequest asks for one entity's detail.
type HydrationRequest struct {
	ID        int
	SourceURL string
}

// HydrationResult carries a resolved detail back to the store by id.
type HydrationResult struct {
	ID     int
	Detail *Detail
	Err    error
}

// Hydrator resolves detail payloads.
type Hydrator struct {
	Fetcher pokeapi.DetailFetcher
	// Latency is waited after a successful fetch before the result is returned.
	Latency time.Duration
	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

// Hydrate performs one fetch for req. It never retries; a failed result
// resets the entity so the next reveal fetches again.
func (h *Hydrator) Hydrate(ctx context.Context, req HydrationRequest) HydrationResult {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	if h.Fetcher == nil {
		err := fmt.Errorf("%w: no fetcher configured", ErrDetailFetchFailed)
		logger.Error("detail fetch failed", "id", req.ID, "error", err)
		h.Metrics.ObserveDetail(false, time.Since(start))
		return HydrationResult{ID: req.ID, Err: err}
	}

	raw, err := h.Fetcher.FetchDetail(ctx, req.SourceURL)
	if err != nil {
		err = fmt.Errorf("%w: id %d: %w", ErrDetailFetchFailed, req.ID, err)
		logger.Error("detail fetch failed", "id", req.ID, "url", req.SourceURL, "error", err)
		h.Metrics.ObserveDetail(false, time.Since(start))
		return HydrationResult{ID: req.ID, Err: err}
	}
	detail := MapDetail(raw)
	h.Metrics.ObserveDetail(true, time.Since(start))

	if h.Latency > 0 {
		timer := time.NewTimer(h.Latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			err := fmt.Errorf("%w: id %d: %w", ErrDetailFetchFailed, req.ID, ctx.Err())
			return HydrationResult{ID: req.ID, Err: err}
		}
	}

	logger.Debug("detail hydrated", "id", req.ID, "elapsed", time.Since(start))
	return HydrationResult{ID: req.ID, Detail: &detail}
}

// HydrateInto runs Hydrate and merges the result into store.
func (h *Hydrator) HydrateInto(ctx context.Context, store *Store, req HydrationRequest) HydrationResult {
	res := h.Hydrate(ctx, req)
	store.Apply(res)
	return res
}
