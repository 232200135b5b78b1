package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/five82/pokedex/internal/metrics"
	"github.com/five82/pokedex/internal/pokeapi"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchDetail(ctx context.Context, sourceURL string) (*pokeapi.PokemonDetail, error) {
	args := m.Called(ctx, sourceURL)
	detail, _ := args.Get(0).(*pokeapi.PokemonDetail)
	return detail, args.Error(1)
}

func TestHydrator_SuccessMapsAndMerges(t *testing.T) {
	fetcher := &mockFetcher{}
	fetcher.On("FetchDetail", mock.Anything, "U1").Return(rawDetail(45, 49, 49, 65, 65, 45), nil).Once()

	s := newLoadedStore(t, "bulbasaur")
	h := &Hydrator{Fetcher: fetcher, Metrics: metrics.New(), Logger: quietLogger()}

	req, ok := s.ToggleReveal(1)
	require.True(t, ok)
	res := h.HydrateInto(context.Background(), s, req)
	require.NoError(t, res.Err)

	e, _ := s.Entity(1)
	assert.False(t, e.IsLoadingDetail())
	assert.Equal(t, 45, e.Stat(StatHP))
	assert.Equal(t, 45, e.Stat(StatSpeed))
	fetcher.AssertExpectations(t)
}

func TestHydrator_FailureClearsLoadingAndRetries(t *testing.T) {
	fetcher := &mockFetcher{}
	fetcher.On("FetchDetail", mock.Anything, "U1").Return(nil, errors.New("boom")).Once()
	fetcher.On("FetchDetail", mock.Anything, "U1").Return(rawDetail(45, 49, 49, 65, 65, 45), nil).Once()

	s := newLoadedStore(t, "bulbasaur")
	h := &Hydrator{Fetcher: fetcher, Logger: quietLogger()}

	req, _ := s.ToggleReveal(1)
	res := h.HydrateInto(context.Background(), s, req)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, ErrDetailFetchFailed)

	e, _ := s.Entity(1)
	assert.False(t, e.IsLoadingDetail())
	assert.Nil(t, e.Detail)

	_, _ = s.ToggleReveal(1)
	req, ok := s.ToggleReveal(1)
	require.True(t, ok)
	res = h.HydrateInto(context.Background(), s, req)
	require.NoError(t, res.Err)

	e, _ = s.Entity(1)
	assert.True(t, e.HasDetail())
	fetcher.AssertNumberOfCalls(t, "FetchDetail", 2)
}

func TestHydrator_WaitsRevealLatency(t *testing.T) {
	fetcher := &mockFetcher{}
	fetcher.On("FetchDetail", mock.Anything, "U1").Return(rawDetail(1, 2, 3, 4, 5, 6), nil)

	h := &Hydrator{Fetcher: fetcher, Latency: 40 * time.Millisecond, Logger: quietLogger()}
	start := time.Now()
	res := h.Hydrate(context.Background(), HydrationRequest{ID: 1, SourceURL: "U1"})
	require.NoError(t, res.Err)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestHydrator_LatencyHonorsCancellation(t *testing.T) {
	fetcher := &mockFetcher{}
	fetcher.On("FetchDetail", mock.Anything, "U1").Return(rawDetail(1, 2, 3, 4, 5, 6), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := &Hydrator{Fetcher: fetcher, Latency: time.Minute, Logger: quietLogger()}
	res := h.Hydrate(ctx, HydrationRequest{ID: 1, SourceURL: "U1"})
	assert.ErrorIs(t, res.Err, ErrDetailFetchFailed)
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestHydrator_NoFetcher(t *testing.T) {
	h := &Hydrator{Logger: quietLogger()}
	res := h.Hydrate(context.Background(), HydrationRequest{ID: 3})
	assert.Equal(t, 3, res.ID)
	assert.ErrorIs(t, res.Err, ErrDetailFetchFailed)
}
