package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pokedex/internal/catalog"
	"github.com/five82/pokedex/internal/metrics"
	"github.com/five82/pokedex/internal/pokeapi"
)

type fakeDetails struct {
	err   error
	calls chan string
}

func (f *fakeDetails) FetchDetail(_ context.Context, sourceURL string) (*pokeapi.PokemonDetail, error) {
	if f.calls != nil {
		f.calls <- sourceURL
	}
	if f.err != nil {
		return nil, f.err
	}
	raw := &pokeapi.PokemonDetail{}
	for _, v := range []int{45, 49, 49, 65, 65, 45} {
		raw.Stats = append(raw.Stats, pokeapi.StatEntry{BaseStat: pokeapi.LenientInt(v)})
	}
	return raw, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, fetcher pokeapi.DetailFetcher) (*Server, *catalog.Store) {
	t.Helper()
	store := catalog.NewStore("https://img/{id}.png", quietLogger())
	store.Load([]pokeapi.ListingEntry{
		{Name: "bulbasaur", URL: "U1"},
		{Name: "ivysaur", URL: "U2"},
		{Name: "charmander", URL: "U4"},
	})
	recorder := metrics.New()
	srv := New(Options{
		Store:    store,
		Hydrator: &catalog.Hydrator{Fetcher: fetcher, Metrics: recorder, Logger: quietLogger()},
		Metrics:  recorder,
		Logger:   quietLogger(),
	})
	return srv, store
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDetails{})
	rec := do(t, srv, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestListPokemon(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDetails{})

	rec := do(t, srv, http.MethodGet, "/api/pokemon")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	require.Len(t, resp.Pokemon, 3)
	assert.Equal(t, "001", resp.Pokemon[0].Number)
	assert.Equal(t, "https://img/1.png", resp.Pokemon[0].ImageURL)
	assert.Equal(t, "collapsed", resp.Pokemon[0].Card)
}

func TestListPokemon_Query(t *testing.T) {
	srv, store := newTestServer(t, &fakeDetails{})

	rec := do(t, srv, http.MethodGet, "/api/pokemon?q=SAUR")
	var resp ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Pokemon, 2)
	assert.Equal(t, "bulbasaur", resp.Pokemon[0].Name)
	assert.Equal(t, "SAUR", resp.Query)

	rec = do(t, srv, http.MethodGet, "/api/pokemon?q=3")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Pokemon, 1)
	assert.Equal(t, "charmander", resp.Pokemon[0].Name)

	assert.Empty(t, store.SearchTerm())
}

func TestListPokemon_ReportsListingFailure(t *testing.T) {
	store := catalog.NewStore("", quietLogger())
	store.LoadFailed(errors.New("connection refused"))
	srv := New(Options{Store: store, Logger: quietLogger()})

	rec := do(t, srv, http.MethodGet, "/api/pokemon")
	var resp ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Pokemon)
	assert.False(t, resp.Loading)
	assert.Contains(t, resp.Error, "connection refused")
}

func TestGetPokemon(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDetails{})

	rec := do(t, srv, http.MethodGet, "/api/pokemon/2")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp PokemonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ivysaur", resp.Name)
	assert.Nil(t, resp.Detail)

	rec = do(t, srv, http.MethodGet, "/api/pokemon/99")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Pokemon not found"}`, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/api/pokemon/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReveal_HydratesInBackground(t *testing.T) {
	fetcher := &fakeDetails{calls: make(chan string, 1)}
	srv, store := newTestServer(t, fetcher)

	rec := do(t, srv, http.MethodPost, "/api/pokemon/1/reveal")
	require.Equal(t, http.StatusAccepted, rec.Code)
	var resp PokemonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Revealed)
	assert.Equal(t, "pending", resp.Hydration)

	select {
	case url := <-fetcher.calls:
		assert.Equal(t, "U1", url)
	case <-time.After(2 * time.Second):
		t.Fatal("detail fetch not issued")
	}
	require.Eventually(t, func() bool {
		e, _ := store.Entity(1)
		return e.HasDetail()
	}, 2*time.Second, 10*time.Millisecond)

	e, _ := store.Entity(1)
	assert.Equal(t, 45, e.Stat(catalog.StatHP))

	// Hiding again does not refetch.
	rec = do(t, srv, http.MethodPost, "/api/pokemon/1/reveal")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Revealed)
	assert.NotNil(t, resp.Detail)
	do(t, srv, http.MethodPost, "/api/pokemon/1/reveal")
	select {
	case <-fetcher.calls:
		t.Fatal("unexpected refetch")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestReveal_FailedFetchAllowsRetry(t *testing.T) {
	srv, store := newTestServer(t, &fakeDetails{err: errors.New("boom")})

	do(t, srv, http.MethodPost, "/api/pokemon/2/reveal")
	require.Eventually(t, func() bool {
		e, _ := store.Entity(2)
		return !e.IsLoadingDetail()
	}, 2*time.Second, 10*time.Millisecond)

	e, _ := store.Entity(2)
	assert.True(t, e.Revealed)
	assert.Equal(t, catalog.Revealed, e.Card())
	assert.False(t, e.HasDetail())
}

func TestReveal_UnknownID(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDetails{})
	rec := do(t, srv, http.MethodPost, "/api/pokemon/42/reveal")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDetails{})
	do(t, srv, http.MethodPost, "/api/pokemon/3/reveal")

	rec := do(t, srv, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pokedex_reveal_toggles_total 1")
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDetails{})
	req := httptest.NewRequest(http.MethodOptions, "/api/pokemon", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServeListener_ShutsDownOnCancel(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDetails{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ServeListener(ctx, ln, srv) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return strings.TrimSpace(string(body)) == "OK"
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout):
		t.Fatal("server did not stop")
	}
}
