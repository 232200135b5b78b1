package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/pokedex/internal/catalog"
	"github.com/five82/pokedex/internal/config"
	"github.com/five82/pokedex/internal/metrics"
	"github.com/five82/pokedex/internal/pokeapi"
)

type stubListing struct {
	entries []pokeapi.ListingEntry
	err     error
	limit   int
	calls   int
}

func (s *stubListing) FetchListing(_ context.Context, limit int) ([]pokeapi.ListingEntry, error) {
	s.calls++
	s.limit = limit
	return s.entries, s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadListing_PopulatesStore(t *testing.T) {
	store := catalog.NewStore(catalog.DefaultImageTemplate, quietLogger())
	fetcher := &stubListing{entries: []pokeapi.ListingEntry{
		{Name: "bulbasaur", URL: "https://pokeapi.co/api/v2/pokemon/1/"},
		{Name: "ivysaur", URL: "https://pokeapi.co/api/v2/pokemon/2/"},
	}}

	if err := LoadListing(context.Background(), store, fetcher, LoaderOptions{Limit: 2, Logger: quietLogger()}); err != nil {
		t.Fatalf("LoadListing returned error: %v", err)
	}
	if fetcher.limit != 2 {
		t.Fatalf("limit = %d, want 2", fetcher.limit)
	}

	snap := store.Snapshot()
	if snap.Loading {
		t.Fatalf("Loading = true after load")
	}
	if len(snap.Entities) != 2 || snap.Entities[1].Name != "ivysaur" || snap.Entities[1].ID != 2 {
		t.Fatalf("Entities = %#v", snap.Entities)
	}
}

func TestLoadListing_DefaultLimit(t *testing.T) {
	store := catalog.NewStore("", quietLogger())
	fetcher := &stubListing{}

	_ = LoadListing(context.Background(), store, fetcher, LoaderOptions{Logger: quietLogger()})
	if fetcher.limit != pokeapi.DefaultListingLimit {
		t.Fatalf("limit = %d, want %d", fetcher.limit, pokeapi.DefaultListingLimit)
	}
}

func TestLoadListing_FailureLeavesEmptyCollection(t *testing.T) {
	store := catalog.NewStore("", quietLogger())
	rec := metrics.New()
	fetcher := &stubListing{err: errors.New("offline")}

	err := LoadListing(context.Background(), store, fetcher, LoaderOptions{Metrics: rec, Logger: quietLogger()})
	if !errors.Is(err, catalog.ErrListingFetchFailed) {
		t.Fatalf("err = %v, want ErrListingFetchFailed", err)
	}

	snap := store.Snapshot()
	if snap.Loading {
		t.Fatalf("Loading = true after failure")
	}
	if len(snap.Entities) != 0 {
		t.Fatalf("Entities = %d, want 0", len(snap.Entities))
	}
	if !errors.Is(snap.LastError, catalog.ErrListingFetchFailed) {
		t.Fatalf("LastError = %v, want ErrListingFetchFailed", snap.LastError)
	}
}

func TestStartLoader_WaitsForDelay(t *testing.T) {
	store := catalog.NewStore("", quietLogger())
	fetcher := &stubListing{entries: []pokeapi.ListingEntry{{Name: "pikachu"}}}

	start := time.Now()
	done := StartLoader(context.Background(), store, fetcher, LoaderOptions{Delay: 30 * time.Millisecond, Logger: quietLogger()})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("loader did not finish")
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Fatalf("loader finished after %v, want at least 30ms", elapsed)
	}
	if got := store.Filtered(); len(got) != 1 || got[0].Name != "pikachu" {
		t.Fatalf("Filtered = %#v", got)
	}
}

func TestStartLoader_CancelledBeforeFetch(t *testing.T) {
	store := catalog.NewStore("", quietLogger())
	fetcher := &stubListing{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	<-StartLoader(ctx, store, fetcher, LoaderOptions{Delay: time.Minute, Logger: quietLogger()})

	if fetcher.calls != 0 {
		t.Fatalf("calls = %d, want 0", fetcher.calls)
	}
}

func TestNewServices_RejectsBadBase(t *testing.T) {
	cfg := config.Default()
	cfg.APIBase = "http://"
	if _, err := NewServices(cfg, quietLogger()); err == nil {
		t.Fatalf("NewServices returned nil error for host-less base")
	}
}

func TestNewServices_LoaderOptions(t *testing.T) {
	cfg := config.Default()
	cfg.StartupDelay = 3 * time.Second
	svc, err := NewServices(cfg, quietLogger())
	if err != nil {
		t.Fatalf("NewServices returned error: %v", err)
	}
	if got := svc.LoaderOptions(true).Delay; got != 3*time.Second {
		t.Fatalf("Delay = %v, want 3s", got)
	}
	if got := svc.LoaderOptions(false).Delay; got != 0 {
		t.Fatalf("Delay = %v, want 0", got)
	}
	if svc.Hydrator.Fetcher == nil || svc.Hydrator.Latency != cfg.RevealLatency {
		t.Fatalf("Hydrator = %#v", svc.Hydrator)
	}
}

func TestNewLogger_TagsSession(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, slog.LevelInfo).Info("hello")
	if !strings.Contains(buf.String(), "session=") {
		t.Fatalf("log line %q missing session attribute", buf.String())
	}
}

func TestOpenLogFile_CreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pokedex.log")
	f, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile returned error: %v", err)
	}
	_ = f.Close()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Stat: %v", err)
	}
}
