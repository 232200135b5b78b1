package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/pokedex/internal/pokeapi"
)

var (
	// ErrListingFetchFailed marks a failed initial listing fetch.
	ErrListingFetchFailed = errors.New("listing fetch failed")
	// ErrDetailFetchFailed marks a failed per-entity detail fetch.
	ErrDetailFetchFailed = errors.New("detail fetch failed")
)

// Snapshot is a point-in-time copy of the store.
type Snapshot struct {
	Entities    []Entity
	SearchTerm  string
	Loading     bool
	LastError   error
	LastUpdated time.Time
}

// Filtered applies the snapshot's search term to its entities.
func (s Snapshot) Filtered() []Entity {
	return Filter(s.Entities, s.SearchTerm)
}

// Counts summarises the collection for status bars.
func (s Snapshot) Counts() (revealed, hydrated int) {
	for _, e := range s.Entities {
		if e.Revealed {
			revealed++
		}
		if e.HasDetail() {
			hydrated++
		}
	}
	return revealed, hydrated
}

// Store owns the entity collection and the search term.
type Store struct {
	mu            sync.RWMutex
	entities      []Entity
	index         map[int]int
	term          string
	loading       bool
	lastErr       error
	lastUpdated   time.Time
	imageTemplate string
	logger        *slog.Logger
}

// NewStore returns an empty store in the loading state.
func NewStore(imageTemplate string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		loading:       true,
		index:         map[int]int{},
		imageTemplate: imageTemplate,
		logger:        logger,
	}
}

// Load builds the collection from the listing, replacing any previous one.
// Ids are 1-based positions in the listing.
func (s *Store) Load(listing []pokeapi.ListingEntry) []Entity {
	entities := make([]Entity, len(listing))
	index := make(map[int]int, len(listing))
	for i, item := range listing {
		id := i + 1
		entities[i] = Entity{
			ID:        id,
			Name:      item.Name,
			ImageURL:  ImageURLFor(s.imageTemplate, id),
			SourceURL: item.URL,
		}
		index[id] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities = entities
	s.index = index
	s.loading = false
	s.lastErr = nil
	s.lastUpdated = time.Now()
	return cloneEntities(entities)
}

// LoadFailed records a listing failure. The collection stays empty.
func (s *Store) LoadFailed(err error) {
	if err != nil && !errors.Is(err, ErrListingFetchFailed) {
		err = fmt.Errorf("%w: %w", ErrListingFetchFailed, err)
	}
	s.logger.Error("listing fetch failed", "error", err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities = nil
	s.index = map[int]int{}
	s.loading = false
	s.lastErr = err
	s.lastUpdated = time.Now()
}

// SetSearchTerm stores term verbatim.
func (s *Store) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term = term
}

// SearchTerm returns the current search term.
func (s *Store) SearchTerm() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.term
}

// Filtered returns the entities matching the current search term.
func (s *Store) Filtered() []Entity {
	return s.Snapshot().Filtered()
}

// Entity returns a copy of the entity with the given id.
func (s *Store) Entity(id int) (Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return Entity{}, false
	}
	return s.entities[i].clone(), true
}

// ToggleReveal flips the reveal flag of entity id. When the card becomes
// revealed with no detail and no fetch in flight, the entity is marked
// pending before returning and the request to issue is returned with ok=true.
func (s *Store) ToggleReveal(id int) (HydrationRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, found := s.index[id]
	if !found {
		return HydrationRequest{}, false
	}
	e := &s.entities[i]
	e.Revealed = !e.Revealed
	if !e.Revealed || e.Hydration != HydrationAbsent {
		return HydrationRequest{}, false
	}
	e.Hydration = HydrationPending
	return HydrationRequest{ID: e.ID, SourceURL: e.SourceURL}, true
}

// Apply merges a hydration result into its entity. The reveal flag is left
// untouched, so results for hidden cards still merge.
func (s *Store) Apply(res HydrationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, found := s.index[res.ID]
	if !found {
		return
	}
	e := &s.entities[i]
	if e.Hydration == HydrationLoaded {
		return
	}
	if res.Err != nil || res.Detail == nil {
		e.Hydration = HydrationAbsent
		return
	}
	d := res.Detail.clone()
	e.Detail = &d
	e.Hydration = HydrationLoaded
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Entities:    cloneEntities(s.entities),
		SearchTerm:  s.term,
		Loading:     s.loading,
		LastUpdated: s.lastUpdated,
	}
	if s.lastErr != nil {
		snap.LastError = fmt.Errorf("%w", s.lastErr)
	}
	return snap
}

func cloneEntities(entities []Entity) []Entity {
	if len(entities) == 0 {
		return nil
	}
	dup := make([]Entity, len(entities))
	for i, e := range entities {
		dup[i] = e.clone()
	}
	return dup
}
