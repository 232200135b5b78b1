package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/five82/pokedex/internal/catalog"
)

// PokemonResponse is the wire shape of one entity.
type PokemonResponse struct {
	ID        int             `json:"id"`
	Number    string          `json:"number"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"imageUrl"`
	Revealed  bool            `json:"revealed"`
	Loading   bool            `json:"loading"`
	Card      string          `json:"card"`
	Hydration string          `json:"hydration"`
	Detail    *catalog.Detail `json:"detail,omitempty"`
}

// ListResponse wraps a filtered listing.
type ListResponse struct {
	Pokemon []PokemonResponse `json:"pokemon"`
	Total   int               `json:"total"`
	Query   string            `json:"query,omitempty"`
	Loading bool              `json:"loading"`
	Error   string            `json:"error,omitempty"`
}

func toResponse(e catalog.Entity) PokemonResponse {
	return PokemonResponse{
		ID:        e.ID,
		Number:    e.DisplayID(),
		Name:      e.Name,
		ImageURL:  e.ImageURL,
		Revealed:  e.Revealed,
		Loading:   e.IsLoadingDetail(),
		Card:      e.Card().String(),
		Hydration: e.Hydration.String(),
		Detail:    e.Detail,
	}
}

// handleListPokemon returns entities matching ?q=. The store's own search
// term is left alone so the API does not disturb other viewers.
func (s *Server) handleListPokemon(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	snap := s.store.Snapshot()

	matches := catalog.Filter(snap.Entities, query)
	resp := ListResponse{
		Pokemon: make([]PokemonResponse, 0, len(matches)),
		Total:   len(snap.Entities),
		Query:   query,
		Loading: snap.Loading,
	}
	if snap.LastError != nil {
		resp.Error = snap.LastError.Error()
	}
	for _, e := range matches {
		resp.Pokemon = append(resp.Pokemon, toResponse(e))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPokemon(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	e, found := s.store.Entity(id)
	if !found {
		respondError(w, http.StatusNotFound, "Pokemon not found")
		return
	}
	respondJSON(w, http.StatusOK, toResponse(e))
}

// handleReveal flips the card. A first reveal starts a background fetch;
// the response reflects the state right after the toggle.
func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	req, issue := s.store.ToggleReveal(id)
	e, found := s.store.Entity(id)
	if !found {
		respondError(w, http.StatusNotFound, "Pokemon not found")
		return
	}
	s.metrics.ObserveReveal()

	if issue {
		if s.hydrator == nil {
			s.store.Apply(catalog.HydrationResult{ID: id, Err: catalog.ErrDetailFetchFailed})
		} else {
			go s.hydrator.HydrateInto(s.hydrateCtx, s.store, req)
		}
	}
	respondJSON(w, http.StatusAccepted, toResponse(e))
}

func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid pokemon id")
		return 0, false
	}
	return id, true
}
