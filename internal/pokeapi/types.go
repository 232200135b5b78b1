package pokeapi

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// ListingResponse mirrors GET /pokemon?limit=N.
type ListingResponse struct {
	Count    int            `json:"count"`
	Next     string         `json:"next"`
	Previous string         `json:"previous"`
	Results  []ListingEntry `json:"results"`
}

// ListingEntry is one listing item: a name and the URL of its detail.
type ListingEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// NamedResource is PokeAPI's {name, url} reference.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PokemonDetail mirrors the subset of GET /pokemon/{id} the catalog reads.
type PokemonDetail struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Height         LenientInt    `json:"height"`
	Weight         LenientInt    `json:"weight"`
	BaseExperience LenientInt    `json:"base_experience"`
	Stats          []StatEntry   `json:"stats"`
	Types          []TypeSlot    `json:"types"`
	Abilities      []AbilitySlot `json:"abilities"`
}

// StatEntry is one element of the ordered stats array.
type StatEntry struct {
	BaseStat LenientInt    `json:"base_stat"`
	Effort   LenientInt    `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// TypeSlot wraps a type reference.
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// AbilitySlot wraps an ability reference.
type AbilitySlot struct {
	Slot     int           `json:"slot"`
	IsHidden bool          `json:"is_hidden"`
	Ability  NamedResource `json:"ability"`
}

// LenientInt decodes any JSON number or numeric string and falls back to 0
// for null, missing or non-numeric values instead of failing the payload.
type LenientInt int

// UnmarshalJSON implements json.Unmarshaler.
func (n *LenientInt) UnmarshalJSON(data []byte) error {
	*n = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		data = []byte(s)
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	*n = LenientInt(f)
	return nil
}
