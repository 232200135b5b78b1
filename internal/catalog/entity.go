package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultImageTemplate points at the official artwork sprites. "{id}" is
// replaced with the entity id.
const DefaultImageTemplate = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/{id}.png"

// HydrationState tracks where an entity is in the detail lifecycle.
type HydrationState int

const (
	HydrationAbsent HydrationState = iota
	HydrationPending
	HydrationLoaded
)

func (h HydrationState) String() string {
	switch h {
	case HydrationPending:
		return "pending"
	case HydrationLoaded:
		return "loaded"
	default:
		return "absent"
	}
}

// CardState is the face a card shows, derived from reveal and hydration.
type CardState int

const (
	Collapsed CardState = iota
	Revealing
	Revealed
)

func (c CardState) String() string {
	switch c {
	case Revealing:
		return "revealing"
	case Revealed:
		return "revealed"
	default:
		return "collapsed"
	}
}

// Entity is one catalog item.
type Entity struct {
	ID        int
	Name      string
	ImageURL  string
	SourceURL string
	Revealed  bool
	Hydration HydrationState
	Detail    *Detail
}

// IsRevealed reports whether the card shows its detail face.
func (e Entity) IsRevealed() bool { return e.Revealed }

// IsLoadingDetail reports whether a detail fetch is in flight.
func (e Entity) IsLoadingDetail() bool { return e.Hydration == HydrationPending }

// HasDetail reports whether the detail payload has been merged.
func (e Entity) HasDetail() bool { return e.Hydration == HydrationLoaded && e.Detail != nil }

// Card returns the derived card state.
func (e Entity) Card() CardState {
	switch {
	case !e.Revealed:
		return Collapsed
	case e.Hydration == HydrationPending:
		return Revealing
	default:
		return Revealed
	}
}

// DisplayID formats the id zero-padded to three digits.
func (e Entity) DisplayID() string {
	return FormatID(e.ID)
}

// FormatID pads an id to at least three digits.
func FormatID(id int) string {
	return fmt.Sprintf("%03d", id)
}

// Stat returns the named stat, or 0 when the detail is absent or the name is unknown.
func (e Entity) Stat(name StatName) int {
	if e.Detail == nil {
		return 0
	}
	return e.Detail.Stats.Get(name)
}

func (e Entity) clone() Entity {
	if e.Detail != nil {
		d := e.Detail.clone()
		e.Detail = &d
	}
	return e
}

// ImageURLFor expands template for the given id.
func ImageURLFor(template string, id int) string {
	if strings.TrimSpace(template) == "" {
		template = DefaultImageTemplate
	}
	return strings.ReplaceAll(template, "{id}", strconv.Itoa(id))
}
