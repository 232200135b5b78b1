package ui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scroll assist tuning. Speed is in abstract units per tick; a list row is
// scrollUnitsPerRow units.
const (
	scrollStartSpeed  = 30.0
	scrollAccel       = 1.09
	scrollMaxSpeed    = 100.0
	scrollInterval    = 30 * time.Millisecond
	scrollUnitsPerRow = 60.0
)

// scrollTickMsg drives one step of the scroll chain started with gen.
type scrollTickMsg struct {
	gen int
}

// Scroller is an accelerating, self-rescheduling scroll. Every Start or Stop
// bumps the generation, so ticks from an older chain are dropped.
type Scroller struct {
	dir   int
	speed float64
	carry float64
	gen   int
}

// Start begins scrolling in dir (+1 down, -1 up) from the base speed and
// returns the first tick.
func (s *Scroller) Start(dir int) tea.Cmd {
	s.gen++
	s.speed = scrollStartSpeed
	s.carry = 0
	switch {
	case dir > 0:
		s.dir = 1
	case dir < 0:
		s.dir = -1
	default:
		s.dir = 0
		return nil
	}
	return s.tick()
}

// Stop cancels the pending chain and resets the speed.
func (s *Scroller) Stop() {
	s.gen++
	s.dir = 0
	s.speed = scrollStartSpeed
	s.carry = 0
}

// Active reports whether a chain is running.
func (s Scroller) Active() bool {
	return s.dir != 0
}

// Direction returns +1, -1 or 0.
func (s Scroller) Direction() int {
	return s.dir
}

// Speed returns the distance the next step will cover.
func (s Scroller) Speed() float64 {
	if s.speed == 0 {
		return scrollStartSpeed
	}
	return s.speed
}

// Step returns the signed distance for one tick in units and accelerates.
func (s *Scroller) Step() float64 {
	if s.dir == 0 {
		return 0
	}
	if s.speed == 0 {
		s.speed = scrollStartSpeed
	}
	dist := s.speed * float64(s.dir)
	s.speed = math.Min(s.speed*scrollAccel, scrollMaxSpeed)
	return dist
}

// Handle consumes a tick. Stale ticks yield no rows and no command; live ones
// yield the whole rows to move and the next tick.
func (s *Scroller) Handle(msg scrollTickMsg) (int, tea.Cmd) {
	if msg.gen != s.gen || s.dir == 0 {
		return 0, nil
	}
	s.carry += s.Step()
	rows := int(s.carry / scrollUnitsPerRow)
	s.carry -= float64(rows) * scrollUnitsPerRow
	return rows, s.tick()
}

func (s Scroller) tick() tea.Cmd {
	gen := s.gen
	return tea.Tick(scrollInterval, func(time.Time) tea.Msg {
		return scrollTickMsg{gen: gen}
	})
}
