package ui

import (
	"testing"

	"github.com/five82/pokedex/internal/catalog"
)

func TestGetTheme_UnknownFallsBackToNightfox(t *testing.T) {
	if got := GetTheme("Dracula").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Dracula).Name = %q, want Nightfox", got)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	names := ThemeNames()
	for i, name := range names {
		want := names[(i+1)%len(names)]
		if got := NextTheme(name); got != want {
			t.Fatalf("NextTheme(%q) = %q, want %q", name, got, want)
		}
	}
	if got := NextTheme("unknown"); got != names[0] {
		t.Fatalf("NextTheme(unknown) = %q, want %q", got, names[0])
	}
}

func TestThemeLookups(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		if got := th.CardColor(catalog.Revealing); got != th.CardColors["revealing"] {
			t.Fatalf("%s CardColor(revealing) = %q, want %q", name, got, th.CardColors["revealing"])
		}
		if got := th.TypeColor(" Grass "); got != th.TypeColors["grass"] {
			t.Fatalf("%s TypeColor(grass) = %q, want %q", name, got, th.TypeColors["grass"])
		}
		if got := th.TypeColor("shadow"); got != th.Muted {
			t.Fatalf("%s TypeColor(shadow) = %q, want %q", name, got, th.Muted)
		}
	}
}

func TestThemes_CoverEveryCardState(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, state := range []catalog.CardState{catalog.Collapsed, catalog.Revealing, catalog.Revealed} {
			if _, ok := th.CardColors[state.String()]; !ok {
				t.Fatalf("%s missing card color for %s", name, state)
			}
		}
	}
}
