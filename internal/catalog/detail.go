package catalog

import "github.com/five82/pokedex/internal/pokeapi"

// StatName identifies one of the six base stats.
type StatName string

const (
	StatHP             StatName = "hp"
	StatAttack         StatName = "attack"
	StatDefense        StatName = "defense"
	StatSpecialAttack  StatName = "specialAttack"
	StatSpecialDefense StatName = "specialDefense"
	StatSpeed          StatName = "speed"
)

// StatOrder is the positional order of stats in the upstream payload.
// Index i of the payload's stats array maps to StatOrder[i].
var StatOrder = [6]StatName{
	StatHP,
	StatAttack,
	StatDefense,
	StatSpecialAttack,
	StatSpecialDefense,
	StatSpeed,
}

// Stats holds the six base stats.
type Stats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"specialAttack"`
	SpecialDefense int `json:"specialDefense"`
	Speed          int `json:"speed"`
}

// Get returns a stat by name; unknown names yield 0.
func (s Stats) Get(name StatName) int {
	switch name {
	case StatHP:
		return s.HP
	case StatAttack:
		return s.Attack
	case StatDefense:
		return s.Defense
	case StatSpecialAttack:
		return s.SpecialAttack
	case StatSpecialDefense:
		return s.SpecialDefense
	case StatSpeed:
		return s.Speed
	default:
		return 0
	}
}

func (s *Stats) set(name StatName, v int) {
	switch name {
	case StatHP:
		s.HP = v
	case StatAttack:
		s.Attack = v
	case StatDefense:
		s.Defense = v
	case StatSpecialAttack:
		s.SpecialAttack = v
	case StatSpecialDefense:
		s.SpecialDefense = v
	case StatSpeed:
		s.Speed = v
	}
}

// Detail is the hydrated payload for an entity.
type Detail struct {
	Stats          Stats    `json:"stats"`
	Categories     []string `json:"categories"`
	Height         int      `json:"height"`
	Weight         int      `json:"weight"`
	Traits         []string `json:"traits"`
	BaseExperience int      `json:"baseExperience"`
}

func (d Detail) clone() Detail {
	d.Categories = append([]string(nil), d.Categories...)
	d.Traits = append([]string(nil), d.Traits...)
	return d
}

// MapDetail converts the upstream payload. The first six stats are mapped
// positionally onto StatOrder; missing entries stay 0.
func MapDetail(raw *pokeapi.PokemonDetail) Detail {
	if raw == nil {
		return Detail{}
	}
	var d Detail
	for i, name := range StatOrder {
		if i >= len(raw.Stats) {
			break
		}
		d.Stats.set(name, int(raw.Stats[i].BaseStat))
	}

	categories := make([]string, 0, len(raw.Types))
	for _, t := range raw.Types {
		categories = append(categories, t.Type.Name)
	}
	d.Categories = uniqueNames(categories)

	traits := make([]string, 0, len(raw.Abilities))
	for _, a := range raw.Abilities {
		traits = append(traits, a.Ability.Name)
	}
	d.Traits = uniqueNames(traits)

	d.Height = int(raw.Height)
	d.Weight = int(raw.Weight)
	d.BaseExperience = int(raw.BaseExperience)
	return d
}

// uniqueNames drops blanks and duplicates, keeping first-seen order.
func uniqueNames(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
