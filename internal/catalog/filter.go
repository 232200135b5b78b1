package catalog

import (
	"strconv"
	"strings"
)

// Filter returns the entities whose name or decimal id contains term,
// case-insensitively. An empty term returns entities unchanged.
func Filter(entities []Entity, term string) []Entity {
	if term == "" {
		return entities
	}
	needle := strings.ToLower(term)
	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		if Matches(e, needle) {
			out = append(out, e)
		}
	}
	return out
}

// Matches reports whether e matches an already lower-cased needle.
func Matches(e Entity, needle string) bool {
	return strings.Contains(strings.ToLower(e.Name), needle) ||
		strings.Contains(strconv.Itoa(e.ID), needle)
}
