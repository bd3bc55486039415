package layer

import (
	"sort"
	"strings"
)

// Set is an unordered collection of layers. The rule engine matches
// failure/pass patterns with set-membership tests over these.
type Set map[Layer]struct{}

func NewSet(layers ...Layer) Set {
	s := make(Set, len(layers))
	for _, l := range layers {
		s[l] = struct{}{}
	}
	return s
}

func (s Set) Has(l Layer) bool {
	_, ok := s[l]
	return ok
}

func (s Set) Len() int { return len(s) }

// ContainsAll reports whether every layer in want is present in s.
func (s Set) ContainsAll(want ...Layer) bool {
	for _, l := range want {
		if !s.Has(l) {
			return false
		}
	}
	return true
}

// Equals reports whether s is exactly the given layers, no more, no fewer.
func (s Set) Equals(want ...Layer) bool {
	if len(s) != len(want) {
		return false
	}
	return s.ContainsAll(want...)
}

// Sorted returns the members in ascending layer order.
func (s Set) Sorted() []Layer {
	out := make([]Layer, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s Set) String() string {
	labels := make([]string, 0, len(s))
	for _, l := range s.Sorted() {
		labels = append(labels, l.Label())
	}
	return "{" + strings.Join(labels, ", ") + "}"
}
