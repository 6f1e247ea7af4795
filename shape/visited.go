package shape

import (
	"maps"
	"slices"
)

// Visited is the set of reference targets open on the current
// root-to-node path. It is never modified after creation: With returns an
// extended copy, so sibling branches cannot see each other's entries.
type Visited struct {
	m map[string]struct{}
}

// NewVisited creates a set holding keys.
func NewVisited(keys ...string) Visited {
	v := Visited{m: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		if k == "" {
			continue
		}
		v.m[k] = struct{}{}
	}
	return v
}

func (v Visited) Has(key string) bool {
	_, ok := v.m[key]
	return ok
}

// With returns a copy of v that also holds key.
func (v Visited) With(key string) Visited {
	m := make(map[string]struct{}, len(v.m)+1)
	maps.Copy(m, v.m)
	m[key] = struct{}{}
	return Visited{m: m}
}

func (v Visited) Len() int {
	return len(v.m)
}

// Keys returns the keys, sorted.
func (v Visited) Keys() []string {
	return slices.Sorted(maps.Keys(v.m))
}
