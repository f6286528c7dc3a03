// Package tags resolves which trick tags a player has enabled by closing
// their selected tags over the catalog's tag hierarchy.
package tags

import "sort"

// Set is an unordered set of tag names.
type Set map[string]struct{}

// NewSet returns a set holding names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Contains reports whether every member of other is in s.
func (s Set) Contains(other Set) bool {
	for n := range other {
		if !s.Has(n) {
			return false
		}
	}
	return true
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Hierarchy maps a parent tag to the tags it implies. It may contain cycles.
type Hierarchy map[string]Set

// Resolve returns the closure of roots over h. Every tag is expanded at most
// once, so cycles and diamonds terminate. Tags missing from h are leaves.
func Resolve(roots Set, h Hierarchy) Set {
	resolved := make(Set, len(roots))
	pending := make([]string, 0, len(roots))
	for n := range roots {
		pending = append(pending, n)
	}

	for len(pending) > 0 {
		tag := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if resolved.Has(tag) {
			continue
		}
		resolved[tag] = struct{}{}

		for child := range h[tag] {
			if !resolved.Has(child) {
				pending = append(pending, child)
			}
		}
	}
	return resolved
}
