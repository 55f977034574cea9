package entities

import "sort"

// SelectionSet is the deduplicated set of icon names a compilation needs.
// It only grows during a compilation pass.
type SelectionSet struct {
	names map[string]struct{}
}

// NewSelectionSet creates an empty selection set.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{names: make(map[string]struct{})}
}

// Add inserts name and reports whether it was new.
func (s *SelectionSet) Add(name string) bool {
	if _, ok := s.names[name]; ok {
		return false
	}
	s.names[name] = struct{}{}
	return true
}

// Contains reports whether name is selected.
func (s *SelectionSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of selected icons.
func (s *SelectionSet) Len() int {
	return len(s.names)
}

// Sorted returns the selected names in lexical order.
func (s *SelectionSet) Sorted() []string {
	out := make([]string, 0, len(s.names))
	for name := range s.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
