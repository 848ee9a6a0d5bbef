// Package selection tracks the result shown in the detail pane.
package selection

import "github.com/pders01/seek/internal/search"

// Store holds at most one active result. The zero value has no selection.
type Store struct {
	active search.Result
	set    bool
}

// Select makes r the active result.
func (s *Store) Select(r search.Result) {
	s.active = r
	s.set = true
}

// Clear drops the active result.
func (s *Store) Clear() {
	s.active = search.Result{}
	s.set = false
}

// Active returns the active result, if any.
func (s *Store) Active() (search.Result, bool) {
	return s.active, s.set
}

// IsActive reports whether r should be highlighted. Results are compared
// by name.
func (s *Store) IsActive(r search.Result) bool {
	return s.set && s.active.SameAs(r)
}

// Resolve returns the first result in list whose name is name.
func Resolve(list []search.Result, name string) (search.Result, bool) {
	for _, r := range list {
		if r.Name == name {
			return r, true
		}
	}
	return search.Result{}, false
}
