// Package selection tracks which records are marked for trashing. Selection
// is a plain set of stable record keys, independent of the currently visible
// page: paging away and back leaves the marks intact, and only an explicit
// Clear (a new search, or a completed trash batch) empties it.
package selection

import (
	"sort"
	"sync"

	"github.com/recsweep/recsweep/internal/records"
)

// Selection is a concurrency-safe set of record selection keys.
type Selection struct {
	mu   sync.RWMutex
	keys map[string]struct{}
}

// New creates an empty selection.
func New() *Selection {
	return &Selection{keys: make(map[string]struct{})}
}

// Toggle flips one key's membership and reports the new state.
func (s *Selection) Toggle(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[key]; ok {
		delete(s.keys, key)
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

// Apply sets or clears membership for a batch of keys, used by the group and
// select-all checkboxes.
func (s *Selection) Apply(keys []string, checked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		if checked {
			s.keys[k] = struct{}{}
		} else {
			delete(s.keys, k)
		}
	}
}

// Has reports whether a key is selected.
func (s *Selection) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.keys[key]
	return ok
}

// Count returns the number of selected keys.
func (s *Selection) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// Keys returns the selected keys in sorted order.
func (s *Selection) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = make(map[string]struct{})
}

// Pick returns the selected records out of recs, preserving their order.
func (s *Selection) Pick(recs []records.UnifiedRecording) []records.UnifiedRecording {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []records.UnifiedRecording
	for _, r := range recs {
		if _, ok := s.keys[r.SelectionKey()]; ok {
			out = append(out, r)
		}
	}
	return out
}
