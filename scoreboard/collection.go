package scoreboard

import (
	"errors"
	"sync"
)

// ErrMatchNotFound is returned when a match id has no entry in the
// collection. Callers treat it as a reportable state, not a failure.
var ErrMatchNotFound = errors.New("match not found")

// FilterTag names a status-equivalence bucket of matches.
type FilterTag string

const (
	FilterLive     FilterTag = "LIVE"
	FilterFinished FilterTag = "FINISHED"
	FilterUpcoming FilterTag = "UPCOMING"
	FilterAll      FilterTag = "ALL"
)

// Collection holds all known matches in insertion order and supports
// bucketing by status and point lookup by id.
type Collection struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*MatchViewModel
}

// NewCollection creates an empty match collection.
func NewCollection() *Collection {
	return &Collection{
		byID: make(map[string]*MatchViewModel),
	}
}

// Put inserts a match snapshot or replaces an existing one. Insertion order
// is preserved for matches already present.
func (c *Collection) Put(m Match) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if vm, ok := c.byID[m.MatchID]; ok {
		*vm = *NewMatchViewModel(m)
		return
	}
	c.byID[m.MatchID] = NewMatchViewModel(m)
	c.order = append(c.order, m.MatchID)
}

// Bucket returns the matches whose status falls in the given equivalence
// class, in insertion order. An unmatched tag yields an empty slice, never
// an error.
func (c *Collection) Bucket(tag FilterTag) []Match {
	c.mu.RLock()
	defer c.mu.RUnlock()

	matches := make([]Match, 0, len(c.order))
	for _, id := range c.order {
		m := c.byID[id].Match()
		if statusMatches(tag, m.Status) {
			matches = append(matches, m)
		}
	}
	return matches
}

// ByID returns the match with the given id, or ErrMatchNotFound.
func (c *Collection) ByID(matchID string) (Match, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	vm, ok := c.byID[matchID]
	if !ok {
		return Match{}, ErrMatchNotFound
	}
	return vm.Match(), nil
}

// Apply merges a delta into the identified match and returns the resulting
// snapshot, or ErrMatchNotFound if the match is unknown.
func (c *Collection) Apply(matchID string, d Delta) (Match, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	vm, ok := c.byID[matchID]
	if !ok {
		return Match{}, ErrMatchNotFound
	}
	return vm.Merge(d), nil
}

// View returns the view model for the given match id, or nil if unknown.
func (c *Collection) View(matchID string) *MatchViewModel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byID[matchID]
}

// Len returns the number of matches held.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// statusMatches implements the status-equivalence rule: LIVE matches live,
// FINISHED matches completed and its finished synonym, UPCOMING matches
// upcoming and its scheduled synonym, ALL matches everything.
func statusMatches(tag FilterTag, s Status) bool {
	switch tag {
	case FilterLive:
		return s == StatusLive
	case FilterFinished:
		return s == StatusCompleted || s == StatusFinished
	case FilterUpcoming:
		return s == StatusUpcoming || s == StatusScheduled
	case FilterAll:
		return true
	}
	return false
}
