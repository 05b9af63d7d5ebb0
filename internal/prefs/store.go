// Package prefs holds per-tip user feedback in process memory. The data
// is advisory: last write wins, nothing survives a restart, and IDs are
// not checked against tips that were actually generated.
package prefs

import "sync"

type Rating string

const (
	RatingUp   Rating = "up"
	RatingDown Rating = "down"
)

func (r Rating) Valid() bool {
	return r == RatingUp || r == RatingDown
}

type Store struct {
	mu      sync.RWMutex
	ratings map[string]Rating
	repeat  map[string]bool
}

func NewStore() *Store {
	return &Store{
		ratings: make(map[string]Rating),
		repeat:  make(map[string]bool),
	}
}

// SetRating records a thumbs up/down for a tip, overwriting any prior value.
func (s *Store) SetRating(tipID string, rating Rating) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings[tipID] = rating
}

// SetRepeat records whether the tip should be repeated, overwriting any
// prior value.
func (s *Store) SetRepeat(tipID string, shouldRepeat bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repeat[tipID] = shouldRepeat
}

// Snapshot returns copies of both mappings.
func (s *Store) Snapshot() (ratings map[string]Rating, repeat map[string]bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ratings = make(map[string]Rating, len(s.ratings))
	for k, v := range s.ratings {
		ratings[k] = v
	}
	repeat = make(map[string]bool, len(s.repeat))
	for k, v := range s.repeat {
		repeat[k] = v
	}
	return ratings, repeat
}
