package trackswipe

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// MemoryStore is a Store backed by a slice of raw records. It is safe for
// concurrent use. ResetReviews restores the records the store was created with.
type MemoryStore struct {
	mu      sync.Mutex
	initial []RawTrack
	records []RawTrack
}

// NewMemoryStore creates a store holding copies of records.
func NewMemoryStore(records ...RawTrack) *MemoryStore {
	s := &MemoryStore{initial: cloneRecords(records)}
	s.records = cloneRecords(s.initial)
	return s
}

// DemoTracks returns the built-in demo playlist.
func DemoTracks() []RawTrack {
	const bell = "https://www.soundjay.com/misc/sounds/bell-ringing-05.mp3"
	return []RawTrack{
		{"id": "1", "title": "Ethereal Dreams", "stream_url": bell, "approved": nil},
		{"id": "2", "title": "Digital Horizons", "stream_url": bell, "approved": nil},
		{"id": "3", "title": "Synthetic Melodies", "stream_url": bell, "approved": nil},
	}
}

// FetchTracks returns copies of all records.
func (s *MemoryStore) FetchTracks(ctx context.Context) ([]RawTrack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecords(s.records), nil
}

// SetReviewState records a verdict. Returns ErrTrackNotFound for unknown ids.
func (s *MemoryStore) SetReviewState(ctx context.Context, id string, state ReviewState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		t, err := NormalizeTrack(r)
		if err != nil || t.ID != id {
			continue
		}
		for k := range r {
			if fk := foldKey(k); fk == legacyKey || slices.Contains(stateKeys, fk) {
				delete(r, k)
			}
		}
		r["review_state"] = state.String()
		return nil
	}
	return ErrTrackNotFound
}

// ResetReviews restores the initial records.
func (s *MemoryStore) ResetReviews(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = cloneRecords(s.initial)
	return nil
}

func cloneRecords(in []RawTrack) []RawTrack {
	out := make([]RawTrack, len(in))
	for i, r := range in {
		out[i] = maps.Clone(r)
	}
	return out
}
