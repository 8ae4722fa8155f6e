package store

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/growthmate/growthmate/pkg/types"
)

// Measurement is one recorded height or weight reading.
type Measurement struct {
	Type  types.MeasurementType
	Value float64
	At    time.Time
}

// Profile is everything the server keeps about one child.
type Profile struct {
	Child        types.Child
	Completed    []types.CompletedDose
	Measurements []Measurement
}

// Entry is a profile together with the time it was last written.
type Entry struct {
	Profile   Profile
	UpdatedAt time.Time
}

// Store is a thread-safe in-memory profile store, keyed by child ID.
// A background goroutine (Run) periodically evicts entries that have not
// been updated within the configured TTL.
type Store struct {
	mu    sync.RWMutex
	data  map[string]*Entry
	ttl   time.Duration
	now   func() time.Time // injectable for deterministic tests
	reset chan struct{}    // wakes Run after SetTTL
}

// New creates a Store with the given TTL.
func New(ttl time.Duration) *Store {
	return &Store{
		data:  make(map[string]*Entry),
		ttl:   ttl,
		now:   time.Now,
		reset: make(chan struct{}, 1),
	}
}

// SetTTL changes the retention window and reschedules a running eviction
// loop to match. Used on config reload.
func (s *Store) SetTTL(ttl time.Duration) {
	s.mu.Lock()
	s.ttl = ttl
	s.mu.Unlock()

	select {
	case s.reset <- struct{}{}:
	default:
	}
}

// Put stores or replaces the profile for p.Child.ID and returns the stored entry.
// The slices in p are copied.
func (s *Store) Put(p Profile) Entry {
	p.Completed = append([]types.CompletedDose(nil), p.Completed...)
	p.Measurements = append([]Measurement(nil), p.Measurements...)

	s.mu.Lock()
	defer s.mu.Unlock()
	e := &Entry{Profile: p, UpdatedAt: s.now()}
	s.data[p.Child.ID] = e
	return *e
}

// Get returns the live entry for id. Entries past their TTL are reported as
// missing even before eviction removes them.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[id]
	if !ok || !s.live(e) {
		return Entry{}, false
	}
	return *e, true
}

// Delete removes the profile for id and reports whether a live one existed.
// A stale entry is removed too but reported as missing, matching Get.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[id]
	delete(s.data, id)
	return ok && s.live(e)
}

// live reports whether e is still within the TTL. Callers hold s.mu.
func (s *Store) live(e *Entry) bool {
	return e.UpdatedAt.After(s.now().Add(-s.ttl))
}

// List returns all entries whose UpdatedAt is within the TTL, ordered by
// child ID. Stale entries that have not yet been evicted are excluded.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cutoff := s.now().Add(-s.ttl)
	out := make([]Entry, 0, len(s.data))
	for _, e := range s.data {
		if e.UpdatedAt.After(cutoff) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Profile.Child.ID < out[j].Profile.Child.ID
	})
	return out
}

// Count returns the total number of entries currently held, including stale ones.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Evict removes entries whose UpdatedAt is older than now minus TTL.
// It returns the number of entries removed.
func (s *Store) Evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-s.ttl)
	removed := 0
	for id, e := range s.data {
		if !e.UpdatedAt.After(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// Run starts the background eviction loop, waking at half the current TTL
// (minimum 1 second). SetTTL reschedules the next wake-up. Run blocks until
// ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	t := time.NewTimer(s.evictInterval())
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.reset:
			t.Reset(s.evictInterval())
		case now := <-t.C:
			if n := s.Evict(now); n > 0 {
				slog.Debug("store: evicted stale profiles", "count", n)
			}
			t.Reset(s.evictInterval())
		}
	}
}

func (s *Store) evictInterval() time.Duration {
	s.mu.RLock()
	interval := s.ttl / 2
	s.mu.RUnlock()
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}
