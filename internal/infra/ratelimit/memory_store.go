package ratelimit

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// sweepInterval is how often hit walks every key to drop expired windows.
const sweepInterval = time.Minute

type windowHit struct {
	at     time.Time
	member string
}

type windowLog struct {
	window time.Duration
	hits   []windowHit
}

// memoryStore is a single-process sliding window log.
type memoryStore struct {
	mu        sync.Mutex
	logs      map[string]*windowLog
	now       func() time.Time
	lastSweep time.Time
}

func newMemoryStore(now func() time.Time) *memoryStore {
	return &memoryStore{
		logs:      make(map[string]*windowLog),
		now:       now,
		lastSweep: now(),
	}
}

func (s *memoryStore) hit(_ context.Context, key string, limit int, window time.Duration) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= sweepInterval {
		s.sweep(now)
	}

	var live []windowHit
	if log, ok := s.logs[key]; ok {
		live = prune(log.hits, now.Add(-window))
	}

	if len(live) >= limit {
		s.store(key, window, live)

		return "", false, nil
	}

	member := uuid.NewString()
	s.store(key, window, append(live, windowHit{at: now, member: member}))

	return member, true, nil
}

func (s *memoryStore) undo(_ context.Context, key, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.logs[key]
	if !ok {
		return nil
	}

	s.store(key, log.window, slices.DeleteFunc(log.hits, func(h windowHit) bool {
		return h.member == member
	}))

	return nil
}

// sweep drops keys whose every hit has left its window. Without it, callers
// that never come back would stay in the map for the life of the process.
func (s *memoryStore) sweep(now time.Time) {
	for key, log := range s.logs {
		s.store(key, log.window, prune(log.hits, now.Add(-log.window)))
	}
	s.lastSweep = now
}

// store drops empty keys so idle identifiers do not accumulate.
func (s *memoryStore) store(key string, window time.Duration, hits []windowHit) {
	if len(hits) == 0 {
		delete(s.logs, key)

		return
	}
	s.logs[key] = &windowLog{window: window, hits: hits}
}

func prune(hits []windowHit, cutoff time.Time) []windowHit {
	return slices.DeleteFunc(hits, func(h windowHit) bool {
		return !h.at.After(cutoff)
	})
}

// size reports the number of tracked keys.
func (s *memoryStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.logs)
}
