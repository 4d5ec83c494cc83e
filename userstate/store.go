// Package userstate tracks each chatter's position in the three-step
// onboarding flow: 0 = not yet greeted, 1 = greeted and owed a question,
// 2 = fully onboarded. Stages only move forward and cap at 2.
package userstate

import (
	"strings"
	"sync"
	"time"
)

// Stage is a user's onboarding position.
type Stage int

const (
	StageNew      Stage = 0
	StageGreeted  Stage = 1
	StageOnboarded Stage = 2
)

type record struct {
	stage       Stage
	firstSeenAt time.Time
	lastSeenAt  time.Time
}

// Store keeps per-user onboarding records keyed by lowercased username.
// Safe for concurrent use; the eviction sweep runs off the dispatch
// goroutine.
type Store struct {
	mu      sync.Mutex
	records map[string]*record
	now     func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]*record),
		now:     time.Now,
	}
}

// SetClock overrides the store's time source. Intended for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func normalize(username string) string {
	return strings.ToLower(username)
}

// RegisterFirstMessage creates a stage-0 record on a user's first message
// and refreshes lastSeenAt on every later one. It never touches the stage.
func (s *Store) RegisterFirstMessage(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalize(username)
	if r, ok := s.records[key]; ok {
		r.lastSeenAt = s.now()
		return
	}
	now := s.now()
	s.records[key] = &record{stage: StageNew, firstSeenAt: now, lastSeenAt: now}
}

// Stage returns the user's current stage, StageNew for unknown users.
func (s *Store) Stage(username string) Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[normalize(username)]; ok {
		return r.stage
	}
	return StageNew
}

// AdvanceStage moves the user forward one step. No-op at the cap, so it is
// safe to call unconditionally after handling a message. Creates the record
// if registration was somehow skipped.
func (s *Store) AdvanceStage(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalize(username)
	r, ok := s.records[key]
	if !ok {
		now := s.now()
		r = &record{stage: StageNew, firstSeenAt: now, lastSeenAt: now}
		s.records[key] = r
	}
	if r.stage < StageOnboarded {
		r.stage++
	}
	r.lastSeenAt = s.now()
}

// EvictStale drops records whose last activity is older than maxAge and
// returns how many were removed. Bounds memory on long-running sessions;
// dispatch correctness does not depend on it.
func (s *Store) EvictStale(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-maxAge)
	removed := 0
	for key, r := range s.records {
		if r.lastSeenAt.Before(cutoff) {
			delete(s.records, key)
			removed++
		}
	}
	return removed
}

// Reset forgets a single user.
func (s *Store) Reset(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, normalize(username))
}

// ResetAll forgets every user.
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]*record)
}

// TotalUsers reports how many users are currently tracked.
func (s *Store) TotalUsers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
