package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/loupe/internal/watch"
)

// Snapshot represents the latest file listing available to the UI.
type Snapshot struct {
	Project     string
	Roots       []string
	Files       watch.Snapshot
	HasFiles    bool
	Warnings    []string
	LastUpdated time.Time
	LastError   error
}

// Store coordinates the hand-off between the watch forwarder and the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Reset starts a new watch session. Files from the previous session are
// dropped so the UI never shows a listing from a root that is no longer
// watched.
func (s *Store) Reset(project string, roots, warnings []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = Snapshot{
		Project:     project,
		Roots:       cloneStrings(roots),
		Warnings:    cloneStrings(warnings),
		LastUpdated: time.Now(),
	}
}

// Update records a newly published file snapshot.
func (s *Store) Update(files watch.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Files = files.Clone()
	s.snapshot.HasFiles = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
}

// Fail records err while keeping the last listing.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Files = s.snapshot.Files.Clone()
	snap.Roots = cloneStrings(s.snapshot.Roots)
	snap.Warnings = cloneStrings(s.snapshot.Warnings)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	dup := make([]string, len(values))
	copy(dup, values)
	return dup
}
