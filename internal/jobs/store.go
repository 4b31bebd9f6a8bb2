// Package jobs provides the shared job-status store for playlist
// processing runs. The store is a narrow key-value abstraction so the
// in-process map can be swapped for an external backend without
// touching orchestrator logic.
package jobs

import (
	"context"
	"sync"

	"github.com/Lalith1612/Youtube-LLM/internal/types"
)

// Store tracks playlist jobs keyed by playlist ID. Updates replace the
// whole record, so readers always see a consistent snapshot.
type Store interface {
	// Get returns the job for id, or nil if none exists
	Get(ctx context.Context, id string) (*types.PlaylistJob, error)
	// Set unconditionally replaces the job for id
	Set(ctx context.Context, id string, job types.PlaylistJob) error
	// CompareAndSwap replaces the job for id only if the current status
	// equals expect. An absent job matches expect == "". Returns whether
	// the swap happened.
	CompareAndSwap(ctx context.Context, id string, expect types.JobStatus, next types.PlaylistJob) (bool, error)
}

// MemoryStore is the in-process Store used by default. Job records are
// process-lifetime state, matching the single-instance deployment model.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]types.PlaylistJob
}

// NewMemoryStore creates an empty in-memory job store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]types.PlaylistJob)}
}

// Get returns a snapshot of the job for id, or nil if none exists
func (s *MemoryStore) Get(_ context.Context, id string) (*types.PlaylistJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	return &job, nil
}

// Set unconditionally replaces the job for id
func (s *MemoryStore) Set(_ context.Context, id string, job types.PlaylistJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[id] = job
	return nil
}

// CompareAndSwap replaces the job for id only if the current status
// equals expect
func (s *MemoryStore) CompareAndSwap(_ context.Context, id string, expect types.JobStatus, next types.PlaylistJob) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.jobs[id]
	if !ok {
		if expect != "" {
			return false, nil
		}
	} else if current.Status != expect {
		return false, nil
	}
	s.jobs[id] = next
	return true, nil
}
