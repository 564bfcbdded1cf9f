// Package lineage keeps the session-scoped log of produced artifacts.
// It is an unbounded append log: nothing is evicted until an explicit
// reset or process exit.
package lineage

import (
	"sync"

	"github.com/digitalskillszone555/AI-video-generator-sub000/internal/domain"
)

// Store holds artifacts in insertion order and tracks at most one active
// artifact. HTTP callers may race; the mutex serializes writers and the
// active pointer resolves concurrent updates last-write-wins.
type Store struct {
	mu       sync.Mutex
	items    []*domain.Artifact
	activeID string
}

func NewStore() *Store {
	return &Store{}
}

// Append records an artifact. The artifact must satisfy the kind/handle
// invariant; a malformed one is rejected rather than stored.
func (s *Store) Append(a *domain.Artifact) error {
	if err := a.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, a)
	return nil
}

// List returns the artifacts most recent first.
func (s *Store) List() []*domain.Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Artifact, len(s.items))
	for i, a := range s.items {
		out[len(s.items)-1-i] = a
	}
	return out
}

// Get looks an artifact up by id.
func (s *Store) Get(id string) (*domain.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a := s.find(id); a != nil {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

// SetActive marks the artifact with the given id active. An unknown id is
// an error, never a silent no-op.
func (s *Store) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.find(id) == nil {
		return domain.ErrNotFound
	}
	s.activeID = id
	return nil
}

// Active returns the currently active artifact, or nil when none is set.
func (s *Store) Active() *domain.Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(s.activeID)
}

// Len reports the number of stored artifacts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Reset drops every artifact and clears the active pointer.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.activeID = ""
}

func (s *Store) find(id string) *domain.Artifact {
	if id == "" {
		return nil
	}
	for _, a := range s.items {
		if a.ID == id {
			return a
		}
	}
	return nil
}
