package issue

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("issue not found")

	// ErrNothingInserted signals an insert that affected zero rows. The
	// drivers never report this under normal operation; handlers map it
	// to a server fault.
	ErrNothingInserted = errors.New("no rows inserted")
)

type Store interface {
	// List returns up to limit issues in insertion order starting at
	// offset, plus the total row count across the whole table.
	List(ctx context.Context, limit, offset int) ([]Issue, int, error)
	GetByID(ctx context.Context, id int64) (Issue, error)
	// Insert persists is with a fresh id and updated_at unset; the
	// caller's ID and UpdatedAt fields are ignored.
	Insert(ctx context.Context, is Issue) (int64, error)
	// UpdateStatus rewrites status and updated_at for the matching row
	// and reports how many rows that touched (zero when id is absent).
	UpdateStatus(ctx context.Context, id int64, status Status, updatedAt string) (int64, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

// MemoryStore keeps issues in insertion order in a slice. It backs tests
// and the dev configuration; ids are never reused after a delete.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	issues []Issue
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) List(ctx context.Context, limit, offset int) ([]Issue, int, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.issues)
	if offset < 0 || offset >= total || limit <= 0 {
		return []Issue{}, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	out := make([]Issue, end-offset)
	copy(out, s.issues[offset:end])
	return out, total, nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id int64) (Issue, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, is := range s.issues {
		if is.ID == id {
			return is, nil
		}
	}
	return Issue{}, ErrNotFound
}

func (s *MemoryStore) Insert(ctx context.Context, is Issue) (int64, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	is.ID = s.nextID
	is.UpdatedAt = nil
	s.nextID++

	s.issues = append(s.issues, is)
	return is.ID, nil
}

func (s *MemoryStore) UpdateStatus(ctx context.Context, id int64, status Status, updatedAt string) (int64, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.issues {
		if s.issues[i].ID == id {
			s.issues[i].Status = status
			ts := updatedAt
			s.issues[i].UpdatedAt = &ts
			return 1, nil
		}
	}
	return 0, nil
}

func (s *MemoryStore) DeleteByID(ctx context.Context, id int64) (int64, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.issues {
		if s.issues[i].ID == id {
			s.issues = append(s.issues[:i], s.issues[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}
