package shortener

import (
	"fmt"
)

// Repository associates issued identifiers with the original long URL.
type Repository interface {
	Save(id int64, originalURL string) error
	Get(id int64) (string, error)
	Len() int
}

// MemoryRepository keeps entries in a map for the lifetime of a session.
// Entries are never updated or removed. It does no locking of its own.
type MemoryRepository struct {
	urls map[int64]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		urls: make(map[int64]string),
	}
}

func (r *MemoryRepository) Save(id int64, originalURL string) error {
	if _, exists := r.urls[id]; exists {
		return fmt.Errorf("failed to save url for id %d: %w", id, ErrDuplicateID)
	}
	r.urls[id] = originalURL
	return nil
}

func (r *MemoryRepository) Get(id int64) (string, error) {
	originalURL, ok := r.urls[id]
	if !ok {
		return "", ErrNotFound
	}
	return originalURL, nil
}

func (r *MemoryRepository) Len() int {
	return len(r.urls)
}
