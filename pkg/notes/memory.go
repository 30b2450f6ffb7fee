package notes

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store for tests and zero-config runs.
type MemoryStore struct {
	mu    sync.RWMutex
	notes []Note
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(ctx context.Context, note Note) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = append(s.notes, note)
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, userID, topic string, limit int) ([]Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Note
	for _, note := range s.notes {
		if note.UserID != userID {
			continue
		}
		if topic != "" && !strings.Contains(strings.ToLower(note.Topic), strings.ToLower(topic)) {
			continue
		}
		matched = append(matched, note)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
