package store

import (
	"context"
	"sync"
	"time"

	"github.com/okanalatt/FullStackAIChat/internal/model"
	"github.com/okanalatt/FullStackAIChat/internal/sentiment"
)

// MemoryStore keeps the log in process memory. It backs deployments without
// a POSTGRES_URL and all the tests.
type MemoryStore struct {
	mu       sync.Mutex
	nextID   int64
	lastTime time.Time
	messages []model.Message

	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, now: func() time.Time { return time.Now().UTC() }}
}

func (s *MemoryStore) Append(_ context.Context, name, description string, feeling sentiment.Sentiment, score float64) (model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now()
	// Timestamps must be non-decreasing in insertion order even if the
	// clock steps backwards.
	if ts.Before(s.lastTime) {
		ts = s.lastTime
	}
	s.lastTime = ts

	msg := model.Message{
		ID:          s.nextID,
		Name:        name,
		Description: description,
		Feeling:     feeling,
		Score:       score,
		Timestamp:   ts,
	}
	s.nextID++
	s.messages = append(s.messages, msg)
	return msg, nil
}

func (s *MemoryStore) List(_ context.Context) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out, nil
}
