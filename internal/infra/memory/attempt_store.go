package memory

import (
	"context"
	"sync"

	"adaptive-quiz-service/internal/domain"
)

// AttemptStore is an in-memory, append-only implementation of app.AttemptStore.
type AttemptStore struct {
	mu       sync.RWMutex
	attempts []domain.Attempt
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{}
}

func (s *AttemptStore) SaveAttempt(_ context.Context, attempt domain.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, attempt)
	return nil
}

func (s *AttemptStore) ListByLearner(_ context.Context, learnerID string) ([]domain.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Attempt, 0)
	for _, a := range s.attempts {
		if a.LearnerID == learnerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *AttemptStore) ListScoped(_ context.Context, subject string, grade int) ([]domain.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Attempt, 0)
	for _, a := range s.attempts {
		if subject != "" && a.Subject != subject {
			continue
		}
		if grade != 0 && a.Grade != grade {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}
