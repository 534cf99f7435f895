package memory

import (
	"context"
	"errors"
	"testing"

	"adaptive-quiz-service/internal/domain"
)

func TestQuizStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewQuizStore()

	if _, err := store.GetQuiz(ctx, "missing"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}

	quiz := domain.Quiz{ID: "quiz-1", Subject: "Math"}
	if err := store.SaveQuiz(ctx, quiz); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.GetQuiz(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Subject != "Math" {
		t.Fatalf("unexpected quiz: %+v", got)
	}
}

func TestAttemptStoreScoping(t *testing.T) {
	ctx := context.Background()
	store := NewAttemptStore()

	seed := []domain.Attempt{
		{ID: "a1", LearnerID: "u1", Subject: "Math", Grade: 5},
		{ID: "a2", LearnerID: "u1", Subject: "Science", Grade: 5},
		{ID: "a3", LearnerID: "u2", Subject: "Math", Grade: 7},
	}
	for _, a := range seed {
		if err := store.SaveAttempt(ctx, a); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	mine, err := store.ListByLearner(ctx, "u1")
	if err != nil {
		t.Fatalf("list by learner: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 attempts for u1, got %d", len(mine))
	}

	math, err := store.ListScoped(ctx, "Math", 0)
	if err != nil {
		t.Fatalf("list scoped: %v", err)
	}
	if len(math) != 2 {
		t.Fatalf("expected 2 math attempts, got %d", len(math))
	}

	grade7, err := store.ListScoped(ctx, "Math", 7)
	if err != nil {
		t.Fatalf("list scoped: %v", err)
	}
	if len(grade7) != 1 || grade7[0].ID != "a3" {
		t.Fatalf("expected only a3, got %+v", grade7)
	}
}
