package generator

import (
	"context"
	"fmt"
	"sync"

	"adaptive-quiz-service/internal/domain"
	"adaptive-quiz-service/internal/id"
)

// Mock is a deterministic Generator for tests. It fabricates questions exactly
// matching the requested counts and records every request it receives.
type Mock struct {
	mu        sync.Mutex
	Hint      string
	Err       error
	QuizCalls []QuizSpec
	HintCalls []string
}

func (m *Mock) GenerateQuestions(_ context.Context, spec QuizSpec) ([]domain.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuizCalls = append(m.QuizCalls, spec)
	if m.Err != nil {
		return nil, m.Err
	}

	questions := make([]domain.Question, 0, spec.Counts.Total())
	add := func(n int, diff domain.Difficulty) {
		for i := 0; i < n; i++ {
			questions = append(questions, domain.Question{
				ID:            id.New(),
				Subject:       spec.Subject,
				Grade:         spec.Grade,
				Difficulty:    diff,
				Prompt:        fmt.Sprintf("%s question %d", diff, i+1),
				Options:       []string{"A) one", "B) two", "C) three", "D) four"},
				CorrectOption: "A",
				Points:        spec.Points.PointsFor(diff),
			})
		}
	}
	add(spec.Counts.Easy, domain.DifficultyEasy)
	add(spec.Counts.Medium, domain.DifficultyMedium)
	add(spec.Counts.Hard, domain.DifficultyHard)
	return questions, nil
}

func (m *Mock) GenerateHint(_ context.Context, question, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HintCalls = append(m.HintCalls, question)
	if m.Err != nil {
		return "", m.Err
	}
	if m.Hint == "" {
		return "Think it through step by step.", nil
	}
	return m.Hint, nil
}
