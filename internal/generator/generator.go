// Package generator produces quiz content and hints. Implementations may call
// an LLM or return canned output; callers treat them as opaque text sources
// with no contract on latency or determinism.
package generator

import (
	"context"

	"adaptive-quiz-service/internal/domain"
)

// QuizSpec parameterizes one quiz generation request.
type QuizSpec struct {
	Subject string
	Grade   int
	Counts  domain.QuestionCounts
	Points  domain.PointsStrategy
}

// Generator is the AI content collaborator.
type Generator interface {
	// GenerateQuestions returns questions matching the requested difficulty
	// counts. Implementations should return exactly Counts.Total() questions;
	// callers tolerate short or long output by padding or truncating.
	GenerateQuestions(ctx context.Context, spec QuizSpec) ([]domain.Question, error)

	// GenerateHint returns guidance for a question without revealing the
	// answer. userAnswer, when non-empty, lets the hint address the learner's
	// current thinking.
	GenerateHint(ctx context.Context, question, userAnswer string) (string, error)
}
