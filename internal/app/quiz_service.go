package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adaptive-quiz-service/internal/domain"
	"adaptive-quiz-service/internal/generator"
	"adaptive-quiz-service/internal/history"
	"adaptive-quiz-service/internal/id"
	"adaptive-quiz-service/internal/leaderboard"
	"adaptive-quiz-service/internal/performance"
	"adaptive-quiz-service/internal/scoring"
)

// ErrInvalidRequest marks request validation failures surfaced to the caller.
var ErrInvalidRequest = errors.New("invalid request")

// Question count bounds for generated quizzes.
const (
	MinQuestions = 5
	MaxQuestions = 30
)

// DefaultLeaderboardLimit and MaxLeaderboardLimit bound leaderboard queries.
const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 50
)

// QuizStore persists generated quizzes.
type QuizStore interface {
	SaveQuiz(ctx context.Context, quiz domain.Quiz) error
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// AttemptStore persists scored attempts. Attempts are append-only; stores never
// update existing rows.
type AttemptStore interface {
	SaveAttempt(ctx context.Context, attempt domain.Attempt) error
	ListByLearner(ctx context.Context, learnerID string) ([]domain.Attempt, error)
	// ListScoped returns attempts matching the scope; an empty subject or zero
	// grade leaves that dimension unfiltered.
	ListScoped(ctx context.Context, subject string, grade int) ([]domain.Attempt, error)
}

// Scope narrows a leaderboard to a subject and/or grade.
type Scope struct {
	Subject string
	Grade   int
}

// Matches reports whether an attempt falls inside the scope.
func (s Scope) Matches(a domain.Attempt) bool {
	if s.Subject != "" && s.Subject != a.Subject {
		return false
	}
	if s.Grade != 0 && s.Grade != a.Grade {
		return false
	}
	return true
}

// LeaderboardProvider serves ranked standings for a scope. The QuizService
// itself computes them fresh; infra layers may wrap it with a cache.
type LeaderboardProvider interface {
	Leaderboard(ctx context.Context, scope Scope, limit int) ([]domain.LeaderboardEntry, error)
}

// GenerateRequest parameterizes a new adaptive quiz.
type GenerateRequest struct {
	LearnerID      string
	Subject        string
	Grade          int
	TotalQuestions int
	Points         *domain.PointsStrategy
}

// QuizService contains the quiz use cases: adaptive generation, submission
// scoring, history views, leaderboards, and hints.
type QuizService struct {
	quizzes  QuizStore
	attempts AttemptStore
	gen      generator.Generator
	hub      *leaderboardHub
	now      func() time.Time
}

func NewQuizService(quizzes QuizStore, attempts AttemptStore, gen generator.Generator) *QuizService {
	return NewQuizServiceWithClock(quizzes, attempts, gen, time.Now)
}

// NewQuizServiceWithClock allows deterministic timestamps in tests.
func NewQuizServiceWithClock(quizzes QuizStore, attempts AttemptStore, gen generator.Generator, now func() time.Time) *QuizService {
	return &QuizService{
		quizzes:  quizzes,
		attempts: attempts,
		gen:      gen,
		hub:      newLeaderboardHub(),
		now:      now,
	}
}

// GenerateQuiz builds the next quiz for a learner. The difficulty mix is always
// adaptive: it follows the learner's recent performance in the subject, never
// the caller's preference.
func (s *QuizService) GenerateQuiz(ctx context.Context, req GenerateRequest) (domain.Quiz, error) {
	if req.LearnerID == "" || req.Subject == "" {
		return domain.Quiz{}, fmt.Errorf("%w: learner and subject are required", ErrInvalidRequest)
	}
	if req.Grade < 1 || req.Grade > 12 {
		return domain.Quiz{}, fmt.Errorf("%w: grade must be between 1 and 12, got %d", ErrInvalidRequest, req.Grade)
	}
	if req.TotalQuestions < MinQuestions || req.TotalQuestions > MaxQuestions {
		return domain.Quiz{}, fmt.Errorf("%w: number of questions must be between %d and %d, got %d",
			ErrInvalidRequest, MinQuestions, MaxQuestions, req.TotalQuestions)
	}
	points := domain.DefaultPointsStrategy()
	if req.Points != nil {
		points = *req.Points
	}

	attempts, err := s.attempts.ListByLearner(ctx, req.LearnerID)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load history: %w", err)
	}
	ratio := performance.Aggregate(performance.Window(attempts, req.Subject))
	dist := performance.SelectDistribution(ratio)
	counts := performance.Counts(dist, req.TotalQuestions)

	spec := generator.QuizSpec{
		Subject: req.Subject,
		Grade:   req.Grade,
		Counts:  counts,
		Points:  points,
	}
	questions, err := s.gen.GenerateQuestions(ctx, spec)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("generate questions: %w", err)
	}
	questions = fitQuestions(questions, req.TotalQuestions, spec)

	var maxScore float64
	for _, q := range questions {
		maxScore += q.Points
	}
	quiz := domain.Quiz{
		ID:        id.New(),
		LearnerID: req.LearnerID,
		Subject:   req.Subject,
		Grade:     req.Grade,
		Questions: questions,
		MaxScore:  maxScore,
		CreatedAt: s.now(),
	}
	if err := s.quizzes.SaveQuiz(ctx, quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("save quiz: %w", err)
	}
	return quiz, nil
}

// SubmitQuiz scores an answer sheet and appends the resulting attempt to the
// learner's history. Submitting the same quiz again creates a new attempt.
func (s *QuizService) SubmitQuiz(ctx context.Context, learnerID string, sheet domain.AnswerSheet) (domain.Attempt, error) {
	if learnerID == "" {
		return domain.Attempt{}, fmt.Errorf("%w: learner is required", ErrInvalidRequest)
	}
	quiz, err := s.quizzes.GetQuiz(ctx, sheet.QuizID)
	if err != nil {
		return domain.Attempt{}, err
	}

	attempt, err := scoring.Score(sheet, quiz, learnerID, id.New(), s.now())
	if err != nil {
		return domain.Attempt{}, err
	}
	if err := s.attempts.SaveAttempt(ctx, attempt); err != nil {
		return domain.Attempt{}, fmt.Errorf("save attempt: %w", err)
	}

	s.broadcast(ctx, attempt)
	return attempt, nil
}

// History returns the learner's filtered attempt history, newest first.
func (s *QuizService) History(ctx context.Context, learnerID string, query history.Query) ([]domain.Attempt, error) {
	attempts, err := s.attempts.ListByLearner(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return history.Filter(attempts, query, s.now())
}

// Subjects lists the distinct subjects in the learner's full history, in order
// of first appearance.
func (s *QuizService) Subjects(ctx context.Context, learnerID string) ([]string, error) {
	attempts, err := s.attempts.ListByLearner(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return history.Subjects(attempts), nil
}

// HistoryRange returns the data-aware default date range for the learner's
// history picker.
func (s *QuizService) HistoryRange(ctx context.Context, learnerID string) (start, end time.Time, err error) {
	attempts, err := s.attempts.ListByLearner(ctx, learnerID)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("load history: %w", err)
	}
	start, end = history.DefaultRange(attempts, s.now())
	return start, end, nil
}

// Leaderboard computes fresh standings for the scope.
func (s *QuizService) Leaderboard(ctx context.Context, scope Scope, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}
	ranked, err := s.computeLeaderboard(ctx, scope)
	if err != nil {
		return nil, err
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (s *QuizService) computeLeaderboard(ctx context.Context, scope Scope) ([]domain.LeaderboardEntry, error) {
	attempts, err := s.attempts.ListScoped(ctx, scope.Subject, scope.Grade)
	if err != nil {
		return nil, fmt.Errorf("load attempts: %w", err)
	}
	return leaderboard.Rank(leaderboard.Entries(attempts)), nil
}

// Hint asks the generator for guidance on a question. The generator is an
// opaque collaborator; no determinism is assumed.
func (s *QuizService) Hint(ctx context.Context, question, userAnswer string) (string, error) {
	if question == "" {
		return "", fmt.Errorf("%w: question text is required", ErrInvalidRequest)
	}
	return s.gen.GenerateHint(ctx, question, userAnswer)
}

// fitQuestions truncates or pads generated questions to the requested total.
func fitQuestions(questions []domain.Question, total int, spec generator.QuizSpec) []domain.Question {
	if len(questions) > total {
		return questions[:total]
	}
	for len(questions) < total {
		questions = append(questions, domain.Question{
			ID:            id.New(),
			Subject:       spec.Subject,
			Grade:         spec.Grade,
			Difficulty:    domain.DifficultyMedium,
			Prompt:        fmt.Sprintf("Additional question %d", len(questions)+1),
			Options:       []string{"A) Option A", "B) Option B", "C) Option C", "D) Option D"},
			CorrectOption: "A",
			Points:        spec.Points.Medium,
		})
	}
	return questions
}
