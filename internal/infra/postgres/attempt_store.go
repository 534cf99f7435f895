package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"adaptive-quiz-service/internal/domain"
)

// AttemptStore stores scored attempts. Rows are insert-only: history is
// append-only and nothing ever updates an attempt.
type AttemptStore struct {
	pool *pgxpool.Pool
}

func NewAttemptStore(pool *pgxpool.Pool) *AttemptStore {
	return &AttemptStore{pool: pool}
}

func (s *AttemptStore) SaveAttempt(ctx context.Context, attempt domain.Attempt) error {
	raw, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO attempts (id, learner_id, quiz_id, subject, grade, total_score, max_score, submitted_at, data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		attempt.ID, attempt.LearnerID, attempt.QuizID, attempt.Subject, attempt.Grade,
		attempt.TotalScore, attempt.MaxScore, attempt.SubmittedAt, raw)
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (s *AttemptStore) ListByLearner(ctx context.Context, learnerID string) ([]domain.Attempt, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM attempts WHERE learner_id=$1 ORDER BY submitted_at DESC`, learnerID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return collect(rows)
}

func (s *AttemptStore) ListScoped(ctx context.Context, subject string, grade int) ([]domain.Attempt, error) {
	// Empty subject / zero grade disable that filter dimension.
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM attempts
		 WHERE ($1 = '' OR subject = $1) AND ($2 = 0 OR grade = $2)
		 ORDER BY submitted_at DESC`, subject, grade)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return collect(rows)
}

func collect(rows pgx.Rows) ([]domain.Attempt, error) {
	defer rows.Close()
	var attempts []domain.Attempt
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		var attempt domain.Attempt
		if err := json.Unmarshal(raw, &attempt); err != nil {
			return nil, fmt.Errorf("unmarshal attempt: %w", err)
		}
		attempts = append(attempts, attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return attempts, nil
}
