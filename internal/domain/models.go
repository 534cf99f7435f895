package domain

import "time"

// Difficulty is a question difficulty band.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is a single generated multiple-choice question. Immutable once created.
type Question struct {
	ID            string     `json:"id"`
	Subject       string     `json:"subject"`
	Grade         int        `json:"grade"`
	Difficulty    Difficulty `json:"difficulty"`
	Prompt        string     `json:"prompt"`
	Options       []string   `json:"options"`
	CorrectOption string     `json:"correctOption"` // option letter, e.g. "A"
	Points        float64    `json:"points"`
	Explanation   string     `json:"explanation,omitempty"`
}

// Quiz is a generated set of questions for one learner.
type Quiz struct {
	ID        string     `json:"id"`
	LearnerID string     `json:"learnerId"`
	Subject   string     `json:"subject"`
	Grade     int        `json:"grade"`
	Questions []Question `json:"questions"`
	MaxScore  float64    `json:"maxScore"`
	CreatedAt time.Time  `json:"createdAt"`
}

// SubmittedAnswer pairs a question with the learner's raw answer.
type SubmittedAnswer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

// AnswerSheet is one learner's full submission for a quiz.
type AnswerSheet struct {
	QuizID  string            `json:"quizId"`
	Answers []SubmittedAnswer `json:"answers"`
}

// AttemptAnswer records the scored outcome for one question.
type AttemptAnswer struct {
	QuestionID string  `json:"questionId"`
	Submitted  string  `json:"submitted"`
	Correct    bool    `json:"correct"`
	Awarded    float64 `json:"awarded"`
}

// DifficultyBreakdown summarizes correctness and points within one difficulty band.
type DifficultyBreakdown struct {
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"maxScore"`
}

// Attempt is one scored quiz submission. History is append-only: a retake
// creates a new Attempt instead of mutating the old one.
type Attempt struct {
	ID          string                             `json:"id"`
	LearnerID   string                             `json:"learnerId"`
	QuizID      string                             `json:"quizId"`
	Subject     string                             `json:"subject"`
	Grade       int                                `json:"grade"`
	Answers     []AttemptAnswer                    `json:"answers"`
	TotalScore  float64                            `json:"totalScore"`
	MaxScore    float64                            `json:"maxScore"`
	Breakdown   map[Difficulty]DifficultyBreakdown `json:"breakdown,omitempty"`
	SubmittedAt time.Time                          `json:"submittedAt"`
}

// Percentage returns the attempt score as a 0-100 percentage, 0 when MaxScore is 0.
func (a Attempt) Percentage() float64 {
	if a.MaxScore <= 0 {
		return 0
	}
	return a.TotalScore / a.MaxScore * 100
}

// LeaderboardEntry is a derived ranking row, recomputed per query and never stored.
type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	LearnerID   string    `json:"learnerId"`
	Subject     string    `json:"subject"`
	Grade       int       `json:"grade"`
	TotalScore  float64   `json:"totalScore"`
	MaxScore    float64   `json:"maxScore"`
	Percentage  float64   `json:"percentage"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Distribution is the target difficulty mix for the next quiz, in percent.
type Distribution struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// QuestionCounts is a Distribution resolved into whole question counts.
type QuestionCounts struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// Total returns the number of questions across all bands.
func (c QuestionCounts) Total() int {
	return c.Easy + c.Medium + c.Hard
}

// PointsStrategy maps difficulty bands to point values.
type PointsStrategy struct {
	Easy   float64 `json:"easy"`
	Medium float64 `json:"medium"`
	Hard   float64 `json:"hard"`
}

// DefaultPointsStrategy awards more points for harder questions.
func DefaultPointsStrategy() PointsStrategy {
	return PointsStrategy{Easy: 1, Medium: 2, Hard: 3}
}

// PointsFor returns the point value for a difficulty band.
func (p PointsStrategy) PointsFor(d Difficulty) float64 {
	switch d {
	case DifficultyEasy:
		return p.Easy
	case DifficultyHard:
		return p.Hard
	default:
		return p.Medium
	}
}
