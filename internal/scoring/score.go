// Package scoring turns submitted answer sheets into scored attempts.
package scoring

import (
	"strings"
	"time"

	"adaptive-quiz-service/internal/domain"
)

// Score grades an answer sheet against the quiz's questions and returns a new
// Attempt. It is a pure function: persistence of the result is the caller's job.
//
// Rules:
//   - The sheet must reference the quiz being scored, otherwise
//     domain.ErrInvalidSubmission is returned and nothing is scored.
//   - A question with no matching submitted answer is unanswered: zero points,
//     marked incorrect.
//   - Submitted answers referencing unknown question IDs are ignored.
//   - A correct answer earns the question's full point value; there is no
//     partial credit.
func Score(sheet domain.AnswerSheet, quiz domain.Quiz, learnerID, attemptID string, now time.Time) (domain.Attempt, error) {
	if sheet.QuizID != quiz.ID {
		return domain.Attempt{}, domain.ErrInvalidSubmission
	}

	submitted := make(map[string]string, len(sheet.Answers))
	for _, ans := range sheet.Answers {
		submitted[ans.QuestionID] = ans.Answer
	}

	answers := make([]domain.AttemptAnswer, 0, len(quiz.Questions))
	breakdown := make(map[domain.Difficulty]domain.DifficultyBreakdown)
	var totalScore, maxScore float64

	for _, q := range quiz.Questions {
		raw := submitted[q.ID]
		correct := raw != "" && optionLetter(raw) == optionLetter(q.CorrectOption)

		var awarded float64
		if correct {
			awarded = q.Points
		}
		totalScore += awarded
		maxScore += q.Points

		answers = append(answers, domain.AttemptAnswer{
			QuestionID: q.ID,
			Submitted:  raw,
			Correct:    correct,
			Awarded:    awarded,
		})

		band := breakdown[q.Difficulty]
		band.Total++
		band.MaxScore += q.Points
		if correct {
			band.Correct++
			band.Score += awarded
		}
		breakdown[q.Difficulty] = band
	}

	return domain.Attempt{
		ID:          attemptID,
		LearnerID:   learnerID,
		QuizID:      quiz.ID,
		Subject:     quiz.Subject,
		Grade:       quiz.Grade,
		Answers:     answers,
		TotalScore:  totalScore,
		MaxScore:    maxScore,
		Breakdown:   breakdown,
		SubmittedAt: now,
	}, nil
}

// optionLetter normalizes an answer to its option letter: "b) 4" and "B" both
// compare as "B".
func optionLetter(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1])
}
