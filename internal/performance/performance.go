// Package performance computes rolling performance ratios and maps them to
// difficulty distributions for the next quiz.
package performance

import (
	"sort"
	"strings"

	"adaptive-quiz-service/internal/domain"
)

// WindowSize bounds how many recent attempts feed the performance ratio.
// Older attempts never influence difficulty selection.
const WindowSize = 3

// Ratio is the rolling performance ratio for a learner+subject. Known is false
// when there is no usable history; callers must branch on it rather than treat
// the zero value as a zero score.
type Ratio struct {
	Value float64
	Known bool
}

// NewRatio wraps a known ratio value.
func NewRatio(v float64) Ratio {
	return Ratio{Value: v, Known: true}
}

// NoHistory is the explicit "no data yet" signal.
var NoHistory = Ratio{}

// Window returns the learner's most recent attempts for a subject, newest
// first, capped at WindowSize. Subject comparison is case-insensitive.
func Window(attempts []domain.Attempt, subject string) []domain.Attempt {
	window := make([]domain.Attempt, 0, WindowSize)
	for _, a := range attempts {
		if strings.EqualFold(a.Subject, subject) {
			window = append(window, a)
		}
	}
	sort.SliceStable(window, func(i, j int) bool {
		return window[i].SubmittedAt.After(window[j].SubmittedAt)
	})
	if len(window) > WindowSize {
		window = window[:WindowSize]
	}
	return window
}

// Aggregate computes the performance ratio over a window of attempts:
// sum of scores divided by sum of maximum scores, in [0,1]. An empty window,
// or one where every attempt has a zero maximum, yields NoHistory.
func Aggregate(window []domain.Attempt) Ratio {
	var total, max float64
	for _, a := range window {
		total += a.TotalScore
		max += a.MaxScore
	}
	if max <= 0 {
		return NoHistory
	}
	return NewRatio(total / max)
}
