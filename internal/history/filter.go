// Package history provides read-only filtered views over a learner's attempts.
package history

import (
	"sort"
	"strings"
	"time"

	"adaptive-quiz-service/internal/domain"
)

// AllSubjects disables subject filtering in a Query.
const AllSubjects = "All Subjects"

// DefaultRangeDays is how far back the default date range reaches.
const DefaultRangeDays = 30

// Query selects a slice of a learner's history. Zero-valued fields fall back
// to defaults: all subjects, any grade, any score, and a data-aware date range
// (see DefaultRange).
type Query struct {
	Subject  string
	Grade    int
	MinScore *float64
	MaxScore *float64
	Start    time.Time
	End      time.Time
}

// Filter returns the attempts matching the query, newest first. The date range
// is inclusive on both bounds. Each zero bound falls back to its DefaultRange
// value independently, so an end-only query still starts at the data-aware
// default rather than the unbounded past. A start after the end is
// domain.ErrInvalidRange, whether the dates were supplied explicitly or
// computed from defaults; the range is never silently swapped or clamped.
//
// The meaningful range for explicit dates is bounded by the learner's actual
// earliest and latest attempts; use DefaultRange to build pickers. Requests
// outside those bounds are a caller defect, not enforced here.
func Filter(attempts []domain.Attempt, q Query, now time.Time) ([]domain.Attempt, error) {
	start, end := q.Start, q.End
	if start.IsZero() || end.IsZero() {
		defStart, defEnd := DefaultRange(attempts, now)
		if start.IsZero() {
			start = defStart
		}
		if end.IsZero() {
			end = defEnd
		}
	}
	if start.After(end) {
		return nil, domain.ErrInvalidRange
	}

	filtered := make([]domain.Attempt, 0, len(attempts))
	for _, a := range attempts {
		if !matchesSubject(a.Subject, q.Subject) {
			continue
		}
		if q.Grade != 0 && a.Grade != q.Grade {
			continue
		}
		if q.MinScore != nil && a.TotalScore < *q.MinScore {
			continue
		}
		if q.MaxScore != nil && a.TotalScore > *q.MaxScore {
			continue
		}
		if a.SubmittedAt.Before(start) || a.SubmittedAt.After(end) {
			continue
		}
		filtered = append(filtered, a)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].SubmittedAt.After(filtered[j].SubmittedAt)
	})
	return filtered, nil
}

// DefaultRange computes the data-aware default date range: from the later of
// the earliest attempt and DefaultRangeDays ago, up to now. With no history
// the range collapses to [now, now].
func DefaultRange(attempts []domain.Attempt, now time.Time) (start, end time.Time) {
	end = now
	if len(attempts) == 0 {
		return now, end
	}
	earliest := attempts[0].SubmittedAt
	for _, a := range attempts[1:] {
		if a.SubmittedAt.Before(earliest) {
			earliest = a.SubmittedAt
		}
	}
	start = now.AddDate(0, 0, -DefaultRangeDays)
	if earliest.After(start) {
		start = earliest
	}
	return start, end
}

// Subjects returns the distinct subjects present in the full history, in order
// of first appearance.
func Subjects(attempts []domain.Attempt) []string {
	seen := make(map[string]struct{}, len(attempts))
	subjects := make([]string, 0, len(attempts))
	for _, a := range attempts {
		if a.Subject == "" {
			continue
		}
		if _, ok := seen[a.Subject]; ok {
			continue
		}
		seen[a.Subject] = struct{}{}
		subjects = append(subjects, a.Subject)
	}
	return subjects
}

func matchesSubject(subject, filter string) bool {
	if filter == "" || filter == AllSubjects {
		return true
	}
	return strings.EqualFold(subject, filter)
}
