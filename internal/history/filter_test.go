package history

import (
	"errors"
	"testing"
	"time"

	"adaptive-quiz-service/internal/domain"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func attemptAt(subject string, daysAgo int) domain.Attempt {
	return domain.Attempt{
		Subject:     subject,
		TotalScore:  5,
		MaxScore:    10,
		SubmittedAt: now.AddDate(0, 0, -daysAgo),
	}
}

func TestFilterDefaultRangeIsLast30Days(t *testing.T) {
	attempts := []domain.Attempt{
		attemptAt("Math", 60),
		attemptAt("Math", 45),
		attemptAt("Math", 20),
		attemptAt("Math", 5),
	}

	got, err := Filter(attempts, Query{}, now)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected only attempts from the last 30 days, got %d", len(got))
	}
	if !got[0].SubmittedAt.After(got[1].SubmittedAt) {
		t.Fatalf("expected newest-first ordering, got %v then %v", got[0].SubmittedAt, got[1].SubmittedAt)
	}
}

func TestFilterEndOnlyQueryKeepsDefaultStart(t *testing.T) {
	attempts := []domain.Attempt{
		attemptAt("Math", 60),
		attemptAt("Math", 20),
		attemptAt("Math", 2),
	}

	// Only End supplied: Start must still default to the 30-day bound, not
	// reach into the unbounded past.
	got, err := Filter(attempts, Query{End: now.AddDate(0, 0, -10)}, now)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 1 || !got[0].SubmittedAt.Equal(now.AddDate(0, 0, -20)) {
		t.Fatalf("expected only the 20-day-old attempt, got %+v", got)
	}
}

func TestFilterSubjectAndGrade(t *testing.T) {
	math := attemptAt("Math", 1)
	math.Grade = 5
	science := attemptAt("Science", 2)
	science.Grade = 5
	otherGrade := attemptAt("Math", 3)
	otherGrade.Grade = 7

	attempts := []domain.Attempt{math, science, otherGrade}

	got, err := Filter(attempts, Query{Subject: "math", Grade: 5}, now)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 1 || got[0].Subject != "Math" || got[0].Grade != 5 {
		t.Fatalf("expected the single grade-5 math attempt, got %+v", got)
	}

	all, err := Filter(attempts, Query{Subject: AllSubjects}, now)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected All Subjects to not filter, got %d", len(all))
	}
}

func TestFilterScoreBounds(t *testing.T) {
	low := attemptAt("Math", 1)
	low.TotalScore = 2
	high := attemptAt("Math", 2)
	high.TotalScore = 9

	min, max := 5.0, 10.0
	got, err := Filter([]domain.Attempt{low, high}, Query{MinScore: &min, MaxScore: &max}, now)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 1 || got[0].TotalScore != 9 {
		t.Fatalf("expected only the high-scoring attempt, got %+v", got)
	}
}

func TestFilterInvalidRange(t *testing.T) {
	attempts := []domain.Attempt{attemptAt("Math", 1)}
	q := Query{Start: now, End: now.AddDate(0, 0, -1)}
	if _, err := Filter(attempts, q, now); !errors.Is(err, domain.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for explicit start>end, got %v", err)
	}
}

func TestFilterRangeInclusiveBounds(t *testing.T) {
	edge := attemptAt("Math", 0)
	edge.SubmittedAt = now
	q := Query{Start: now, End: now}
	got, err := Filter([]domain.Attempt{edge}, q, now)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("bounds must be inclusive, got %d attempts", len(got))
	}
}

func TestFilterEmptyHistory(t *testing.T) {
	got, err := Filter(nil, Query{}, now)
	if err != nil {
		t.Fatalf("empty history must not fail: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}

	start, end := DefaultRange(nil, now)
	if !start.Equal(now) || !end.Equal(now) {
		t.Fatalf("empty history range must collapse to [now, now], got [%v, %v]", start, end)
	}
}

func TestDefaultRangeBoundedByData(t *testing.T) {
	attempts := []domain.Attempt{attemptAt("Math", 10)}
	start, _ := DefaultRange(attempts, now)
	if !start.Equal(now.AddDate(0, 0, -10)) {
		t.Fatalf("start must not predate the earliest attempt, got %v", start)
	}

	older := []domain.Attempt{attemptAt("Math", 90)}
	start, _ = DefaultRange(older, now)
	if !start.Equal(now.AddDate(0, 0, -DefaultRangeDays)) {
		t.Fatalf("start must not reach past %d days, got %v", DefaultRangeDays, start)
	}
}

func TestSubjectsFirstSeenOrder(t *testing.T) {
	attempts := []domain.Attempt{
		attemptAt("Math", 1),
		attemptAt("Science", 2),
		attemptAt("Math", 3),
		attemptAt("", 4),
	}
	subjects := Subjects(attempts)
	if len(subjects) != 2 || subjects[0] != "Math" || subjects[1] != "Science" {
		t.Fatalf(`expected ["Math", "Science"], got %v`, subjects)
	}
}
