package leaderboard

import (
	"testing"
	"time"

	"adaptive-quiz-service/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 9, 0, 0, 0, time.UTC)
}

func entry(learner string, score, max float64, submitted time.Time) domain.LeaderboardEntry {
	return domain.LeaderboardEntry{
		LearnerID:   learner,
		TotalScore:  score,
		MaxScore:    max,
		SubmittedAt: submitted,
	}
}

func TestRankMultiKeyOrder(t *testing.T) {
	// C wins outright on score. A and B tie on score; the max-score key
	// decides before timestamps are consulted, so B ranks above A.
	a := entry("A", 90, 100, day(2)) // Monday
	b := entry("B", 90, 120, day(3)) // Tuesday
	c := entry("C", 95, 100, day(4)) // Wednesday

	ranked := Rank([]domain.LeaderboardEntry{a, b, c})
	want := []string{"C", "B", "A"}
	for i, learner := range want {
		if ranked[i].LearnerID != learner {
			t.Fatalf("position %d: expected %s, got %s", i+1, learner, ranked[i].LearnerID)
		}
		if ranked[i].Rank != i+1 {
			t.Fatalf("expected rank %d, got %d", i+1, ranked[i].Rank)
		}
	}
}

func TestRankRecencyTieBreak(t *testing.T) {
	older := entry("old", 50, 60, day(1))
	newer := entry("new", 50, 60, day(5))

	ranked := Rank([]domain.LeaderboardEntry{older, newer})
	if ranked[0].LearnerID != "new" {
		t.Fatalf("expected more recent submission first, got %s", ranked[0].LearnerID)
	}
}

func TestRankStableForFullTies(t *testing.T) {
	first := entry("first", 10, 20, day(1))
	second := entry("second", 10, 20, day(1))

	ranked := Rank([]domain.LeaderboardEntry{first, second})
	if ranked[0].LearnerID != "first" || ranked[1].LearnerID != "second" {
		t.Fatalf("full ties must keep input order, got %s then %s", ranked[0].LearnerID, ranked[1].LearnerID)
	}
}

func TestRankIdempotent(t *testing.T) {
	entries := []domain.LeaderboardEntry{
		entry("A", 95, 100, day(3)),
		entry("B", 90, 120, day(2)),
		entry("C", 90, 100, day(1)),
	}
	once := Rank(entries)
	twice := Rank(once)
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("re-ranking a sorted sequence must be a no-op: %+v vs %+v", once[i], twice[i])
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	entries := []domain.LeaderboardEntry{
		entry("low", 1, 10, day(1)),
		entry("high", 9, 10, day(2)),
	}
	_ = Rank(entries)
	if entries[0].LearnerID != "low" || entries[0].Rank != 0 {
		t.Fatalf("input slice was mutated: %+v", entries[0])
	}
}

func TestEntriesDeriveFromAttempts(t *testing.T) {
	attempts := []domain.Attempt{
		{LearnerID: "u1", Subject: "Math", Grade: 5, TotalScore: 8, MaxScore: 10, SubmittedAt: day(1)},
	}
	entries := Entries(attempts)
	if len(entries) != 1 {
		t.Fatalf("expected one entry per attempt, got %d", len(entries))
	}
	if entries[0].Percentage != 80 {
		t.Fatalf("expected percentage 80, got %v", entries[0].Percentage)
	}
}
