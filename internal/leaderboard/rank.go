// Package leaderboard derives and orders standings from scored attempts.
package leaderboard

import (
	"sort"

	"adaptive-quiz-service/internal/domain"
)

// Entries builds a fresh leaderboard view from a set of attempts. One entry
// per attempt; the view is derived per query and never stored.
func Entries(attempts []domain.Attempt) []domain.LeaderboardEntry {
	entries := make([]domain.LeaderboardEntry, 0, len(attempts))
	for _, a := range attempts {
		entries = append(entries, domain.LeaderboardEntry{
			LearnerID:   a.LearnerID,
			Subject:     a.Subject,
			Grade:       a.Grade,
			TotalScore:  a.TotalScore,
			MaxScore:    a.MaxScore,
			Percentage:  a.Percentage(),
			SubmittedAt: a.SubmittedAt,
		})
	}
	return entries
}

// Rank orders entries into standings without mutating the input:
//
//  1. total score, descending
//  2. max possible score, descending (same score on a larger quiz ranks higher)
//  3. submitted-at, descending (more recent ranks higher)
//
// Entries still tied after all three keys keep their input order, so identical
// queries always produce identical standings. Ranks are assigned 1-based.
func Rank(entries []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	ranked := make([]domain.LeaderboardEntry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].TotalScore != ranked[j].TotalScore {
			return ranked[i].TotalScore > ranked[j].TotalScore
		}
		if ranked[i].MaxScore != ranked[j].MaxScore {
			return ranked[i].MaxScore > ranked[j].MaxScore
		}
		if !ranked[i].SubmittedAt.Equal(ranked[j].SubmittedAt) {
			return ranked[i].SubmittedAt.After(ranked[j].SubmittedAt)
		}
		return false
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
