package app

import (
	"context"
	"log"
	"sync"

	"adaptive-quiz-service/internal/domain"
)

// leaderboardHub fans out re-ranked standings to websocket subscribers after
// each submission.
type leaderboardHub struct {
	mu   sync.Mutex
	subs map[chan []domain.LeaderboardEntry]Scope
}

func newLeaderboardHub() *leaderboardHub {
	return &leaderboardHub{subs: make(map[chan []domain.LeaderboardEntry]Scope)}
}

// SubscribeLeaderboard returns a channel that receives standings for the scope
// whenever a matching attempt is submitted, starting with the current snapshot.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *QuizService) SubscribeLeaderboard(ctx context.Context, scope Scope) (<-chan []domain.LeaderboardEntry, func(), error) {
	initial, err := s.Leaderboard(ctx, scope, DefaultLeaderboardLimit)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan []domain.LeaderboardEntry, 8)
	s.hub.mu.Lock()
	s.hub.subs[ch] = scope
	s.hub.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.hub.mu.Lock()
		if _, ok := s.hub.subs[ch]; ok {
			delete(s.hub.subs, ch)
			close(ch)
		}
		s.hub.mu.Unlock()
	}
	return ch, cancel, nil
}

// broadcast recomputes standings for every subscriber whose scope covers the
// new attempt. Slow subscribers have their stale snapshot replaced rather than
// blocking the submitter.
func (s *QuizService) broadcast(ctx context.Context, attempt domain.Attempt) {
	s.hub.mu.Lock()
	targets := make(map[chan []domain.LeaderboardEntry]Scope)
	for ch, scope := range s.hub.subs {
		if scope.Matches(attempt) {
			targets[ch] = scope
		}
	}
	s.hub.mu.Unlock()

	if len(targets) == 0 {
		return
	}

	// Standings differ per scope only through the attempt filter, so compute
	// once per distinct scope.
	byScope := make(map[Scope][]domain.LeaderboardEntry)
	for _, scope := range targets {
		if _, ok := byScope[scope]; ok {
			continue
		}
		ranked, err := s.Leaderboard(ctx, scope, DefaultLeaderboardLimit)
		if err != nil {
			log.Printf("leaderboard broadcast: %v", err)
			return
		}
		byScope[scope] = ranked
	}

	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	for ch, scope := range targets {
		if _, still := s.hub.subs[ch]; !still {
			continue
		}
		ranked := byScope[scope]
		select {
		case ch <- ranked:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- ranked
		}
	}
}
