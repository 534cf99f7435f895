// Package redis caches leaderboard snapshots so hot scopes don't recompute
// standings on every request.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"adaptive-quiz-service/internal/app"
	"adaptive-quiz-service/internal/domain"
)

// LeaderboardCache caches ranked standings in Redis (JSON per scope) and falls
// back to the underlying provider on a miss. Entries expire after a jittered
// TTL; staleness within the TTL is accepted.
type LeaderboardCache struct {
	client   *redis.Client
	provider app.LeaderboardProvider
	ttl      time.Duration
	sf       singleflight.Group
	rnd      *rand.Rand
}

func NewLeaderboardCache(client *redis.Client, provider app.LeaderboardProvider, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{
		client:   client,
		provider: provider,
		ttl:      ttl,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *LeaderboardCache) Leaderboard(ctx context.Context, scope app.Scope, limit int) ([]domain.LeaderboardEntry, error) {
	key := c.key(scope, limit)

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var entries []domain.LeaderboardEntry
		if err := json.Unmarshal(raw, &entries); err == nil {
			return entries, nil
		}
		// Corrupt payload: fall through and recompute.
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check in case another goroutine filled the key.
		if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
			var entries []domain.LeaderboardEntry
			if err := json.Unmarshal(raw, &entries); err == nil {
				return entries, nil
			}
		}

		entries, err := c.provider.Leaderboard(ctx, scope, limit)
		if err != nil {
			return nil, err
		}

		if raw, err := json.Marshal(entries); err == nil {
			// best-effort cache fill
			_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.LeaderboardEntry), nil
}

// Invalidate drops cached snapshots whose scope covers the attempt, so the
// next read after a submission sees fresh standings.
func (c *LeaderboardCache) Invalidate(ctx context.Context, attempt domain.Attempt) error {
	pattern := "leaderboard:*"
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		if scopeOfKey(iter.Val()).Matches(attempt) {
			keys = append(keys, iter.Val())
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan leaderboard keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *LeaderboardCache) key(scope app.Scope, limit int) string {
	subject := scope.Subject
	if subject == "" {
		subject = "*all*"
	}
	return fmt.Sprintf("leaderboard:%s:%d:%d", subject, scope.Grade, limit)
}

// scopeOfKey parses "leaderboard:{subject}:{grade}:{limit}". Splitting from the
// right keeps subjects containing colons intact.
func scopeOfKey(key string) app.Scope {
	rest := strings.TrimPrefix(key, "leaderboard:")
	rest, _ = splitRight(rest) // drop limit
	rest, gradeStr := splitRight(rest)
	grade, _ := strconv.Atoi(gradeStr)
	subject := rest
	if subject == "*all*" {
		subject = ""
	}
	return app.Scope{Subject: subject, Grade: grade}
}

func splitRight(s string) (left, right string) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}

func (c *LeaderboardCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
