package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultSubmissionTTL = 10 * time.Minute

// SubmissionGuard suppresses repeated public form submissions.
// Key format: submission:<action>:<target>:<email>
type SubmissionGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSubmissionGuard wraps client. A non-positive ttl falls back to
// DefaultSubmissionTTL.
func NewSubmissionGuard(client *redis.Client, ttl time.Duration) *SubmissionGuard {
	if ttl <= 0 {
		ttl = DefaultSubmissionTTL
	}
	return &SubmissionGuard{client: client, ttl: ttl}
}

// Claim atomically records key and reports whether it was free.
func (g *SubmissionGuard) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(key), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("submission claim: %w", err)
	}
	return ok, nil
}

// Release removes key so the same submission can be retried.
func (g *SubmissionGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.key(key)).Err(); err != nil {
		return fmt.Errorf("submission release: %w", err)
	}
	return nil
}

func (g *SubmissionGuard) key(k string) string {
	return "submission:" + k
}
