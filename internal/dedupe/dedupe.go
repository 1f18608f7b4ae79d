// Package dedupe guards against re-delivering a submission whose
// idempotency key has already been processed.
package dedupe

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/luminasmiles/lead-relay/pkg/logging"
)

const keyPrefix = "lead-relay:submission:"

// Guard remembers recently processed submission ids in Redis. A nil Guard
// treats every submission as first-seen.
type Guard struct {
	client *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// New creates a guard. ttl bounds how long a submission id is remembered.
func New(client *redis.Client, ttl time.Duration, logger *logging.Logger) *Guard {
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Guard{client: client, ttl: ttl, logger: logger}
}

// FirstSeen atomically marks submissionID as processed and reports whether
// this is its first appearance. Redis being unreachable fails open: the
// submission is treated as new, since duplicate delivery is preferable to
// dropping a lead.
func (g *Guard) FirstSeen(ctx context.Context, submissionID string) bool {
	if g == nil || g.client == nil || submissionID == "" {
		return true
	}

	ok, err := g.client.SetNX(ctx, keyPrefix+submissionID, "1", g.ttl).Result()
	if err != nil {
		g.logger.Warn("dedupe guard unavailable, treating submission as new", "error", err, "submission_id", submissionID)
		return true
	}
	if !ok {
		g.logger.Info("duplicate submission id, skipping re-delivery", "submission_id", submissionID)
	}
	return ok
}
