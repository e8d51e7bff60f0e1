package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultLimit  = 30
	defaultWindow = time.Minute
	keyPrefix     = "ratelimit:users:"
)

// WindowLimiter is a fixed-window counter shared by every API replica.
// Key format: ratelimit:users:<client key>
type WindowLimiter struct {
	client redis.Scripter
	limit  int
	window time.Duration
}

// NewWindowLimiter allows limit hits per window for each key. Non-positive
// values fall back to 30 per minute.
func NewWindowLimiter(client redis.Scripter, limit int, window time.Duration) *WindowLimiter {
	if limit <= 0 {
		limit = defaultLimit
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &WindowLimiter{client: client, limit: limit, window: window}
}

var allowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
local ttl = redis.call("PTTL", KEYS[1])
if current > tonumber(ARGV[1]) then
  return {0, ttl}
end
return {1, ttl}
`)

var errUnexpectedReply = errors.New("unexpected rate limit script reply")

// Allow records a hit for key and reports whether it is within the limit,
// along with the time left in the current window.
func (l *WindowLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	if l.client == nil {
		return true, 0, nil
	}

	res, err := allowScript.Run(ctx, l.client, []string{keyPrefix + key}, l.limit, l.window.Milliseconds()).Result()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit: %w", err)
	}
	return parseAllowReply(res)
}

func parseAllowReply(res any) (bool, time.Duration, error) {
	values, ok := res.([]any)
	if !ok || len(values) != 2 {
		return false, 0, errUnexpectedReply
	}
	allowed, ok1 := values[0].(int64)
	ttlMs, ok2 := values[1].(int64)
	if !ok1 || !ok2 {
		return false, 0, errUnexpectedReply
	}
	if ttlMs < 0 {
		ttlMs = 0
	}
	return allowed == 1, time.Duration(ttlMs) * time.Millisecond, nil
}
