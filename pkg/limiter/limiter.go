package limiter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "limiter:"

const redisTimeout = 300 * time.Millisecond

// Limiter counts accepted bids per user within the current hour.
type Limiter struct {
	Redis *redis.Client
	Limit int
}

func (l *Limiter) Increment(ctx context.Context, username string) (int, error) {
	key := userCounterKey(username)

	var cancel context.CancelFunc
	ctx, cancel = context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	val, err := l.Redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("can't increment user's counter: %w", err)
	}

	if val == 1 {
		if err := l.Redis.Expire(ctx, key, time.Hour).Err(); err != nil {
			return 0, fmt.Errorf("can't set counter expiration: %w", err)
		}
	}

	return int(val), nil
}

func (l *Limiter) LimitExceeded(ctx context.Context, username string) (bool, error) {
	var cancel context.CancelFunc
	ctx, cancel = context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	c, err := l.Redis.Get(ctx, userCounterKey(username)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		return false, err
	}

	return c > l.Limit, nil
}

// userCounterKey builds the key holding the user's bid count for the current
// hour: the username concatenated to the timestamp rounded down to the hour.
func userCounterKey(username string) string {
	now := time.Now().Truncate(time.Hour).Unix()
	return cacheKeyPrefix + username + ":" + strconv.FormatInt(now, 10)
}
