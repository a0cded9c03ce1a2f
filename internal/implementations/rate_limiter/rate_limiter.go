package ratelimiter

import (
	"context"
	"errors"
	e "fintrack/internal/core/domain/errors"
	"fintrack/internal/core/domain/logging"
	ratelimiter "fintrack/internal/core/domain/rate_limiter"
	"fmt"
	"time"

	"github.com/go-redis/redis/v9"
)

// Redis counts hits per fixed window. It fails open on Redis errors
// so an unavailable cache does not block password resets.
type Redis struct {
	redisClient *redis.Client
	log         logging.Logger
	now         func() time.Time
}

func NewRedis(redisClient *redis.Client, log logging.Logger, now func() time.Time) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Redis{redisClient: redisClient, log: log, now: now}
}

func (r *Redis) CheckLimit(ctx context.Context, key string, limit ratelimiter.Limit) ratelimiter.Result {
	k, d := windowKey(key, limit.Interval, r.now())

	cmds, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, d)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return ratelimiter.NotAllowed()
	}
	if err != nil {
		r.log.Error(ctx, "Could not check rate limit due to Redis client error.", logging.Entry("err", err))
		return ratelimiter.Allowed()
	}
	intCmd := cmds[0].(*redis.IntCmd)
	if intCmd.Val() > int64(limit.Value) {
		return ratelimiter.NotAllowed()
	}
	return ratelimiter.Allowed()
}

func windowKey(key string, interval ratelimiter.Interval, now time.Time) (string, time.Duration) {
	switch interval {
	case ratelimiter.Hour:
		return fmt.Sprintf("%s::h%d", key, now.Hour()), time.Hour
	case ratelimiter.Minute:
		return fmt.Sprintf("%s::m%d", key, now.Minute()), time.Minute
	default:
		panic("invalid rate limiting interval")
	}
}
