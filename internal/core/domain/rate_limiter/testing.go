package ratelimiter

import (
	"context"
	"sync"
)

type FakeRateLimiter struct {
	IsAllowed   bool
	CheckedKeys []string
	lock        sync.Mutex
}

func NewFakeRateLimiter(isAllowed bool) *FakeRateLimiter {
	return &FakeRateLimiter{IsAllowed: isAllowed}
}

func (rl *FakeRateLimiter) CheckLimit(ctx context.Context, key string, limit Limit) Result {
	rl.lock.Lock()
	defer rl.lock.Unlock()
	rl.CheckedKeys = append(rl.CheckedKeys, key)
	if rl.IsAllowed {
		return Allowed()
	}
	return NotAllowed()
}

// FakeCountingRateLimiter counts hits per key and enforces the limit value.
// The window never resets.
type FakeCountingRateLimiter struct {
	hits map[string]uint16
	lock sync.Mutex
}

func NewFakeCountingRateLimiter() *FakeCountingRateLimiter {
	return &FakeCountingRateLimiter{hits: make(map[string]uint16)}
}

func (rl *FakeCountingRateLimiter) CheckLimit(ctx context.Context, key string, limit Limit) Result {
	rl.lock.Lock()
	defer rl.lock.Unlock()
	rl.hits[key]++
	if rl.hits[key] > limit.Value {
		return NotAllowed()
	}
	return Allowed()
}
