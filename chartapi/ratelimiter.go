// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartapi

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

const minWaitTime = 250 * time.Millisecond

// RateLimiter throttles backend polls using the x-ratelimit response
// headers, falling back to Retry-After on throttle responses.
// The limit and remaining counter are packed into a single atomic
// value, limit in the upper 32 bits.
type RateLimiter struct {
	limitCounter  int64
	resetTime     time.Time
	resetTimeLock sync.Mutex
}

// NewRateLimiter seeds the budget with the configured requests per
// second; response headers take over once the backend supplies them.
func NewRateLimiter(perSecond int) *RateLimiter {
	if perSecond < 1 {
		perSecond = 1
	}
	r := &RateLimiter{}
	r.setLimitCount(int32(perSecond), int32(perSecond))
	return r
}

func (r *RateLimiter) setLimitCount(limit int32, count int32) {
	atomic.StoreInt64(&r.limitCounter, int64(limit)<<32|int64(count))
}

func (r *RateLimiter) limitCount() (int32, int32) {
	v := atomic.LoadInt64(&r.limitCounter)
	return int32(v >> 32), int32(v & 0xffffffff)
}

func (r *RateLimiter) getResetTime() time.Time {
	r.resetTimeLock.Lock()
	defer r.resetTimeLock.Unlock()
	return r.resetTime
}

func (r *RateLimiter) setResetTime(t time.Time) {
	r.resetTimeLock.Lock()
	defer r.resetTimeLock.Unlock()
	r.resetTime = t
}

// Wait blocks until a request slot is available or ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		for {
			v := atomic.LoadInt64(&r.limitCounter)
			count := int32(v & 0xffffffff)
			if count <= 0 {
				break
			}
			if atomic.CompareAndSwapInt64(&r.limitCounter, v, v-1) {
				return nil
			}
		}
		reset := r.getResetTime()
		now := time.Now()
		if !reset.After(now) {
			// reset passed, restore the full budget
			limit, _ := r.limitCount()
			r.setLimitCount(limit, limit)
			continue
		}
		wait := reset.Sub(now)
		if wait > minWaitTime {
			wait = minWaitTime
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// HandleResponseHeaders updates the budget from rate limit headers.
// On 429 the Retry-After header sets the reset time and the budget
// drops to zero until then.
func (r *RateLimiter) HandleResponseHeaders(resp *http.Response) {
	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter, err := strconv.Atoi(resp.Header.Get("Retry-After"))
		if err != nil || retryAfter <= 0 {
			retryAfter = 1
		}
		r.setResetTime(time.Now().Add(time.Duration(retryAfter) * time.Second))
		limit, _ := r.limitCount()
		r.setLimitCount(limit, 0)
		return
	}
	limitHeader := resp.Header.Get("x-ratelimit-limit")
	remainingHeader := resp.Header.Get("x-ratelimit-remaining")
	if limitHeader == "" || remainingHeader == "" {
		return
	}
	limit, err := strconv.ParseInt(limitHeader, 10, 32)
	if err != nil || limit <= 0 {
		return
	}
	remaining, err := strconv.ParseInt(remainingHeader, 10, 32)
	if err != nil || remaining < 0 {
		return
	}
	r.setLimitCount(int32(limit), int32(remaining))
	if reset, err := strconv.ParseInt(resp.Header.Get("x-ratelimit-reset"), 10, 64); err == nil {
		r.setResetTime(time.Unix(reset, 0))
	}
}

// Remaining returns the number of request slots left in the window.
func (r *RateLimiter) Remaining() int {
	_, count := r.limitCount()
	if count < 0 {
		count = 0
	}
	return int(count)
}
