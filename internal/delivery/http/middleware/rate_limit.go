package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"dashboard-client/pkg/logger"
	"dashboard-client/pkg/metrics"
	"dashboard-client/pkg/utils"

	"golang.org/x/time/rate"
)

type caller struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles the profile service per caller. Behind AuthMiddleware
// the caller is the token's account, so one account shares a single bucket
// across every address it calls from. Elsewhere it is the client IP.
type RateLimiter struct {
	mu        sync.Mutex
	callers   map[string]*caller
	limit     rate.Limit
	burst     int
	sweep     time.Duration
	idleTTL   time.Duration
	stopSweep context.CancelFunc
}

// NewRateLimiter allows limit requests per second with the given burst per
// caller. Callers idle for idleTTL are forgotten every sweep.
func NewRateLimiter(ctx context.Context, limit rate.Limit, burst int, sweep, idleTTL time.Duration) *RateLimiter {
	rl := &RateLimiter{
		callers: make(map[string]*caller),
		limit:   limit,
		burst:   burst,
		sweep:   sweep,
		idleTTL: idleTTL,
	}
	ctx, rl.stopSweep = context.WithCancel(ctx)
	go rl.sweepLoop(ctx)
	return rl
}

// Middleware answers over-limit requests with 429, a Retry-After in whole
// seconds and the service's {success:false} envelope.
func (rl *RateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, scope := callerKey(r)

			wait, ok := rl.admit(key)
			if !ok {
				metrics.IncrementMockAPIRateLimited(scope)
				logger.WithContext(r.Context()).Warn().
					Str("caller", key).
					Dur("retry_after", wait).
					Msg("Rate limited")
				w.Header().Set("Retry-After", strconv.Itoa(retrySeconds(wait)))
				utils.WriteError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// callerKey prefers the authenticated account over the address.
func callerKey(r *http.Request) (key, scope string) {
	if id, ok := AccountID(r.Context()); ok {
		return "account:" + id, "account"
	}
	return "ip:" + getClientIP(r), "ip"
}

// admit takes a token for key, or reports how long until one is free.
func (rl *RateLimiter) admit(key string) (time.Duration, bool) {
	res := rl.limiterFor(key).Reserve()
	if !res.OK() {
		return time.Second, false
	}
	if wait := res.Delay(); wait > 0 {
		res.Cancel()
		return wait, false
	}
	return 0, true
}

func retrySeconds(wait time.Duration) int {
	return max(1, int(math.Ceil(wait.Seconds())))
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.callers[key]
	if !ok {
		c = &caller{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.callers[key] = c
	}
	c.lastSeen = time.Now()
	return c.limiter
}

func (rl *RateLimiter) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(rl.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.forgetIdle()
		case <-ctx.Done():
			return
		}
	}
}

func (rl *RateLimiter) forgetIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, c := range rl.callers {
		if time.Since(c.lastSeen) > rl.idleTTL {
			delete(rl.callers, key)
		}
	}
}

// Shutdown stops the sweep goroutine.
func (rl *RateLimiter) Shutdown() {
	rl.stopSweep()
}

func (rl *RateLimiter) callerCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.callers)
}
