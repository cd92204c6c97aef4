package people

import (
	"context"

	"golang.org/x/time/rate"
)

// rateLimiter paces outgoing requests with a local token bucket.
// A nil *rateLimiter never blocks, which is the default: the client
// does not throttle unless WithRateLimit is used.
type rateLimiter struct {
	limiter *rate.Limiter
}

// newRateLimiter returns a limiter allowing r requests per second with the
// given burst. A non-positive burst is raised to 1.
func newRateLimiter(r rate.Limit, burst int) *rateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{limiter: rate.NewLimiter(r, burst)}
}

// Wait blocks until a token is available or the context is canceled.
func (rl *rateLimiter) Wait(ctx context.Context) error {
	if rl == nil {
		return nil
	}
	return rl.limiter.Wait(ctx)
}
