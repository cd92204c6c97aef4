package people

import (
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client used for requests.
// If this is not provided, a zero http.Client is used, which has no timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithLogger sets the logger used for per-request debug output.
// By default nothing is logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(client *Client) {
		client.logger = logger
	}
}

// WithUserAgent overrides the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(client *Client) {
		client.userAgent = ua
	}
}

// WithRateLimit paces requests to at most r per second, allowing bursts of
// up to burst requests. Requests are delayed, never dropped or retried.
// A limit of zero or less disables pacing.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(client *Client) {
		if r <= 0 {
			client.rateLimiter = nil
			return
		}
		client.rateLimiter = newRateLimiter(r, burst)
	}
}
