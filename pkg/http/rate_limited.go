package http

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitedClient wraps an HTTP client with a token-bucket limiter so one
// hot payment flow can't exhaust a connector's per-merchant rate allowance.
// Requests wait (honoring the request context) rather than fail.
type RateLimitedClient struct {
	inner   *http.Client
	limiter *rate.Limiter
}

// NewRateLimitedClient wraps client at the given requests-per-second with
// the given burst.
func NewRateLimitedClient(client *http.Client, rps float64, burst int) *RateLimitedClient {
	return &RateLimitedClient{
		inner:   client,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Do waits for limiter headroom, then issues the request.
func (c *RateLimitedClient) Do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return c.inner.Do(req)
}
