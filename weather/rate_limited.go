package weather

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

type rateLimitedProvider struct {
	provider Provider
	limiter  *rate.Limiter
	name     string
}

var _ Provider = &rateLimitedProvider{}

// NewRateLimitedProvider wraps a provider so lookups never exceed rps requests per second.
//
// Parameters:
//   - provider: the provider to forward to
//   - rps: the sustained request rate, fractional values allowed
//   - burst: the number of requests allowed back to back
//
// Returns:
//   - Provider: the rate limited provider
func NewRateLimitedProvider(provider Provider, rps float64, burst int) Provider {
	if burst < 1 {
		burst = 1
	}
	return &rateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

func (r *rateLimitedProvider) Name() string {
	return r.name
}

func (r *rateLimitedProvider) Current(ctx context.Context, location string) (Report, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return Report{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.Current(ctx, location)
}
