package predict

import (
	"math/rand/v2"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/weather"
)

const (
	// DefaultWorkers is the number of concurrent lookups.
	DefaultWorkers = 2

	// DefaultQueueSize bounds queued lookups before Submit blocks.
	DefaultQueueSize = 16

	// DefaultLookupTimeout bounds one provider lookup.
	DefaultLookupTimeout = 15 * time.Second

	// DefaultMarkerDelay is the pause between a result arriving and the marker appearing.
	DefaultMarkerDelay = time.Second
)

// PredictorBuilderOption is a functional option for configuring a Predictor.
type PredictorBuilderOption func(*predictor)

// WithCities replaces the landing cities. An empty list is ignored.
func WithCities(cities []weather.City) PredictorBuilderOption {
	return func(p *predictor) {
		if len(cities) > 0 {
			p.cities = cities
		}
	}
}

// WithRand sets the source used to pick a landing city for unknown queries.
func WithRand(rng *rand.Rand) PredictorBuilderOption {
	return func(p *predictor) {
		p.rng = rng
	}
}

// WithWorkers sets the worker pool size and queue length.
//
// Parameters:
//   - workers: concurrent lookups, at least 1
//   - queueSize: buffered lookups before Submit blocks
//
// Returns:
//   - PredictorBuilderOption: functional option to size the pool
func WithWorkers(workers, queueSize int) PredictorBuilderOption {
	return func(p *predictor) {
		if workers > 0 {
			p.workers = workers
		}
		if queueSize >= 0 {
			p.queueSize = queueSize
		}
	}
}

// WithLookupTimeout bounds each provider lookup.
func WithLookupTimeout(timeout time.Duration) PredictorBuilderOption {
	return func(p *predictor) {
		if timeout > 0 {
			p.lookupTimeout = timeout
		}
	}
}

// WithMarkerDelay sets the pause before the marker is revealed. Zero reveals it with the result.
func WithMarkerDelay(delay time.Duration) PredictorBuilderOption {
	return func(p *predictor) {
		if delay >= 0 {
			p.markerDelay = delay
		}
	}
}

// WithLogging toggles the [Predict] log lines.
func WithLogging(enabled bool) PredictorBuilderOption {
	return func(p *predictor) {
		p.logging = enabled
	}
}
