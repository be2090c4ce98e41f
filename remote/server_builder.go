package remote

import (
	"time"

	"github.com/Carmen-Shannon/oxy-globe/predict"
	"golang.org/x/time/rate"
)

const (
	// DefaultBroadcastInterval is the period between state broadcasts.
	DefaultBroadcastInterval = 100 * time.Millisecond

	// DefaultWriteTimeout bounds a single websocket write.
	DefaultWriteTimeout = 2 * time.Second

	// DefaultMessageRate is the sustained inbound messages per second allowed per client.
	DefaultMessageRate = 20.0

	// DefaultMessageBurst is the inbound burst allowed per client.
	DefaultMessageBurst = 10
)

// ServerBuilderOption is a functional option for configuring a Server.
type ServerBuilderOption func(*server)

// WithPredictor enables the search and reset messages and adds search state to broadcasts.
func WithPredictor(p predict.Predictor) ServerBuilderOption {
	return func(s *server) {
		s.predictor = p
	}
}

// WithBroadcastInterval sets the period between state broadcasts.
func WithBroadcastInterval(interval time.Duration) ServerBuilderOption {
	return func(s *server) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithWriteTimeout bounds each websocket write.
func WithWriteTimeout(timeout time.Duration) ServerBuilderOption {
	return func(s *server) {
		if timeout > 0 {
			s.writeTimeout = timeout
		}
	}
}

// WithMessageRate limits inbound messages per client.
//
// Parameters:
//   - rps: sustained messages per second
//   - burst: messages allowed back to back
//
// Returns:
//   - ServerBuilderOption: functional option to set the per-client limit
func WithMessageRate(rps float64, burst int) ServerBuilderOption {
	return func(s *server) {
		if rps > 0 {
			s.messageRate = rate.Limit(rps)
		}
		if burst > 0 {
			s.messageBurst = burst
		}
	}
}

// WithLogging toggles the [Remote] log lines.
func WithLogging(enabled bool) ServerBuilderOption {
	return func(s *server) {
		s.logging = enabled
	}
}
