package providers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-now/internal/weather"
)

// BreakerConfig controls when the outbound circuit opens.
type BreakerConfig struct {
	// ConsecutiveFailures trips the breaker; only transport errors and 5xx count.
	ConsecutiveFailures uint32
	// Cooldown is how long the breaker stays open before probing again.
	Cooldown time.Duration
}

// DefaultBreakerConfig is used when a provider is built without explicit settings.
var DefaultBreakerConfig = BreakerConfig{
	ConsecutiveFailures: 5,
	Cooldown:            30 * time.Second,
}

var (
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// breaker wraps a gobreaker circuit and remembers the kind of the last
// counted failure, so an open circuit reports the failure that tripped it.
type breaker struct {
	cb *gobreaker.CircuitBreaker

	mu       sync.Mutex
	lastKind weather.ErrorKind
}

func newBreaker(name string, cfg BreakerConfig) *breaker {
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = DefaultBreakerConfig.ConsecutiveFailures
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultBreakerConfig.Cooldown
	}
	return &breaker{
		lastKind: weather.KindHTTP,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     cfg.Cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
			},
		}),
	}
}

func (b *breaker) recordFailure(kind weather.ErrorKind) {
	b.mu.Lock()
	b.lastKind = kind
	b.mu.Unlock()
}

func (b *breaker) tripKind() weather.ErrorKind {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastKind
}

// doRequest executes exactly one attempt of the request through the circuit breaker.
// A 2xx or 4xx response is returned to the caller with its body open.
// Transport failures become KindNetwork and 5xx become KindHTTP. An open
// breaker fails fast with the kind of the failure that tripped it.
func doRequest(
	ctx context.Context,
	client *http.Client,
	b *breaker,
	buildRequest func(ctx context.Context) (*http.Request, error),
) (*http.Response, error) {
	if client == nil {
		return nil, &weather.FetchError{Kind: weather.KindUnknown, Err: errNoHTTPClient}
	}

	req, err := buildRequest(ctx)
	if err != nil {
		return nil, &weather.FetchError{Kind: weather.KindUnknown, Err: errors.Wrap(err, "build request")}
	}

	result, err := b.cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			b.recordFailure(weather.KindNetwork)
			return nil, &weather.FetchError{Kind: weather.KindNetwork, Err: execErr}
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			b.recordFailure(weather.KindHTTP)
			return nil, weather.StatusError(resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &weather.FetchError{Kind: b.tripKind(), Err: errors.Wrap(errCircuitOpen, err.Error())}
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, &weather.FetchError{Kind: weather.KindUnknown, Err: errors.New("unexpected result type from circuit breaker")}
	}
	return resp, nil
}
