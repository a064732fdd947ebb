package weather

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Service fronts a single Provider: it logs each lookup and guarantees that
// every error it returns carries an ErrorKind.
type Service struct {
	provider Provider
}

// NewService creates a new Service.
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

func (s *Service) Name() string {
	if s.provider == nil {
		return "none"
	}
	return s.provider.Name()
}

// Fetch looks up current conditions for query. A provider panic is reported
// as a KindUnknown error instead of unwinding into the caller.
func (s *Service) Fetch(ctx context.Context, query string) (r Reading, err error) {
	if s.provider == nil {
		return Reading{}, &FetchError{Kind: KindUnknown, Err: errors.New("no weather provider configured")}
	}

	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			r = Reading{}
			err = &FetchError{Kind: KindUnknown, Err: errors.Errorf("provider panic: %v", rec)}
		}

		if err != nil {
			log.Warn().
				Err(err).
				Str("provider", s.provider.Name()).
				Str("query", query).
				Str("kind", string(KindOf(err))).
				Dur("elapsed", time.Since(start)).
				Msg("weather lookup failed")
			return
		}
		log.Debug().
			Str("provider", s.provider.Name()).
			Str("query", query).
			Str("location", r.LocationName).
			Dur("elapsed", time.Since(start)).
			Msg("weather lookup succeeded")
	}()

	r, err = s.provider.Fetch(ctx, query)
	if err != nil {
		var fe *FetchError
		if !errors.As(err, &fe) {
			err = &FetchError{Kind: KindUnknown, Err: errors.Wrapf(err, "provider %s", s.provider.Name())}
		}
		return Reading{}, err
	}
	return r, nil
}
