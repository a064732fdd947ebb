package weather

import (
	"context"
)

// Provider abstracts the current-conditions weather source.
// Fetch returns a *FetchError (possibly wrapped) for every failure.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, query string) (Reading, error)
}
