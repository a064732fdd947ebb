package weather

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	reading Reading
	err     error
	panics  bool
}

func (s stubProvider) Name() string { return "stub" }

func (s stubProvider) Fetch(ctx context.Context, query string) (Reading, error) {
	if s.panics {
		panic("boom")
	}
	return s.reading, s.err
}

func TestStatusError(t *testing.T) {
	assert.Equal(t, KindNotFound, StatusError(404).Kind)
	assert.Equal(t, KindAuth, StatusError(401).Kind)
	assert.Equal(t, KindHTTP, StatusError(403).Kind)
	assert.Equal(t, KindHTTP, StatusError(503).Kind)
	assert.Equal(t, 503, StatusError(503).StatusCode)
}

func TestKindMessages(t *testing.T) {
	assert.Equal(t, "City not found. Please try another location.", KindNotFound.Message())
	assert.Equal(t, "API key error.", KindAuth.Message())
	assert.Equal(t, "Unable to fetch weather data.", KindHTTP.Message())
	assert.Equal(t, "Network error. Please check your connection.", KindNetwork.Message())
	assert.Equal(t, "Something went wrong.", KindUnknown.Message())
	assert.Equal(t, "Something went wrong.", ErrorKind("bogus").Message())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindAuth, KindOf(errors.Wrap(StatusError(401), "fetch")))
}

func TestServiceFetchPassesThrough(t *testing.T) {
	want := Reading{LocationName: "Paris"}
	svc := NewService(stubProvider{reading: want})

	got, err := svc.Fetch(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, "stub", svc.Name())
}

func TestServiceFetchClassifiesErrors(t *testing.T) {
	svc := NewService(stubProvider{err: StatusError(404)})
	_, err := svc.Fetch(context.Background(), "Nonexistentville")
	assert.Equal(t, KindNotFound, KindOf(err))

	svc = NewService(stubProvider{err: errors.New("weird")})
	_, err = svc.Fetch(context.Background(), "Paris")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KindUnknown, fe.Kind)
}

func TestServiceFetchRecoversPanic(t *testing.T) {
	svc := NewService(stubProvider{panics: true})
	r, err := svc.Fetch(context.Background(), "Paris")
	require.Error(t, err)
	assert.Equal(t, KindUnknown, KindOf(err))
	assert.ErrorContains(t, err, "provider panic: boom")
	assert.Equal(t, Reading{}, r)
}

func TestServiceWithoutProvider(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.Fetch(context.Background(), "Paris")
	assert.Equal(t, KindUnknown, KindOf(err))
	assert.Equal(t, "none", svc.Name())
}
