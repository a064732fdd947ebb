package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-now/internal/config"
)

func runLookup(t *testing.T, handler http.HandlerFunc, args ...string) (string, error) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv(config.KeyAPIKey, "test-key")
	t.Setenv(config.KeyBaseURL, srv.URL+"/data/2.5/weather")
	t.Setenv(config.KeyLogLevel, "error")

	root := newRootCommand(config.New())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"lookup"}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestLookupPrintsCard(t *testing.T) {
	var gotQuery string
	out, err := runLookup(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`{"name":"New York","sys":{"country":"US"},"main":{"temp":21.5,"humidity":40},"visibility":16090,"weather":[{"description":"few clouds","icon":"02d"}]}`))
	}, "New", "York")
	require.NoError(t, err)

	assert.Equal(t, "New York", gotQuery)
	assert.Contains(t, out, "New York, US")
	assert.Contains(t, out, "22°C")
	assert.Contains(t, out, "40%")
	assert.Contains(t, out, "10.0")
	assert.Contains(t, out, "few clouds")
}

func TestLookupReportsFailure(t *testing.T) {
	out, err := runLookup(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "Paris")
	require.Error(t, err)
	assert.Equal(t, "API key error.", err.Error())
	assert.Contains(t, out, "API key error.")
}

func TestLookupRejectsBlankCity(t *testing.T) {
	_, err := runLookup(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called for a blank city")
	}, "  ")
	require.Error(t, err)
}
