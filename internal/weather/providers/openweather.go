package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/i474232898/weather-now/internal/weather"
)

// DefaultOpenWeatherURL is the current-conditions endpoint.
const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *breaker
}

// OpenWeatherOption customises an OpenWeatherProvider.
type OpenWeatherOption func(*OpenWeatherProvider)

// WithBaseURL points the provider at a different endpoint (e.g. a test server).
func WithBaseURL(u string) OpenWeatherOption {
	return func(p *OpenWeatherProvider) {
		if u != "" {
			p.baseURL = u
		}
	}
}

// WithBreaker replaces the default circuit breaker settings.
func WithBreaker(cfg BreakerConfig) OpenWeatherOption {
	return func(p *OpenWeatherProvider) {
		p.circuit = newBreaker(p.name, cfg)
	}
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts ...OpenWeatherOption) *OpenWeatherProvider {
	p := &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: DefaultOpenWeatherURL,
		client:  client,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.circuit == nil {
		p.circuit = newBreaker(p.name, DefaultBreakerConfig)
	}
	return p
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Fetch issues a single GET for query in metric units.
func (p *OpenWeatherProvider) Fetch(ctx context.Context, query string) (weather.Reading, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("q", query)
		values.Set("units", "metric")
		values.Set("appid", p.apiKey)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return weather.Reading{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return weather.Reading{}, weather.StatusError(resp.StatusCode)
	}

	var payload openWeatherPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, &weather.FetchError{
			Kind:       weather.KindUnknown,
			StatusCode: resp.StatusCode,
			Err:        errors.Wrap(err, "decode openweather response"),
		}
	}

	return payload.toReading(), nil
}

// openWeatherPayload mirrors the subset of the current weather schema we render.
// Pointers everywhere so a missing or null field at any level stays absent.
type openWeatherPayload struct {
	Name *string `json:"name"`
	Sys  *struct {
		Country *string `json:"country"`
	} `json:"sys"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		TempMin   *float64 `json:"temp_min"`
		TempMax   *float64 `json:"temp_max"`
		Humidity  *float64 `json:"humidity"`
		Pressure  *float64 `json:"pressure"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Visibility *float64 `json:"visibility"`
	Weather    []*struct {
		Description *string `json:"description"`
		Icon        *string `json:"icon"`
	} `json:"weather"`
}

func (p openWeatherPayload) toReading() weather.Reading {
	var r weather.Reading

	if p.Name != nil {
		r.LocationName = *p.Name
	}
	if p.Sys != nil {
		r.CountryCode = p.Sys.Country
	}
	if p.Main != nil {
		r.TemperatureC = p.Main.Temp
		r.FeelsLikeC = p.Main.FeelsLike
		r.TempMinC = p.Main.TempMin
		r.TempMaxC = p.Main.TempMax
		r.HumidityPct = p.Main.Humidity
		r.PressureHpa = p.Main.Pressure
	}
	if p.Wind != nil {
		r.WindSpeed = p.Wind.Speed
	}
	r.VisibilityMeters = p.Visibility

	if len(p.Weather) > 0 && p.Weather[0] != nil {
		w := p.Weather[0]
		cond := &weather.Condition{}
		if w.Description != nil {
			cond.Description = *w.Description
		}
		if w.Icon != nil {
			cond.IconID = *w.Icon
		}
		r.Condition = cond
	}

	return r
}
