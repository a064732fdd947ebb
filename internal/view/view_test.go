package view

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-now/internal/controller"
	"github.com/i474232898/weather-now/internal/weather"
)

func ptr[T any](v T) *T { return &v }

func TestFormatTemp(t *testing.T) {
	cases := []struct {
		in   *float64
		want string
	}{
		{nil, "--"},
		{ptr(0.0), "--"},
		{ptr(math.NaN()), "--"},
		{ptr(math.Inf(1)), "--"},
		{ptr(21.4), "21"},
		{ptr(21.5), "22"},
		{ptr(18.7), "19"},
		{ptr(-2.5), "-2"},
		{ptr(-2.6), "-3"},
		{ptr(-0.4), "0"},
		{ptr(1012.0), "1012"},
		{ptr(0.49999999999999994), "0"},
		{ptr(4503599627370497.0), "4503599627370497"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatTemp(tc.in))
	}
}

func TestFormatVisibility(t *testing.T) {
	assert.Equal(t, "6.2", FormatVisibility(ptr(10000.0)))
	assert.Equal(t, "0.6", FormatVisibility(ptr(1000.0)))
	assert.Equal(t, "--", FormatVisibility(nil))
	assert.Equal(t, "--", FormatVisibility(ptr(0.0)))
}

func TestFormatLocation(t *testing.T) {
	assert.Equal(t, "Paris, FR", FormatLocation("Paris", ptr("FR")))
	assert.Equal(t, "Paris", FormatLocation("Paris", nil))
	assert.Equal(t, "Paris", FormatLocation("Paris", ptr("")))
	assert.Equal(t, "FR", FormatLocation("", ptr("FR")))
}

func TestIconURL(t *testing.T) {
	assert.Equal(t, "https://openweathermap.org/img/wn/01d@4x.png", IconURL("", "01d"))
	assert.Equal(t, "https://cdn.example/icons/10n@4x.png", IconURL("https://cdn.example/icons/", "10n"))
	assert.Equal(t, "", IconURL("https://cdn.example", ""))
}

func TestRenderIdle(t *testing.T) {
	p := Render(controller.Snapshot{Query: "Par", Phase: controller.Idle{}}, Options{})
	assert.Equal(t, "idle", p.Phase)
	assert.Equal(t, "Par", p.Query)
	assert.False(t, p.InputDisabled)
	require.NotNil(t, p.Welcome)
	assert.Equal(t, WelcomeTitle, p.Welcome.Title)
	assert.Nil(t, p.Card)
	assert.Empty(t, p.Error)
	assert.Empty(t, p.Loading)
}

func TestRenderLoadingDisablesInput(t *testing.T) {
	p := Render(controller.Snapshot{Query: "Paris", Phase: controller.Loading{Query: "Paris"}}, Options{})
	assert.Equal(t, "loading", p.Phase)
	assert.True(t, p.InputDisabled)
	assert.Equal(t, LoadingText, p.Loading)
	assert.Nil(t, p.Welcome)
	assert.Nil(t, p.Card)
}

func TestRenderFailedHasNoCard(t *testing.T) {
	p := Render(controller.Snapshot{
		Query: "Nonexistentville",
		Phase: controller.Failed{Kind: weather.KindNotFound, Message: weather.MsgNotFound},
	}, Options{})
	assert.Equal(t, "error", p.Phase)
	assert.Equal(t, "City not found. Please try another location.", p.Error)
	assert.Nil(t, p.Card)
	assert.Nil(t, p.Welcome)
	assert.False(t, p.InputDisabled)
}

func TestRenderLoadedParis(t *testing.T) {
	reading := weather.Reading{
		LocationName:     "Paris",
		CountryCode:      ptr("FR"),
		TemperatureC:     ptr(18.7),
		HumidityPct:      ptr(60.0),
		PressureHpa:      ptr(1012.0),
		WindSpeed:        ptr(3.4),
		VisibilityMeters: ptr(10000.0),
		Condition:        &weather.Condition{Description: "clear sky", IconID: "01d"},
	}

	p := Render(controller.Snapshot{Phase: controller.Loaded{Reading: reading}}, Options{UnitLabel: "C"})
	require.NotNil(t, p.Card)
	assert.Equal(t, "loaded", p.Phase)
	assert.Equal(t, "", p.Query)

	c := p.Card
	assert.Equal(t, "Paris, FR", c.Location)
	assert.Equal(t, "19°", c.Temperature)
	assert.Equal(t, "C", c.UnitLabel)
	assert.Equal(t, "60%", c.Humidity)
	assert.Equal(t, "3", c.Wind)
	assert.Equal(t, "1012", c.Pressure)
	assert.Equal(t, "6.2", c.Visibility)
	assert.Equal(t, "clear sky", c.Description)
	assert.Equal(t, "https://openweathermap.org/img/wn/01d@4x.png", c.IconURL)

	// Fields missing from the payload fall back independently.
	assert.Equal(t, "--°", c.FeelsLike)
	assert.Equal(t, "--°", c.TempMin)
	assert.Equal(t, "--°", c.TempMax)
}

func TestNewCardWithoutCondition(t *testing.T) {
	c := NewCard(weather.Reading{LocationName: "Nowhere"}, Options{})
	assert.Equal(t, "Nowhere", c.Location)
	assert.Equal(t, "--°", c.Temperature)
	assert.Equal(t, "--%", c.Humidity)
	assert.Equal(t, "--", c.Wind)
	assert.Equal(t, "--", c.Pressure)
	assert.Equal(t, "--", c.Visibility)
	assert.Empty(t, c.Description)
	assert.Empty(t, c.IconURL)
}
