// Package view derives what a front end shows from a controller snapshot.
// Everything here is a pure function of its inputs.
package view

import (
	"github.com/i474232898/weather-now/internal/controller"
	"github.com/i474232898/weather-now/internal/weather"
)

// DefaultIconBaseURL is the provider's icon CDN.
const DefaultIconBaseURL = "https://openweathermap.org/img/wn"

const (
	WelcomeTitle    = "Welcome to Weather Now!"
	WelcomeSubtitle = "Enter a city name above to check the current weather"
	LoadingText     = "Fetching weather data..."
	InputHint       = "Search for a city..."
)

// Options carries the presentation settings that do not live in the controller.
type Options struct {
	IconBaseURL string
	// UnitLabel is rendered once next to the temperature ("C" for metric).
	UnitLabel string
}

// Welcome is the idle state.
type Welcome struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// Card is the loaded state, every value already formatted for display.
type Card struct {
	Location    string `json:"location"`
	Temperature string `json:"temperature"`
	UnitLabel   string `json:"unitLabel"`
	FeelsLike   string `json:"feelsLike"`
	TempMin     string `json:"tempMin"`
	TempMax     string `json:"tempMax"`
	Description string `json:"description,omitempty"`
	IconURL     string `json:"iconUrl,omitempty"`
	Humidity    string `json:"humidity"`
	Wind        string `json:"wind"`
	Pressure    string `json:"pressure"`
	Visibility  string `json:"visibility"`
}

// Page is everything a front end needs to draw the widget.
// Exactly one of Welcome, Loading, Error and Card is set.
type Page struct {
	Phase         string   `json:"phase"`
	Query         string   `json:"query"`
	InputDisabled bool     `json:"inputDisabled"`
	Welcome       *Welcome `json:"welcome,omitempty"`
	Loading       string   `json:"loading,omitempty"`
	Error         string   `json:"error,omitempty"`
	Card          *Card    `json:"card,omitempty"`
}

// Render maps a snapshot onto a Page.
func Render(s controller.Snapshot, opts Options) Page {
	p := Page{
		Phase: controller.PhaseName(s.Phase),
		Query: s.Query,
	}

	switch ph := s.Phase.(type) {
	case controller.Loading:
		p.InputDisabled = true
		p.Loading = LoadingText
	case controller.Failed:
		p.Error = ph.Message
	case controller.Loaded:
		card := NewCard(ph.Reading, opts)
		p.Card = &card
	default:
		p.Welcome = &Welcome{Title: WelcomeTitle, Subtitle: WelcomeSubtitle}
	}
	return p
}

// NewCard formats a reading. Absent fields show Placeholder.
func NewCard(r weather.Reading, opts Options) Card {
	c := Card{
		Location:    FormatLocation(r.LocationName, r.CountryCode),
		Temperature: FormatTemp(r.TemperatureC) + "°",
		UnitLabel:   opts.UnitLabel,
		FeelsLike:   FormatTemp(r.FeelsLikeC) + "°",
		TempMin:     FormatTemp(r.TempMinC) + "°",
		TempMax:     FormatTemp(r.TempMaxC) + "°",
		Humidity:    FormatTemp(r.HumidityPct) + "%",
		Wind:        FormatTemp(r.WindSpeed),
		Pressure:    FormatTemp(r.PressureHpa),
		Visibility:  FormatVisibility(r.VisibilityMeters),
	}
	if r.Condition != nil {
		c.Description = r.Condition.Description
		c.IconURL = IconURL(opts.IconBaseURL, r.Condition.IconID)
	}
	return c
}
