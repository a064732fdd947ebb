package weather

// Condition is the provider's description of the current sky.
type Condition struct {
	Description string `json:"description"`
	IconID      string `json:"iconId"`
}

// Reading is the shaped result of one successful current-weather fetch.
// Every optional field is a pointer; nil means the provider did not send it.
type Reading struct {
	LocationName string  `json:"locationName"`
	CountryCode  *string `json:"countryCode,omitempty"`

	TemperatureC *float64 `json:"temperatureC,omitempty"`
	FeelsLikeC   *float64 `json:"feelsLikeC,omitempty"`
	TempMinC     *float64 `json:"tempMinC,omitempty"`
	TempMaxC     *float64 `json:"tempMaxC,omitempty"`

	HumidityPct      *float64 `json:"humidityPct,omitempty"`
	WindSpeed        *float64 `json:"windSpeed,omitempty"`
	PressureHpa      *float64 `json:"pressureHpa,omitempty"`
	VisibilityMeters *float64 `json:"visibilityMeters,omitempty"`

	Condition *Condition `json:"condition,omitempty"`
}
