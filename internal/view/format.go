package view

import (
	"math"
	"strconv"
	"strings"
)

// Placeholder is shown for any numeric field that is absent or unusable.
const Placeholder = "--"

// MetersPerMile is the divisor used for the visibility display.
const MetersPerMile = 1609

// usable treats nil, zero, NaN and ±Inf as "no value", mirroring a falsy check.
func usable(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	f := *v
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// roundHalfUp rounds to the nearest integer with .5 going towards +Inf.
func roundHalfUp(f float64) float64 {
	r := math.Floor(f)
	if f-r >= 0.5 {
		r++
	}
	if r == 0 {
		return 0 // avoid "-0"
	}
	return r
}

// FormatTemp renders a number rounded to the nearest integer, or Placeholder.
func FormatTemp(v *float64) string {
	f, ok := usable(v)
	if !ok {
		return Placeholder
	}
	return strconv.FormatFloat(roundHalfUp(f), 'f', 0, 64)
}

// FormatVisibility converts meters to miles with one decimal place, or Placeholder.
func FormatVisibility(meters *float64) string {
	f, ok := usable(meters)
	if !ok {
		return Placeholder
	}
	return strconv.FormatFloat(f/MetersPerMile, 'f', 1, 64)
}

// FormatLocation joins the location name and country code ("Paris, FR").
func FormatLocation(name string, country *string) string {
	if country == nil || strings.TrimSpace(*country) == "" {
		return name
	}
	if name == "" {
		return *country
	}
	return name + ", " + *country
}

// IconURL builds the CDN address for a provider icon id.
func IconURL(base, iconID string) string {
	if iconID == "" {
		return ""
	}
	if base == "" {
		base = DefaultIconBaseURL
	}
	return strings.TrimRight(base, "/") + "/" + iconID + "@4x.png"
}
