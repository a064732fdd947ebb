package controller

import "github.com/i474232898/weather-now/internal/weather"

// Phase is the state of the most recent or ongoing request. Exactly one of
// Idle, Loading, Loaded or Failed holds at a time.
type Phase interface {
	isPhase()
}

// Idle means nothing has been submitted yet.
type Idle struct{}

// Loading means a fetch is in flight.
type Loading struct {
	Query string
}

// Loaded holds the reading from the most recent successful fetch.
type Loaded struct {
	Reading weather.Reading
}

// Failed holds the banner for the most recent failed fetch.
type Failed struct {
	Kind    weather.ErrorKind
	Message string
}

func (Idle) isPhase()    {}
func (Loading) isPhase() {}
func (Loaded) isPhase()  {}
func (Failed) isPhase()  {}

// PhaseName is a stable name for p, used in JSON and logs.
func PhaseName(p Phase) string {
	switch p.(type) {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "error"
	default:
		return "idle"
	}
}
