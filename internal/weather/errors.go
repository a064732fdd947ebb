package weather

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies a failed fetch. Every kind maps to one user-facing message.
type ErrorKind string

const (
	KindUnknown  ErrorKind = "unknown"
	KindNotFound ErrorKind = "not_found"
	KindAuth     ErrorKind = "auth"
	KindHTTP     ErrorKind = "http"
	KindNetwork  ErrorKind = "network"
)

const (
	MsgNotFound = "City not found. Please try another location."
	MsgAuth     = "API key error."
	MsgHTTP     = "Unable to fetch weather data."
	MsgNetwork  = "Network error. Please check your connection."
	MsgUnknown  = "Something went wrong."
)

// Message returns the banner text shown to the user for this kind.
func (k ErrorKind) Message() string {
	switch k {
	case KindNotFound:
		return MsgNotFound
	case KindAuth:
		return MsgAuth
	case KindHTTP:
		return MsgHTTP
	case KindNetwork:
		return MsgNetwork
	default:
		return MsgUnknown
	}
}

// FetchError is returned by providers for every failed fetch.
type FetchError struct {
	Kind       ErrorKind
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	msg := string(e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

// StatusError classifies a non-2xx HTTP status.
func StatusError(status int) *FetchError {
	kind := KindHTTP
	switch status {
	case 404:
		kind = KindNotFound
	case 401:
		kind = KindAuth
	}
	return &FetchError{Kind: kind, StatusCode: status}
}

// KindOf extracts the ErrorKind from err. Errors that are not FetchErrors are KindUnknown.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}
