package models

import (
	"errors"
	"fmt"
)

// RelayStatus is the outcome of a single relay to the generative model.
type RelayStatus int

const (
	RelaySuccess RelayStatus = iota // the model returned non-empty text
	RelayEmpty                      // the call succeeded but produced no usable text
	RelayFailure                    // the call failed
)

// String returns the status name used in logs and metric labels.
func (s RelayStatus) String() string {
	switch s {
	case RelaySuccess:
		return "success"
	case RelayEmpty:
		return "empty"
	case RelayFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// FailureKind classifies a failed generative call.
type FailureKind int

const (
	FailureUnknown FailureKind = iota
	FailureTimeout
	FailureCanceled
	FailureNotFound
	FailureAuth
	FailureQuota
	FailureUnavailable
	FailureConfig
)

// String returns the kind name used in logs and metric labels.
func (k FailureKind) String() string {
	switch k {
	case FailureTimeout:
		return "timeout"
	case FailureCanceled:
		return "canceled"
	case FailureNotFound:
		return "not_found"
	case FailureAuth:
		return "auth"
	case FailureQuota:
		return "quota"
	case FailureUnavailable:
		return "unavailable"
	case FailureConfig:
		return "config"
	default:
		return "unknown"
	}
}

// FailureKindFromStatus maps an HTTP status code reported by a provider SDK to a FailureKind.
func FailureKindFromStatus(code int) FailureKind {
	switch {
	case code == 404:
		return FailureNotFound
	case code == 401 || code == 403:
		return FailureAuth
	case code == 429:
		return FailureQuota
	case code == 408 || code == 504:
		return FailureTimeout
	case code >= 500:
		return FailureUnavailable
	default:
		return FailureUnknown
	}
}

// GenerativeError is returned by generative providers when the upstream call fails.
type GenerativeError struct {
	Provider   string      // provider name, e.g. "gemini"
	Kind       FailureKind // structured classification of the failure
	StatusCode int         // HTTP status reported by the SDK, 0 if none
	Err        error       // underlying SDK error
}

func (e *GenerativeError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *GenerativeError) Unwrap() error {
	return e.Err
}

// ErrProviderNotConfigured is wrapped by providers that could not be initialised at startup.
var ErrProviderNotConfigured = errors.New("generative provider is not configured")

// RelayResult is what the relay hands back to the bot for one prompt.
type RelayResult struct {
	Status RelayStatus
	Text   string      // model reply, set only for RelaySuccess
	Kind   FailureKind // set only for RelayFailure
	Err    error       // set only for RelayFailure
}
