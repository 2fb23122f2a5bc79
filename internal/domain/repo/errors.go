package repo

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a fetch failed
type FailureKind string

const (
	FailureNetwork FailureKind = "network"
	FailureStatus  FailureKind = "status"
	FailureDecode  FailureKind = "decode"
)

// FetchFailure is the single error kind for requests to the repository API.
// Every kind is handled the same way; the kind only feeds diagnostics.
type FetchFailure struct {
	Kind       FailureKind
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *FetchFailure) Error() string {
	switch {
	case e.Kind == FailureStatus && e.Err != nil:
		return fmt.Sprintf("fetch %s: status %d (%v)", e.Endpoint, e.StatusCode, e.Err)
	case e.Kind == FailureStatus:
		return fmt.Sprintf("fetch %s: status %d", e.Endpoint, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("fetch %s: %s error (%v)", e.Endpoint, e.Kind, e.Err)
	default:
		return fmt.Sprintf("fetch %s: %s error", e.Endpoint, e.Kind)
	}
}

func (e *FetchFailure) Unwrap() error {
	return e.Err
}

// Predefined fetch failures

func ErrNetwork(endpoint string, err error) *FetchFailure {
	return &FetchFailure{Kind: FailureNetwork, Endpoint: endpoint, Err: err}
}

func ErrUnexpectedStatus(endpoint string, status int, body string) *FetchFailure {
	var err error
	if body != "" {
		err = errors.New(body)
	}
	return &FetchFailure{Kind: FailureStatus, Endpoint: endpoint, StatusCode: status, Err: err}
}

func ErrMalformedBody(endpoint string, err error) *FetchFailure {
	return &FetchFailure{Kind: FailureDecode, Endpoint: endpoint, Err: err}
}

// AsFetchFailure extracts a FetchFailure from an error chain
func AsFetchFailure(err error) (*FetchFailure, bool) {
	var ff *FetchFailure
	if errors.As(err, &ff) {
		return ff, true
	}
	return nil, false
}
