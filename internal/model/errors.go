package model

import (
	"errors"
	"fmt"
)

// HTTPError wraps a non-2xx HTTP status code.
type HTTPError struct {
	StatusCode int
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// FailureReason classifies why an external call produced no result.
type FailureReason string

const (
	ReasonNotConfigured FailureReason = "not_configured"
	ReasonInvalidInput  FailureReason = "invalid_input"
	ReasonTransport     FailureReason = "transport"
	ReasonStatus        FailureReason = "status"
	ReasonDecode        FailureReason = "decode"
)

// CallError is returned by external-call wrappers. Callers log it and degrade
// to an empty or negative result.
type CallError struct {
	Op     string
	Reason FailureReason
	Err    error
}

func (e *CallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// ReasonOf returns the failure reason carried by err, or "" if err is not a CallError.
func ReasonOf(err error) FailureReason {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Reason
	}
	return ""
}
