package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestReasonOf(t *testing.T) {
	base := &CallError{Op: "hunter domain-search", Reason: ReasonStatus, Err: &HTTPError{StatusCode: 429}}
	wrapped := fmt.Errorf("finding email: %w", base)

	if got := ReasonOf(wrapped); got != ReasonStatus {
		t.Errorf("ReasonOf(wrapped) = %q, want %q", got, ReasonStatus)
	}
	if got := ReasonOf(errors.New("plain")); got != "" {
		t.Errorf("ReasonOf(plain) = %q, want empty", got)
	}

	var httpErr *HTTPError
	if !errors.As(wrapped, &httpErr) || httpErr.StatusCode != 429 {
		t.Errorf("expected wrapped HTTPError with status 429, got %v", httpErr)
	}
}

func TestCallError_Error(t *testing.T) {
	e := &CallError{Op: "telegram", Reason: ReasonNotConfigured}
	if e.Error() != "telegram: not_configured" {
		t.Errorf("Error() = %q", e.Error())
	}
	e.Err = errors.New("boom")
	if e.Error() != "telegram: not_configured: boom" {
		t.Errorf("Error() = %q", e.Error())
	}
}
