package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/taskmanagement/console/internal/core/domain"
)

func TestErrorStatusAndMessage(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.NewValidationError("title", "Title is required"), http.StatusUnprocessableEntity},
		{domain.ErrAuthentication, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("%w: task 9", domain.ErrNotFound), http.StatusNotFound},
		{domain.ErrActionInFlight, http.StatusConflict},
		{domain.ErrSessionUnavailable, http.StatusServiceUnavailable},
		{fmt.Errorf("%w: status 500", domain.ErrServer), http.StatusBadGateway},
		{domain.ErrNetwork, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := ErrorStatus(tt.err); got != tt.status {
			t.Fatalf("ErrorStatus(%v) = %d, want %d", tt.err, got, tt.status)
		}
		if ErrorMessage(tt.err) == "" {
			t.Fatalf("empty message for %v", tt.err)
		}
	}
	if msg := ErrorMessage(fmt.Errorf("%w: status 500: stack trace", domain.ErrServer)); msg != "The task server could not complete the request." {
		t.Fatalf("remote details leaked: %q", msg)
	}
	if msg := ErrorMessage(domain.NewValidationError("title", "Title is required")); msg != "Title is required" {
		t.Fatalf("unexpected validation message %q", msg)
	}
}

func TestAbandoned(t *testing.T) {
	if !Abandoned(fmt.Errorf("DELETE /x: %w", context.Canceled)) {
		t.Fatalf("wrapped cancellation not detected")
	}
	if Abandoned(domain.ErrNetwork) {
		t.Fatalf("network error is not an abandoned request")
	}
}
