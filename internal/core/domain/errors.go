package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrAuthentication = errors.New("invalid username or password")
	ErrForbidden      = errors.New("access forbidden")
	ErrNotFound       = errors.New("resource not found")
	ErrValidation     = errors.New("validation failed")
	// ErrUnauthorized means the remote API rejected the session's access token.
	ErrUnauthorized = errors.New("session rejected by remote API")
	ErrServer       = errors.New("remote API error")
	ErrNetwork      = errors.New("remote API unreachable")

	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionUnavailable = errors.New("session store unavailable")
	ErrActionInFlight     = errors.New("action already in progress")
)

// ValidationError carries per-field messages for form input rejected either
// locally before submit or by the remote API after submit.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		if e.Message == "" {
			return ErrValidation.Error()
		}
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Message: msg, Fields: map[string]string{field: msg}}
}
