package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/taskmanagement/console/internal/core/domain"
)

// ErrorStatus maps an error to the status of the page that reports it.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrActionInFlight):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSessionUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrServer), errors.Is(err, domain.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage is the user-facing text for an error. Remote and internal
// details are never shown.
func ErrorMessage(err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, domain.ErrAuthentication):
		return "Invalid username or password."
	case errors.Is(err, domain.ErrForbidden):
		return "You do not have permission to do that."
	case errors.Is(err, domain.ErrNotFound):
		return "The requested item no longer exists."
	case errors.Is(err, domain.ErrActionInFlight):
		return "This action is already in progress."
	case errors.Is(err, domain.ErrSessionUnavailable):
		return "Your session could not be loaded. Please try again shortly."
	case errors.Is(err, domain.ErrUnauthorized):
		return "The server rejected your session. Please log out and log in again."
	case errors.Is(err, domain.ErrNetwork):
		return "The task server could not be reached. Please try again."
	case errors.Is(err, domain.ErrServer):
		return "The task server could not complete the request."
	default:
		return "Something went wrong."
	}
}

// Abandoned reports whether err only means the client went away. Nothing is
// written for such requests.
func Abandoned(err error) bool {
	return errors.Is(err, context.Canceled)
}
