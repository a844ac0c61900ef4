package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskmanagement/console/internal/api/middleware"
	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/web"
)

// errorResponse is the error envelope for /api/* and other JSON endpoints.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Writes nothing for requests the client abandoned.
//   - Maps known domain errors to their HTTP status and view.
//   - Logs unexpected errors without leaking details to the client.
//   - Renders an HTML view for pages and {"error": "<message>"} for /api/*.
func NewHTTPErrorHandler(routes []domain.RouteDescriptor, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed || web.Abandoned(err) {
			return
		}

		code, view, msg := resolveError(err, log, c)
		if wantsJSON(c) {
			_ = c.JSON(code, errorResponse{Error: msg})
			return
		}

		state := middleware.State(c)
		p := web.NewPage(state, routes, c.Request().URL.Path, titleFor(view))
		if view == web.ViewError {
			p.Error = msg
		}
		if rerr := c.Render(code, view, p); rerr != nil {
			log.Error().Err(rerr).Str("view", view).Msg("error view failed")
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Echo's own errors (unmatched routes, bind failures, ...)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := fmt.Sprintf("%v", he.Message)
		switch he.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			// unknown paths get the access-denied view, same as unreachable ones
			return http.StatusNotFound, web.ViewAccessDenied, "not found"
		case http.StatusUnauthorized:
			return he.Code, web.ViewAccessDenied, msg
		}
		if he.Code >= http.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("echo error")
		}
		return he.Code, web.ViewError, msg
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, web.ViewAccessDenied, "access denied"
	case errors.Is(err, domain.ErrSessionUnavailable):
		return http.StatusServiceUnavailable, web.ViewChecking, "session is being checked"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, web.ViewNotFound, "not found"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrAuthentication),
		errors.Is(err, domain.ErrActionInFlight),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrServer),
		errors.Is(err, domain.ErrNetwork):
		return web.ErrorStatus(err), web.ViewError, web.ErrorMessage(err)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, web.ViewError, "internal server error"
}

func wantsJSON(c echo.Context) bool {
	path := c.Request().URL.Path
	if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/health") {
		return true
	}
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

func titleFor(view string) string {
	switch view {
	case web.ViewAccessDenied:
		return "Access Denied"
	case web.ViewNotFound:
		return "Not Found"
	case web.ViewChecking:
		return "Loading"
	default:
		return "Error"
	}
}
