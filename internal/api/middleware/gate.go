package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmanagement/console/internal/api/metrics"
	"github.com/taskmanagement/console/internal/core/access"
	"github.com/taskmanagement/console/internal/core/domain"
)

// Gate admits a request to the page registered at route only when the
// route is part of the request's current navigation. Navigation is rebuilt
// from the request's own state, so role changes apply on the next request.
//
// Denied requests fail with domain.ErrForbidden, requests whose session is
// still being read with domain.ErrSessionUnavailable. When the session has
// no accessible page at all, fallback renders instead of the page.
func Gate(route domain.RouteDescriptor, routes []domain.RouteDescriptor, fallback echo.HandlerFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := access.Resolve(State(c), routes, route.Path)
			metrics.AccessDecisionsTotal.WithLabelValues(route.Page, decision.String()).Inc()

			switch decision {
			case access.Allow:
				return next(c)
			case access.Checking:
				return domain.ErrSessionUnavailable
			case access.Fallback:
				return fallback(c)
			default:
				return domain.ErrForbidden
			}
		}
	}
}

// RequireSession admits only authenticated requests. It guards endpoints
// outside the route table, such as delete actions and /api/session.
// Anonymous callers get 401.
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		state := State(c)
		switch {
		case state.Phase == domain.PhaseChecking:
			return domain.ErrSessionUnavailable
		case state.Current() == nil:
			return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
		}
		return next(c)
	}
}
