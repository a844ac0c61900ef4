package middleware

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskmanagement/console/internal/api/metrics"
	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/core/ports"
)

const releaseTimeout = 2 * time.Second

// InFlight rejects a mutating request while the same session is still
// running the same action, so a double submit cannot issue two remote calls.
// Lock errors fail open.
func InFlight(lock ports.ActionLock, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state := State(c)
			if lock == nil || state.SessionID == "" {
				return next(c)
			}

			req := c.Request()
			key := state.SessionID + ":" + req.Method + ":" + req.URL.Path
			ok, err := lock.Acquire(req.Context(), key)
			if err != nil {
				log.Warn().Err(err).Str("path", req.URL.Path).Msg("inflight lock unavailable")
				return next(c)
			}
			if !ok {
				metrics.InflightRejectedTotal.Inc()
				return domain.ErrActionInFlight
			}
			defer func() {
				rctx, cancel := context.WithTimeout(context.WithoutCancel(req.Context()), releaseTimeout)
				defer cancel()
				if err := lock.Release(rctx, key); err != nil {
					log.Warn().Err(err).Str("path", req.URL.Path).Msg("inflight release failed")
				}
			}()
			return next(c)
		}
	}
}
