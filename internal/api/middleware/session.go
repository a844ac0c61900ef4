package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/core/ports"
)

const stateKey = "auth_state"

// SessionFinder is the part of the session service the middleware needs.
type SessionFinder interface {
	Current(ctx context.Context, id string) (*domain.Session, error)
}

// Session hydrates the request's authentication state from the session
// cookie and stores it on the context:
//   - no cookie or an invalid one: anonymous, and the stale cookie is cleared
//   - cookie for an unknown or expired session: anonymous, cookie cleared
//   - session store unreachable: checking
//   - otherwise: authenticated
func Session(cookies Cookies, sessions SessionFinder, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state := domain.AuthState{Phase: domain.PhaseAnonymous}

			id, err := cookies.Read(c)
			switch {
			case errors.Is(err, errNoCookie):
			case err != nil:
				cookies.Clear(c)
			default:
				s, ferr := sessions.Current(c.Request().Context(), id)
				switch {
				case ferr == nil && s != nil && s.Authenticated:
					state = domain.AuthState{Phase: domain.PhaseAuthenticated, SessionID: id, Session: s}
				case ferr == nil, errors.Is(ferr, domain.ErrSessionNotFound):
					cookies.Clear(c)
				default:
					log.Warn().Err(ferr).Msg("session store unavailable")
					state = domain.AuthState{Phase: domain.PhaseChecking, SessionID: id}
				}
			}

			c.Set(stateKey, state)
			return next(c)
		}
	}
}

// State returns the authentication state hydrated by Session. Requests that
// never went through the middleware are anonymous.
func State(c echo.Context) domain.AuthState {
	if state, ok := c.Get(stateKey).(domain.AuthState); ok {
		return state
	}
	return domain.AuthState{Phase: domain.PhaseAnonymous}
}

// SetState replaces the request's authentication state, used after login,
// logout and role changes so the response renders with the new identity.
func SetState(c echo.Context, state domain.AuthState) {
	c.Set(stateKey, state)
}

// CurrentSession is State(c).Current().
func CurrentSession(c echo.Context) *domain.Session {
	return State(c).Current()
}

var _ SessionFinder = (ports.SessionService)(nil)
