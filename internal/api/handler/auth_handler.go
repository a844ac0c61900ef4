package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskmanagement/console/internal/api/metrics"
	"github.com/taskmanagement/console/internal/api/middleware"
	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/core/ports"
	"github.com/taskmanagement/console/internal/web"
)

type AuthHandler struct {
	Base
	sessions ports.SessionService
	cookies  middleware.Cookies
	log      zerolog.Logger
}

func NewAuthHandler(base Base, sessions ports.SessionService, cookies middleware.Cookies, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{Base: base, sessions: sessions, cookies: cookies, log: log}
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// ShowLogin renders the login form. Authenticated visitors go home instead.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	if middleware.CurrentSession(c) != nil {
		return c.Redirect(http.StatusFound, "/")
	}
	p := h.page(c, "Login")
	p.Data = web.LoginView{}
	return c.Render(http.StatusOK, web.ViewLogin, p)
}

// Login checks the credentials with the remote API, persists the session and
// issues the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	p := h.page(c, "Login")
	if err := bindForm(c, &form); err != nil {
		p.Data = web.LoginView{Username: form.Username}
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return h.fail(c, web.ViewLogin, p, err)
	}
	p.Data = web.LoginView{Username: form.Username}

	ctx := c.Request().Context()
	sid, s, err := h.sessions.Login(ctx, ports.Credentials{Username: form.Username, Password: form.Password})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAuthentication), errors.Is(err, domain.ErrValidation):
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		if errors.Is(err, domain.ErrSessionUnavailable) {
			// the login page is public; report the outage on it
			p.Error = web.ErrorMessage(err)
			return c.Render(http.StatusServiceUnavailable, web.ViewLogin, p)
		}
		return h.fail(c, web.ViewLogin, p, err)
	}

	if err := ctx.Err(); err != nil {
		h.discard(ctx, sid)
		return err
	}
	if err := h.cookies.Issue(c, sid); err != nil {
		h.log.Error().Err(err).Msg("session cookie not issued")
		h.discard(ctx, sid)
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		p.Error = web.ErrorMessage(err)
		return c.Render(http.StatusInternalServerError, web.ViewLogin, p)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	middleware.SetState(c, domain.AuthState{Phase: domain.PhaseAuthenticated, SessionID: sid, Session: s})
	return seeOther(c, "/")
}

// Logout destroys the session and returns to the login page.
func (h *AuthHandler) Logout(c echo.Context) error {
	state := middleware.State(c)
	if state.SessionID != "" {
		ctx := context.WithoutCancel(c.Request().Context())
		if err := h.sessions.Logout(ctx, state.SessionID); err != nil {
			h.log.Warn().Err(err).Msg("logout could not remove stored session")
		}
	}
	h.cookies.Clear(c)
	middleware.SetState(c, domain.AuthState{Phase: domain.PhaseAnonymous})
	return seeOther(c, "/login")
}

// discard drops a session created for a request that will not receive it.
func (h *AuthHandler) discard(ctx context.Context, sid string) {
	if err := h.sessions.Logout(context.WithoutCancel(ctx), sid); err != nil {
		h.log.Warn().Err(err).Msg("orphaned session not removed")
	}
}
