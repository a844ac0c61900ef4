package handler

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/taskmanagement/console/internal/web"
)

const flashSession = "tm_flash"

// addFlash queues a message for the next rendered page. Without the session
// middleware it is a no-op.
func addFlash(c echo.Context, kind, msg string) {
	s, err := session.Get(flashSession, c)
	if err != nil {
		return
	}
	s.AddFlash(msg, kind)
	_ = s.Save(c.Request(), c.Response())
}

// popFlashes returns and clears the queued messages.
func popFlashes(c echo.Context) []web.Flash {
	s, err := session.Get(flashSession, c)
	if err != nil {
		return nil
	}
	var out []web.Flash
	for _, kind := range []string{web.FlashSuccess, web.FlashError} {
		for _, f := range s.Flashes(kind) {
			if msg, ok := f.(string); ok {
				out = append(out, web.Flash{Kind: kind, Message: msg})
			}
		}
	}
	if len(out) > 0 {
		_ = s.Save(c.Request(), c.Response())
	}
	return out
}
