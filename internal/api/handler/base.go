package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskmanagement/console/internal/api/middleware"
	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/web"
)

// Base carries what every page handler needs to render.
type Base struct {
	Routes []domain.RouteDescriptor
}

// page builds the frame for the current request, consuming pending flashes.
func (b Base) page(c echo.Context, title string) web.Page {
	p := web.NewPage(middleware.State(c), b.Routes, c.Request().URL.Path, title)
	p.Flashes = popFlashes(c)
	return p
}

// fail renders view with err as page state. Errors that decide the whole
// response (denied, checking, abandoned) go to the central error handler.
func (b Base) fail(c echo.Context, view string, p web.Page, err error) error {
	if web.Abandoned(err) || errorDecidesResponse(err) {
		return err
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		p.Fields = verr.Fields
		p.Error = verr.Message
		if p.Error == "" {
			p.Error = verr.Error()
		}
	} else {
		p.Error = web.ErrorMessage(err)
	}
	return c.Render(web.ErrorStatus(err), view, p)
}

// seeOther redirects after a successful POST.
func seeOther(c echo.Context, to string) error {
	return c.Redirect(http.StatusSeeOther, to)
}

// pathID parses a numeric path parameter. Malformed ids are not found.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

// localPath returns to when it is a same-site path, otherwise def.
// Browsers read a backslash as a slash, so "/\host" is offsite too.
func localPath(to, def string) string {
	if !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") || strings.ContainsAny(to, "\\\r\n") {
		return def
	}
	u, err := url.Parse(to)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return def
	}
	return to
}

// bindForm binds and validates a form.
func bindForm(c echo.Context, form any) error {
	if err := c.Bind(form); err != nil {
		return &domain.ValidationError{Message: "The form could not be read."}
	}
	return c.Validate(form)
}

// errorDecidesResponse reports errors that replace the page entirely.
func errorDecidesResponse(err error) bool {
	return errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrSessionUnavailable)
}
