package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmanagement/console/internal/web"
)

type DashboardHandler struct {
	Base
}

func NewDashboardHandler(base Base) *DashboardHandler {
	return &DashboardHandler{Base: base}
}

// Show renders the welcome panel with a quick link for every other menu page.
func (h *DashboardHandler) Show(c echo.Context) error {
	p := h.page(c, "Home")
	links := make([]web.QuickLink, 0, len(p.Menu))
	for _, r := range p.Menu {
		if r.Path == "/" {
			continue
		}
		links = append(links, web.QuickLink{Path: r.Path, Name: r.Name})
	}
	p.Data = web.DashboardView{QuickLinks: links}
	return c.Render(http.StatusOK, web.ViewDashboard, p)
}

// NoAccess is shown in place of the home page to sessions whose roles grant
// no page at all.
func (h *DashboardHandler) NoAccess(c echo.Context) error {
	return c.Render(http.StatusOK, web.ViewNoAccess, h.page(c, "No Access"))
}
