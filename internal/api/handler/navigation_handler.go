package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmanagement/console/internal/api/middleware"
	"github.com/taskmanagement/console/internal/core/access"
	"github.com/taskmanagement/console/internal/core/domain"
)

type NavigationHandler struct {
	Base
}

func NewNavigationHandler(base Base) *NavigationHandler {
	return &NavigationHandler{Base: base}
}

type navigationResponse struct {
	Phase      string                   `json:"phase"`
	Menu       []domain.RouteDescriptor `json:"menu"`
	Navigation []domain.RouteDescriptor `json:"navigation"`
}

type sessionResponse struct {
	UserID      int64         `json:"userId"`
	DisplayName string        `json:"displayName"`
	Username    string        `json:"username"`
	Roles       []domain.Role `json:"roles"`
}

// Navigation returns the routes the caller may reach.
//
// @Summary      Current navigation
// @Description  Phase, menu entries and full navigation for the calling session. While the session is still being read the lists are empty.
// @Tags         navigation
// @Produce      json
// @Success      200  {object}  navigationResponse
// @Router       /api/navigation [get]
func (h *NavigationHandler) Navigation(c echo.Context) error {
	state := middleware.State(c)
	resp := navigationResponse{
		Phase:      state.Phase.String(),
		Menu:       []domain.RouteDescriptor{},
		Navigation: []domain.RouteDescriptor{},
	}
	if state.Phase != domain.PhaseChecking {
		nav := access.BuildNavigation(state.Current(), h.Routes)
		resp.Navigation = nav
		if menu := access.Menu(nav); len(menu) > 0 {
			resp.Menu = menu
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Session returns the logged-in identity without its access token. It is
// mounted behind middleware.RequireSession.
//
// @Summary      Current session
// @Tags         navigation
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/session [get]
func (h *NavigationHandler) Session(c echo.Context) error {
	s := middleware.CurrentSession(c)
	return c.JSON(http.StatusOK, sessionResponse{
		UserID:      s.UserID,
		DisplayName: s.DisplayName,
		Username:    s.Username,
		Roles:       s.Roles,
	})
}
