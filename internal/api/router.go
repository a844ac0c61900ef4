package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/taskmanagement/console/internal/api/handler"
	"github.com/taskmanagement/console/internal/api/middleware"
	"github.com/taskmanagement/console/internal/core/access"
	"github.com/taskmanagement/console/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Sessions ports.SessionService
	Tasks    ports.TaskService
	Users    ports.UserService
	Roles    ports.RoleService
	Lock     ports.ActionLock

	Cookies     middleware.Cookies
	FlashSecret []byte
	Renderer    echo.Renderer
	Checks      []handler.Check
	Log         zerolog.Logger

	// Registerer receives the HTTP metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
}

// pageRoute binds a page id to its GET handler and optional POST handler.
type pageRoute struct {
	get  echo.HandlerFunc
	post echo.HandlerFunc
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = d.Renderer
	e.Validator = handler.NewValidator()

	routes := access.Routes()
	e.HTTPErrorHandler = NewHTTPErrorHandler(routes, d.Log)

	registerer := d.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	flashStore := sessions.NewCookieStore(d.FlashSecret)
	flashStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   d.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "console",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(session.Middleware(flashStore))
	e.Use(middleware.Session(d.Cookies, d.Sessions, d.Log))

	// --- Dependencies ---
	base := handler.Base{Routes: routes}
	authHandler := handler.NewAuthHandler(base, d.Sessions, d.Cookies, d.Log)
	dashboardHandler := handler.NewDashboardHandler(base)
	taskHandler := handler.NewTaskHandler(base, d.Tasks)
	userHandler := handler.NewUserHandler(base, d.Users, d.Roles, d.Sessions, d.Log)
	roleHandler := handler.NewRoleHandler(base, d.Roles)
	navHandler := handler.NewNavigationHandler(base)
	healthHandler := handler.NewHealthHandler(d.Checks...)
	inflight := middleware.InFlight(d.Lock, d.Log)

	// --- Pages, gated by the route table ---
	pages := map[string]pageRoute{
		access.PageLogin:       {get: authHandler.ShowLogin, post: authHandler.Login},
		access.PageDashboard:   {get: dashboardHandler.Show},
		access.PageTasks:       {get: taskHandler.List},
		access.PageMyTasks:     {get: taskHandler.Mine},
		access.PageCreateTask:  {get: taskHandler.ShowCreate, post: taskHandler.Create},
		access.PageUpdateTask:  {get: taskHandler.ShowUpdate, post: taskHandler.Update},
		access.PageViewTask:    {get: taskHandler.View},
		access.PageUsers:       {get: userHandler.List},
		access.PageCreateUser:  {get: userHandler.ShowCreate, post: userHandler.Create},
		access.PageViewUser:    {get: userHandler.View},
		access.PageUpdateUser:  {get: userHandler.ShowUpdate, post: userHandler.Update},
		access.PageRoles:       {get: roleHandler.List},
		access.PageCreateRole:  {get: roleHandler.ShowCreate, post: roleHandler.Create},
		access.PageUpdateRole:  {get: roleHandler.ShowUpdate, post: roleHandler.Update},
		access.PageAddRoles:    {get: userHandler.ShowAddRoles, post: userHandler.AddRoles},
		access.PageRemoveRoles: {get: userHandler.ShowRemoveRoles, post: userHandler.RemoveRoles},
	}
	for _, route := range routes {
		pr, ok := pages[route.Page]
		if !ok {
			d.Log.Warn().Str("page", route.Page).Msg("route without handler")
			continue
		}
		gate := middleware.Gate(route, routes, dashboardHandler.NoAccess)
		e.GET(route.Path, pr.get, gate)
		if pr.post != nil {
			if route.IsPublic {
				e.POST(route.Path, pr.post, gate)
			} else {
				e.POST(route.Path, pr.post, gate, inflight)
			}
		}
	}

	// --- Actions without a page of their own; services check the action ---
	e.POST("/logout", authHandler.Logout)
	e.POST("/tasks/:id/delete", taskHandler.Delete, middleware.RequireSession, inflight)
	e.POST("/users/:userId/delete", userHandler.Delete, middleware.RequireSession, inflight)
	e.POST("/roles/:roleId/delete", roleHandler.Delete, middleware.RequireSession, inflight)

	// --- JSON API ---
	apiGroup := e.Group("/api")
	apiGroup.GET("/navigation", navHandler.Navigation)
	apiGroup.GET("/session", navHandler.Session, middleware.RequireSession)

	// --- Health probes, metrics, docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
