package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskmanagement/console/internal/api/middleware"
	"github.com/taskmanagement/console/internal/core/access"
	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/core/ports"
	"github.com/taskmanagement/console/internal/web"
)

type UserHandler struct {
	Base
	users    ports.UserService
	roles    ports.RoleService
	sessions ports.SessionService
	log      zerolog.Logger
}

func NewUserHandler(base Base, users ports.UserService, roles ports.RoleService, sessions ports.SessionService, log zerolog.Logger) *UserHandler {
	return &UserHandler{Base: base, users: users, roles: roles, sessions: sessions, log: log}
}

type createUserForm struct {
	FullName string `form:"full_name" validate:"required,max=100"`
	Username string `form:"username" validate:"required,min=3,max=50,printascii"`
	Password string `form:"password" validate:"required,min=6"`
}

type updateUserForm struct {
	FullName string `form:"full_name" validate:"required,max=100"`
	Username string `form:"username" validate:"required,min=3,max=50,printascii"`
	Status   string `form:"status" validate:"required,oneof=active inactive"`
}

type roleIDsForm struct {
	RoleIDs []string `form:"role_ids"`
}

func (h *UserHandler) List(c echo.Context) error {
	actor := middleware.CurrentSession(c)
	p := h.page(c, "Users")
	view := web.UsersView{
		CanCreate:      access.Can(actor, access.ActionCreateUser),
		CanUpdate:      access.Can(actor, access.ActionUpdateUser),
		CanDelete:      access.Can(actor, access.ActionDeleteUser),
		CanManageRoles: access.Can(actor, access.ActionManageUserRoles),
	}

	users, err := h.users.List(c.Request().Context(), actor)
	if err != nil {
		if web.Abandoned(err) {
			return err
		}
		view.LoadError = true
		p.Error = web.ErrorMessage(err)
	}
	view.Users = users
	p.Data = view
	return c.Render(http.StatusOK, web.ViewUsers, p)
}

func (h *UserHandler) ShowCreate(c echo.Context) error {
	p := h.page(c, "Create User")
	p.Data = web.UserFormView{Action: "/create-user", Submit: "Create", WithPassword: true}
	return c.Render(http.StatusOK, web.ViewUserForm, p)
}

func (h *UserHandler) Create(c echo.Context) error {
	var form createUserForm
	err := bindForm(c, &form)
	p := h.page(c, "Create User")
	p.Data = web.UserFormView{Action: "/create-user", Submit: "Create", WithPassword: true, FullName: form.FullName, Username: form.Username}
	if err != nil {
		return h.fail(c, web.ViewUserForm, p, err)
	}

	created, err := h.users.Create(c.Request().Context(), middleware.CurrentSession(c), domain.NewUser{
		FullName: strings.TrimSpace(form.FullName),
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		return h.fail(c, web.ViewUserForm, p, err)
	}
	addFlash(c, web.FlashSuccess, "User created")
	if created != nil && created.ID > 0 {
		return seeOther(c, fmt.Sprintf("/view-user/%d", created.ID))
	}
	return seeOther(c, "/users")
}

func (h *UserHandler) View(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	actor := middleware.CurrentSession(c)
	user, err := h.users.Get(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	p := h.page(c, user.FullName)
	p.Data = web.UserDetailView{
		User:           user,
		CanUpdate:      access.Can(actor, access.ActionUpdateUser),
		CanManageRoles: access.Can(actor, access.ActionManageUserRoles),
	}
	return c.Render(http.StatusOK, web.ViewUserView, p)
}

func (h *UserHandler) ShowUpdate(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.Request().Context(), middleware.CurrentSession(c), id)
	if err != nil {
		return err
	}
	p := h.page(c, "Update User")
	p.Data = h.updateView(id, user.FullName, user.Username, user.Status)
	return c.Render(http.StatusOK, web.ViewUserForm, p)
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	var form updateUserForm
	err = bindForm(c, &form)
	p := h.page(c, "Update User")
	p.Data = h.updateView(id, form.FullName, form.Username, form.Status)
	if err != nil {
		return h.fail(c, web.ViewUserForm, p, err)
	}

	_, err = h.users.Update(c.Request().Context(), middleware.CurrentSession(c), id, domain.UserProfile{
		FullName: strings.TrimSpace(form.FullName),
		Username: strings.TrimSpace(form.Username),
		Status:   form.Status,
	})
	if err != nil {
		return h.fail(c, web.ViewUserForm, p, err)
	}
	addFlash(c, web.FlashSuccess, "User updated")
	return seeOther(c, fmt.Sprintf("/view-user/%d", id))
}

func (h *UserHandler) updateView(id int64, fullName, username, status string) web.UserFormView {
	if status == "" {
		status = domain.UserStatusActive
	}
	return web.UserFormView{
		Action:     fmt.Sprintf("/update-user/%d", id),
		Submit:     "Save",
		FullName:   fullName,
		Username:   username,
		Status:     status,
		Statuses:   web.UserStatuses,
		WithStatus: true,
	}
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	err = h.users.Delete(c.Request().Context(), middleware.CurrentSession(c), id)
	switch {
	case err == nil:
		addFlash(c, web.FlashSuccess, "User deleted")
	case web.Abandoned(err), errorDecidesResponse(err):
		return err
	default:
		addFlash(c, web.FlashError, "User could not be deleted. "+web.ErrorMessage(err))
	}
	return seeOther(c, "/users")
}

func (h *UserHandler) ShowAddRoles(c echo.Context) error {
	return h.showRoles(c, true)
}

func (h *UserHandler) ShowRemoveRoles(c echo.Context) error {
	return h.showRoles(c, false)
}

func (h *UserHandler) AddRoles(c echo.Context) error {
	return h.changeRoles(c, true)
}

func (h *UserHandler) RemoveRoles(c echo.Context) error {
	return h.changeRoles(c, false)
}

// rolesView loads the user and the roles the operation may apply: roles the
// user lacks when adding, roles the user holds when removing.
func (h *UserHandler) rolesView(c echo.Context, userID int64, adding bool) (web.UserRolesView, error) {
	ctx := c.Request().Context()
	actor := middleware.CurrentSession(c)
	user, err := h.users.Get(ctx, actor, userID)
	if err != nil {
		return web.UserRolesView{}, err
	}
	view := web.UserRolesView{User: user, Adding: adding}
	if !adding {
		view.Options = user.Roles
		return view, nil
	}

	all, err := h.roles.List(ctx, actor)
	if err != nil {
		return view, err
	}
	for _, r := range all {
		if !user.HasRole(r.ID) {
			view.Options = append(view.Options, r)
		}
	}
	return view, nil
}

func rolesTitle(adding bool) string {
	if adding {
		return "Add Roles to User"
	}
	return "Remove Roles from User"
}

func (h *UserHandler) showRoles(c echo.Context, adding bool) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	view, err := h.rolesView(c, id, adding)
	if err != nil {
		return err
	}
	p := h.page(c, rolesTitle(adding))
	p.Data = view
	return c.Render(http.StatusOK, web.ViewUserRoles, p)
}

func (h *UserHandler) changeRoles(c echo.Context, adding bool) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	var form roleIDsForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	roleIDs := make([]int64, 0, len(form.RoleIDs))
	for _, raw := range form.RoleIDs {
		rid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		roleIDs = append(roleIDs, rid)
	}

	ctx := c.Request().Context()
	actor := middleware.CurrentSession(c)
	var updated *domain.UserProfile
	if adding {
		updated, err = h.users.AddRoles(ctx, actor, id, roleIDs)
	} else {
		updated, err = h.users.RemoveRoles(ctx, actor, id, roleIDs)
	}
	if err != nil {
		if web.Abandoned(err) || errorDecidesResponse(err) {
			return err
		}
		view, verr := h.rolesView(c, id, adding)
		if verr != nil {
			return verr
		}
		p := h.page(c, rolesTitle(adding))
		p.Data = view
		return h.fail(c, web.ViewUserRoles, p, err)
	}

	if actor.UserID == id && updated != nil {
		// the logged-in user changed their own roles: navigation must follow
		state := middleware.State(c)
		s, err := h.sessions.ReplaceRoles(ctx, state.SessionID, updated.Roles)
		if err != nil {
			h.log.Warn().Err(err).Msg("session roles not refreshed")
			addFlash(c, web.FlashSuccess, "Your roles were updated. The menu may not reflect them until you log in again.")
			return seeOther(c, "/")
		}
		middleware.SetState(c, domain.AuthState{Phase: domain.PhaseAuthenticated, SessionID: state.SessionID, Session: s})
		addFlash(c, web.FlashSuccess, "Your roles were updated")
		return seeOther(c, "/")
	}

	if adding {
		addFlash(c, web.FlashSuccess, "Roles added")
	} else {
		addFlash(c, web.FlashSuccess, "Roles removed")
	}
	return seeOther(c, fmt.Sprintf("/view-user/%d", id))
}
