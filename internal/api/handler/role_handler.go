package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskmanagement/console/internal/api/middleware"
	"github.com/taskmanagement/console/internal/core/access"
	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/core/ports"
	"github.com/taskmanagement/console/internal/web"
)

type RoleHandler struct {
	Base
	roles ports.RoleService
}

func NewRoleHandler(base Base, roles ports.RoleService) *RoleHandler {
	return &RoleHandler{Base: base, roles: roles}
}

type roleForm struct {
	Code        string `form:"code" validate:"required,max=50,printascii"`
	Name        string `form:"name" validate:"required,max=100"`
	Description string `form:"description" validate:"max=500"`
}

func (f roleForm) role() domain.Role {
	return domain.Role{
		Code:        strings.TrimSpace(f.Code),
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
	}
}

func (h *RoleHandler) List(c echo.Context) error {
	actor := middleware.CurrentSession(c)
	p := h.page(c, "Roles")
	view := web.RolesView{
		CanCreate: access.Can(actor, access.ActionCreateRole),
		CanUpdate: access.Can(actor, access.ActionUpdateRole),
		CanDelete: access.Can(actor, access.ActionDeleteRole),
	}

	roles, err := h.roles.List(c.Request().Context(), actor)
	if err != nil {
		if web.Abandoned(err) {
			return err
		}
		view.LoadError = true
		p.Error = web.ErrorMessage(err)
	}
	view.Roles = roles
	p.Data = view
	return c.Render(http.StatusOK, web.ViewRoles, p)
}

func (h *RoleHandler) ShowCreate(c echo.Context) error {
	p := h.page(c, "Create Role")
	p.Data = web.RoleFormView{Action: "/roles/create", Submit: "Create"}
	return c.Render(http.StatusOK, web.ViewRoleForm, p)
}

func (h *RoleHandler) Create(c echo.Context) error {
	var form roleForm
	err := bindForm(c, &form)
	p := h.page(c, "Create Role")
	p.Data = web.RoleFormView{Action: "/roles/create", Submit: "Create", Role: form.role()}
	if err != nil {
		return h.fail(c, web.ViewRoleForm, p, err)
	}

	if _, err := h.roles.Create(c.Request().Context(), middleware.CurrentSession(c), form.role()); err != nil {
		return h.fail(c, web.ViewRoleForm, p, err)
	}
	addFlash(c, web.FlashSuccess, "Role created")
	return seeOther(c, "/roles")
}

func (h *RoleHandler) ShowUpdate(c echo.Context) error {
	id, err := pathID(c, "roleId")
	if err != nil {
		return err
	}
	role, err := h.roles.Get(c.Request().Context(), middleware.CurrentSession(c), id)
	if err != nil {
		return err
	}
	p := h.page(c, "Update Role")
	p.Data = web.RoleFormView{Action: fmt.Sprintf("/roles/update/%d", id), Submit: "Save", Role: *role}
	return c.Render(http.StatusOK, web.ViewRoleForm, p)
}

func (h *RoleHandler) Update(c echo.Context) error {
	id, err := pathID(c, "roleId")
	if err != nil {
		return err
	}
	var form roleForm
	err = bindForm(c, &form)
	p := h.page(c, "Update Role")
	p.Data = web.RoleFormView{Action: fmt.Sprintf("/roles/update/%d", id), Submit: "Save", Role: form.role()}
	if err != nil {
		return h.fail(c, web.ViewRoleForm, p, err)
	}

	if _, err := h.roles.Update(c.Request().Context(), middleware.CurrentSession(c), id, form.role()); err != nil {
		return h.fail(c, web.ViewRoleForm, p, err)
	}
	addFlash(c, web.FlashSuccess, "Role updated")
	return seeOther(c, "/roles")
}

func (h *RoleHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "roleId")
	if err != nil {
		return err
	}
	err = h.roles.Delete(c.Request().Context(), middleware.CurrentSession(c), id)
	switch {
	case err == nil:
		addFlash(c, web.FlashSuccess, "Role deleted")
	case web.Abandoned(err), errorDecidesResponse(err):
		return err
	default:
		addFlash(c, web.FlashError, "Role could not be deleted. "+web.ErrorMessage(err))
	}
	return seeOther(c, "/roles")
}
