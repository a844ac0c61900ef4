package access

import "github.com/taskmanagement/console/internal/core/domain"

// Page ids. The router maps each id to the handler that renders it.
const (
	PageLogin       = "login"
	PageDashboard   = "dashboard"
	PageTasks       = "tasks"
	PageMyTasks     = "my-tasks"
	PageCreateTask  = "create-task"
	PageUpdateTask  = "update-task"
	PageViewTask    = "view-task"
	PageUsers       = "users"
	PageCreateUser  = "create-user"
	PageViewUser    = "view-user"
	PageUpdateUser  = "update-user"
	PageRoles       = "roles"
	PageCreateRole  = "create-role"
	PageUpdateRole  = "update-role"
	PageAddRoles    = "add-roles"
	PageRemoveRoles = "remove-roles"
)

var (
	everyone       = []string{domain.RoleUsers, domain.RoleManagers, domain.RoleLeaders, domain.RoleAdministrators, domain.RoleMembers}
	taskManagers   = []string{domain.RoleManagers, domain.RoleLeaders, domain.RoleAdministrators}
	userManagers   = []string{domain.RoleAdministrators, domain.RoleManagers}
	administrators = []string{domain.RoleAdministrators}
)

// routeTable is ordered: menu order and first-match lookups follow it.
var routeTable = []domain.RouteDescriptor{
	{Path: "/login", Name: "Login", Page: PageLogin, IsPublic: true},
	{Path: "/", Name: "Home", Page: PageDashboard, ShowOnMenu: true, RequiredRoles: everyone},
	{Path: "/tasks", Name: "Tasks", Page: PageTasks, ShowOnMenu: true, RequiredRoles: taskManagers},
	{Path: "/my-tasks", Name: "My Tasks", Page: PageMyTasks, ShowOnMenu: true, RequiredRoles: everyone},
	{Path: "/create-task", Name: "Create Task", Page: PageCreateTask, ShowOnMenu: true, RequiredRoles: taskManagers},
	{Path: "/update-task/:taskId", Name: "Update Task", Page: PageUpdateTask, RequiredRoles: taskManagers},
	{Path: "/view-task/:id", Name: "View Task", Page: PageViewTask, RequiredRoles: everyone},
	{Path: "/users", Name: "Users", Page: PageUsers, ShowOnMenu: true, RequiredRoles: userManagers},
	{Path: "/create-user", Name: "Create User", Page: PageCreateUser, RequiredRoles: administrators},
	{Path: "/view-user/:userId", Name: "View User", Page: PageViewUser, RequiredRoles: userManagers},
	{Path: "/update-user/:userId", Name: "Update User", Page: PageUpdateUser, RequiredRoles: administrators},
	{Path: "/roles", Name: "Roles", Page: PageRoles, ShowOnMenu: true, RequiredRoles: userManagers},
	{Path: "/roles/create", Name: "Create Role", Page: PageCreateRole, RequiredRoles: administrators},
	{Path: "/roles/update/:roleId", Name: "Update Role", Page: PageUpdateRole, RequiredRoles: administrators},
	{Path: "/add-roles-to-user/:userId", Name: "Add Roles to User", Page: PageAddRoles, RequiredRoles: administrators},
	{Path: "/remove-roles-from-user/:userId", Name: "Remove Roles from User", Page: PageRemoveRoles, RequiredRoles: administrators},
}

// Routes returns a copy of the route table.
func Routes() []domain.RouteDescriptor {
	out := make([]domain.RouteDescriptor, len(routeTable))
	for i, r := range routeTable {
		r.RequiredRoles = append([]string(nil), r.RequiredRoles...)
		out[i] = r
	}
	return out
}
