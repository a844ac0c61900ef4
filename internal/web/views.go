package web

import (
	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/core/ports"
)

// View names, one per template file.
const (
	ViewLogin        = "login"
	ViewDashboard    = "dashboard"
	ViewTasks        = "tasks"
	ViewTaskForm     = "task-form"
	ViewTaskView     = "task-view"
	ViewUsers        = "users"
	ViewUserForm     = "user-form"
	ViewUserView     = "user-view"
	ViewUserRoles    = "user-roles"
	ViewRoles        = "roles"
	ViewRoleForm     = "role-form"
	ViewAccessDenied = "access-denied"
	ViewNotFound     = "not-found"
	ViewNoAccess     = "no-access"
	ViewChecking     = "checking"
	ViewError        = "error"
)

var (
	TaskStatuses   = []string{string(domain.TaskToDo), string(domain.TaskInProgress), string(domain.TaskDone)}
	TaskPriorities = []string{string(domain.PriorityLow), string(domain.PriorityMedium), string(domain.PriorityHigh)}
	UserStatuses   = []string{domain.UserStatusActive, domain.UserStatusInactive}
)

type LoginView struct {
	Username string
}

type QuickLink struct {
	Path string
	Name string
}

type DashboardView struct {
	QuickLinks []QuickLink
}

type TasksView struct {
	Heading    string
	ShowFilter bool
	Filter     ports.TaskFilter
	Statuses   []string
	Priorities []string
	Tasks      []domain.Task
	LoadError  bool

	CanCreate bool
	CanUpdate bool
	CanDelete bool
}

type TaskFormView struct {
	Action     string
	Submit     string
	Task       domain.Task
	Statuses   []string
	Priorities []string
}

type TaskDetailView struct {
	Task      *domain.Task
	CanUpdate bool
	CanDelete bool
}

type UsersView struct {
	Users     []domain.UserProfile
	LoadError bool

	CanCreate      bool
	CanUpdate      bool
	CanDelete      bool
	CanManageRoles bool
}

type UserFormView struct {
	Action       string
	Submit       string
	FullName     string
	Username     string
	Status       string
	Statuses     []string
	WithPassword bool
	WithStatus   bool
}

type UserDetailView struct {
	User           *domain.UserProfile
	CanUpdate      bool
	CanManageRoles bool
}

// UserRolesView backs both the add-roles and the remove-roles pages. Options
// are only the roles the operation can apply to.
type UserRolesView struct {
	User    *domain.UserProfile
	Options []domain.Role
	Adding  bool
}

type RolesView struct {
	Roles     []domain.Role
	LoadError bool

	CanCreate bool
	CanUpdate bool
	CanDelete bool
}

type RoleFormView struct {
	Action string
	Submit string
	Role   domain.Role
}
