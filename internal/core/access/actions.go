package access

import "github.com/taskmanagement/console/internal/core/domain"

// Action is a mutating or reading operation a page offers. Pages check
// actions on top of route gating: reaching a page does not imply every
// control on it is usable.
type Action string

const (
	ActionViewTask   Action = "task:view"
	ActionCreateTask Action = "task:create"
	ActionUpdateTask Action = "task:update"
	ActionDeleteTask Action = "task:delete"

	ActionViewUser        Action = "user:view"
	ActionCreateUser      Action = "user:create"
	ActionUpdateUser      Action = "user:update"
	ActionDeleteUser      Action = "user:delete"
	ActionManageUserRoles Action = "user:manage-roles"

	ActionViewRole   Action = "role:view"
	ActionCreateRole Action = "role:create"
	ActionUpdateRole Action = "role:update"
	ActionDeleteRole Action = "role:delete"
)

var actionRoles = map[Action][]string{
	ActionViewTask:   everyone,
	ActionCreateTask: taskManagers,
	ActionUpdateTask: taskManagers,
	ActionDeleteTask: taskManagers,

	ActionViewUser:        userManagers,
	ActionCreateUser:      administrators,
	ActionUpdateUser:      administrators,
	ActionDeleteUser:      administrators,
	ActionManageUserRoles: administrators,

	ActionViewRole:   userManagers,
	ActionCreateRole: administrators,
	ActionUpdateRole: administrators,
	ActionDeleteRole: administrators,
}

// Can reports whether the session may perform the action. Unknown actions
// and missing sessions are denied.
func Can(session *domain.Session, action Action) bool {
	if session == nil || !session.Authenticated {
		return false
	}
	roles, ok := actionRoles[action]
	if !ok {
		return false
	}
	return HasAccess(session.RoleCodes(), roles)
}

// Permissions evaluates several actions at once for rendering controls.
func Permissions(session *domain.Session, actions ...Action) map[Action]bool {
	perms := make(map[Action]bool, len(actions))
	for _, a := range actions {
		perms[a] = Can(session, a)
	}
	return perms
}
