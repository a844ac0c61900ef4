package domain

import "strings"

// Role codes known to the console. Codes are compared case-insensitively.
const (
	RoleAdministrators = "administrators"
	RoleManagers       = "managers"
	RoleLeaders        = "leaders"
	RoleMembers        = "members"
	RoleUsers          = "users"
)

// Role is a read-through copy of a role owned by the remote API.
type Role struct {
	ID          int64  `json:"id,omitempty"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// NormalizeRoleCode returns the comparison key for a role code.
func NormalizeRoleCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
