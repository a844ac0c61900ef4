// Package access decides what a session may navigate to and do. Everything
// here is pure: results depend only on the session and the static tables.
package access

import "github.com/taskmanagement/console/internal/core/domain"

// HasAccess reports whether a user holding userRoles may reach something that
// requires one of requiredRoles. Codes compare case-insensitively and blank
// codes are ignored, never treated as wildcards. The administrators role
// grants access to everything; an empty requirement grants access to any
// authenticated user, so callers only evaluate it for live sessions.
func HasAccess(userRoles, requiredRoles []string) bool {
	held := roleSet(userRoles)
	if _, ok := held[domain.RoleAdministrators]; ok {
		return true
	}

	required := roleSet(requiredRoles)
	if len(required) == 0 {
		return true
	}
	for code := range held {
		if _, ok := required[code]; ok {
			return true
		}
	}
	return false
}

func roleSet(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if n := domain.NormalizeRoleCode(c); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}
