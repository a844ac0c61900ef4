package access

import "github.com/taskmanagement/console/internal/core/domain"

// PageNoAccess is the page id of the synthesized fallback entry.
const PageNoAccess = "no-access"

// NoAccessRoute is the entry a session receives when none of the private
// routes are reachable for it.
var NoAccessRoute = domain.RouteDescriptor{
	Path:     "/",
	Name:     "No Access",
	Page:     PageNoAccess,
	Terminal: true,
}

// BuildNavigation filters routes for the given session, preserving table
// order. Public routes are always kept; private routes need a session whose
// roles pass HasAccess. A session that can reach no private route receives
// the NoAccessRoute fallback so its navigation is never empty.
func BuildNavigation(session *domain.Session, routes []domain.RouteDescriptor) []domain.RouteDescriptor {
	nav := make([]domain.RouteDescriptor, 0, len(routes)+1)
	private := 0
	codes := session.RoleCodes()

	for _, r := range routes {
		switch {
		case r.IsPublic:
			nav = append(nav, r)
		case session == nil:
			continue
		case HasAccess(codes, r.RequiredRoles):
			nav = append(nav, r)
			private++
		}
	}

	if session != nil && private == 0 {
		nav = append(nav, NoAccessRoute)
	}
	return nav
}

// Menu returns the navigation entries shown in the menu.
func Menu(nav []domain.RouteDescriptor) []domain.RouteDescriptor {
	menu := make([]domain.RouteDescriptor, 0, len(nav))
	for _, r := range nav {
		if r.ShowOnMenu && !r.Terminal {
			menu = append(menu, r)
		}
	}
	return menu
}

// Decision is the outcome of resolving a route for a request.
type Decision int

const (
	Deny Decision = iota
	Allow
	Checking
	Fallback
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Checking:
		return "checking"
	case Fallback:
		return "fallback"
	default:
		return "deny"
	}
}

// Resolve decides how a request for the route registered at pattern is
// served. It never redirects: unreachable routes resolve to Deny and the
// caller renders the access-denied view.
func Resolve(state domain.AuthState, routes []domain.RouteDescriptor, pattern string) Decision {
	// while the session is unreadable neither side of the navigation is
	// known, public pages included
	if state.Phase == domain.PhaseChecking {
		return Checking
	}
	if route, ok := Find(routes, pattern); ok && route.IsPublic {
		return Allow
	}
	if state.Phase == domain.PhaseAnonymous {
		return Deny
	}

	session := state.Current()
	if session == nil {
		return Deny
	}

	route, ok := Find(BuildNavigation(session, routes), pattern)
	switch {
	case !ok:
		return Deny
	case route.Terminal:
		return Fallback
	default:
		return Allow
	}
}

// Find returns the first route registered at path.
func Find(routes []domain.RouteDescriptor, path string) (domain.RouteDescriptor, bool) {
	for _, r := range routes {
		if r.Path == path {
			return r, true
		}
	}
	return domain.RouteDescriptor{}, false
}
