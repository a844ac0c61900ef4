package web

import (
	"github.com/taskmanagement/console/internal/core/access"
	"github.com/taskmanagement/console/internal/core/domain"
)

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

type Flash struct {
	Kind    string
	Message string
}

// Page is the data every view receives. Data carries the view-specific part.
type Page struct {
	Title   string
	Phase   string
	Path    string
	Session *domain.Session
	Menu    []domain.RouteDescriptor
	Flashes []Flash
	Error   string
	Fields  map[string]string
	Data    any
}

// NewPage builds the shared page frame. The menu is derived from the
// request's own authentication state every time.
func NewPage(state domain.AuthState, routes []domain.RouteDescriptor, path, title string) Page {
	session := state.Current()
	return Page{
		Title:   title,
		Phase:   state.Phase.String(),
		Path:    path,
		Session: session,
		Menu:    access.Menu(access.BuildNavigation(session, routes)),
	}
}

// FieldError returns the message for one form field, if any.
func (p Page) FieldError(field string) string {
	return p.Fields[field]
}
