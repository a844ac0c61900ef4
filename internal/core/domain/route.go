package domain

// RouteDescriptor is the static metadata of one navigable page.
// Descriptors are defined once at start-up and never mutated.
type RouteDescriptor struct {
	Path          string   `json:"path"`
	Name          string   `json:"name"`
	Page          string   `json:"page"`
	ShowOnMenu    bool     `json:"showOnMenu"`
	IsPublic      bool     `json:"isPublic"`
	RequiredRoles []string `json:"roles,omitempty"`
	// Terminal marks the synthesized no-access entry, which carries no
	// further navigation.
	Terminal bool `json:"terminal,omitempty"`
}
