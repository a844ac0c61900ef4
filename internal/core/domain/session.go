package domain

import "time"

// Session is the authenticated identity of one browser. It is created on a
// successful login, persisted between requests and destroyed on logout.
type Session struct {
	UserID        int64     `json:"userId"`
	DisplayName   string    `json:"displayName"`
	Username      string    `json:"username"`
	Roles         []Role    `json:"roles"`
	Authenticated bool      `json:"authenticated"`
	AccessToken   string    `json:"accessToken"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RoleCodes returns the session's role codes in role order.
func (s *Session) RoleCodes() []string {
	if s == nil {
		return nil
	}
	codes := make([]string, 0, len(s.Roles))
	for _, r := range s.Roles {
		codes = append(codes, r.Code)
	}
	return codes
}

// Name is what the header shows for the logged-in user.
func (s *Session) Name() string {
	if s == nil {
		return ""
	}
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.Username
}

// AuthPhase is where a request stands with respect to authentication.
type AuthPhase int

const (
	// PhaseChecking: a session cookie was presented but the stored session
	// could not be read yet. Neither logged-in nor logged-out navigation applies.
	PhaseChecking AuthPhase = iota
	PhaseAnonymous
	PhaseAuthenticated
)

func (p AuthPhase) String() string {
	switch p {
	case PhaseAnonymous:
		return "anonymous"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return "checking"
	}
}

// AuthState is the hydrated authentication state of a single request.
type AuthState struct {
	Phase     AuthPhase
	SessionID string
	Session   *Session
}

// Current returns the active session, or nil unless authenticated.
func (a AuthState) Current() *Session {
	if a.Phase != PhaseAuthenticated || a.Session == nil || !a.Session.Authenticated {
		return nil
	}
	return a.Session
}
