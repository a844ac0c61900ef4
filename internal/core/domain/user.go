package domain

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// UserProfile is a user as returned by the remote API.
type UserProfile struct {
	ID       int64  `json:"id,omitempty"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Status   string `json:"status,omitempty"`
	Roles    []Role `json:"roles,omitempty"`
}

// HasRole reports whether the user already holds the role with the given id.
func (u *UserProfile) HasRole(roleID int64) bool {
	for _, r := range u.Roles {
		if r.ID == roleID {
			return true
		}
	}
	return false
}

// NewUser is the payload for creating a user.
type NewUser struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}
