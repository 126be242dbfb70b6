package model

// Role is the authorization role of a signed-in principal
type Role string

const (
	RoleAdmin     Role = "admin"
	RolePlayer    Role = "player"
	RoleOrganizer Role = "organizer"
)

// Valid reports whether the role is known
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePlayer, RoleOrganizer:
		return true
	}
	return false
}

// Principal is the identity behind a session
type Principal struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// Credentials are submitted to sign in. A nil RememberMe persists the session.
type Credentials struct {
	Identifier string `json:"email"`
	Secret     string `json:"password"`
	RememberMe *bool  `json:"remember_me,omitempty"`
}

// Remember reports whether the session should outlive the process
func (c Credentials) Remember() bool {
	return c.RememberMe == nil || *c.RememberMe
}

// Forget returns a copy of c that keeps the session in memory only
func (c Credentials) Forget() Credentials {
	remember := false
	c.RememberMe = &remember
	return c
}
