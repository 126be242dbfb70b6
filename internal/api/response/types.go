package response

import (
	"time"

	"github.com/padelmixer/padelmixer-admin/internal/model"
	"github.com/padelmixer/padelmixer-admin/internal/session"
)

// Health is the body of GET /health
type Health struct {
	Status string `json:"status"`
}

// Login is the body of a successful POST /auth/login
type Login = session.LoginResponse

// LoginFromSession builds the login body for a freshly issued session
func LoginFromSession(s session.Session, ttl time.Duration) Login {
	return Login{
		Token:     s.Token,
		User:      *s.Principal,
		ExpiresIn: int(ttl / time.Second),
	}
}

// Identity is the body of GET /auth/me
type Identity struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	ExpiresAt time.Time  `json:"expires_at"`
}
