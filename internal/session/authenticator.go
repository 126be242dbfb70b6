package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/padelmixer/padelmixer-admin/internal/dependencies/clock"
	"github.com/padelmixer/padelmixer-admin/internal/model"
	"github.com/padelmixer/padelmixer-admin/internal/transport"
)

// DefaultLatency is the artificial delay the table authenticator applies to every attempt
const DefaultLatency = 800 * time.Millisecond

// Authenticator exchanges credentials for a session
type Authenticator interface {
	Authenticate(ctx context.Context, creds model.Credentials) (Session, error)
}

// Account seeds a principal and its secret into a TableAuthenticator
type Account struct {
	Principal model.Principal
	Secret    string
}

// DefaultAccounts returns the built-in accounts, one per role
func DefaultAccounts() []Account {
	return []Account{
		{
			Principal: model.Principal{
				ID:          "1",
				Email:       "admin@padelmixer.com",
				DisplayName: "Admin PadelMixer",
				Role:        model.RoleAdmin,
				AvatarURL:   "https://ui-avatars.com/api/?name=Admin+PadelMixer&background=3f51b5&color=fff",
			},
			Secret: "admin123",
		},
		{
			Principal: model.Principal{
				ID:          "2",
				Email:       "player@padelmixer.com",
				DisplayName: "Juan García",
				Role:        model.RolePlayer,
				AvatarURL:   "https://ui-avatars.com/api/?name=Juan+Garcia&background=4caf50&color=fff",
			},
			Secret: "player123",
		},
		{
			Principal: model.Principal{
				ID:          "3",
				Email:       "organizer@padelmixer.com",
				DisplayName: "María López",
				Role:        model.RoleOrganizer,
				AvatarURL:   "https://ui-avatars.com/api/?name=Maria+Lopez&background=ff9800&color=fff",
			},
			Secret: "organizer123",
		},
	}
}

// TableConfig configures a TableAuthenticator
type TableConfig struct {
	Latency    time.Duration
	Accounts   []Account // nil means DefaultAccounts
	BcryptCost int       // zero means bcrypt.DefaultCost
}

// TableAuthenticator checks credentials against an in-process table of known
// principals and bcrypt hashes of their expected secrets, then issues a JWT.
type TableAuthenticator struct {
	principals map[string]model.Principal
	secrets    map[string][]byte
	issuer     *TokenIssuer
	clock      clock.Clock
	latency    time.Duration
}

var _ Authenticator = (*TableAuthenticator)(nil)

// NewTableAuthenticator hashes the configured secrets and builds the lookup tables
func NewTableAuthenticator(issuer *TokenIssuer, clk clock.Clock, cfg TableConfig) (*TableAuthenticator, error) {
	accounts := cfg.Accounts
	if accounts == nil {
		accounts = DefaultAccounts()
	}
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	a := &TableAuthenticator{
		principals: make(map[string]model.Principal, len(accounts)),
		secrets:    make(map[string][]byte, len(accounts)),
		issuer:     issuer,
		clock:      clk,
		latency:    cfg.Latency,
	}
	for _, acc := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Secret), cost)
		if err != nil {
			return nil, fmt.Errorf("hash secret for %s: %w", acc.Principal.Email, err)
		}
		key := identifierKey(acc.Principal.Email)
		a.principals[key] = acc.Principal
		a.secrets[key] = hash
	}
	return a, nil
}

// TokenTTL returns the lifetime of tokens this authenticator issues
func (a *TableAuthenticator) TokenTTL() time.Duration {
	return a.issuer.TTL()
}

// Authenticate waits out the configured latency, then checks the tables.
// Unknown identifiers and wrong secrets both yield model.ErrInvalidCredentials.
func (a *TableAuthenticator) Authenticate(ctx context.Context, creds model.Credentials) (Session, error) {
	if err := a.clock.Sleep(ctx, a.latency); err != nil {
		return Session{}, err
	}

	key := identifierKey(creds.Identifier)
	principal, ok := a.principals[key]
	if !ok {
		return Session{}, model.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.secrets[key], []byte(creds.Secret)); err != nil {
		return Session{}, model.ErrInvalidCredentials
	}

	token, err := a.issuer.Issue(principal)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, Principal: &principal}, nil
}

func identifierKey(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// LoginResponse is the body returned by POST /auth/login
type LoginResponse struct {
	Token     string          `json:"token"`
	User      model.Principal `json:"user"`
	ExpiresIn int             `json:"expires_in"`
}

// RemoteAuthenticator signs in against the API server
type RemoteAuthenticator struct {
	client *transport.Client
}

var _ Authenticator = (*RemoteAuthenticator)(nil)

// NewRemoteAuthenticator creates an authenticator posting to /auth/login through client
func NewRemoteAuthenticator(client *transport.Client) *RemoteAuthenticator {
	return &RemoteAuthenticator{client: client}
}

// Authenticate posts the credentials. The request never carries the current
// session's token, so a rejected attempt cannot end an existing session.
func (a *RemoteAuthenticator) Authenticate(ctx context.Context, creds model.Credentials) (Session, error) {
	var resp LoginResponse
	err := a.client.Post(transport.WithoutCredentials(ctx), "/auth/login", creds, &resp)
	if err != nil {
		var terr *transport.Error
		if errors.As(err, &terr) && terr.Status == http.StatusUnauthorized {
			return Session{}, model.ErrInvalidCredentials
		}
		return Session{}, err
	}
	if resp.Token == "" || !resp.User.Role.Valid() {
		return Session{}, fmt.Errorf("login response missing token or user")
	}
	return Session{Token: resp.Token, Principal: &resp.User}, nil
}
