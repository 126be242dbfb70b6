// Package session keeps the signed-in principal and its credential, persists
// them across restarts and publishes every change to subscribers.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/padelmixer/padelmixer-admin/internal/dependencies/clock"
	"github.com/padelmixer/padelmixer-admin/internal/model"
	"github.com/padelmixer/padelmixer-admin/internal/observe"
)

// Durable storage keys
const (
	TokenKey     = "padelmixer_token"
	PrincipalKey = "padelmixer_user"
)

// LoginPath is where the user is sent after signing out
const LoginPath = "/auth/login"

// Session is a snapshot of the authentication state.
// Token and Principal are either both set or both empty.
type Session struct {
	Token     string           `json:"token,omitempty"`
	Principal *model.Principal `json:"user,omitempty"`
}

// Authenticated reports whether the snapshot holds a signed-in principal
func (s Session) Authenticated() bool {
	return s.Token != "" && s.Principal != nil
}

func (s Session) clone() Session {
	if s.Principal != nil {
		p := *s.Principal
		s.Principal = &p
	}
	return s
}

// Navigator moves the user to another route
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Config holds optional collaborators of a Store
type Config struct {
	Navigator Navigator
	Logger    *slog.Logger
}

// Store is the single source of truth for "who is signed in"
type Store struct {
	kv     KeyValue
	auth   Authenticator
	clock  clock.Clock
	nav    Navigator
	logger *slog.Logger

	mu      sync.RWMutex
	current Session
	loading bool

	subject *observe.Subject[Session]
}

// New creates a Store and hydrates it from kv. Missing, partial or malformed
// persisted data leaves the store signed out.
func New(kv KeyValue, auth Authenticator, clk clock.Clock, cfg Config) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Store{
		kv:     kv,
		auth:   auth,
		clock:  clk,
		nav:    cfg.Navigator,
		logger: logger.With(slog.String("component", "session")),
	}
	s.current = s.hydrate()
	s.subject = observe.NewSubject(s.current, Session.clone)
	return s
}

func (s *Store) hydrate() Session {
	values, err := s.kv.Load()
	if err != nil {
		s.logger.Warn("ignoring unreadable session", slog.String("error", err.Error()))
		return Session{}
	}

	token, rawPrincipal := values[TokenKey], values[PrincipalKey]
	if token == "" && rawPrincipal == "" {
		return Session{}
	}
	if token == "" || rawPrincipal == "" {
		s.logger.Warn("ignoring partial session")
		return Session{}
	}

	var principal model.Principal
	if err := json.Unmarshal([]byte(rawPrincipal), &principal); err != nil {
		s.logger.Warn("ignoring malformed session principal", slog.String("error", err.Error()))
		return Session{}
	}
	if principal.ID == "" || !principal.Role.Valid() {
		s.logger.Warn("ignoring session with invalid principal", slog.String("role", string(principal.Role)))
		return Session{}
	}

	return Session{Token: token, Principal: &principal}
}

// Login authenticates creds and, on success, replaces the current session.
// A failed attempt leaves the previous session untouched.
func (s *Store) Login(ctx context.Context, creds model.Credentials) (Session, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	sess, err := s.auth.Authenticate(ctx, creds)
	if err != nil {
		s.logger.Warn("sign in failed",
			slog.String("identifier", creds.Identifier),
			slog.String("error", err.Error()))
		return Session{}, err
	}
	if !sess.Authenticated() {
		return Session{}, errors.New("authenticator returned an incomplete session")
	}
	sess = sess.clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if creds.Remember() {
		if err := s.persist(sess); err != nil {
			return Session{}, err
		}
	} else if err := s.kv.Remove(TokenKey, PrincipalKey); err != nil {
		s.logger.Warn("failed to clear persisted session", slog.String("error", err.Error()))
	}

	s.current = sess
	s.subject.Publish(sess)

	s.logger.Info("signed in",
		slog.String("principal_id", sess.Principal.ID),
		slog.String("role", string(sess.Principal.Role)),
		slog.Bool("remembered", creds.Remember()))
	return sess.clone(), nil
}

func (s *Store) persist(sess Session) error {
	principal, err := json.Marshal(sess.Principal)
	if err != nil {
		return fmt.Errorf("encode principal: %w", err)
	}
	if err := s.kv.Save(map[string]string{
		TokenKey:     sess.Token,
		PrincipalKey: string(principal),
	}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Logout clears the session from memory and durable storage, then navigates
// to the login route. It is safe to call when already signed out.
func (s *Store) Logout() {
	s.mu.Lock()
	if err := s.kv.Remove(TokenKey, PrincipalKey); err != nil {
		s.logger.Warn("failed to clear persisted session", slog.String("error", err.Error()))
	}
	wasSignedIn := s.current.Authenticated()
	s.current = Session{}
	s.subject.Publish(Session{})
	s.mu.Unlock()

	s.logger.Info("signed out", slog.Bool("had_session", wasSignedIn))
	if s.nav != nil {
		s.nav.Navigate(LoginPath)
	}
}

// Current returns a snapshot of the session
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

// Principal returns a copy of the signed-in principal, or nil
func (s *Store) Principal() *model.Principal {
	return s.Current().Principal
}

// Credential returns the session token, or "" when signed out
func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// IsAuthenticated reports whether a credential is present
func (s *Store) IsAuthenticated() bool {
	return s.Credential() != ""
}

// IsExpired reports whether the session can no longer be used. No session
// counts as expired; a token without a readable exp claim never expires.
func (s *Store) IsExpired() bool {
	token := s.Credential()
	if token == "" {
		return true
	}
	exp, ok := TokenExpiry(token)
	if !ok {
		return false
	}
	return !s.clock.Now().Before(exp)
}

// Loading reports whether a sign-in attempt is in flight
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Subscribe returns a subscription delivering every session change
func (s *Store) Subscribe() *observe.Subscription[Session] {
	return s.subject.Subscribe()
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}
