// Package guard decides whether a route may be entered given the session state.
package guard

import (
	"fmt"
	"net/url"
)

// Well-known routes
const (
	LoginPath     = "/auth/login"
	DashboardPath = "/dashboard"

	// ReturnURLParam carries the originally requested route through the login redirect
	ReturnURLParam = "returnUrl"
)

// Checker is the read-only view of the session a guard needs
type Checker interface {
	IsAuthenticated() bool
	IsExpired() bool
}

// Redirect is a navigation instruction
type Redirect struct {
	Path  string
	Query url.Values
}

func (r Redirect) String() string {
	if len(r.Query) == 0 {
		return r.Path
	}
	return r.Path + "?" + r.Query.Encode()
}

// ReturnURL returns the route to resume after login, if any
func (r Redirect) ReturnURL() string {
	return r.Query.Get(ReturnURLParam)
}

// Decision is the outcome of a guard: either allow, or redirect
type Decision struct {
	Allowed  bool
	Redirect *Redirect
}

// Allow is the decision that lets navigation proceed
func Allow() Decision {
	return Decision{Allowed: true}
}

// RedirectTo is the decision that sends navigation elsewhere
func RedirectTo(r Redirect) Decision {
	return Decision{Redirect: &r}
}

// Err returns nil when allowed, otherwise a *RedirectError
func (d Decision) Err() error {
	if d.Allowed || d.Redirect == nil {
		return nil
	}
	return &RedirectError{Redirect: *d.Redirect}
}

// RedirectError reports that navigation was diverted
type RedirectError struct {
	Redirect Redirect
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("navigation redirected to %s", e.Redirect)
}

func active(c Checker) bool {
	return c.IsAuthenticated() && !c.IsExpired()
}

// RequireAuth admits only a live session. Anyone else is sent to the login
// route with targetURL preserved as the return URL.
func RequireAuth(c Checker, targetURL string) Decision {
	if active(c) {
		return Allow()
	}
	return RedirectTo(Redirect{
		Path:  LoginPath,
		Query: url.Values{ReturnURLParam: []string{targetURL}},
	})
}

// RequireGuest admits only visitors without a live session. Signed-in users
// are sent to the dashboard.
func RequireGuest(c Checker) Decision {
	if !active(c) {
		return Allow()
	}
	return RedirectTo(Redirect{Path: DashboardPath})
}
