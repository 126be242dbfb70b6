package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/padelmixer/padelmixer-admin/internal/guard"
)

// Annotation keys that attach a command to a route and its guard
const (
	annotationRoute = "route"
	annotationGuard = "guard"

	guardAuth  = "auth"
	guardGuest = "guest"
)

// routed marks cmd as the route path, guarded by kind
func routed(cmd *cobra.Command, path, kind string) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationRoute] = path
	cmd.Annotations[annotationGuard] = kind
	return cmd
}

// targetURL fills the {id} placeholder of a route from the first argument
func targetURL(route string, args []string) string {
	if len(args) > 0 {
		return strings.ReplaceAll(route, "{id}", args[0])
	}
	return strings.ReplaceAll(route, "/{id}", "")
}

// checkRoute runs the guard attached to cmd, if any
func checkRoute(cmd *cobra.Command, args []string, c guard.Checker) error {
	route, ok := cmd.Annotations[annotationRoute]
	if !ok {
		return nil
	}

	var decision guard.Decision
	switch cmd.Annotations[annotationGuard] {
	case guardAuth:
		decision = guard.RequireAuth(c, targetURL(route, args))
	case guardGuest:
		decision = guard.RequireGuest(c)
	default:
		return nil
	}

	err := decision.Err()
	var redirect *guard.RedirectError
	if !errors.As(err, &redirect) {
		return err
	}
	if redirect.Redirect.Path == guard.LoginPath {
		return fmt.Errorf("not signed in, run 'padelmixer login' first (%w)", err)
	}
	return fmt.Errorf("already signed in, run 'padelmixer logout' first (%w)", err)
}
