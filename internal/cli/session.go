package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/padelmixer/padelmixer-admin/internal/guard"
	"github.com/padelmixer/padelmixer-admin/internal/model"
	"github.com/padelmixer/padelmixer-admin/internal/session"
)

func newLoginCmd() *cobra.Command {
	var email, password string
	var noRemember bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(email) == "" || password == "" {
				return errors.New("--email and --password are required")
			}

			creds := model.Credentials{Identifier: email, Secret: password}
			if noRemember {
				creds = creds.Forget()
			}

			_, err := app.Session.Login(cmd.Context(), creds)
			if err != nil {
				return err
			}

			output(cmd).Print(currentIdentity())
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (required)")
	cmd.Flags().BoolVar(&noRemember, "no-remember", false, "Do not keep the session after this command")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return routed(cmd, guard.LoginPath, guardGuest)
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Session.Logout()
			output(cmd).PrintMessage("Signed out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			output(cmd).Print(currentIdentity())
			return nil
		},
	}
	return routed(cmd, guard.DashboardPath, guardAuth)
}

// currentIdentity describes the signed-in principal. Callers run behind a guard or after a login.
func currentIdentity() Identity {
	id := Identity{Expired: app.Session.IsExpired()}
	if p := app.Session.Principal(); p != nil {
		id.Principal = *p
	}
	if exp, ok := session.TokenExpiry(app.Session.Credential()); ok {
		id.ExpiresAt = &exp
	}
	return id
}
