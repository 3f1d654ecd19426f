package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/erp/client/internal/application/session"
	"github.com/erp/client/internal/infrastructure/auth"
)

func newAuthCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in, log out and inspect the current session",
	}
	cmd.AddCommand(
		newAuthLoginCommand(app),
		newAuthLogoutCommand(app),
		newAuthStatusCommand(app),
	)
	return cmd
}

func newAuthLoginCommand(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the backend and store the session token",
		Long: `Authenticate against the backend. Credentials can be passed with
--username/--password; whichever is missing is asked for interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				if err := promptCredentials(&username, &password); err != nil {
					return err
				}
			}

			snap := app.controller.Login(cmd.Context(), session.Credentials{
				Username: username,
				Password: password,
			})
			if !snap.IsAuthenticated() {
				return fmt.Errorf("login failed: %s", snap.ErrorMessage)
			}

			cmd.Printf("Logged in as %s (%s)\n", snap.User.GetDisplayNameOrUsername(), snap.User.Role)
			if store, ok := app.store.(interface{ Degraded() bool }); ok && store.Degraded() {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: session could not be persisted, it will last until this process exits")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prefer the interactive prompt)")
	return cmd
}

func promptCredentials(username, password *string) error {
	var fields []huh.Field
	if *username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(username).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("username is required")
				}
				return nil
			}))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("password is required")
				}
				return nil
			}))
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		return fmt.Errorf("login prompt: %w", err)
	}
	return nil
}

func newAuthLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.controller.Logout(cmd.Context())
			cmd.Println("Logged out")
			return nil
		},
	}
}

func newAuthStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session state",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.controller.Initialize(cmd.Context())
			if !snap.IsAuthenticated() {
				if snap.ErrorMessage != "" {
					cmd.Printf("Not logged in: %s\n", snap.ErrorMessage)
				} else {
					cmd.Println("Not logged in")
				}
				return nil
			}

			user := snap.User
			cmd.Printf("Logged in as %s\n", user.GetDisplayNameOrUsername())
			cmd.Printf("  username: %s\n", user.Username)
			cmd.Printf("  role:     %s\n", user.Role)
			if user.Email != "" {
				cmd.Printf("  email:    %s\n", user.Email)
			}

			// Expiry is display-only; the server remains the authority.
			if token, ok := app.store.Token(); ok {
				if info, err := auth.Inspect(token); err == nil && !info.ExpiresAt.IsZero() {
					now := time.Now()
					if info.Expired(now) {
						cmd.Println("  token:    expired")
					} else {
						cmd.Printf("  token:    expires in %s\n", info.RemainingTTL(now).Round(time.Second))
					}
				}
			}
			return nil
		},
	}
}
