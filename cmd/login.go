// ABOUTME: Login command for the voltride CLI
// ABOUTME: Authenticates against the backend and saves the session

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/voltride/voltride-cli/internal/auth"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to Voltride",
	Long: `Sign in and save the session for later commands.

Prompts for missing credentials unless both --email and --password are
given.

Exit codes:
  0 - Signed in
  1 - Invalid credentials
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted if omitted)")
}

// runLogin executes the login flow and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	email, password := loginEmail, loginPassword

	if email == "" || password == "" {
		if err := promptCredentials(&email, &password); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	api, store := buildSession(loadConfig())

	result, err := api.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			fmt.Fprintln(w, "Invalid email or password.")
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := store.Login(auth.Session{Token: result.Token, Identity: result.User}); err != nil {
		fmt.Fprintf(w, "Error: could not save session: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Signed in as %s (%s)\n", result.User.Name, result.User.Role)
	return 0
}

// promptCredentials fills in whichever credentials were not passed as flags
func promptCredentials(email, password *string) error {
	var fields []huh.Field

	if *email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(email).
			Validate(func(s string) error {
				if s == "" {
					return errors.New("email is required")
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
					return errors.New("password is required")
				}
				return nil
			}))
	}

	return huh.NewForm(huh.NewGroup(fields...)).Run()
}
