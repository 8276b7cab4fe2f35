// ABOUTME: Register command for the voltride CLI
// ABOUTME: Creates an account, signs in, and saves the session

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
	"github.com/voltride/voltride-cli/internal/client"
)

var (
	registerName     string
	registerEmail    string
	registerPassword string
	registerPhone    string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a Voltride account",
	Long: `Create an account and sign in with it.

Prompts for any fields not passed as flags. New accounts start as
renters.

Exit codes:
  0 - Account created and signed in
  2 - Error (connectivity, invalid input, email taken)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password (prompted if omitted)")
	registerCmd.Flags().StringVar(&registerPhone, "phone", "", "Phone number")
}

// runRegister executes the signup flow and returns exit code
func runRegister(ctx context.Context, w io.Writer) int {
	req := client.RegisterRequest{
		Name:     registerName,
		Email:    registerEmail,
		Password: registerPassword,
		Phone:    registerPhone,
	}

	if req.Name == "" || req.Email == "" || req.Password == "" || req.Phone == "" {
		if err := promptRegistration(&req); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	api, store := buildSession(loadConfig())

	if err := api.Register(ctx, req); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	// The backend returns no token on signup, so sign in with the new
	// credentials to seed the session.
	result, err := api.Login(ctx, req.Email, req.Password)
	if err != nil {
		fmt.Fprintf(w, "Account created, but sign-in failed: %v\n", err)
		fmt.Fprintln(w, "Run 'voltride login' to sign in.")
		return 2
	}

	if err := store.Login(auth.Session{Token: result.Token, Identity: result.User}); err != nil {
		fmt.Fprintf(w, "Error: could not save session: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Welcome, %s. Signed in as %s.\n", result.User.Name, result.User.Role)
	return 0
}

// promptRegistration fills in whichever signup fields were not passed as flags
func promptRegistration(req *client.RegisterRequest) error {
	var fields []huh.Field

	if req.Name == "" {
		fields = append(fields, huh.NewInput().
			Title("Name").
			Value(&req.Name).
			Validate(func(s string) error {
				if s == "" {
					return errors.New("name is required")
				}
				return nil
			}))
	}
	if req.Email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(&req.Email).
			Validate(func(s string) error {
				if s == "" {
					return errors.New("email is required")
				}
				return nil
			}))
	}
	if req.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&req.Password).
			Validate(func(s string) error {
				if s == "" {
					return errors.New("password is required")
				}
				return nil
			}))
	}
	if req.Phone == "" {
		fields = append(fields, huh.NewInput().
			Title("Phone").
			Value(&req.Phone).
			Validate(func(s string) error {
				if s == "" {
					return errors.New("phone is required")
				}
				return nil
			}))
	}

	return huh.NewForm(huh.NewGroup(fields...)).Run()
}
