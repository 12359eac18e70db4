package login

import (
	"fmt"
	"os"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/knobase/kb/internal/auth"
	"github.com/knobase/kb/internal/state"
)

func NewCmdLogin(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as the admin user.",
		Long: heredoc.Doc(`
			Log in with the admin username and password. The login state is
			persisted until you run 'kb logout'; admin commands require it.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.Auth.LoggedIn() {
				fmt.Println("You are already logged in. Run 'kb logout' first to switch users.")
				return nil
			}

			username, err := cmd.Flags().GetString("username")
			if err != nil {
				return err
			}

			fmt.Print("Password: ")
			raw, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}

			if err := s.Auth.Login(username, string(raw)); err != nil {
				return err
			}

			fmt.Println("Logged in.")
			warnDefaultCredential(s)
			return nil
		},
	}

	cmd.Flags().StringP("username", "u", auth.DefaultUsername, "Admin username.")

	return cmd
}

func warnDefaultCredential(s *state.State) {
	usingDefault, err := s.Auth.UsingDefaultCredential()
	if err == nil && usingDefault {
		fmt.Fprintln(os.Stderr, "Warning: you are using the default admin password. Change it with 'kb admin passwd'.")
	}
}
