package logout

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/knobase/kb/internal/state"
)

func NewCmdLogout(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "logout",
		Short:   "Log out of the admin session.",
		Long:    heredoc.Doc(``),
		Example: heredoc.Doc(``),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Auth.Logout(); err != nil {
				return err
			}
			fmt.Println("Successfully logged out.")
			return nil
		},
	}
}
