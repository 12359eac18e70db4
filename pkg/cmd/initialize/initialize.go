package initialize

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/knobase/kb/internal/config"
	"github.com/knobase/kb/internal/state"
)

func NewCmdInit(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "initialize",
		Aliases: []string{"i", "init"},
		Short:   "Set up the configuration file.",
		Long: heredoc.Doc(`
			Initialize writes the configuration file with sensible defaults
			and applies any settings passed as flags. Run it again at any
			time to change where data is stored.
		`),
		Example: heredoc.Doc(`
			kb init
			kb init --backend sqlite --dsn ~/.kb/kb.db
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s)
		},
	}

	cmd.Flags().String("backend", "", "Storage backend: file, sqlite, postgres, or memory.")
	cmd.Flags().String("dsn", "", "Connection string for sqlite and postgres backends.")
	cmd.Flags().String("addr", "", "Listen address for 'kb serve'.")
	cmd.Flags().String("site-dir", "", "Directory with the static front-end for 'kb serve'.")

	return cmd
}

func run(cmd *cobra.Command, s *state.State) error {
	cfg := s.Config

	if cmd.Flags().Changed("backend") {
		backend, _ := cmd.Flags().GetString("backend")
		if err := config.ValidateBackend(backend); err != nil {
			return err
		}
		cfg.Backend = backend
	}
	if cmd.Flags().Changed("dsn") {
		cfg.DSN, _ = cmd.Flags().GetString("dsn")
	}
	if cmd.Flags().Changed("addr") {
		cfg.ServerAddr, _ = cmd.Flags().GetString("addr")
	}
	if cmd.Flags().Changed("site-dir") {
		cfg.SiteDir, _ = cmd.Flags().GetString("site-dir")
	}

	if err := cfg.Save(); err != nil {
		return err
	}
	if err := config.EnsureConfigExists(s.Home); err != nil {
		return err
	}

	fmt.Printf("Configuration written to %s\n", config.GetConfigPath(s.Home))
	fmt.Printf("Backend: %s (%s)\n", cfg.Backend, cfg.StoreLocation())
	return nil
}
