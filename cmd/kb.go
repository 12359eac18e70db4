package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/knobase/kb/internal/state"
	"github.com/knobase/kb/pkg/cmd/root"
)

func Execute() {
	s, err := state.NewState()
	cobra.CheckErr(err)
	defer s.Close()

	rootCmd, err := root.NewCmdRoot(s)
	cobra.CheckErr(err)

	if err := rootCmd.Execute(); err != nil {
		s.Close()
		os.Exit(1)
	}
}
