package serve

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/knobase/kb/internal/server"
	"github.com/knobase/kb/internal/state"
)

func NewCmdServe(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the knowledge base over HTTP.",
		Long: heredoc.Doc(`
			Serve starts an HTTP server exposing the note API and, when a
			site directory is configured, the static front-end. Mutating
			endpoints require a bearer token obtained from /api/login.
		`),
		Example: heredoc.Doc(`
			kb serve
			kb serve --addr :9000
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (defaults to the configured one).")

	return cmd
}

func run(cmd *cobra.Command, s *state.State) error {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = s.Config.ServerAddr
	}

	secret := s.Config.TokenSecret
	if secret == "" {
		// Without a configured secret tokens only survive one process.
		secret = randomSecret()
		fmt.Println("No token secret configured; using an ephemeral one.")
	}

	srv := server.New(s.Repo, s.Admin, s.Auth, secret, s.Config.SiteDir)

	fmt.Printf("Listening on %s\n", addr)
	return http.ListenAndServe(addr, srv.Handler())
}

func randomSecret() string {
	buf := make([]byte, 32)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
