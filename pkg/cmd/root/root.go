package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/knobase/kb/internal/constants"
	"github.com/knobase/kb/internal/state"
	"github.com/knobase/kb/internal/tui/notes"
	adminCmd "github.com/knobase/kb/pkg/cmd/admin"
	"github.com/knobase/kb/pkg/cmd/convert"
	deleteCmd "github.com/knobase/kb/pkg/cmd/delete"
	"github.com/knobase/kb/pkg/cmd/edit"
	"github.com/knobase/kb/pkg/cmd/export"
	"github.com/knobase/kb/pkg/cmd/folder"
	"github.com/knobase/kb/pkg/cmd/image"
	"github.com/knobase/kb/pkg/cmd/importer"
	"github.com/knobase/kb/pkg/cmd/initialize"
	"github.com/knobase/kb/pkg/cmd/list"
	"github.com/knobase/kb/pkg/cmd/login"
	"github.com/knobase/kb/pkg/cmd/logout"
	"github.com/knobase/kb/pkg/cmd/move"
	"github.com/knobase/kb/pkg/cmd/new"
	"github.com/knobase/kb/pkg/cmd/open"
	"github.com/knobase/kb/pkg/cmd/search"
	"github.com/knobase/kb/pkg/cmd/serve"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     "kb",
		Version: constants.Version,
		Short:   "A personal Markdown knowledge base.",
		Long: heredoc.Doc(`
			kb keeps Markdown notes organized into folders, searchable, and
			shareable over HTTP. Run it without arguments to browse notes in
			the terminal UI.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return notes.Run(s)
		},
	}

	cmd.AddCommand(
		initialize.NewCmdInit(s),
		new.NewCmdNew(s),
		open.NewCmdOpen(s),
		list.NewCmdList(s),
		search.NewCmdSearch(s),
		folder.NewCmdFolder(s),
		move.NewCmdMove(s),
		edit.NewCmdEdit(s),
		deleteCmd.NewCmdDelete(s),
		login.NewCmdLogin(s),
		logout.NewCmdLogout(s),
		adminCmd.NewCmdAdmin(s),
		export.NewCmdExport(s),
		importer.NewCmdImport(s),
		serve.NewCmdServe(s),
		convert.NewCmdConvert(s),
		image.NewCmdImage(s),
	)

	return cmd, nil
}
