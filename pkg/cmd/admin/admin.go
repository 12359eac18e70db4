package admin

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/knobase/kb/internal/repository"
	"github.com/knobase/kb/internal/state"
)

func NewCmdAdmin(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative operations over the whole knowledge base.",
		Long: heredoc.Doc(`
			Admin bundles management operations: dashboard statistics, batch
			edits, credential and site configuration, and destructive resets.
			Every subcommand requires a login.
		`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.RequireLogin()
		},
	}

	cmd.AddCommand(
		newCmdStats(s),
		newCmdBatchDelete(s),
		newCmdBatchMove(s),
		newCmdBatchPermission(s),
		newCmdPasswd(s),
		newCmdConfig(s),
		newCmdClearCache(s),
		newCmdReset(s),
	)

	return cmd
}

func newCmdStats(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := s.Admin.Stats()
			if err != nil {
				return err
			}

			fmt.Printf("Notes:    %d (%d public, %d private)\n",
				stats.TotalNotes, stats.PublicNotes, stats.PrivateNotes)
			fmt.Printf("Folders:  %d\n", stats.TotalFolders)
			fmt.Printf("Storage:  %.1f KB\n", float64(stats.StorageBytes)/1024)

			if backup, ok := s.Admin.LastBackup(); ok {
				fmt.Printf("Backup:   %s\n", backup.Local().Format("2006/1/2 15:04"))
			} else {
				fmt.Println("Backup:   never")
			}

			names := make([]string, 0, len(stats.FolderCounts))
			for name := range stats.FolderCounts {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("  %s: %d\n", name, stats.FolderCounts[name])
			}
			return nil
		},
	}
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid note id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func newCmdBatchDelete(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "batch-delete [id...]",
		Short: "Delete several notes at once.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			removed, err := s.Admin.BatchDelete(ids)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d note(s)\n", removed)
			return nil
		},
	}
}

func newCmdBatchMove(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch-move [id...] --folder [name]",
		Short: "Move several notes into one folder.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			folder, err := cmd.Flags().GetString("folder")
			if err != nil {
				return err
			}
			moved, err := s.Admin.BatchMove(ids, folder)
			if err != nil {
				return err
			}
			fmt.Printf("Moved %d note(s)\n", moved)
			return nil
		},
	}

	cmd.Flags().StringP("folder", "f", "", "Target folder (empty means unclassified).")

	return cmd
}

func newCmdBatchPermission(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch-permission [id...] --permission [public|private]",
		Short: "Set the visibility of several notes at once.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			permText, err := cmd.Flags().GetString("permission")
			if err != nil {
				return err
			}
			changed, err := s.Admin.BatchSetPermission(ids, repository.Permission(permText))
			if err != nil {
				return err
			}
			fmt.Printf("Updated %d note(s)\n", changed)
			return nil
		},
	}

	cmd.Flags().StringP("permission", "p", "", "New visibility: public or private.")
	cmd.MarkFlagRequired("permission")

	return cmd
}

func newCmdPasswd(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the admin password.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print("New password: ")
			first, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}

			fmt.Print("Confirm password: ")
			second, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}

			if err := s.Auth.UpdatePassword(string(first), string(second)); err != nil {
				return err
			}
			fmt.Println("Password updated.")
			return nil
		},
	}
}

func newCmdConfig(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the site configuration.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.Admin.SiteConfig()
			if err != nil {
				return err
			}

			changed := false
			if cmd.Flags().Changed("title") {
				cfg.Title, _ = cmd.Flags().GetString("title")
				changed = true
			}
			if cmd.Flags().Changed("default-permission") {
				permText, _ := cmd.Flags().GetString("default-permission")
				cfg.DefaultPermission = repository.Permission(permText)
				changed = true
			}
			if cmd.Flags().Changed("history-limit") {
				cfg.SearchHistoryLimit, _ = cmd.Flags().GetInt("history-limit")
				changed = true
			}

			if changed {
				if err := s.Admin.SaveSiteConfig(cfg); err != nil {
					return err
				}
				fmt.Println("Configuration saved.")
			}

			fmt.Printf("Title:              %s\n", cfg.Title)
			fmt.Printf("Default permission: %s\n", cfg.DefaultPermission)
			fmt.Printf("History limit:      %d\n", cfg.SearchHistoryLimit)
			return nil
		},
	}

	cmd.Flags().String("title", "", "Site title.")
	cmd.Flags().String("default-permission", "", "Default visibility for new notes.")
	cmd.Flags().Int("history-limit", 0, "Maximum number of remembered searches.")

	return cmd
}

func newCmdClearCache(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Clear the search history and temporary data.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Admin.ClearCache(); err != nil {
				return err
			}
			fmt.Println("Cache cleared.")
			return nil
		},
	}
}

func newCmdReset(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete ALL data: notes, folders, configuration, history.",
		Long: heredoc.Doc(`
			Reset wipes every persisted document. There is no undo; export
			your data first. You must type RESET at the prompt to proceed.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print("This deletes all data! Type \"RESET\" to confirm: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			if strings.TrimSpace(line) != "RESET" {
				fmt.Println("Aborted.")
				return nil
			}

			if err := s.Admin.ResetAllData(); err != nil {
				return err
			}
			if err := s.ReloadRepo(); err != nil {
				return err
			}
			fmt.Println("All data has been reset.")
			return nil
		},
	}
}
