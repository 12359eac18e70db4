// Package state wires the configured store, repository, and services into a
// single handle commands receive instead of constructing their own.
package state

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/knobase/kb/internal/admin"
	"github.com/knobase/kb/internal/auth"
	"github.com/knobase/kb/internal/config"
	"github.com/knobase/kb/internal/constants"
	"github.com/knobase/kb/internal/history"
	"github.com/knobase/kb/internal/repository"
	"github.com/knobase/kb/internal/storage"
)

type State struct {
	Config  *config.Config
	Store   storage.Store
	Repo    *repository.Repo
	History *history.Tracker
	Auth    *auth.Manager
	Admin   *admin.Service
	Home    string
}

func NewState() (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.Backend, cfg.StoreLocation())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Backend, err)
	}

	repo, err := repository.NewRepo(store)
	if err != nil {
		return nil, fmt.Errorf("failed to load repository: %w", err)
	}

	adminSvc := admin.NewService(store, repo)

	siteCfg, err := adminSvc.SiteConfig()
	if err != nil {
		return nil, err
	}

	tracker, err := history.NewTracker(store, siteCfg.SearchHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load search history: %w", err)
	}

	return &State{
		Config:  cfg,
		Store:   store,
		Repo:    repo,
		History: tracker,
		Auth:    auth.NewManager(store),
		Admin:   adminSvc,
		Home:    home,
	}, nil
}

// ReloadRepo rebuilds the repository from the store, after an import or a
// reset changed the persisted collections underneath it.
func (s *State) ReloadRepo() error {
	repo, err := repository.NewRepo(s.Store)
	if err != nil {
		return fmt.Errorf("failed to reload repository: %w", err)
	}
	s.Repo = repo
	s.Admin = admin.NewService(s.Store, repo)
	return nil
}

// RequireLogin gates admin-only commands behind the persisted login flag.
func (s *State) RequireLogin() error {
	if !s.Auth.LoggedIn() {
		return errors.New("this command requires a login, run 'kb login' first")
	}
	return nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.ReadInConfig()

	err := config.EnsureConfigExists(home)
	if err != nil {
		return nil, err
	}

	return config.Load(home)
}

// Close releases the store when the backend holds external resources.
func (s *State) Close() error {
	if s == nil || s.Store == nil {
		return nil
	}

	if closer, ok := s.Store.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
