// Package admin bundles the management operations that sit above the note
// repository: batch edits, dashboard statistics, site configuration, backup
// bookkeeping, and full data export/import.
package admin

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/knobase/kb/internal/history"
	"github.com/knobase/kb/internal/repository"
	"github.com/knobase/kb/internal/storage"
)

// SiteConfig is the persisted site-wide configuration document.
type SiteConfig struct {
	Title              string                `json:"title"`
	DefaultPermission  repository.Permission `json:"defaultPermission"`
	SearchHistoryLimit int                   `json:"searchHistoryLimit"`
}

// DefaultSiteConfig matches the document a fresh deployment starts with.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		Title:              "AI知识库",
		DefaultPermission:  repository.PermissionPublic,
		SearchHistoryLimit: history.DefaultLimit,
	}
}

// Stats summarizes the collection for the dashboard.
type Stats struct {
	TotalNotes   int
	PublicNotes  int
	PrivateNotes int
	TotalFolders int
	FolderCounts map[string]int
	StorageBytes int
}

type Service struct {
	store storage.Store
	repo  *repository.Repo
	now   func() time.Time
}

func NewService(store storage.Store, repo *repository.Repo) *Service {
	return &Service{store: store, repo: repo, now: time.Now}
}

// BatchDelete removes every listed note in one write.
func (s *Service) BatchDelete(ids []int64) (int, error) {
	return s.repo.DeleteNotes(ids)
}

// BatchMove reassigns every listed note. An empty or "unclassified" folder
// name clears the assignment.
func (s *Service) BatchMove(ids []int64, folder string) (int, error) {
	var target *string
	if folder != "" && folder != repository.Unclassified {
		target = &folder
	}
	return s.repo.MoveNotes(ids, target)
}

// BatchSetPermission stamps every listed note with the permission.
func (s *Service) BatchSetPermission(ids []int64, permission repository.Permission) (int, error) {
	return s.repo.SetNotesPermission(ids, permission)
}

// Stats computes dashboard numbers, including how many bytes the persisted
// documents occupy.
func (s *Service) Stats() (Stats, error) {
	stats := Stats{FolderCounts: make(map[string]int)}

	for _, note := range s.repo.Notes() {
		stats.TotalNotes++
		if note.Permission == repository.PermissionPrivate {
			stats.PrivateNotes++
		} else {
			stats.PublicNotes++
		}
		stats.FolderCounts[note.FolderName()]++
	}
	stats.TotalFolders = len(s.repo.Folders())

	keys, err := s.store.Keys()
	if err != nil {
		return Stats{}, fmt.Errorf("listing stored keys: %w", err)
	}
	for _, key := range keys {
		value, ok, err := s.store.Load(key)
		if err != nil {
			return Stats{}, fmt.Errorf("sizing %s: %w", key, err)
		}
		if ok {
			stats.StorageBytes += len(key) + len(value)
		}
	}

	return stats, nil
}

// SiteConfig loads the persisted site configuration, falling back to the
// defaults when it is absent or malformed.
func (s *Service) SiteConfig() (SiteConfig, error) {
	raw, ok, err := s.store.Load(storage.KeySiteConfig)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("loading site config: %w", err)
	}

	cfg := DefaultSiteConfig()
	if ok {
		var stored SiteConfig
		if err := json.Unmarshal([]byte(raw), &stored); err == nil && stored.Title != "" {
			cfg = stored
		}
	}
	if cfg.SearchHistoryLimit <= 0 {
		cfg.SearchHistoryLimit = history.DefaultLimit
	}
	if !cfg.DefaultPermission.Valid() {
		cfg.DefaultPermission = repository.PermissionPublic
	}
	return cfg, nil
}

// SaveSiteConfig validates and persists the site configuration.
func (s *Service) SaveSiteConfig(cfg SiteConfig) error {
	if cfg.Title == "" {
		return &repository.ValidationError{Field: "site title"}
	}
	if !cfg.DefaultPermission.Valid() {
		return &repository.ValidationError{Field: "default permission"}
	}
	if cfg.SearchHistoryLimit <= 0 {
		cfg.SearchHistoryLimit = history.DefaultLimit
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return s.store.Save(storage.KeySiteConfig, string(data))
}

// ClearCache drops the search history while leaving notes, folders, and
// configuration in place.
func (s *Service) ClearCache() error {
	return s.store.Delete(storage.KeySearchHistory)
}

// ResetAllData deletes every persisted application key. The repository must
// be reloaded afterwards.
func (s *Service) ResetAllData() error {
	keys, err := s.store.Keys()
	if err != nil {
		return fmt.Errorf("listing stored keys: %w", err)
	}
	for _, key := range keys {
		if err := s.store.Delete(key); err != nil {
			return fmt.Errorf("deleting %s: %w", key, err)
		}
	}
	return nil
}

// MarkBackup records the current time as the last successful backup.
func (s *Service) MarkBackup() error {
	stamp := strconv.FormatInt(s.now().UnixMilli(), 10)
	return s.store.Save(storage.KeyLastBackup, stamp)
}

// LastBackup returns the recorded backup time, reporting false when no
// backup has been taken or the stamp is malformed.
func (s *Service) LastBackup() (time.Time, bool) {
	raw, ok, err := s.store.Load(storage.KeyLastBackup)
	if err != nil || !ok {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}
