package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/knobase/kb/internal/repository"
)

// ExportScope selects which collections an export carries.
type ExportScope string

const (
	ScopeAll     ExportScope = "all"
	ScopeNotes   ExportScope = "notes"
	ScopeFolders ExportScope = "folders"
)

// ExportVersion stamps exported documents so imports can recognize them.
const ExportVersion = "2.1.0"

const exportDateLayout = "2006-01-02T15:04:05.000Z"

// ErrNothingToExport is returned when a filtered export matches no notes.
var ErrNothingToExport = errors.New("no notes to export")

// Document is the portable backup format shared with the browser build.
type Document struct {
	Version    string             `json:"version"`
	ExportDate string             `json:"exportDate"`
	Notes      []*repository.Note `json:"notes"`
	Folders    []string           `json:"folders"`
	Config     *SiteConfig        `json:"config,omitempty"`
}

// ExportJSON serializes the selected collections. A non-empty folderFilter
// narrows the notes to that folder.
func (s *Service) ExportJSON(scope ExportScope, folderFilter string) (string, error) {
	doc := Document{
		Version:    ExportVersion,
		ExportDate: s.now().UTC().Format(exportDateLayout),
		Notes:      []*repository.Note{},
		Folders:    []string{},
	}

	switch scope {
	case ScopeAll:
		doc.Notes = s.filteredNotes(folderFilter)
		doc.Folders = s.repo.Folders()
		cfg, err := s.SiteConfig()
		if err != nil {
			return "", err
		}
		doc.Config = &cfg
	case ScopeNotes:
		doc.Notes = s.filteredNotes(folderFilter)
	case ScopeFolders:
		doc.Folders = s.repo.Folders()
	default:
		return "", &repository.ValidationError{Field: "export scope"}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding export: %w", err)
	}
	return string(data), nil
}

// ExportMarkdown bundles the notes into one markdown document with a header
// and per-note metadata, separated by horizontal rules.
func (s *Service) ExportMarkdown(folderFilter string) (string, error) {
	notes := s.filteredNotes(folderFilter)
	if len(notes) == 0 {
		return "", ErrNothingToExport
	}

	var b strings.Builder
	b.WriteString("# AI知识库导出\n\n")
	fmt.Fprintf(&b, "导出时间：%s\n", s.now().Format("2006/1/2 15:04:05"))
	fmt.Fprintf(&b, "笔记数量：%d\n\n", len(notes))
	b.WriteString("---\n\n")

	for i, note := range notes {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, note.Title)
		folder := "未分类"
		if note.Folder != nil && *note.Folder != "" {
			folder = *note.Folder
		}
		fmt.Fprintf(&b, "**文件夹**：%s  \n", folder)
		permission := "公开"
		if note.Permission == repository.PermissionPrivate {
			permission = "私密"
		}
		fmt.Fprintf(&b, "**权限**：%s  \n", permission)
		fmt.Fprintf(&b, "**日期**：%s  \n\n", note.Date)
		b.WriteString(note.Content)
		b.WriteString("\n\n---\n\n")
	}

	return b.String(), nil
}

func (s *Service) filteredNotes(folderFilter string) []*repository.Note {
	notes := s.repo.Notes()
	if folderFilter == "" {
		return notes
	}

	filtered := make([]*repository.Note, 0, len(notes))
	for _, note := range notes {
		if note.InFolder(&folderFilter) {
			filtered = append(filtered, note)
		}
	}
	return filtered
}
