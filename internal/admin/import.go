package admin

import (
	"encoding/json"

	"github.com/araddon/dateparse"

	"github.com/knobase/kb/internal/repository"
)

// ImportMode controls whether an import adds to or replaces the collection.
type ImportMode string

const (
	// ImportMerge adds notes with unseen ids and folders with unseen names.
	ImportMerge ImportMode = "merge"

	// ImportReplace discards the current collection first.
	ImportReplace ImportMode = "replace"
)

// ImportResult reports what an import changed.
type ImportResult struct {
	Notes    int
	Folders  int
	Replaced bool
}

// ImportJSON applies a backup document. Malformed JSON is a ParseError; note
// dates in foreign formats are normalized to the local date layout.
func (s *Service) ImportJSON(raw string, mode ImportMode) (ImportResult, error) {
	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return ImportResult{}, &repository.ParseError{Err: err}
	}

	for _, note := range doc.Notes {
		note.Date = s.normalizeDate(note.Date)
		if !note.Permission.Valid() {
			note.Permission = repository.PermissionPublic
		}
	}

	switch mode {
	case ImportReplace:
		if err := s.repo.ReplaceAll(doc.Notes, doc.Folders); err != nil {
			return ImportResult{}, err
		}
		return ImportResult{Notes: len(doc.Notes), Folders: len(doc.Folders), Replaced: true}, nil
	case ImportMerge:
		notes, folders, err := s.repo.Merge(doc.Notes, doc.Folders)
		if err != nil {
			return ImportResult{}, err
		}
		return ImportResult{Notes: notes, Folders: folders}, nil
	default:
		return ImportResult{}, &repository.ValidationError{Field: "import mode"}
	}
}

// normalizeDate rewrites a parseable date stamp into the local layout. Empty
// stamps become today; unparseable ones are kept verbatim rather than lost.
func (s *Service) normalizeDate(date string) string {
	if date == "" {
		return s.now().Format(repository.DateLayout)
	}
	parsed, err := dateparse.ParseAny(date)
	if err != nil {
		return date
	}
	return parsed.Format(repository.DateLayout)
}
