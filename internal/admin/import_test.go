package admin

import (
	"errors"
	"testing"

	"github.com/knobase/kb/internal/repository"
)

const importFixture = `{
  "version": "2.1.0",
  "exportDate": "2024-01-15T08:00:00.000Z",
  "notes": [
    {"id": 1700000000001, "title": "imported", "content": "from backup", "date": "2024-01-15T08:00:00Z", "permission": "public", "folder": "Archive"},
    {"id": 1700000000002, "title": "second", "content": "more", "date": "", "permission": "", "folder": null}
  ],
  "folders": ["Archive"]
}`

func TestImportJSONMergeSkipsExistingIDs(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	existing := seedNotes(t, repo)

	result, err := svc.ImportJSON(importFixture, ImportMerge)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Notes != 2 || result.Folders != 1 || result.Replaced {
		t.Fatalf("unexpected result: %+v", result)
	}
	if got := len(repo.Notes()); got != len(existing)+2 {
		t.Fatalf("expected %d notes, got %d", len(existing)+2, got)
	}

	// A second merge adds nothing.
	result, err = svc.ImportJSON(importFixture, ImportMerge)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Notes != 0 || result.Folders != 0 {
		t.Fatalf("repeat merge should add nothing, got %+v", result)
	}
}

func TestImportJSONReplaceSwapsCollections(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	seedNotes(t, repo)

	result, err := svc.ImportJSON(importFixture, ImportReplace)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !result.Replaced || result.Notes != 2 || result.Folders != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if got := len(repo.Notes()); got != 2 {
		t.Fatalf("expected 2 notes after replace, got %d", got)
	}
	if folders := repo.Folders(); len(folders) != 1 || folders[0] != "Archive" {
		t.Fatalf("unexpected folders: %v", folders)
	}
}

func TestImportJSONNormalizesDatesAndPermissions(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)

	if _, err := svc.ImportJSON(importFixture, ImportReplace); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	first, err := repo.Note(1700000000001)
	if err != nil {
		t.Fatalf("note lookup failed: %v", err)
	}
	if first.Date != "2024/1/15" {
		t.Fatalf("ISO date should be normalized, got %q", first.Date)
	}

	second, err := repo.Note(1700000000002)
	if err != nil {
		t.Fatalf("note lookup failed: %v", err)
	}
	if second.Date != "2024/3/5" {
		t.Fatalf("empty date should become today, got %q", second.Date)
	}
	if second.Permission != repository.PermissionPublic {
		t.Fatalf("missing permission should default to public, got %q", second.Permission)
	}
}

func TestImportJSONMalformedPayload(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	var parseErr *repository.ParseError
	if _, err := svc.ImportJSON("{not json", ImportMerge); !errors.As(err, &parseErr) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestImportJSONUnknownMode(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	var validation *repository.ValidationError
	if _, err := svc.ImportJSON(importFixture, ImportMode("append")); !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
