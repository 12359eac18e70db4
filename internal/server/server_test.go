package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/knobase/kb/internal/admin"
	"github.com/knobase/kb/internal/auth"
	"github.com/knobase/kb/internal/repository"
	"github.com/knobase/kb/internal/storage"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*Server, *repository.Repo) {
	t.Helper()

	store := storage.NewMemoryStore()
	repo, err := repository.NewRepo(store)
	if err != nil {
		t.Fatalf("failed to create repo: %v", err)
	}

	authMgr := auth.NewManager(store)
	if err := authMgr.UpdatePassword("admin123", "admin123"); err != nil {
		t.Fatalf("failed to set test password: %v", err)
	}

	srv := New(repo, admin.NewService(store, repo), authMgr, testSecret, "")
	return srv, repo
}

func seedServerNotes(t *testing.T, repo *repository.Repo) (*repository.Note, *repository.Note) {
	t.Helper()

	public, err := repo.CreateNote("shared", "everyone sees this", repository.PermissionPublic, nil)
	if err != nil {
		t.Fatalf("create note failed: %v", err)
	}
	private, err := repo.CreateNote("secret", "admin only", repository.PermissionPrivate, nil)
	if err != nil {
		t.Fatalf("create note failed: %v", err)
	}
	return public, private
}

func testToken(t *testing.T) string {
	t.Helper()

	token, err := auth.GenerateToken("admin", testSecret, 0)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	return token
}

func TestLoginIssuesToken(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	handler := srv.Handler()

	body := `{"username":"admin","password":"admin123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp["token"] == "" {
		t.Fatalf("expected a token in the response")
	}

	req = httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"admin","password":"nope"}`))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad credentials, got %d", rec.Code)
	}
}

func TestListNotesHidesPrivateWithoutToken(t *testing.T) {
	t.Parallel()

	srv, repo := newTestServer(t)
	seedServerNotes(t, repo)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var notes []*repository.Note
	if err := json.Unmarshal(rec.Body.Bytes(), &notes); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "shared" {
		t.Fatalf("anonymous listing should only show public notes, got %v", notes)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if err := json.Unmarshal(rec.Body.Bytes(), &notes); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("authorized listing should show everything, got %v", notes)
	}
}

func TestGetNoteRendersHTML(t *testing.T) {
	t.Parallel()

	srv, repo := newTestServer(t)
	note, err := repo.CreateNote("fmt", "**bold**", repository.PermissionPublic, nil)
	if err != nil {
		t.Fatalf("create note failed: %v", err)
	}
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/notes/"+itoa(note.ID), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var resp struct {
		Title string `json:"title"`
		HTML  string `json:"html"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.HTML != "<p><strong>bold</strong></p>" {
		t.Fatalf("unexpected rendered html: %q", resp.HTML)
	}
}

func TestPrivateNoteIsHiddenFromAnonymousGet(t *testing.T) {
	t.Parallel()

	srv, repo := newTestServer(t)
	_, private := seedServerNotes(t, repo)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/notes/"+itoa(private.ID), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for anonymous private read, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/notes/"+itoa(private.ID), nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for authorized read, got %d", rec.Code)
	}
}

func TestCreateNoteRequiresToken(t *testing.T) {
	t.Parallel()

	srv, repo := newTestServer(t)
	handler := srv.Handler()

	body := `{"title":"new","content":"body"}`
	req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+testToken(t))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	if got := len(repo.Notes()); got != 1 {
		t.Fatalf("expected 1 note, got %d", got)
	}
}

func TestCreateNoteValidation(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader(`{"title":"","content":""}`))
	req.Header.Set("Authorization", "Bearer "+testToken(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty fields, got %d", rec.Code)
	}
}

func TestDeleteNoteEndpoint(t *testing.T) {
	t.Parallel()

	srv, repo := newTestServer(t)
	public, _ := seedServerNotes(t, repo)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodDelete, "/api/notes/"+itoa(public.ID), nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := len(repo.Notes()); got != 1 {
		t.Fatalf("expected 1 remaining note, got %d", got)
	}
}

func TestImportExportRoundTripOverAPI(t *testing.T) {
	t.Parallel()

	srv, repo := newTestServer(t)
	seedServerNotes(t, repo)
	handler := srv.Handler()
	token := testToken(t)

	req := httptest.NewRequest(http.MethodGet, "/api/export?scope=all", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("export failed with %d: %s", rec.Code, rec.Body)
	}
	exported := rec.Body.String()

	req = httptest.NewRequest(http.MethodPost, "/api/import?mode=replace", strings.NewReader(exported))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("import failed with %d: %s", rec.Code, rec.Body)
	}
	if got := len(repo.Notes()); got != 2 {
		t.Fatalf("expected 2 notes after round trip, got %d", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/import?mode=merge", strings.NewReader("{broken"))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed import, got %d", rec.Code)
	}
}

func TestBatchEndpoint(t *testing.T) {
	t.Parallel()

	srv, repo := newTestServer(t)
	public, private := seedServerNotes(t, repo)
	handler := srv.Handler()
	token := testToken(t)

	body := `{"action":"permission","ids":[` + itoa(public.ID) + `,` + itoa(private.ID) + `],"permission":"private"}`
	req := httptest.NewRequest(http.MethodPost, "/api/batch", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/batch", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var resp map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp["affected"] != 1 {
		t.Fatalf("expected 1 affected note (one was already private), got %d", resp["affected"])
	}

	req = httptest.NewRequest(http.MethodPost, "/api/batch", strings.NewReader(`{"action":"shred","ids":[1]}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown action, got %d", rec.Code)
	}
}

func TestStaticSiteFallbacks(t *testing.T) {
	t.Parallel()

	siteDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(siteDir, "index.html"), []byte("<h1>kb</h1>"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	store := storage.NewMemoryStore()
	repo, err := repository.NewRepo(store)
	if err != nil {
		t.Fatalf("failed to create repo: %v", err)
	}
	srv := New(repo, admin.NewService(store, repo), auth.NewManager(store), testSecret, siteDir)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "kb") {
		t.Fatalf("root should serve index.html, got %d %q", rec.Code, rec.Body)
	}

	req = httptest.NewRequest(http.MethodGet, "/missing.html", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing file, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/../../etc/passwd", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code == http.StatusOK {
		t.Fatalf("traversal attempt must not succeed")
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
