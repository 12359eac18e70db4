// Package server exposes the knowledge base over HTTP: a JSON API backed by
// the repository plus static hosting for the browser front end. Reads of
// public notes are open; everything else requires a token from /api/login.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/knobase/kb/internal/admin"
	"github.com/knobase/kb/internal/auth"
	"github.com/knobase/kb/internal/markdown"
	"github.com/knobase/kb/internal/repository"
)

type Server struct {
	mu      sync.Mutex
	repo    *repository.Repo
	admin   *admin.Service
	auth    *auth.Manager
	secret  string
	siteDir string
}

func New(repo *repository.Repo, adminSvc *admin.Service, authMgr *auth.Manager, secret, siteDir string) *Server {
	return &Server{
		repo:    repo,
		admin:   adminSvc,
		auth:    authMgr,
		secret:  secret,
		siteDir: siteDir,
	}
}

// Handler builds the route table. Static hosting is only mounted when a site
// directory is configured.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/login", s.handleLogin)
	mux.HandleFunc("/api/notes", s.handleNotes)
	mux.HandleFunc("/api/notes/", s.handleNote)
	mux.HandleFunc("/api/folders", s.handleFolders)
	mux.HandleFunc("/api/batch", s.requireToken(s.handleBatch))
	mux.HandleFunc("/api/export", s.requireToken(s.handleExport))
	mux.HandleFunc("/api/import", s.requireToken(s.handleImport))
	mux.HandleFunc("/api/stats", s.requireToken(s.handleStats))

	if s.siteDir != "" {
		mux.Handle("/", s.staticHandler())
	}

	return mux
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err := s.auth.Login(req.Username, req.Password)
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateToken(req.Username, s.secret, auth.DefaultTokenTTL)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listNotes(w, r)
	case http.MethodPost:
		s.requireToken(s.createNote)(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	folder := r.URL.Query().Get("folder")

	s.mu.Lock()
	notes := s.repo.FilterNotes(query, folder, "")
	s.mu.Unlock()

	if !s.authorized(r) {
		visible := make([]*repository.Note, 0, len(notes))
		for _, note := range notes {
			if note.Permission == repository.PermissionPublic {
				visible = append(visible, note)
			}
		}
		notes = visible
	}

	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) createNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title      string                `json:"title"`
		Content    string                `json:"content"`
		Permission repository.Permission `json:"permission"`
		Folder     *string               `json:"folder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Permission == "" {
		req.Permission = repository.PermissionPublic
	}

	s.mu.Lock()
	note, err := s.repo.CreateNote(req.Title, req.Content, req.Permission, req.Folder)
	s.mu.Unlock()
	if err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

func (s *Server) handleNote(w http.ResponseWriter, r *http.Request) {
	idText := strings.TrimPrefix(r.URL.Path, "/api/notes/")
	id, err := strconv.ParseInt(idText, 10, 64)
	if err != nil {
		http.Error(w, "Note ID required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getNote(w, r, id)
	case http.MethodPut:
		s.requireToken(func(w http.ResponseWriter, r *http.Request) {
			s.updateNote(w, r, id)
		})(w, r)
	case http.MethodDelete:
		s.requireToken(func(w http.ResponseWriter, r *http.Request) {
			s.deleteNote(w, r, id)
		})(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) getNote(w http.ResponseWriter, r *http.Request, id int64) {
	s.mu.Lock()
	note, err := s.repo.Note(id)
	s.mu.Unlock()
	if err != nil {
		writeRepoError(w, err)
		return
	}

	if note.Permission == repository.PermissionPrivate && !s.authorized(r) {
		http.Error(w, "Note not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		*repository.Note
		HTML string `json:"html"`
	}{note, markdown.Render(note.Content)})
}

func (s *Server) updateNote(w http.ResponseWriter, r *http.Request, id int64) {
	var req struct {
		Title      string                `json:"title"`
		Content    string                `json:"content"`
		Permission repository.Permission `json:"permission"`
		Folder     *string               `json:"folder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	note, err := s.repo.UpdateNote(id, req.Title, req.Content, req.Permission, req.Folder)
	s.mu.Unlock()
	if err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request, id int64) {
	s.mu.Lock()
	err := s.repo.DeleteNote(id)
	s.mu.Unlock()
	if err != nil {
		writeRepoError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFolders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		folders := s.repo.Folders()
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, folders)
	case http.MethodPost:
		s.requireToken(s.createFolder)(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) createFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err := s.repo.CreateFolder(req.Name)
	s.mu.Unlock()
	if err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"name": req.Name})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Action     string                `json:"action"`
		IDs        []int64               `json:"ids"`
		Folder     string                `json:"folder"`
		Permission repository.Permission `json:"permission"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	var (
		affected int
		err      error
	)
	switch req.Action {
	case "delete":
		affected, err = s.admin.BatchDelete(req.IDs)
	case "move":
		affected, err = s.admin.BatchMove(req.IDs, req.Folder)
	case "permission":
		affected, err = s.admin.BatchSetPermission(req.IDs, req.Permission)
	default:
		err = &repository.ValidationError{Field: "batch action"}
	}
	s.mu.Unlock()
	if err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"affected": affected})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	scope := admin.ExportScope(r.URL.Query().Get("scope"))
	if scope == "" {
		scope = admin.ScopeAll
	}

	s.mu.Lock()
	out, err := s.admin.ExportJSON(scope, r.URL.Query().Get("folder"))
	s.mu.Unlock()
	if err != nil {
		writeRepoError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(out))
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	mode := admin.ImportMode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = admin.ImportMerge
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	result, err := s.admin.ImportJSON(string(body), mode)
	s.mu.Unlock()
	if err != nil {
		writeRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stats, err := s.admin.Stats()
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// requireToken rejects requests lacking a valid bearer token.
func (s *Server) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authorized(r) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) authorized(r *http.Request) bool {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}
	_, err := auth.VerifyToken(token, s.secret)
	return err == nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeRepoError(w http.ResponseWriter, err error) {
	var (
		notFound   *repository.NotFoundError
		validation *repository.ValidationError
		duplicate  *repository.DuplicateError
		parse      *repository.ParseError
	)
	switch {
	case errors.As(err, &notFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &validation), errors.As(err, &duplicate), errors.As(err, &parse):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
