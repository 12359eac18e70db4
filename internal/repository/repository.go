// Package repository holds the in-memory note and folder collections and
// keeps them in sync with the persistent store. Every mutation flushes the
// whole collection back; with a single logical writer that is cheap and keeps
// the persisted documents interchangeable with the browser build.
package repository

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/knobase/kb/internal/storage"
)

// Unclassified is the implicit group for notes without a folder reference.
const Unclassified = "unclassified"

// DateLayout renders the short localized date stamp carried by notes.
const DateLayout = "2006/1/2"

type Repo struct {
	store storage.Store
	now   func() time.Time

	notes    []*Note
	folders  []string
	expanded map[string]bool

	// Transient selection state; never persisted, cleared on logout.
	currentFolder string

	lastID int64
}

// NewRepo loads the persisted collections. Absent or malformed documents fall
// back to empty defaults so corrupt local data never bricks the app.
func NewRepo(store storage.Store) (*Repo, error) {
	r := &Repo{
		store:    store,
		now:      time.Now,
		expanded: make(map[string]bool),
	}

	if raw, ok, err := store.Load(storage.KeyNotes); err != nil {
		return nil, fmt.Errorf("loading notes: %w", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &r.notes); err != nil {
			r.notes = nil
		}
	}

	if raw, ok, err := store.Load(storage.KeyFolders); err != nil {
		return nil, fmt.Errorf("loading folders: %w", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &r.folders); err != nil {
			r.folders = nil
		}
	}

	loaded := false
	if raw, ok, err := store.Load(storage.KeyExpandedFolders); err != nil {
		return nil, fmt.Errorf("loading folder expansion state: %w", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &r.expanded); err == nil {
			loaded = true
		} else {
			r.expanded = make(map[string]bool)
		}
	}
	if !loaded {
		for _, folder := range r.folders {
			r.expanded[folder] = true
		}
	}

	for _, note := range r.notes {
		if note.ID > r.lastID {
			r.lastID = note.ID
		}
	}

	return r, nil
}

func (r *Repo) persist() error {
	notes := r.notes
	if notes == nil {
		notes = []*Note{}
	}
	folders := r.folders
	if folders == nil {
		folders = []string{}
	}

	notesJSON, err := json.Marshal(notes)
	if err != nil {
		return err
	}
	foldersJSON, err := json.Marshal(folders)
	if err != nil {
		return err
	}
	expandedJSON, err := json.Marshal(r.expanded)
	if err != nil {
		return err
	}

	if err := r.store.Save(storage.KeyNotes, string(notesJSON)); err != nil {
		return fmt.Errorf("saving notes: %w", err)
	}
	if err := r.store.Save(storage.KeyFolders, string(foldersJSON)); err != nil {
		return fmt.Errorf("saving folders: %w", err)
	}
	if err := r.store.Save(storage.KeyExpandedFolders, string(expandedJSON)); err != nil {
		return fmt.Errorf("saving folder expansion state: %w", err)
	}

	return nil
}

// nextID assigns a time-based id, bumping past the newest known id so two
// notes created within the same millisecond never collide.
func (r *Repo) nextID() int64 {
	id := r.now().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}

func normalizeFolder(folder *string) *string {
	if folder == nil {
		return nil
	}
	name := strings.TrimSpace(*folder)
	if name == "" {
		return nil
	}
	return &name
}

// CreateNote validates and appends a new note, returning it after the flush.
// An empty permission falls back to public.
func (r *Repo) CreateNote(title, content string, permission Permission, folder *string) (*Note, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" {
		return nil, &ValidationError{Field: "title"}
	}
	if content == "" {
		return nil, &ValidationError{Field: "content"}
	}
	if permission == "" {
		permission = PermissionPublic
	}
	if !permission.Valid() {
		return nil, fmt.Errorf("unknown permission: %s", permission)
	}

	note := &Note{
		ID:         r.nextID(),
		Title:      title,
		Content:    content,
		Date:       r.now().Format(DateLayout),
		Permission: permission,
		Folder:     normalizeFolder(folder),
	}

	r.notes = append(r.notes, note)
	if err := r.persist(); err != nil {
		return nil, err
	}

	return note, nil
}

// UpdateNote replaces the editable fields of an existing note and refreshes
// its date stamp, mirroring how saving an edit works in the UI.
func (r *Repo) UpdateNote(id int64, title, content string, permission Permission, folder *string) (*Note, error) {
	note := r.find(id)
	if note == nil {
		return nil, &NotFoundError{Kind: "note", Ref: fmt.Sprint(id)}
	}

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return nil, &ValidationError{Field: "title"}
	}
	if content == "" {
		return nil, &ValidationError{Field: "content"}
	}
	if permission == "" {
		permission = note.Permission
	}
	if !permission.Valid() {
		return nil, fmt.Errorf("unknown permission: %s", permission)
	}

	note.Title = title
	note.Content = content
	note.Permission = permission
	note.Folder = normalizeFolder(folder)
	note.Date = r.now().Format(DateLayout)

	if err := r.persist(); err != nil {
		return nil, err
	}

	return note, nil
}

// DeleteNote removes the note with the given id. Deleting an absent id is a
// no-op so repeated deletes stay safe.
func (r *Repo) DeleteNote(id int64) error {
	kept := r.notes[:0]
	removed := false
	for _, note := range r.notes {
		if note.ID == id {
			removed = true
			continue
		}
		kept = append(kept, note)
	}

	if !removed {
		return nil
	}

	r.notes = kept
	return r.persist()
}

func (r *Repo) find(id int64) *Note {
	for _, note := range r.notes {
		if note.ID == id {
			return note
		}
	}
	return nil
}

// Note returns the note with the given id.
func (r *Repo) Note(id int64) (*Note, error) {
	note := r.find(id)
	if note == nil {
		return nil, &NotFoundError{Kind: "note", Ref: fmt.Sprint(id)}
	}
	return note, nil
}

// Notes returns the notes in insertion order. The returned slice is a copy;
// the notes themselves are shared and must be mutated through the repository.
func (r *Repo) Notes() []*Note {
	notes := make([]*Note, len(r.notes))
	copy(notes, r.notes)
	return notes
}

// Folders returns the folder names in creation order.
func (r *Repo) Folders() []string {
	folders := make([]string, len(r.folders))
	copy(folders, r.folders)
	return folders
}

// HasFolder reports whether name is a known folder (case-sensitive).
func (r *Repo) HasFolder(name string) bool {
	for _, folder := range r.folders {
		if folder == name {
			return true
		}
	}
	return false
}

// NotesByFolder groups notes by folder name, preserving insertion order
// within each group. The Unclassified group is always present.
func (r *Repo) NotesByFolder() map[string][]*Note {
	grouped := map[string][]*Note{Unclassified: {}}
	for _, note := range r.notes {
		name := note.FolderName()
		grouped[name] = append(grouped[name], note)
	}
	return grouped
}

// SearchNotes matches query case-insensitively against title or content. An
// empty query returns all notes in their original order.
func (r *Repo) SearchNotes(query string) []*Note {
	if query == "" {
		return r.Notes()
	}

	lower := strings.ToLower(query)
	var matched []*Note
	for _, note := range r.notes {
		if strings.Contains(strings.ToLower(note.Title), lower) ||
			strings.Contains(strings.ToLower(note.Content), lower) {
			matched = append(matched, note)
		}
	}
	return matched
}

// FilterNotes narrows the collection by free-text query, folder name, and
// permission; empty values match everything.
func (r *Repo) FilterNotes(query, folder string, permission Permission) []*Note {
	lower := strings.ToLower(query)

	var matched []*Note
	for _, note := range r.notes {
		if lower != "" &&
			!strings.Contains(strings.ToLower(note.Title), lower) &&
			!strings.Contains(strings.ToLower(note.Content), lower) {
			continue
		}
		if folder != "" && note.FolderName() != folder {
			continue
		}
		if permission != "" && note.Permission != permission {
			continue
		}
		matched = append(matched, note)
	}
	return matched
}

// CreateFolder registers a new folder name, expanded by default.
func (r *Repo) CreateFolder(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "folder name"}
	}
	if r.HasFolder(name) {
		return &DuplicateError{Name: name}
	}

	r.folders = append(r.folders, name)
	r.expanded[name] = true
	return r.persist()
}

// RenameFolder rewrites the folder's identity everywhere it appears: the
// folder list, the expansion map, every referencing note, and the live
// selection. Renaming a folder to itself is a no-op.
func (r *Repo) RenameFolder(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return &ValidationError{Field: "folder name"}
	}
	if newName == oldName {
		return nil
	}
	if r.HasFolder(newName) {
		return &DuplicateError{Name: newName}
	}

	idx := -1
	for i, folder := range r.folders {
		if folder == oldName {
			idx = i
			break
		}
	}
	if idx == -1 {
		return &NotFoundError{Kind: "folder", Ref: oldName}
	}

	r.folders[idx] = newName

	if state, ok := r.expanded[oldName]; ok {
		r.expanded[newName] = state
		delete(r.expanded, oldName)
	}

	for _, note := range r.notes {
		if note.Folder != nil && *note.Folder == oldName {
			renamed := newName
			note.Folder = &renamed
		}
	}

	if r.currentFolder == oldName {
		r.currentFolder = newName
	}

	return r.persist()
}

// DeleteFolder removes the folder and reassigns its notes to the
// unclassified group, returning how many notes were moved.
func (r *Repo) DeleteFolder(name string) (int, error) {
	if !r.HasFolder(name) {
		return 0, &NotFoundError{Kind: "folder", Ref: name}
	}

	moved := 0
	for _, note := range r.notes {
		if note.Folder != nil && *note.Folder == name {
			note.Folder = nil
			moved++
		}
	}

	kept := r.folders[:0]
	for _, folder := range r.folders {
		if folder != name {
			kept = append(kept, folder)
		}
	}
	r.folders = kept

	delete(r.expanded, name)

	if r.currentFolder == name {
		r.currentFolder = ""
	}

	if err := r.persist(); err != nil {
		return 0, err
	}
	return moved, nil
}

// MoveNoteToFolder reassigns a note. It returns false without error when the
// note is already in the target folder, so callers can report the distinction.
func (r *Repo) MoveNoteToFolder(id int64, target *string) (bool, error) {
	note := r.find(id)
	if note == nil {
		return false, &NotFoundError{Kind: "note", Ref: fmt.Sprint(id)}
	}

	target = normalizeFolder(target)
	if note.InFolder(target) {
		return false, nil
	}

	note.Folder = target
	if err := r.persist(); err != nil {
		return false, err
	}
	return true, nil
}

// ToggleFolderExpansion flips the expansion state and returns the new value.
func (r *Repo) ToggleFolderExpansion(name string) (bool, error) {
	if !r.HasFolder(name) {
		return false, &NotFoundError{Kind: "folder", Ref: name}
	}

	state := !r.Expanded(name)
	r.expanded[name] = state
	if err := r.persist(); err != nil {
		return false, err
	}
	return state, nil
}

// Expanded reports the folder's expansion state, defaulting to expanded.
func (r *Repo) Expanded(name string) bool {
	return r.expanded[name] || !r.hasExpansionEntry(name)
}

func (r *Repo) hasExpansionEntry(name string) bool {
	_, ok := r.expanded[name]
	return ok
}

// SelectFolder toggles the transient folder selection: selecting the current
// folder again clears it.
func (r *Repo) SelectFolder(name string) {
	if r.currentFolder == name {
		r.currentFolder = ""
		return
	}
	r.currentFolder = name
}

// SelectedFolder returns the transient folder selection, empty for none.
func (r *Repo) SelectedFolder() string {
	return r.currentFolder
}

// ClearSelection drops transient selection state, as on logout.
func (r *Repo) ClearSelection() {
	r.currentFolder = ""
}

// ReplaceAll swaps in entirely new collections, as in a replace-mode import.
// Expansion state is rebuilt with every folder expanded.
func (r *Repo) ReplaceAll(notes []*Note, folders []string) error {
	r.notes = notes
	r.folders = folders
	r.expanded = make(map[string]bool)
	for _, folder := range folders {
		r.expanded[folder] = true
	}

	r.lastID = 0
	for _, note := range r.notes {
		if note.ID > r.lastID {
			r.lastID = note.ID
		}
	}

	r.currentFolder = ""
	return r.persist()
}

// Merge appends notes with unseen ids and folders with unseen names; existing
// entries are never overwritten. Returns how many of each were added.
func (r *Repo) Merge(notes []*Note, folders []string) (int, int, error) {
	existingIDs := make(map[int64]struct{}, len(r.notes))
	for _, note := range r.notes {
		existingIDs[note.ID] = struct{}{}
	}

	addedNotes := 0
	for _, note := range notes {
		if _, ok := existingIDs[note.ID]; ok {
			continue
		}
		r.notes = append(r.notes, note)
		existingIDs[note.ID] = struct{}{}
		if note.ID > r.lastID {
			r.lastID = note.ID
		}
		addedNotes++
	}

	addedFolders := 0
	for _, folder := range folders {
		if r.HasFolder(folder) {
			continue
		}
		r.folders = append(r.folders, folder)
		r.expanded[folder] = true
		addedFolders++
	}

	if err := r.persist(); err != nil {
		return 0, 0, err
	}
	return addedNotes, addedFolders, nil
}
