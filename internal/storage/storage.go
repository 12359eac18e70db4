// Package storage provides the key-value store boundary that every other
// component persists through. The key schema mirrors the browser build of the
// knowledge base so exported data stays interchangeable with it.
package storage

// Keys under which the knowledge base persists its documents.
const (
	KeyNotes           = "knowledge_notes"
	KeyFolders         = "knowledge_folders"
	KeyExpandedFolders = "knowledge_expanded_folders"
	KeyLoggedIn        = "knowledge_logged_in"
	KeyAdminConfig     = "knowledge_admin_config"
	KeySiteConfig      = "knowledge_site_config"
	KeySearchHistory   = "knowledge_search_history"
	KeyLastBackup      = "knowledge_last_backup"
)

// KeyPrefix namespaces every key the application owns. Reset and storage
// accounting only touch keys carrying this prefix.
const KeyPrefix = "knowledge_"

// Store is the durable key-value boundary. Values are opaque text; callers
// treat absent or malformed values as "use defaults" rather than errors.
type Store interface {
	// Load returns the value for key and whether it was present.
	Load(key string) (string, bool, error)

	// Save writes value under key, replacing any previous value.
	Save(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Keys lists every stored key carrying the application prefix.
	Keys() ([]string, error)
}
