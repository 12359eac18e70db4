// Package auth manages the single admin credential and the persisted login
// flag. Passwords are never stored; only a hex-encoded SHA-256 digest is,
// matching the persisted schema of the browser build.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/knobase/kb/internal/storage"
)

// DefaultUsername is the bootstrap admin account name.
const DefaultUsername = "admin"

// defaultPasswordHash is the digest the first run is seeded with. Shipping a
// default credential is a bootstrap convenience and a known risk: commands
// warn until the password is changed.
const defaultPasswordHash = "4856b4c766c93797de294cadb3c6ca287703eeba6b8a62c929d37849d826bd17"

const minPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

// AdminConfig is the persisted credential document.
type AdminConfig struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

type Manager struct {
	store storage.Store
}

func NewManager(store storage.Store) *Manager {
	return &Manager{store: store}
}

// HashPassword returns the hex-encoded SHA-256 digest of the password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Config loads the admin credential, seeding the default on first use or
// when the stored document is malformed.
func (m *Manager) Config() (AdminConfig, error) {
	raw, ok, err := m.store.Load(storage.KeyAdminConfig)
	if err != nil {
		return AdminConfig{}, fmt.Errorf("loading admin config: %w", err)
	}

	if ok {
		var cfg AdminConfig
		if err := json.Unmarshal([]byte(raw), &cfg); err == nil && cfg.Username != "" {
			return cfg, nil
		}
	}

	cfg := AdminConfig{Username: DefaultUsername, PasswordHash: defaultPasswordHash}
	if err := m.saveConfig(cfg); err != nil {
		return AdminConfig{}, err
	}
	return cfg, nil
}

func (m *Manager) saveConfig(cfg AdminConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return m.store.Save(storage.KeyAdminConfig, string(data))
}

// Login checks the credential and persists the login flag on success.
func (m *Manager) Login(username, password string) error {
	cfg, err := m.Config()
	if err != nil {
		return err
	}

	if username != cfg.Username {
		return ErrInvalidCredentials
	}

	hash := HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(hash), []byte(cfg.PasswordHash)) != 1 {
		return ErrInvalidCredentials
	}

	return m.store.Save(storage.KeyLoggedIn, "true")
}

// Logout clears the persisted login flag.
func (m *Manager) Logout() error {
	return m.store.Delete(storage.KeyLoggedIn)
}

// LoggedIn reports whether the persisted login flag is set.
func (m *Manager) LoggedIn() bool {
	value, ok, err := m.store.Load(storage.KeyLoggedIn)
	if err != nil || !ok {
		return false
	}
	return value == "true"
}

// UpdatePassword validates and stores a new password digest.
func (m *Manager) UpdatePassword(newPassword, confirm string) error {
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	cfg, err := m.Config()
	if err != nil {
		return err
	}

	cfg.PasswordHash = HashPassword(newPassword)
	return m.saveConfig(cfg)
}

// UsingDefaultCredential reports whether the stored hash is still the seeded
// bootstrap credential.
func (m *Manager) UsingDefaultCredential() (bool, error) {
	cfg, err := m.Config()
	if err != nil {
		return false, err
	}
	return cfg.PasswordHash == defaultPasswordHash, nil
}
