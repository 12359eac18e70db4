package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/knobase/kb/internal/storage"
)

func newTestManager(t *testing.T) (*Manager, *storage.MemoryStore) {
	t.Helper()

	store := storage.NewMemoryStore()
	return NewManager(store), store
}

func TestConfigSeedsDefaultCredential(t *testing.T) {
	t.Parallel()

	m, store := newTestManager(t)
	cfg, err := m.Config()
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if cfg.Username != DefaultUsername {
		t.Fatalf("expected default username, got %q", cfg.Username)
	}
	if _, ok, _ := store.Load(storage.KeyAdminConfig); !ok {
		t.Fatalf("default credential should be persisted")
	}

	usingDefault, err := m.UsingDefaultCredential()
	if err != nil {
		t.Fatalf("default check failed: %v", err)
	}
	if !usingDefault {
		t.Fatalf("fresh store should report the default credential")
	}
}

func TestConfigIgnoresMalformedDocument(t *testing.T) {
	t.Parallel()

	m, store := newTestManager(t)
	if err := store.Save(storage.KeyAdminConfig, "{not json"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	cfg, err := m.Config()
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if cfg.Username != DefaultUsername {
		t.Fatalf("malformed document should reseed defaults, got %q", cfg.Username)
	}
}

func TestLoginTogglesPersistedFlag(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t)
	if err := m.UpdatePassword("admin123", "admin123"); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if err := m.Login(DefaultUsername, "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if m.LoggedIn() {
		t.Fatalf("failed login must not set the flag")
	}

	if err := m.Login(DefaultUsername, "admin123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !m.LoggedIn() {
		t.Fatalf("successful login should set the flag")
	}

	if err := m.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if m.LoggedIn() {
		t.Fatalf("logout should clear the flag")
	}
}

func TestLoginRejectsUnknownUsername(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t)
	if err := m.UpdatePassword("admin123", "admin123"); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := m.Login("root", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestUpdatePasswordValidation(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t)
	if err := m.UpdatePassword("short", "short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected too-short error, got %v", err)
	}
	if err := m.UpdatePassword("long-enough", "different"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected mismatch error, got %v", err)
	}

	if err := m.UpdatePassword("new-secret", "new-secret"); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := m.Login(DefaultUsername, "new-secret"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}

	usingDefault, err := m.UsingDefaultCredential()
	if err != nil {
		t.Fatalf("default check failed: %v", err)
	}
	if usingDefault {
		t.Fatalf("changed password should clear the default flag")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("admin", "secret", time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	username, err := VerifyToken(token, "secret")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if username != "admin" {
		t.Fatalf("expected username admin, got %q", username)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("admin", "secret", time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := VerifyToken(token, "other"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("admin", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := VerifyToken(token, "secret"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}
