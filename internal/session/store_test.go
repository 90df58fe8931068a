package session

import (
	"os"
	"path/filepath"
	"testing"

	"animal-shelter/internal/domain/users"
)

func TestStore_SetLoadClearAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")

	first := NewStore(path)
	u := users.User{ID: 3, Username: "maria", Role: users.RoleUser, Active: true}
	if err := first.Set(u); err != nil {
		t.Fatalf("set: %v", err)
	}

	// un proceso nuevo restaura la sesión del archivo
	second := NewStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	got, ok := second.Current()
	if !ok {
		t.Fatal("expected restored session")
	}
	if got.ID != u.ID || got.Username != u.Username || got.Role != u.Role {
		t.Fatalf("restored user mismatch: %+v", got)
	}

	if err := second.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := second.Current(); ok {
		t.Fatal("expected empty session after clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected state file removed, got %v", err)
	}

	// clear repetido no falla
	if err := second.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestStore_LoadMissingFileIsNotAnError(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope.json"))
	if err := s.Load(); err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if _, ok := s.Current(); ok {
		t.Fatal("expected no session")
	}
}

func TestStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := NewStore(path)
	if err := s.Load(); err == nil {
		t.Fatal("expected error for corrupt state")
	}
	if _, ok := s.Current(); ok {
		t.Fatal("corrupt state must not leave a session")
	}
}

func TestStore_EmptyPathStaysInMemory(t *testing.T) {
	s := NewStore("")
	if err := s.Set(users.User{ID: 1, Username: "ana"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := s.Current(); !ok {
		t.Fatal("expected in-memory session")
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
}
