package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"animal-shelter/internal/domain/users"
)

// Store mantiene el usuario autenticado del proceso y lo persiste en un
// archivo JSON, de modo que un reinicio restaura la sesión sin volver a
// autenticar (el análogo del localStorage del cliente original).
// Estado: Anonymous -> Authenticated; Clear vuelve a Anonymous.
type Store struct {
	mu      sync.RWMutex
	path    string
	current *users.User
}

func NewStore(path string) *Store {
	return &Store{path: strings.TrimSpace(path)}
}

// Load restaura la sesión persistida si existe. Que no haya archivo no es
// un error: simplemente no hay sesión.
func (s *Store) Load() error {
	if s.path == "" {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("session: read state: %w", err)
	}

	var u users.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return fmt.Errorf("session: decode state: %w", err)
	}

	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()
	return nil
}

// Current devuelve el usuario autenticado, si hay uno.
func (s *Store) Current() (users.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return users.User{}, false
	}
	return *s.current, true
}

// Set deja la sesión iniciada en memoria y la persiste (escritura
// tmp+rename para no dejar un archivo a medias).
func (s *Store) Set(u users.User) error {
	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()

	if s.path == "" {
		return nil
	}

	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("session: encode state: %w", err)
	}

	tmp := s.path + ".tmp"
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("session: mkdir state dir: %w", err)
		}
	}
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("session: write state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("session: rename state: %w", err)
	}
	return nil
}

// Clear borra la sesión en memoria y la persistida.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: remove state: %w", err)
	}
	return nil
}
