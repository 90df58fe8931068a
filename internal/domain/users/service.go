package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"animal-shelter/internal/platform/logger"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("user not found")
	ErrWrongPassword     = errors.New("wrong password")
	ErrAccountDisabled   = errors.New("account disabled")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrForbidden         = errors.New("forbidden")
	ErrProtectedUser     = errors.New("protected user")
)

const minPasswordLen = 6

type Service struct {
	repo     Repository
	sessions SessionRepository
	store    CurrentStore
	rec      ActivityRecorder
	log      logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, sessions SessionRepository, store CurrentStore, rec ActivityRecorder, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
		store:    store,
		rec:      rec,
		log:      log,
		now:      time.Now,
	}
}

// Login valida credenciales y deja la sesión iniciada y persistida.
// La contraseña se verifica antes que el flag activo, igual que el original:
// una cuenta desactivada con contraseña incorrecta responde ErrWrongPassword.
func (s *Service) Login(ctx context.Context, username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, ErrInvalidInput
	}

	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return User{}, err
	}

	if u.Password != password {
		return User{}, ErrWrongPassword
	}
	if !u.Active {
		return User{}, ErrAccountDisabled
	}

	if err := s.store.Set(u); err != nil {
		// la sesión en memoria ya quedó; solo falló la persistencia
		s.log.Warn("session persist failed", map[string]any{"error": err.Error()})
	}

	// registro de sesión: mejor esfuerzo, no bloquea el login
	sess := Session{
		UserID:    u.ID,
		Username:  u.Username,
		StartedAt: s.now(),
		IPAddress: "N/A",
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		s.log.Warn("session record failed", map[string]any{"username": u.Username, "error": err.Error()})
	}

	s.rec.Record(ctx, u.ID, u.Username, "Inicio de sesión", fmt.Sprintf("Usuario %s inició sesión", u.Username))

	return u, nil
}

// Register crea una cuenta nueva. El primer usuario de la tabla recibe rol
// administrador; los siguientes, rol usuario. No inicia sesión.
func (s *Service) Register(ctx context.Context, username, email, password string) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" {
		return User{}, ErrInvalidInput
	}
	if len(password) < minPasswordLen {
		return User{}, ErrInvalidInput
	}

	// chequeos de existencia antes de cualquier insert
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return User{}, ErrDuplicateUsername
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return User{}, ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return User{}, err
	}
	role := RoleUser
	if len(all) == 0 {
		role = RoleAdmin
	}

	u := User{
		Username:     username,
		Password:     password,
		Email:        email,
		Role:         role,
		Active:       true,
		RegisteredAt: s.now(),
	}
	return s.repo.Create(ctx, u)
}

// Logout registra la actividad (mejor esfuerzo) y limpia la sesión en
// memoria y la persistida. Un fallo del log nunca bloquea el cierre.
func (s *Service) Logout(ctx context.Context) {
	if u, ok := s.store.Current(); ok {
		s.rec.Record(ctx, u.ID, u.Username, "Cierre de sesión", fmt.Sprintf("Usuario %s cerró sesión", u.Username))
	}
	if err := s.store.Clear(); err != nil {
		s.log.Warn("session clear failed", map[string]any{"error": err.Error()})
	}
}

// EnsureDefaultAdmin crea el usuario administrador reservado si no existe.
// La credencial es un placeholder conocido: se loguea un warning para que
// nadie la confunda con un control de seguridad.
func (s *Service) EnsureDefaultAdmin(ctx context.Context) error {
	_, err := s.repo.FindByUsername(ctx, ReservedAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	u := User{
		Username:     ReservedAdminUsername,
		Password:     DefaultAdminPassword,
		Email:        DefaultAdminEmail,
		Role:         RoleAdmin,
		Active:       true,
		RegisteredAt: s.now(),
	}
	if _, err := s.repo.Create(ctx, u); err != nil {
		return err
	}

	s.log.Warn("default admin created with placeholder password, change it", map[string]any{
		"username": ReservedAdminUsername,
	})
	return nil
}

// List devuelve todos los usuarios; solo para administradores.
func (s *Service) List(ctx context.Context, actor User) ([]User, error) {
	if !CanPerform(actor.Role, ActionManageUsers) {
		return nil, ErrForbidden
	}
	return s.repo.List(ctx)
}

// ChangeRole cambia el rol de un usuario. Bloqueado por completo para
// no-administradores (sin llamada remota, sin actividad). Los usuarios
// protegidos (admin reservado o el propio actor) se rechazan acá, no solo
// en la capa de presentación.
func (s *Service) ChangeRole(ctx context.Context, actor User, userID int64, newRole Role) error {
	if !CanPerform(actor.Role, ActionManageUsers) {
		return ErrForbidden
	}
	if !ValidRole(newRole) {
		return ErrInvalidInput
	}

	target, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if target.Username == ReservedAdminUsername || target.ID == actor.ID {
		return ErrProtectedUser
	}

	if err := s.repo.UpdateRole(ctx, userID, newRole); err != nil {
		return err
	}

	s.rec.Record(ctx, actor.ID, actor.Username, "Cambio de rol",
		fmt.Sprintf("Cambió el rol del usuario ID %d a %s", userID, newRole))
	return nil
}

// ToggleActive invierte el flag activo de un usuario. Mismas reglas de
// permisos y protección que ChangeRole. Devuelve el nuevo estado.
func (s *Service) ToggleActive(ctx context.Context, actor User, userID int64) (bool, error) {
	if !CanPerform(actor.Role, ActionManageUsers) {
		return false, ErrForbidden
	}

	target, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if target.Username == ReservedAdminUsername || target.ID == actor.ID {
		return false, ErrProtectedUser
	}

	newStatus := !target.Active
	if err := s.repo.SetActive(ctx, userID, newStatus); err != nil {
		return false, err
	}

	if newStatus {
		s.rec.Record(ctx, actor.ID, actor.Username, "Usuario activar",
			fmt.Sprintf("Activó el usuario ID %d", userID))
	} else {
		s.rec.Record(ctx, actor.ID, actor.Username, "Usuario desactivar",
			fmt.Sprintf("Desactivó el usuario ID %d", userID))
	}
	return newStatus, nil
}
