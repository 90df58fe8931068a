package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"animal-shelter/internal/platform/logger"
)

type fakeUsersRepo struct {
	nextID int64
	byID   map[int64]User

	createCalls int
	updateCalls int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{nextID: 1, byID: map[int64]User{}}
}

func (r *fakeUsersRepo) FindByUsername(ctx context.Context, username string) (User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *fakeUsersRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *fakeUsersRepo) FindByID(ctx context.Context, id int64) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *fakeUsersRepo) List(ctx context.Context) ([]User, error) {
	out := make([]User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUsersRepo) Create(ctx context.Context, u User) (User, error) {
	r.createCalls++
	u.ID = r.nextID
	r.nextID++
	r.byID[u.ID] = u
	return u, nil
}

func (r *fakeUsersRepo) UpdateRole(ctx context.Context, id int64, role Role) error {
	r.updateCalls++
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.Role = role
	r.byID[id] = u
	return nil
}

func (r *fakeUsersRepo) SetActive(ctx context.Context, id int64, active bool) error {
	r.updateCalls++
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.Active = active
	r.byID[id] = u
	return nil
}

type fakeSessions struct {
	rows []Session
	err  error
}

func (r *fakeSessions) Create(ctx context.Context, s Session) error {
	if r.err != nil {
		return r.err
	}
	r.rows = append(r.rows, s)
	return nil
}

type fakeStore struct {
	current *User
}

func (s *fakeStore) Current() (User, bool) {
	if s.current == nil {
		return User{}, false
	}
	return *s.current, true
}

func (s *fakeStore) Set(u User) error {
	s.current = &u
	return nil
}

func (s *fakeStore) Clear() error {
	s.current = nil
	return nil
}

type recordedActivity struct {
	UserID  int64
	Action  string
	Details string
}

type fakeRecorder struct {
	records []recordedActivity
}

func (r *fakeRecorder) Record(ctx context.Context, userID int64, username, action, details string) {
	r.records = append(r.records, recordedActivity{UserID: userID, Action: action, Details: details})
}

func newTestService(repo *fakeUsersRepo) (*Service, *fakeStore, *fakeSessions, *fakeRecorder) {
	store := &fakeStore{}
	sessions := &fakeSessions{}
	rec := &fakeRecorder{}
	svc := NewService(repo, sessions, store, rec, logger.Nop())
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, store, sessions, rec
}

func seedUser(repo *fakeUsersRepo, username, password string, role Role, active bool) User {
	u, _ := repo.Create(context.Background(), User{
		Username: username,
		Password: password,
		Email:    username + "@test.local",
		Role:     role,
		Active:   active,
	})
	repo.createCalls-- // el seed no cuenta como create del caso bajo prueba
	return u
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUsersRepo()
	seedUser(repo, "maria", "secreta1", RoleUser, true)
	svc, store, sessions, rec := newTestService(repo)

	u, err := svc.Login(context.Background(), "  maria  ", "secreta1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.Username != "maria" {
		t.Fatalf("expected maria, got %q", u.Username)
	}

	if cur, ok := store.Current(); !ok || cur.Username != "maria" {
		t.Fatalf("expected persisted session for maria, got %+v ok=%v", cur, ok)
	}
	if len(sessions.rows) != 1 {
		t.Fatalf("expected 1 session row, got %d", len(sessions.rows))
	}
	if len(rec.records) != 1 || rec.records[0].Action != "Inicio de sesión" {
		t.Fatalf("expected login activity, got %+v", rec.records)
	}
}

func TestLogin_WrongPasswordCheckedBeforeDisabledFlag(t *testing.T) {
	repo := newFakeUsersRepo()
	seedUser(repo, "pedro", "correcta6", RoleUser, false) // desactivado
	svc, _, _, _ := newTestService(repo)

	// contraseña incorrecta en cuenta desactivada: gana la contraseña
	_, err := svc.Login(context.Background(), "pedro", "incorrecta")
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	// contraseña correcta: recién ahí aparece el flag
	_, err = svc.Login(context.Background(), "pedro", "correcta6")
	if !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _, _, _ := newTestService(newFakeUsersRepo())

	_, err := svc.Login(context.Background(), "nadie", "loquesea")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLogin_SessionRowFailureDoesNotBlock(t *testing.T) {
	repo := newFakeUsersRepo()
	seedUser(repo, "maria", "secreta1", RoleUser, true)
	svc, store, sessions, _ := newTestService(repo)
	sessions.err = errors.New("remote down")

	if _, err := svc.Login(context.Background(), "maria", "secreta1"); err != nil {
		t.Fatalf("login must succeed even if session row fails: %v", err)
	}
	if _, ok := store.Current(); !ok {
		t.Fatal("expected session to be set anyway")
	}
}

func TestRegister_FirstUserIsAdmin(t *testing.T) {
	repo := newFakeUsersRepo()
	svc, _, _, _ := newTestService(repo)

	first, err := svc.Register(context.Background(), "ana", "ana@test.local", "clave123")
	if err != nil {
		t.Fatalf("register first: %v", err)
	}
	if first.Role != RoleAdmin {
		t.Fatalf("first user must be admin, got %q", first.Role)
	}
	if !first.Active {
		t.Fatal("new users must start active")
	}

	second, err := svc.Register(context.Background(), "beto", "beto@test.local", "clave123")
	if err != nil {
		t.Fatalf("register second: %v", err)
	}
	if second.Role != RoleUser {
		t.Fatalf("second user must be plain user, got %q", second.Role)
	}
}

func TestRegister_DuplicateUsernameBeforeInsert(t *testing.T) {
	repo := newFakeUsersRepo()
	seedUser(repo, "ana", "clave123", RoleUser, true)
	svc, _, _, _ := newTestService(repo)

	_, err := svc.Register(context.Background(), "ana", "otra@test.local", "clave123")
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("duplicate username must not insert, got %d creates", repo.createCalls)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUsersRepo()
	seedUser(repo, "ana", "clave123", RoleUser, true)
	svc, _, _, _ := newTestService(repo)

	_, err := svc.Register(context.Background(), "otra", "ana@test.local", "clave123")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	svc, _, _, _ := newTestService(newFakeUsersRepo())

	_, err := svc.Register(context.Background(), "ana", "ana@test.local", "corta")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
}

func TestLogout_RecordsAndClears(t *testing.T) {
	repo := newFakeUsersRepo()
	u := seedUser(repo, "maria", "secreta1", RoleUser, true)
	svc, store, _, rec := newTestService(repo)
	_ = store.Set(u)

	svc.Logout(context.Background())

	if _, ok := store.Current(); ok {
		t.Fatal("expected session cleared")
	}
	if len(rec.records) != 1 || rec.records[0].Action != "Cierre de sesión" {
		t.Fatalf("expected logout activity, got %+v", rec.records)
	}
}

func TestEnsureDefaultAdmin_Idempotent(t *testing.T) {
	repo := newFakeUsersRepo()
	svc, _, _, _ := newTestService(repo)

	if err := svc.EnsureDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if repo.createCalls != 1 {
		t.Fatalf("expected 1 create, got %d", repo.createCalls)
	}

	admin, err := repo.FindByUsername(context.Background(), ReservedAdminUsername)
	if err != nil {
		t.Fatalf("find admin: %v", err)
	}
	if admin.Role != RoleAdmin || !admin.Active {
		t.Fatalf("unexpected admin account: %+v", admin)
	}

	if err := svc.EnsureDefaultAdmin(context.Background()); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	if repo.createCalls != 1 {
		t.Fatalf("bootstrap must be idempotent, got %d creates", repo.createCalls)
	}
}

func TestList_RequiresAdmin(t *testing.T) {
	repo := newFakeUsersRepo()
	seedUser(repo, "ana", "clave123", RoleUser, true)
	svc, _, _, _ := newTestService(repo)

	if _, err := svc.List(context.Background(), User{Role: RoleUser}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for plain user, got %v", err)
	}
	if _, err := svc.List(context.Background(), User{Role: RoleGuest}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for guest, got %v", err)
	}
	if _, err := svc.List(context.Background(), User{Role: RoleAdmin}); err != nil {
		t.Fatalf("admin list: %v", err)
	}
}

func TestChangeRole_NonAdminBlockedBeforeAnyCall(t *testing.T) {
	repo := newFakeUsersRepo()
	target := seedUser(repo, "ana", "clave123", RoleUser, true)
	svc, _, _, rec := newTestService(repo)

	err := svc.ChangeRole(context.Background(), User{ID: 99, Role: RoleUser}, target.ID, RoleAdmin)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("forbidden change must not touch the repo, got %d updates", repo.updateCalls)
	}
	if len(rec.records) != 0 {
		t.Fatalf("forbidden change must not log activity, got %+v", rec.records)
	}
}

func TestChangeRole_ProtectedUsers(t *testing.T) {
	repo := newFakeUsersRepo()
	reserved := seedUser(repo, ReservedAdminUsername, DefaultAdminPassword, RoleAdmin, true)
	other := seedUser(repo, "carla", "clave123", RoleAdmin, true)
	svc, _, _, _ := newTestService(repo)

	// el admin reservado no se toca
	err := svc.ChangeRole(context.Background(), other, reserved.ID, RoleUser)
	if !errors.Is(err, ErrProtectedUser) {
		t.Fatalf("expected ErrProtectedUser for reserved admin, got %v", err)
	}

	// nadie se cambia el rol a sí mismo
	err = svc.ChangeRole(context.Background(), other, other.ID, RoleUser)
	if !errors.Is(err, ErrProtectedUser) {
		t.Fatalf("expected ErrProtectedUser for self, got %v", err)
	}
}

func TestChangeRole_InvalidRole(t *testing.T) {
	repo := newFakeUsersRepo()
	target := seedUser(repo, "ana", "clave123", RoleUser, true)
	admin := seedUser(repo, "carla", "clave123", RoleAdmin, true)
	svc, _, _, _ := newTestService(repo)

	err := svc.ChangeRole(context.Background(), admin, target.ID, Role("superusuario"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestChangeRole_Success(t *testing.T) {
	repo := newFakeUsersRepo()
	target := seedUser(repo, "ana", "clave123", RoleUser, true)
	admin := seedUser(repo, "carla", "clave123", RoleAdmin, true)
	svc, _, _, rec := newTestService(repo)

	if err := svc.ChangeRole(context.Background(), admin, target.ID, RoleAdmin); err != nil {
		t.Fatalf("change role: %v", err)
	}

	got, _ := repo.FindByID(context.Background(), target.ID)
	if got.Role != RoleAdmin {
		t.Fatalf("expected admin role, got %q", got.Role)
	}
	if len(rec.records) != 1 || rec.records[0].Action != "Cambio de rol" {
		t.Fatalf("expected role change activity, got %+v", rec.records)
	}
}

func TestToggleActive_FlipsAndReturnsNewState(t *testing.T) {
	repo := newFakeUsersRepo()
	target := seedUser(repo, "ana", "clave123", RoleUser, true)
	admin := seedUser(repo, "carla", "clave123", RoleAdmin, true)
	svc, _, _, rec := newTestService(repo)

	active, err := svc.ToggleActive(context.Background(), admin, target.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if active {
		t.Fatal("expected deactivation")
	}
	if rec.records[len(rec.records)-1].Action != "Usuario desactivar" {
		t.Fatalf("expected deactivate activity, got %+v", rec.records)
	}

	active, err = svc.ToggleActive(context.Background(), admin, target.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if !active {
		t.Fatal("expected reactivation")
	}
	if rec.records[len(rec.records)-1].Action != "Usuario activar" {
		t.Fatalf("expected activate activity, got %+v", rec.records)
	}
}

func TestCanPerform_GuestCapabilities(t *testing.T) {
	if !CanPerform(RoleGuest, ActionAdoptAnimal) {
		t.Fatal("guests can register adoptions")
	}
	if CanPerform(RoleGuest, ActionCreateAnimal) {
		t.Fatal("guests cannot create animals")
	}
	if CanPerform(RoleUser, ActionDeleteAnimal) {
		t.Fatal("only admins delete animals")
	}
	if !CanPerform(RoleAdmin, ActionManageUsers) {
		t.Fatal("admins manage users")
	}
}
