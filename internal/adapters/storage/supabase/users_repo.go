package supabase

import (
	"context"

	"animal-shelter/internal/domain/users"
	rest "animal-shelter/internal/platform/supabase"
)

const (
	usersTable    = "usuarios"
	sessionsTable = "sesiones"
)

// UsersRepo implementa users.Repository sobre la tabla usuarios.
type UsersRepo struct {
	client *rest.Client
}

func NewUsersRepo(client *rest.Client) *UsersRepo {
	return &UsersRepo{client: client}
}

func (r *UsersRepo) FindByUsername(ctx context.Context, username string) (users.User, error) {
	return r.findOne(ctx, map[string]string{"username": username})
}

func (r *UsersRepo) FindByEmail(ctx context.Context, email string) (users.User, error) {
	return r.findOne(ctx, map[string]string{"email": email})
}

func (r *UsersRepo) FindByID(ctx context.Context, id int64) (users.User, error) {
	return r.findOne(ctx, map[string]string{"id": itoa(id)})
}

// findOne devuelve la primera fila que cumple los filtros; cero filas es
// users.ErrNotFound, nunca un error de transporte.
func (r *UsersRepo) findOne(ctx context.Context, eq map[string]string) (users.User, error) {
	var rows []users.User
	err := r.client.Select(ctx, usersTable, rest.SelectOptions{Eq: eq, Limit: 1}, &rows)
	if err != nil {
		return users.User{}, err
	}
	if len(rows) == 0 {
		return users.User{}, users.ErrNotFound
	}
	return rows[0], nil
}

func (r *UsersRepo) List(ctx context.Context) ([]users.User, error) {
	rows := make([]users.User, 0)
	err := r.client.Select(ctx, usersTable, rest.SelectOptions{Order: "fecha_registro.desc"}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	var rows []users.User
	if err := r.client.Insert(ctx, usersTable, u, &rows); err != nil {
		return users.User{}, err
	}
	if len(rows) == 0 {
		// return=representation no devolvió la fila; raro pero posible
		return u, nil
	}
	return rows[0], nil
}

func (r *UsersRepo) UpdateRole(ctx context.Context, id int64, role users.Role) error {
	return r.client.Update(ctx, usersTable, id, map[string]any{"rol": role}, nil)
}

func (r *UsersRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return r.client.Update(ctx, usersTable, id, map[string]any{"activo": active}, nil)
}

// SessionsRepo apendea registros de login en la tabla sesiones.
type SessionsRepo struct {
	client *rest.Client
}

func NewSessionsRepo(client *rest.Client) *SessionsRepo {
	return &SessionsRepo{client: client}
}

func (r *SessionsRepo) Create(ctx context.Context, s users.Session) error {
	return r.client.Insert(ctx, sessionsTable, s, nil)
}
