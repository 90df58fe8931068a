package postgres

import (
	"context"
	"database/sql"

	"animal-shelter/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userColumns = `id, username, password, email, rol, activo, fecha_registro`

func scanUser(row interface{ Scan(...any) error }) (users.User, error) {
	var u users.User
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Password,
		&u.Email,
		&u.Role,
		&u.Active,
		&u.RegisteredAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) FindByUsername(ctx context.Context, username string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM usuarios
		WHERE username = $1
	`, username)
	return scanUser(row)
}

func (r *UsersRepo) FindByEmail(ctx context.Context, email string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM usuarios
		WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *UsersRepo) FindByID(ctx context.Context, id int64) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM usuarios
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *UsersRepo) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM usuarios
		ORDER BY fecha_registro DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO usuarios (username, password, email, rol, activo, fecha_registro)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`,
		u.Username,
		u.Password,
		u.Email,
		u.Role,
		u.Active,
		u.RegisteredAt,
	)
	if err := row.Scan(&u.ID); err != nil {
		return users.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) UpdateRole(ctx context.Context, id int64, role users.Role) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE usuarios SET rol = $2 WHERE id = $1
	`, id, role)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE usuarios SET activo = $2 WHERE id = $1
	`, id, active)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

type SessionsRepo struct {
	db *sql.DB
}

func NewSessionsRepo(db *sql.DB) *SessionsRepo {
	return &SessionsRepo{db: db}
}

func (r *SessionsRepo) Create(ctx context.Context, s users.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sesiones (usuario_id, username, fecha_inicio, ip_address)
		VALUES ($1,$2,$3,$4)
	`,
		s.UserID,
		s.Username,
		s.StartedAt,
		s.IPAddress,
	)
	return err
}
