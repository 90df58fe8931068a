package users

import "context"

type Repository interface {
	FindByUsername(ctx context.Context, username string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id int64) (User, error)

	// List devuelve todos los usuarios ordenados por fecha_registro desc.
	List(ctx context.Context) ([]User, error)

	// Create devuelve el usuario con el id asignado por el storage.
	Create(ctx context.Context, u User) (User, error)

	UpdateRole(ctx context.Context, id int64, role Role) error
	SetActive(ctx context.Context, id int64, active bool) error
}

// SessionRepository apendea registros de inicio de sesión.
type SessionRepository interface {
	Create(ctx context.Context, s Session) error
}

// CurrentStore abstrae el estado de sesión del proceso (quién está
// autenticado), persistido entre reinicios.
type CurrentStore interface {
	Current() (User, bool)
	Set(u User) error
	Clear() error
}

// ActivityRecorder registra actividades sin propagar errores.
type ActivityRecorder interface {
	Record(ctx context.Context, userID int64, username, action, details string)
}
