package adoptions

import "context"

type Repository interface {
	// Create devuelve la adopción con el id asignado por el storage.
	Create(ctx context.Context, a Adoption) (Adoption, error)

	// List devuelve todas las adopciones ordenadas por fecha_adopcion desc.
	List(ctx context.Context) ([]Adoption, error)
}

// Recorder registra actividades sin propagar errores.
type Recorder interface {
	Record(ctx context.Context, userID int64, username, action, details string)
}
