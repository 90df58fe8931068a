package activity

import "context"

type Repository interface {
	Create(ctx context.Context, a Activity) error

	// List devuelve hasta limit actividades ordenadas por fecha desc.
	List(ctx context.Context, limit int) ([]Activity, error)
}
