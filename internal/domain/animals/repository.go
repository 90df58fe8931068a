package animals

import (
	"context"
	"time"
)

type Repository interface {
	// List devuelve todos los animales ordenados por fecha_ingreso desc.
	List(ctx context.Context) ([]Animal, error)
	GetByID(ctx context.Context, id int64) (Animal, error)

	// Create devuelve el animal con el id asignado por el storage.
	Create(ctx context.Context, a Animal) (Animal, error)
	Update(ctx context.Context, a Animal) (Animal, error)

	// UpdateState solo toca estado y fecha_actualizacion.
	UpdateState(ctx context.Context, id int64, state string, updatedAt time.Time) error

	Delete(ctx context.Context, id int64) error
}

// CatalogRepository lee los catálogos de referencia, ordenados por nombre.
type CatalogRepository interface {
	ListSpecies(ctx context.Context) ([]Species, error)
	ListBreeds(ctx context.Context) ([]Breed, error)
	ListHealthStatuses(ctx context.Context) ([]HealthStatus, error)
}

// Recorder registra actividades sin propagar errores.
type Recorder interface {
	Record(ctx context.Context, userID int64, username, action, details string)
}
