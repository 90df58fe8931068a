package supabase

import (
	"context"

	"animal-shelter/internal/domain/animals"
	rest "animal-shelter/internal/platform/supabase"
)

const (
	speciesTable        = "especies"
	breedsTable         = "razas"
	healthStatusesTable = "estados_salud"
)

// CatalogRepo lee los catálogos de referencia (solo lectura).
type CatalogRepo struct {
	client *rest.Client
}

func NewCatalogRepo(client *rest.Client) *CatalogRepo {
	return &CatalogRepo{client: client}
}

func (r *CatalogRepo) ListSpecies(ctx context.Context) ([]animals.Species, error) {
	rows := make([]animals.Species, 0)
	err := r.client.Select(ctx, speciesTable, rest.SelectOptions{Order: "nombre.asc"}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CatalogRepo) ListBreeds(ctx context.Context) ([]animals.Breed, error) {
	rows := make([]animals.Breed, 0)
	err := r.client.Select(ctx, breedsTable, rest.SelectOptions{Order: "nombre.asc"}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CatalogRepo) ListHealthStatuses(ctx context.Context) ([]animals.HealthStatus, error) {
	rows := make([]animals.HealthStatus, 0)
	err := r.client.Select(ctx, healthStatusesTable, rest.SelectOptions{Order: "nombre.asc"}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
