package postgres

import (
	"context"
	"database/sql"

	"animal-shelter/internal/domain/animals"
)

type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) ListSpecies(ctx context.Context) ([]animals.Species, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, nombre, descripcion
		FROM especies
		ORDER BY nombre ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Species, 0)
	for rows.Next() {
		var s animals.Species
		if err := rows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) ListBreeds(ctx context.Context) ([]animals.Breed, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, nombre, especie_id
		FROM razas
		ORDER BY nombre ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Breed, 0)
	for rows.Next() {
		var b animals.Breed
		if err := rows.Scan(&b.ID, &b.Name, &b.SpeciesID); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) ListHealthStatuses(ctx context.Context) ([]animals.HealthStatus, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, nombre
		FROM estados_salud
		ORDER BY nombre ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.HealthStatus, 0)
	for rows.Next() {
		var h animals.HealthStatus
		if err := rows.Scan(&h.ID, &h.Name); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
