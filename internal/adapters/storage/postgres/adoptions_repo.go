package postgres

import (
	"context"
	"database/sql"

	"animal-shelter/internal/domain/adoptions"
)

type AdoptionsRepo struct {
	db *sql.DB
}

func NewAdoptionsRepo(db *sql.DB) *AdoptionsRepo {
	return &AdoptionsRepo{db: db}
}

func (r *AdoptionsRepo) Create(ctx context.Context, a adoptions.Adoption) (adoptions.Adoption, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO adopciones (
			animal_id, adoptante_nombre, adoptante_telefono, adoptante_email,
			fecha_adopcion, usuario_registro_id, estado
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`,
		a.AnimalID,
		a.AdopterName,
		a.AdopterPhone,
		a.AdopterEmail,
		a.AdoptedAt,
		a.RegisteredByID,
		a.State,
	)
	if err := row.Scan(&a.ID); err != nil {
		return adoptions.Adoption{}, err
	}
	return a, nil
}

func (r *AdoptionsRepo) List(ctx context.Context) ([]adoptions.Adoption, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, animal_id, adoptante_nombre, adoptante_telefono, adoptante_email,
			fecha_adopcion, usuario_registro_id, estado
		FROM adopciones
		ORDER BY fecha_adopcion DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.Adoption, 0)
	for rows.Next() {
		var a adoptions.Adoption
		if err := rows.Scan(
			&a.ID,
			&a.AnimalID,
			&a.AdopterName,
			&a.AdopterPhone,
			&a.AdopterEmail,
			&a.AdoptedAt,
			&a.RegisteredByID,
			&a.State,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
