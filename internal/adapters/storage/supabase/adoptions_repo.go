package supabase

import (
	"context"

	"animal-shelter/internal/domain/adoptions"
	rest "animal-shelter/internal/platform/supabase"
)

const adoptionsTable = "adopciones"

// AdoptionsRepo implementa adoptions.Repository sobre la tabla adopciones.
type AdoptionsRepo struct {
	client *rest.Client
}

func NewAdoptionsRepo(client *rest.Client) *AdoptionsRepo {
	return &AdoptionsRepo{client: client}
}

func (r *AdoptionsRepo) Create(ctx context.Context, a adoptions.Adoption) (adoptions.Adoption, error) {
	var rows []adoptions.Adoption
	if err := r.client.Insert(ctx, adoptionsTable, a, &rows); err != nil {
		return adoptions.Adoption{}, err
	}
	if len(rows) == 0 {
		return a, nil
	}
	return rows[0], nil
}

func (r *AdoptionsRepo) List(ctx context.Context) ([]adoptions.Adoption, error) {
	rows := make([]adoptions.Adoption, 0)
	err := r.client.Select(ctx, adoptionsTable, rest.SelectOptions{Order: "fecha_adopcion.desc"}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
