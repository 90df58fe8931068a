package supabase

import (
	"context"

	"animal-shelter/internal/domain/activity"
	rest "animal-shelter/internal/platform/supabase"
)

const activitiesTable = "actividades"

// ActivityRepo implementa activity.Repository sobre la tabla actividades.
type ActivityRepo struct {
	client *rest.Client
}

func NewActivityRepo(client *rest.Client) *ActivityRepo {
	return &ActivityRepo{client: client}
}

func (r *ActivityRepo) Create(ctx context.Context, a activity.Activity) error {
	return r.client.Insert(ctx, activitiesTable, a, nil)
}

func (r *ActivityRepo) List(ctx context.Context, limit int) ([]activity.Activity, error) {
	rows := make([]activity.Activity, 0)
	err := r.client.Select(ctx, activitiesTable, rest.SelectOptions{
		Order: "fecha.desc",
		Limit: limit,
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
