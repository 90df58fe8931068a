package postgres

import (
	"context"
	"database/sql"

	"animal-shelter/internal/domain/activity"
)

type ActivityRepo struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) Create(ctx context.Context, a activity.Activity) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO actividades (usuario_id, username, accion, detalles, fecha, ip_address)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		a.UserID,
		a.Username,
		a.Action,
		a.Details,
		a.Timestamp,
		a.IPAddress,
	)
	return err
}

func (r *ActivityRepo) List(ctx context.Context, limit int) ([]activity.Activity, error) {
	if limit <= 0 {
		limit = activity.DefaultListLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, usuario_id, username, accion, detalles, fecha, ip_address
		FROM actividades
		ORDER BY fecha DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]activity.Activity, 0)
	for rows.Next() {
		var a activity.Activity
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Username,
			&a.Action,
			&a.Details,
			&a.Timestamp,
			&a.IPAddress,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
