package postgres

import (
	"context"
	"database/sql"
	"time"

	"animal-shelter/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `
	id, nombre, especie_id, raza_id,
	edad, genero, color, estado,
	estado_salud_id, descripcion, vacunado,
	usuario_creador_id, fecha_ingreso, fecha_actualizacion`

func scanAnimal(row interface{ Scan(...any) error }) (animals.Animal, error) {
	var a animals.Animal
	var updated sql.NullTime
	if err := row.Scan(
		&a.ID,
		&a.Name,
		&a.SpeciesID,
		&a.BreedID,
		&a.Age,
		&a.Gender,
		&a.Color,
		&a.State,
		&a.HealthStatusID,
		&a.Description,
		&a.Vaccinated,
		&a.CreatorUserID,
		&a.IntakeAt,
		&updated,
	); err != nil {
		if err == sql.ErrNoRows {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	if updated.Valid {
		t := updated.Time
		a.UpdatedAt = &t
	}
	return a, nil
}

func (r *AnimalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+animalColumns+`
		FROM animales
		ORDER BY fecha_ingreso DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+`
		FROM animales
		WHERE id = $1
	`, id)
	return scanAnimal(row)
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO animales (
			nombre, especie_id, raza_id,
			edad, genero, color, estado,
			estado_salud_id, descripcion, vacunado,
			usuario_creador_id, fecha_ingreso
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id
	`,
		a.Name,
		a.SpeciesID,
		a.BreedID,
		a.Age,
		a.Gender,
		a.Color,
		a.State,
		a.HealthStatusID,
		a.Description,
		a.Vaccinated,
		a.CreatorUserID,
		a.IntakeAt,
	)
	if err := row.Scan(&a.ID); err != nil {
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animales
		SET
			nombre = $2,
			especie_id = $3,
			raza_id = $4,
			edad = $5,
			genero = $6,
			color = $7,
			estado = $8,
			estado_salud_id = $9,
			descripcion = $10,
			vacunado = $11,
			usuario_creador_id = $12,
			fecha_actualizacion = $13
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		a.SpeciesID,
		a.BreedID,
		a.Age,
		a.Gender,
		a.Color,
		a.State,
		a.HealthStatusID,
		a.Description,
		a.Vaccinated,
		a.CreatorUserID,
		toNullTime(a.UpdatedAt),
	)
	if err != nil {
		return animals.Animal{}, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

func (r *AnimalsRepo) UpdateState(ctx context.Context, id int64, state string, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animales
		SET estado = $2, fecha_actualizacion = $3
		WHERE id = $1
	`, id, state, updatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM animales WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
