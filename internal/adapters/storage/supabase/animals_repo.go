package supabase

import (
	"context"
	"strconv"
	"time"

	"animal-shelter/internal/domain/animals"
	rest "animal-shelter/internal/platform/supabase"
)

const animalsTable = "animales"

// AnimalsRepo implementa animals.Repository sobre la tabla animales.
type AnimalsRepo struct {
	client *rest.Client
}

func NewAnimalsRepo(client *rest.Client) *AnimalsRepo {
	return &AnimalsRepo{client: client}
}

func (r *AnimalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	rows := make([]animals.Animal, 0)
	err := r.client.Select(ctx, animalsTable, rest.SelectOptions{Order: "fecha_ingreso.desc"}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	var rows []animals.Animal
	err := r.client.Select(ctx, animalsTable, rest.SelectOptions{
		Eq:    map[string]string{"id": itoa(id)},
		Limit: 1,
	}, &rows)
	if err != nil {
		return animals.Animal{}, err
	}
	if len(rows) == 0 {
		return animals.Animal{}, animals.ErrNotFound
	}
	return rows[0], nil
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	var rows []animals.Animal
	if err := r.client.Insert(ctx, animalsTable, a, &rows); err != nil {
		return animals.Animal{}, err
	}
	if len(rows) == 0 {
		return a, nil
	}
	return rows[0], nil
}

// Update manda el PATCH con todos los campos editables; fecha_ingreso no se
// toca en ediciones.
func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	partial := map[string]any{
		"nombre":             a.Name,
		"especie_id":         a.SpeciesID,
		"raza_id":            a.BreedID,
		"edad":               a.Age,
		"genero":             a.Gender,
		"color":              a.Color,
		"estado":             a.State,
		"estado_salud_id":    a.HealthStatusID,
		"descripcion":        a.Description,
		"vacunado":           a.Vaccinated,
		"usuario_creador_id": a.CreatorUserID,
	}
	if a.UpdatedAt != nil {
		partial["fecha_actualizacion"] = a.UpdatedAt
	}

	var rows []animals.Animal
	if err := r.client.Update(ctx, animalsTable, a.ID, partial, &rows); err != nil {
		return animals.Animal{}, err
	}
	if len(rows) == 0 {
		return animals.Animal{}, animals.ErrNotFound
	}
	return rows[0], nil
}

func (r *AnimalsRepo) UpdateState(ctx context.Context, id int64, state string, updatedAt time.Time) error {
	return r.client.Update(ctx, animalsTable, id, map[string]any{
		"estado":              state,
		"fecha_actualizacion": updatedAt,
	}, nil)
}

func (r *AnimalsRepo) Delete(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, animalsTable, id)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
