package memory

import (
	"context"

	"animal-shelter/internal/domain/animals"
)

// catalogRepo sirve catálogos fijos, suficientes para dev y tests.
type catalogRepo struct {
	species  []animals.Species
	breeds   []animals.Breed
	statuses []animals.HealthStatus
}

func NewCatalogRepo() animals.CatalogRepository {
	return &catalogRepo{
		species: []animals.Species{
			{ID: 2, Name: "Gato", Description: "Felino doméstico"},
			{ID: 1, Name: "Perro", Description: "Canino doméstico"},
		},
		breeds: []animals.Breed{
			{ID: 3, Name: "Labrador", SpeciesID: 1},
			{ID: 1, Name: "Mestizo", SpeciesID: 1},
			{ID: 2, Name: "Mestizo", SpeciesID: 2},
			{ID: 4, Name: "Siamés", SpeciesID: 2},
		},
		statuses: []animals.HealthStatus{
			{ID: 2, Name: "En observación"},
			{ID: 3, Name: "En tratamiento"},
			{ID: 1, Name: "Saludable"},
		},
	}
}

func (r *catalogRepo) ListSpecies(ctx context.Context) ([]animals.Species, error) {
	return r.species, nil
}

func (r *catalogRepo) ListBreeds(ctx context.Context) ([]animals.Breed, error) {
	return r.breeds, nil
}

func (r *catalogRepo) ListHealthStatuses(ctx context.Context) ([]animals.HealthStatus, error) {
	return r.statuses, nil
}
