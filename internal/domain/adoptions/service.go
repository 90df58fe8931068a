package adoptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/users"
	"animal-shelter/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo    Repository
	animals *animals.Service
	rec     Recorder
	log     logger.Logger
	now     func() time.Time
}

func NewService(repo Repository, animalsSvc *animals.Service, rec Recorder, log logger.Logger) *Service {
	return &Service{
		repo:    repo,
		animals: animalsSvc,
		rec:     rec,
		log:     log,
		now:     time.Now,
	}
}

type AdoptInput struct {
	AdopterName  string
	AdopterPhone string
	AdopterEmail string
}

// Adopt registra una adopción en dos escrituras: inserta la fila en
// adopciones y después transiciona el animal a Adoptado. Las dos escrituras
// NO son atómicas: si la segunda falla queda una adopción apuntando a un
// animal todavía Disponible, y no hay rollback compensatorio.
// La actividad se registra solo cuando la secuencia completa tuvo éxito.
func (s *Service) Adopt(ctx context.Context, actor users.User, animalID int64, in AdoptInput) (Adoption, error) {
	if !users.CanPerform(actor.Role, users.ActionAdoptAnimal) {
		return Adoption{}, ErrForbidden
	}

	name := strings.TrimSpace(in.AdopterName)
	if name == "" || animalID <= 0 {
		return Adoption{}, ErrInvalidInput
	}

	animal, err := s.animals.Get(ctx, animalID)
	if err != nil {
		return Adoption{}, err
	}

	ad := Adoption{
		AnimalID:       animalID,
		AdopterName:    name,
		AdopterPhone:   strings.TrimSpace(in.AdopterPhone),
		AdopterEmail:   strings.TrimSpace(in.AdopterEmail),
		AdoptedAt:      s.now(),
		RegisteredByID: actor.ID,
		State:          StateCompleted,
	}

	created, err := s.repo.Create(ctx, ad)
	if err != nil {
		return Adoption{}, err
	}

	if err := s.animals.MarkAdopted(ctx, animalID); err != nil {
		// hueco conocido: la adopción ya quedó insertada y el animal
		// sigue sin transicionar; se reporta para reconciliar a mano
		s.log.Error("adoption state update failed", map[string]any{
			"adoption_id": created.ID,
			"animal_id":   animalID,
			"error":       err.Error(),
		})
		return created, err
	}

	s.rec.Record(ctx, actor.ID, actor.Username, "Adopción registrada",
		fmt.Sprintf("Registró adopción del animal: %s por %s", animal.Name, name))

	return created, nil
}

// List devuelve las adopciones más recientes primero.
func (s *Service) List(ctx context.Context) ([]Adoption, error) {
	return s.repo.List(ctx)
}

// ListDetailed resuelve además el nombre de cada animal contra el listado
// completo, como hace la vista de adopciones original.
func (s *Service) ListDetailed(ctx context.Context) ([]Record, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	all, err := s.animals.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]animals.Animal, len(all))
	for _, a := range all {
		byID[a.ID] = a
	}

	out := make([]Record, 0, len(items))
	for _, ad := range items {
		name := "Desconocido"
		if a, ok := byID[ad.AnimalID]; ok {
			name = a.Name
		}
		out = append(out, Record{Adoption: ad, AnimalName: name})
	}
	return out, nil
}
