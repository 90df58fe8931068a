package animals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"animal-shelter/internal/domain/users"
	"animal-shelter/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo    Repository
	catalog CatalogRepository
	rec     Recorder
	log     logger.Logger
	now     func() time.Time

	// snapshots en memoria, reemplazados enteros tras cada fetch exitoso
	mu   sync.RWMutex
	snap []Animal
	cat  Catalog
}

func NewService(repo Repository, catalog CatalogRepository, rec Recorder, log logger.Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		rec:     rec,
		log:     log,
		now:     time.Now,
	}
}

// List trae todos los animales (fecha_ingreso desc) y los deja como
// snapshot autoritativo para filtrado y render.
func (s *Service) List(ctx context.Context) ([]Animal, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.snap = items
	s.mu.Unlock()

	return items, nil
}

// Snapshot devuelve el último snapshot cargado (puede estar vacío).
func (s *Service) Snapshot() []Animal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Service) Get(ctx context.Context, id int64) (Animal, error) {
	if id <= 0 {
		return Animal{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// Catalog carga especies, razas y estados de salud y reemplaza el
// snapshot de catálogos.
func (s *Service) Catalog(ctx context.Context) (Catalog, error) {
	species, err := s.catalog.ListSpecies(ctx)
	if err != nil {
		return Catalog{}, err
	}
	breeds, err := s.catalog.ListBreeds(ctx)
	if err != nil {
		return Catalog{}, err
	}
	statuses, err := s.catalog.ListHealthStatuses(ctx)
	if err != nil {
		return Catalog{}, err
	}

	cat := Catalog{Species: species, Breeds: breeds, Statuses: statuses}

	s.mu.Lock()
	s.cat = cat
	s.mu.Unlock()

	return cat, nil
}

type SaveInput struct {
	Name           string
	SpeciesID      int64
	BreedID        int64
	Age            string
	Gender         string
	Color          string
	State          string
	HealthStatusID int64
	Description    string
	Vaccinated     string
}

// Save crea o actualiza un animal según editingID (0 = crear).
// Valida permisos y campos obligatorios antes de cualquier llamada remota.
// Cada guardado exitoso registra una actividad y refresca el snapshot.
func (s *Service) Save(ctx context.Context, actor users.User, in SaveInput, editingID int64) (Animal, error) {
	action := users.ActionCreateAnimal
	if editingID > 0 {
		action = users.ActionEditAnimal
	}
	if !users.CanPerform(actor.Role, action) {
		return Animal{}, ErrForbidden
	}

	name := strings.TrimSpace(in.Name)
	age := strings.TrimSpace(in.Age)
	if name == "" || age == "" || in.SpeciesID <= 0 || in.BreedID <= 0 || in.HealthStatusID <= 0 {
		return Animal{}, ErrInvalidInput
	}

	state := strings.TrimSpace(in.State)
	if state == "" {
		state = StateAvailable
	}

	a := Animal{
		Name:           name,
		SpeciesID:      in.SpeciesID,
		BreedID:        in.BreedID,
		Age:            age,
		Gender:         strings.TrimSpace(in.Gender),
		Color:          strings.TrimSpace(in.Color),
		State:          state,
		HealthStatusID: in.HealthStatusID,
		Description:    strings.TrimSpace(in.Description),
		Vaccinated:     strings.TrimSpace(in.Vaccinated),
		CreatorUserID:  actor.ID,
	}

	now := s.now()
	var (
		saved Animal
		err   error
	)

	if editingID > 0 {
		a.ID = editingID
		a.UpdatedAt = &now
		saved, err = s.repo.Update(ctx, a)
		if err != nil {
			return Animal{}, err
		}
		s.rec.Record(ctx, actor.ID, actor.Username, "Actualizar animal",
			fmt.Sprintf("Actualizó el animal: %s", a.Name))
	} else {
		a.IntakeAt = now
		saved, err = s.repo.Create(ctx, a)
		if err != nil {
			return Animal{}, err
		}
		s.rec.Record(ctx, actor.ID, actor.Username, "Crear animal",
			fmt.Sprintf("Creó el animal: %s", a.Name))
	}

	s.refresh(ctx)
	return saved, nil
}

// Delete borra un animal. Solo administradores: cualquier otro rol falla
// sin hacer ninguna llamada remota.
func (s *Service) Delete(ctx context.Context, actor users.User, id int64) error {
	if !users.CanPerform(actor.Role, users.ActionDeleteAnimal) {
		return ErrForbidden
	}
	if id <= 0 {
		return ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.rec.Record(ctx, actor.ID, actor.Username, "Eliminar animal",
		fmt.Sprintf("Eliminó el animal: %s", a.Name))

	s.refresh(ctx)
	return nil
}

// MarkAdopted transiciona el animal a Adoptado estampando
// fecha_actualizacion. Lo usa el módulo de adopciones como segunda
// escritura de su secuencia.
func (s *Service) MarkAdopted(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	if err := s.repo.UpdateState(ctx, id, StateAdopted, s.now()); err != nil {
		return err
	}
	s.refresh(ctx)
	return nil
}

// refresh recarga el snapshot tras una mutación; un fallo acá no revierte
// la mutación que lo disparó.
func (s *Service) refresh(ctx context.Context) {
	if _, err := s.List(ctx); err != nil {
		s.log.Warn("animal snapshot refresh failed", map[string]any{"error": err.Error()})
	}
}
