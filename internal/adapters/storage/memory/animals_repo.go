package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"animal-shelter/internal/domain/animals"
)

type animalsRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]animals.Animal
}

func NewAnimalsRepo() animals.Repository {
	return &animalsRepo{
		nextID: 1,
		byID:   make(map[int64]animals.Animal),
	}
}

func (r *animalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}

	// fecha_ingreso desc, con id como desempate para orden estable
	sort.Slice(out, func(i, j int) bool {
		if out[i].IntakeAt.Equal(out[j].IntakeAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].IntakeAt.After(out[j].IntakeAt)
	})
	return out, nil
}

func (r *animalsRepo) GetByID(ctx context.Context, id int64) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

func (r *animalsRepo) Create(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.ID = r.nextID
	r.nextID++
	r.byID[a.ID] = a
	return a, nil
}

func (r *animalsRepo) Update(ctx context.Context, a animals.Animal) (animals.Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[a.ID]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	// fecha_ingreso no se toca en ediciones
	a.IntakeAt = prev.IntakeAt
	r.byID[a.ID] = a
	return a, nil
}

func (r *animalsRepo) UpdateState(ctx context.Context, id int64, state string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.ErrNotFound
	}
	a.State = state
	a.UpdatedAt = &updatedAt
	r.byID[id] = a
	return nil
}

func (r *animalsRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return animals.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
