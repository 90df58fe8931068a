package memory

import (
	"context"
	"sort"
	"sync"

	"animal-shelter/internal/domain/adoptions"
)

type adoptionsRepo struct {
	mu     sync.RWMutex
	nextID int64
	rows   []adoptions.Adoption
}

func NewAdoptionsRepo() adoptions.Repository {
	return &adoptionsRepo{nextID: 1}
}

func (r *adoptionsRepo) Create(ctx context.Context, a adoptions.Adoption) (adoptions.Adoption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, a)
	return a, nil
}

func (r *adoptionsRepo) List(ctx context.Context) ([]adoptions.Adoption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.Adoption, len(r.rows))
	copy(out, r.rows)

	sort.Slice(out, func(i, j int) bool {
		if out[i].AdoptedAt.Equal(out[j].AdoptedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].AdoptedAt.After(out[j].AdoptedAt)
	})
	return out, nil
}
