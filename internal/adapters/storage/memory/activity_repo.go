package memory

import (
	"context"
	"sort"
	"sync"

	"animal-shelter/internal/domain/activity"
)

type activityRepo struct {
	mu     sync.RWMutex
	nextID int64
	rows   []activity.Activity
}

func NewActivityRepo() activity.Repository {
	return &activityRepo{nextID: 1}
}

func (r *activityRepo) Create(ctx context.Context, a activity.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, a)
	return nil
}

func (r *activityRepo) List(ctx context.Context, limit int) ([]activity.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]activity.Activity, len(r.rows))
	copy(out, r.rows)

	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID > out[j].ID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
