package memory

import (
	"context"
	"sort"
	"sync"

	"animal-shelter/internal/domain/users"
)

type usersRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]users.User
}

func NewUsersRepo() users.Repository {
	return &usersRepo{
		nextID: 1,
		byID:   make(map[int64]users.User),
	}
}

func (r *usersRepo) FindByUsername(ctx context.Context, username string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

func (r *usersRepo) FindByEmail(ctx context.Context, email string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

func (r *usersRepo) FindByID(ctx context.Context, id int64) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) List(ctx context.Context) ([]users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]users.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].RegisteredAt.Equal(out[j].RegisteredAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].RegisteredAt.After(out[j].RegisteredAt)
	})
	return out, nil
}

func (r *usersRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u.ID = r.nextID
	r.nextID++
	r.byID[u.ID] = u
	return u, nil
}

func (r *usersRepo) UpdateRole(ctx context.Context, id int64, role users.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return users.ErrNotFound
	}
	u.Role = role
	r.byID[id] = u
	return nil
}

func (r *usersRepo) SetActive(ctx context.Context, id int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return users.ErrNotFound
	}
	u.Active = active
	r.byID[id] = u
	return nil
}

type sessionsRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []users.Session
}

func NewSessionsRepo() users.SessionRepository {
	return &sessionsRepo{nextID: 1}
}

func (r *sessionsRepo) Create(ctx context.Context, s users.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, s)
	return nil
}
