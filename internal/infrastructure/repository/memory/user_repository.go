package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pickem-league/pickem-api/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{items: make(map[string]user.User)}
}

func NewUserRepositoryWithSeed(users []user.User) *UserRepository {
	repo := NewUserRepository()
	for _, item := range users {
		repo.items[item.ID] = cloneUser(item)
	}
	return repo
}

func (r *UserRepository) GetByID(_ context.Context, id string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return user.User{}, false, nil
	}
	return cloneUser(item), true, nil
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneUser(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepository) Upsert(_ context.Context, item user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneUser(item)
	return nil
}

func (r *UserRepository) SetWeekScore(_ context.Context, userID string, weekNumber, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[userID]
	if !ok {
		item = user.User{ID: userID, Username: userID}
	}
	item.SetWeekScore(weekNumber, score)
	r.items[userID] = item
	return nil
}

func cloneUser(item user.User) user.User {
	copied := item
	copied.Scores = append([]int(nil), item.Scores...)
	return copied
}
