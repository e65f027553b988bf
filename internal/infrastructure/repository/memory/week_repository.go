package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pickem-league/pickem-api/internal/domain/week"
)

type WeekRepository struct {
	mu    sync.RWMutex
	items map[int]week.Week
}

func NewWeekRepository() *WeekRepository {
	return &WeekRepository{items: make(map[int]week.Week)}
}

func (r *WeekRepository) GetByNumber(_ context.Context, number int) (week.Week, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[number]
	if !ok {
		return week.Week{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *WeekRepository) GetCurrent(_ context.Context) (week.Week, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.IsCurrent {
			return item.Clone(), true, nil
		}
	}
	return week.Week{}, false, nil
}

func (r *WeekRepository) List(_ context.Context) ([]week.Week, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]week.Week, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *WeekRepository) Upsert(_ context.Context, item week.Week) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.Number] = item.Clone()
	return nil
}
