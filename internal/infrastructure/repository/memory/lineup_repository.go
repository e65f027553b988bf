package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/pickem-league/pickem-api/internal/domain/lineup"
)

type LineupRepository struct {
	mu    sync.RWMutex
	items map[string]lineup.Lineup
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{items: make(map[string]lineup.Lineup)}
}

func (r *LineupRepository) GetByUserAndWeek(_ context.Context, userID string, weekNumber int) (lineup.Lineup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[lineupKey(userID, weekNumber)]
	if !ok {
		return lineup.Lineup{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *LineupRepository) ListByUser(_ context.Context, userID string) ([]lineup.Lineup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []lineup.Lineup
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, item.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekNumber < out[j].WeekNumber })
	return out, nil
}

func (r *LineupRepository) ListByWeek(_ context.Context, weekNumber int) ([]lineup.Lineup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []lineup.Lineup
	for _, item := range r.items {
		if item.WeekNumber == weekNumber {
			out = append(out, item.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *LineupRepository) Upsert(_ context.Context, item lineup.Lineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[lineupKey(item.UserID, item.WeekNumber)] = item.Clone()
	return nil
}

func (r *LineupRepository) UpdateTotalPoints(_ context.Context, userID string, weekNumber int, totalPoints float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := lineupKey(userID, weekNumber)
	item, ok := r.items[key]
	if !ok {
		return fmt.Errorf("lineup not found for user=%s week=%d", userID, weekNumber)
	}
	item.TotalPoints = totalPoints
	r.items[key] = item
	return nil
}

func lineupKey(userID string, weekNumber int) string {
	return userID + "::" + strconv.Itoa(weekNumber)
}
