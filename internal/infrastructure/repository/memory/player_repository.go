package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/pickem-league/pickem-api/internal/domain/player"
)

type PlayerRepository struct {
	mu     sync.RWMutex
	byName map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	repo := &PlayerRepository{byName: make(map[string]player.Player, len(players))}
	for _, p := range players {
		repo.byName[playerNameKey(p.Name)] = p
	}
	return repo
}

func (r *PlayerRepository) GetByName(_ context.Context, name string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byName[playerNameKey(name)]
	if !ok {
		return player.Player{}, false, nil
	}
	return item, true, nil
}

func (r *PlayerRepository) ListByPosition(_ context.Context, position player.Position) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []player.Player
	for _, p := range r.byName {
		if p.Position == position {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *PlayerRepository) UpsertMany(_ context.Context, players []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range players {
		r.byName[playerNameKey(p.Name)] = p
	}
	return nil
}

func playerNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
