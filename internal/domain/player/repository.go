package player

import "context"

// Repository describes player reference data needs from use cases.
type Repository interface {
	GetByName(ctx context.Context, name string) (Player, bool, error)
	ListByPosition(ctx context.Context, position Position) ([]Player, error)
	UpsertMany(ctx context.Context, players []Player) error
}
