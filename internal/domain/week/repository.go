package week

import "context"

// Repository persists contest weeks keyed by week number.
type Repository interface {
	GetByNumber(ctx context.Context, number int) (Week, bool, error)
	GetCurrent(ctx context.Context) (Week, bool, error)
	List(ctx context.Context) ([]Week, error)
	Upsert(ctx context.Context, item Week) error
}
