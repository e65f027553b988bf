package lineup

import "context"

// Repository exposes lineup persistence operations.
type Repository interface {
	GetByUserAndWeek(ctx context.Context, userID string, weekNumber int) (Lineup, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Lineup, error)
	ListByWeek(ctx context.Context, weekNumber int) ([]Lineup, error)
	Upsert(ctx context.Context, item Lineup) error
	UpdateTotalPoints(ctx context.Context, userID string, weekNumber int, totalPoints float64) error
}
