package user

import "context"

// Repository persists contest participants and their weekly pick scores.
type Repository interface {
	GetByID(ctx context.Context, id string) (User, bool, error)
	List(ctx context.Context) ([]User, error)
	Upsert(ctx context.Context, item User) error
	SetWeekScore(ctx context.Context, userID string, weekNumber, score int) error
}
