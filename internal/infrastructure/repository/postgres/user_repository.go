package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pickem-league/pickem-api/internal/domain/user"
	qb "github.com/pickem-league/pickem-api/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, bool, error) {
	query, args, err := userBaseSelectBuilder().
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user: %w", err)
	}

	return userFromRow(row), true, nil
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	query, args, err := userBaseSelectBuilder().
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list users query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, userFromRow(row))
	}
	return out, nil
}

func (r *UserRepository) Upsert(ctx context.Context, item user.User) error {
	insertModel := userInsertModel{
		ID:       item.ID,
		Username: item.Username,
		Scores:   scoresToArray(item.Scores),
	}

	query, args, err := qb.InsertModel("users", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    username = EXCLUDED.username,
    scores = EXCLUDED.scores,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build user upsert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// SetWeekScore rewrites one position of the scores vector, creating the user
// row if needed. Read-modify-write inside a transaction keeps concurrent
// scoring runs from clobbering each other's weeks.
func (r *UserRepository) SetWeekScore(ctx context.Context, userID string, weekNumber, score int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set week score tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var row userTableModel
	item := user.User{ID: userID, Username: userID}
	err = tx.GetContext(ctx, &row, `SELECT * FROM users WHERE id = $1 FOR UPDATE`, userID)
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("lock user for score update: %w", err)
	}
	if err == nil {
		item = userFromRow(row)
	}

	item.SetWeekScore(weekNumber, score)

	query, args, err := qb.InsertModel("users", userInsertModel{
		ID:       item.ID,
		Username: item.Username,
		Scores:   scoresToArray(item.Scores),
	}, `ON CONFLICT (id)
DO UPDATE SET
    scores = EXCLUDED.scores,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build set week score query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set week score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set week score tx: %w", err)
	}
	return nil
}

func userBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("users")
}
