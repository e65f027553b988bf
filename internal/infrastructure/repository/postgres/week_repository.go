package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pickem-league/pickem-api/internal/domain/week"
	qb "github.com/pickem-league/pickem-api/internal/platform/querybuilder"
)

type WeekRepository struct {
	db *sqlx.DB
}

func NewWeekRepository(db *sqlx.DB) *WeekRepository {
	return &WeekRepository{db: db}
}

func (r *WeekRepository) GetByNumber(ctx context.Context, number int) (week.Week, bool, error) {
	query, args, err := weekBaseSelectBuilder().
		Where(qb.Eq("week_number", number)).
		ToSQL()
	if err != nil {
		return week.Week{}, false, fmt.Errorf("build get week query: %w", err)
	}

	var row weekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return week.Week{}, false, nil
		}
		return week.Week{}, false, fmt.Errorf("get week: %w", err)
	}

	item, err := weekFromRow(row)
	if err != nil {
		return week.Week{}, false, err
	}
	return item, true, nil
}

func (r *WeekRepository) GetCurrent(ctx context.Context) (week.Week, bool, error) {
	query, args, err := weekBaseSelectBuilder().
		Where(qb.Expr("is_current = TRUE")).
		Limit(1).
		ToSQL()
	if err != nil {
		return week.Week{}, false, fmt.Errorf("build get current week query: %w", err)
	}

	var row weekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return week.Week{}, false, nil
		}
		return week.Week{}, false, fmt.Errorf("get current week: %w", err)
	}

	item, err := weekFromRow(row)
	if err != nil {
		return week.Week{}, false, err
	}
	return item, true, nil
}

func (r *WeekRepository) List(ctx context.Context) ([]week.Week, error) {
	query, args, err := weekBaseSelectBuilder().
		OrderBy("week_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list weeks query: %w", err)
	}

	var rows []weekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list weeks: %w", err)
	}

	out := make([]week.Week, 0, len(rows))
	for _, row := range rows {
		item, err := weekFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *WeekRepository) Upsert(ctx context.Context, item week.Week) error {
	insertModel, err := weekToInsertModel(item)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("weeks", insertModel, `ON CONFLICT (week_number)
DO UPDATE SET
    questions = EXCLUDED.questions,
    correct_answers = EXCLUDED.correct_answers,
    responses = EXCLUDED.responses,
    question_edit_locks = EXCLUDED.question_edit_locks,
    lineup_edits_allowed = EXCLUDED.lineup_edits_allowed,
    is_current = EXCLUDED.is_current,
    updated_at = NOW()
RETURNING updated_at`)
	if err != nil {
		return fmt.Errorf("build week upsert query: %w", err)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("upsert week: %w", err)
	}
	defer rows.Close()

	var updatedAt time.Time
	if rows.Next() {
		if err := rows.Scan(&updatedAt); err != nil {
			return fmt.Errorf("scan week updated_at: %w", err)
		}
		return nil
	}

	return fmt.Errorf("upsert week: no row returned")
}

func weekBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("weeks")
}
