package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/pickem-league/pickem-api/internal/domain/lineup"
	qb "github.com/pickem-league/pickem-api/internal/platform/querybuilder"
)

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) GetByUserAndWeek(ctx context.Context, userID string, weekNumber int) (lineup.Lineup, bool, error) {
	query, args, err := lineupBaseSelectBuilder().
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("week_number", weekNumber),
		).
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build get lineup query: %w", err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err) {
			return r.getByUserAndWeekSingleParam(ctx, userID, weekNumber)
		}
		if isNotFound(err) {
			return lineup.Lineup{}, false, nil
		}
		return lineup.Lineup{}, false, fmt.Errorf("get lineup: %w", err)
	}

	return lineupFromRow(row), true, nil
}

func (r *LineupRepository) ListByUser(ctx context.Context, userID string) ([]lineup.Lineup, error) {
	query, args, err := lineupBaseSelectBuilder().
		Where(qb.Eq("user_id", userID)).
		OrderBy("week_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineups by user query: %w", err)
	}

	var rows []lineupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineups by user: %w", err)
	}

	out := make([]lineup.Lineup, 0, len(rows))
	for _, row := range rows {
		out = append(out, lineupFromRow(row))
	}
	return out, nil
}

func (r *LineupRepository) ListByWeek(ctx context.Context, weekNumber int) ([]lineup.Lineup, error) {
	query, args, err := lineupBaseSelectBuilder().
		Where(qb.Eq("week_number", weekNumber)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineups by week query: %w", err)
	}

	var rows []lineupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineups by week: %w", err)
	}

	out := make([]lineup.Lineup, 0, len(rows))
	for _, row := range rows {
		out = append(out, lineupFromRow(row))
	}
	return out, nil
}

// getByUserAndWeekSingleParam retries the lookup with a single array
// parameter, which survives pgbouncer transaction pooling.
func (r *LineupRepository) getByUserAndWeekSingleParam(ctx context.Context, userID string, weekNumber int) (lineup.Lineup, bool, error) {
	query, _, err := lineupBaseSelectBuilder().
		Where(
			qb.Expr("user_id = ($1::text[])[1]"),
			qb.Expr("week_number = (($1::text[])[2])::int"),
		).
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build get lineup single param fallback query: %w", err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, pq.Array([]string{userID, strconv.Itoa(weekNumber)})); err != nil {
		if isUnnamedPreparedStatementMissing(err) {
			return r.getByUserAndWeekLiteral(ctx, userID, weekNumber)
		}
		if isNotFound(err) {
			return lineup.Lineup{}, false, nil
		}
		return lineup.Lineup{}, false, fmt.Errorf("get lineup fallback: %w", err)
	}

	return lineupFromRow(row), true, nil
}

func (r *LineupRepository) getByUserAndWeekLiteral(ctx context.Context, userID string, weekNumber int) (lineup.Lineup, bool, error) {
	query, args, err := lineupBaseSelectBuilder().
		Where(
			qb.EqLiteral("user_id", userID),
			qb.EqLiteral("week_number", strconv.Itoa(weekNumber)),
		).
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build get lineup literal fallback query: %w", err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return lineup.Lineup{}, false, nil
		}
		return lineup.Lineup{}, false, fmt.Errorf("get lineup literal fallback: %w", err)
	}

	return lineupFromRow(row), true, nil
}

func (r *LineupRepository) Upsert(ctx context.Context, item lineup.Lineup) error {
	insertModel := lineupToInsertModel(item)

	query, args, err := qb.InsertModel("lineups", insertModel, `ON CONFLICT (user_id, week_number)
DO UPDATE SET
    qb_player = EXCLUDED.qb_player,
    rb1_player = EXCLUDED.rb1_player,
    rb2_player = EXCLUDED.rb2_player,
    wr1_player = EXCLUDED.wr1_player,
    wr2_player = EXCLUDED.wr2_player,
    te_player = EXCLUDED.te_player,
    flex_player = EXCLUDED.flex_player,
    pk_player = EXCLUDED.pk_player,
    def_player = EXCLUDED.def_player,
    total_points = EXCLUDED.total_points,
    submitted_at = EXCLUDED.submitted_at,
    updated_at = NOW()
RETURNING updated_at`)
	if err != nil {
		return fmt.Errorf("build lineup upsert query: %w", err)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("upsert lineup: %w", err)
	}
	defer rows.Close()

	var updatedAt time.Time
	if rows.Next() {
		if err := rows.Scan(&updatedAt); err != nil {
			return fmt.Errorf("scan lineup updated_at: %w", err)
		}
		return nil
	}

	return fmt.Errorf("upsert lineup: no row returned")
}

func (r *LineupRepository) UpdateTotalPoints(ctx context.Context, userID string, weekNumber int, totalPoints float64) error {
	query, args, err := qb.Update("lineups").
		Set("total_points", totalPoints).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("week_number", weekNumber),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update lineup points query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update lineup points: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update lineup points rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("lineup not found for user=%s week=%d", userID, weekNumber)
	}
	return nil
}

func lineupBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("lineups")
}
