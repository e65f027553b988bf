package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/pickem-league/pickem-api/internal/domain/user"
)

type userTableModel struct {
	ID        string        `db:"id"`
	Username  string        `db:"username"`
	Scores    pq.Int64Array `db:"scores"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

type userInsertModel struct {
	ID       string        `db:"id"`
	Username string        `db:"username"`
	Scores   pq.Int64Array `db:"scores"`
}

func userFromRow(row userTableModel) user.User {
	scores := make([]int, len(row.Scores))
	for i, s := range row.Scores {
		scores[i] = int(s)
	}
	return user.User{
		ID:       row.ID,
		Username: row.Username,
		Scores:   scores,
	}
}

func scoresToArray(scores []int) pq.Int64Array {
	out := make(pq.Int64Array, len(scores))
	for i, s := range scores {
		out[i] = int64(s)
	}
	return out
}
