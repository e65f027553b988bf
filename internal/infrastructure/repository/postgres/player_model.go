package postgres

import (
	"time"

	"github.com/pickem-league/pickem-api/internal/domain/player"
)

type playerTableModel struct {
	ID        int64     `db:"id"`
	ESPNID    string    `db:"espn_id"`
	Name      string    `db:"name"`
	Position  string    `db:"position"`
	Team      string    `db:"team"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type playerInsertModel struct {
	ESPNID   string `db:"espn_id"`
	Name     string `db:"name"`
	Position string `db:"position"`
	Team     string `db:"team"`
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ESPNID:   row.ESPNID,
		Name:     row.Name,
		Position: player.Position(row.Position),
		Team:     row.Team,
	}
}
