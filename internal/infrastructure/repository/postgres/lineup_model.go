package postgres

import (
	"time"

	"github.com/pickem-league/pickem-api/internal/domain/lineup"
)

type lineupTableModel struct {
	ID          int64     `db:"id"`
	UserID      string    `db:"user_id"`
	WeekNumber  int       `db:"week_number"`
	QB          string    `db:"qb_player"`
	RB1         string    `db:"rb1_player"`
	RB2         string    `db:"rb2_player"`
	WR1         string    `db:"wr1_player"`
	WR2         string    `db:"wr2_player"`
	TE          string    `db:"te_player"`
	Flex        string    `db:"flex_player"`
	PK          string    `db:"pk_player"`
	Def         string    `db:"def_player"`
	TotalPoints float64   `db:"total_points"`
	SubmittedAt time.Time `db:"submitted_at"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type lineupInsertModel struct {
	UserID      string    `db:"user_id"`
	WeekNumber  int       `db:"week_number"`
	QB          string    `db:"qb_player"`
	RB1         string    `db:"rb1_player"`
	RB2         string    `db:"rb2_player"`
	WR1         string    `db:"wr1_player"`
	WR2         string    `db:"wr2_player"`
	TE          string    `db:"te_player"`
	Flex        string    `db:"flex_player"`
	PK          string    `db:"pk_player"`
	Def         string    `db:"def_player"`
	TotalPoints float64   `db:"total_points"`
	SubmittedAt time.Time `db:"submitted_at"`
}

func lineupFromRow(row lineupTableModel) lineup.Lineup {
	return lineup.Lineup{
		UserID:     row.UserID,
		WeekNumber: row.WeekNumber,
		Players: map[lineup.Slot]string{
			lineup.SlotQB:   row.QB,
			lineup.SlotRB1:  row.RB1,
			lineup.SlotRB2:  row.RB2,
			lineup.SlotWR1:  row.WR1,
			lineup.SlotWR2:  row.WR2,
			lineup.SlotTE:   row.TE,
			lineup.SlotFLEX: row.Flex,
			lineup.SlotPK:   row.PK,
			lineup.SlotDEF:  row.Def,
		},
		TotalPoints: row.TotalPoints,
		SubmittedAt: row.SubmittedAt,
	}
}

func lineupToInsertModel(item lineup.Lineup) lineupInsertModel {
	return lineupInsertModel{
		UserID:      item.UserID,
		WeekNumber:  item.WeekNumber,
		QB:          item.Players[lineup.SlotQB],
		RB1:         item.Players[lineup.SlotRB1],
		RB2:         item.Players[lineup.SlotRB2],
		WR1:         item.Players[lineup.SlotWR1],
		WR2:         item.Players[lineup.SlotWR2],
		TE:          item.Players[lineup.SlotTE],
		Flex:        item.Players[lineup.SlotFLEX],
		PK:          item.Players[lineup.SlotPK],
		Def:         item.Players[lineup.SlotDEF],
		TotalPoints: item.TotalPoints,
		SubmittedAt: item.SubmittedAt,
	}
}
