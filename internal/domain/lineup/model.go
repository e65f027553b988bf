package lineup

import "time"

// Slot is one of the nine fixed lineup positions.
type Slot string

const (
	SlotQB   Slot = "QB"
	SlotRB1  Slot = "RB1"
	SlotRB2  Slot = "RB2"
	SlotWR1  Slot = "WR1"
	SlotWR2  Slot = "WR2"
	SlotTE   Slot = "TE"
	SlotFLEX Slot = "FLEX"
	SlotPK   Slot = "PK"
	SlotDEF  Slot = "DEF"
)

// Slots returns every slot in display order.
func Slots() []Slot {
	return []Slot{SlotQB, SlotRB1, SlotRB2, SlotWR1, SlotWR2, SlotTE, SlotFLEX, SlotPK, SlotDEF}
}

// Lineup stores one user's nine-man roster for one week. Players are held by
// display name; scoring resolves names against the player store at read time.
type Lineup struct {
	UserID      string
	WeekNumber  int
	Players     map[Slot]string
	TotalPoints float64
	SubmittedAt time.Time
}

// PlayerNames returns the filled slot values in slot order.
func (l Lineup) PlayerNames() []string {
	out := make([]string, 0, len(l.Players))
	for _, slot := range Slots() {
		if name := l.Players[slot]; name != "" {
			out = append(out, name)
		}
	}
	return out
}

func (l Lineup) Clone() Lineup {
	players := make(map[Slot]string, len(l.Players))
	for slot, name := range l.Players {
		players[slot] = name
	}
	l.Players = players
	return l
}
