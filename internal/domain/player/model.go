package player

import "fmt"

// Position represents NFL position groups used for lineup slots.
type Position string

const (
	PositionQuarterback  Position = "QB"
	PositionRunningBack  Position = "RB"
	PositionWideReceiver Position = "WR"
	PositionTightEnd     Position = "TE"
	PositionKicker       Position = "PK"
	PositionDefense      Position = "DEF"
)

var AllPositions = map[Position]struct{}{
	PositionQuarterback:  {},
	PositionRunningBack:  {},
	PositionWideReceiver: {},
	PositionTightEnd:     {},
	PositionKicker:       {},
	PositionDefense:      {},
}

// FlexPositions are the position groups eligible for the FLEX slot.
var FlexPositions = []Position{PositionRunningBack, PositionWideReceiver, PositionTightEnd}

// Player is a selectable athlete from the NFL reference pool. ESPNID links the
// player to provider box scores; Name is the display name lineups store.
type Player struct {
	ESPNID   string
	Name     string
	Position Position
	Team     string
}

func (p Player) Validate() error {
	if p.ESPNID == "" {
		return fmt.Errorf("player espn id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}

	return nil
}
