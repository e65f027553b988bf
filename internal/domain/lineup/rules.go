package lineup

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingSlot       = errors.New("missing required lineup slot")
	ErrDuplicatePlayer   = errors.New("duplicate player in lineup")
	ErrPlayerAlreadyUsed = errors.New("player already used in a previous week")
	ErrUnknownSlot       = errors.New("unknown lineup slot")
)

// ValidateSlots checks that every slot is filled with a pairwise-distinct
// display name and that no extra slots are present.
func ValidateSlots(players map[Slot]string) error {
	known := make(map[Slot]struct{}, len(Slots()))
	for _, slot := range Slots() {
		known[slot] = struct{}{}
	}
	for slot := range players {
		if _, ok := known[slot]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownSlot, slot)
		}
	}

	seen := make(map[string]struct{}, len(Slots()))
	for _, slot := range Slots() {
		name := players[slot]
		if name == "" {
			return fmt.Errorf("%w: %s", ErrMissingSlot, slot)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, name)
		}
		seen[name] = struct{}{}
	}

	return nil
}

// ValidateNoReuse rejects any candidate name that already appears in a lineup
// from a strictly earlier week. Replacing the same week's lineup is free. The
// error names every reused player, not just the first.
func ValidateNoReuse(candidate Lineup, prior []Lineup) error {
	used := make(map[string]int)
	for _, old := range prior {
		if old.UserID != candidate.UserID || old.WeekNumber >= candidate.WeekNumber {
			continue
		}
		for _, name := range old.PlayerNames() {
			used[name] = old.WeekNumber
		}
	}

	var reused []string
	for _, slot := range Slots() {
		name := candidate.Players[slot]
		if name == "" {
			continue
		}
		if weekNumber, ok := used[name]; ok {
			reused = append(reused, fmt.Sprintf("%s (week %d)", name, weekNumber))
		}
	}
	if len(reused) > 0 {
		return fmt.Errorf("%w: %s", ErrPlayerAlreadyUsed, strings.Join(reused, ", "))
	}

	return nil
}
