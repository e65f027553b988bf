package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/pickem-league/pickem-api/internal/domain/lineup"
	"github.com/pickem-league/pickem-api/internal/domain/player"
	"github.com/pickem-league/pickem-api/internal/domain/week"
)

const defenseNameSuffix = " Defense"

type SubmitLineupInput struct {
	UserID     string
	WeekNumber int
	Players    map[lineup.Slot]string
}

// PositionPools groups selectable display names by lineup position, including
// the synthesized FLEX pool.
type PositionPools map[string][]string

// PlayerHistoryEntry is one week's roster for a user, oldest week first.
type PlayerHistoryEntry struct {
	WeekNumber  int
	Players     map[lineup.Slot]string
	TotalPoints float64
}

// LeaderboardEntry ranks one lineup within a week.
type LeaderboardEntry struct {
	Rank        int
	UserID      string
	TotalPoints float64
	SubmittedAt time.Time
}

type LineupService struct {
	weekRepo   week.Repository
	lineupRepo lineup.Repository
	playerRepo player.Repository
	provider   StatsProvider
	now        func() time.Time
}

func NewLineupService(
	weekRepo week.Repository,
	lineupRepo lineup.Repository,
	playerRepo player.Repository,
	provider StatsProvider,
) *LineupService {
	return &LineupService{
		weekRepo:   weekRepo,
		lineupRepo: lineupRepo,
		playerRepo: playerRepo,
		provider:   provider,
		now:        time.Now,
	}
}

func (s *LineupService) GetByUserAndWeek(ctx context.Context, userID string, weekNumber int) (lineup.Lineup, bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return lineup.Lineup{}, false, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if weekNumber < 1 {
		return lineup.Lineup{}, false, fmt.Errorf("%w: week number must be >= 1", ErrInvalidInput)
	}

	item, exists, err := s.lineupRepo.GetByUserAndWeek(ctx, userID, weekNumber)
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("get lineup by user and week: %w", err)
	}

	return item, exists, nil
}

// Submit validates and stores a full nine-slot lineup for the week. The stored
// total resets to zero; scoring recomputes it from box scores.
func (s *LineupService) Submit(ctx context.Context, input SubmitLineupInput) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "LineupService.Submit")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if input.WeekNumber < 1 {
		return lineup.Lineup{}, fmt.Errorf("%w: week number must be >= 1", ErrInvalidInput)
	}

	wk, exists, err := s.weekRepo.GetByNumber(ctx, input.WeekNumber)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get week %d: %w", input.WeekNumber, err)
	}
	if !exists {
		return lineup.Lineup{}, fmt.Errorf("%w: week=%d", ErrNotFound, input.WeekNumber)
	}
	if !wk.LineupEditsAllowed {
		return lineup.Lineup{}, fmt.Errorf("%w: lineup edits are closed for week %d", ErrEditsLocked, input.WeekNumber)
	}

	players := make(map[lineup.Slot]string, len(input.Players))
	for slot, name := range input.Players {
		players[slot] = strings.TrimSpace(name)
	}

	if err := lineup.ValidateSlots(players); err != nil {
		return lineup.Lineup{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	candidate := lineup.Lineup{
		UserID:      input.UserID,
		WeekNumber:  input.WeekNumber,
		Players:     players,
		SubmittedAt: s.now().UTC(),
	}

	prior, err := s.lineupRepo.ListByUser(ctx, input.UserID)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("list lineups for reuse check: %w", err)
	}
	if err := lineup.ValidateNoReuse(candidate, prior); err != nil {
		return lineup.Lineup{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.lineupRepo.Upsert(ctx, candidate); err != nil {
		return lineup.Lineup{}, fmt.Errorf("save lineup: %w", err)
	}

	return candidate, nil
}

// AvailablePlayers builds the selectable pool per position for a user,
// excluding names the user already burned in earlier weeks. The DEF pool is
// synthesized from the provider team list. Pools are fetched in parallel.
func (s *LineupService) AvailablePlayers(ctx context.Context, userID string, weekNumber int) (PositionPools, error) {
	ctx, span := startUsecaseSpan(ctx, "LineupService.AvailablePlayers")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if weekNumber < 1 {
		return nil, fmt.Errorf("%w: week number must be >= 1", ErrInvalidInput)
	}

	used, err := s.usedPlayerNames(ctx, userID, weekNumber)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	pools := PositionPools{}
	setPool := func(key string, names []string) {
		mu.Lock()
		pools[key] = names
		mu.Unlock()
	}

	p := pool.New().WithContext(ctx).WithCancelOnError()
	for _, position := range []player.Position{
		player.PositionQuarterback,
		player.PositionRunningBack,
		player.PositionWideReceiver,
		player.PositionTightEnd,
		player.PositionKicker,
	} {
		p.Go(func(ctx context.Context) error {
			items, err := s.playerRepo.ListByPosition(ctx, position)
			if err != nil {
				return fmt.Errorf("list %s players: %w", position, err)
			}
			setPool(string(position), filterUsedNames(playerNames(items), used))
			return nil
		})
	}
	p.Go(func(ctx context.Context) error {
		teams, err := s.provider.Teams(ctx)
		if err != nil {
			return fmt.Errorf("%w: list teams: %v", ErrDependencyUnavailable, err)
		}
		names := make([]string, 0, len(teams))
		for _, t := range teams {
			names = append(names, t.Name+defenseNameSuffix)
		}
		sort.Strings(names)
		setPool(string(player.PositionDefense), filterUsedNames(names, used))
		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, err
	}

	flex := make([]string, 0, len(pools["RB"])+len(pools["WR"])+len(pools["TE"]))
	for _, position := range player.FlexPositions {
		flex = append(flex, pools[string(position)]...)
	}
	sort.Strings(flex)
	pools["FLEX"] = flex

	return pools, nil
}

// Leaderboard ranks the week's lineups by total points, earliest submission
// winning ties.
func (s *LineupService) Leaderboard(ctx context.Context, weekNumber int) ([]LeaderboardEntry, error) {
	if weekNumber < 1 {
		return nil, fmt.Errorf("%w: week number must be >= 1", ErrInvalidInput)
	}

	lineups, err := s.lineupRepo.ListByWeek(ctx, weekNumber)
	if err != nil {
		return nil, fmt.Errorf("list lineups by week: %w", err)
	}

	sort.SliceStable(lineups, func(i, j int) bool {
		if lineups[i].TotalPoints != lineups[j].TotalPoints {
			return lineups[i].TotalPoints > lineups[j].TotalPoints
		}
		return lineups[i].SubmittedAt.Before(lineups[j].SubmittedAt)
	})

	entries := make([]LeaderboardEntry, 0, len(lineups))
	for i, item := range lineups {
		entries = append(entries, LeaderboardEntry{
			Rank:        i + 1,
			UserID:      item.UserID,
			TotalPoints: item.TotalPoints,
			SubmittedAt: item.SubmittedAt,
		})
	}

	return entries, nil
}

// PlayerHistory lists every week's roster for a user, oldest first.
func (s *LineupService) PlayerHistory(ctx context.Context, userID string) ([]PlayerHistoryEntry, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	lineups, err := s.lineupRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list lineups by user: %w", err)
	}

	sort.SliceStable(lineups, func(i, j int) bool {
		return lineups[i].WeekNumber < lineups[j].WeekNumber
	})

	entries := make([]PlayerHistoryEntry, 0, len(lineups))
	for _, item := range lineups {
		entries = append(entries, PlayerHistoryEntry{
			WeekNumber:  item.WeekNumber,
			Players:     item.Clone().Players,
			TotalPoints: item.TotalPoints,
		})
	}

	return entries, nil
}

func (s *LineupService) usedPlayerNames(ctx context.Context, userID string, beforeWeek int) (map[string]struct{}, error) {
	lineups, err := s.lineupRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list lineups for used names: %w", err)
	}

	used := make(map[string]struct{})
	for _, item := range lineups {
		if item.WeekNumber >= beforeWeek {
			continue
		}
		for _, name := range item.PlayerNames() {
			used[name] = struct{}{}
		}
	}

	return used, nil
}

func playerNames(items []player.Player) []string {
	names := make([]string, 0, len(items))
	for _, p := range items {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

func filterUsedNames(names []string, used map[string]struct{}) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, taken := used[name]; taken {
			continue
		}
		out = append(out, name)
	}
	return out
}
