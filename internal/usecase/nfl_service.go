package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// NFLService exposes provider lookups directly: team lists, weekly
// scoreboards, and per-game results for building admin question configs.
type NFLService struct {
	provider StatsProvider
	season   *SeasonInfo
	now      func() time.Time
}

func NewNFLService(provider StatsProvider) *NFLService {
	return &NFLService{
		provider: provider,
		now:      time.Now,
	}
}

// SetSeasonOverride pins the season instead of deriving it from the clock.
func (s *NFLService) SetSeasonOverride(season SeasonInfo) {
	s.season = &season
}

func (s *NFLService) seasonInfo() SeasonInfo {
	if s.season != nil {
		return *s.season
	}
	return CurrentSeason(s.now())
}

// Season reports the season and week the service currently targets.
func (s *NFLService) Season() (SeasonInfo, int) {
	return s.seasonInfo(), CurrentSeasonWeek(s.now())
}

func (s *NFLService) Teams(ctx context.Context) ([]ExternalTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "NFLService.Teams")
	defer span.End()

	teams, err := s.provider.Teams(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list teams: %v", ErrDependencyUnavailable, err)
	}
	return teams, nil
}

func (s *NFLService) Scoreboard(ctx context.Context, weekNumber int) ([]ExternalGame, error) {
	ctx, span := startUsecaseSpan(ctx, "NFLService.Scoreboard")
	defer span.End()

	if weekNumber < 1 {
		return nil, fmt.Errorf("%w: week number must be >= 1", ErrInvalidInput)
	}

	games, err := s.provider.GamesByWeek(ctx, s.seasonInfo(), weekNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: week scoreboard: %v", ErrDependencyUnavailable, err)
	}
	return games, nil
}

func (s *NFLService) GameResult(ctx context.Context, gameID string) (ExternalGameResult, error) {
	ctx, span := startUsecaseSpan(ctx, "NFLService.GameResult")
	defer span.End()

	if strings.TrimSpace(gameID) == "" {
		return ExternalGameResult{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	result, err := s.provider.GameResult(ctx, gameID)
	if err != nil {
		return ExternalGameResult{}, fmt.Errorf("%w: game result: %v", ErrDependencyUnavailable, err)
	}
	return result, nil
}

func (s *NFLService) GameBoxScore(ctx context.Context, gameID string) (ExternalBoxScore, error) {
	ctx, span := startUsecaseSpan(ctx, "NFLService.GameBoxScore")
	defer span.End()

	if strings.TrimSpace(gameID) == "" {
		return ExternalBoxScore{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	box, err := s.provider.GameBoxScore(ctx, gameID)
	if err != nil {
		return ExternalBoxScore{}, fmt.Errorf("%w: game box score: %v", ErrDependencyUnavailable, err)
	}
	return box, nil
}
