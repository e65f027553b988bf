package usecase

import (
	"context"
	"fmt"
)

// stubProvider is a canned StatsProvider for service tests.
type stubProvider struct {
	teams      []ExternalTeam
	teamsErr   error
	games      map[int][]ExternalGame
	gamesErr   error
	results    map[string]ExternalGameResult
	resultsErr error
	boxes      map[string]ExternalBoxScore
	boxesErr   error
}

func (p *stubProvider) Teams(context.Context) ([]ExternalTeam, error) {
	return p.teams, p.teamsErr
}

func (p *stubProvider) GamesByWeek(_ context.Context, _ SeasonInfo, weekNumber int) ([]ExternalGame, error) {
	if p.gamesErr != nil {
		return nil, p.gamesErr
	}
	return p.games[weekNumber], nil
}

func (p *stubProvider) GameResult(_ context.Context, gameID string) (ExternalGameResult, error) {
	if p.resultsErr != nil {
		return ExternalGameResult{}, p.resultsErr
	}
	result, ok := p.results[gameID]
	if !ok {
		return ExternalGameResult{}, fmt.Errorf("unknown game %q", gameID)
	}
	return result, nil
}

func (p *stubProvider) GameBoxScore(_ context.Context, gameID string) (ExternalBoxScore, error) {
	if p.boxesErr != nil {
		return ExternalBoxScore{}, p.boxesErr
	}
	box, ok := p.boxes[gameID]
	if !ok {
		return ExternalBoxScore{}, fmt.Errorf("unknown game %q", gameID)
	}
	return box, nil
}
