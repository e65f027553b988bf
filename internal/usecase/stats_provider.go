package usecase

import (
	"context"
	"time"
)

// StatsProvider abstracts the NFL data source. Implemented by external/espn.
type StatsProvider interface {
	Teams(ctx context.Context) ([]ExternalTeam, error)
	GamesByWeek(ctx context.Context, season SeasonInfo, weekNumber int) ([]ExternalGame, error)
	GameResult(ctx context.Context, gameID string) (ExternalGameResult, error)
	GameBoxScore(ctx context.Context, gameID string) (ExternalBoxScore, error)
}

type ExternalTeam struct {
	ExternalID   string
	Name         string
	Abbreviation string
	Location     string
}

type ExternalGameSide struct {
	TeamID       string
	TeamName     string
	Abbreviation string
	Score        int
	Winner       bool
}

type ExternalGame struct {
	ExternalID string
	Name       string
	ShortName  string
	Date       time.Time
	Status     string
	Completed  bool
	Home       ExternalGameSide
	Away       ExternalGameSide
}

// ExternalGameResult is a completed-or-not final. An incomplete game is a
// normal result, not an error.
type ExternalGameResult struct {
	GameID         string
	Completed      bool
	Status         string
	Tie            bool
	WinnerTeamID   string
	WinnerTeamName string
	Home           ExternalGameSide
	Away           ExternalGameSide
}

// ExternalStatLine is one player's stats in one box-score category. Stats is
// a label-to-raw-value map straight from the provider ("YDS" -> "250").
type ExternalStatLine struct {
	PlayerID   string
	PlayerName string
	TeamID     string
	Category   string
	Stats      map[string]string
}

type ExternalBoxScore struct {
	GameID    string
	Completed bool
	Status    string
	Lines     []ExternalStatLine
}
