package usecase

import (
	"errors"
	"math"
	"testing"

	"github.com/pickem-league/pickem-api/internal/domain/lineup"
	"github.com/pickem-league/pickem-api/internal/infrastructure/repository/memory"
	"github.com/pickem-league/pickem-api/internal/platform/logging"
)

func scoringFixtureProvider() *stubProvider {
	return &stubProvider{
		teams: []ExternalTeam{
			{ExternalID: "12", Name: "Kansas City Chiefs", Abbreviation: "KC"},
			{ExternalID: "2", Name: "Buffalo Bills", Abbreviation: "BUF"},
		},
		games: map[int][]ExternalGame{
			1: {
				{ExternalID: "401001", ShortName: "BUF @ KC", Completed: true, Status: "STATUS_FINAL"},
			},
		},
		boxes: map[string]ExternalBoxScore{
			"401001": {
				GameID:    "401001",
				Completed: true,
				Status:    "STATUS_FINAL",
				Lines: []ExternalStatLine{
					// 250/25 + 2*4 - 1*2 = 16
					{PlayerID: "3139477", PlayerName: "Patrick Mahomes", Category: "passing", Stats: map[string]string{"YDS": "250", "TD": "2", "INT": "1"}},
					// 30/10 = 3
					{PlayerID: "3139477", PlayerName: "Patrick Mahomes", Category: "rushing", Stats: map[string]string{"YDS": "30", "TD": "0"}},
					// 8 + 90/10 + 6 = 23
					{PlayerID: "15847", PlayerName: "Travis Kelce", Category: "receiving", Stats: map[string]string{"REC": "8", "YDS": "90", "TD": "1"}},
				},
			},
		},
	}
}

func seedScoringLineup(t *testing.T, repo *memory.LineupRepository, userID string) {
	t.Helper()

	item := lineup.Lineup{
		UserID:     userID,
		WeekNumber: 1,
		Players:    validLineupPlayers(),
	}
	if err := repo.Upsert(t.Context(), item); err != nil {
		t.Fatalf("seed lineup: %v", err)
	}
}

func TestScoringService_ScoreLineup(t *testing.T) {
	lineupRepo := memory.NewLineupRepository()
	seedScoringLineup(t, lineupRepo, "u-alice")

	svc := NewScoringService(lineupRepo, memory.NewPlayerRepository(memory.SeedPlayers()), scoringFixtureProvider(), logging.NewNop())

	score, err := svc.ScoreLineup(t.Context(), "u-alice", 1)
	if err != nil {
		t.Fatalf("score lineup: %v", err)
	}

	// Mahomes 16+3, Kelce 23, every other slot has no stat line.
	if math.Abs(score.TotalPoints-42) > 1e-9 {
		t.Fatalf("expected total 42, got %f", score.TotalPoints)
	}

	stored, exists, err := lineupRepo.GetByUserAndWeek(t.Context(), "u-alice", 1)
	if err != nil || !exists {
		t.Fatalf("get stored lineup: exists=%v err=%v", exists, err)
	}
	if math.Abs(stored.TotalPoints-42) > 1e-9 {
		t.Fatalf("expected persisted total 42, got %f", stored.TotalPoints)
	}

	for _, slot := range score.Slots {
		switch slot.Slot {
		case lineup.SlotQB:
			if !slot.Resolved || math.Abs(slot.Points-19) > 1e-9 {
				t.Fatalf("QB slot: %+v", slot)
			}
		case lineup.SlotTE:
			if !slot.Resolved || math.Abs(slot.Points-23) > 1e-9 {
				t.Fatalf("TE slot: %+v", slot)
			}
		case lineup.SlotDEF:
			if !slot.Resolved {
				t.Fatalf("expected DEF slot to resolve against the team list: %+v", slot)
			}
			if slot.PlayerID != "12" {
				t.Fatalf("expected DEF to resolve to team 12, got %q", slot.PlayerID)
			}
		}
	}
}

func TestScoringService_ScoreLineup_NotFound(t *testing.T) {
	svc := NewScoringService(memory.NewLineupRepository(), memory.NewPlayerRepository(nil), scoringFixtureProvider(), logging.NewNop())

	if _, err := svc.ScoreLineup(t.Context(), "u-ghost", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScoringService_ScoreLineup_ProviderDown(t *testing.T) {
	lineupRepo := memory.NewLineupRepository()
	seedScoringLineup(t, lineupRepo, "u-alice")

	provider := &stubProvider{gamesErr: errors.New("espn down")}
	svc := NewScoringService(lineupRepo, memory.NewPlayerRepository(memory.SeedPlayers()), provider, logging.NewNop())

	if _, err := svc.ScoreLineup(t.Context(), "u-alice", 1); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestScoringService_ScoreAllLineups(t *testing.T) {
	lineupRepo := memory.NewLineupRepository()
	seedScoringLineup(t, lineupRepo, "u-bob")
	seedScoringLineup(t, lineupRepo, "u-alice")

	svc := NewScoringService(lineupRepo, memory.NewPlayerRepository(memory.SeedPlayers()), scoringFixtureProvider(), logging.NewNop())
	svc.SetWorkerCount(2)

	report, err := svc.ScoreAllLineups(t.Context(), 1)
	if err != nil {
		t.Fatalf("score all lineups: %v", err)
	}

	if report.LineupCount != 2 {
		t.Fatalf("expected 2 lineups, got %d", report.LineupCount)
	}
	if report.WorkerCount != 2 {
		t.Fatalf("expected 2 workers, got %d", report.WorkerCount)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	if report.Results[0].UserID != "u-alice" || report.Results[1].UserID != "u-bob" {
		t.Fatalf("expected results sorted by user id, got %+v", report.Results)
	}
	for _, row := range report.Results {
		if row.Error != "" {
			t.Fatalf("unexpected row error: %+v", row)
		}
		if math.Abs(row.TotalPoints-42) > 1e-9 {
			t.Fatalf("expected total 42 for %s, got %f", row.UserID, row.TotalPoints)
		}
	}
	if len(report.SkippedGames) != 0 {
		t.Fatalf("unexpected skipped games: %v", report.SkippedGames)
	}
}

func TestScoringService_ScoreAllLineups_Idempotent(t *testing.T) {
	lineupRepo := memory.NewLineupRepository()
	seedScoringLineup(t, lineupRepo, "u-alice")
	seedScoringLineup(t, lineupRepo, "u-bob")

	svc := NewScoringService(lineupRepo, memory.NewPlayerRepository(memory.SeedPlayers()), scoringFixtureProvider(), logging.NewNop())

	first, err := svc.ScoreAllLineups(t.Context(), 1)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := svc.ScoreAllLineups(t.Context(), 1)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(first.Results) != len(second.Results) {
		t.Fatalf("result counts differ: %d vs %d", len(first.Results), len(second.Results))
	}
	for i := range first.Results {
		if first.Results[i] != second.Results[i] {
			t.Fatalf("rerun changed result %d: %+v vs %+v", i, first.Results[i], second.Results[i])
		}
	}

	for _, userID := range []string{"u-alice", "u-bob"} {
		stored, exists, err := lineupRepo.GetByUserAndWeek(t.Context(), userID, 1)
		if err != nil || !exists {
			t.Fatalf("get stored lineup for %s: exists=%v err=%v", userID, exists, err)
		}
		if math.Abs(stored.TotalPoints-42) > 1e-9 {
			t.Fatalf("expected persisted total 42 for %s after rerun, got %f", userID, stored.TotalPoints)
		}
	}
}

func TestScoringService_ScoreAllLineups_SkipsUnfinishedGames(t *testing.T) {
	lineupRepo := memory.NewLineupRepository()
	seedScoringLineup(t, lineupRepo, "u-alice")

	provider := scoringFixtureProvider()
	provider.games[1] = []ExternalGame{
		{ExternalID: "401001", ShortName: "BUF @ KC", Completed: false, Status: "STATUS_IN_PROGRESS"},
	}

	svc := NewScoringService(lineupRepo, memory.NewPlayerRepository(memory.SeedPlayers()), provider, logging.NewNop())

	report, err := svc.ScoreAllLineups(t.Context(), 1)
	if err != nil {
		t.Fatalf("score all lineups: %v", err)
	}
	if len(report.SkippedGames) != 1 {
		t.Fatalf("expected 1 skipped game, got %v", report.SkippedGames)
	}
	if report.Results[0].TotalPoints != 0 {
		t.Fatalf("expected 0 points with no completed games, got %f", report.Results[0].TotalPoints)
	}
}

func TestScoringService_ScoreAllLineups_EmptyWeek(t *testing.T) {
	svc := NewScoringService(memory.NewLineupRepository(), memory.NewPlayerRepository(nil), scoringFixtureProvider(), logging.NewNop())

	report, err := svc.ScoreAllLineups(t.Context(), 1)
	if err != nil {
		t.Fatalf("score all lineups: %v", err)
	}
	if report.LineupCount != 0 || len(report.Results) != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
}
