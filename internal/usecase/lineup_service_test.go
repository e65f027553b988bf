package usecase

import (
	"errors"
	"testing"

	"github.com/pickem-league/pickem-api/internal/domain/lineup"
	"github.com/pickem-league/pickem-api/internal/infrastructure/repository/memory"
)

func validLineupPlayers() map[lineup.Slot]string {
	return map[lineup.Slot]string{
		lineup.SlotQB:   "Patrick Mahomes",
		lineup.SlotRB1:  "Christian McCaffrey",
		lineup.SlotRB2:  "Saquon Barkley",
		lineup.SlotWR1:  "Justin Jefferson",
		lineup.SlotWR2:  "CeeDee Lamb",
		lineup.SlotTE:   "Travis Kelce",
		lineup.SlotFLEX: "Tyreek Hill",
		lineup.SlotPK:   "Harrison Butker",
		lineup.SlotDEF:  "Kansas City Chiefs Defense",
	}
}

func newLineupFixture(t *testing.T) (*LineupService, *memory.LineupRepository, int) {
	t.Helper()

	weekRepo := memory.NewWeekRepository()
	created, err := NewWeekService(weekRepo).CreateWeek(t.Context(), sampleQuestions())
	if err != nil {
		t.Fatalf("create week: %v", err)
	}

	lineupRepo := memory.NewLineupRepository()
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	provider := &stubProvider{teams: []ExternalTeam{
		{ExternalID: "12", Name: "Kansas City Chiefs", Abbreviation: "KC"},
		{ExternalID: "2", Name: "Buffalo Bills", Abbreviation: "BUF"},
	}}

	return NewLineupService(weekRepo, lineupRepo, playerRepo, provider), lineupRepo, created.Number
}

func TestLineupService_Submit_ValidLineup(t *testing.T) {
	svc, repo, weekNumber := newLineupFixture(t)

	saved, err := svc.Submit(t.Context(), SubmitLineupInput{
		UserID:     "u-alice",
		WeekNumber: weekNumber,
		Players:    validLineupPlayers(),
	})
	if err != nil {
		t.Fatalf("submit lineup: %v", err)
	}
	if saved.TotalPoints != 0 {
		t.Fatalf("expected fresh lineup total 0, got %f", saved.TotalPoints)
	}

	stored, exists, err := repo.GetByUserAndWeek(t.Context(), "u-alice", weekNumber)
	if err != nil || !exists {
		t.Fatalf("get stored lineup: exists=%v err=%v", exists, err)
	}
	if stored.Players[lineup.SlotQB] != "Patrick Mahomes" {
		t.Fatalf("unexpected QB %q", stored.Players[lineup.SlotQB])
	}
}

func TestLineupService_Submit_EditsClosed(t *testing.T) {
	weekRepo := memory.NewWeekRepository()
	weekSvc := NewWeekService(weekRepo)
	created, err := weekSvc.CreateWeek(t.Context(), sampleQuestions())
	if err != nil {
		t.Fatalf("create week: %v", err)
	}
	if _, err := weekSvc.SetLineupEdits(t.Context(), created.Number, false); err != nil {
		t.Fatalf("close lineup edits: %v", err)
	}

	svc := NewLineupService(weekRepo, memory.NewLineupRepository(), memory.NewPlayerRepository(memory.SeedPlayers()), &stubProvider{})

	_, err = svc.Submit(t.Context(), SubmitLineupInput{
		UserID:     "u-alice",
		WeekNumber: created.Number,
		Players:    validLineupPlayers(),
	})
	if !errors.Is(err, ErrEditsLocked) {
		t.Fatalf("expected ErrEditsLocked, got %v", err)
	}
}

func TestLineupService_Submit_RejectsDuplicateAndMissing(t *testing.T) {
	svc, _, weekNumber := newLineupFixture(t)

	dup := validLineupPlayers()
	dup[lineup.SlotFLEX] = dup[lineup.SlotWR1]
	if _, err := svc.Submit(t.Context(), SubmitLineupInput{UserID: "u-alice", WeekNumber: weekNumber, Players: dup}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate player, got %v", err)
	}

	missing := validLineupPlayers()
	delete(missing, lineup.SlotPK)
	if _, err := svc.Submit(t.Context(), SubmitLineupInput{UserID: "u-alice", WeekNumber: weekNumber, Players: missing}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing slot, got %v", err)
	}
}

func TestLineupService_Submit_RejectsReusedPlayer(t *testing.T) {
	weekRepo := memory.NewWeekRepository()
	weekSvc := NewWeekService(weekRepo)
	if _, err := weekSvc.CreateWeek(t.Context(), sampleQuestions()); err != nil {
		t.Fatalf("create week 1: %v", err)
	}
	second, err := weekSvc.CreateWeek(t.Context(), sampleQuestions())
	if err != nil {
		t.Fatalf("create week 2: %v", err)
	}

	repo := memory.NewLineupRepository()
	prior := lineup.Lineup{
		UserID:     "u-alice",
		WeekNumber: second.Number - 1,
		Players: map[lineup.Slot]string{
			lineup.SlotQB: "Patrick Mahomes",
		},
	}
	if err := repo.Upsert(t.Context(), prior); err != nil {
		t.Fatalf("seed prior lineup: %v", err)
	}

	svc := NewLineupService(weekRepo, repo, memory.NewPlayerRepository(memory.SeedPlayers()), &stubProvider{})

	_, err = svc.Submit(t.Context(), SubmitLineupInput{UserID: "u-alice", WeekNumber: second.Number, Players: validLineupPlayers()})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for reused player, got %v", err)
	}
}

func TestLineupService_Submit_ReplacingSameWeekIsFree(t *testing.T) {
	svc, _, weekNumber := newLineupFixture(t)

	if _, err := svc.Submit(t.Context(), SubmitLineupInput{UserID: "u-alice", WeekNumber: weekNumber, Players: validLineupPlayers()}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.Submit(t.Context(), SubmitLineupInput{UserID: "u-alice", WeekNumber: weekNumber, Players: validLineupPlayers()}); err != nil {
		t.Fatalf("resubmit same week: %v", err)
	}
}

func TestLineupService_AvailablePlayers(t *testing.T) {
	svc, repo, weekNumber := newLineupFixture(t)

	used := lineup.Lineup{
		UserID:     "u-alice",
		WeekNumber: weekNumber,
		Players:    validLineupPlayers(),
	}
	if err := repo.Upsert(t.Context(), used); err != nil {
		t.Fatalf("seed used lineup: %v", err)
	}

	pools, err := svc.AvailablePlayers(t.Context(), "u-alice", weekNumber+1)
	if err != nil {
		t.Fatalf("available players: %v", err)
	}

	for _, name := range pools["QB"] {
		if name == "Patrick Mahomes" {
			t.Fatal("expected used QB to be excluded")
		}
	}
	for _, name := range pools["DEF"] {
		if name == "Kansas City Chiefs Defense" {
			t.Fatal("expected used defense to be excluded")
		}
	}
	if len(pools["DEF"]) != 1 || pools["DEF"][0] != "Buffalo Bills Defense" {
		t.Fatalf("unexpected DEF pool %v", pools["DEF"])
	}

	flex := map[string]struct{}{}
	for _, name := range pools["FLEX"] {
		flex[name] = struct{}{}
	}
	for _, pos := range []string{"RB", "WR", "TE"} {
		for _, name := range pools[pos] {
			if _, ok := flex[name]; !ok {
				t.Fatalf("expected %s player %q in FLEX pool", pos, name)
			}
		}
	}
	if len(pools["FLEX"]) != len(pools["RB"])+len(pools["WR"])+len(pools["TE"]) {
		t.Fatalf("FLEX should be the union of RB, WR, TE pools")
	}
}

func TestLineupService_AvailablePlayers_ProviderDown(t *testing.T) {
	weekRepo := memory.NewWeekRepository()
	if _, err := NewWeekService(weekRepo).CreateWeek(t.Context(), sampleQuestions()); err != nil {
		t.Fatalf("create week: %v", err)
	}
	provider := &stubProvider{teamsErr: errors.New("espn down")}
	svc := NewLineupService(weekRepo, memory.NewLineupRepository(), memory.NewPlayerRepository(memory.SeedPlayers()), provider)

	if _, err := svc.AvailablePlayers(t.Context(), "u-alice", 1); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestLineupService_Leaderboard(t *testing.T) {
	svc, repo, weekNumber := newLineupFixture(t)

	for _, seed := range []lineup.Lineup{
		{UserID: "u-alice", WeekNumber: weekNumber, TotalPoints: 101.5},
		{UserID: "u-bob", WeekNumber: weekNumber, TotalPoints: 120.3},
		{UserID: "u-carol", WeekNumber: weekNumber, TotalPoints: 88},
	} {
		if err := repo.Upsert(t.Context(), seed); err != nil {
			t.Fatalf("seed lineup: %v", err)
		}
	}

	entries, err := svc.Leaderboard(t.Context(), weekNumber)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].UserID != "u-bob" || entries[0].Rank != 1 {
		t.Fatalf("unexpected leader %+v", entries[0])
	}
	if entries[2].UserID != "u-carol" || entries[2].Rank != 3 {
		t.Fatalf("unexpected last place %+v", entries[2])
	}
}

func TestLineupService_PlayerHistory(t *testing.T) {
	svc, repo, weekNumber := newLineupFixture(t)

	for _, seed := range []lineup.Lineup{
		{UserID: "u-alice", WeekNumber: weekNumber + 1, Players: map[lineup.Slot]string{lineup.SlotQB: "Josh Allen"}, TotalPoints: 90},
		{UserID: "u-alice", WeekNumber: weekNumber, Players: map[lineup.Slot]string{lineup.SlotQB: "Patrick Mahomes"}, TotalPoints: 110},
	} {
		if err := repo.Upsert(t.Context(), seed); err != nil {
			t.Fatalf("seed lineup: %v", err)
		}
	}

	entries, err := svc.PlayerHistory(t.Context(), "u-alice")
	if err != nil {
		t.Fatalf("player history: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].WeekNumber != weekNumber || entries[1].WeekNumber != weekNumber+1 {
		t.Fatalf("expected oldest week first, got %d then %d", entries[0].WeekNumber, entries[1].WeekNumber)
	}
}
