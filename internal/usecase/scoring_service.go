package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/pickem-league/pickem-api/internal/domain/lineup"
	"github.com/pickem-league/pickem-api/internal/domain/player"
	"github.com/pickem-league/pickem-api/internal/domain/scoring"
	"github.com/pickem-league/pickem-api/internal/platform/logging"
	"github.com/pickem-league/pickem-api/internal/platform/resilience"
)

const defaultScoringWorkers = 4

// SlotScore is the per-slot outcome of scoring one lineup.
type SlotScore struct {
	Slot       lineup.Slot
	PlayerName string
	PlayerID   string
	Points     float64
	Resolved   bool
}

// LineupScore is the full scoring result for one lineup.
type LineupScore struct {
	UserID      string
	WeekNumber  int
	TotalPoints float64
	Slots       []SlotScore
}

// LineupScoreResult is one row of a week-wide scoring run. Error is a
// message, not a failure of the whole run.
type LineupScoreResult struct {
	UserID      string
	TotalPoints float64
	Error       string
}

// WeekScoreReport summarizes a week-wide scoring run.
type WeekScoreReport struct {
	WeekNumber   int
	LineupCount  int
	WorkerCount  int
	Results      []LineupScoreResult
	SkippedGames []string
}

// ScoringService recomputes lineup fantasy totals from provider box scores.
type ScoringService struct {
	lineupRepo lineup.Repository
	playerRepo player.Repository
	provider   StatsProvider
	logger     *logging.Logger
	workers    int
	season     *SeasonInfo
	now        func() time.Time
}

func NewScoringService(
	lineupRepo lineup.Repository,
	playerRepo player.Repository,
	provider StatsProvider,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringService{
		lineupRepo: lineupRepo,
		playerRepo: playerRepo,
		provider:   provider,
		logger:     logger,
		workers:    defaultScoringWorkers,
		now:        time.Now,
	}
}

// SetWorkerCount bounds the week-wide scoring pool.
func (s *ScoringService) SetWorkerCount(workers int) {
	if workers > 0 {
		s.workers = workers
	}
}

// SetSeasonOverride pins the provider season instead of deriving it from the
// calendar. Used for replaying past weeks.
func (s *ScoringService) SetSeasonOverride(season SeasonInfo) {
	s.season = &season
}

// ScoreLineup recomputes one lineup's total from the week's completed games
// and overwrites the stored total. Unresolved names and unfinished games
// contribute zero.
func (s *ScoringService) ScoreLineup(ctx context.Context, userID string, weekNumber int) (LineupScore, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.ScoreLineup")
	defer span.End()

	run, err := s.newRun(ctx, weekNumber)
	if err != nil {
		return LineupScore{}, err
	}

	return s.scoreWithRun(ctx, run, userID, weekNumber)
}

// ScoreAllLineups recomputes every lineup for the week on a worker pool. Box
// scores are fetched once per game and shared across workers; one bad lineup
// never aborts the batch.
func (s *ScoringService) ScoreAllLineups(ctx context.Context, weekNumber int) (WeekScoreReport, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.ScoreAllLineups")
	defer span.End()

	run, err := s.newRun(ctx, weekNumber)
	if err != nil {
		return WeekScoreReport{}, err
	}

	lineups, err := s.lineupRepo.ListByWeek(ctx, weekNumber)
	if err != nil {
		return WeekScoreReport{}, fmt.Errorf("list lineups by week: %w", err)
	}

	report := WeekScoreReport{
		WeekNumber:  weekNumber,
		LineupCount: len(lineups),
		WorkerCount: s.workers,
		Results:     make([]LineupScoreResult, 0, len(lineups)),
	}
	if len(lineups) == 0 {
		return report, nil
	}

	workerPool, err := ants.NewPool(s.workers)
	if err != nil {
		return WeekScoreReport{}, fmt.Errorf("create scoring worker pool: %w", err)
	}
	defer workerPool.Release()

	results := make(chan LineupScoreResult, len(lineups))
	var workers sync.WaitGroup
	for _, item := range lineups {
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			row := LineupScoreResult{UserID: item.UserID}
			score, scoreErr := s.scoreWithRun(ctx, run, item.UserID, weekNumber)
			if scoreErr != nil {
				row.Error = scoreErr.Error()
				s.logger.ErrorContext(ctx, "score lineup failed", "user_id", item.UserID, "week", weekNumber, "error", scoreErr)
			} else {
				row.TotalPoints = score.TotalPoints
			}
			results <- row
		}); err != nil {
			workers.Done()
			return WeekScoreReport{}, fmt.Errorf("submit lineup to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		report.Results = append(report.Results, row)
	}
	sort.SliceStable(report.Results, func(i, j int) bool {
		return report.Results[i].UserID < report.Results[j].UserID
	})
	report.SkippedGames = run.skippedGames()

	return report, nil
}

func (s *ScoringService) scoreWithRun(ctx context.Context, run *scoringRun, userID string, weekNumber int) (LineupScore, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return LineupScore{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	item, exists, err := s.lineupRepo.GetByUserAndWeek(ctx, userID, weekNumber)
	if err != nil {
		return LineupScore{}, fmt.Errorf("get lineup: %w", err)
	}
	if !exists {
		return LineupScore{}, fmt.Errorf("%w: lineup user=%s week=%d", ErrNotFound, userID, weekNumber)
	}

	points := run.playerPoints(ctx)

	score := LineupScore{
		UserID:     userID,
		WeekNumber: weekNumber,
		Slots:      make([]SlotScore, 0, len(lineup.Slots())),
	}
	for _, slot := range lineup.Slots() {
		name := item.Players[slot]
		slotScore := SlotScore{Slot: slot, PlayerName: name}

		playerID, resolved := s.resolvePlayerID(ctx, run, slot, name)
		slotScore.PlayerID = playerID
		slotScore.Resolved = resolved
		if resolved {
			slotScore.Points = points[playerID]
		}

		score.TotalPoints += slotScore.Points
		score.Slots = append(score.Slots, slotScore)
	}

	if err := s.lineupRepo.UpdateTotalPoints(ctx, userID, weekNumber, score.TotalPoints); err != nil {
		return LineupScore{}, fmt.Errorf("store lineup total: %w", err)
	}

	return score, nil
}

// resolvePlayerID maps a lineup display name to a provider ID. DEF slots
// resolve against the team list after stripping the " Defense" suffix.
func (s *ScoringService) resolvePlayerID(ctx context.Context, run *scoringRun, slot lineup.Slot, name string) (string, bool) {
	if name == "" {
		return "", false
	}

	if slot == lineup.SlotDEF {
		teamName := strings.TrimSuffix(name, defenseNameSuffix)
		teams, err := run.teams(ctx)
		if err != nil {
			return "", false
		}
		for _, t := range teams {
			if strings.EqualFold(t.Name, teamName) {
				return t.ExternalID, true
			}
		}
		return "", false
	}

	p, exists, err := s.playerRepo.GetByName(ctx, name)
	if err != nil || !exists {
		return "", false
	}
	return p.ESPNID, true
}

func (s *ScoringService) currentSeason() SeasonInfo {
	if s.season != nil {
		return *s.season
	}
	return CurrentSeason(s.now())
}

func (s *ScoringService) newRun(ctx context.Context, weekNumber int) (*scoringRun, error) {
	if weekNumber < 1 {
		return nil, fmt.Errorf("%w: week number must be >= 1", ErrInvalidInput)
	}

	games, err := s.provider.GamesByWeek(ctx, s.currentSeason(), weekNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: list games for week %d: %v", ErrDependencyUnavailable, weekNumber, err)
	}

	return &scoringRun{
		provider: s.provider,
		games:    games,
	}, nil
}

// scoringRun caches provider lookups for the duration of one scoring pass so
// concurrent workers fetch each box score and the team list at most once.
type scoringRun struct {
	provider StatsProvider
	games    []ExternalGame
	flight   resilience.SingleFlight

	mu       sync.Mutex
	points   map[string]float64
	skipped  []string
	teamList []ExternalTeam
}

// playerPoints aggregates PPR points per provider player ID across every
// completed game in the run. Unfinished or failing games are skipped and
// recorded; the aggregate itself never fails.
func (r *scoringRun) playerPoints(ctx context.Context) map[string]float64 {
	_, _, _ = r.flight.Do("player-points", func() (any, error) {
		r.mu.Lock()
		cached := r.points
		r.mu.Unlock()
		if cached != nil {
			return nil, nil
		}

		points := make(map[string]float64)
		var skipped []string
		for _, game := range r.games {
			if !game.Completed {
				skipped = append(skipped, fmt.Sprintf("%s: not completed (%s)", game.ShortName, game.Status))
				continue
			}

			box, boxErr := r.provider.GameBoxScore(ctx, game.ExternalID)
			if boxErr != nil {
				skipped = append(skipped, fmt.Sprintf("%s: %v", game.ShortName, boxErr))
				continue
			}
			for _, line := range box.Lines {
				linePoints, _ := scoring.Points(scoring.Category(line.Category), line.Stats)
				points[line.PlayerID] += linePoints
			}
		}

		r.mu.Lock()
		r.points = points
		r.skipped = skipped
		r.mu.Unlock()
		return nil, nil
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.points
}

func (r *scoringRun) teams(ctx context.Context) ([]ExternalTeam, error) {
	_, err, _ := r.flight.Do("teams", func() (any, error) {
		r.mu.Lock()
		cached := r.teamList
		r.mu.Unlock()
		if cached != nil {
			return nil, nil
		}

		teams, teamsErr := r.provider.Teams(ctx)
		if teamsErr != nil {
			return nil, teamsErr
		}
		r.mu.Lock()
		r.teamList = teams
		r.mu.Unlock()
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ExternalTeam(nil), r.teamList...), nil
}

func (r *scoringRun) skippedGames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.skipped...)
}
