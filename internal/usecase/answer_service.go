package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pickem-league/pickem-api/internal/domain/scoring"
	"github.com/pickem-league/pickem-api/internal/domain/user"
	"github.com/pickem-league/pickem-api/internal/domain/week"
	"github.com/pickem-league/pickem-api/internal/platform/logging"
)

// PointsPerCorrectPick is awarded for every response answer that matches the
// resolved answer set for its question.
const PointsPerCorrectPick = 30

// UserScore is one user's tally for a scored week.
type UserScore struct {
	UserID       string
	CorrectPicks int
	Score        int
}

// ScoreSummary reports the outcome of a merge-and-score run. Failures carry
// per-user persistence problems; they never abort the run.
type ScoreSummary struct {
	WeekNumber      int
	ResolvedAnswers int
	UserScores      []UserScore
	Failures        []string
}

// AnswerService resolves question answers from provider results and tallies
// user pick scores.
type AnswerService struct {
	weekRepo week.Repository
	userRepo user.Repository
	provider StatsProvider
	logger   *logging.Logger
	now      func() time.Time
}

func NewAnswerService(
	weekRepo week.Repository,
	userRepo user.Repository,
	provider StatsProvider,
	logger *logging.Logger,
) *AnswerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AnswerService{
		weekRepo: weekRepo,
		userRepo: userRepo,
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
}

// MergeAndScore resolves auto-scorable answers, merges them with any stored
// answers, persists the merged week, then tallies and stores every user's
// pick score for the week.
func (s *AnswerService) MergeAndScore(ctx context.Context, weekNumber int) (ScoreSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "AnswerService.MergeAndScore")
	defer span.End()

	if weekNumber < 1 {
		return ScoreSummary{}, fmt.Errorf("%w: week number must be >= 1", ErrInvalidInput)
	}

	wk, exists, err := s.weekRepo.GetByNumber(ctx, weekNumber)
	if err != nil {
		return ScoreSummary{}, fmt.Errorf("get week %d: %w", weekNumber, err)
	}
	if !exists {
		return ScoreSummary{}, fmt.Errorf("%w: week=%d", ErrNotFound, weekNumber)
	}
	wk.Normalize()

	auto := s.AutoScoreQuestions(ctx, wk.Questions)
	wk.CorrectAnswers = MergeCorrectAnswers(auto, wk.CorrectAnswers)
	wk.UpdatedAt = s.now().UTC()
	if err := s.weekRepo.Upsert(ctx, wk); err != nil {
		return ScoreSummary{}, fmt.Errorf("save merged answers for week %d: %w", weekNumber, err)
	}

	summary := ScoreSummary{WeekNumber: weekNumber}
	for _, ans := range wk.CorrectAnswers {
		if ans.Resolved() {
			summary.ResolvedAnswers++
		}
	}

	for _, resp := range wk.Responses {
		correct := CountCorrectPicks(wk.CorrectAnswers, resp.Answers)
		score := correct * PointsPerCorrectPick

		if err := s.userRepo.SetWeekScore(ctx, resp.UserID, weekNumber, score); err != nil {
			s.logger.ErrorContext(ctx, "store week score failed", "user_id", resp.UserID, "week", weekNumber, "error", err)
			summary.Failures = append(summary.Failures, fmt.Sprintf("user %s: %v", resp.UserID, err))
			continue
		}

		summary.UserScores = append(summary.UserScores, UserScore{
			UserID:       resp.UserID,
			CorrectPicks: correct,
			Score:        score,
		})
	}

	return summary, nil
}

// Standing is one user's overall pick'em position.
type Standing struct {
	UserID   string
	Username string
	Scores   []int
	Total    int
}

// Standings lists every user ranked by cumulative pick score.
func (s *AnswerService) Standings(ctx context.Context) ([]Standing, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	standings := make([]Standing, 0, len(users))
	for _, u := range users {
		standings = append(standings, Standing{
			UserID:   u.ID,
			Username: u.Username,
			Scores:   append([]int(nil), u.Scores...),
			Total:    u.TotalScore(),
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Total != standings[j].Total {
			return standings[i].Total > standings[j].Total
		}
		return standings[i].UserID < standings[j].UserID
	})

	return standings, nil
}

// AutoScoreQuestions resolves an answer per question from provider results.
// Questions without auto-score config, with unfinished games, or hitting
// provider failures come back unresolved; a bad question never fails the run.
func (s *AnswerService) AutoScoreQuestions(ctx context.Context, questions []week.Question) []week.Answer {
	answers := make([]week.Answer, len(questions))
	for i, q := range questions {
		if q.AutoScore == nil {
			continue
		}

		ans, err := s.resolveAutoScore(ctx, q)
		if err != nil {
			s.logger.WarnContext(ctx, "auto score unresolved", "question_index", i, "kind", q.AutoScore.Kind, "error", err)
			continue
		}
		answers[i] = ans
	}
	return answers
}

// MergeCorrectAnswers prefers freshly resolved auto answers, falls back to
// existing stored answers, and leaves the rest unresolved. The result is
// always index-aligned to the longer input.
func MergeCorrectAnswers(auto, existing []week.Answer) []week.Answer {
	n := len(auto)
	if len(existing) > n {
		n = len(existing)
	}

	merged := make([]week.Answer, n)
	for i := range merged {
		if i < len(auto) && auto[i].Resolved() {
			merged[i] = auto[i]
			continue
		}
		if i < len(existing) && existing[i].Resolved() {
			merged[i] = existing[i]
		}
	}
	return merged
}

// CountCorrectPicks counts response answers matched by the resolved answer
// sets. Single-valued sets behave as equality, multi-valued as membership.
func CountCorrectPicks(answers []week.Answer, response []string) int {
	correct := 0
	for i, ans := range answers {
		if !ans.Resolved() || i >= len(response) {
			continue
		}
		if ans.Matches(response[i]) {
			correct++
		}
	}
	return correct
}

func (s *AnswerService) resolveAutoScore(ctx context.Context, q week.Question) (week.Answer, error) {
	cfg := q.AutoScore

	switch cfg.Kind {
	case week.AutoScoreGameWinner:
		result, err := s.provider.GameResult(ctx, cfg.GameID)
		if err != nil {
			return week.Unresolved(), fmt.Errorf("game result: %w", err)
		}
		if !result.Completed {
			return week.Unresolved(), nil
		}
		if result.Tie {
			return week.Scalar(tieOption(q.Options)), nil
		}
		return week.Scalar(matchOption(q.Options, result.WinnerTeamName)), nil

	case week.AutoScoreTeamWins:
		result, err := s.provider.GameResult(ctx, cfg.GameID)
		if err != nil {
			return week.Unresolved(), fmt.Errorf("game result: %w", err)
		}
		if !result.Completed {
			return week.Unresolved(), nil
		}
		if !result.Tie && result.WinnerTeamID == cfg.TeamID {
			return week.Scalar("Yes"), nil
		}
		return week.Scalar("No"), nil

	case week.AutoScoreScoreOverUnder:
		result, err := s.provider.GameResult(ctx, cfg.GameID)
		if err != nil {
			return week.Unresolved(), fmt.Errorf("game result: %w", err)
		}
		if !result.Completed {
			return week.Unresolved(), nil
		}
		combined := float64(result.Home.Score + result.Away.Score)
		return week.Scalar(overUnder(combined, cfg.Threshold)), nil

	case week.AutoScorePlayerStatOverUnder:
		box, err := s.provider.GameBoxScore(ctx, cfg.GameID)
		if err != nil {
			return week.Unresolved(), fmt.Errorf("game box score: %w", err)
		}
		if !box.Completed {
			return week.Unresolved(), nil
		}
		value := playerStatValue(box, cfg.PlayerID, cfg.StatName)
		return week.Scalar(overUnder(value, cfg.Threshold)), nil

	default:
		return week.Unresolved(), fmt.Errorf("unknown auto score kind %q", cfg.Kind)
	}
}

// playerStatValue finds the named stat for a player across box-score
// categories. A missing stat counts as zero, matching the scoring rules.
func playerStatValue(box ExternalBoxScore, playerID, statName string) float64 {
	total := 0.0
	for _, line := range box.Lines {
		if line.PlayerID != playerID {
			continue
		}
		if _, ok := line.Stats[statName]; !ok {
			continue
		}
		total += scoring.StatValue(line.Stats, statName)
	}
	return total
}

func overUnder(value, threshold float64) string {
	if value > threshold {
		return "Over"
	}
	return "Under"
}

// matchOption prefers the question option naming the winner so the stored
// answer compares cleanly against user picks.
func matchOption(options []string, winnerName string) string {
	for _, opt := range options {
		if strings.EqualFold(opt, winnerName) {
			return opt
		}
	}
	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt), strings.ToLower(winnerName)) {
			return opt
		}
	}
	return winnerName
}

func tieOption(options []string) string {
	for _, opt := range options {
		lower := strings.ToLower(opt)
		if strings.Contains(lower, "tie") || strings.Contains(lower, "draw") {
			return opt
		}
	}
	return "Tie"
}
