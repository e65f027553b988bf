package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/pickem-league/pickem-api/internal/domain/week"
	"github.com/pickem-league/pickem-api/internal/usecase"
)

func (h *Handler) CreateWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateWeek")
	defer span.End()

	var req createWeekRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	questions := make([]week.Question, 0, len(req.Questions))
	for _, q := range req.Questions {
		item := week.Question{
			Text:    q.Text,
			Type:    week.QuestionType(q.Type),
			Options: append([]string(nil), q.Options...),
		}
		if q.AutoScore != nil {
			item.AutoScore = &week.AutoScoreConfig{
				Kind:      week.AutoScoreKind(q.AutoScore.Kind),
				GameID:    q.AutoScore.GameID,
				TeamID:    q.AutoScore.TeamID,
				PlayerID:  q.AutoScore.PlayerID,
				StatName:  q.AutoScore.StatName,
				Threshold: q.AutoScore.Threshold,
			}
		}
		questions = append(questions, item)
	}

	created, err := h.weekService.CreateWeek(ctx, questions)
	if err != nil {
		h.logger.WarnContext(ctx, "create week failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, weekToDTO(ctx, created))
}

func (h *Handler) SetLineupEdits(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetLineupEdits")
	defer span.End()

	weekNumber, err := weekNumberFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setAllowedRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	wk, err := h.weekService.SetLineupEdits(ctx, weekNumber, *req.Allowed)
	if err != nil {
		h.logger.WarnContext(ctx, "set lineup edits failed", "week", weekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(ctx, wk))
}

func (h *Handler) SetQuestionLock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetQuestionLock")
	defer span.End()

	weekNumber, err := weekNumberFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rawIndex := strings.TrimSpace(r.PathValue("questionIndex"))
	index, err := strconv.Atoi(rawIndex)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid question index %q", usecase.ErrInvalidInput, rawIndex))
		return
	}

	var req setAllowedRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	wk, err := h.responseService.SetQuestionLock(ctx, weekNumber, index, *req.Allowed)
	if err != nil {
		h.logger.WarnContext(ctx, "set question lock failed", "week", weekNumber, "index", index, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(ctx, wk))
}

func (h *Handler) SetCorrectAnswers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetCorrectAnswers")
	defer span.End()

	weekNumber, err := weekNumberFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setAnswersRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	answers := make([]week.Answer, 0, len(req.Answers))
	for _, values := range req.Answers {
		answers = append(answers, week.Set(values...))
	}

	wk, err := h.weekService.SetCorrectAnswers(ctx, weekNumber, answers)
	if err != nil {
		h.logger.WarnContext(ctx, "set correct answers failed", "week", weekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(ctx, wk))
}

func (h *Handler) ScorePicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScorePicks")
	defer span.End()

	weekNumber, err := weekNumberFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.answerService.MergeAndScore(ctx, weekNumber)
	if err != nil {
		h.logger.ErrorContext(ctx, "merge and score failed", "week", weekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	scores := make([]userScoreDTO, 0, len(summary.UserScores))
	for _, score := range summary.UserScores {
		scores = append(scores, userScoreDTO{
			UserID:       score.UserID,
			CorrectPicks: score.CorrectPicks,
			Score:        score.Score,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, scoreSummaryDTO{
		WeekNumber:      summary.WeekNumber,
		ResolvedAnswers: summary.ResolvedAnswers,
		UserScores:      scores,
		Failures:        append([]string(nil), summary.Failures...),
	})
}

func (h *Handler) ScoreLineups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScoreLineups")
	defer span.End()

	weekNumber, err := weekNumberFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.scoringService.ScoreAllLineups(ctx, weekNumber)
	if err != nil {
		h.logger.ErrorContext(ctx, "score lineups failed", "week", weekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	results := make([]lineupScoreResultDTO, 0, len(report.Results))
	for _, row := range report.Results {
		results = append(results, lineupScoreResultDTO{
			UserID:      row.UserID,
			TotalPoints: row.TotalPoints,
			Error:       row.Error,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, weekScoreReportDTO{
		WeekNumber:   report.WeekNumber,
		LineupCount:  report.LineupCount,
		WorkerCount:  report.WorkerCount,
		Results:      results,
		SkippedGames: append([]string(nil), report.SkippedGames...),
	})
}

type createWeekRequest struct {
	Questions []questionPayload `json:"questions" validate:"required,min=1,dive"`
}

type questionPayload struct {
	Text      string            `json:"text" validate:"required"`
	Type      string            `json:"type" validate:"required,oneof=text number single_select multi_select"`
	Options   []string          `json:"options"`
	AutoScore *autoScorePayload `json:"autoScore"`
}

type autoScorePayload struct {
	Kind      string  `json:"kind" validate:"required,oneof=game_winner team_wins score_over_under player_stat_over_under"`
	GameID    string  `json:"gameId"`
	TeamID    string  `json:"teamId"`
	PlayerID  string  `json:"playerId"`
	StatName  string  `json:"statName"`
	Threshold float64 `json:"threshold"`
}

type setAllowedRequest struct {
	Allowed *bool `json:"allowed" validate:"required"`
}

type setAnswersRequest struct {
	Answers [][]string `json:"answers" validate:"required"`
}

type userScoreDTO struct {
	UserID       string `json:"userId"`
	CorrectPicks int    `json:"correctPicks"`
	Score        int    `json:"score"`
}

type scoreSummaryDTO struct {
	WeekNumber      int            `json:"weekNumber"`
	ResolvedAnswers int            `json:"resolvedAnswers"`
	UserScores      []userScoreDTO `json:"userScores"`
	Failures        []string       `json:"failures,omitempty"`
}

type lineupScoreResultDTO struct {
	UserID      string  `json:"userId"`
	TotalPoints float64 `json:"totalPoints"`
	Error       string  `json:"error,omitempty"`
}

type weekScoreReportDTO struct {
	WeekNumber   int                    `json:"weekNumber"`
	LineupCount  int                    `json:"lineupCount"`
	WorkerCount  int                    `json:"workerCount"`
	Results      []lineupScoreResultDTO `json:"results"`
	SkippedGames []string               `json:"skippedGames,omitempty"`
}
