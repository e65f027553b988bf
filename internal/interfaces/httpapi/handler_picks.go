package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/pickem-league/pickem-api/internal/domain/week"
	"github.com/pickem-league/pickem-api/internal/usecase"
)

func (h *Handler) GetCurrentWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentWeek")
	defer span.End()

	wk, err := h.weekService.CurrentWeek(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get current week failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(ctx, wk))
}

func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeek")
	defer span.End()

	weekNumber, err := weekNumberFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	wk, err := h.weekService.GetWeek(ctx, weekNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "get week failed", "week", weekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(ctx, wk))
}

func (h *Handler) FindMyResponse(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FindMyResponse")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	weekNumber, err := weekNumberFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	resp, err := h.responseService.FindOrCreateResponse(ctx, weekNumber, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "find response failed", "user_id", principal.UserID, "week", weekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, responseToDTO(ctx, resp))
}

func (h *Handler) SubmitMyResponse(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitMyResponse")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	weekNumber, err := weekNumberFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitResponseRequest
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

	resp, err := h.responseService.SubmitResponse(ctx, weekNumber, principal.UserID, req.Answers)
	if err != nil {
		h.logger.WarnContext(ctx, "submit response failed", "user_id", principal.UserID, "week", weekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, responseToDTO(ctx, resp))
}

func (h *Handler) ListWeekResponses(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeekResponses")
	defer span.End()

	weekNumber, err := weekNumberFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	responses, err := h.responseService.ListResponses(ctx, weekNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "list responses failed", "week", weekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]responseDTO, 0, len(responses))
	for _, resp := range responses {
		items = append(items, responseToDTO(ctx, resp))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	standings, err := h.answerService.Standings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingDTO, 0, len(standings))
	for _, s := range standings {
		items = append(items, standingDTO{
			UserID:   s.UserID,
			Username: s.Username,
			Scores:   append([]int(nil), s.Scores...),
			Total:    s.Total,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type submitResponseRequest struct {
	Answers []string `json:"answers" validate:"required"`
}

type autoScoreDTO struct {
	Kind      string  `json:"kind"`
	GameID    string  `json:"gameId,omitempty"`
	TeamID    string  `json:"teamId,omitempty"`
	PlayerID  string  `json:"playerId,omitempty"`
	StatName  string  `json:"statName,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
}

type questionDTO struct {
	Text      string        `json:"text"`
	Type      string        `json:"type"`
	Options   []string      `json:"options,omitempty"`
	AutoScore *autoScoreDTO `json:"autoScore,omitempty"`
}

type weekDTO struct {
	Number             int           `json:"number"`
	Questions          []questionDTO `json:"questions"`
	CorrectAnswers     [][]string    `json:"correctAnswers"`
	QuestionEditLocks  []bool        `json:"questionEditLocks"`
	LineupEditsAllowed bool          `json:"lineupEditsAllowed"`
	IsCurrent          bool          `json:"isCurrent"`
	UpdatedAt          string        `json:"updatedAt"`
}

type responseDTO struct {
	UserID    string   `json:"userId"`
	Answers   []string `json:"answers"`
	UpdatedAt string   `json:"updatedAt"`
}

type standingDTO struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Scores   []int  `json:"scores"`
	Total    int    `json:"total"`
}

func weekToDTO(ctx context.Context, wk week.Week) weekDTO {
	ctx, span := startSpan(ctx, "httpapi.weekToDTO")
	defer span.End()

	questions := make([]questionDTO, 0, len(wk.Questions))
	for _, q := range wk.Questions {
		item := questionDTO{
			Text:    q.Text,
			Type:    string(q.Type),
			Options: append([]string(nil), q.Options...),
		}
		if q.AutoScore != nil {
			item.AutoScore = &autoScoreDTO{
				Kind:      string(q.AutoScore.Kind),
				GameID:    q.AutoScore.GameID,
				TeamID:    q.AutoScore.TeamID,
				PlayerID:  q.AutoScore.PlayerID,
				StatName:  q.AutoScore.StatName,
				Threshold: q.AutoScore.Threshold,
			}
		}
		questions = append(questions, item)
	}

	answers := make([][]string, 0, len(wk.CorrectAnswers))
	for _, a := range wk.CorrectAnswers {
		answers = append(answers, append([]string(nil), a.Values...))
	}

	return weekDTO{
		Number:             wk.Number,
		Questions:          questions,
		CorrectAnswers:     answers,
		QuestionEditLocks:  append([]bool(nil), wk.QuestionEditLocks...),
		LineupEditsAllowed: wk.LineupEditsAllowed,
		IsCurrent:          wk.IsCurrent,
		UpdatedAt:          wk.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func responseToDTO(ctx context.Context, resp week.Response) responseDTO {
	ctx, span := startSpan(ctx, "httpapi.responseToDTO")
	defer span.End()

	return responseDTO{
		UserID:    resp.UserID,
		Answers:   append([]string(nil), resp.Answers...),
		UpdatedAt: resp.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
