package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/pickem-league/pickem-api/internal/domain/lineup"
	"github.com/pickem-league/pickem-api/internal/usecase"
)

func (h *Handler) ListAvailablePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAvailablePlayers")
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

	pools, err := h.lineupService.AvailablePlayers(ctx, principal.UserID, weekNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "list available players failed", "user_id", principal.UserID, "week", weekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pools)
}

func (h *Handler) GetMyLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyLineup")
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

	item, exists, err := h.lineupService.GetByUserAndWeek(ctx, principal.UserID, weekNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "get lineup failed", "user_id", principal.UserID, "week", weekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, item))
}

func (h *Handler) SubmitMyLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitMyLineup")
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

	var req submitLineupRequest
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

	players := make(map[lineup.Slot]string, len(req.Players))
	for slot, name := range req.Players {
		players[lineup.Slot(slot)] = name
	}

	item, err := h.lineupService.Submit(ctx, usecase.SubmitLineupInput{
		UserID:     principal.UserID,
		WeekNumber: weekNumber,
		Players:    players,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit lineup failed", "user_id", principal.UserID, "week", weekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, item))
}

func (h *Handler) GetWeekLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekLeaderboard")
	defer span.End()

	weekNumber, err := weekNumberFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.lineupService.Leaderboard(ctx, weekNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "week", weekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, leaderboardEntryDTO{
			Rank:        entry.Rank,
			UserID:      entry.UserID,
			TotalPoints: entry.TotalPoints,
			SubmittedAt: entry.SubmittedAt.UTC().Format(time.RFC3339),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMyLineupHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyLineupHistory")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	entries, err := h.lineupService.PlayerHistory(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get lineup history failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]lineupHistoryEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, lineupHistoryEntryDTO{
			WeekNumber:  entry.WeekNumber,
			Players:     slotMapToDTO(entry.Players),
			TotalPoints: entry.TotalPoints,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type submitLineupRequest struct {
	Players map[string]string `json:"players" validate:"required,min=1"`
}

type lineupDTO struct {
	UserID      string            `json:"userId"`
	WeekNumber  int               `json:"weekNumber"`
	Players     map[string]string `json:"players"`
	TotalPoints float64           `json:"totalPoints"`
	SubmittedAt string            `json:"submittedAt"`
}

type leaderboardEntryDTO struct {
	Rank        int     `json:"rank"`
	UserID      string  `json:"userId"`
	TotalPoints float64 `json:"totalPoints"`
	SubmittedAt string  `json:"submittedAt"`
}

type lineupHistoryEntryDTO struct {
	WeekNumber  int               `json:"weekNumber"`
	Players     map[string]string `json:"players"`
	TotalPoints float64           `json:"totalPoints"`
}

func lineupToDTO(ctx context.Context, item lineup.Lineup) lineupDTO {
	ctx, span := startSpan(ctx, "httpapi.lineupToDTO")
	defer span.End()

	return lineupDTO{
		UserID:      item.UserID,
		WeekNumber:  item.WeekNumber,
		Players:     slotMapToDTO(item.Players),
		TotalPoints: item.TotalPoints,
		SubmittedAt: item.SubmittedAt.UTC().Format(time.RFC3339),
	}
}

func slotMapToDTO(players map[lineup.Slot]string) map[string]string {
	out := make(map[string]string, len(players))
	for slot, name := range players {
		out[string(slot)] = name
	}
	return out
}
