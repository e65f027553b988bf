package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pickem-league/pickem-api/internal/usecase"
)

func (h *Handler) ListNFLTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListNFLTeams")
	defer span.End()

	teams, err := h.nflService.Teams(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list nfl teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]nflTeamDTO, 0, len(teams))
	for _, team := range teams {
		items = append(items, nflTeamDTO{
			ID:           team.ExternalID,
			Name:         team.Name,
			Abbreviation: team.Abbreviation,
			Location:     team.Location,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetNFLScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNFLScoreboard")
	defer span.End()

	weekNumber, err := weekNumberFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.nflService.Scoreboard(ctx, weekNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "get nfl scoreboard failed", "week", weekNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]nflGameDTO, 0, len(games))
	for _, game := range games {
		items = append(items, nflGameDTO{
			ID:        game.ExternalID,
			Name:      game.Name,
			ShortName: game.ShortName,
			Date:      game.Date.UTC().Format(time.RFC3339),
			Status:    game.Status,
			Completed: game.Completed,
			Home:      gameSideToDTO(game.Home),
			Away:      gameSideToDTO(game.Away),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetNFLGameResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNFLGameResult")
	defer span.End()

	gameID, err := gameIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.nflService.GameResult(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get nfl game result failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nflGameResultDTO{
		GameID:         result.GameID,
		Completed:      result.Completed,
		Status:         result.Status,
		Tie:            result.Tie,
		WinnerTeamID:   result.WinnerTeamID,
		WinnerTeamName: result.WinnerTeamName,
		Home:           gameSideToDTO(result.Home),
		Away:           gameSideToDTO(result.Away),
	})
}

func (h *Handler) GetNFLGameBoxScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNFLGameBoxScore")
	defer span.End()

	gameID, err := gameIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	box, err := h.nflService.GameBoxScore(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get nfl box score failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	lines := make([]nflStatLineDTO, 0, len(box.Lines))
	for _, line := range box.Lines {
		lines = append(lines, nflStatLineDTO{
			PlayerID:   line.PlayerID,
			PlayerName: line.PlayerName,
			TeamID:     line.TeamID,
			Category:   line.Category,
			Stats:      line.Stats,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, nflBoxScoreDTO{
		GameID:    box.GameID,
		Completed: box.Completed,
		Status:    box.Status,
		Lines:     lines,
	})
}

func gameIDFromPath(r *http.Request) (string, error) {
	gameID := strings.TrimSpace(r.PathValue("gameID"))
	if gameID == "" {
		return "", fmt.Errorf("%w: game id is required", usecase.ErrInvalidInput)
	}
	return gameID, nil
}

type nflTeamDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Location     string `json:"location"`
}

type nflGameSideDTO struct {
	TeamID       string `json:"teamId"`
	TeamName     string `json:"teamName"`
	Abbreviation string `json:"abbreviation"`
	Score        int    `json:"score"`
	Winner       bool   `json:"winner"`
}

type nflGameDTO struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	ShortName string         `json:"shortName"`
	Date      string         `json:"date"`
	Status    string         `json:"status"`
	Completed bool           `json:"completed"`
	Home      nflGameSideDTO `json:"home"`
	Away      nflGameSideDTO `json:"away"`
}

type nflGameResultDTO struct {
	GameID         string         `json:"gameId"`
	Completed      bool           `json:"completed"`
	Status         string         `json:"status"`
	Tie            bool           `json:"tie"`
	WinnerTeamID   string         `json:"winnerTeamId,omitempty"`
	WinnerTeamName string         `json:"winnerTeamName,omitempty"`
	Home           nflGameSideDTO `json:"home"`
	Away           nflGameSideDTO `json:"away"`
}

type nflStatLineDTO struct {
	PlayerID   string            `json:"playerId"`
	PlayerName string            `json:"playerName"`
	TeamID     string            `json:"teamId"`
	Category   string            `json:"category"`
	Stats      map[string]string `json:"stats"`
}

type nflBoxScoreDTO struct {
	GameID    string           `json:"gameId"`
	Completed bool             `json:"completed"`
	Status    string           `json:"status"`
	Lines     []nflStatLineDTO `json:"lines"`
}

func gameSideToDTO(side usecase.ExternalGameSide) nflGameSideDTO {
	return nflGameSideDTO{
		TeamID:       side.TeamID,
		TeamName:     side.TeamName,
		Abbreviation: side.Abbreviation,
		Score:        side.Score,
		Winner:       side.Winner,
	}
}
