package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pickem-league/pickem-api/internal/usecase"
)

type Handler struct {
	weekService     *usecase.WeekService
	responseService *usecase.ResponseService
	answerService   *usecase.AnswerService
	lineupService   *usecase.LineupService
	scoringService  *usecase.ScoringService
	nflService      *usecase.NFLService
	logger          *slog.Logger
	validator       *validator.Validate
}

func NewHandler(
	weekService *usecase.WeekService,
	responseService *usecase.ResponseService,
	answerService *usecase.AnswerService,
	lineupService *usecase.LineupService,
	scoringService *usecase.ScoringService,
	nflService *usecase.NFLService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		weekService:     weekService,
		responseService: responseService,
		answerService:   answerService,
		lineupService:   lineupService,
		scoringService:  scoringService,
		nflService:      nflService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// weekNumberFromPath parses the {weekNumber} path segment.
func weekNumberFromPath(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("weekNumber"))
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		return 0, fmt.Errorf("%w: invalid week number %q", usecase.ErrInvalidInput, raw)
	}
	return number, nil
}
