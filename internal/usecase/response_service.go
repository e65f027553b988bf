package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pickem-league/pickem-api/internal/domain/week"
)

// ResponseService owns user pick responses and the per-question edit locks
// that gate them.
type ResponseService struct {
	weekRepo week.Repository
	now      func() time.Time
}

func NewResponseService(weekRepo week.Repository) *ResponseService {
	return &ResponseService{
		weekRepo: weekRepo,
		now:      time.Now,
	}
}

// ApplyLocks merges incoming answers into existing ones, taking incoming[i]
// only where locks[i] allows edits. All slices are index-aligned to the
// question count.
func ApplyLocks(existing, incoming []string, locks []bool) []string {
	merged := make([]string, len(existing))
	copy(merged, existing)
	for i := range merged {
		if i >= len(locks) || !locks[i] {
			continue
		}
		if i < len(incoming) {
			merged[i] = incoming[i]
		}
	}
	return merged
}

// FindOrCreateResponse returns the user's response for the week, creating an
// empty padded one on first interaction.
func (s *ResponseService) FindOrCreateResponse(ctx context.Context, weekNumber int, userID string) (week.Response, error) {
	ctx, span := startUsecaseSpan(ctx, "ResponseService.FindOrCreateResponse")
	defer span.End()

	wk, userID, err := s.loadWeekForUser(ctx, weekNumber, userID)
	if err != nil {
		return week.Response{}, err
	}

	if resp, ok := wk.ResponseFor(userID); ok {
		return resp, nil
	}

	resp := week.Response{
		UserID:    userID,
		Answers:   make([]string, len(wk.Questions)),
		UpdatedAt: s.now().UTC(),
	}
	wk.SetResponse(resp)
	if err := s.weekRepo.Upsert(ctx, wk); err != nil {
		return week.Response{}, fmt.Errorf("save week %d: %w", weekNumber, err)
	}

	return resp, nil
}

// SubmitResponse applies a lock-gated edit to the user's response. Locked
// question indexes keep their previously stored answers untouched.
func (s *ResponseService) SubmitResponse(ctx context.Context, weekNumber int, userID string, incoming []string) (week.Response, error) {
	ctx, span := startUsecaseSpan(ctx, "ResponseService.SubmitResponse")
	defer span.End()

	wk, userID, err := s.loadWeekForUser(ctx, weekNumber, userID)
	if err != nil {
		return week.Response{}, err
	}

	existing, ok := wk.ResponseFor(userID)
	if !ok {
		existing = week.Response{
			UserID:  userID,
			Answers: make([]string, len(wk.Questions)),
		}
	}

	existing.Answers = ApplyLocks(existing.Answers, incoming, wk.QuestionEditLocks)
	existing.UpdatedAt = s.now().UTC()
	wk.SetResponse(existing)

	if err := s.weekRepo.Upsert(ctx, wk); err != nil {
		return week.Response{}, fmt.Errorf("save week %d: %w", weekNumber, err)
	}

	return existing, nil
}

// ListResponses returns every stored response for the week.
func (s *ResponseService) ListResponses(ctx context.Context, weekNumber int) ([]week.Response, error) {
	wk, err := s.loadWeek(ctx, weekNumber)
	if err != nil {
		return nil, err
	}

	out := make([]week.Response, len(wk.Responses))
	copy(out, wk.Responses)
	return out, nil
}

// SetQuestionLock toggles whether one question accepts response edits.
func (s *ResponseService) SetQuestionLock(ctx context.Context, weekNumber, index int, allowed bool) (week.Week, error) {
	ctx, span := startUsecaseSpan(ctx, "ResponseService.SetQuestionLock")
	defer span.End()

	wk, err := s.loadWeek(ctx, weekNumber)
	if err != nil {
		return week.Week{}, err
	}

	if index < 0 || index >= len(wk.Questions) {
		return week.Week{}, fmt.Errorf("%w: question index %d out of range [0,%d)", ErrInvalidInput, index, len(wk.Questions))
	}

	wk.QuestionEditLocks[index] = allowed
	wk.UpdatedAt = s.now().UTC()
	if err := s.weekRepo.Upsert(ctx, wk); err != nil {
		return week.Week{}, fmt.Errorf("save week %d: %w", weekNumber, err)
	}

	return wk, nil
}

func (s *ResponseService) loadWeek(ctx context.Context, weekNumber int) (week.Week, error) {
	if weekNumber < 1 {
		return week.Week{}, fmt.Errorf("%w: week number must be >= 1", ErrInvalidInput)
	}

	wk, exists, err := s.weekRepo.GetByNumber(ctx, weekNumber)
	if err != nil {
		return week.Week{}, fmt.Errorf("get week %d: %w", weekNumber, err)
	}
	if !exists {
		return week.Week{}, fmt.Errorf("%w: week=%d", ErrNotFound, weekNumber)
	}

	wk.Normalize()
	return wk, nil
}

func (s *ResponseService) loadWeekForUser(ctx context.Context, weekNumber int, userID string) (week.Week, string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return week.Week{}, "", fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	wk, err := s.loadWeek(ctx, weekNumber)
	if err != nil {
		return week.Week{}, "", err
	}

	return wk, userID, nil
}
