package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pickem-league/pickem-api/internal/domain/week"
)

type WeekService struct {
	weekRepo week.Repository
	now      func() time.Time
}

func NewWeekService(weekRepo week.Repository) *WeekService {
	return &WeekService{
		weekRepo: weekRepo,
		now:      time.Now,
	}
}

// CreateWeek retires the current week and opens the next one with every
// question editable and lineup edits allowed.
func (s *WeekService) CreateWeek(ctx context.Context, questions []week.Question) (week.Week, error) {
	ctx, span := startUsecaseSpan(ctx, "WeekService.CreateWeek")
	defer span.End()

	if len(questions) == 0 {
		return week.Week{}, fmt.Errorf("%w: at least one question is required", ErrInvalidInput)
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			return week.Week{}, fmt.Errorf("%w: question %d text is required", ErrInvalidInput, i)
		}
		switch q.Type {
		case week.QuestionTypeText, week.QuestionTypeNumber, week.QuestionTypeSingleSelect, week.QuestionTypeMultiSelect:
		default:
			return week.Week{}, fmt.Errorf("%w: question %d has unknown type %q", ErrInvalidInput, i, q.Type)
		}
	}

	existing, err := s.weekRepo.List(ctx)
	if err != nil {
		return week.Week{}, fmt.Errorf("list weeks: %w", err)
	}

	nextNumber := 1
	for _, wk := range existing {
		if wk.Number >= nextNumber {
			nextNumber = wk.Number + 1
		}
		if wk.IsCurrent {
			wk.IsCurrent = false
			if err := s.weekRepo.Upsert(ctx, wk); err != nil {
				return week.Week{}, fmt.Errorf("retire week %d: %w", wk.Number, err)
			}
		}
	}

	created := week.Week{
		Number:             nextNumber,
		Questions:          questions,
		CorrectAnswers:     make([]week.Answer, len(questions)),
		QuestionEditLocks:  openLocks(len(questions)),
		LineupEditsAllowed: true,
		IsCurrent:          true,
		UpdatedAt:          s.now().UTC(),
	}

	if err := s.weekRepo.Upsert(ctx, created); err != nil {
		return week.Week{}, fmt.Errorf("save week %d: %w", nextNumber, err)
	}

	return created, nil
}

func (s *WeekService) CurrentWeek(ctx context.Context) (week.Week, error) {
	wk, exists, err := s.weekRepo.GetCurrent(ctx)
	if err != nil {
		return week.Week{}, fmt.Errorf("get current week: %w", err)
	}
	if !exists {
		return week.Week{}, fmt.Errorf("%w: no current week", ErrNotFound)
	}

	wk.Normalize()
	return wk, nil
}

func (s *WeekService) GetWeek(ctx context.Context, weekNumber int) (week.Week, error) {
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

// SetLineupEdits toggles the week-level lineup edit gate.
func (s *WeekService) SetLineupEdits(ctx context.Context, weekNumber int, allowed bool) (week.Week, error) {
	wk, err := s.GetWeek(ctx, weekNumber)
	if err != nil {
		return week.Week{}, err
	}

	wk.LineupEditsAllowed = allowed
	wk.UpdatedAt = s.now().UTC()
	if err := s.weekRepo.Upsert(ctx, wk); err != nil {
		return week.Week{}, fmt.Errorf("save week %d: %w", weekNumber, err)
	}

	return wk, nil
}

// SetCorrectAnswers overwrites the resolved answers manually, realigned to the
// question count.
func (s *WeekService) SetCorrectAnswers(ctx context.Context, weekNumber int, answers []week.Answer) (week.Week, error) {
	wk, err := s.GetWeek(ctx, weekNumber)
	if err != nil {
		return week.Week{}, err
	}

	wk.CorrectAnswers = answers
	wk.Normalize()
	wk.UpdatedAt = s.now().UTC()
	if err := s.weekRepo.Upsert(ctx, wk); err != nil {
		return week.Week{}, fmt.Errorf("save week %d: %w", weekNumber, err)
	}

	return wk, nil
}

func openLocks(n int) []bool {
	locks := make([]bool, n)
	for i := range locks {
		locks[i] = true
	}
	return locks
}
