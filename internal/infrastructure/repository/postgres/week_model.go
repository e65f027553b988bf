package postgres

import (
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/lib/pq"

	"github.com/pickem-league/pickem-api/internal/domain/week"
)

type weekTableModel struct {
	ID                 int64        `db:"id"`
	WeekNumber         int          `db:"week_number"`
	Questions          []byte       `db:"questions"`
	CorrectAnswers     []byte       `db:"correct_answers"`
	Responses          []byte       `db:"responses"`
	QuestionEditLocks  pq.BoolArray `db:"question_edit_locks"`
	LineupEditsAllowed bool         `db:"lineup_edits_allowed"`
	IsCurrent          bool         `db:"is_current"`
	CreatedAt          time.Time    `db:"created_at"`
	UpdatedAt          time.Time    `db:"updated_at"`
}

type weekInsertModel struct {
	WeekNumber         int          `db:"week_number"`
	Questions          []byte       `db:"questions"`
	CorrectAnswers     []byte       `db:"correct_answers"`
	Responses          []byte       `db:"responses"`
	QuestionEditLocks  pq.BoolArray `db:"question_edit_locks"`
	LineupEditsAllowed bool         `db:"lineup_edits_allowed"`
	IsCurrent          bool         `db:"is_current"`
}

func weekFromRow(row weekTableModel) (week.Week, error) {
	item := week.Week{
		Number:             row.WeekNumber,
		QuestionEditLocks:  append([]bool(nil), row.QuestionEditLocks...),
		LineupEditsAllowed: row.LineupEditsAllowed,
		IsCurrent:          row.IsCurrent,
		UpdatedAt:          row.UpdatedAt,
	}

	if len(row.Questions) > 0 {
		if err := sonic.Unmarshal(row.Questions, &item.Questions); err != nil {
			return week.Week{}, fmt.Errorf("decode week %d questions: %w", row.WeekNumber, err)
		}
	}
	if len(row.CorrectAnswers) > 0 {
		if err := sonic.Unmarshal(row.CorrectAnswers, &item.CorrectAnswers); err != nil {
			return week.Week{}, fmt.Errorf("decode week %d answers: %w", row.WeekNumber, err)
		}
	}
	if len(row.Responses) > 0 {
		if err := sonic.Unmarshal(row.Responses, &item.Responses); err != nil {
			return week.Week{}, fmt.Errorf("decode week %d responses: %w", row.WeekNumber, err)
		}
	}

	return item, nil
}

func weekToInsertModel(item week.Week) (weekInsertModel, error) {
	questions, err := sonic.Marshal(item.Questions)
	if err != nil {
		return weekInsertModel{}, fmt.Errorf("encode week %d questions: %w", item.Number, err)
	}
	answers, err := sonic.Marshal(item.CorrectAnswers)
	if err != nil {
		return weekInsertModel{}, fmt.Errorf("encode week %d answers: %w", item.Number, err)
	}
	responses, err := sonic.Marshal(item.Responses)
	if err != nil {
		return weekInsertModel{}, fmt.Errorf("encode week %d responses: %w", item.Number, err)
	}

	return weekInsertModel{
		WeekNumber:         item.Number,
		Questions:          questions,
		CorrectAnswers:     answers,
		Responses:          responses,
		QuestionEditLocks:  pq.BoolArray(item.QuestionEditLocks),
		LineupEditsAllowed: item.LineupEditsAllowed,
		IsCurrent:          item.IsCurrent,
	}, nil
}
