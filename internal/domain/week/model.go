package week

import "time"

// QuestionType describes how a question is rendered and answered.
type QuestionType string

const (
	QuestionTypeText         QuestionType = "text"
	QuestionTypeNumber       QuestionType = "number"
	QuestionTypeSingleSelect QuestionType = "single_select"
	QuestionTypeMultiSelect  QuestionType = "multi_select"
)

// AutoScoreKind selects which provider lookup resolves a question automatically.
type AutoScoreKind string

const (
	AutoScoreGameWinner          AutoScoreKind = "game_winner"
	AutoScoreTeamWins            AutoScoreKind = "team_wins"
	AutoScoreScoreOverUnder      AutoScoreKind = "score_over_under"
	AutoScorePlayerStatOverUnder AutoScoreKind = "player_stat_over_under"
)

// AutoScoreConfig ties a question to an external game outcome. Absent config
// means the question is resolved manually by an admin.
type AutoScoreConfig struct {
	Kind      AutoScoreKind `json:"kind"`
	GameID    string        `json:"gameId,omitempty"`
	TeamID    string        `json:"teamId,omitempty"`
	PlayerID  string        `json:"playerId,omitempty"`
	StatName  string        `json:"statName,omitempty"`
	Threshold float64       `json:"threshold,omitempty"`
}

type Question struct {
	Text      string           `json:"text"`
	Type      QuestionType     `json:"type"`
	Options   []string         `json:"options,omitempty"`
	AutoScore *AutoScoreConfig `json:"autoScore,omitempty"`
}

// Answer is the accepted answer set for one question. A single-valued set
// compares by equality, a multi-valued set by membership. Empty means the
// question is still unresolved and scores nothing.
type Answer struct {
	Values []string `json:"values"`
}

func Unresolved() Answer {
	return Answer{}
}

func Scalar(value string) Answer {
	return Answer{Values: []string{value}}
}

func Set(values ...string) Answer {
	return Answer{Values: append([]string(nil), values...)}
}

func (a Answer) Resolved() bool {
	return len(a.Values) > 0
}

func (a Answer) Matches(response string) bool {
	if response == "" {
		return false
	}
	for _, v := range a.Values {
		if v == response {
			return true
		}
	}
	return false
}

// Response holds one user's picks for a week, index-aligned to Questions.
type Response struct {
	UserID    string    `json:"userId"`
	Answers   []string  `json:"answers"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Week is the aggregate for one contest week: the questions, the resolved
// answers, every user response, and the per-question edit locks.
type Week struct {
	Number             int
	Questions          []Question
	CorrectAnswers     []Answer
	Responses          []Response
	QuestionEditLocks  []bool
	LineupEditsAllowed bool
	IsCurrent          bool
	UpdatedAt          time.Time
}

// Clone deep-copies the aggregate so callers can mutate freely.
func (w Week) Clone() Week {
	copied := w
	copied.Questions = make([]Question, len(w.Questions))
	for i, q := range w.Questions {
		copied.Questions[i] = q
		copied.Questions[i].Options = append([]string(nil), q.Options...)
		if q.AutoScore != nil {
			cfg := *q.AutoScore
			copied.Questions[i].AutoScore = &cfg
		}
	}
	copied.CorrectAnswers = make([]Answer, len(w.CorrectAnswers))
	for i, a := range w.CorrectAnswers {
		copied.CorrectAnswers[i] = Answer{Values: append([]string(nil), a.Values...)}
	}
	copied.Responses = make([]Response, len(w.Responses))
	for i, r := range w.Responses {
		copied.Responses[i] = r
		copied.Responses[i].Answers = append([]string(nil), r.Answers...)
	}
	copied.QuestionEditLocks = append([]bool(nil), w.QuestionEditLocks...)
	return copied
}

// Normalize realigns every parallel vector to the question count. Stored weeks
// can drift after question edits; repair silently instead of failing reads.
func (w *Week) Normalize() {
	n := len(w.Questions)

	w.CorrectAnswers = resizeAnswers(w.CorrectAnswers, n)
	w.QuestionEditLocks = resizeLocks(w.QuestionEditLocks, n)
	for i := range w.Responses {
		w.Responses[i].Answers = resizeStrings(w.Responses[i].Answers, n)
	}
}

// ResponseFor returns the stored response for userID, if any.
func (w *Week) ResponseFor(userID string) (Response, bool) {
	for _, r := range w.Responses {
		if r.UserID == userID {
			return r, true
		}
	}
	return Response{}, false
}

// SetResponse inserts or replaces the response for resp.UserID.
func (w *Week) SetResponse(resp Response) {
	for i, r := range w.Responses {
		if r.UserID == resp.UserID {
			w.Responses[i] = resp
			return
		}
	}
	w.Responses = append(w.Responses, resp)
}

func resizeAnswers(in []Answer, n int) []Answer {
	if len(in) == n {
		return in
	}
	out := make([]Answer, n)
	copy(out, in)
	return out
}

func resizeLocks(in []bool, n int) []bool {
	if len(in) == n {
		return in
	}
	out := make([]bool, n)
	if len(in) >= n {
		copy(out, in[:n])
		return out
	}
	copy(out, in)
	// New questions start editable.
	for i := len(in); i < n; i++ {
		out[i] = true
	}
	return out
}

func resizeStrings(in []string, n int) []string {
	if len(in) == n {
		return in
	}
	out := make([]string, n)
	copy(out, in)
	return out
}
