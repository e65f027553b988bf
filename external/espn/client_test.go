package espn

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	stderrors "errors"

	"github.com/pickem-league/pickem-api/internal/platform/logging"
	"github.com/pickem-league/pickem-api/internal/platform/resilience"
	"github.com/pickem-league/pickem-api/internal/usecase"
)

const teamsPayload = `{
	"sports": [{
		"leagues": [{
			"teams": [
				{"team": {"id": "12", "displayName": "Kansas City Chiefs", "abbreviation": "KC", "location": "Kansas City"}},
				{"team": {"id": "21", "displayName": "Philadelphia Eagles", "abbreviation": "PHI", "location": "Philadelphia"}}
			]
		}]
	}]
}`

const scoreboardPayload = `{
	"events": [{
		"id": "401547601",
		"name": "Philadelphia Eagles at Kansas City Chiefs",
		"shortName": "PHI @ KC",
		"date": "2025-09-14T17:00Z",
		"status": {"type": {"name": "STATUS_FINAL", "state": "post", "completed": true}},
		"competitions": [{
			"competitors": [
				{"homeAway": "home", "score": "27", "winner": true, "team": {"id": "12", "displayName": "Kansas City Chiefs", "abbreviation": "KC"}},
				{"homeAway": "away", "score": "20", "winner": false, "team": {"id": "21", "displayName": "Philadelphia Eagles", "abbreviation": "PHI"}}
			]
		}]
	}]
}`

const summaryPayload = `{
	"header": {
		"id": "401547601",
		"competitions": [{
			"status": {"type": {"name": "STATUS_FINAL", "state": "post", "completed": true}},
			"competitors": [
				{"homeAway": "home", "score": "27", "winner": true, "team": {"id": "12", "displayName": "Kansas City Chiefs", "abbreviation": "KC"}},
				{"homeAway": "away", "score": "20", "winner": false, "team": {"id": "21", "displayName": "Philadelphia Eagles", "abbreviation": "PHI"}}
			]
		}]
	},
	"boxscore": {
		"players": [{
			"team": {"id": "12"},
			"statistics": [{
				"name": "passing",
				"labels": ["C/ATT", "YDS", "TD", "INT"],
				"athletes": [{
					"athlete": {"id": "3139477", "displayName": "Patrick Mahomes"},
					"stats": ["24/39", "250", "2", "1"]
				}]
			}, {
				"name": "receiving",
				"labels": ["REC", "YDS", "TD"],
				"athletes": [{
					"athlete": {"id": "4241389", "displayName": "Travis Kelce"},
					"stats": ["7", "89", "1"]
				}]
			}]
		}]
	}
}`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL:    server.URL,
		Timeout:    2 * time.Second,
		MaxRetries: 0,
		Logger:     logging.NewNop(),
	})
}

func TestClient_Teams_MapsFranchises(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(teamsPayload))
	}))

	teams, err := client.Teams(t.Context())
	if err != nil {
		t.Fatalf("teams: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got=%d", len(teams))
	}
	if teams[0].ExternalID != "12" || teams[0].Name != "Kansas City Chiefs" {
		t.Fatalf("unexpected first team: %+v", teams[0])
	}
	if teams[1].Abbreviation != "PHI" || teams[1].Location != "Philadelphia" {
		t.Fatalf("unexpected second team: %+v", teams[1])
	}
}

func TestClient_GamesByWeek_MapsScoreboard(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/scoreboard" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("seasontype") != "2" || query.Get("week") != "2" || query.Get("dates") != "2025" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(scoreboardPayload))
	}))

	games, err := client.GamesByWeek(t.Context(), usecase.SeasonInfo{Year: 2025, Type: 2}, 2)
	if err != nil {
		t.Fatalf("games by week: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got=%d", len(games))
	}

	game := games[0]
	if game.ExternalID != "401547601" {
		t.Fatalf("unexpected game id: %s", game.ExternalID)
	}
	if !game.Completed || game.Status != "STATUS_FINAL" {
		t.Fatalf("unexpected status: completed=%v status=%s", game.Completed, game.Status)
	}
	if game.Home.TeamID != "12" || game.Home.Score != 27 || !game.Home.Winner {
		t.Fatalf("unexpected home side: %+v", game.Home)
	}
	if game.Away.TeamID != "21" || game.Away.Score != 20 || game.Away.Winner {
		t.Fatalf("unexpected away side: %+v", game.Away)
	}
	want := time.Date(2025, 9, 14, 17, 0, 0, 0, time.UTC)
	if !game.Date.Equal(want) {
		t.Fatalf("unexpected game date: %s", game.Date)
	}
}

func TestClient_GamesByWeek_RejectsBadWeek(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}))

	if _, err := client.GamesByWeek(t.Context(), usecase.SeasonInfo{Year: 2025, Type: 2}, 0); err == nil {
		t.Fatalf("expected error for week 0")
	}
}

func TestClient_GameResult_MapsWinner(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("event") != "401547601" {
			t.Errorf("unexpected event query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(summaryPayload))
	}))

	result, err := client.GameResult(t.Context(), "401547601")
	if err != nil {
		t.Fatalf("game result: %v", err)
	}
	if !result.Completed {
		t.Fatalf("expected completed result")
	}
	if result.Tie {
		t.Fatalf("expected no tie")
	}
	if result.WinnerTeamID != "12" || result.WinnerTeamName != "Kansas City Chiefs" {
		t.Fatalf("unexpected winner: id=%s name=%s", result.WinnerTeamID, result.WinnerTeamName)
	}
	if result.Home.Score != 27 || result.Away.Score != 20 {
		t.Fatalf("unexpected scores: home=%d away=%d", result.Home.Score, result.Away.Score)
	}
}

func TestClient_GameResult_TieWhenNoWinnerFlag(t *testing.T) {
	t.Parallel()

	payload := `{
		"header": {
			"id": "401547700",
			"competitions": [{
				"status": {"type": {"name": "STATUS_FINAL", "state": "post", "completed": true}},
				"competitors": [
					{"homeAway": "home", "score": "24", "winner": false, "team": {"id": "12", "displayName": "Kansas City Chiefs"}},
					{"homeAway": "away", "score": "24", "winner": false, "team": {"id": "21", "displayName": "Philadelphia Eagles"}}
				]
			}]
		}
	}`
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))

	result, err := client.GameResult(t.Context(), "401547700")
	if err != nil {
		t.Fatalf("game result: %v", err)
	}
	if !result.Tie {
		t.Fatalf("expected tie for completed game without a winner flag")
	}
	if result.WinnerTeamID != "" {
		t.Fatalf("unexpected winner on tie: %s", result.WinnerTeamID)
	}
}

func TestClient_GameBoxScore_AlignsLabelsAndStats(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(summaryPayload))
	}))

	box, err := client.GameBoxScore(t.Context(), "401547601")
	if err != nil {
		t.Fatalf("game box score: %v", err)
	}
	if !box.Completed {
		t.Fatalf("expected completed box score")
	}
	if len(box.Lines) != 2 {
		t.Fatalf("expected 2 stat lines, got=%d", len(box.Lines))
	}

	passing := box.Lines[0]
	if passing.PlayerID != "3139477" || passing.Category != "passing" {
		t.Fatalf("unexpected passing line: %+v", passing)
	}
	if passing.Stats["YDS"] != "250" || passing.Stats["TD"] != "2" || passing.Stats["INT"] != "1" {
		t.Fatalf("unexpected passing stats: %+v", passing.Stats)
	}

	receiving := box.Lines[1]
	if receiving.PlayerName != "Travis Kelce" || receiving.Stats["REC"] != "7" {
		t.Fatalf("unexpected receiving line: %+v", receiving)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(teamsPayload))
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Timeout:    5 * time.Second,
		MaxRetries: 1,
		Logger:     logging.NewNop(),
	})

	teams, err := client.Teams(t.Context())
	if err != nil {
		t.Fatalf("teams after retry: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got=%d", len(teams))
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got=%d", calls.Load())
	}
}

func TestClient_DoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Timeout:    5 * time.Second,
		MaxRetries: 2,
		Logger:     logging.NewNop(),
	})

	if _, err := client.Teams(t.Context()); err == nil {
		t.Fatalf("expected error for 400 response")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got=%d", calls.Load())
	}
}

func TestClient_CircuitOpenMapsToDependencyUnavailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Timeout:    5 * time.Second,
		MaxRetries: 0,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.Teams(t.Context()); err == nil {
		t.Fatalf("expected first request to fail")
	}

	_, err := client.Teams(t.Context())
	if err == nil {
		t.Fatalf("expected circuit-open error")
	}
	if !stderrors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got: %v", err)
	}
}
