package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/weeks/current", handler.GetCurrentWeek)
	mux.HandleFunc("GET /v1/weeks/{weekNumber}", handler.GetWeek)
	mux.HandleFunc("GET /v1/weeks/{weekNumber}/leaderboard", handler.GetWeekLeaderboard)
	mux.HandleFunc("GET /v1/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/nfl/teams", handler.ListNFLTeams)
	mux.HandleFunc("GET /v1/nfl/scoreboard/{weekNumber}", handler.GetNFLScoreboard)
	mux.HandleFunc("GET /v1/nfl/games/{gameID}/result", handler.GetNFLGameResult)
	mux.HandleFunc("GET /v1/nfl/games/{gameID}/boxscore", handler.GetNFLGameBoxScore)
}

func registerUserRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/weeks/{weekNumber}/response", RequireUser(http.HandlerFunc(handler.FindMyResponse)))
	mux.Handle("PUT /v1/weeks/{weekNumber}/response", RequireUser(http.HandlerFunc(handler.SubmitMyResponse)))
	mux.Handle("GET /v1/weeks/{weekNumber}/players", RequireUser(http.HandlerFunc(handler.ListAvailablePlayers)))
	mux.Handle("GET /v1/weeks/{weekNumber}/lineup", RequireUser(http.HandlerFunc(handler.GetMyLineup)))
	mux.Handle("PUT /v1/weeks/{weekNumber}/lineup", RequireUser(http.HandlerFunc(handler.SubmitMyLineup)))
	mux.Handle("GET /v1/me/lineups", RequireUser(http.HandlerFunc(handler.GetMyLineupHistory)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/admin/weeks", RequireAdmin(http.HandlerFunc(handler.CreateWeek)))
	mux.Handle("GET /v1/admin/weeks/{weekNumber}/responses", RequireAdmin(http.HandlerFunc(handler.ListWeekResponses)))
	mux.Handle("PATCH /v1/admin/weeks/{weekNumber}/lineup-edits", RequireAdmin(http.HandlerFunc(handler.SetLineupEdits)))
	mux.Handle("PATCH /v1/admin/weeks/{weekNumber}/questions/{questionIndex}/lock", RequireAdmin(http.HandlerFunc(handler.SetQuestionLock)))
	mux.Handle("PUT /v1/admin/weeks/{weekNumber}/answers", RequireAdmin(http.HandlerFunc(handler.SetCorrectAnswers)))
	mux.Handle("POST /v1/admin/weeks/{weekNumber}/score-picks", RequireAdmin(http.HandlerFunc(handler.ScorePicks)))
	mux.Handle("POST /v1/admin/weeks/{weekNumber}/score-lineups", RequireAdmin(http.HandlerFunc(handler.ScoreLineups)))
}
