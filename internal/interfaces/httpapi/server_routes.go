package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerStatsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/games/{date}", handler.ListGamesOnDate)
	mux.HandleFunc("GET /v1/games/{gameID}/matchup", handler.GetMatchup)
	mux.HandleFunc("GET /v1/quarters/{gameID}", handler.ListQuarters)
	mux.HandleFunc("GET /v1/teams/{teamID}/last-games/{limit}", handler.ListLastGames)
	mux.HandleFunc("GET /v1/teams/{teamID}/averages/{limit}", handler.GetTeamAverages)
	mux.HandleFunc("GET /v1/teams/{teamID}/rest-days", handler.GetTeamRestDays)
	mux.HandleFunc("GET /v1/teams/{teamID}/seasons/{season}", handler.GetTeamSeasonRecord)
	mux.HandleFunc("GET /v1/h2h/{team1ID}/{team2ID}/{season}", handler.ListHeadToHead)
	mux.HandleFunc("GET /v1/h2h/{team1ID}/{team2ID}/{season}/averages", handler.GetHeadToHeadAverages)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/cache/prewarm/{date}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.PrewarmDate)))
	mux.Handle("POST /v1/internal/cache/teams/{teamID}/invalidate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.InvalidateTeamCache)))
}
