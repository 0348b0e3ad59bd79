package httpapi

import (
	"net/http"

	"github.com/riskibarqy/novastream/internal/platform/metrics"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, registry *metrics.Registry) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if registry != nil {
		mux.Handle("GET /metrics", registry.Handler())
	}
}

func registerContentRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/sports/{sport}/live", handler.ListLiveMatches)
	mux.HandleFunc("GET /v1/sports/{sport}/upcoming", handler.ListUpcomingMatches)
	mux.HandleFunc("GET /v1/sports/{sport}/slides", handler.ListSlides)
	mux.HandleFunc("GET /v1/sports/{sport}/highlights", handler.ListHighlights)
	mux.HandleFunc("GET /v1/sports/{sport}/feed", handler.GetSportFeed)
	mux.HandleFunc("GET /v1/feeds", handler.ListFeeds)
	mux.HandleFunc("GET /v1/tournaments/popular", handler.ListPopularTournaments)

	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatchDetails)
	mux.HandleFunc("GET /v1/matches/{matchID}/watch", handler.GetWatchPage)
	mux.HandleFunc("GET /v1/matches/{matchID}/squads", handler.ListMatchSquads)
	mux.HandleFunc("GET /v1/matches/{matchID}/commentary", handler.ListMatchCommentary)
	mux.HandleFunc("POST /v1/matches/{matchID}/summary", handler.SummarizeMatch)
	mux.HandleFunc("GET /v1/series/{seriesID}/points", handler.ListSeriesPoints)
	// First-party registry records are passed through untouched.
	mux.HandleFunc("GET /v1/registry/matches/{matchID}", handler.GetRegistryMatch)
}

func registerAccountRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/account", handler.GetAccount)
	mux.HandleFunc("PUT /v1/account", handler.SaveAccount)
	mux.HandleFunc("GET /v1/account/active-profile", handler.GetActiveProfile)
	mux.HandleFunc("PUT /v1/account/active-profile", handler.SetActiveProfile)
	mux.HandleFunc("POST /v1/account/profiles", handler.AddProfile)
	mux.HandleFunc("PATCH /v1/account/profiles/{profileID}", handler.UpdateProfile)
	mux.HandleFunc("DELETE /v1/account/profiles/{profileID}", handler.RemoveProfile)
	mux.HandleFunc("PUT /v1/account/profiles/{profileID}/notifications", handler.UpdateNotificationSettings)
	mux.HandleFunc("POST /v1/account/activity", handler.AddWatchedActivity)
	mux.HandleFunc("DELETE /v1/account/activity/{activityID}", handler.RemoveWatchedActivity)
	mux.HandleFunc("PUT /v1/account/plan", handler.ChangePlan)
	mux.HandleFunc("GET /v1/plans", handler.ListPlans)
}
