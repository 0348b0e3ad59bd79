package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/novastream/internal/domain/content"
	"github.com/riskibarqy/novastream/internal/usecase"
)

type sportFeedDTO struct {
	Sport       string                             `json:"sport"`
	Live        listPayload[content.LiveMatch]     `json:"live"`
	Upcoming    listPayload[content.UpcomingMatch] `json:"upcoming"`
	Slides      listPayload[content.Slide]         `json:"slides"`
	Highlights  listPayload[content.Highlight]     `json:"highlights"`
	Tournaments listPayload[content.Tournament]    `json:"tournaments"`
}

type watchPageDTO struct {
	Detail     content.MatchDetail                 `json:"detail"`
	Squads     listPayload[content.SquadTeam]      `json:"squads"`
	Points     listPayload[content.SeriesPoint]    `json:"points"`
	Commentary listPayload[content.CommentaryLine] `json:"commentary"`
}

func sportFeedToDTO(feed usecase.SportFeed) sportFeedDTO {
	return sportFeedDTO{
		Sport:       feed.Sport,
		Live:        toListPayload(feed.Live),
		Upcoming:    toListPayload(feed.Upcoming),
		Slides:      toListPayload(feed.Slides),
		Highlights:  toListPayload(feed.Highlights),
		Tournaments: toListPayload(feed.Tournaments),
	}
}

func leagueParam(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("league"))
}

func (h *Handler) ListLiveMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLiveMatches")
	defer span.End()

	res := h.contentService.FetchLiveMatches(ctx, r.PathValue("sport"), leagueParam(r))
	writeSuccess(ctx, w, http.StatusOK, toListPayload(res))
}

func (h *Handler) ListUpcomingMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUpcomingMatches")
	defer span.End()

	res := h.contentService.FetchUpcomingMatches(ctx, r.PathValue("sport"), leagueParam(r))
	writeSuccess(ctx, w, http.StatusOK, toListPayload(res))
}

func (h *Handler) ListSlides(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSlides")
	defer span.End()

	res := h.contentService.FetchSlides(ctx, r.PathValue("sport"), leagueParam(r))
	writeSuccess(ctx, w, http.StatusOK, toListPayload(res))
}

func (h *Handler) ListHighlights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListHighlights")
	defer span.End()

	res := h.contentService.FetchHighlights(ctx, r.PathValue("sport"), leagueParam(r))
	writeSuccess(ctx, w, http.StatusOK, toListPayload(res))
}

func (h *Handler) GetSportFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSportFeed")
	defer span.End()

	feed := h.contentService.FetchSportFeed(ctx, r.PathValue("sport"), leagueParam(r))
	writeSuccess(ctx, w, http.StatusOK, sportFeedToDTO(feed))
}

func (h *Handler) ListFeeds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFeeds")
	defer span.End()

	feeds, err := h.contentService.FetchFeeds(ctx, splitCSV(r.URL.Query().Get("sports")), leagueParam(r))
	if err != nil {
		h.logger.WarnContext(ctx, "list feeds failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]sportFeedDTO, 0, len(feeds))
	for _, feed := range feeds {
		items = append(items, sportFeedToDTO(feed))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPopularTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPopularTournaments")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, toListPayload(h.contentService.FetchPopularTournaments(ctx)))
}

func (h *Handler) GetMatchDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchDetails")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.contentService.GetMatchDetails(ctx, r.PathValue("matchID")))
}

func (h *Handler) GetWatchPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWatchPage")
	defer span.End()

	page := h.contentService.FetchWatchPage(ctx, r.PathValue("matchID"))
	writeSuccess(ctx, w, http.StatusOK, watchPageDTO{
		Detail:     page.Detail,
		Squads:     toListPayload(page.Squads),
		Points:     toListPayload(page.Points),
		Commentary: toListPayload(page.Commentary),
	})
}

func (h *Handler) ListMatchSquads(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchSquads")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, toListPayload(h.contentService.FetchPlayingXI(ctx, r.PathValue("matchID"))))
}

func (h *Handler) ListMatchCommentary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchCommentary")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, toListPayload(h.contentService.FetchCommentary(ctx, r.PathValue("matchID"))))
}

func (h *Handler) ListSeriesPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeriesPoints")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, toListPayload(h.contentService.FetchSeriesPoints(ctx, r.PathValue("seriesID"))))
}

func (h *Handler) SummarizeMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SummarizeMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	summary, err := h.summaryService.SummarizeMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "summarize match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) GetRegistryMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRegistryMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	match, err := h.contentService.FetchRegistryMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get registry match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, match)
}
