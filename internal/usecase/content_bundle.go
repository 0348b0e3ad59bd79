package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/novastream/internal/domain/content"
	"github.com/sourcegraph/conc"
)

// SportFeed is everything the home page renders for one sport.
type SportFeed struct {
	Sport       string
	Live        content.Result[content.LiveMatch]
	Upcoming    content.Result[content.UpcomingMatch]
	Slides      content.Result[content.Slide]
	Highlights  content.Result[content.Highlight]
	Tournaments content.Result[content.Tournament]
}

// WatchPage bundles the match detail with its cricket side panels.
type WatchPage struct {
	Detail     content.MatchDetail
	Squads     content.Result[content.SquadTeam]
	Points     content.Result[content.SeriesPoint]
	Commentary content.Result[content.CommentaryLine]
}

// FetchSportFeed fans out the home page rails and waits for all of them.
// Highlights are derived from the live rail instead of a second fetch.
func (s *ContentService) FetchSportFeed(ctx context.Context, sport, leagueID string) SportFeed {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.FetchSportFeed", sportAttrs(sport, leagueID)...)
	defer span.End()

	feed := SportFeed{Sport: strings.TrimSpace(sport)}

	var wg conc.WaitGroup
	wg.Go(func() { feed.Live = s.FetchLiveMatches(ctx, sport, leagueID) })
	wg.Go(func() { feed.Upcoming = s.FetchUpcomingMatches(ctx, sport, leagueID) })
	wg.Go(func() { feed.Slides = s.FetchSlides(ctx, sport, leagueID) })
	wg.Go(func() { feed.Tournaments = s.FetchPopularTournaments(ctx) })
	wg.Wait()

	feed.Highlights = toHighlights(feed.Live)
	return feed
}

// FetchFeeds builds one feed per distinct sport on a bounded worker pool and
// returns them in request order.
func (s *ContentService) FetchFeeds(ctx context.Context, sports []string, leagueID string) ([]SportFeed, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.FetchFeeds")
	defer span.End()

	unique := make([]string, 0, len(sports))
	seen := make(map[string]struct{}, len(sports))
	for _, sport := range sports {
		key := normalizeSport(sport)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, strings.TrimSpace(sport))
	}
	if len(unique) == 0 {
		return nil, fmt.Errorf("%w: at least one sport is required", ErrInvalidInput)
	}
	if len(unique) > s.maxFeeds {
		return nil, fmt.Errorf("%w: at most %d sports per request, got %d", ErrInvalidInput, s.maxFeeds, len(unique))
	}

	pool, err := ants.NewPool(min(s.feedWorkers, len(unique)), ants.WithPanicHandler(func(p any) {
		s.logger.ErrorContext(ctx, "sport feed worker panicked", "panic", fmt.Sprint(p))
	}))
	if err != nil {
		return nil, fmt.Errorf("create feed worker pool: %w", err)
	}
	defer pool.Release()

	feeds := make([]SportFeed, len(unique))
	var workers sync.WaitGroup
	for i, sport := range unique {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			feeds[i] = s.FetchSportFeed(ctx, sport, leagueID)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit feed task sport=%s: %w", sport, err)
		}
	}
	workers.Wait()

	return feeds, nil
}

// FetchWatchPage loads the detail first; cricket matches then get squads, commentary
// and, when the detail names a series, the points table in parallel.
func (s *ContentService) FetchWatchPage(ctx context.Context, matchID string) WatchPage {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.FetchWatchPage", matchAttr(matchID))
	defer span.End()

	page := WatchPage{
		Detail:     s.GetMatchDetails(ctx, matchID),
		Squads:     content.Empty[content.SquadTeam](),
		Points:     content.Empty[content.SeriesPoint](),
		Commentary: content.Empty[content.CommentaryLine](),
	}
	if page.Detail.Source != content.DetailSourceCricket {
		return page
	}

	var wg conc.WaitGroup
	wg.Go(func() { page.Squads = s.FetchPlayingXI(ctx, page.Detail.ID) })
	wg.Go(func() { page.Commentary = s.FetchCommentary(ctx, page.Detail.ID) })
	if page.Detail.SeriesID != "" {
		wg.Go(func() { page.Points = s.FetchSeriesPoints(ctx, page.Detail.SeriesID) })
	}
	wg.Wait()

	return page
}
