package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/riskibarqy/novastream/internal/domain/content"
	"github.com/riskibarqy/novastream/internal/platform/logging"
	"github.com/riskibarqy/novastream/internal/platform/metrics"
	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel/attribute"
)

const (
	sportCricket    = "cricket"
	sportIPL        = "ipl"
	sportFootball   = "football"
	sportFormula1   = "formula-1"
	leagueIPL       = "ipl"
	matchFinished   = "Match Finished"
	matchNotStarted = "match not started"
	seriesTypes     = "odi,t20,test"

	upcomingLimit      = 5
	upcomingWindowDays = 7
	cricketSlideLimit  = 5
	leagueSlideLimit   = 4
	iplHighlightLimit  = 4
	cricketSeriesLimit = 2
)

var liveFixtureSports = map[string]struct{}{
	"football":   {},
	"basketball": {},
	"volleyball": {},
	"tennis":     {},
}

var popularTournaments = []content.Tournament{
	{ID: "39", Name: "Premier League", Image: "https://media.api-sports.io/football/leagues/39.png", Hint: "football league"},
	{ID: "140", Name: "La Liga", Image: "https://media.api-sports.io/football/leagues/140.png", Hint: "football league"},
	{ID: "78", Name: "Bundesliga", Image: "https://media.api-sports.io/football/leagues/78.png", Hint: "football league"},
	{ID: "nba", Name: "NBA", Image: "https://media.api-sports.io/basketball/leagues/12.png", Hint: "basketball league"},
	{ID: "ipl", Name: "IPL", Image: "https://cricketdata.org/images/ipl/ipl-logo.png", Hint: "cricket league"},
}

type ContentServiceConfig struct {
	// FeedWorkers bounds how many sport feeds FetchFeeds builds at once.
	FeedWorkers int
	MaxFeeds    int
	Logger      *logging.Logger
	Metrics     *metrics.Registry
}

// ContentService aggregates the sports and cricket providers into UI view-models.
// Provider failures never escape as errors; they surface as failed results.
type ContentService struct {
	sports      SportsDataProvider
	cricket     CricketDataProvider
	registry    MatchRegistry
	feedWorkers int
	maxFeeds    int
	logger      *logging.Logger
	metrics     *metrics.Registry
	now         func() time.Time
}

func NewContentService(sports SportsDataProvider, cricket CricketDataProvider, registry MatchRegistry, cfg ContentServiceConfig) *ContentService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.FeedWorkers
	if workers <= 0 {
		workers = 4
	}
	maxFeeds := cfg.MaxFeeds
	if maxFeeds <= 0 {
		maxFeeds = 8
	}
	return &ContentService{
		sports:      sports,
		cricket:     cricket,
		registry:    registry,
		feedWorkers: workers,
		maxFeeds:    maxFeeds,
		logger:      logger,
		metrics:     cfg.Metrics,
		now:         time.Now,
	}
}

func (s *ContentService) FetchLiveMatches(ctx context.Context, sport, leagueID string) content.Result[content.LiveMatch] {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.FetchLiveMatches", sportAttrs(sport, leagueID)...)
	defer span.End()

	sport = strings.TrimSpace(sport)
	key := normalizeSport(sport)

	var res content.Result[content.LiveMatch]
	switch {
	case isCricketFamily(key):
		res = s.liveCricket(ctx, sport, wantsIPL(key, leagueID))
	case isLiveFixtureSport(key):
		res = s.liveFixtures(ctx, sport, key, leagueID)
	case key == sportFormula1:
		res = s.liveRaces(ctx, sport, leagueID)
	default:
		res = content.Empty[content.LiveMatch]()
	}
	return record(ctx, s, "live", sport, res)
}

func (s *ContentService) liveCricket(ctx context.Context, sport string, iplOnly bool) content.Result[content.LiveMatch] {
	matches, err := s.cricket.FetchCurrentMatches(ctx)
	if err != nil {
		return content.Failed[content.LiveMatch](err)
	}

	out := make([]content.LiveMatch, 0, len(matches))
	for _, m := range filterIPL(matches, iplOnly) {
		out = append(out, content.LiveMatch{
			ID:          m.ID,
			Sport:       sport,
			Title:       cricketTitle(m, "Cricket Match"),
			Image:       content.IPLImageAsset(m.Name, firstTeamImage(m)),
			Description: firstNonEmpty(m.Series, "Cricket") + " - " + firstNonEmpty(m.Status, "Live"),
			Hint:        "cricket match",
		})
	}
	return content.OK(out)
}

func (s *ContentService) liveFixtures(ctx context.Context, sport, key, leagueID string) content.Result[content.LiveMatch] {
	if !s.sports.SupportsSport(key) {
		return content.Empty[content.LiveMatch]()
	}
	fixtures, err := s.sports.FetchLiveFixtures(ctx, key, leagueID)
	if err != nil {
		return content.Failed[content.LiveMatch](err)
	}

	out := make([]content.LiveMatch, 0, len(fixtures))
	for _, f := range fixtures {
		out = append(out, content.LiveMatch{
			ID:          f.ID,
			Sport:       sport,
			Title:       fixtureTitle(f),
			Image:       firstNonEmpty(f.HomeLogo, content.PlaceholderCard),
			Description: f.LeagueName + " - " + f.StatusLong,
			Hint:        key + " action",
		})
	}
	return content.OK(out)
}

func (s *ContentService) liveRaces(ctx context.Context, sport, leagueID string) content.Result[content.LiveMatch] {
	races, err := s.sports.FetchLiveRaces(ctx, leagueID)
	if err != nil {
		return content.Failed[content.LiveMatch](err)
	}

	out := make([]content.LiveMatch, 0, len(races))
	for _, r := range races {
		out = append(out, content.LiveMatch{
			ID:          r.ID,
			Sport:       sport,
			Title:       r.Name,
			Image:       content.PlaceholderCard,
			Description: r.Competition + " - " + r.Status,
			Hint:        "formula 1 race",
		})
	}
	return content.OK(out)
}

func (s *ContentService) FetchUpcomingMatches(ctx context.Context, sport, leagueID string) content.Result[content.UpcomingMatch] {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.FetchUpcomingMatches", sportAttrs(sport, leagueID)...)
	defer span.End()

	sport = strings.TrimSpace(sport)
	key := normalizeSport(sport)

	var res content.Result[content.UpcomingMatch]
	if isCricketFamily(key) {
		res = s.upcomingCricket(ctx, wantsIPL(key, leagueID))
	} else {
		res = s.upcomingFixtures(ctx, key, leagueID)
	}
	return record(ctx, s, "upcoming", sport, res)
}

func (s *ContentService) upcomingCricket(ctx context.Context, iplOnly bool) content.Result[content.UpcomingMatch] {
	matches, err := s.cricket.FetchMatches(ctx)
	if err != nil {
		return content.Failed[content.UpcomingMatch](err)
	}

	now := s.now()
	out := make([]content.UpcomingMatch, 0, upcomingLimit)
	for _, m := range filterIPL(matches, iplOnly) {
		if !m.StartsAt.After(now) {
			continue
		}
		out = append(out, content.UpcomingMatch{Teams: cricketTitle(m, "Cricket Match"), Sport: "Cricket"})
		if len(out) == upcomingLimit {
			break
		}
	}
	return content.OK(out)
}

func (s *ContentService) upcomingFixtures(ctx context.Context, key, leagueID string) content.Result[content.UpcomingMatch] {
	if !s.sports.SupportsSport(key) {
		return content.Empty[content.UpcomingMatch]()
	}

	today := s.now().UTC()
	fixtures, err := s.sports.FetchScheduledFixtures(ctx, ScheduleQuery{
		Sport:    key,
		From:     today,
		To:       today.AddDate(0, 0, upcomingWindowDays),
		Season:   today.Year(),
		LeagueID: leagueID,
	})
	if err != nil {
		return content.Failed[content.UpcomingMatch](err)
	}

	out := make([]content.UpcomingMatch, 0, upcomingLimit)
	for _, f := range fixtures[:min(len(fixtures), upcomingLimit)] {
		out = append(out, content.UpcomingMatch{Teams: fixtureTitle(f), Sport: f.LeagueName})
	}
	return content.OK(out)
}

// FetchSlides builds the hero carousel. Cricket and unsupported sports always
// return at least one slide, falling back to placeholders.
func (s *ContentService) FetchSlides(ctx context.Context, sport, leagueID string) content.Result[content.Slide] {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.FetchSlides", sportAttrs(sport, leagueID)...)
	defer span.End()

	sport = strings.TrimSpace(sport)
	key := normalizeSport(sport)

	var res content.Result[content.Slide]
	switch {
	case isCricketFamily(key):
		res = s.cricketSlides(ctx, wantsIPL(key, leagueID))
	case key == sportFootball:
		res = s.leagueSlides(ctx, key, leagueID)
	default:
		res = content.OK([]content.Slide{{
			ID:          "slide-fallback-1",
			Title:       "Featured in " + sport,
			Description: "Top matches and highlights from the world of " + sport + ".",
			Image:       content.PlaceholderHero,
			IsLive:      false,
			Category:    sport,
			Hint:        key + " action",
		}})
	}
	return record(ctx, s, "slides", sport, res)
}

func (s *ContentService) cricketSlides(ctx context.Context, iplOnly bool) content.Result[content.Slide] {
	matches, err := s.cricket.FetchMatches(ctx)
	if err != nil {
		return content.Degraded(content.StatusFailed, err, cricketFallbackSlides())
	}

	filtered := filterIPL(matches, iplOnly)
	out := make([]content.Slide, 0, cricketSlideLimit)
	for _, m := range filtered[:min(len(filtered), cricketSlideLimit)] {
		out = append(out, content.Slide{
			ID:          m.ID,
			Title:       cricketSlideTitle(m),
			Description: "Starts on " + slideDate(m.StartsAt) + " - " + m.MatchType,
			Image:       content.IPLImageAsset(m.Name, firstTeamImage(m)),
			IsLive:      m.Status != "" && strings.ToLower(m.Status) != matchNotStarted,
			Category:    "Cricket",
			Hint:        "cricket stadium",
		})
	}
	if len(out) == 0 {
		return content.Degraded(content.StatusEmpty, nil, cricketFallbackSlides())
	}
	return content.OK(out)
}

func (s *ContentService) leagueSlides(ctx context.Context, key, leagueID string) content.Result[content.Slide] {
	leagues, err := s.sports.FetchLeagues(ctx, key, leagueID)
	if err != nil {
		return content.Failed[content.Slide](err)
	}

	out := make([]content.Slide, 0, leagueSlideLimit)
	for _, l := range leagues[:min(len(leagues), leagueSlideLimit)] {
		out = append(out, content.Slide{
			ID:          l.ID,
			Title:       l.Name,
			Description: "Watch live matches from " + l.Country,
			Image:       firstNonEmpty(l.Logo, content.PlaceholderHero),
			IsLive:      true,
			Category:    "Football",
			Hint:        "football stadium",
		})
	}
	return content.OK(out)
}

func cricketFallbackSlides() []content.Slide {
	return []content.Slide{
		{
			ID:          "cricket-fallback-1",
			Title:       "Major Tournaments Coming Soon",
			Description: "Stay tuned for the biggest events in cricket.",
			Image:       content.PlaceholderHero,
			Category:    "Cricket",
			Hint:        "cricket action",
		},
		{
			ID:          "cricket-fallback-2",
			Title:       "Get Ready for the Action",
			Description: "All the live matches and highlights will appear here.",
			Image:       content.PlaceholderHero,
			Category:    "Cricket",
			Hint:        "cricket players",
		},
	}
}

// FetchHighlights relabels the live matches of a sport; the status mirrors the live fetch.
func (s *ContentService) FetchHighlights(ctx context.Context, sport, leagueID string) content.Result[content.Highlight] {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.FetchHighlights", sportAttrs(sport, leagueID)...)
	defer span.End()

	return toHighlights(s.FetchLiveMatches(ctx, sport, leagueID))
}

func toHighlights(live content.Result[content.LiveMatch]) content.Result[content.Highlight] {
	return content.Map(live, func(m content.LiveMatch) content.Highlight {
		m.ID += "-h"
		m.Title += " Highlights"
		return content.Highlight(m)
	})
}

// FetchPopularTournaments returns the static catalog plus IPL highlights and cricket
// series. When either dynamic source fails only a generic cricket card is appended.
func (s *ContentService) FetchPopularTournaments(ctx context.Context) content.Result[content.Tournament] {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.FetchPopularTournaments")
	defer span.End()

	var (
		series     []ExternalCricketSeries
		seriesErr  error
		highlights content.Result[content.Highlight]
		wg         conc.WaitGroup
	)
	wg.Go(func() {
		series, seriesErr = s.cricket.FetchSeries(ctx, seriesTypes)
	})
	wg.Go(func() {
		highlights = s.FetchHighlights(ctx, sportIPL, "")
	})
	wg.Wait()

	out := append([]content.Tournament(nil), popularTournaments...)

	err := seriesErr
	if err == nil && highlights.Status == content.StatusFailed {
		err = highlights.Err
	}
	if err != nil {
		out = append(out, content.Tournament{ID: "cricket", Name: "Cricket", Image: content.PlaceholderTournament, Hint: "cricket"})
		return record(ctx, s, "tournaments", "", content.Degraded(content.StatusFailed, err, out))
	}

	for _, h := range highlights.Items[:min(len(highlights.Items), iplHighlightLimit)] {
		out = append(out, content.Tournament{ID: h.ID, Name: h.Title, Image: h.Image, Hint: h.Hint, IsHighlight: true})
	}
	for _, item := range series[:min(len(series), cricketSeriesLimit)] {
		out = append(out, content.Tournament{
			ID:        "cricket-" + item.ID,
			Name:      item.Name,
			Image:     firstNonEmpty(item.Image, content.PlaceholderTournament),
			Hint:      "cricket series",
			IsCricket: true,
		})
	}
	return record(ctx, s, "tournaments", "", content.OK(out))
}

// GetMatchDetails tries the cricket provider for UUID ids, then the football provider,
// and finally returns a generic placeholder. It never fails.
func (s *ContentService) GetMatchDetails(ctx context.Context, matchID string) content.MatchDetail {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.GetMatchDetails", matchAttr(matchID))
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if isCricketMatchID(matchID) {
		match, found, err := s.cricket.FetchMatchInfo(ctx, matchID)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "cricket match lookup failed, trying football", "match_id", matchID, "error", err)
		case found:
			return cricketDetail(match)
		}
	}

	if matchID != "" {
		fixture, found, err := s.sports.FetchFixtureByID(ctx, matchID)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "football fixture lookup failed, using placeholder", "match_id", matchID, "error", err)
		case found:
			return content.MatchDetail{
				ID:          fixture.ID,
				Title:       fixtureTitle(fixture),
				Description: fixture.LeagueName + " - " + fixture.StatusLong,
				Image:       firstNonEmpty(fixture.HomeLogo, content.PlaceholderHero),
				Hint:        "football match",
				IsLive:      fixture.StatusLong != matchFinished,
				Category:    "Football",
				Tournament:  fixture.LeagueName,
				Source:      content.DetailSourceFootball,
			}
		}
	}

	return content.MatchDetail{
		ID:          matchID,
		Title:       "Match Details",
		Description: "Live stream or highlight",
		Image:       content.PlaceholderHero,
		Hint:        "sports event",
		IsLive:      true,
		Category:    "General",
		Source:      content.DetailSourceFallback,
	}
}

func cricketDetail(m ExternalCricketMatch) content.MatchDetail {
	var home, homeFlag, awayFlag string
	if len(m.Teams) > 0 {
		home = m.Teams[0]
		homeFlag = teamFlag(m, home)
	}
	if len(m.Teams) > 1 {
		awayFlag = teamFlag(m, m.Teams[1])
	}
	flagFor := func(inning string) string {
		if home != "" && strings.Contains(inning, home) {
			return homeFlag
		}
		return awayFlag
	}

	full := make([]content.Innings, 0, len(m.Scorecard))
	for _, inning := range m.Scorecard {
		teamName, _, _ := strings.Cut(inning.Inning, " Inning")
		row := content.Innings{
			TeamName: teamName,
			TeamFlag: flagFor(inning.Inning),
			Score:    inning.Runs,
			Wickets:  inning.Wkts,
			Overs:    inning.Overs,
			Batting:  make([]content.BattingRow, 0, len(inning.Batting)),
			Bowling:  make([]content.BowlingRow, 0, len(inning.Bowling)),
		}
		for _, b := range inning.Batting {
			row.Batting = append(row.Batting, content.BattingRow{
				Name:      b.Name,
				OutStatus: b.Dismissal,
				R:         b.Runs,
				B:         b.Balls,
				Fours:     b.Fours,
				Sixes:     b.Sixes,
				SR:        b.StrikeRate,
			})
		}
		for _, b := range inning.Bowling {
			row.Bowling = append(row.Bowling, content.BowlingRow{
				Name: b.Name,
				O:    b.Overs,
				M:    b.Maidens,
				R:    b.Runs,
				W:    b.Wickets,
				Econ: b.Economy,
			})
		}
		full = append(full, row)
	}

	short := make([]content.InningScore, 0, len(m.Score))
	for _, sc := range m.Score {
		short = append(short, content.InningScore{
			Inning: sc.Inning,
			R:      sc.Runs,
			W:      sc.Wkts,
			O:      sc.Overs,
			Flag:   flagFor(sc.Inning),
		})
	}

	return content.MatchDetail{
		ID:            m.ID,
		Title:         m.Name,
		Description:   m.Status,
		Image:         content.IPLImageAsset(m.Name, firstTeamImage(m)),
		Hint:          "cricket match",
		IsLive:        !strings.Contains(m.Status, "won"),
		Category:      "Cricket",
		Tournament:    m.Series,
		SeriesID:      m.SeriesID,
		Scorecard:     short,
		FullScorecard: full,
		Source:        content.DetailSourceCricket,
	}
}

func (s *ContentService) FetchPlayingXI(ctx context.Context, matchID string) content.Result[content.SquadTeam] {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.FetchPlayingXI", matchAttr(matchID))
	defer span.End()

	if matchID = strings.TrimSpace(matchID); matchID == "" {
		return content.Empty[content.SquadTeam]()
	}
	teams, err := s.cricket.FetchMatchSquad(ctx, matchID)
	if err != nil {
		return record(ctx, s, "squads", sportCricket, content.Failed[content.SquadTeam](err))
	}

	out := make([]content.SquadTeam, 0, len(teams))
	for _, t := range teams {
		team := content.SquadTeam{
			TeamName:  t.TeamName,
			Shortname: t.ShortName,
			Img:       t.Img,
			Players:   make([]content.SquadPlayer, 0, len(t.Players)),
		}
		for _, p := range t.Players {
			team.Players = append(team.Players, content.SquadPlayer(p))
		}
		out = append(out, team)
	}
	return record(ctx, s, "squads", sportCricket, content.OK(out))
}

func (s *ContentService) FetchSeriesPoints(ctx context.Context, seriesID string) content.Result[content.SeriesPoint] {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.FetchSeriesPoints", attribute.String("novastream.series_id", seriesID))
	defer span.End()

	if seriesID = strings.TrimSpace(seriesID); seriesID == "" {
		return content.Empty[content.SeriesPoint]()
	}
	points, err := s.cricket.FetchSeriesPoints(ctx, seriesID)
	if err != nil {
		return record(ctx, s, "series_points", sportCricket, content.Failed[content.SeriesPoint](err))
	}

	out := make([]content.SeriesPoint, 0, len(points))
	for _, p := range points {
		out = append(out, content.SeriesPoint(p))
	}
	return record(ctx, s, "series_points", sportCricket, content.OK(out))
}

func (s *ContentService) FetchCommentary(ctx context.Context, matchID string) content.Result[content.CommentaryLine] {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.FetchCommentary", matchAttr(matchID))
	defer span.End()

	if matchID = strings.TrimSpace(matchID); matchID == "" {
		return content.Empty[content.CommentaryLine]()
	}
	lines, err := s.cricket.FetchCommentary(ctx, matchID)
	if err != nil {
		return record(ctx, s, "commentary", sportCricket, content.Failed[content.CommentaryLine](err))
	}

	out := make([]content.CommentaryLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, content.CommentaryLine(l))
	}
	return record(ctx, s, "commentary", sportCricket, content.OK(out))
}

// FetchRegistryMatch passes a first-party registry record through unchanged.
func (s *ContentService) FetchRegistryMatch(ctx context.Context, matchID string) (map[string]any, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.FetchRegistryMatch", matchAttr(matchID))
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if s.registry == nil {
		return nil, fmt.Errorf("%w: match registry is not configured", ErrDependencyUnavailable)
	}

	match, err := s.registry.FetchMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("fetch registry match: %w", err)
	}
	return match, nil
}

func record[T any](ctx context.Context, s *ContentService, operation, sport string, res content.Result[T]) content.Result[T] {
	s.metrics.IncContentResult(operation, string(res.Status))
	if res.Status == content.StatusFailed {
		s.logger.WarnContext(ctx, "content fetch degraded", "operation", operation, "sport", sport, "error", res.Err)
	}
	return res
}

func normalizeSport(sport string) string {
	return strings.ToLower(strings.TrimSpace(sport))
}

func isCricketFamily(key string) bool {
	return key == sportCricket || key == sportIPL
}

func isLiveFixtureSport(key string) bool {
	_, ok := liveFixtureSports[key]
	return ok
}

func wantsIPL(key, leagueID string) bool {
	return key == sportIPL || strings.EqualFold(strings.TrimSpace(leagueID), leagueIPL)
}

func isCricketMatchID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func filterIPL(matches []ExternalCricketMatch, iplOnly bool) []ExternalCricketMatch {
	if !iplOnly {
		return matches
	}
	out := make([]ExternalCricketMatch, 0, len(matches))
	for _, m := range matches {
		if content.IsIPL(m.Name) {
			out = append(out, m)
		}
	}
	return out
}

func cricketTitle(m ExternalCricketMatch, fallback string) string {
	if len(m.Teams) == 2 {
		return m.Teams[0] + " vs " + m.Teams[1]
	}
	return firstNonEmpty(m.Name, m.MatchType, fallback)
}

// cricketSlideTitle stops at the match name; slides never show the format as a title.
func cricketSlideTitle(m ExternalCricketMatch) string {
	if len(m.Teams) == 2 {
		return m.Teams[0] + " vs " + m.Teams[1]
	}
	return m.Name
}

func fixtureTitle(f ExternalFixture) string {
	return f.HomeName + " vs " + f.AwayName
}

func firstTeamImage(m ExternalCricketMatch) string {
	if len(m.TeamInfo) == 0 {
		return ""
	}
	return m.TeamInfo[0].Img
}

func teamFlag(m ExternalCricketMatch, team string) string {
	for _, info := range m.TeamInfo {
		if info.Name == team {
			return info.Img
		}
	}
	return ""
}

// slideDate renders M/D/YYYY, the format the carousel has always shown.
func slideDate(t time.Time) string {
	if t.IsZero() {
		return "TBA"
	}
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
