package usecase

import (
	"context"
	"time"
)

// SportsDataProvider is the multi-sport API family (one host per sport, key in a header).
type SportsDataProvider interface {
	SupportsSport(sport string) bool
	FetchLiveFixtures(ctx context.Context, sport, leagueID string) ([]ExternalFixture, error)
	FetchLiveRaces(ctx context.Context, leagueID string) ([]ExternalRace, error)
	FetchScheduledFixtures(ctx context.Context, query ScheduleQuery) ([]ExternalFixture, error)
	FetchLeagues(ctx context.Context, sport, leagueID string) ([]ExternalLeague, error)
	FetchFixtureByID(ctx context.Context, fixtureID string) (ExternalFixture, bool, error)
}

// CricketDataProvider is the cricket API family (key in a query parameter).
type CricketDataProvider interface {
	FetchCurrentMatches(ctx context.Context) ([]ExternalCricketMatch, error)
	FetchMatches(ctx context.Context) ([]ExternalCricketMatch, error)
	FetchSeries(ctx context.Context, matchTypes string) ([]ExternalCricketSeries, error)
	FetchMatchInfo(ctx context.Context, matchID string) (ExternalCricketMatch, bool, error)
	FetchMatchSquad(ctx context.Context, matchID string) ([]ExternalSquadTeam, error)
	FetchSeriesPoints(ctx context.Context, seriesID string) ([]ExternalSeriesPoint, error)
	FetchCommentary(ctx context.Context, matchID string) ([]ExternalCommentary, error)
}

type ScheduleQuery struct {
	Sport    string
	From     time.Time
	To       time.Time
	Season   int
	LeagueID string
}

type ExternalFixture struct {
	ID         string
	HomeName   string
	HomeLogo   string
	AwayName   string
	AwayLogo   string
	LeagueName string
	StatusLong string
}

type ExternalRace struct {
	ID          string
	Name        string
	Competition string
	Status      string
}

type ExternalLeague struct {
	ID      string
	Name    string
	Logo    string
	Country string
}

type ExternalCricketMatch struct {
	ID        string
	Name      string
	MatchType string
	Status    string
	Series    string
	SeriesID  string
	StartsAt  time.Time
	Teams     []string
	TeamInfo  []ExternalCricketTeam
	Score     []ExternalInningScore
	Scorecard []ExternalInnings
}

type ExternalCricketTeam struct {
	Name      string
	ShortName string
	Img       string
}

type ExternalInningScore struct {
	Inning string
	Runs   int
	Wkts   int
	Overs  float64
}

type ExternalInnings struct {
	Inning  string
	Runs    int
	Wkts    int
	Overs   float64
	Batting []ExternalBatting
	Bowling []ExternalBowling
}

type ExternalBatting struct {
	Name       string
	Dismissal  string
	Runs       int
	Balls      int
	Fours      int
	Sixes      int
	StrikeRate float64
}

type ExternalBowling struct {
	Name    string
	Overs   float64
	Maidens int
	Runs    int
	Wickets int
	Economy float64
}

type ExternalCricketSeries struct {
	ID    string
	Name  string
	Image string
}

type ExternalSquadTeam struct {
	TeamName  string
	ShortName string
	Img       string
	Players   []ExternalSquadPlayer
}

type ExternalSquadPlayer struct {
	ID           string
	Name         string
	Role         string
	BattingStyle string
	BowlingStyle string
	Country      string
	PlayerImg    string
}

type ExternalSeriesPoint struct {
	TeamName string
	Img      string
	Matches  int
	Wins     int
	Loss     int
	Ties     int
	NR       int
	Points   int
}

type ExternalCommentary struct {
	Over    string
	Comment string
}

// MatchRegistry is the first-party match store; FetchMatch returns the raw record.
type MatchRegistry interface {
	FetchMatch(ctx context.Context, matchID string) (map[string]any, error)
}
