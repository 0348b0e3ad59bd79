package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type sportsProviderMock struct {
	mock.Mock
}

func newSportsProviderMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *sportsProviderMock {
	m := &sportsProviderMock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *sportsProviderMock) SupportsSport(sport string) bool {
	return m.Called(sport).Bool(0)
}

func (m *sportsProviderMock) FetchLiveFixtures(ctx context.Context, sport, leagueID string) ([]ExternalFixture, error) {
	args := m.Called(ctx, sport, leagueID)
	out, _ := args.Get(0).([]ExternalFixture)
	return out, args.Error(1)
}

func (m *sportsProviderMock) FetchLiveRaces(ctx context.Context, leagueID string) ([]ExternalRace, error) {
	args := m.Called(ctx, leagueID)
	out, _ := args.Get(0).([]ExternalRace)
	return out, args.Error(1)
}

func (m *sportsProviderMock) FetchScheduledFixtures(ctx context.Context, query ScheduleQuery) ([]ExternalFixture, error) {
	args := m.Called(ctx, query)
	out, _ := args.Get(0).([]ExternalFixture)
	return out, args.Error(1)
}

func (m *sportsProviderMock) FetchLeagues(ctx context.Context, sport, leagueID string) ([]ExternalLeague, error) {
	args := m.Called(ctx, sport, leagueID)
	out, _ := args.Get(0).([]ExternalLeague)
	return out, args.Error(1)
}

func (m *sportsProviderMock) FetchFixtureByID(ctx context.Context, fixtureID string) (ExternalFixture, bool, error) {
	args := m.Called(ctx, fixtureID)
	out, _ := args.Get(0).(ExternalFixture)
	return out, args.Bool(1), args.Error(2)
}

type cricketProviderMock struct {
	mock.Mock
}

func newCricketProviderMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *cricketProviderMock {
	m := &cricketProviderMock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *cricketProviderMock) FetchCurrentMatches(ctx context.Context) ([]ExternalCricketMatch, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]ExternalCricketMatch)
	return out, args.Error(1)
}

func (m *cricketProviderMock) FetchMatches(ctx context.Context) ([]ExternalCricketMatch, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]ExternalCricketMatch)
	return out, args.Error(1)
}

func (m *cricketProviderMock) FetchSeries(ctx context.Context, matchTypes string) ([]ExternalCricketSeries, error) {
	args := m.Called(ctx, matchTypes)
	out, _ := args.Get(0).([]ExternalCricketSeries)
	return out, args.Error(1)
}

func (m *cricketProviderMock) FetchMatchInfo(ctx context.Context, matchID string) (ExternalCricketMatch, bool, error) {
	args := m.Called(ctx, matchID)
	out, _ := args.Get(0).(ExternalCricketMatch)
	return out, args.Bool(1), args.Error(2)
}

func (m *cricketProviderMock) FetchMatchSquad(ctx context.Context, matchID string) ([]ExternalSquadTeam, error) {
	args := m.Called(ctx, matchID)
	out, _ := args.Get(0).([]ExternalSquadTeam)
	return out, args.Error(1)
}

func (m *cricketProviderMock) FetchSeriesPoints(ctx context.Context, seriesID string) ([]ExternalSeriesPoint, error) {
	args := m.Called(ctx, seriesID)
	out, _ := args.Get(0).([]ExternalSeriesPoint)
	return out, args.Error(1)
}

func (m *cricketProviderMock) FetchCommentary(ctx context.Context, matchID string) ([]ExternalCommentary, error) {
	args := m.Called(ctx, matchID)
	out, _ := args.Get(0).([]ExternalCommentary)
	return out, args.Error(1)
}

type registryMock struct {
	mock.Mock
}

func (m *registryMock) FetchMatch(ctx context.Context, matchID string) (map[string]any, error) {
	args := m.Called(ctx, matchID)
	out, _ := args.Get(0).(map[string]any)
	return out, args.Error(1)
}

type summarizerMock struct {
	mock.Mock
}

func (m *summarizerMock) Summarize(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
