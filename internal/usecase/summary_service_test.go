package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/riskibarqy/novastream/internal/domain/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type staticMatchData struct {
	detail     content.MatchDetail
	commentary content.Result[content.CommentaryLine]
}

func (s staticMatchData) GetMatchDetails(context.Context, string) content.MatchDetail {
	return s.detail
}

func (s staticMatchData) FetchCommentary(context.Context, string) content.Result[content.CommentaryLine] {
	return s.commentary
}

func cricketSummaryData() staticMatchData {
	return staticMatchData{
		detail: content.MatchDetail{
			ID:        "m1",
			Title:     "India vs Australia",
			Scorecard: []content.InningScore{{Inning: "India Inning 1", R: 250, W: 8, O: 50}},
			FullScorecard: []content.Innings{{
				TeamName: "India",
				Score:    250,
				Batting:  []content.BattingRow{{Name: "Rohit Sharma", R: 80}},
				Bowling:  []content.BowlingRow{},
			}},
			Source: content.DetailSourceCricket,
		},
		commentary: content.OK([]content.CommentaryLine{{Over: "49.6", Comment: "SIX to win it"}}),
	}
}

func TestSummaryService_SummarizeMatch(t *testing.T) {
	t.Parallel()

	summarizer := &summarizerMock{}
	summarizer.On("Summarize", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, `match titled "India vs Australia"`) &&
			strings.Contains(prompt, `"teamName":"India"`) &&
			strings.Contains(prompt, `"name":"Rohit Sharma"`) &&
			strings.Contains(prompt, `"comment":"SIX to win it"`) &&
			strings.Contains(prompt, "2-3 paragraphs")
	})).Return("India held their nerve.", nil).Once()

	svc := NewSummaryService(cricketSummaryData(), summarizer)
	got, err := svc.SummarizeMatch(t.Context(), " m1 ")

	require.NoError(t, err)
	assert.Equal(t, MatchSummary{MatchID: "m1", Title: "India vs Australia", Summary: "India held their nerve."}, got)
	summarizer.AssertExpectations(t)
}

func TestSummaryService_Errors(t *testing.T) {
	t.Parallel()

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		svc := NewSummaryService(cricketSummaryData(), nil)
		if svc.Enabled() {
			t.Fatalf("expected service without summarizer to be disabled")
		}
		if _, err := svc.SummarizeMatch(t.Context(), "m1"); !errors.Is(err, ErrDependencyUnavailable) {
			t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		t.Parallel()

		svc := NewSummaryService(cricketSummaryData(), &summarizerMock{})
		if _, err := svc.SummarizeMatch(t.Context(), "  "); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("match without scorecard", func(t *testing.T) {
		t.Parallel()

		data := staticMatchData{detail: content.MatchDetail{ID: "39", Title: "Man U vs Chelsea", Source: content.DetailSourceFootball}}
		svc := NewSummaryService(data, &summarizerMock{})
		if _, err := svc.SummarizeMatch(t.Context(), "39"); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("summarizer failure", func(t *testing.T) {
		t.Parallel()

		summarizer := &summarizerMock{}
		summarizer.On("Summarize", mock.Anything, mock.Anything).Return("", errors.New("rate limited")).Once()

		svc := NewSummaryService(cricketSummaryData(), summarizer)
		_, err := svc.SummarizeMatch(t.Context(), "m1")
		if !errors.Is(err, ErrDependencyUnavailable) {
			t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
		}
		if !strings.Contains(err.Error(), "rate limited") {
			t.Fatalf("expected cause in message, got %v", err)
		}
	})
}

func TestRenderSummaryPrompt_FallsBackToShortScorecard(t *testing.T) {
	t.Parallel()

	prompt, err := renderSummaryPrompt(content.MatchDetail{
		Title:     "A vs B",
		Scorecard: []content.InningScore{{Inning: "A Inning 1", R: 120, W: 3, O: 20}},
	}, []content.CommentaryLine{})
	require.NoError(t, err)

	assert.Contains(t, prompt, `"inning":"A Inning 1"`)
	assert.Contains(t, prompt, "Commentary:\n[]\n")
}
