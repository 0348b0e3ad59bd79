package usecase

import (
	"context"
	"fmt"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/novastream/internal/domain/content"
	"github.com/valyala/bytebufferpool"
)

// MatchSummarizer turns a rendered prompt into prose.
type MatchSummarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

type matchDataSource interface {
	GetMatchDetails(ctx context.Context, matchID string) content.MatchDetail
	FetchCommentary(ctx context.Context, matchID string) content.Result[content.CommentaryLine]
}

type MatchSummary struct {
	MatchID string `json:"matchId"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

type SummaryService struct {
	matches    matchDataSource
	summarizer MatchSummarizer
}

// NewSummaryService accepts a nil summarizer; SummarizeMatch then reports the
// dependency as unavailable.
func NewSummaryService(matches matchDataSource, summarizer MatchSummarizer) *SummaryService {
	return &SummaryService{matches: matches, summarizer: summarizer}
}

func (s *SummaryService) Enabled() bool {
	return s != nil && s.summarizer != nil
}

func (s *SummaryService) SummarizeMatch(ctx context.Context, matchID string) (MatchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SummaryService.SummarizeMatch", matchAttr(matchID))
	defer span.End()

	if !s.Enabled() {
		return MatchSummary{}, fmt.Errorf("%w: match summaries are not configured", ErrDependencyUnavailable)
	}
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return MatchSummary{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	detail := s.matches.GetMatchDetails(ctx, matchID)
	if detail.Scorecard == nil {
		return MatchSummary{}, fmt.Errorf("%w: summaries need a match with a scorecard", ErrInvalidInput)
	}
	commentary := s.matches.FetchCommentary(ctx, detail.ID)

	prompt, err := renderSummaryPrompt(detail, commentary.Items)
	if err != nil {
		return MatchSummary{}, err
	}

	summary, err := s.summarizer.Summarize(ctx, prompt)
	if err != nil {
		return MatchSummary{}, fmt.Errorf("%w: summarize match=%s: %v", ErrDependencyUnavailable, matchID, err)
	}

	return MatchSummary{MatchID: detail.ID, Title: detail.Title, Summary: summary}, nil
}

func renderSummaryPrompt(detail content.MatchDetail, commentary []content.CommentaryLine) (string, error) {
	var scorecard any = detail.FullScorecard
	if len(detail.FullScorecard) == 0 {
		scorecard = detail.Scorecard
	}
	scorecardJSON, err := sonic.MarshalString(scorecard)
	if err != nil {
		return "", fmt.Errorf("encode scorecard: %w", err)
	}
	commentaryJSON, err := sonic.MarshalString(commentary)
	if err != nil {
		return "", fmt.Errorf("encode commentary: %w", err)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("You are a world-class sports journalist. Your task is to write a compelling summary of a sports match based on the data provided.\n\n")
	_, _ = buf.WriteString(`Analyze the following information for the match titled "`)
	_, _ = buf.WriteString(detail.Title)
	_, _ = buf.WriteString("\":\n")
	_, _ = buf.WriteString("- The scorecard data to understand the scores, key player statistics (runs, wickets, etc.).\n")
	_, _ = buf.WriteString("- The commentary to identify pivotal moments, turning points, and exciting plays.\n\n")
	_, _ = buf.WriteString("Based on your analysis, generate a summary that captures the narrative of the game. ")
	_, _ = buf.WriteString("Mention the standout players, the final result, and what made the match exciting. ")
	_, _ = buf.WriteString("The tone should be engaging and informative, as if for a news article. ")
	_, _ = buf.WriteString("Keep it to 2-3 paragraphs.\n\n")
	_, _ = buf.WriteString("Match Data:\nScorecard:\n")
	_, _ = buf.WriteString(scorecardJSON)
	_, _ = buf.WriteString("\n\nCommentary:\n")
	_, _ = buf.WriteString(commentaryJSON)
	_ = buf.WriteByte('\n')

	return buf.String(), nil
}
