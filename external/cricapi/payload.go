package cricapi

import (
	"encoding/json"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/novastream/internal/platform/upstream"
	"github.com/riskibarqy/novastream/internal/usecase"
)

var gmtLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// envelope holds data raw because its shape varies by endpoint and by failure mode.
type envelope struct {
	Status string          `json:"status"`
	Reason string          `json:"reason"`
	Data   json.RawMessage `json:"data"`
}

type teamInfoItem struct {
	Name      string `json:"name"`
	ShortName string `json:"shortname"`
	Img       string `json:"img"`
}

type scoreItem struct {
	Inning string          `json:"inning"`
	R      upstream.Scalar `json:"r"`
	W      upstream.Scalar `json:"w"`
	O      upstream.Scalar `json:"o"`
}

// playerRef accepts either a plain name or a {"id","name"} object.
type playerRef string

func (p *playerRef) UnmarshalJSON(raw []byte) error {
	var obj struct {
		Name string `json:"name"`
	}
	if err := sonic.Unmarshal(raw, &obj); err == nil {
		*p = playerRef(obj.Name)
		return nil
	}
	var name upstream.Scalar
	if err := sonic.Unmarshal(raw, &name); err != nil {
		return err
	}
	*p = playerRef(name.String())
	return nil
}

type battingItem struct {
	Batsman   playerRef       `json:"batsman"`
	Dismissal string          `json:"dismissal-text"`
	R         upstream.Scalar `json:"r"`
	B         upstream.Scalar `json:"b"`
	Fours     upstream.Scalar `json:"4s"`
	Sixes     upstream.Scalar `json:"6s"`
	SR        upstream.Scalar `json:"sr"`
}

type bowlingItem struct {
	Bowler playerRef       `json:"bowler"`
	O      upstream.Scalar `json:"o"`
	M      upstream.Scalar `json:"m"`
	R      upstream.Scalar `json:"r"`
	W      upstream.Scalar `json:"w"`
	E      upstream.Scalar `json:"e"`
}

type inningItem struct {
	Inning  string          `json:"inning"`
	R       upstream.Scalar `json:"r"`
	W       upstream.Scalar `json:"w"`
	O       upstream.Scalar `json:"o"`
	Batting []battingItem   `json:"batting"`
	Bowling []bowlingItem   `json:"bowling"`
}

type matchItem struct {
	ID          upstream.Scalar `json:"id"`
	MatchID     upstream.Scalar `json:"matchId"`
	Name        string          `json:"name"`
	MatchType   string          `json:"matchType"`
	Status      string          `json:"status"`
	Series      string          `json:"series"`
	SeriesID    upstream.Scalar `json:"series_id"`
	DateTimeGMT string          `json:"dateTimeGMT"`
	Teams       []string        `json:"teams"`
	TeamInfo    []teamInfoItem  `json:"teamInfo"`
	Score       []scoreItem     `json:"score"`
	Scorecard   []inningItem    `json:"scorecard"`
}

func (m matchItem) toExternal() usecase.ExternalCricketMatch {
	id := m.ID.String()
	if id == "" {
		id = m.MatchID.String()
	}

	out := usecase.ExternalCricketMatch{
		ID:        id,
		Name:      m.Name,
		MatchType: m.MatchType,
		Status:    m.Status,
		Series:    m.Series,
		SeriesID:  m.SeriesID.String(),
		StartsAt:  parseGMT(m.DateTimeGMT),
		Teams:     m.Teams,
		TeamInfo:  make([]usecase.ExternalCricketTeam, 0, len(m.TeamInfo)),
		Score:     make([]usecase.ExternalInningScore, 0, len(m.Score)),
	}
	for _, t := range m.TeamInfo {
		out.TeamInfo = append(out.TeamInfo, usecase.ExternalCricketTeam{Name: t.Name, ShortName: t.ShortName, Img: t.Img})
	}
	totals := make(map[string]scoreItem, len(m.Score))
	for _, s := range m.Score {
		totals[s.Inning] = s
		out.Score = append(out.Score, usecase.ExternalInningScore{
			Inning: s.Inning,
			Runs:   s.R.Int(),
			Wkts:   s.W.Int(),
			Overs:  s.O.Float(),
		})
	}
	for _, inning := range m.Scorecard {
		out.Scorecard = append(out.Scorecard, inning.toExternal(totals[inning.Inning]))
	}
	return out
}

// toExternal falls back to the match score line when the innings omits its totals.
func (i inningItem) toExternal(total scoreItem) usecase.ExternalInnings {
	r, w, o := i.R, i.W, i.O
	if r == "" && w == "" && o == "" {
		r, w, o = total.R, total.W, total.O
	}

	out := usecase.ExternalInnings{
		Inning:  i.Inning,
		Runs:    r.Int(),
		Wkts:    w.Int(),
		Overs:   o.Float(),
		Batting: make([]usecase.ExternalBatting, 0, len(i.Batting)),
		Bowling: make([]usecase.ExternalBowling, 0, len(i.Bowling)),
	}
	for _, b := range i.Batting {
		out.Batting = append(out.Batting, usecase.ExternalBatting{
			Name:       string(b.Batsman),
			Dismissal:  b.Dismissal,
			Runs:       b.R.Int(),
			Balls:      b.B.Int(),
			Fours:      b.Fours.Int(),
			Sixes:      b.Sixes.Int(),
			StrikeRate: b.SR.Float(),
		})
	}
	for _, b := range i.Bowling {
		out.Bowling = append(out.Bowling, usecase.ExternalBowling{
			Name:    string(b.Bowler),
			Overs:   b.O.Float(),
			Maidens: b.M.Int(),
			Runs:    b.R.Int(),
			Wickets: b.W.Int(),
			Economy: b.E.Float(),
		})
	}
	return out
}

func mapMatches(items []matchItem) []usecase.ExternalCricketMatch {
	out := make([]usecase.ExternalCricketMatch, 0, len(items))
	for _, item := range items {
		out = append(out, item.toExternal())
	}
	return out
}

// parseGMT reads provider timestamps as UTC; unparseable values yield the zero time.
func parseGMT(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range gmtLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

type seriesItem struct {
	ID             upstream.Scalar `json:"id"`
	Name           string          `json:"name"`
	ShieldImageURL string          `json:"shieldImageUrl"`
}

type squadPlayerItem struct {
	ID           upstream.Scalar `json:"id"`
	Name         string          `json:"name"`
	Role         string          `json:"role"`
	BattingStyle string          `json:"battingStyle"`
	BowlingStyle string          `json:"bowlingStyle"`
	Country      string          `json:"country"`
	PlayerImg    string          `json:"playerImg"`
}

type squadItem struct {
	TeamName  string            `json:"teamName"`
	ShortName string            `json:"shortname"`
	Img       string            `json:"img"`
	Players   []squadPlayerItem `json:"players"`
}

type seriesPointItem struct {
	TeamName string          `json:"teamname"`
	Img      string          `json:"img"`
	Matches  upstream.Scalar `json:"matches"`
	Wins     upstream.Scalar `json:"wins"`
	Loss     upstream.Scalar `json:"loss"`
	Ties     upstream.Scalar `json:"ties"`
	NR       upstream.Scalar `json:"nr"`
	Points   upstream.Scalar `json:"points"`
}

type commentaryItem struct {
	Over       upstream.Scalar `json:"over"`
	Commentary string          `json:"commentary"`
}
