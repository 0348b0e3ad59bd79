package content

// LiveMatch is a match currently in progress, normalized across providers.
type LiveMatch struct {
	ID          string `json:"id"`
	Sport       string `json:"sport"`
	Title       string `json:"title"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Hint        string `json:"hint"`
}

// Highlight is a live match relabeled for the highlights rail.
type Highlight LiveMatch

// UpcomingMatch carries no id, so it is not deep-linkable.
type UpcomingMatch struct {
	Teams string `json:"teams"`
	Sport string `json:"sport"`
}

type Slide struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsLive      bool   `json:"isLive"`
	Category    string `json:"category"`
	Hint        string `json:"hint"`
}

type Tournament struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Hint        string `json:"hint"`
	IsCricket   bool   `json:"isCricket,omitempty"`
	IsHighlight bool   `json:"isHighlight,omitempty"`
}

// DetailSource tells which lookup produced a MatchDetail.
type DetailSource string

const (
	DetailSourceCricket  DetailSource = "cricket"
	DetailSourceFootball DetailSource = "football"
	DetailSourceFallback DetailSource = "fallback"
)

type MatchDetail struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Image         string        `json:"image"`
	Hint          string        `json:"hint"`
	IsLive        bool          `json:"isLive"`
	Category      string        `json:"category"`
	Tournament    string        `json:"tournament,omitempty"`
	SeriesID      string        `json:"seriesId,omitempty"`
	Scorecard     []InningScore `json:"scorecard"`
	FullScorecard []Innings     `json:"fullScorecard"`
	Source        DetailSource  `json:"source"`
}

// InningScore is the short per-innings summary line.
type InningScore struct {
	Inning string  `json:"inning"`
	R      int     `json:"r"`
	W      int     `json:"w"`
	O      float64 `json:"o"`
	Flag   string  `json:"flag,omitempty"`
}

type Innings struct {
	TeamName string       `json:"teamName"`
	TeamFlag string       `json:"teamFlag,omitempty"`
	Score    int          `json:"score"`
	Wickets  int          `json:"wickets"`
	Overs    float64      `json:"overs"`
	Batting  []BattingRow `json:"batting"`
	Bowling  []BowlingRow `json:"bowling"`
}

type BattingRow struct {
	Name      string  `json:"name"`
	OutStatus string  `json:"outStatus"`
	R         int     `json:"r"`
	B         int     `json:"b"`
	Fours     int     `json:"fours"`
	Sixes     int     `json:"sixes"`
	SR        float64 `json:"sr"`
}

type BowlingRow struct {
	Name string  `json:"name"`
	O    float64 `json:"o"`
	M    int     `json:"m"`
	R    int     `json:"r"`
	W    int     `json:"w"`
	Econ float64 `json:"econ"`
}

type SquadTeam struct {
	TeamName  string        `json:"teamName"`
	Shortname string        `json:"shortname"`
	Img       string        `json:"img"`
	Players   []SquadPlayer `json:"players"`
}

type SquadPlayer struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	BattingStyle string `json:"battingStyle"`
	BowlingStyle string `json:"bowlingStyle,omitempty"`
	Country      string `json:"country"`
	PlayerImg    string `json:"playerImg"`
}

type SeriesPoint struct {
	TeamName string `json:"teamName"`
	Img      string `json:"img"`
	Matches  int    `json:"matches"`
	Wins     int    `json:"wins"`
	Loss     int    `json:"loss"`
	Ties     int    `json:"ties"`
	NR       int    `json:"nr"`
	Points   int    `json:"points"`
}

type CommentaryLine struct {
	Over    string `json:"over"`
	Comment string `json:"comment"`
}
