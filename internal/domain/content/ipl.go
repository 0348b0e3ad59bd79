package content

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	PlaceholderCard       = "https://placehold.co/256x144.png"
	PlaceholderHero       = "https://placehold.co/1280x720.png"
	PlaceholderTournament = "https://placehold.co/200x120.png"

	IPLSeriesMarker = "Indian Premier League"
)

var iplTeamCodes = map[string]string{
	"Chennai Super Kings":         "CSK",
	"Delhi Capitals":              "DC",
	"Punjab Kings":                "PK",
	"Kolkata Knight Riders":       "KKR",
	"Mumbai Indians":              "MI",
	"Rajasthan Royals":            "RR",
	"Royal Challengers Bangalore": "RCB",
	"Sunrisers Hyderabad":         "SH",
	"Gujarat Titans":              "GT",
	"Lucknow Super Giants":        "LSG",
}

var matchNumberRegex = regexp.MustCompile(`(\d+)(st|nd|rd|th) Match`)

// IsIPL reports whether a cricket match or series name belongs to the IPL.
func IsIPL(name string) bool {
	return strings.Contains(name, IPLSeriesMarker)
}

// IPLImageAsset derives the cricketdata.org poster URL for an IPL fixture name like
// "Sunrisers Hyderabad vs Punjab Kings, 69th Match, Indian Premier League 2024".
// Non-IPL names fall back to teamImage.
func IPLImageAsset(name, teamImage string) string {
	if name == "" || !IsIPL(name) {
		if teamImage != "" {
			return teamImage
		}
		return PlaceholderCard
	}

	teamsPart, _, _ := strings.Cut(name, ",")
	teams := strings.Split(teamsPart, " vs ")
	if len(teams) != 2 {
		return PlaceholderCard
	}

	home, okHome := iplTeamCodes[strings.TrimSpace(teams[0])]
	away, okAway := iplTeamCodes[strings.TrimSpace(teams[1])]
	if !okHome || !okAway {
		return PlaceholderCard
	}

	number := "1"
	if m := matchNumberRegex.FindStringSubmatch(name); len(m) > 1 {
		number = m[1]
	}

	return fmt.Sprintf("https://cricketdata.org/images/ipl/IPL-Match-%s-%s-vs-%s.jpg", number, home, away)
}
