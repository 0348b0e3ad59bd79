package apisports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/novastream/internal/platform/upstream"
)

type rejectable interface {
	rejection() string
}

// envelope is the common API-Sports response. Errors is an empty list on success and
// an object keyed by field on failure, even with HTTP 200.
type envelope[T any] struct {
	Errors   any `json:"errors"`
	Response []T `json:"response"`
}

func (e *envelope[T]) rejection() string {
	switch v := e.Errors.(type) {
	case map[string]any:
		if len(v) == 0 {
			return ""
		}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", key, v[key]))
		}
		return strings.Join(parts, "; ")
	case []any:
		if len(v) == 0 {
			return ""
		}
		return fmt.Sprint(v...)
	default:
		return ""
	}
}

type statusLong struct {
	Long string `json:"long"`
}

type teamRef struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// fixtureItem covers both football fixtures and the "games" shape of the other sports.
type fixtureItem struct {
	Fixture *struct {
		ID     upstream.Scalar `json:"id"`
		Status statusLong      `json:"status"`
	} `json:"fixture"`
	ID     upstream.Scalar `json:"id"`
	Status statusLong      `json:"status"`
	League struct {
		Name string `json:"name"`
	} `json:"league"`
	Teams struct {
		Home teamRef `json:"home"`
		Away teamRef `json:"away"`
	} `json:"teams"`
}

type raceItem struct {
	ID   upstream.Scalar `json:"id"`
	Race struct {
		Name string `json:"name"`
	} `json:"race"`
	Competition struct {
		Name string `json:"name"`
	} `json:"competition"`
	Status upstream.Scalar `json:"status"`
}

type leagueItem struct {
	League struct {
		ID   upstream.Scalar `json:"id"`
		Name string          `json:"name"`
		Logo string          `json:"logo"`
	} `json:"league"`
	Country struct {
		Name string `json:"name"`
	} `json:"country"`
}
