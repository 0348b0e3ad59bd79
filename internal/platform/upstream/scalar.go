package upstream

import (
	"math"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// Scalar decodes a JSON number, string or null into its textual form. Providers are
// inconsistent about quoting ids and stats, so DTOs use Scalar and convert on read.
type Scalar string

func (s *Scalar) UnmarshalJSON(raw []byte) error {
	text := strings.TrimSpace(string(raw))
	switch {
	case text == "null" || text == "":
		*s = ""
	case strings.HasPrefix(text, `"`):
		var decoded string
		if err := sonic.Unmarshal(raw, &decoded); err != nil {
			return err
		}
		*s = Scalar(strings.TrimSpace(decoded))
	default:
		*s = Scalar(text)
	}
	return nil
}

// String returns the text as sent. Integral decimals such as "12.0" are trimmed
// to "12" so numeric and quoted ids compare equal; nothing goes through float64.
func (s Scalar) String() string {
	text := string(s)
	whole, frac, ok := strings.Cut(text, ".")
	if ok && frac != "" && strings.Trim(frac, "0") == "" && isIntegerLiteral(whole) {
		return whole
	}
	return text
}

func isIntegerLiteral(text string) bool {
	digits := strings.TrimPrefix(text, "-")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s Scalar) Float() float64 {
	f, err := strconv.ParseFloat(string(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func (s Scalar) Int() int {
	return int(s.Float())
}
