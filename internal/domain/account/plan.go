package account

import "strings"

type Plan struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	PriceString string   `json:"priceString"`
	Features    []string `json:"features"`
}

var planCatalog = []Plan{
	{Name: "Free", Price: 0, PriceString: "$0/mo", Features: []string{"Basic access", "Limited streams", "Ad-supported"}},
	{Name: "Pro", Price: 9.99, PriceString: "$9.99/mo", Features: []string{"Full access", "Ad-free streaming", "HD quality"}},
	{Name: "Enterprise", Price: 19.99, PriceString: "$19.99/mo", Features: []string{"Multi-user access", "4K quality", "Priority support"}},
}

func Plans() []Plan {
	out := make([]Plan, len(planCatalog))
	for i, p := range planCatalog {
		p.Features = append([]string(nil), p.Features...)
		out[i] = p
	}
	return out
}

// FindPlan matches plan names case-insensitively.
func FindPlan(name string) (Plan, bool) {
	name = strings.TrimSpace(name)
	for _, p := range Plans() {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Plan{}, false
}
