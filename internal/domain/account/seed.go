package account

const (
	seedEmail = "alex@example.com"
	seedPhone = "+1 123 456 7890"
)

// Seed returns the demo account written on first access.
func Seed() Account {
	return Account{
		Plan:        "Premium Plan",
		MemberSince: "2023-01-15",
		Profiles: []Profile{
			{
				ID:                1,
				FirstName:         "Alex",
				MiddleName:        "J",
				LastName:          "Doe",
				Email:             seedEmail,
				Phone:             seedPhone,
				LastProfileUpdate: "2024-07-01",
				RecentActivity: []RecentActivity{
					watched(10, "Man U vs. Chelsea", "2024-07-28"),
					watched(21, "Lakers vs. Warriors", "2024-07-27"),
					watched(32, "India vs. Pakistan Highlight", "2024-07-26"),
					watched(43, "A historic hat-trick that shocked the world.", "2024-07-25"),
					watched(54, "Six sixes in an over - a rare feat!", "2024-07-24"),
				},
				NotificationSettings: settings(true, true, false, true, false),
			},
			{
				ID:                2,
				FirstName:         "Jane",
				MiddleName:        "M",
				LastName:          "Smith",
				Email:             seedEmail,
				Phone:             seedPhone,
				LastProfileUpdate: "2024-06-28",
				RecentActivity: []RecentActivity{
					watched(65, "Wimbledon Finals", "2024-07-28"),
					watched(76, "F1: Monaco GP", "2024-07-27"),
				},
				NotificationSettings: settings(true, false, true, false, true),
			},
			{
				ID:                3,
				FirstName:         "Junior",
				Email:             seedEmail,
				Phone:             seedPhone,
				LastProfileUpdate: "2024-07-10",
				RecentActivity: []RecentActivity{
					watched(87, "Highlights: Arsenal vs. Spurs", "2024-07-28"),
				},
				NotificationSettings: settings(true, true, true, true, true),
			},
		},
	}
}

func watched(id int64, title, date string) RecentActivity {
	return RecentActivity{ID: id, Type: ActivityTypeWatched, Title: title, Date: date}
}

func settings(live, upcoming, highlights, newsletter, promotions bool) *NotificationSettings {
	return &NotificationSettings{
		LiveMatchAlerts:        live,
		UpcomingMatchReminders: upcoming,
		HighlightsReady:        highlights,
		WeeklyNewsletter:       newsletter,
		Promotions:             promotions,
	}
}
