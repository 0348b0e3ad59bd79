package account

import (
	"fmt"
	"slices"

	crerr "github.com/cockroachdb/errors"
)

const (
	ActivityTypeWatched = "Watched"
	MaxRecentActivity   = 50
	DateLayout          = "2006-01-02"
	NewProfileFirstName = "New Profile"
)

var (
	ErrLastProfile     = crerr.New("cannot remove the last profile")
	ErrProfileNotFound = crerr.New("profile not found")
	ErrInvalidAccount  = crerr.New("invalid account")
)

type RecentActivity struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

type NotificationSettings struct {
	LiveMatchAlerts        bool `json:"liveMatchAlerts"`
	UpcomingMatchReminders bool `json:"upcomingMatchReminders"`
	HighlightsReady        bool `json:"highlightsReady"`
	WeeklyNewsletter       bool `json:"weeklyNewsletter"`
	Promotions             bool `json:"promotions"`
}

// Profile is one viewer under the account. NotificationSettings is a pointer so
// records written before settings existed can be detected and backfilled.
type Profile struct {
	ID                   int64                 `json:"id"`
	FirstName            string                `json:"firstName"`
	MiddleName           string                `json:"middleName"`
	LastName             string                `json:"lastName"`
	Email                string                `json:"email"`
	Phone                string                `json:"phone"`
	Avatar               string                `json:"avatar"`
	LastProfileUpdate    string                `json:"lastProfileUpdate"`
	RecentActivity       []RecentActivity      `json:"recentActivity"`
	NotificationSettings *NotificationSettings `json:"notificationSettings,omitempty"`
}

type Account struct {
	Plan        string    `json:"plan"`
	MemberSince string    `json:"memberSince"`
	Profiles    []Profile `json:"profiles"`
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		LiveMatchAlerts:        true,
		UpcomingMatchReminders: true,
		HighlightsReady:        false,
		WeeklyNewsletter:       true,
		Promotions:             false,
	}
}

func newProfileNotificationSettings() NotificationSettings {
	return NotificationSettings{
		LiveMatchAlerts:        true,
		UpcomingMatchReminders: true,
		HighlightsReady:        true,
		WeeklyNewsletter:       true,
		Promotions:             false,
	}
}

// Validate checks the invariants every persisted account must hold.
func (a Account) Validate() error {
	if len(a.Profiles) == 0 {
		return fmt.Errorf("%w: at least one profile is required", ErrInvalidAccount)
	}
	seen := make(map[int64]struct{}, len(a.Profiles))
	for _, p := range a.Profiles {
		if p.ID <= 0 {
			return fmt.Errorf("%w: profile id must be > 0, got %d", ErrInvalidAccount, p.ID)
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("%w: duplicate profile id %d", ErrInvalidAccount, p.ID)
		}
		seen[p.ID] = struct{}{}
		if len(p.RecentActivity) > MaxRecentActivity {
			return fmt.Errorf("%w: profile %d has more than %d activities", ErrInvalidAccount, p.ID, MaxRecentActivity)
		}
	}
	return nil
}

// Clone returns a deep copy so callers never share slices with a cached record.
func (a Account) Clone() Account {
	out := a
	out.Profiles = make([]Profile, len(a.Profiles))
	for i, p := range a.Profiles {
		out.Profiles[i] = p.Clone()
	}
	return out
}

func (p Profile) Clone() Profile {
	out := p
	out.RecentActivity = slices.Clone(p.RecentActivity)
	if out.RecentActivity == nil {
		out.RecentActivity = []RecentActivity{}
	}
	if p.NotificationSettings != nil {
		settings := *p.NotificationSettings
		out.NotificationSettings = &settings
	}
	return out
}

// BackfillNotificationSettings fills in default settings for profiles stored without
// them and reports whether anything changed.
func (a *Account) BackfillNotificationSettings() bool {
	changed := false
	for i := range a.Profiles {
		if a.Profiles[i].NotificationSettings == nil {
			settings := DefaultNotificationSettings()
			a.Profiles[i].NotificationSettings = &settings
			changed = true
		}
		if a.Profiles[i].RecentActivity == nil {
			a.Profiles[i].RecentActivity = []RecentActivity{}
		}
	}
	return changed
}

func (a *Account) Profile(id int64) (*Profile, bool) {
	for i := range a.Profiles {
		if a.Profiles[i].ID == id {
			return &a.Profiles[i], true
		}
	}
	return nil, false
}

func (a Account) NextProfileID() int64 {
	var maxID int64
	for _, p := range a.Profiles {
		maxID = max(maxID, p.ID)
	}
	return maxID + 1
}

// AddProfile appends a blank profile that inherits contact details from the first one.
func (a *Account) AddProfile(today string) Profile {
	id := a.NextProfileID()
	email := fmt.Sprintf("new%d@example.com", id)
	phone := ""
	if len(a.Profiles) > 0 {
		email = a.Profiles[0].Email
		phone = a.Profiles[0].Phone
	}

	settings := newProfileNotificationSettings()
	profile := Profile{
		ID:                   id,
		FirstName:            NewProfileFirstName,
		Email:                email,
		Phone:                phone,
		LastProfileUpdate:    today,
		RecentActivity:       []RecentActivity{},
		NotificationSettings: &settings,
	}
	a.Profiles = append(a.Profiles, profile)
	return profile
}

func (a *Account) RemoveProfile(id int64) error {
	if len(a.Profiles) <= 1 {
		return ErrLastProfile
	}
	idx := slices.IndexFunc(a.Profiles, func(p Profile) bool { return p.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: id=%d", ErrProfileNotFound, id)
	}
	a.Profiles = slices.Delete(a.Profiles, idx, idx+1)
	return nil
}

// LogWatched prepends a watched entry unless the exact title is already present.
// The list is capped at MaxRecentActivity, dropping the oldest entries.
func (p *Profile) LogWatched(entry RecentActivity) bool {
	if p.HasWatched(entry.Title) {
		return false
	}
	p.RecentActivity = append([]RecentActivity{entry}, p.RecentActivity...)
	if len(p.RecentActivity) > MaxRecentActivity {
		p.RecentActivity = p.RecentActivity[:MaxRecentActivity]
	}
	return true
}

func (p Profile) HasWatched(title string) bool {
	return slices.ContainsFunc(p.RecentActivity, func(a RecentActivity) bool { return a.Title == title })
}

func (p *Profile) RemoveActivity(id int64) bool {
	before := len(p.RecentActivity)
	p.RecentActivity = slices.DeleteFunc(p.RecentActivity, func(a RecentActivity) bool { return a.ID == id })
	return len(p.RecentActivity) != before
}

// ProfileUpdate carries the editable name and avatar fields. Nil fields are left alone.
type ProfileUpdate struct {
	FirstName  *string
	MiddleName *string
	LastName   *string
	Avatar     *string
}

func (p *Profile) Apply(update ProfileUpdate, today string) {
	if update.FirstName != nil {
		p.FirstName = *update.FirstName
	}
	if update.MiddleName != nil {
		p.MiddleName = *update.MiddleName
	}
	if update.LastName != nil {
		p.LastName = *update.LastName
	}
	if update.Avatar != nil {
		p.Avatar = *update.Avatar
	}
	p.LastProfileUpdate = today
}
