package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"
	"github.com/riskibarqy/novastream/internal/domain/account"
	"github.com/riskibarqy/novastream/internal/platform/logging"
)

// AccountService owns the persisted account record and the active profile pointer.
// Read-modify-write cycles are serialized per account key within this process.
type AccountService struct {
	store  account.Storage
	logger *logging.Logger
	now    func() time.Time

	locks          [lockStripes]sync.Mutex
	lastActivityID atomic.Int64
}

func NewAccountService(store account.Storage, logger *logging.Logger) *AccountService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AccountService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// GetAccount seeds the demo account on first access and backfills notification
// settings on records written before they existed.
func (s *AccountService) GetAccount(ctx context.Context, clientID string) (account.Account, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.GetAccount")
	defer span.End()

	keys := account.KeysFor(clientID)
	unlock := s.lock(keys.Account)
	defer unlock()

	acc, err := s.load(ctx, keys)
	if err != nil {
		return account.Account{}, err
	}
	return acc.Clone(), nil
}

// SaveAccount overwrites the stored record after validating it.
func (s *AccountService) SaveAccount(ctx context.Context, clientID string, acc account.Account) (account.Account, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.SaveAccount")
	defer span.End()

	if err := acc.Validate(); err != nil {
		return account.Account{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	acc = acc.Clone()
	acc.BackfillNotificationSettings()

	keys := account.KeysFor(clientID)
	unlock := s.lock(keys.Account)
	defer unlock()

	if err := s.persist(ctx, keys, acc); err != nil {
		return account.Account{}, err
	}
	return acc.Clone(), nil
}

// SetActiveProfileID stores the pointer as given; it is resolved lazily by ActiveProfile.
func (s *AccountService) SetActiveProfileID(ctx context.Context, clientID string, profileID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.SetActiveProfileID")
	defer span.End()

	if profileID <= 0 {
		return fmt.Errorf("%w: profile id must be > 0", ErrInvalidInput)
	}
	return s.setActive(ctx, account.KeysFor(clientID), profileID)
}

// GetActiveProfileID reports found=false when no pointer is stored or it is not a number.
func (s *AccountService) GetActiveProfileID(ctx context.Context, clientID string) (int64, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.GetActiveProfileID")
	defer span.End()

	return s.activeID(ctx, account.KeysFor(clientID))
}

// ActiveProfile resolves the pointer against the account. A missing or stale pointer
// falls back to the first profile and is rewritten.
func (s *AccountService) ActiveProfile(ctx context.Context, clientID string) (account.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.ActiveProfile")
	defer span.End()

	keys := account.KeysFor(clientID)
	unlock := s.lock(keys.Account)
	defer unlock()

	acc, err := s.load(ctx, keys)
	if err != nil {
		return account.Profile{}, err
	}
	activeID, found, err := s.activeID(ctx, keys)
	if err != nil {
		return account.Profile{}, err
	}
	if found {
		if profile, ok := acc.Profile(activeID); ok {
			return profile.Clone(), nil
		}
	}

	first := acc.Profiles[0]
	if err := s.setActive(ctx, keys, first.ID); err != nil {
		return account.Profile{}, err
	}
	s.logger.InfoContext(ctx, "active profile pointer repaired", "stale_id", activeID, "profile_id", first.ID)
	return first.Clone(), nil
}

// AddWatchedActivity records title on the active profile. It returns added=false
// without error when there is no active profile or the title is already listed.
func (s *AccountService) AddWatchedActivity(ctx context.Context, clientID, title string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.AddWatchedActivity")
	defer span.End()

	// Titles are stored and deduplicated exactly as sent.
	if strings.TrimSpace(title) == "" {
		return false, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	return s.mutateActive(ctx, clientID, func(p *account.Profile) bool {
		return p.LogWatched(account.RecentActivity{
			ID:    s.nextActivityID(),
			Type:  account.ActivityTypeWatched,
			Title: title,
			Date:  s.today(),
		})
	})
}

func (s *AccountService) RemoveWatchedActivity(ctx context.Context, clientID string, activityID int64) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.RemoveWatchedActivity")
	defer span.End()

	return s.mutateActive(ctx, clientID, func(p *account.Profile) bool {
		return p.RemoveActivity(activityID)
	})
}

// AddProfile appends a new profile and makes it active.
func (s *AccountService) AddProfile(ctx context.Context, clientID string) (account.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.AddProfile")
	defer span.End()

	keys := account.KeysFor(clientID)
	unlock := s.lock(keys.Account)
	defer unlock()

	acc, err := s.load(ctx, keys)
	if err != nil {
		return account.Profile{}, err
	}
	profile := acc.AddProfile(s.today())
	if err := s.persist(ctx, keys, acc); err != nil {
		return account.Profile{}, err
	}
	if err := s.setActive(ctx, keys, profile.ID); err != nil {
		return account.Profile{}, err
	}
	return profile.Clone(), nil
}

// RemoveProfile refuses to delete the last profile and moves the active pointer to
// the first remaining profile when it pointed at the removed one.
func (s *AccountService) RemoveProfile(ctx context.Context, clientID string, profileID int64) (account.Account, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.RemoveProfile")
	defer span.End()

	keys := account.KeysFor(clientID)
	unlock := s.lock(keys.Account)
	defer unlock()

	acc, err := s.load(ctx, keys)
	if err != nil {
		return account.Account{}, err
	}
	if err := acc.RemoveProfile(profileID); err != nil {
		switch {
		case errors.Is(err, account.ErrLastProfile):
			return account.Account{}, fmt.Errorf("%w: %v", ErrConflict, err)
		case errors.Is(err, account.ErrProfileNotFound):
			return account.Account{}, fmt.Errorf("%w: %v", ErrNotFound, err)
		default:
			return account.Account{}, err
		}
	}
	if err := s.persist(ctx, keys, acc); err != nil {
		return account.Account{}, err
	}

	activeID, found, err := s.activeID(ctx, keys)
	if err != nil {
		return account.Account{}, err
	}
	if found && activeID == profileID {
		if err := s.setActive(ctx, keys, acc.Profiles[0].ID); err != nil {
			return account.Account{}, err
		}
	}
	return acc.Clone(), nil
}

// UpdateProfile edits names and avatar; email and phone are not editable here.
func (s *AccountService) UpdateProfile(ctx context.Context, clientID string, profileID int64, update account.ProfileUpdate) (account.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.UpdateProfile")
	defer span.End()

	return s.mutateProfile(ctx, clientID, profileID, func(p *account.Profile) {
		p.Apply(update, s.today())
	})
}

func (s *AccountService) UpdateNotificationSettings(ctx context.Context, clientID string, profileID int64, settings account.NotificationSettings) (account.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.UpdateNotificationSettings")
	defer span.End()

	return s.mutateProfile(ctx, clientID, profileID, func(p *account.Profile) {
		p.NotificationSettings = &settings
	})
}

func (s *AccountService) ListPlans() []account.Plan {
	return account.Plans()
}

// ChangePlan switches the subscription by catalog name. Payment is not modeled.
func (s *AccountService) ChangePlan(ctx context.Context, clientID, planName string) (account.Account, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.ChangePlan")
	defer span.End()

	plan, ok := account.FindPlan(planName)
	if !ok {
		return account.Account{}, fmt.Errorf("%w: unknown plan %q", ErrInvalidInput, planName)
	}

	keys := account.KeysFor(clientID)
	unlock := s.lock(keys.Account)
	defer unlock()

	acc, err := s.load(ctx, keys)
	if err != nil {
		return account.Account{}, err
	}
	if acc.Plan == plan.Name {
		return acc.Clone(), nil
	}
	acc.Plan = plan.Name
	if err := s.persist(ctx, keys, acc); err != nil {
		return account.Account{}, err
	}
	return acc.Clone(), nil
}

func (s *AccountService) mutateActive(ctx context.Context, clientID string, mutate func(*account.Profile) bool) (bool, error) {
	keys := account.KeysFor(clientID)
	unlock := s.lock(keys.Account)
	defer unlock()

	acc, err := s.load(ctx, keys)
	if err != nil {
		return false, err
	}
	activeID, found, err := s.activeID(ctx, keys)
	if err != nil || !found {
		return false, err
	}
	profile, ok := acc.Profile(activeID)
	if !ok {
		return false, nil
	}
	if !mutate(profile) {
		return false, nil
	}
	if err := s.persist(ctx, keys, acc); err != nil {
		return false, err
	}
	return true, nil
}

func (s *AccountService) mutateProfile(ctx context.Context, clientID string, profileID int64, mutate func(*account.Profile)) (account.Profile, error) {
	keys := account.KeysFor(clientID)
	unlock := s.lock(keys.Account)
	defer unlock()

	acc, err := s.load(ctx, keys)
	if err != nil {
		return account.Profile{}, err
	}
	profile, ok := acc.Profile(profileID)
	if !ok {
		return account.Profile{}, fmt.Errorf("%w: profile=%d", ErrNotFound, profileID)
	}
	mutate(profile)
	if err := s.persist(ctx, keys, acc); err != nil {
		return account.Profile{}, err
	}
	return profile.Clone(), nil
}

// load must be called with the account lock held.
func (s *AccountService) load(ctx context.Context, keys account.Keys) (account.Account, error) {
	raw, found, err := s.store.Get(ctx, keys.Account)
	if err != nil {
		return account.Account{}, fmt.Errorf("%w: read account: %w", ErrDependencyUnavailable, err)
	}
	if !found {
		seed := account.Seed()
		if err := s.persist(ctx, keys, seed); err != nil {
			return account.Account{}, err
		}
		s.logger.InfoContext(ctx, "seeded demo account", "key", keys.Account)
		return seed, nil
	}

	var acc account.Account
	if err := sonic.UnmarshalString(raw, &acc); err != nil {
		return account.Account{}, fmt.Errorf("%w: decode stored account: %w", ErrDependencyUnavailable, err)
	}
	if len(acc.Profiles) == 0 {
		return account.Account{}, fmt.Errorf("%w: stored account has no profiles", ErrDependencyUnavailable)
	}
	if acc.BackfillNotificationSettings() {
		if err := s.persist(ctx, keys, acc); err != nil {
			return account.Account{}, err
		}
		s.logger.InfoContext(ctx, "backfilled notification settings", "key", keys.Account)
	}
	return acc, nil
}

func (s *AccountService) persist(ctx context.Context, keys account.Keys, acc account.Account) error {
	raw, err := sonic.MarshalString(acc)
	if err != nil {
		return fmt.Errorf("encode account: %w", err)
	}
	if err := s.store.Set(ctx, keys.Account, raw); err != nil {
		return fmt.Errorf("%w: write account: %w", ErrDependencyUnavailable, err)
	}
	return nil
}

func (s *AccountService) activeID(ctx context.Context, keys account.Keys) (int64, bool, error) {
	raw, found, err := s.store.Get(ctx, keys.ActiveProfile)
	if err != nil {
		return 0, false, fmt.Errorf("%w: read active profile: %w", ErrDependencyUnavailable, err)
	}
	if !found {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false, nil
	}
	return id, true, nil
}

func (s *AccountService) setActive(ctx context.Context, keys account.Keys, profileID int64) error {
	if err := s.store.Set(ctx, keys.ActiveProfile, strconv.FormatInt(profileID, 10)); err != nil {
		return fmt.Errorf("%w: write active profile: %w", ErrDependencyUnavailable, err)
	}
	return nil
}

// Accounts share a fixed set of mutexes so rotating client ids cannot grow
// lock state. A call never holds more than one stripe.
const lockStripes = 64

func lockStripe(key string) int {
	return int(xxhash.Sum64String(key) % lockStripes)
}

func (s *AccountService) lock(key string) func() {
	mu := &s.locks[lockStripe(key)]
	mu.Lock()
	return mu.Unlock
}

// nextActivityID is a millisecond timestamp, bumped when two entries land in the same millisecond.
func (s *AccountService) nextActivityID() int64 {
	candidate := s.now().UnixMilli()
	for {
		last := s.lastActivityID.Load()
		next := max(candidate, last+1)
		if s.lastActivityID.CompareAndSwap(last, next) {
			return next
		}
	}
}

func (s *AccountService) today() string {
	return s.now().UTC().Format(account.DateLayout)
}
