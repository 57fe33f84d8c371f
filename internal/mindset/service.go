package mindset

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const leaderboardSize = 5

type service struct {
	repo Repository
	now  func() time.Time

	// Per-session profile cache. Populated on Enter, dropped on Leave,
	// updated optimistically on every write. When a store write fails the
	// cache keeps the derived values and diverges from the remote record;
	// there is no rollback.
	mu    sync.RWMutex
	cache map[string]*Profile
}

// NewService creates a new mindset session service.
func NewService(repo Repository) Service {
	return &service{
		repo:  repo,
		now:   time.Now,
		cache: make(map[string]*Profile),
	}
}

// InitProfile creates the default profile for a freshly signed-up account.
// An existing profile is left untouched.
func (s *service) InitProfile(ctx context.Context, userID, email string) error {
	if userID == "" {
		return ErrMissingUserID
	}
	err := s.repo.Create(ctx, DefaultProfile(userID, email, s.now()))
	if errors.Is(err, ErrConflict) {
		return nil
	}
	return err
}

// Enter begins a session: the profile is fetched once, cached, and the streak
// rule runs exactly once per session entry. A missing profile is repaired with
// defaults, covering accounts whose sign-up profile initialization failed.
func (s *service) Enter(ctx context.Context, userID, email string) (*ProfileResponse, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	profile, err := s.repo.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		profile = DefaultProfile(userID, email, s.now())
		if createErr := s.repo.Create(ctx, profile); createErr != nil && !errors.Is(createErr, ErrConflict) {
			return nil, fmt.Errorf("repair profile: %w", createErr)
		}
	} else if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	newStreak, newLast, changed := UpdateStreak(profile.LastActive, s.now(), profile.Streak)
	profile.Streak = newStreak
	profile.LastActive = newLast
	s.setCache(profile)

	if changed {
		update := ProfileUpdate{Streak: &newStreak, LastActive: &newLast}
		if _, err := s.repo.Update(ctx, userID, update); err != nil {
			return nil, fmt.Errorf("record streak: %w", err)
		}
	}

	return buildProfileResponse(profile, 0), nil
}

// Leave drops the cached profile for the session.
func (s *service) Leave(userID string) {
	s.mu.Lock()
	delete(s.cache, userID)
	s.mu.Unlock()
}

func (s *service) GetProfile(ctx context.Context, userID string) (*ProfileResponse, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	if cached, ok := s.cached(userID); ok {
		all, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("load standings: %w", err)
		}
		return buildProfileResponse(cached, rankOf(all, userID)), nil
	}

	var (
		profile *Profile
		all     map[string]Profile
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := s.repo.Get(gctx, userID)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})

	g.Go(func() error {
		m, err := s.repo.ListAll(gctx)
		if err != nil {
			return err
		}
		all = m
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.setCache(profile)
	return buildProfileResponse(profile, rankOf(all, userID)), nil
}

func (s *service) SaveProgress(ctx context.Context, userID string, progress int) (*ProfileResponse, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if progress < minProgress || progress > maxProgress {
		return nil, ErrInvalidProgress
	}

	profile, err := s.cachedOrFetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Progress = progress
	s.setCache(profile)

	if _, err := s.repo.Update(ctx, userID, ProfileUpdate{Progress: &progress}); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}

	return buildProfileResponse(profile, 0), nil
}

func (s *service) CompleteChallenge(ctx context.Context, userID string) (*ChallengeResult, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	profile, err := s.cachedOrFetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	completed := profile.ChallengesCompleted + 1
	badge := BadgeFor(completed)
	unlocked := badge != BadgeFor(profile.ChallengesCompleted)

	update := ProfileUpdate{ChallengesCompleted: &completed, Badge: &badge}
	profile.ChallengesCompleted = completed
	profile.Badge = badge
	if unlocked {
		history := append(append([]string(nil), profile.Badges...), badge)
		profile.Badges = history
		update.Badges = &history
	}
	s.setCache(profile)

	if _, err := s.repo.Update(ctx, userID, update); err != nil {
		return nil, fmt.Errorf("record challenge completion: %w", err)
	}

	return &ChallengeResult{
		Challenge:           RandomChallenge(),
		ChallengesCompleted: completed,
		Badge:               badge,
		BadgeUnlocked:       unlocked,
	}, nil
}

func (s *service) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}

	entries := sortedStandings(all)
	if len(entries) > leaderboardSize {
		entries = entries[:leaderboardSize]
	}
	return entries, nil
}

func (s *service) cached(userID string) (*Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.cache[userID]
	if !ok {
		return nil, false
	}
	return cloneProfile(profile), true
}

func (s *service) setCache(profile *Profile) {
	s.mu.Lock()
	s.cache[profile.UserID] = cloneProfile(profile)
	s.mu.Unlock()
}

func (s *service) cachedOrFetch(ctx context.Context, userID string) (*Profile, error) {
	if profile, ok := s.cached(userID); ok {
		return profile, nil
	}

	profile, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	s.setCache(profile)
	return cloneProfile(profile), nil
}

func cloneProfile(p *Profile) *Profile {
	c := *p
	c.Badges = append([]string(nil), p.Badges...)
	return &c
}

func buildProfileResponse(profile *Profile, rank int) *ProfileResponse {
	history := profile.Badges
	if history == nil {
		history = []string{}
	}
	return &ProfileResponse{
		UserID:              profile.UserID,
		Email:               profile.Email,
		Progress:            profile.Progress,
		Badge:               BadgeFor(profile.ChallengesCompleted),
		BadgeHistory:        history,
		Streak:              profile.Streak,
		ChallengesCompleted: profile.ChallengesCompleted,
		LastActive:          profile.LastActive,
		Rank:                rank,
	}
}

// sortedStandings orders profiles by progress descending with the user id as
// a deterministic tie breaker.
func sortedStandings(all map[string]Profile) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(all))
	for userID, p := range all {
		entries = append(entries, LeaderboardEntry{
			UserID:   userID,
			Email:    p.Email,
			Progress: p.Progress,
			Badge:    BadgeFor(p.ChallengesCompleted),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Progress != entries[j].Progress {
			return entries[i].Progress > entries[j].Progress
		}
		return entries[i].UserID < entries[j].UserID
	})

	return entries
}

func rankOf(all map[string]Profile, userID string) int {
	for i, entry := range sortedStandings(all) {
		if entry.UserID == userID {
			return i + 1
		}
	}
	return 0
}
