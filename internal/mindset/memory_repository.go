package mindset

import (
	"context"
	"sync"
	"time"
)

// memoryRepository implements Repository using in-memory storage.
type memoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewMemoryRepository creates a new in-memory repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		profiles: make(map[string]Profile),
	}
}

func (r *memoryRepository) Get(ctx context.Context, userID string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, exists := r.profiles[userID]
	if !exists {
		return nil, ErrNotFound
	}
	return cloneProfile(&profile), nil
}

func (r *memoryRepository) Create(ctx context.Context, profile *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[profile.UserID]; exists {
		return ErrConflict
	}
	r.profiles[profile.UserID] = *cloneProfile(profile)
	return nil
}

func (r *memoryRepository) Update(ctx context.Context, userID string, update ProfileUpdate) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, exists := r.profiles[userID]
	if !exists {
		return nil, ErrNotFound
	}

	if update.Progress != nil {
		profile.Progress = *update.Progress
	}
	if update.Badge != nil {
		profile.Badge = *update.Badge
	}
	if update.Badges != nil {
		profile.Badges = append([]string(nil), *update.Badges...)
	}
	if update.Streak != nil {
		profile.Streak = *update.Streak
	}
	if update.ChallengesCompleted != nil {
		profile.ChallengesCompleted = *update.ChallengesCompleted
	}
	if update.LastActive != nil {
		profile.LastActive = *update.LastActive
	}
	profile.UpdatedAt = time.Now().UTC()

	r.profiles[userID] = profile
	return cloneProfile(&profile), nil
}

func (r *memoryRepository) ListAll(ctx context.Context) (map[string]Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make(map[string]Profile, len(r.profiles))
	for userID, profile := range r.profiles {
		all[userID] = *cloneProfile(&profile)
	}
	return all, nil
}
