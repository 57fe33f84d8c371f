package mindset

import (
	"context"
	"time"
)

const (
	// DefaultProgress is the belief score assigned to a freshly created profile.
	DefaultProgress = 50

	minProgress = 0
	maxProgress = 100
)

// Profile represents the persisted profile document stored in Firestore.
type Profile struct {
	UserID              string    `json:"user_id" firestore:"user_id"`
	Email               string    `json:"email" firestore:"email"`
	Progress            int       `json:"progress" firestore:"progress"`
	Badge               string    `json:"badge" firestore:"badge"`
	Badges              []string  `json:"badges" firestore:"badges"`
	Streak              int       `json:"streak" firestore:"streak"`
	ChallengesCompleted int       `json:"challenges_completed" firestore:"challenges_completed"`
	LastActive          time.Time `json:"last_active" firestore:"last_active"`
	CreatedAt           time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" firestore:"updated_at"`
}

// ProfileUpdate describes a partial profile write. Only non-nil fields are persisted.
type ProfileUpdate struct {
	Progress            *int
	Badge               *string
	Badges              *[]string
	Streak              *int
	ChallengesCompleted *int
	LastActive          *time.Time
}

// ProfileResponse combines persisted profile fields with derived values.
// Badge is always recomputed from the completion counter; the stored field
// is treated as a display hint only.
type ProfileResponse struct {
	UserID              string    `json:"user_id"`
	Email               string    `json:"email"`
	Progress            int       `json:"progress"`
	Badge               string    `json:"badge"`
	BadgeHistory        []string  `json:"badge_history"`
	Streak              int       `json:"streak"`
	ChallengesCompleted int       `json:"challenges_completed"`
	LastActive          time.Time `json:"last_active"`
	Rank                int       `json:"rank,omitempty"`
}

// ChallengeResult is returned when a user completes a challenge.
type ChallengeResult struct {
	Challenge           string `json:"challenge"`
	ChallengesCompleted int    `json:"challenges_completed"`
	Badge               string `json:"badge"`
	BadgeUnlocked       bool   `json:"badge_unlocked"`
}

// LeaderboardEntry is a single row of the progress leaderboard.
type LeaderboardEntry struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Progress int    `json:"progress"`
	Badge    string `json:"badge"`
}

// DefaultProfile returns the profile created at sign-up.
func DefaultProfile(userID, email string, today time.Time) *Profile {
	day := truncateToDay(today)
	return &Profile{
		UserID:              userID,
		Email:               email,
		Progress:            DefaultProgress,
		Badge:               BadgeFor(0),
		Badges:              []string{},
		Streak:              0,
		ChallengesCompleted: 0,
		LastActive:          day,
		CreatedAt:           today,
		UpdatedAt:           today,
	}
}

// Repository defines the interface for profile data access.
type Repository interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	Create(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, userID string, update ProfileUpdate) (*Profile, error)
	ListAll(ctx context.Context) (map[string]Profile, error)
}

// Service orchestrates a user session over the profile store.
type Service interface {
	Enter(ctx context.Context, userID, email string) (*ProfileResponse, error)
	Leave(userID string)
	InitProfile(ctx context.Context, userID, email string) error
	GetProfile(ctx context.Context, userID string) (*ProfileResponse, error)
	SaveProgress(ctx context.Context, userID string, progress int) (*ProfileResponse, error)
	CompleteChallenge(ctx context.Context, userID string) (*ChallengeResult, error)
	Leaderboard(ctx context.Context) ([]LeaderboardEntry, error)
}
