package mindset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const profilesCollection = "profiles"

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore profile repository.
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) Get(ctx context.Context, userID string) (*Profile, error) {
	doc, err := r.client.Collection(profilesCollection).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	var profile Profile
	if err := doc.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	normalizeProfile(&profile, userID, doc.Data())
	return &profile, nil
}

func (r *firestoreRepository) Create(ctx context.Context, profile *Profile) error {
	_, err := r.client.Collection(profilesCollection).Doc(profile.UserID).Create(ctx, profile)
	if status.Code(err) == codes.AlreadyExists {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (r *firestoreRepository) Update(ctx context.Context, userID string, update ProfileUpdate) (*Profile, error) {
	docRef := r.client.Collection(profilesCollection).Doc(userID)
	now := time.Now().UTC()

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(docRef); status.Code(err) == codes.NotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		data := map[string]interface{}{
			"user_id":    userID,
			"updated_at": now,
		}
		if update.Progress != nil {
			data["progress"] = *update.Progress
		}
		if update.Badge != nil {
			data["badge"] = *update.Badge
		}
		if update.Badges != nil {
			data["badges"] = *update.Badges
		}
		if update.Streak != nil {
			data["streak"] = *update.Streak
		}
		if update.ChallengesCompleted != nil {
			data["challenges_completed"] = *update.ChallengesCompleted
		}
		if update.LastActive != nil {
			data["last_active"] = *update.LastActive
		}

		return tx.Set(docRef, data, firestore.MergeAll)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return r.Get(ctx, userID)
}

func (r *firestoreRepository) ListAll(ctx context.Context) (map[string]Profile, error) {
	iter := r.client.Collection(profilesCollection).Documents(ctx)
	defer iter.Stop()

	all := make(map[string]Profile)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list profiles: %w", err)
		}

		var profile Profile
		if err := doc.DataTo(&profile); err != nil {
			continue
		}
		normalizeProfile(&profile, doc.Ref.ID, doc.Data())
		all[doc.Ref.ID] = profile
	}
	return all, nil
}

// normalizeProfile fills in defaults for fields absent from the stored
// document so older records read back with the documented baseline.
func normalizeProfile(profile *Profile, userID string, raw map[string]interface{}) {
	profile.UserID = userID
	if _, ok := raw["progress"]; !ok {
		profile.Progress = DefaultProgress
	}
	if profile.Badges == nil {
		profile.Badges = []string{}
	}
	if profile.Badge == "" {
		profile.Badge = BadgeFor(profile.ChallengesCompleted)
	}
	if profile.LastActive.IsZero() {
		profile.LastActive = truncateToDay(time.Now().UTC())
	}
}
