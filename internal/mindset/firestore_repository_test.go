package mindset

import (
	"testing"
	"time"
)

func TestNormalizeProfileFillsMissingFields(t *testing.T) {
	// A legacy document with none of the profile fields reads back with the
	// documented baseline.
	var profile Profile
	normalizeProfile(&profile, "user-1", map[string]interface{}{})

	if profile.UserID != "user-1" {
		t.Fatalf("user id not propagated: %q", profile.UserID)
	}
	if profile.Progress != DefaultProgress {
		t.Fatalf("missing progress should default to %d, got %d", DefaultProgress, profile.Progress)
	}
	if profile.Badges == nil || len(profile.Badges) != 0 {
		t.Fatalf("missing badges should default to an empty history: %v", profile.Badges)
	}
	if profile.Badge != BadgeBeginner {
		t.Fatalf("missing badge should derive from the counter, got %q", profile.Badge)
	}
	if profile.LastActive.IsZero() {
		t.Fatalf("missing last_active should default to today")
	}
}

func TestNormalizeProfileKeepsStoredValues(t *testing.T) {
	lastActive := day(2026, time.March, 9)
	profile := Profile{
		Progress:            0,
		Badge:               BadgeExplorer,
		Badges:              []string{BadgeExplorer},
		ChallengesCompleted: 7,
		LastActive:          lastActive,
	}
	raw := map[string]interface{}{
		"progress":    int64(0),
		"badge":       BadgeExplorer,
		"badges":      []interface{}{BadgeExplorer},
		"last_active": lastActive,
	}

	normalizeProfile(&profile, "user-2", raw)

	// A stored zero progress is a real value, not a missing field.
	if profile.Progress != 0 {
		t.Fatalf("stored progress 0 must survive normalization, got %d", profile.Progress)
	}
	if profile.Badge != BadgeExplorer || len(profile.Badges) != 1 {
		t.Fatalf("stored badge state rewritten: %q %v", profile.Badge, profile.Badges)
	}
	if !profile.LastActive.Equal(lastActive) {
		t.Fatalf("stored last_active rewritten: %v", profile.LastActive)
	}
}

func TestNormalizeProfileDerivesBadgeFromCounter(t *testing.T) {
	profile := Profile{ChallengesCompleted: 30}
	normalizeProfile(&profile, "user-3", map[string]interface{}{
		"challenges_completed": int64(30),
	})

	if profile.Badge != BadgeGrandmaster {
		t.Fatalf("expected badge derived from 30 completions, got %q", profile.Badge)
	}
}
