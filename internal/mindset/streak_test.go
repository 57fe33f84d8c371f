package mindset

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUpdateStreakSameDayIsIdempotent(t *testing.T) {
	today := day(2026, time.March, 10)

	streak, last, changed := UpdateStreak(today, today, 7)
	if changed {
		t.Fatalf("expected no change on same-day call")
	}
	if streak != 7 || !last.Equal(today) {
		t.Fatalf("got streak=%d last=%v, want streak=7 last=%v", streak, last, today)
	}
}

func TestUpdateStreakIncrementsOnNewDay(t *testing.T) {
	yesterday := day(2026, time.March, 9)
	today := day(2026, time.March, 10)

	streak, last, changed := UpdateStreak(yesterday, today, 3)
	if !changed {
		t.Fatalf("expected change when the date moved forward")
	}
	if streak != 4 || !last.Equal(today) {
		t.Fatalf("got streak=%d last=%v, want streak=4 last=%v", streak, last, today)
	}
}

func TestUpdateStreakSingleIncrementRegardlessOfGap(t *testing.T) {
	monthAgo := day(2026, time.February, 8)
	today := day(2026, time.March, 10)

	streak, last, changed := UpdateStreak(monthAgo, today, 12)
	if !changed {
		t.Fatalf("expected change after a 30 day gap")
	}
	// Skipped days never reset the streak and never award more than one.
	if streak != 13 || !last.Equal(today) {
		t.Fatalf("got streak=%d last=%v, want streak=13 last=%v", streak, last, today)
	}
}

func TestUpdateStreakSameLocalDayAcrossZones(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)

	// last_active round-trips from the datastore in UTC; a second login later
	// on the same local calendar day must not increment.
	firstLogin := truncateToDay(time.Date(2026, time.March, 10, 1, 0, 0, 0, loc)).UTC()
	secondLogin := time.Date(2026, time.March, 10, 18, 30, 0, 0, loc)

	streak, _, changed := UpdateStreak(firstLogin, secondLogin, 4)
	if changed || streak != 4 {
		t.Fatalf("same local calendar day incremented the streak: streak=%d changed=%v", streak, changed)
	}
}

func TestUpdateStreakNewLocalDayAcrossZones(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)

	yesterday := truncateToDay(time.Date(2026, time.March, 9, 22, 0, 0, 0, loc)).UTC()
	today := time.Date(2026, time.March, 10, 8, 0, 0, 0, loc)

	streak, last, changed := UpdateStreak(yesterday, today, 4)
	if !changed || streak != 5 {
		t.Fatalf("expected increment on new local day, got streak=%d changed=%v", streak, changed)
	}
	if !last.Equal(truncateToDay(today)) {
		t.Fatalf("last active not moved to today's date: %v", last)
	}
}

func TestUpdateStreakIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2026, time.March, 10, 6, 15, 0, 0, time.UTC)
	evening := time.Date(2026, time.March, 10, 23, 45, 0, 0, time.UTC)

	streak, _, changed := UpdateStreak(morning, evening, 5)
	if changed || streak != 5 {
		t.Fatalf("same calendar date must not change the streak, got streak=%d changed=%v", streak, changed)
	}
}
