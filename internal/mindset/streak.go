package mindset

import "time"

// UpdateStreak applies the daily streak rule: any calendar date change since
// the last recorded activity adds exactly one to the streak, regardless of how
// many days were skipped. Streaks never reset on gaps; that is deliberate, not
// an oversight.
//
// The stored last-active time may come back from the datastore in UTC, so both
// times are compared in today's location; otherwise two logins on the same
// local calendar day would count as different dates.
func UpdateStreak(lastActive, today time.Time, streak int) (int, time.Time, bool) {
	last := truncateToDay(lastActive.In(today.Location()))
	day := truncateToDay(today)

	if last.Equal(day) {
		return streak, last, false
	}
	return streak + 1, day, true
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
