package services

import "time"

// midnight strips the time of day, keeping the calendar date in t's location.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from one date to the next. Only the
// year/month/day components matter: the inputs may carry different locations
// (a DATE column scans back as midnight UTC while now() is server-local), so
// both are rebuilt in a single location before differencing.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// advanceStreak folds one completion on day today into the streak counters.
// Returns the last-challenge date to persist; a backdated today (clock skew)
// leaves the streak alone and never moves the recorded date backwards.
func advanceStreak(current, longest int, last *time.Time, today time.Time) (newCurrent, newLongest int, newLast time.Time) {
	today = midnight(today)
	if last == nil {
		newCurrent = 1
		newLongest = max(longest, 1)
		return newCurrent, newLongest, today
	}

	switch diff := daysBetween(*last, today); {
	case diff == 1:
		newCurrent = current + 1
		newLongest = max(longest, newCurrent)
	case diff > 1:
		newCurrent = 1
		newLongest = longest
	case diff == 0:
		newCurrent = current
		newLongest = longest
	default: // diff < 0
		return current, longest, midnight(*last)
	}
	return newCurrent, newLongest, today
}

// levelForPoints derives the level tier. Always recomputed from the total,
// never incremented, so it stays consistent after achievement bonuses too.
func levelForPoints(totalPoints int) int {
	return totalPoints/100 + 1
}
