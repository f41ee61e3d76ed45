package pkg

import "time"

// StartOfDay truncates t to midnight in the given location.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SameCalendarDay reports whether a and b fall on the same
// year/month/day in the given location, ignoring time of day.
func SameCalendarDay(a, b time.Time, loc *time.Location) bool {
	a, b = a.In(loc), b.In(loc)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysAgo returns midnight of the day `days` before t, in the given location.
func DaysAgo(t time.Time, days int, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, -days)
}
