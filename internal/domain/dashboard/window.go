package dashboard

import "time"

// MonthBounds are the comparison windows for a "this month vs last
// month" card, derived from a reference instant.
type MonthBounds struct {
	FirstDayThisMonth time.Time
	FirstDayLastMonth time.Time
	LastDayLastMonth  time.Time
}

// BoundsFor computes month boundaries relative to now, in UTC. The last
// day of the previous month is the final representable instant before
// this month starts.
func BoundsFor(now time.Time) MonthBounds {
	now = now.UTC()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return MonthBounds{
		FirstDayThisMonth: thisMonth,
		FirstDayLastMonth: thisMonth.AddDate(0, -1, 0),
		LastDayLastMonth:  thisMonth.Add(-time.Nanosecond),
	}
}

// MonthWindow is a half-open [Start, End) calendar month.
type MonthWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w MonthWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Label formats the window's month as "Jan 2006".
func (w MonthWindow) Label() string {
	return w.Start.Format("Jan 2006")
}

// TrailingMonths returns the n most recent calendar months up to and
// including now's month, ordered oldest to newest.
func TrailingMonths(now time.Time, n int) []MonthWindow {
	now = now.UTC()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	windows := make([]MonthWindow, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := thisMonth.AddDate(0, -i, 0)
		windows = append(windows, MonthWindow{Start: start, End: start.AddDate(0, 1, 0)})
	}
	return windows
}
