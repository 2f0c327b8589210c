package staff

import (
	"strings"
	"time"
)

// WeeklySchedule is the structured form of a doctor's free-text schedule
// fields, parsed once at the boundary. Malformed input degrades to the
// most permissive reading: unrecognized day lists mean every day, and
// unparseable times mean no time restriction.
type WeeklySchedule struct {
	days     map[time.Weekday]bool
	allDays  bool
	start    time.Duration
	end      time.Duration
	hasHours bool
}

var dayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

var clockLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "03:04 PM", "15.04"}

// ParseWeeklySchedule builds a WeeklySchedule from free-text fields.
// Day tokens that do not name a weekday are skipped; if none parse the
// schedule covers every day. A time restriction applies only when both
// the start and end strings parse.
func ParseWeeklySchedule(availableDays, startTime, endTime string) WeeklySchedule {
	ws := WeeklySchedule{days: make(map[time.Weekday]bool)}

	for _, tok := range strings.Split(availableDays, ",") {
		if d, ok := dayNames[strings.ToLower(strings.TrimSpace(tok))]; ok {
			ws.days[d] = true
		}
	}
	if len(ws.days) == 0 {
		ws.allDays = true
	}

	start, okStart := parseClock(startTime)
	end, okEnd := parseClock(endTime)
	if okStart && okEnd {
		ws.start = start
		ws.end = end
		ws.hasHours = true
	}
	return ws
}

func parseClock(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
		}
	}
	return 0, false
}

// WorksOn reports whether the schedule covers the given weekday.
func (ws WeeklySchedule) WorksOn(d time.Weekday) bool {
	return ws.allDays || ws.days[d]
}

// WithinHours reports whether the time-of-day of t falls inside the
// schedule's working hours. Schedules with no parsed hours always match.
func (ws WeeklySchedule) WithinHours(t time.Time) bool {
	if !ws.hasHours {
		return true
	}
	tod := time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
	return tod >= ws.start && tod <= ws.end
}
