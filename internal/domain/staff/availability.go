package staff

import "time"

// Availability labels derived for a doctor at a point in time.
//
// StatusOnBreak appears in availability summaries for parity with the
// profile UI but is never produced by ResolveStatus; its count is
// always zero.
const (
	StatusOff       = "off"
	StatusAvailable = "available"
	StatusInSession = "in_session"
	StatusOnBreak   = "on_break"
)

// ResolveStatus derives a doctor's availability label from their parsed
// schedule, the reference time, and the number of appointments scheduled
// for that day. Rules apply in order: outside working days or hours is
// Off, a non-empty day of appointments is InSession, otherwise Available.
func ResolveStatus(ws WeeklySchedule, now time.Time, todaysAppointments int) string {
	if !ws.WorksOn(now.Weekday()) {
		return StatusOff
	}
	if !ws.WithinHours(now) {
		return StatusOff
	}
	if todaysAppointments > 0 {
		return StatusInSession
	}
	return StatusAvailable
}
