package models

import "time"

type AttendanceStatus string

const (
	AttendanceNotStarted AttendanceStatus = "not_started"
	AttendanceCheckedIn  AttendanceStatus = "checked_in"
	AttendanceCheckedOut AttendanceStatus = "checked_out"
)

// AttendanceRecord tracks one role's presence for one calendar day.
// Invariant: CheckedOutAt is only ever set after CheckedInAt.
type AttendanceRecord struct {
	DateKey      string     `json:"date_key"`
	CheckedInAt  *time.Time `json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time `json:"checked_out_at,omitempty"`
}

// CheckIn sets the check-in time once. A second call is a no-op.
func (a *AttendanceRecord) CheckIn(now time.Time) {
	if a.CheckedInAt != nil {
		return
	}
	t := now
	a.CheckedInAt = &t
}

// CheckOut sets the check-out time. No-op unless checked in and not
// already checked out.
func (a *AttendanceRecord) CheckOut(now time.Time) {
	if a.CheckedInAt == nil || a.CheckedOutAt != nil {
		return
	}
	t := now
	a.CheckedOutAt = &t
}

// Status derives the attendance state from the record alone.
func (a *AttendanceRecord) Status() AttendanceStatus {
	switch {
	case a.CheckedInAt == nil:
		return AttendanceNotStarted
	case a.CheckedOutAt == nil:
		return AttendanceCheckedIn
	default:
		return AttendanceCheckedOut
	}
}

func (a *AttendanceRecord) clone() *AttendanceRecord {
	copied := AttendanceRecord{DateKey: a.DateKey}
	if a.CheckedInAt != nil {
		t := *a.CheckedInAt
		copied.CheckedInAt = &t
	}
	if a.CheckedOutAt != nil {
		t := *a.CheckedOutAt
		copied.CheckedOutAt = &t
	}
	return &copied
}
