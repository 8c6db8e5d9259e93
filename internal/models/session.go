// Package models defines session state structures for workflows.
package models

import (
	"strings"
	"time"
)

// PickerLayout is the fixed datetime format produced by the platform's
// datetime picker ("YYYY-MM-DDThh:mm").
const PickerLayout = "2006-01-02T15:04"

// ReminderSession is the persisted state of the reminder workflow for one
// conversation. The zero value is the documented default state: no events, no
// datetime, unconfirmed, zero shift.
type ReminderSession struct {
	// Events accumulate strictly in arrival order; never reordered or
	// deduplicated.
	Events []string `json:"events"`
	// DateTime holds the raw picker value. The timezone shift is never folded
	// into it; the shift is applied once, at fire-time computation.
	DateTime   string `json:"date_time,omitempty"`
	Status     bool   `json:"status"`
	ShiftHours int    `json:"shift_hours"`
}

// AddEvent appends text to the event sequence.
func (s *ReminderSession) AddEvent(text string) {
	s.Events = append(s.Events, text)
}

// JoinedEvents renders the accumulated events as a single reminder body.
func (s *ReminderSession) JoinedEvents() string {
	return strings.Join(s.Events, "\n - ")
}

// LocalDateTime parses the stored picker value. The result is an unzoned
// local time; callers apply the shift to normalize it.
func (s *ReminderSession) LocalDateTime() (time.Time, error) {
	return time.ParseInLocation(PickerLayout, s.DateTime, time.UTC)
}

// IsSet reports whether the reminder has been confirmed.
func (s *ReminderSession) IsSet() bool {
	return s.Status
}

// TimeConvertSession is the persisted scratch state of the timezone
// conversion workflow: only the two resolved offsets survive between the zone
// selection round-trip and the datetime picker round-trip.
type TimeConvertSession struct {
	FromHours int `json:"from_hours"`
	ToHours   int `json:"to_hours"`
}
