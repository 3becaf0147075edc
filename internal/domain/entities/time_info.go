package entities

import (
	"fmt"
	"time"
)

// OperationState is the live operating status of a hospital at one instant.
// It is derived, never stored.
type OperationState string

const (
	StateOpen       OperationState = "OPEN"
	StateClosed     OperationState = "CLOSED"
	StateLunchBreak OperationState = "LUNCH_BREAK"
	StateEmergency  OperationState = "EMERGENCY"
	StateUnknown    OperationState = "UNKNOWN"
)

// DisplayText returns the user-facing label for the state.
func (s OperationState) DisplayText() string {
	switch s {
	case StateOpen:
		return "진료중"
	case StateClosed:
		return "진료종료"
	case StateLunchBreak:
		return "점심시간"
	case StateEmergency:
		return "응급진료"
	default:
		return "정보없음"
	}
}

// ClockTime is a wall-clock time of day with minute resolution.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (c ClockTime) minutes() int { return c.Hour*60 + c.Minute }

// Before reports whether c is strictly earlier than other.
func (c ClockTime) Before(other ClockTime) bool { return c.minutes() < other.minutes() }

// After reports whether c is strictly later than other.
func (c ClockTime) After(other ClockTime) bool { return c.minutes() > other.minutes() }

func (c ClockTime) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// TimeRange is a (start, end) window within one day.
type TimeRange struct {
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

// ContainsExclusive reports whether t lies strictly inside the window.
// Boundary instants are outside: a hospital whose hours end at 18:00 is
// already closed at 18:00 sharp.
func (r TimeRange) ContainsExclusive(t ClockTime) bool {
	return t.After(r.Start) && t.Before(r.End)
}

// HospitalTimeInfo is the structured weekly time profile of one hospital.
// Every window is independently optional; the upstream detail endpoint
// omits fields freely, and absence of one window must not block evaluation
// of the others.
type HospitalTimeInfo struct {
	WeekdayOpen   *ClockTime `json:"weekday_open,omitempty"`
	WeekdayClose  *ClockTime `json:"weekday_close,omitempty"`
	SaturdayOpen  *ClockTime `json:"saturday_open,omitempty"`
	SaturdayClose *ClockTime `json:"saturday_close,omitempty"`
	SundayOpen    *ClockTime `json:"sunday_open,omitempty"`
	SundayClose   *ClockTime `json:"sunday_close,omitempty"`

	WeekdayLunch  *TimeRange `json:"weekday_lunch,omitempty"`
	SaturdayLunch *TimeRange `json:"saturday_lunch,omitempty"`

	EmergencyDay        bool   `json:"emergency_day"`
	EmergencyDayPhone   string `json:"emergency_day_phone,omitempty"`
	EmergencyNight      bool   `json:"emergency_night"`
	EmergencyNightPhone string `json:"emergency_night_phone,omitempty"`

	// Closed overrides all window logic when set ("휴진").
	Closed bool `json:"closed"`
}

// StateAt derives the operating state at the given instant. The rules apply
// in order and the first match wins:
//
//  1. explicit closed override
//  2. either emergency flag
//  3. day-appropriate window missing: UNKNOWN, except Sunday where a
//     missing window means the hospital does not operate Sundays
//  4. strictly inside the window: LUNCH_BREAK if strictly inside the
//     day-appropriate lunch window, OPEN otherwise
//  5. outside the window: CLOSED
func (t *HospitalTimeInfo) StateAt(now time.Time) OperationState {
	if t == nil {
		return StateUnknown
	}
	if t.Closed {
		return StateClosed
	}
	if t.EmergencyDay || t.EmergencyNight {
		return StateEmergency
	}

	var open, close *ClockTime
	var lunch *TimeRange
	day := now.Weekday()
	switch day {
	case time.Sunday:
		open, close = t.SundayOpen, t.SundayClose
		lunch = t.WeekdayLunch
	case time.Saturday:
		open, close = t.SaturdayOpen, t.SaturdayClose
		lunch = t.SaturdayLunch
	default:
		open, close = t.WeekdayOpen, t.WeekdayClose
		lunch = t.WeekdayLunch
	}

	if open == nil || close == nil {
		if day == time.Sunday {
			return StateClosed
		}
		return StateUnknown
	}

	cur := ClockTime{Hour: now.Hour(), Minute: now.Minute()}
	window := TimeRange{Start: *open, End: *close}
	if !window.ContainsExclusive(cur) {
		return StateClosed
	}
	if lunch != nil && lunch.ContainsExclusive(cur) {
		return StateLunchBreak
	}
	return StateOpen
}
