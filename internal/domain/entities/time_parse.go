package entities

import (
	"strconv"
	"strings"
	"unicode"
)

// Lunch-time descriptions meaning "no lunch break". The upstream field is
// free text; these two spellings are the ones that actually occur.
var noLunchSentinels = []string{"없음", "점심시간 없음"}

// defaultLunchWindow is substituted for any non-sentinel lunch description.
// The upstream text is not machine-parseable ("12시30분~13시30분", "오후 1시
// 까지" and worse), so the common 12:30–13:30 window is assumed. Kept for
// behavioral compatibility; see DESIGN.md before attempting real parsing.
var defaultLunchWindow = TimeRange{
	Start: ClockTime{Hour: 12, Minute: 30},
	End:   ClockTime{Hour: 13, Minute: 30},
}

// ParseClockTime parses a 4-digit 24-hour clock string such as "0900".
// All non-digit characters are stripped first, so "09:00" also parses.
// Returns nil for blank input, a stripped length other than 4, or an
// out-of-range hour or minute. Never errors; bad input means "unknown".
func ParseClockTime(raw string) *ClockTime {
	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() != 4 {
		return nil
	}

	s := digits.String()
	hour, _ := strconv.Atoi(s[:2])
	minute, _ := strconv.Atoi(s[2:])
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil
	}
	return &ClockTime{Hour: hour, Minute: minute}
}

// ParseLunchWindow interprets the free-text lunch-time field. Blank input
// and the known "no lunch break" sentinels yield nil; anything else yields
// the fixed default window.
func ParseLunchWindow(raw string) *TimeRange {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	for _, sentinel := range noLunchSentinels {
		if trimmed == sentinel {
			return nil
		}
	}
	window := defaultLunchWindow
	return &window
}
