package utils

import (
	"fmt"
	"time"
)

// FormatDate renders a canonical YYYY-MM-DD date for display, e.g.
// "Wednesday, February 25, 2026". Unparseable input is returned unchanged.
func FormatDate(date string) string {
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return parsed.Format("Monday, January 02, 2006")
}

// FormatTime renders an HH:MM time for display, e.g. "2:00 PM".
func FormatTime(clock string) string {
	parsed, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return clock
	}
	return parsed.Format("3:04 PM")
}

// FormatTimeRange renders "2:00 PM to 5:00 PM".
func FormatTimeRange(start, end string) string {
	return fmt.Sprintf("%s to %s", FormatTime(start), FormatTime(end))
}

// FormatDateTimeRange renders the full human-readable slot description used
// in confirmation summaries.
func FormatDateTimeRange(date, start, end string) string {
	return fmt.Sprintf("%s from %s", FormatDate(date), FormatTimeRange(start, end))
}
