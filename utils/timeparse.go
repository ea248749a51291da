package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Canonical layouts used across the booking pipeline.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	canonicalDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	canonicalTimeRe = regexp.MustCompile(`^\d{2}:\d{2}`)
	clockRe         = regexp.MustCompile(`(\d{1,2}):?(\d{2})?\s*(am|pm)?`)
)

// IsCanonicalDate reports whether s already starts with a YYYY-MM-DD date.
func IsCanonicalDate(s string) bool {
	return canonicalDateRe.MatchString(s)
}

// IsCanonicalTime reports whether s already starts with an HH:MM time.
func IsCanonicalTime(s string) bool {
	return canonicalTimeRe.MatchString(s)
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"01/02/06",
	"January 2 2006",
	"January 2, 2006",
	"January 2",
	"Jan 2",
	"Jan 2 2006",
}

// ParseDate resolves a natural-language or formatted date phrase against a
// reference time and returns it in canonical YYYY-MM-DD form. "Next Monday"
// style weekday references always resolve to a future day. Unrecognized input
// falls back to tomorrow.
func ParseDate(s string, now time.Time) string {
	s = strings.ToLower(strings.TrimSpace(s))

	if strings.Contains(s, "today") {
		return now.Format(DateLayout)
	}
	if strings.Contains(s, "tomorrow") {
		return now.AddDate(0, 0, 1).Format(DateLayout)
	}

	for name, day := range weekdayNames {
		if strings.Contains(s, name) {
			diff := (int(day) - int(now.Weekday()) + 7) % 7
			if diff == 0 {
				diff = 7
			}
			return now.AddDate(0, 0, diff).Format(DateLayout)
		}
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			if parsed.Year() == 0 {
				parsed = parsed.AddDate(now.Year(), 0, 0)
			}
			return parsed.Format(DateLayout)
		}
	}

	return now.AddDate(0, 0, 1).Format(DateLayout)
}

// ParseClockTime normalizes a spoken or typed time phrase to HH:MM (24h).
// Bare hours without an am/pm marker lean afternoon for small values, matching
// how people phrase meeting times ("at 4" almost always means 16:00).
func ParseClockTime(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	if strings.Contains(s, "noon") || strings.Contains(s, "12 pm") || strings.Contains(s, "12pm") {
		return "12:00"
	}
	if strings.Contains(s, "midnight") || strings.Contains(s, "12 am") || strings.Contains(s, "12am") {
		return "00:00"
	}

	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return "10:00"
	}

	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}

	switch {
	case m[3] == "pm" && hour != 12:
		hour += 12
	case m[3] == "am" && hour == 12:
		hour = 0
	case m[3] == "":
		if hour <= 6 {
			hour += 12
		}
	}

	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ParseTimeRange splits a phrase like "2 PM to 5 PM" or "14:00-17:00" into a
// normalized start and end. A single time yields a one-hour slot.
func ParseTimeRange(s string) (string, string) {
	s = strings.ToLower(strings.TrimSpace(s))

	var parts []string
	switch {
	case strings.Contains(s, " to "):
		parts = strings.SplitN(s, " to ", 2)
	case strings.Contains(s, " - "):
		parts = strings.SplitN(s, " - ", 2)
	case strings.Contains(s, "-") && !strings.Contains(s, " "):
		parts = strings.SplitN(s, "-", 2)
	}

	if len(parts) == 2 {
		return ParseClockTime(parts[0]), ParseClockTime(parts[1])
	}

	start := ParseClockTime(s)
	return start, oneHourLater(start)
}

func oneHourLater(start string) string {
	hour, _ := strconv.Atoi(start[:2])
	hour++
	if hour >= 24 {
		// Keep the end after the start even for a slot opening late evening.
		return "23:59"
	}
	return fmt.Sprintf("%02d:%s", hour, start[3:])
}
