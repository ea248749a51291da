package assistant

import (
	"encoding/json"
	"regexp"
	"strings"

	"calendrix/models"
	"calendrix/utils"
)

var jsonBlockRe = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

// rawPayload mirrors the model's JSON contract without trusting types. The
// confirmation marker in particular must be a literal boolean true; a string
// "yes" or a missing key means not yet confirmed.
type rawPayload struct {
	Name      string `json:"name"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Title     string `json:"title"`
	Confirmed any    `json:"confirmed"`
}

// ExtractPayload scans model output for the fenced booking JSON block.
// No block means the conversation is still in progress: (nil, nil).
// A block with missing fields yields IncompletePayloadError, an unparseable
// block MalformedPayloadError, and a backwards time range InvalidTimeRangeError.
func ExtractPayload(modelOutput string) (*models.BookingPayload, error) {
	m := jsonBlockRe.FindStringSubmatch(modelOutput)
	if m == nil {
		return nil, nil
	}

	var raw rawPayload
	if err := json.Unmarshal([]byte(m[1]), &raw); err != nil {
		return nil, &MalformedPayloadError{Raw: m[1], Cause: err}
	}

	payload := &models.BookingPayload{
		Name:      strings.TrimSpace(raw.Name),
		Date:      strings.TrimSpace(raw.Date),
		StartTime: strings.TrimSpace(raw.StartTime),
		EndTime:   strings.TrimSpace(raw.EndTime),
		Title:     strings.TrimSpace(raw.Title),
	}
	if confirmed, ok := raw.Confirmed.(bool); ok {
		payload.Confirmed = confirmed
	}

	if missing := missingFields(payload); len(missing) > 0 {
		return nil, &IncompletePayloadError{Missing: missing}
	}
	if err := ValidateTimeRange(payload.StartTime, payload.EndTime); err != nil {
		return nil, err
	}
	return payload, nil
}

func missingFields(p *models.BookingPayload) []string {
	var missing []string
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.Date == "" {
		missing = append(missing, "date")
	}
	if p.StartTime == "" {
		missing = append(missing, "start_time")
	}
	if p.EndTime == "" {
		missing = append(missing, "end_time")
	}
	if p.Title == "" {
		missing = append(missing, "title")
	}
	return missing
}

// ValidateTimeRange enforces start < end for canonical HH:MM times on the
// same calendar date. Non-canonical values are left for the committer's
// normalization pass rather than rejected here.
func ValidateTimeRange(start, end string) error {
	if !utils.IsCanonicalTime(start) || !utils.IsCanonicalTime(end) {
		return nil
	}
	if start >= end {
		return &InvalidTimeRangeError{Start: start, End: end}
	}
	return nil
}

// StripPayload removes the booking JSON block from a reply so the remaining
// text can be displayed or spoken.
func StripPayload(text string) string {
	return strings.TrimSpace(jsonBlockRe.ReplaceAllString(text, ""))
}
