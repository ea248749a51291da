package models

import "time"

// BookingPayload is the structured result of a completed slot-filling
// conversation, extracted from the model's JSON block. It is committable only
// when all five scalar fields are non-empty and Confirmed is true.
type BookingPayload struct {
	Name      string `json:"name"`
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM, 24h
	EndTime   string `json:"end_time"`   // HH:MM, 24h
	Title     string `json:"title"`
	Confirmed bool   `json:"confirmed"`
}

// DetailsKey is the identity tuple used for idempotent commits. Two payloads
// with the same key are the same booking.
func (p *BookingPayload) DetailsKey() [5]string {
	return [5]string{p.Name, p.Date, p.StartTime, p.EndTime, p.Title}
}

// BookingRecord is the persisted result of a committed payload. Records are
// append-only: never mutated after creation, only read back for history.
type BookingRecord struct {
	ID              string    `bson:"id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Date            string    `bson:"date" json:"date"`
	StartTime       string    `bson:"startTime" json:"start_time"`
	EndTime         string    `bson:"endTime" json:"end_time"`
	Title           string    `bson:"title" json:"title"`
	CalendarEventID string    `bson:"calendarEventId" json:"event_id"`
	EventLink       string    `bson:"eventLink" json:"event_link"`
	CreatedAt       time.Time `bson:"createdAt" json:"created_at"`
}

// BookingSummary is the human-readable confirmation block returned to the
// client after a successful commit.
type BookingSummary struct {
	Name        string `json:"name"`
	DateTime    string `json:"datetime"`
	DisplayDate string `json:"display_date"`
	DisplayTime string `json:"display_time"`
	Title       string `json:"title"`
}
