package scheduler

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// EventInput is the provider-agnostic description of the event to create.
// Start and end are local wall-clock values paired with an IANA zone; the
// provider performs the UTC conversion for that zone. Converting to a fixed
// zone here would shift the event for every user outside that zone.
type EventInput struct {
	Summary     string
	Description string
	Date        string // YYYY-MM-DD
	StartTime   string // HH:MM
	EndTime     string // HH:MM
	TimeZone    string // IANA zone identifier
}

// CreatedEvent is the provider's handle on a created event.
type CreatedEvent struct {
	ID   string
	Link string
}

// CalendarProvider creates events on the external calendar.
type CalendarProvider interface {
	CreateEvent(ctx context.Context, input EventInput) (*CreatedEvent, error)
}

// GoogleCalendarProvider implements CalendarProvider against the Google
// Calendar API, authenticated with a pre-shared service account. The target
// calendar must already grant the service account write access.
type GoogleCalendarProvider struct {
	service    *calendar.Service
	calendarID string
}

func NewGoogleCalendarProvider(ctx context.Context, serviceAccountFile, calendarID string) (*GoogleCalendarProvider, error) {
	service, err := calendar.NewService(ctx,
		option.WithCredentialsFile(serviceAccountFile),
		option.WithScopes(calendar.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &GoogleCalendarProvider{service: service, calendarID: calendarID}, nil
}

func (p *GoogleCalendarProvider) CreateEvent(ctx context.Context, input EventInput) (*CreatedEvent, error) {
	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Start: &calendar.EventDateTime{
			DateTime: fmt.Sprintf("%sT%s:00", input.Date, input.StartTime),
			TimeZone: input.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: fmt.Sprintf("%sT%s:00", input.Date, input.EndTime),
			TimeZone: input.TimeZone,
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: 15},
				{Method: "email", Minutes: 60},
			},
			// UseDefault:false is a zero value and would be dropped from the
			// request body without this.
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := p.service.Events.Insert(p.calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to insert calendar event: %w", err)
	}
	return &CreatedEvent{ID: created.Id, Link: created.HtmlLink}, nil
}

// ShareLink builds a Google Calendar "add event" template URL that anyone can
// open, independent of the created event. The ctz parameter keeps the times
// anchored to the booking zone.
func ShareLink(input EventInput) string {
	dates := fmt.Sprintf("%sT%s00/%sT%s00",
		strings.ReplaceAll(input.Date, "-", ""),
		strings.ReplaceAll(input.StartTime, ":", ""),
		strings.ReplaceAll(input.Date, "-", ""),
		strings.ReplaceAll(input.EndTime, ":", ""),
	)
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", input.Summary)
	q.Set("dates", dates)
	q.Set("details", input.Description)
	q.Set("ctz", input.TimeZone)
	return "https://calendar.google.com/calendar/render?" + q.Encode()
}
