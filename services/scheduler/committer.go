package scheduler

import (
	"context"
	"fmt"
	"time"

	"calendrix/models"
	"calendrix/services/assistant"
	"calendrix/utils"

	"go.uber.org/zap"
)

const defaultHistoryLimit = 20

// Confirm commits a confirmed payload exactly once: an identical tuple that
// was already committed is returned as-is with zero new provider calls, and
// the unique index behind Repo.Create closes the concurrent-commit race.
func (s *DefaultSchedulerService) Confirm(ctx context.Context, payload models.BookingPayload) (*models.BookingRecord, error) {
	if !payload.Confirmed {
		return nil, ErrPayloadNotConfirmed
	}

	payload = s.normalize(payload)
	if payload.Name == "" || payload.Date == "" || payload.StartTime == "" ||
		payload.EndTime == "" || payload.Title == "" {
		return nil, ErrPayloadIncomplete
	}
	if payload.StartTime >= payload.EndTime {
		return nil, &assistant.InvalidTimeRangeError{Start: payload.StartTime, End: payload.EndTime}
	}

	existing, err := s.Repo.FindByDetails(ctx, payload.Name, payload.Date, payload.StartTime, payload.EndTime, payload.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing bookings: %w", err)
	}
	if existing != nil {
		// Re-sent confirmation (double-click, retry after a slow response).
		return existing, nil
	}

	input := EventInput{
		Summary:     payload.Title,
		Description: eventDescription(payload.Name),
		Date:        payload.Date,
		StartTime:   payload.StartTime,
		EndTime:     payload.EndTime,
		TimeZone:    s.Timezone,
	}
	created, err := s.Calendar.CreateEvent(ctx, input)
	if err != nil {
		// Nothing persisted: the payload stays pending and can be retried.
		return nil, &CalendarCommitFailedError{Cause: err}
	}

	record, err := s.Repo.Create(ctx, models.BookingRecord{
		Name:            payload.Name,
		Date:            payload.Date,
		StartTime:       payload.StartTime,
		EndTime:         payload.EndTime,
		Title:           payload.Title,
		CalendarEventID: created.ID,
		EventLink:       created.Link,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	s.scheduleReminder(*record)
	return record, nil
}

// RecentBookings returns the most recent committed records, newest first.
func (s *DefaultSchedulerService) RecentBookings(ctx context.Context, limit int64) ([]models.BookingRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.Repo.GetRecent(ctx, limit)
}

// normalize re-parses loosely formatted date/time values the model may have
// left in natural phrasing. Canonical values pass through untouched.
func (s *DefaultSchedulerService) normalize(p models.BookingPayload) models.BookingPayload {
	if p.Date != "" && !utils.IsCanonicalDate(p.Date) {
		p.Date = utils.ParseDate(p.Date, s.now())
	}
	if p.StartTime != "" && !utils.IsCanonicalTime(p.StartTime) {
		p.StartTime, p.EndTime = utils.ParseTimeRange(p.StartTime + " to " + p.EndTime)
	} else if p.EndTime != "" && !utils.IsCanonicalTime(p.EndTime) {
		p.EndTime = utils.ParseClockTime(p.EndTime)
	}
	return p
}

// scheduleReminder queues a follow-up an hour before the event starts.
// Best-effort: a queue failure must not fail an already-committed booking.
func (s *DefaultSchedulerService) scheduleReminder(record models.BookingRecord) {
	if s.Reminders == nil {
		return
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		loc = time.UTC
	}
	start, err := time.ParseInLocation(utils.DateLayout+" "+utils.TimeLayout, record.Date+" "+record.StartTime, loc)
	if err != nil {
		return
	}
	fireAt := start.Add(-time.Hour)
	if fireAt.Before(s.now()) {
		return
	}
	if err := s.Reminders.ScheduleBookingReminder(record, fireAt); err != nil {
		utils.GetLogger().Warn("scheduler: failed to queue booking reminder",
			zap.String("bookingID", record.ID), zap.Error(err))
	}
}

func eventDescription(name string) string {
	return fmt.Sprintf("Scheduled via Calendrix AI\nOrganized for: %s", name)
}

// RecordShareLink rebuilds the shareable template URL for a stored record.
func RecordShareLink(record models.BookingRecord, timezone string) string {
	return ShareLink(EventInput{
		Summary:     record.Title,
		Description: eventDescription(record.Name),
		Date:        record.Date,
		StartTime:   record.StartTime,
		EndTime:     record.EndTime,
		TimeZone:    timezone,
	})
}
