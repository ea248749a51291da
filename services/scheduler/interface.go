package scheduler

import (
	"context"
	"time"

	bookingRepo "calendrix/database/repository/booking"
	"calendrix/models"
)

// SchedulerService commits confirmed bookings and reads back history.
type SchedulerService interface {
	Confirm(ctx context.Context, payload models.BookingPayload) (*models.BookingRecord, error)
	RecentBookings(ctx context.Context, limit int64) ([]models.BookingRecord, error)
}

// ReminderScheduler queues a follow-up reminder for a committed booking.
// Delivery is an external concern; the committer only schedules.
type ReminderScheduler interface {
	ScheduleBookingReminder(record models.BookingRecord, fireAt time.Time) error
}

// DefaultSchedulerService implements SchedulerService.
type DefaultSchedulerService struct {
	Repo      bookingRepo.BookingRecordRepository
	Calendar  CalendarProvider
	Reminders ReminderScheduler
	Timezone  string
	Now       func() time.Time
}

func (s *DefaultSchedulerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
