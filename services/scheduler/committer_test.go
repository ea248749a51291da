package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"calendrix/models"
	"calendrix/services/assistant"
)

var testNow = func() time.Time {
	return time.Date(2026, 2, 24, 9, 0, 0, 0, time.UTC)
}

// fakeRepo keeps records by the details tuple and mirrors the unique-index
// behavior: a second insert of the same tuple returns the winner's record.
type fakeRepo struct {
	mu      sync.Mutex
	records map[[5]string]*models.BookingRecord
	creates int
	failing error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[[5]string]*models.BookingRecord)}
}

func (r *fakeRepo) Create(ctx context.Context, record models.BookingRecord) (*models.BookingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing != nil {
		return nil, r.failing
	}
	key := [5]string{record.Name, record.Date, record.StartTime, record.EndTime, record.Title}
	if existing, ok := r.records[key]; ok {
		return existing, nil
	}
	r.creates++
	record.ID = fmt.Sprintf("rec-%d", r.creates)
	record.CreatedAt = testNow()
	r.records[key] = &record
	return &record, nil
}

func (r *fakeRepo) FindByDetails(ctx context.Context, name, date, startTime, endTime, title string) (*models.BookingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record, ok := r.records[[5]string{name, date, startTime, endTime, title}]; ok {
		return record, nil
	}
	return nil, nil
}

func (r *fakeRepo) GetRecent(ctx context.Context, limit int64) ([]models.BookingRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.BookingRecord
	for _, record := range r.records {
		out = append(out, *record)
		if int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeRepo) EnsureIndexes() error { return nil }

type fakeCalendar struct {
	calls int
	last  EventInput
	err   error
}

func (c *fakeCalendar) CreateEvent(ctx context.Context, input EventInput) (*CreatedEvent, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.calls++
	c.last = input
	return &CreatedEvent{
		ID:   fmt.Sprintf("evt-%d", c.calls),
		Link: "https://calendar.example/evt",
	}, nil
}

type fakeReminders struct {
	fireAts []time.Time
}

func (f *fakeReminders) ScheduleBookingReminder(record models.BookingRecord, fireAt time.Time) error {
	f.fireAts = append(f.fireAts, fireAt)
	return nil
}

func newTestScheduler(repo *fakeRepo, cal *fakeCalendar, rem *fakeReminders) *DefaultSchedulerService {
	svc := &DefaultSchedulerService{
		Repo:     repo,
		Calendar: cal,
		Timezone: "Asia/Karachi",
		Now:      testNow,
	}
	if rem != nil {
		svc.Reminders = rem
	}
	return svc
}

func confirmedPayload() models.BookingPayload {
	return models.BookingPayload{
		Name:      "Touseef",
		Date:      "2026-03-10",
		StartTime: "14:00",
		EndTime:   "17:00",
		Title:     "Team Sync",
		Confirmed: true,
	}
}

func TestConfirmCommitsExactlyOnce(t *testing.T) {
	repo := newFakeRepo()
	cal := &fakeCalendar{}
	svc := newTestScheduler(repo, cal, nil)
	ctx := context.Background()

	first, err := svc.Confirm(ctx, confirmedPayload())
	if err != nil {
		t.Fatalf("first Confirm failed: %v", err)
	}
	second, err := svc.Confirm(ctx, confirmedPayload())
	if err != nil {
		t.Fatalf("second Confirm failed: %v", err)
	}

	if cal.calls != 1 {
		t.Errorf("expected exactly one calendar event, got %d", cal.calls)
	}
	if repo.creates != 1 {
		t.Errorf("expected exactly one record, got %d", repo.creates)
	}
	if first.ID != second.ID || first.CalendarEventID != second.CalendarEventID {
		t.Errorf("replayed confirmation must return the original record: %+v vs %+v", first, second)
	}
}

func TestConfirmRejectsUnconfirmedPayload(t *testing.T) {
	cal := &fakeCalendar{}
	svc := newTestScheduler(newFakeRepo(), cal, nil)

	payload := confirmedPayload()
	payload.Confirmed = false

	if _, err := svc.Confirm(context.Background(), payload); !errors.Is(err, ErrPayloadNotConfirmed) {
		t.Fatalf("expected ErrPayloadNotConfirmed, got %v", err)
	}
	if cal.calls != 0 {
		t.Errorf("unconfirmed payload must never reach the calendar, got %d calls", cal.calls)
	}
}

func TestConfirmRejectsIncompletePayload(t *testing.T) {
	svc := newTestScheduler(newFakeRepo(), &fakeCalendar{}, nil)

	payload := confirmedPayload()
	payload.Title = ""

	if _, err := svc.Confirm(context.Background(), payload); !errors.Is(err, ErrPayloadIncomplete) {
		t.Fatalf("expected ErrPayloadIncomplete, got %v", err)
	}
}

func TestConfirmRejectsBackwardsRange(t *testing.T) {
	svc := newTestScheduler(newFakeRepo(), &fakeCalendar{}, nil)

	payload := confirmedPayload()
	payload.StartTime, payload.EndTime = "17:00", "14:00"

	_, err := svc.Confirm(context.Background(), payload)
	var badRange *assistant.InvalidTimeRangeError
	if !errors.As(err, &badRange) {
		t.Fatalf("expected InvalidTimeRangeError, got %v", err)
	}
}

func TestConfirmCalendarFailureLeavesNothingBehind(t *testing.T) {
	repo := newFakeRepo()
	cal := &fakeCalendar{err: errors.New("backend unavailable")}
	svc := newTestScheduler(repo, cal, nil)
	ctx := context.Background()

	_, err := svc.Confirm(ctx, confirmedPayload())
	var commitFailed *CalendarCommitFailedError
	if !errors.As(err, &commitFailed) {
		t.Fatalf("expected CalendarCommitFailedError, got %v", err)
	}
	if len(repo.records) != 0 {
		t.Errorf("a failed commit must not persist a record, found %d", len(repo.records))
	}

	// The payload stays committable: once the calendar recovers, the same
	// confirmation goes through.
	cal.err = nil
	if _, err := svc.Confirm(ctx, confirmedPayload()); err != nil {
		t.Fatalf("retry after calendar recovery failed: %v", err)
	}
	if repo.creates != 1 {
		t.Errorf("expected one record after retry, got %d", repo.creates)
	}
}

func TestConfirmPreservesWallClockAndZone(t *testing.T) {
	cal := &fakeCalendar{}
	svc := newTestScheduler(newFakeRepo(), cal, nil)

	if _, err := svc.Confirm(context.Background(), confirmedPayload()); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}

	if cal.last.Date != "2026-03-10" || cal.last.StartTime != "14:00" || cal.last.EndTime != "17:00" {
		t.Errorf("wall-clock values must pass through unchanged, got %+v", cal.last)
	}
	if cal.last.TimeZone != "Asia/Karachi" {
		t.Errorf("expected booking zone Asia/Karachi, got %q", cal.last.TimeZone)
	}
}

func TestConfirmNormalizesLoosePayload(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestScheduler(repo, &fakeCalendar{}, nil)

	payload := models.BookingPayload{
		Name:      "Touseef",
		Date:      "tomorrow",
		StartTime: "2 PM",
		EndTime:   "5 PM",
		Title:     "Team Sync",
		Confirmed: true,
	}

	record, err := svc.Confirm(context.Background(), payload)
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if record.Date != "2026-02-25" {
		t.Errorf("expected tomorrow resolved to 2026-02-25, got %q", record.Date)
	}
	if record.StartTime != "14:00" || record.EndTime != "17:00" {
		t.Errorf("expected 14:00-17:00, got %s-%s", record.StartTime, record.EndTime)
	}
}

func TestConfirmSchedulesReminderAnHourBefore(t *testing.T) {
	rem := &fakeReminders{}
	svc := newTestScheduler(newFakeRepo(), &fakeCalendar{}, rem)

	if _, err := svc.Confirm(context.Background(), confirmedPayload()); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}

	if len(rem.fireAts) != 1 {
		t.Fatalf("expected one reminder, got %d", len(rem.fireAts))
	}
	loc, err := time.LoadLocation("Asia/Karachi")
	if err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}
	want := time.Date(2026, 3, 10, 13, 0, 0, 0, loc)
	if !rem.fireAts[0].Equal(want) {
		t.Errorf("expected reminder at %v, got %v", want, rem.fireAts[0])
	}
}

func TestRecordShareLink(t *testing.T) {
	record := models.BookingRecord{
		Name:      "Touseef",
		Date:      "2026-03-10",
		StartTime: "14:00",
		EndTime:   "17:00",
		Title:     "Team Sync",
	}
	link := RecordShareLink(record, "Asia/Karachi")

	for _, fragment := range []string{
		"action=TEMPLATE",
		"dates=20260310T140000%2F20260310T170000",
		"ctz=Asia%2FKarachi",
	} {
		if !strings.Contains(link, fragment) {
			t.Errorf("share link missing %q: %s", fragment, link)
		}
	}
}
