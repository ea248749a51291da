package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"calendrix/middleware"
	"calendrix/models"
	"calendrix/services/scheduler"

	"github.com/gin-gonic/gin"
)

type fakeAssistant struct {
	pending   *models.BookingPayload
	committed bool
}

func (f *fakeAssistant) Start(ctx context.Context, sessionID string) (string, error) {
	return "", nil
}

func (f *fakeAssistant) Advance(ctx context.Context, sessionID, utterance string) (*models.AssistantReply, error) {
	return nil, errors.New("not used")
}

func (f *fakeAssistant) PendingPayload(ctx context.Context, sessionID string) (*models.BookingPayload, error) {
	return f.pending, nil
}

func (f *fakeAssistant) MarkCommitted(ctx context.Context, sessionID string) error {
	f.committed = true
	return nil
}

type fakeSchedulerSvc struct {
	record  *models.BookingRecord
	err     error
	confirm []models.BookingPayload
}

func (f *fakeSchedulerSvc) Confirm(ctx context.Context, payload models.BookingPayload) (*models.BookingRecord, error) {
	f.confirm = append(f.confirm, payload)
	return f.record, f.err
}

func (f *fakeSchedulerSvc) RecentBookings(ctx context.Context, limit int64) ([]models.BookingRecord, error) {
	return []models.BookingRecord{*f.record}, nil
}

func confirmRequest(t *testing.T, h *BookingHandler, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.SessionMiddleware())
	r.POST("/api/bookings/confirm", h.Confirm)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionHeader, "s1")
	r.ServeHTTP(w, req)
	return w
}

func committedRecord() *models.BookingRecord {
	return &models.BookingRecord{
		ID:              "rec-1",
		Name:            "Touseef",
		Date:            "2026-02-25",
		StartTime:       "14:00",
		EndTime:         "17:00",
		Title:           "Team Sync",
		CalendarEventID: "evt-1",
		EventLink:       "https://calendar.example/evt-1",
	}
}

func TestConfirmWithBodyPayload(t *testing.T) {
	asst := &fakeAssistant{}
	sched := &fakeSchedulerSvc{record: committedRecord()}
	h := NewBookingHandler(asst, sched, "Asia/Karachi")

	body, _ := json.Marshal(models.BookingPayload{
		Name: "Touseef", Date: "2026-02-25", StartTime: "14:00",
		EndTime: "17:00", Title: "Team Sync", Confirmed: true,
	})
	w := confirmRequest(t, h, body)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success   bool                 `json:"success"`
		EventID   string               `json:"event_id"`
		ShareLink string               `json:"share_link"`
		Summary   models.BookingSummary `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !resp.Success || resp.EventID != "evt-1" || resp.ShareLink == "" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Summary.DisplayTime != "2:00 PM to 5:00 PM" {
		t.Errorf("unexpected summary time: %q", resp.Summary.DisplayTime)
	}
	if !asst.committed {
		t.Error("session was not marked committed")
	}
}

func TestConfirmFallsBackToPendingPayload(t *testing.T) {
	asst := &fakeAssistant{pending: &models.BookingPayload{
		Name: "Touseef", Date: "2026-02-25", StartTime: "14:00",
		EndTime: "17:00", Title: "Team Sync", Confirmed: true,
	}}
	sched := &fakeSchedulerSvc{record: committedRecord()}
	h := NewBookingHandler(asst, sched, "Asia/Karachi")

	w := confirmRequest(t, h, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(sched.confirm) != 1 || sched.confirm[0].Name != "Touseef" {
		t.Errorf("expected the pending payload to be committed, got %+v", sched.confirm)
	}
}

func TestConfirmWithoutAnyPayload(t *testing.T) {
	h := NewBookingHandler(&fakeAssistant{}, &fakeSchedulerSvc{}, "Asia/Karachi")

	w := confirmRequest(t, h, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestConfirmCalendarFailure(t *testing.T) {
	asst := &fakeAssistant{}
	sched := &fakeSchedulerSvc{err: &scheduler.CalendarCommitFailedError{Cause: errors.New("backend down")}}
	h := NewBookingHandler(asst, sched, "Asia/Karachi")

	body, _ := json.Marshal(models.BookingPayload{
		Name: "Touseef", Date: "2026-02-25", StartTime: "14:00",
		EndTime: "17:00", Title: "Team Sync", Confirmed: true,
	})
	w := confirmRequest(t, h, body)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", w.Code, w.Body.String())
	}
	if asst.committed {
		t.Error("a failed commit must not mark the session committed")
	}
}

func TestConfirmUnconfirmedPayload(t *testing.T) {
	sched := &fakeSchedulerSvc{err: scheduler.ErrPayloadNotConfirmed}
	h := NewBookingHandler(&fakeAssistant{}, sched, "Asia/Karachi")

	body, _ := json.Marshal(models.BookingPayload{
		Name: "Touseef", Date: "2026-02-25", StartTime: "14:00",
		EndTime: "17:00", Title: "Team Sync",
	})
	w := confirmRequest(t, h, body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
