package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"calendrix/middleware"
	"calendrix/models"
	"calendrix/services/assistant"
	"calendrix/services/scheduler"
	"calendrix/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	calendarDownReply   = "I couldn't reach the calendar just now, so nothing was booked. Say \"confirm\" again in a moment and I'll retry."
	badTimeRangeReply   = "That time range doesn't work: the end must come after the start. What time should the meeting run?"
	notConfirmedReply   = "I still need your go-ahead before I book anything. Say \"confirm\" when the details look right."
	incompleteDataReply = "Some booking details are still missing, so I can't book this yet. Let's fill in the rest first."
)

// BookingHandler serves the commit and history endpoints.
type BookingHandler struct {
	Assistant assistant.AssistantService
	Scheduler scheduler.SchedulerService
	Timezone  string
}

func NewBookingHandler(asst assistant.AssistantService, sched scheduler.SchedulerService, timezone string) *BookingHandler {
	return &BookingHandler{Assistant: asst, Scheduler: sched, Timezone: timezone}
}

// Confirm commits a booking payload to the calendar. The payload comes from
// the request body when present, otherwise from the session's pending
// proposal. Re-sending the same confirmation returns the original booking.
func (h *BookingHandler) Confirm(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	var payload models.BookingPayload
	// An empty or absent body is fine; the session fallback covers it.
	_ = c.ShouldBindJSON(&payload)

	if payload == (models.BookingPayload{}) {
		pending, err := h.Assistant.PendingPayload(c.Request.Context(), sessionID)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load session", err.Error())
			return
		}
		if pending == nil {
			utils.JSONError(c, http.StatusBadRequest, "No booking data", "nothing is pending confirmation for this session")
			return
		}
		payload = *pending
	}

	record, err := h.Scheduler.Confirm(c.Request.Context(), payload)
	if err != nil {
		h.respondConfirmError(c, sessionID, err)
		return
	}

	if err := h.Assistant.MarkCommitted(c.Request.Context(), sessionID); err != nil {
		// The booking is committed; a stale session only risks a harmless
		// idempotent re-confirm.
		utils.GetLogger().Warn("Failed to mark session committed",
			zap.String("sessionID", sessionID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"event_id":   record.CalendarEventID,
		"event_link": record.EventLink,
		"share_link": scheduler.RecordShareLink(*record, h.Timezone),
		"summary": models.BookingSummary{
			Name:        record.Name,
			DateTime:    utils.FormatDateTimeRange(record.Date, record.StartTime, record.EndTime),
			DisplayDate: utils.FormatDate(record.Date),
			DisplayTime: utils.FormatTimeRange(record.StartTime, record.EndTime),
			Title:       record.Title,
		},
	})
}

func (h *BookingHandler) respondConfirmError(c *gin.Context, sessionID string, err error) {
	var badRange *assistant.InvalidTimeRangeError
	var commitFailed *scheduler.CalendarCommitFailedError

	switch {
	case errors.Is(err, scheduler.ErrPayloadNotConfirmed):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": notConfirmedReply})
	case errors.Is(err, scheduler.ErrPayloadIncomplete):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": incompleteDataReply})
	case errors.As(err, &badRange):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": badTimeRangeReply})
	case errors.As(err, &commitFailed):
		// Nothing was persisted; the payload stays pending for a retry.
		utils.GetLogger().Error("Calendar commit failed",
			zap.String("sessionID", sessionID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": calendarDownReply})
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Failed to confirm booking", err.Error())
	}
}

// List returns the most recent committed bookings, newest first.
func (h *BookingHandler) List(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit <= 0 {
		limit = 20
	}

	records, err := h.Scheduler.RecentBookings(c.Request.Context(), limit)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch bookings", err.Error())
		return
	}
	if records == nil {
		records = []models.BookingRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": records, "count": len(records)})
}
