package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Assistant endpoints
	StartConversationHandler gin.HandlerFunc
	ChatHandler              gin.HandlerFunc
	VoiceChatHandler         gin.HandlerFunc
	SynthesizeHandler        gin.HandlerFunc

	// Booking endpoints
	ConfirmBookingHandler gin.HandlerFunc
	ListBookingsHandler   gin.HandlerFunc

	// Service surface
	StatusHandler gin.HandlerFunc
}
