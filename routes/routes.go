package routes

import (
	"net/http"
	"time"

	"calendrix/handlers"
	"calendrix/middleware"
	"calendrix/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAssistantRoutes registers the conversational endpoints.
func RegisterAssistantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/assistant")
	{
		api.POST("/start", hb.StartConversationHandler)
		api.POST("/chat", hb.ChatHandler)
		api.POST("/voice", hb.VoiceChatHandler)
		api.POST("/tts", hb.SynthesizeHandler)
	}
}

// RegisterBookingRoutes registers the commit and history endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("/confirm", hb.ConfirmBookingHandler)
		api.GET("", hb.ListBookingsHandler)
	}
}

// RegisterHealthRoute registers health and status endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", func(c *gin.Context) {
		health := utils.GetHealthStatus()
		status := http.StatusOK
		if !health.Mongo || !health.Redis {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":  "ok",
			"message": "Hi, I'm Calendrix",
			"mongo":   health.Mongo,
			"redis":   health.Redis,
		})
	})
	r.GET("/api/status", hb.StatusHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.SessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.SessionMiddleware())

	RegisterAssistantRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
