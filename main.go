// File: calendrix/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calendrix/config"
	"calendrix/cron"
	"calendrix/database"
	bookingRepo "calendrix/database/repository/booking"
	"calendrix/handlers"
	"calendrix/routes"
	"calendrix/services/assistant"
	"calendrix/services/scheduler"
	"calendrix/services/speech"
	"calendrix/services/tasks"
	"calendrix/utils"

	"github.com/gin-gonic/gin"
)

const sessionTTL = 30 * time.Minute

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	if config.AppConfig.GoogleServiceAccountFile == "" {
		logger.Sugar().Fatal("main: GOOGLE_SERVICE_ACCOUNT_FILE is required; the calendar is the whole point")
	}

	database.InitDB()
	utils.InitSessionCache()

	ctx := context.Background()

	// Repositories.
	bookings := bookingRepo.NewMongoBookingRecordRepo()
	if err := bookings.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}

	// Conversation engine.
	sessionStore := assistant.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL)
	model := assistant.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	assistantSvc := assistant.NewDefaultAssistantService(model, sessionStore)

	// Calendar commit pipeline.
	calendarProvider, err := scheduler.NewGoogleCalendarProvider(ctx,
		config.AppConfig.GoogleServiceAccountFile,
		config.AppConfig.GoogleCalendarID,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar provider: %v", err)
	}

	reminderQueue := tasks.NewReminderQueue()
	cron.InitReminderWorker()

	schedulerSvc := &scheduler.DefaultSchedulerService{
		Repo:      bookings,
		Calendar:  calendarProvider,
		Reminders: reminderQueue,
		Timezone:  config.AppConfig.BookingTimezone,
	}

	// Speech surface.
	transcriber := speech.NewGoogleTranscriber(config.AppConfig.GoogleServiceAccountFile)
	synthesizer, err := speech.NewGoogleSynthesizer(ctx, config.AppConfig.GoogleServiceAccountFile)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize speech synthesizer: %v", err)
	}

	// Handlers.
	assistantHandler := handlers.NewAssistantHandler(assistantSvc, transcriber)
	bookingHandler := handlers.NewBookingHandler(assistantSvc, schedulerSvc, config.AppConfig.BookingTimezone)
	speechHandler := handlers.NewSpeechHandler(synthesizer)

	handlerBundle := &handlers.HandlerBundle{
		// Assistant endpoints.
		StartConversationHandler: assistantHandler.Start,
		ChatHandler:              assistantHandler.Chat,
		VoiceChatHandler:         assistantHandler.VoiceChat,
		SynthesizeHandler:        speechHandler.Synthesize,

		// Booking endpoints.
		ConfirmBookingHandler: bookingHandler.Confirm,
		ListBookingsHandler:   bookingHandler.List,

		// Service surface.
		StatusHandler: handlers.Status,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetSessionCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
