// File: agendador/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agendador/config"
	"agendador/cron"
	"agendador/database"
	contactRepo "agendador/database/repository/contact"
	"agendador/handlers"
	"agendador/middleware"
	"agendador/routes"
	"agendador/services/calendar"
	"agendador/services/dialogue"
	"agendador/services/directory"
	"agendador/services/extraction"
	"agendador/services/notification"
	"agendador/services/speech"
	"agendador/services/tasks"
	"agendador/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	zone, err := time.LoadLocation(config.AppConfig.Timezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid timezone %q: %v", config.AppConfig.Timezone, err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	contacts := contactRepo.NewMongoContactRepo()

	// Services.
	directoryService := &directory.DefaultDirectoryService{Repo: contacts}
	extractor := extraction.NewGeminiExtractor(config.AppConfig.GeminiAPIKey)

	provider, err := calendar.NewGoogleCalendarProvider(
		context.Background(),
		config.AppConfig.GoogleCredentialsFile,
		config.AppConfig.GoogleTokenFile,
		config.AppConfig.Timezone,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar provider: %v", err)
	}
	dispatcher := &calendar.DefaultEventDispatcher{Provider: provider, Zone: zone}

	draftTTL := time.Duration(config.AppConfig.DraftTTLMinutes) * time.Minute
	var draftStore dialogue.DraftStore
	var redisClients []*redis.Client
	if config.AppConfig.DraftStore == "redis" {
		client := utils.GetDraftCacheClient()
		draftStore = dialogue.NewRedisDraftStore(client, draftTTL)
		redisClients = append(redisClients, client)
	} else {
		memStore := dialogue.NewMemoryDraftStore(draftTTL)
		draftStore = memStore
		go func() {
			ticker := time.NewTicker(draftTTL)
			defer ticker.Stop()
			for range ticker.C {
				if removed := memStore.Sweep(); removed > 0 {
					logger.Sugar().Infof("main: swept %d expired draft(s)", removed)
				}
			}
		}()
	}

	messenger := notification.NewTwilioMessenger(
		config.AppConfig.TwilioAccountSID,
		config.AppConfig.TwilioAuthToken,
		config.AppConfig.TwilioWhatsAppNumber,
	)

	var reminders dialogue.ReminderScheduler
	if config.AppConfig.RemindersEnabled {
		scheduler := tasks.NewAsynqReminderScheduler(
			asynq.RedisClientOpt{
				Addr:     config.AppConfig.RedisAddr,
				Password: config.AppConfig.RedisPassword,
				DB:       config.AppConfig.RedisQueueDB,
			},
			time.Duration(config.AppConfig.ReminderLeadMinutes)*time.Minute,
			zone,
		)
		defer scheduler.Close()
		reminders = scheduler
		cron.InitReminderWorker(messenger)
	}

	dialogueService := dialogue.NewDefaultDialogueService(
		extractor,
		directoryService,
		dispatcher,
		draftStore,
		reminders,
		zone,
	)

	var transcriber speech.Transcriber
	if config.AppConfig.GoogleServiceAccountFile != "" {
		t, err := speech.NewGoogleTranscriber(context.Background(), config.AppConfig.GoogleServiceAccountFile, "pt-BR")
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize transcriber: %v", err)
		}
		defer t.Close()
		transcriber = t
	}

	whatsappHandler := handlers.NewWhatsAppHandler(dialogueService, messenger, transcriber)
	contactHandler := handlers.NewContactHandler(directoryService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		WhatsAppWebhookHandler: whatsappHandler.WebhookHandler,

		ListContactsHandler:  contactHandler.ListContactsHandler,
		GetContactHandler:    contactHandler.GetContactHandler,
		UpsertContactHandler: contactHandler.UpsertContactHandler,
		DeleteContactHandler: contactHandler.DeleteContactHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)
	utils.StartHealthMonitor(redisClients, database.MongoClient)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
