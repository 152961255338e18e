// File: riverwood/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"riverwood/config"
	riverwoodCron "riverwood/cron"
	"riverwood/database"
	activityRepo "riverwood/database/repository/activity"
	cabinRepo "riverwood/database/repository/cabin"
	guestRepo "riverwood/database/repository/guest"
	reservationRepo "riverwood/database/repository/reservation"
	"riverwood/handlers"
	"riverwood/middleware"
	"riverwood/queue"
	"riverwood/routes"
	"riverwood/services/booking"
	"riverwood/services/conversation"
	"riverwood/services/messaging"
	"riverwood/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	if err := config.Validate(); err != nil {
		logger.Fatal("invalid configuration: " + err.Error())
	}

	database.InitDB()
	utils.InitConversationCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimit(
		float64(config.AppConfig.MaxRequestsPerMin)/60.0,
		config.AppConfig.MaxRequestsPerMin,
	))

	// repositories.
	resRepo := reservationRepo.NewMongoReservationRepo()
	cabRepo := cabinRepo.NewMongoCabinRepo()
	actRepo := activityRepo.NewMongoActivityRepo()
	gstRepo := guestRepo.NewMongoGuestRepo()

	// services.
	reservationService := &booking.DefaultReservationService{
		Repo: resRepo,
	}

	messenger := messaging.NewGatewayMessenger(
		config.AppConfig.ChatGatewayURL,
		config.AppConfig.ChatGatewayToken,
		logger,
	)

	stateStore := conversation.NewRedisStateStore(utils.GetConversationCacheClient())
	dispatcher := conversation.NewDispatcher(
		stateStore,
		messenger,
		reservationService,
		cabRepo,
		actRepo,
		gstRepo,
		config.AppConfig.MaxStayNights,
		logger,
	)

	// Turn queue: prefer durable asynq processing, degrade to direct
	// dispatch when the queue's Redis is unreachable.
	var asynqClient *asynq.Client
	if utils.QueueRedisReachable() {
		asynqClient = asynq.NewClient(queue.QueueRedisOpt())
		queue.InitTurnWorker(dispatcher, logger)
	} else {
		logger.Warn("queue Redis unreachable, running in degraded direct mode")
	}
	gate := queue.NewGate(asynqClient, dispatcher, logger)

	// Reservation expiration sweeper.
	sweeper := riverwoodCron.NewSweeper(
		resRepo,
		time.Duration(config.AppConfig.PendingReservationTTLHours)*time.Hour,
		time.Duration(config.AppConfig.SweepIntervalMinutes)*time.Minute,
		logger,
	)
	sweeperCron, err := sweeper.Start()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to start reservation sweeper: %v", err)
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Webhook:      handlers.NewWebhookHandler(gate),
		Reservations: handlers.NewReservationHandler(reservationService, logger),
		Cabins:       handlers.NewCabinHandler(cabRepo),
		Activities:   handlers.NewActivityHandler(actRepo),
		Guests:       handlers.NewGuestHandler(gstRepo),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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

	sweeperCron.Stop()
	if asynqClient != nil {
		asynqClient.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
