package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rmateos/taskdeck-be/internal/api"
	"github.com/rmateos/taskdeck-be/internal/auth"
	"github.com/rmateos/taskdeck-be/internal/config"
	"github.com/rmateos/taskdeck-be/internal/database"
	"github.com/rmateos/taskdeck-be/internal/logger"
	"github.com/rmateos/taskdeck-be/internal/reminder"
	"github.com/rmateos/taskdeck-be/internal/services"
	"github.com/rmateos/taskdeck-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	auth.Init(cfg.JWTSecret)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up the activity hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	eventService := services.NewEventService(db, hub)
	userService := services.NewUserService(db)
	taskService := services.NewTaskService(db, eventService)
	reportService := services.NewReportService(userService, taskService)

	// Set up and start the daily reminder job
	reminderJob := reminder.NewJob(userService, taskService, reminder.LogNotifier{})
	if err := reminderJob.Start(cfg.ReminderCron); err != nil {
		log.Fatal().Err(err).Msg("Failed to start reminder job")
	}

	// Set up router
	router := api.NewRouter(hub, userService, taskService, reportService, eventService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	reminderJob.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
