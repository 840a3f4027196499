package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"staybook-backend/config"
	"staybook-backend/controllers"
	"staybook-backend/routes"
	"staybook-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found, continuing with environment variables")
	}

	env := config.EnvOrDefault("APP_ENV", "dev")
	logger := config.NewLogger(env)
	slog.SetDefault(logger)

	// Refuse to boot without a signing secret; tokens would be forgeable.
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Error("JWT_SECRET environment variable is not set")
		os.Exit(1)
	}

	db, err := config.ConnectDatabase()
	if err != nil {
		logger.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database connection established, migrations applied")

	userService := services.NewUserService(db)
	listingService := services.NewListingService(db)
	bookingService := services.NewBookingService(db)
	reviewService := services.NewReviewService(db)
	reportService := services.NewReportService(db)

	router := routes.SetupRouter(routes.Router{
		Auth:      controllers.NewAuthController(userService, []byte(jwtSecret)),
		Listings:  controllers.NewListingController(listingService),
		Bookings:  controllers.NewBookingController(bookingService),
		Reviews:   controllers.NewReviewController(reviewService),
		Reports:   controllers.NewReportController(reportService),
		Users:     userService,
		JWTSecret: []byte(jwtSecret),
		Logger:    logger,
	})

	addr := ":" + config.EnvOrDefault("PORT", "8080")

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen and serve failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}
