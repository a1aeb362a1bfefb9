package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scrim-portal-backend/internal/api/routes"
	"scrim-portal-backend/internal/config"
	"scrim-portal-backend/internal/database"
	"scrim-portal-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	_ "scrim-portal-backend/docs" // This is needed for swag
)

const shutdownTimeout = 10 * time.Second

//	@title			Scrim Portal Backend API
//	@version		1.0
//	@description	Team registration, moderation and scrim publishing for the scrim portal.

//	@host		localhost:5000
//	@BasePath	/

//	@securityDefinitions.apikey	CookieAuth
//	@in							cookie
//	@name						scrim_session
//	@description				Session cookie issued by /api/callback

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	// Set up logging
	logger.Setup(cfg.LogLevel, os.Stdout)

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, nil)
	if err != nil {
		logrus.Fatal("Failed to initialize database: ", err)
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router, err := routes.SetupRoutes(db, cfg)
	if err != nil {
		logrus.Fatal("Failed to set up routes: ", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logrus.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := database.Close(db); err != nil {
			logrus.WithError(err).Warn("Error closing database connection")
		}
		logrus.Info("Server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		logrus.Fatal("Server failed: ", err)
	}
}
