// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/greeniecart/greeniecart-backend/internal/cache"
	"github.com/greeniecart/greeniecart-backend/internal/config"
	"github.com/greeniecart/greeniecart-backend/internal/database"
	"github.com/greeniecart/greeniecart-backend/internal/i18n"
	"github.com/greeniecart/greeniecart-backend/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.Fatal("Failed to initialize database: ", err)
	}
	defer database.Close(db)

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		logrus.Fatal("Failed to run migrations: ", err)
	}

	if cfg.Environment == "development" && cfg.Database.SeedDemoData {
		if err := database.SeedDevelopmentData(db); err != nil {
			logrus.WithError(err).Warn("Failed to seed development data")
		}
	}

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.LocalesPath); err != nil {
		logrus.Fatal("Failed to initialize i18n: ", err)
	}

	// Token blacklist is optional: without Redis, logout cannot revoke
	// tokens early but everything else still works.
	blacklist, err := cache.NewTokenBlacklist(&cfg.Redis)
	if err != nil {
		logrus.WithError(err).Warn("Redis unavailable, token revocation disabled")
		blacklist = nil
	}

	// Initialize router
	r := router.Initialize(db, cfg, blacklist)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal("Failed to start server: ", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatal("Server forced to shutdown: ", err)
	}

	if blacklist != nil {
		blacklist.Close()
	}

	logrus.Info("Server exited")
}
