package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shortly-web/internal/api"
	"shortly-web/internal/cache"
	"shortly-web/internal/config"
	"shortly-web/internal/controllers"
	"shortly-web/internal/logger"
	"shortly-web/internal/metrics"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.InitLog(cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	// Backend API client
	client := api.NewClient(cfg.APIURL, time.Duration(cfg.HTTPTimeoutSeconds)*time.Second)
	client.Observer = metrics.ObserveAPI

	// Redis holds session token slots and cached previews (optional - cookies are used without it)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		c, err := cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("Failed to connect to Redis. Keeping sessions in cookies.")
		} else {
			log.Info("Connected to Redis cache")
			cacheClient = c
			defer c.Close()
		}
	}

	router, stop, err := controllers.NewRouter(cfg, client, cacheClient, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to build router")
	}
	defer stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("api_url", cfg.APIURL).Infof("Server starting on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shut down")
	}
	log.Info("Server stopped")
}
