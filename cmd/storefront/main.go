// cmd/storefront/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/ecommerce-storefront/internal/app"
	"github.com/your-org/ecommerce-storefront/internal/config"
	"github.com/your-org/ecommerce-storefront/internal/infrastructure/database/redis"
	"github.com/your-org/ecommerce-storefront/internal/infrastructure/localstore"
	"github.com/your-org/ecommerce-storefront/internal/interfaces/http/handlers"
	"github.com/your-org/ecommerce-storefront/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"backend":     cfg.API.BaseURL,
	}).Infof("Starting %s", cfg.App.Name)

	var (
		records localstore.Store
		health  handlers.Pinger
	)
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		redisClient, err := redis.NewConnection(cfg, log)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		records = localstore.NewRedisStore(redisClient.GetClient(), cfg.Session.Key)
		health = redisClient
	default:
		records = localstore.NewFileStore(cfg.Session.File)
	}

	storefront := app.New(cfg, log, records, health)

	// The persisted session is read before the first page is served
	storefront.Session.Restore(context.Background())

	go func() {
		if err := storefront.Server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := storefront.Server.Stop(ctx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}
	log.Info("Storefront stopped")
}
