package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/gigflow/internal/config"
	"github.com/Windi-Fikriyansyah/gigflow/internal/db"
	"github.com/Windi-Fikriyansyah/gigflow/internal/logger"
	"github.com/Windi-Fikriyansyah/gigflow/internal/realtime"
	"github.com/Windi-Fikriyansyah/gigflow/internal/repository"
	"github.com/Windi-Fikriyansyah/gigflow/internal/server"
	"github.com/Windi-Fikriyansyah/gigflow/internal/services/accounts"
	"github.com/Windi-Fikriyansyah/gigflow/internal/services/bidding"
	"github.com/Windi-Fikriyansyah/gigflow/internal/services/gigs"
	"github.com/Windi-Fikriyansyah/gigflow/internal/services/hiring"
	"github.com/Windi-Fikriyansyah/gigflow/internal/services/notify"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Connect(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.WithError(err).Fatal("database connect failed")
	}
	if err := db.Migrate(ctx, gdb); err != nil {
		log.WithError(err).Fatal("migrations failed")
	}
	repo := repository.New(gdb)

	hub := realtime.NewHub()
	go hub.Run(ctx)

	// Redis fans events out across instances; without it each instance
	// delivers only to its own sockets.
	var pub notify.Publisher = &notify.HubPublisher{Hub: hub}
	if cfg.RedisEnabled {
		rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.WithError(err).Warn("redis unreachable, notifications stay local to this instance")
			_ = rdb.Close()
		} else {
			pub = &notify.RedisPublisher{RDB: rdb}
			relay := &realtime.Relay{RDB: rdb, Hub: hub}
			go func() {
				if err := relay.Run(ctx); err != nil {
					log.WithError(err).Error("redis relay stopped")
				}
			}()
			defer rdb.Close()
		}
	}

	hiringSvc := hiring.NewService(repo, notify.NewService(repo, pub), hiring.Config{
		MaxRetries:    cfg.HireMaxRetries,
		NotifyTimeout: cfg.NotifyTimeout,
	})

	app := server.New(server.Deps{
		Config:   cfg,
		Repo:     repo,
		Hub:      hub,
		Accounts: accounts.NewService(repo),
		Gigs:     gigs.NewService(repo),
		Bids:     bidding.NewService(repo),
		Hiring:   hiringSvc,
	})

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.AppPort).Info("gigflow api listening")
		errCh <- app.Listen(":" + cfg.AppPort)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("http server stopped")
		}
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown incomplete")
	}
	stop()
	hiringSvc.Drain()

	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("bye")
}
