package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Daniangio/golem/internal/cache"
	"github.com/Daniangio/golem/internal/catalog"
	"github.com/Daniangio/golem/internal/config"
	"github.com/Daniangio/golem/internal/game"
	"github.com/Daniangio/golem/internal/server"
	"github.com/Daniangio/golem/internal/service"
	"github.com/Daniangio/golem/internal/store"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open store")
	}
	defer st.Close()

	var c *cache.Cache
	if cfg.RedisAddr != "" {
		c, err = cache.New(ctx, cfg.RedisAddr, log)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, running without activity trail")
			c = nil
		} else {
			defer c.Close()
		}
	}

	engine := game.NewEngine(catalog.Default())
	svc := service.New(engine, st, store.NewNotifier(), c, log)
	srv := server.New(svc, cfg.JWTSecret, log)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown did not finish cleanly")
		}
	}()

	log.WithFields(logrus.Fields{"addr": cfg.Addr, "db": cfg.DBDialect}).Info("server listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server exited")
	}
	log.Info("server stopped")
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.DBDialect {
	case "sqlite":
		return store.OpenSQL(ctx, store.DialectSQLite, cfg.SQLitePath)
	case "postgres":
		return store.OpenSQL(ctx, store.DialectPostgres, cfg.PostgresDSN)
	default:
		return store.NewMemoryStore(), nil
	}
}
