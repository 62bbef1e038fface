package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tidings-dev/tidings/db"
	"github.com/tidings-dev/tidings/internal/auth"
	"github.com/tidings-dev/tidings/internal/config"
	"github.com/tidings-dev/tidings/internal/feed"
	"github.com/tidings-dev/tidings/internal/handlers"
	"github.com/tidings-dev/tidings/internal/router"
	"github.com/tidings-dev/tidings/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{}).Critical("config: load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Development: cfg.IsDevelopment()})
	log.Info("app: starting", "env", cfg.Env, "driver", cfg.DB.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Connect(ctx, cfg.DB, log)
	if err != nil {
		log.Critical("db: connect failed", "err", err)
		os.Exit(1)
	}

	if cfg.DB.AutoMigrate {
		if err := conn.Migrate(ctx); err != nil {
			log.Critical("db: migrate failed", "err", err)
			_ = conn.Store.Close(context.Background())
			os.Exit(1)
		}
		log.Info("db: migrations applied")
	}

	signer, err := auth.NewJWTSigner(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Critical("auth: signer init failed", "err", err)
		_ = conn.Store.Close(context.Background())
		os.Exit(1)
	}

	hub := feed.NewHub(cfg.AllowedOrigins, log)

	r := router.NewRouter(handlers.Dependencies{
		Store:  conn.Store,
		Hasher: auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		Signer: signer,
		Hub:    hub,
		Config: cfg,
		Log:    log,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv.RegisterOnShutdown(hub.Close)

	log.Info("http: listening", "addr", srv.Addr)

	serverErrCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		log.Info("app: shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http: graceful shutdown failed", "err", err)
		exitCode = 1
	}

	if err := conn.Store.Close(shutdownCtx); err != nil {
		log.Error("db: close failed", "err", err)
		exitCode = 1
	}

	if exitCode == 0 {
		log.Info("app: stopped")
		return
	}

	os.Exit(exitCode)
}
