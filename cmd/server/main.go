package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/carebridge/go-hospital-admin/internal/config"
	"github.com/carebridge/go-hospital-admin/internal/metrics"
	"github.com/carebridge/go-hospital-admin/kv"
	"github.com/carebridge/go-hospital-admin/masters"
	"github.com/carebridge/go-hospital-admin/pkg/logger"
	"github.com/carebridge/go-hospital-admin/server"
	"github.com/carebridge/go-hospital-admin/session"
	"github.com/carebridge/go-hospital-admin/tenants"
	"github.com/carebridge/go-hospital-admin/users"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func run() error {
	// .env is optional; environment variables win.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	logg := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogColor})
	displayAppname(cfg.AppName)

	backend, closeBackend, err := snapshotBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	dir := session.Directory{
		Users:   users.NewInMemoryRepo(),
		Tenants: tenants.NewInMemoryRepo(),
	}
	registry := masters.NewRegistry()
	if err := server.Bootstrap(ctx, dir, registry); err != nil {
		return err
	}

	manager := session.NewManager(dir, backend,
		session.WithIdleTTL(cfg.IdleTTL),
		session.WithManagerLogger(logg),
		session.WithRestoreHook(metrics.SessionsRestoredTotal.Inc),
	)
	defer manager.Close()

	httpServer := &http.Server{
		Addr:    cfg.Addr(),
		Handler: server.New(cfg, manager, registry, logg),
	}

	go func() {
		logg.Info().Str("addr", httpServer.Addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error().Err(err).Msg("listen and serve")
		}
	}()

	waitForStopSignal()
	return shutdown(httpServer)
}

func snapshotBackend(cfg *config.Config) (kv.Store, func(), error) {
	if !cfg.Redis.Enabled {
		return kv.NewMemory(), func() {}, nil
	}
	store, err := kv.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(s *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
