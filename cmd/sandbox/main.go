package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/cashew-corner/internal/api"
	"github.com/example/cashew-corner/internal/auth"
	"github.com/example/cashew-corner/internal/config"
	"github.com/example/cashew-corner/internal/logging"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load(".", "sandbox")
	if err != nil {
		logrus.Fatalf("[Sandbox] load config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		logrus.Fatalf("[Sandbox] logger: %v", err)
	}
	log := logging.Component(logger, "Sandbox")

	if len(cfg.JWTSecret) < 16 {
		log.Fatal("JWT_SECRET must be at least 16 characters long")
	}

	hash, err := auth.HashPassword(api.DemoPassword)
	if err != nil {
		log.WithError(err).Fatal("hash demo password")
	}
	store := api.NewStore()
	if err := api.Seed(store, hash); err != nil {
		log.WithError(err).Fatal("seed store")
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, 7*24*time.Hour)
	router := api.NewRouter(
		api.NewHandlers(store, logger),
		api.NewAuthHandlers(store, jwtService, logger),
		jwtService,
		logger,
	)

	server := &http.Server{
		Addr:              cfg.SandboxAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":  cfg.SandboxAddr,
			"base":  api.BasePath,
			"login": api.DemoEmail,
		}).Info("sandbox backend started")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("shutdown")
	}
}
