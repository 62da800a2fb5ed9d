package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"finqa/app/server"
	"finqa/config"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() {
	loadEnvVariables()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("error to build logger: %v", err)
	}
	defer logger.Sync()

	s := server.NewServer(cfg, logger)

	go func() {
		if err := s.Run(); err != nil {
			logger.Fatal("error to start server", zap.Error(err))
		}
	}()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	<-sigch
	logger.Info("Received shutdown signal, shutting down server...")
	s.Stop()
}

// loadEnvVariables seeds the environment from .env when the file exists.
func loadEnvVariables() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = lvl
	return cfg.Build()
}
