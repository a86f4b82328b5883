package main

import (
	"log"

	"github.com/joho/godotenv"

	"hypotest/internal/api"
	"hypotest/internal/config"
	"hypotest/internal/logging"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.Log)

	server := api.NewServer(logger, cfg)
	if err := server.Run(cfg.Server.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
