package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/rafakka/virtuallibrary/internal/config"
	"github.com/rafakka/virtuallibrary/internal/entrypoint"
)

// Version information - set at build time via ldflags
var Version = "dev"

func main() {
	// .env is optional; real environments set variables directly
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded configuration from .env")
	}

	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
