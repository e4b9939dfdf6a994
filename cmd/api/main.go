package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"dredge/adapters/postgres"
	"dredge/internal"
	"dredge/internal/config"
	"dredge/ports"
	"dredge/ui"
)

func main() {
	_ = godotenv.Load()
	logger := internal.DefaultLogger

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var repo ports.RunRepositoryPort
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		runRepo := postgres.NewRunRepository(db)
		if err := runRepo.EnsureSchema(context.Background()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		repo = runRepo
		logger.Info("run persistence enabled")
	} else {
		logger.Info("DATABASE_URL not set, run persistence disabled")
	}

	server := ui.NewServer(cfg.Simulation, repo)
	logger.Info("listening on :%s", cfg.Server.Port)
	if err := server.Run(cfg.Server.Port); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
