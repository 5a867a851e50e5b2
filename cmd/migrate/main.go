package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hetpatel672/BudgetWise/internal/config"
	"github.com/hetpatel672/BudgetWise/internal/database"
	"github.com/hetpatel672/BudgetWise/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: migrate <up|down|version> [N]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	manager, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer func() {
		if err := manager.Close(); err != nil {
			logger.Get().Warnf("store close error: %v", err)
		}
	}()

	command := os.Args[1]

	switch command {
	case "up":
		if err := manager.Migrate(); err != nil {
			return err
		}
		logger.Get().Info("Migrations applied successfully")

	case "down":
		steps := 1
		if len(os.Args) > 2 {
			steps, err = strconv.Atoi(os.Args[2])
			if err != nil {
				return fmt.Errorf("invalid step count: %w", err)
			}
		}
		if err := manager.MigrateDown(steps); err != nil {
			return err
		}
		logger.Get().Infof("Rolled back %d migration(s)", steps)

	case "version":
		version, dirty, err := manager.Version()
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)

	default:
		return fmt.Errorf("unknown command: %s (use up, down, or version)", command)
	}

	return nil
}
