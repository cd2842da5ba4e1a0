package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appRepos "github.com/pr17-lab/sata-backend/internal/app/repositories"
	"github.com/pr17-lab/sata-backend/internal/bootstrap"
	"github.com/pr17-lab/sata-backend/internal/config"
	"github.com/pr17-lab/sata-backend/internal/pkg/logger"
)

// openDatabase loads config, configures logging and connects the pool with
// migrations applied. The caller must Close() the pool.
func openDatabase() (*config.Config, *pgxpool.Pool, *appRepos.Repositories, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, zerolog.Logger{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
	lgr := log.Logger

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, nil, nil, zerolog.Logger{}, err
	}

	return cfg, dbPool, appRepos.NewRepositories(dbPool), lgr, nil
}
