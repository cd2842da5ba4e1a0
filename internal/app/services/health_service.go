package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/pr17-lab/sata-backend/internal/app/models/dto"
)

// systemStore is the slice of the system repository the health service needs.
type systemStore interface {
	Ping(ctx context.Context) error
	TableCounts(ctx context.Context) (*dto.TableCounts, error)
}

// HealthService answers liveness and detailed health probes.
type HealthService struct {
	system systemStore
	logger zerolog.Logger
}

// NewHealthService creates a new HealthService
func NewHealthService(system systemStore, logger zerolog.Logger) *HealthService {
	return &HealthService{system: system, logger: logger}
}

// Check pings the database and reports healthy or degraded.
func (s *HealthService) Check(ctx context.Context) *dto.HealthStatus {
	status := &dto.HealthStatus{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: time.Now().UTC(),
	}

	if err := s.system.Ping(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Database ping failed")
		status.Status = "degraded"
		status.Database = "unreachable"
	}

	return status
}

// DetailedCheck adds per-table row counts to the basic probe.
func (s *HealthService) DetailedCheck(ctx context.Context) (*dto.DetailedHealthStatus, error) {
	basic := s.Check(ctx)

	detailed := &dto.DetailedHealthStatus{
		Status:    basic.Status,
		Database:  basic.Database,
		Timestamp: basic.Timestamp,
	}
	if basic.Status != "healthy" {
		return detailed, nil
	}

	counts, err := s.system.TableCounts(ctx)
	if err != nil {
		return nil, err
	}
	detailed.Tables = counts

	return detailed, nil
}
