package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/greatday-recap-api/internal/repository"
	"github.com/noah-isme/greatday-recap-api/internal/service"
	"github.com/noah-isme/greatday-recap-api/pkg/cache"
	"github.com/noah-isme/greatday-recap-api/pkg/config"
	"github.com/noah-isme/greatday-recap-api/pkg/database"
	"github.com/noah-isme/greatday-recap-api/pkg/webhook"
)

// BuildRecapService wires a ready-to-run recap service from
// configuration. The returned cleanup closes whatever state backend
// was opened.
func BuildRecapService(cfg *config.Config, logr *zap.Logger, metrics *service.MetricsService) (*service.RecapService, func(), error) {
	store, cleanup, err := buildStateStore(cfg, logr)
	if err != nil {
		return nil, nil, err
	}

	client := repository.NewGreatDayClient(cfg.GreatDay, logr)
	filter := service.NewExclusionFilter(cfg.Exclusions.EmpIDs, cfg.Exclusions.EmpNos)

	var exporter *service.ExportService
	if cfg.Export.Enabled {
		exporter = service.NewExportService(cfg.Export.StorageDir, logr)
	}

	params := service.RecapServiceParams{
		Attendance: repository.NewAttendanceRepository(client),
		Leaves:     repository.NewLeaveRepository(client, cfg.GreatDay.PageLimit),
		Overtime:   repository.NewOvertimeRepository(client, cfg.GreatDay.PageLimit),
		Employees:  repository.NewEmployeeRepository(client, cfg.GreatDay.PageLimit),
		Publisher:  webhook.NewClient(cfg.Webhook.URL, cfg.Webhook.Timeout),
		Filter:     filter,
		Formatter:  service.NewFormatter(cfg.Report.MaxLinesPerSection, cfg.Report.TopN),
		Gate:       service.NewIdempotencyGate(store),
		Metrics:    metrics,
		Logger:     logr,
		TopN:       cfg.Report.TopN,
	}
	if exporter != nil {
		params.Exporter = exporter
	}

	return service.NewRecapService(params), cleanup, nil
}

func buildStateStore(cfg *config.Config, logr *zap.Logger) (repository.StateStore, func(), error) {
	switch cfg.State.Backend {
	case config.StateBackendFile, "":
		return repository.NewFileStateStore(cfg.State.File, logr), func() {}, nil

	case config.StateBackendRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis state backend: %w", err)
		}
		return repository.NewRedisStateStore(client, cfg.State.RedisKey, logr), func() { _ = client.Close() }, nil

	case config.StateBackendPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres state backend: %w", err)
		}
		store, err := repository.NewPostgresStateStore(db, logr)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown state backend %q", cfg.State.Backend)
	}
}
