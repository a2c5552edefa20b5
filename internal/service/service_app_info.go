package service

import (
	"context"

	"github.com/lockboxd/lockbox/internal/config"
	"github.com/lockboxd/lockbox/internal/logger"
	"github.com/lockboxd/lockbox/models"
)

type appInfoService struct {
	appVersion string

	logger *logger.Logger
}

// NewAppInfoService constructs the [AppInfoService] backing the health
// endpoint. An unset version is reported as "dev" rather than refusing to
// start.
func NewAppInfoService(cfg config.App, logger *logger.Logger) AppInfoService {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	return &appInfoService{
		appVersion: version,
		logger:     logger,
	}
}

func (s *appInfoService) Health(ctx context.Context) models.HealthResponse {
	return models.HealthResponse{
		OK:      true,
		Version: s.appVersion,
	}
}
