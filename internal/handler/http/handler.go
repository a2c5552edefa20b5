package http

import (
	"github.com/lockboxd/lockbox/internal/logger"
	"github.com/lockboxd/lockbox/internal/service"
)

// Handler owns the HTTP transport layer: routing, middleware and the
// request handlers that translate between JSON bodies and the service
// layer.
type Handler struct {
	services *service.Services

	logger *logger.Logger
}

// NewHandler constructs the HTTP handler over the given services.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
