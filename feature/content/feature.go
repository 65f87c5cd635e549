package content

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"content-sync/core/storage"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	cfg     Config
	service *Service
	handler *Handler
}

// NewFeature creates a new Content feature.
func NewFeature(cfg Config, client storage.Client, bucket string, db *gorm.DB, logger *zap.Logger) *Feature {
	svc := NewService(cfg, client, bucket, db, logger)
	h := NewHandler(svc)
	return &Feature{cfg: cfg, service: svc, handler: h}
}

// Service exposes the pipeline service for the CLI commands.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "content"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.cfg.Enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
