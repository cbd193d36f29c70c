package integrity

import (
	"gamedata-sync/core/storage"
	"gamedata-sync/feature/gamedata"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new integrity feature.
func NewFeature(db *gorm.DB, client storage.Client, storageCfg *storage.Config, dataCfg *gamedata.Config, logger *zap.Logger) *Feature {
	svc := NewService(db, client, storageCfg, dataCfg, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "integrity"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the integrity service for CLI entrypoints.
func (f *Feature) Service() *Service {
	return f.service
}
