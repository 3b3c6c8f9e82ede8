package scansession

import (
	"list-scanner/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature bundles the scanning engine with its HTTP handler for registration
// with the application loader.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the scansession feature.
func NewFeature(db *gorm.DB, client storage.Client, bucket, prefix string, logger *zap.Logger) *Feature {
	service := NewService(NewStore(db, logger), client, bucket, prefix, logger)
	return &Feature{
		service: service,
		handler: NewHandler(service),
	}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "scansession"
}

// Load migrates the store schema and registers the HTTP routes.
func (f *Feature) Load(app *fiber.App) error {
	if err := f.service.Store().Migrate(); err != nil {
		return err
	}
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the feature's service, used by the CLI commands.
func (f *Feature) Service() *Service {
	return f.service
}
