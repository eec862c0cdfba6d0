package updates

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface for the updates pipeline.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new updates feature around an assembled service.
func NewFeature(svc *Service) *Feature {
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "updates"
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

// Service exposes the underlying service for command-line use.
func (f *Feature) Service() *Service {
	return f.service
}
