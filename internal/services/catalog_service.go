package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"yogurt-cleaning/internal/models"
)

// CatalogService manages the bookable work: bundles and standalone
// services. Admin-only mutations; deactivation is the soft delete.
type CatalogService interface {
	CreateBundle(ctx context.Context, bundle *models.Bundle) error
	UpdateBundle(ctx context.Context, bundle *models.Bundle) error
	SetBundleStatus(ctx context.Context, id string, isActive bool) error
	GetBundles(ctx context.Context) ([]models.Bundle, error)
	CreateService(ctx context.Context, service *models.CleaningService) error
	UpdateService(ctx context.Context, service *models.CleaningService) error
	SetServiceStatus(ctx context.Context, id string, isActive bool) error
	GetServices(ctx context.Context) ([]models.CleaningService, error)
}

type catalogService struct {
	bundles  BundleRepository
	services ServiceRepository
}

func NewCatalogService(bundles BundleRepository, services ServiceRepository) CatalogService {
	return &catalogService{bundles: bundles, services: services}
}

func (s *catalogService) CreateBundle(ctx context.Context, bundle *models.Bundle) error {
	if err := bundle.Validate(); err != nil {
		return err
	}
	// the bundle's constituent services must exist and be active
	found, err := s.services.GetByIDs(ctx, bundle.ServiceIDs)
	if err != nil || len(found) != len(bundle.ServiceIDs) {
		return fmt.Errorf("%w: bundle service", models.ErrNotFound)
	}
	bundle.IsActive = true
	return s.bundles.Create(ctx, bundle)
}

func (s *catalogService) UpdateBundle(ctx context.Context, bundle *models.Bundle) error {
	if bundle.ID.IsZero() {
		return models.ErrInvalidID
	}
	if err := bundle.Validate(); err != nil {
		return err
	}
	found, err := s.services.GetByIDs(ctx, bundle.ServiceIDs)
	if err != nil || len(found) != len(bundle.ServiceIDs) {
		return fmt.Errorf("%w: bundle service", models.ErrNotFound)
	}
	return s.bundles.Update(ctx, bundle)
}

func (s *catalogService) SetBundleStatus(ctx context.Context, id string, isActive bool) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}
	return s.bundles.UpdateStatus(ctx, objID, isActive)
}

func (s *catalogService) GetBundles(ctx context.Context) ([]models.Bundle, error) {
	return s.bundles.GetAll(ctx)
}

func (s *catalogService) CreateService(ctx context.Context, service *models.CleaningService) error {
	if err := service.Validate(); err != nil {
		return err
	}
	service.IsActive = true
	return s.services.Create(ctx, service)
}

func (s *catalogService) UpdateService(ctx context.Context, service *models.CleaningService) error {
	if service.ID.IsZero() {
		return models.ErrInvalidID
	}
	if err := service.Validate(); err != nil {
		return err
	}
	return s.services.Update(ctx, service)
}

func (s *catalogService) SetServiceStatus(ctx context.Context, id string, isActive bool) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}
	return s.services.UpdateStatus(ctx, objID, isActive)
}

func (s *catalogService) GetServices(ctx context.Context) ([]models.CleaningService, error) {
	return s.services.GetAll(ctx)
}
