package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"yogurt-cleaning/internal/models"
)

// CleaningObjectService owns the client's properties. Every mutation
// checks ownership: exactly one client owns an object.
type CleaningObjectService interface {
	Create(ctx context.Context, object *models.CleaningObject) error
	Update(ctx context.Context, clientID primitive.ObjectID, object *models.CleaningObject) error
	Delete(ctx context.Context, clientID, id primitive.ObjectID) error
	GetByClient(ctx context.Context, clientID primitive.ObjectID) ([]models.CleaningObject, error)
}

type cleaningObjectService struct {
	objects CleaningObjectRepository
}

func NewCleaningObjectService(objects CleaningObjectRepository) CleaningObjectService {
	return &cleaningObjectService{objects: objects}
}

func (s *cleaningObjectService) Create(ctx context.Context, object *models.CleaningObject) error {
	if err := object.Validate(); err != nil {
		return err
	}
	return s.objects.Create(ctx, object)
}

func (s *cleaningObjectService) Update(ctx context.Context, clientID primitive.ObjectID, object *models.CleaningObject) error {
	if err := object.Validate(); err != nil {
		return err
	}
	existing, err := s.objects.GetByID(ctx, object.ID)
	if err != nil || existing.IsDeleted {
		return models.ErrNotFound
	}
	if existing.ClientID != clientID {
		return fmt.Errorf("%w: cleaning object belongs to another client", models.ErrValidation)
	}
	object.ClientID = existing.ClientID
	return s.objects.Update(ctx, object)
}

func (s *cleaningObjectService) Delete(ctx context.Context, clientID, id primitive.ObjectID) error {
	existing, err := s.objects.GetByID(ctx, id)
	if err != nil || existing.IsDeleted {
		return models.ErrNotFound
	}
	if existing.ClientID != clientID {
		return fmt.Errorf("%w: cleaning object belongs to another client", models.ErrValidation)
	}
	return s.objects.SoftDelete(ctx, id)
}

func (s *cleaningObjectService) GetByClient(ctx context.Context, clientID primitive.ObjectID) ([]models.CleaningObject, error) {
	return s.objects.GetByClientID(ctx, clientID)
}
