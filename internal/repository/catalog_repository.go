package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"yogurt-cleaning/internal/models"
)

// Catalog repositories: bundles and standalone services share the same
// thin collection shape.

type BundleRepository struct {
	collection *mongo.Collection
}

func NewBundleRepository(db *mongo.Database) *BundleRepository {
	return &BundleRepository{collection: db.Collection("bundles")}
}

func (r *BundleRepository) Create(ctx context.Context, bundle *models.Bundle) error {
	bundle.ID = primitive.NewObjectID()
	bundle.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	bundle.UpdatedAt = bundle.CreatedAt
	_, err := r.collection.InsertOne(ctx, bundle)
	return err
}

func (r *BundleRepository) Update(ctx context.Context, bundle *models.Bundle) error {
	bundle.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())
	_, err := r.collection.UpdateByID(ctx, bundle.ID, bson.M{"$set": bundle})
	return err
}

func (r *BundleRepository) GetAll(ctx context.Context) ([]models.Bundle, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, err
	}
	var bundles []models.Bundle
	err = cursor.All(ctx, &bundles)
	return bundles, err
}

func (r *BundleRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Bundle, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "isActive": true})
	if err != nil {
		return nil, err
	}
	var bundles []models.Bundle
	err = cursor.All(ctx, &bundles)
	return bundles, err
}

func (r *BundleRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, isActive bool) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{"isActive": isActive}})
	return err
}

type ServiceRepository struct {
	collection *mongo.Collection
}

func NewServiceRepository(db *mongo.Database) *ServiceRepository {
	return &ServiceRepository{collection: db.Collection("services")}
}

func (r *ServiceRepository) Create(ctx context.Context, service *models.CleaningService) error {
	service.ID = primitive.NewObjectID()
	service.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	service.UpdatedAt = service.CreatedAt
	_, err := r.collection.InsertOne(ctx, service)
	return err
}

func (r *ServiceRepository) Update(ctx context.Context, service *models.CleaningService) error {
	service.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())
	_, err := r.collection.UpdateByID(ctx, service.ID, bson.M{"$set": service})
	return err
}

func (r *ServiceRepository) GetAll(ctx context.Context) ([]models.CleaningService, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, err
	}
	var services []models.CleaningService
	err = cursor.All(ctx, &services)
	return services, err
}

func (r *ServiceRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.CleaningService, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "isActive": true})
	if err != nil {
		return nil, err
	}
	var services []models.CleaningService
	err = cursor.All(ctx, &services)
	return services, err
}

func (r *ServiceRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, isActive bool) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{"isActive": isActive}})
	return err
}
