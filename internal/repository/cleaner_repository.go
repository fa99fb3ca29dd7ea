package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"yogurt-cleaning/internal/models"
)

type CleanerRepository struct {
	collection *mongo.Collection
	orders     *OrderRepository
}

func NewCleanerRepository(db *mongo.Database, orders *OrderRepository) *CleanerRepository {
	return &CleanerRepository{collection: db.Collection("cleaners"), orders: orders}
}

func (r *CleanerRepository) Create(ctx context.Context, cleaner *models.Cleaner) error {
	cleaner.ID = primitive.NewObjectID()
	cleaner.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, cleaner)
	return err
}

func (r *CleanerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Cleaner, error) {
	var cleaner models.Cleaner
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&cleaner)
	return &cleaner, err
}

func (r *CleanerRepository) GetByEmail(ctx context.Context, email string) (*models.Cleaner, error) {
	var cleaner models.Cleaner
	err := r.collection.FindOne(ctx, bson.M{"email": email, "is_deleted": false}).Decode(&cleaner)
	return &cleaner, err
}

func (r *CleanerRepository) GetAll(ctx context.Context) ([]models.Cleaner, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"is_deleted": false})
	if err != nil {
		return nil, err
	}
	var cleaners []models.Cleaner
	err = cursor.All(ctx, &cleaners)
	return cleaners, err
}

// GetWorkingCleaners returns the cleaners whose schedule covers the date,
// each with that day's orders loaded for availability checks. The roster
// per day is small, so the weekday filter runs in memory.
func (r *CleanerRepository) GetWorkingCleaners(ctx context.Context, date time.Time) ([]models.Cleaner, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	working := make([]models.Cleaner, 0, len(all))
	for _, cleaner := range all {
		if !cleaner.WorksOn(date) {
			continue
		}
		orders, err := r.orders.GetByCleanerIDAndDate(ctx, cleaner.ID, date)
		if err != nil {
			return nil, err
		}
		cleaner.Orders = orders
		working = append(working, cleaner)
	}
	return working, nil
}

func (r *CleanerRepository) GetByIDWithOrders(ctx context.Context, id primitive.ObjectID, date time.Time) (*models.Cleaner, error) {
	cleaner, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	orders, err := r.orders.GetByCleanerIDAndDate(ctx, id, date)
	if err != nil {
		return nil, err
	}
	cleaner.Orders = orders
	return cleaner, nil
}

func (r *CleanerRepository) UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{"rating": rating}})
	return err
}

func (r *CleanerRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{"is_deleted": true}})
	return err
}
