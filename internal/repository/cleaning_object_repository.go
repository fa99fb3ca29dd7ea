package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"yogurt-cleaning/internal/models"
)

type CleaningObjectRepository struct {
	collection *mongo.Collection
}

func NewCleaningObjectRepository(db *mongo.Database) *CleaningObjectRepository {
	return &CleaningObjectRepository{collection: db.Collection("cleaning_objects")}
}

func (r *CleaningObjectRepository) Create(ctx context.Context, object *models.CleaningObject) error {
	object.ID = primitive.NewObjectID()
	object.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	object.UpdatedAt = object.CreatedAt
	_, err := r.collection.InsertOne(ctx, object)
	return err
}

func (r *CleaningObjectRepository) Update(ctx context.Context, object *models.CleaningObject) error {
	object.UpdatedAt = primitive.NewDateTimeFromTime(time.Now())
	_, err := r.collection.UpdateByID(ctx, object.ID, bson.M{"$set": object})
	return err
}

func (r *CleaningObjectRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{"is_deleted": true}})
	return err
}

func (r *CleaningObjectRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.CleaningObject, error) {
	var object models.CleaningObject
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&object)
	return &object, err
}

func (r *CleaningObjectRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]models.CleaningObject, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"client_id": clientID, "is_deleted": false})
	if err != nil {
		return nil, err
	}
	var objects []models.CleaningObject
	err = cursor.All(ctx, &objects)
	return objects, err
}
