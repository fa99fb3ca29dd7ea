package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"yogurt-cleaning/internal/models"
)

type ClientRepository struct {
	collection *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{collection: db.Collection("clients")}
}

func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	client.ID = primitive.NewObjectID()
	client.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, client)
	return err
}

func (r *ClientRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	var client models.Client
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&client)
	return &client, err
}

func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	var client models.Client
	err := r.collection.FindOne(ctx, bson.M{"email": email, "is_deleted": false}).Decode(&client)
	return &client, err
}

func (r *ClientRepository) UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{"rating": rating}})
	return err
}

func (r *ClientRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{"is_deleted": true}})
	return err
}

type AdminRepository struct {
	collection *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{collection: db.Collection("admins")}
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	return &admin, err
}
