package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"yogurt-cleaning/internal/models"
)

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{collection: db.Collection("orders")}
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, order)
	return err
}

func (r *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	order.UpdatedAt = time.Now()
	_, err := r.collection.UpdateByID(ctx, order.ID, bson.M{"$set": order})
	return err
}

func (r *OrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	return &order, err
}

func (r *OrderRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]models.Order, error) {
	return r.find(ctx, bson.M{"client_id": clientID})
}

func (r *OrderRepository) GetByCleanerID(ctx context.Context, cleanerID primitive.ObjectID) ([]models.Order, error) {
	return r.find(ctx, bson.M{"cleaners_band": cleanerID})
}

func (r *OrderRepository) GetByCleanerIDAndDate(ctx context.Context, cleanerID primitive.ObjectID, date time.Time) ([]models.Order, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return r.find(ctx, bson.M{
		"cleaners_band": cleanerID,
		"start_time": bson.M{
			"$gte": dayStart,
			"$lt":  dayStart.Add(24 * time.Hour),
		},
		"status": bson.M{"$nin": []models.OrderStatus{models.StatusCancelled}},
	})
}

func (r *OrderRepository) GetByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	err = cursor.All(ctx, &orders)
	return orders, err
}
