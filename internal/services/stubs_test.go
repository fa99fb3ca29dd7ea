package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"yogurt-cleaning/internal/models"
)

// In-memory doubles for the repository interfaces.

type fakeOrderRepo struct {
	orders  map[primitive.ObjectID]*models.Order
	updates int
}

func newFakeOrderRepo(orders ...*models.Order) *fakeOrderRepo {
	f := &fakeOrderRepo{orders: make(map[primitive.ObjectID]*models.Order)}
	for _, o := range orders {
		if o.ID.IsZero() {
			o.ID = primitive.NewObjectID()
		}
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) Update(_ context.Context, order *models.Order) error {
	f.orders[order.ID] = order
	f.updates++
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) GetByClientID(_ context.Context, clientID primitive.ObjectID) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.ClientID == clientID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetByCleanerID(_ context.Context, cleanerID primitive.ObjectID) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		for _, id := range o.CleanersBand {
			if id == cleanerID {
				out = append(out, *o)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetByStatus(_ context.Context, status models.OrderStatus) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.Status == status {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetAll(_ context.Context) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

type fakeCleanerRepo struct {
	mu       sync.Mutex
	cleaners map[primitive.ObjectID]*models.Cleaner
	ratings  map[primitive.ObjectID]float64
}

func newFakeCleanerRepo(cleaners ...*models.Cleaner) *fakeCleanerRepo {
	f := &fakeCleanerRepo{
		cleaners: make(map[primitive.ObjectID]*models.Cleaner),
		ratings:  make(map[primitive.ObjectID]float64),
	}
	for _, c := range cleaners {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		f.cleaners[c.ID] = c
	}
	return f
}

func (f *fakeCleanerRepo) Create(_ context.Context, cleaner *models.Cleaner) error {
	if cleaner.ID.IsZero() {
		cleaner.ID = primitive.NewObjectID()
	}
	f.cleaners[cleaner.ID] = cleaner
	return nil
}

func (f *fakeCleanerRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Cleaner, error) {
	cleaner, ok := f.cleaners[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return cleaner, nil
}

func (f *fakeCleanerRepo) GetByEmail(_ context.Context, email string) (*models.Cleaner, error) {
	for _, c := range f.cleaners {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeCleanerRepo) GetAll(_ context.Context) ([]models.Cleaner, error) {
	var out []models.Cleaner
	for _, c := range f.cleaners {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCleanerRepo) GetWorkingCleaners(_ context.Context, date time.Time) ([]models.Cleaner, error) {
	var out []models.Cleaner
	for _, c := range f.cleaners {
		if c.WorksOn(date) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCleanerRepo) GetByIDWithOrders(_ context.Context, id primitive.ObjectID, _ time.Time) (*models.Cleaner, error) {
	return f.GetByID(context.Background(), id)
}

func (f *fakeCleanerRepo) UpdateRating(_ context.Context, id primitive.ObjectID, rating float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ratings[id] = rating
	return nil
}

type fakeClientRepo struct {
	clients map[primitive.ObjectID]*models.Client
	ratings map[primitive.ObjectID]float64
}

func newFakeClientRepo(clients ...*models.Client) *fakeClientRepo {
	f := &fakeClientRepo{
		clients: make(map[primitive.ObjectID]*models.Client),
		ratings: make(map[primitive.ObjectID]float64),
	}
	for _, c := range clients {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		f.clients[c.ID] = c
	}
	return f
}

func (f *fakeClientRepo) Create(_ context.Context, client *models.Client) error {
	if client.ID.IsZero() {
		client.ID = primitive.NewObjectID()
	}
	f.clients[client.ID] = client
	return nil
}

func (f *fakeClientRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return client, nil
}

func (f *fakeClientRepo) GetByEmail(_ context.Context, email string) (*models.Client, error) {
	for _, c := range f.clients {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeClientRepo) UpdateRating(_ context.Context, id primitive.ObjectID, rating float64) error {
	f.ratings[id] = rating
	return nil
}

type fakeCommentRepo struct {
	comments map[primitive.ObjectID]*models.Comment
}

func newFakeCommentRepo(comments ...*models.Comment) *fakeCommentRepo {
	f := &fakeCommentRepo{comments: make(map[primitive.ObjectID]*models.Comment)}
	for _, c := range comments {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		f.comments[c.ID] = c
	}
	return f
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	comment, ok := f.comments[id]
	if !ok {
		return models.ErrNotFound
	}
	comment.IsDeleted = true
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return comment, nil
}

func (f *fakeCommentRepo) GetByOrderID(_ context.Context, orderID primitive.ObjectID) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range f.comments {
		if c.OrderID == orderID {
			out = append(out, *c)
		}
	}
	return out, nil
}
