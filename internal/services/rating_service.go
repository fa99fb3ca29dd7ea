package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"yogurt-cleaning/internal/models"
	"yogurt-cleaning/internal/utils"
)

type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error)
	GetByEmail(ctx context.Context, email string) (*models.Client, error)
	UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	GetByOrderID(ctx context.Context, orderID primitive.ObjectID) ([]models.Comment, error)
}

// RatingService keeps the aggregate ratings stored on cleaners and clients
// consistent with the live set of comments. Recomputation is a full rebuild
// from the comment source of truth, serialized per party so concurrent
// comment traffic for one party cannot interleave the read and the write.
type RatingService interface {
	RecomputeCleanerRating(ctx context.Context, cleanerID primitive.ObjectID) (float64, error)
	RecomputeClientRating(ctx context.Context, clientID primitive.ObjectID) (float64, error)
	CascadeFromComment(ctx context.Context, comment *models.Comment) error
	GetCleanerRating(ctx context.Context, cleanerID primitive.ObjectID) (float64, error)
	GetClientRating(ctx context.Context, clientID primitive.ObjectID) (float64, error)
}

type ratingService struct {
	orders   OrderRepository
	comments CommentRepository
	cleaners CleanerRepository
	clients  ClientRepository
	locks    *utils.KeyedMutex
}

func NewRatingService(
	orders OrderRepository,
	comments CommentRepository,
	cleaners CleanerRepository,
	clients ClientRepository,
	locks *utils.KeyedMutex,
) RatingService {
	return &ratingService{
		orders:   orders,
		comments: comments,
		cleaners: cleaners,
		clients:  clients,
		locks:    locks,
	}
}

// RecomputeCleanerRating rebuilds the cleaner's rating as the mean of all
// non-deleted client-authored comments on orders the cleaner worked.
// An empty comment set stores 0: no rating yet.
func (s *ratingService) RecomputeCleanerRating(ctx context.Context, cleanerID primitive.ObjectID) (float64, error) {
	unlock := s.locks.Lock("rating:cleaner:" + cleanerID.Hex())
	defer unlock()

	orders, err := s.orders.GetByCleanerID(ctx, cleanerID)
	if err != nil {
		return 0, err
	}

	rating, err := s.meanRating(ctx, orders, models.RoleClient)
	if err != nil {
		return 0, err
	}
	if err := s.cleaners.UpdateRating(ctx, cleanerID, rating); err != nil {
		return 0, err
	}
	return rating, nil
}

// RecomputeClientRating is the mirror: cleaner-authored comments on the
// client's orders.
func (s *ratingService) RecomputeClientRating(ctx context.Context, clientID primitive.ObjectID) (float64, error) {
	unlock := s.locks.Lock("rating:client:" + clientID.Hex())
	defer unlock()

	orders, err := s.orders.GetByClientID(ctx, clientID)
	if err != nil {
		return 0, err
	}

	rating, err := s.meanRating(ctx, orders, models.RoleCleaner)
	if err != nil {
		return 0, err
	}
	if err := s.clients.UpdateRating(ctx, clientID, rating); err != nil {
		return 0, err
	}
	return rating, nil
}

// CascadeFromComment recomputes every party affected by the comment: a
// client-authored comment touches each cleaner in the order's crew, a
// cleaner-authored one touches the order's client. Runs after both creation
// and soft deletion.
func (s *ratingService) CascadeFromComment(ctx context.Context, comment *models.Comment) error {
	order, err := s.orders.GetByID(ctx, comment.OrderID)
	if err != nil {
		return models.ErrNotFound
	}

	switch comment.Author.Role {
	case models.RoleClient:
		g, gctx := errgroup.WithContext(ctx)
		for _, cleanerID := range order.CleanersBand {
			g.Go(func() error {
				_, err := s.RecomputeCleanerRating(gctx, cleanerID)
				return err
			})
		}
		return g.Wait()
	case models.RoleCleaner:
		_, err := s.RecomputeClientRating(ctx, order.ClientID)
		return err
	default:
		return models.ErrValidation
	}
}

// GetCleanerRating reads the stored aggregate without recomputing.
func (s *ratingService) GetCleanerRating(ctx context.Context, cleanerID primitive.ObjectID) (float64, error) {
	cleaner, err := s.cleaners.GetByID(ctx, cleanerID)
	if err != nil {
		return 0, models.ErrNotFound
	}
	return cleaner.Rating, nil
}

func (s *ratingService) GetClientRating(ctx context.Context, clientID primitive.ObjectID) (float64, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return 0, models.ErrNotFound
	}
	return client.Rating, nil
}

// meanRating averages the non-deleted comments of the given authorship
// across the orders. Division by zero never happens: no comments means 0.
func (s *ratingService) meanRating(ctx context.Context, orders []models.Order, authorRole models.Role) (float64, error) {
	var sum, count float64
	for _, order := range orders {
		comments, err := s.comments.GetByOrderID(ctx, order.ID)
		if err != nil {
			return 0, err
		}
		for _, c := range comments {
			if c.IsDeleted || c.Author.Role != authorRole {
				continue
			}
			sum += float64(c.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sum / count, nil
}
