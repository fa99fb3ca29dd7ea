package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"yogurt-cleaning/internal/models"
)

type CommentService interface {
	AddComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id primitive.ObjectID) error
	GetCommentsByOrder(ctx context.Context, orderID primitive.ObjectID) ([]models.Comment, error)
}

type commentService struct {
	comments CommentRepository
	orders   OrderRepository
	ratings  RatingService
}

func NewCommentService(comments CommentRepository, orders OrderRepository, ratings RatingService) CommentService {
	return &commentService{comments: comments, orders: orders, ratings: ratings}
}

// AddComment stores a comment on a completed order and cascades the new
// rating into the commented-about parties. The author tag is resolved by
// the handler from the authenticated user before the comment gets here.
func (s *commentService) AddComment(ctx context.Context, comment *models.Comment) error {
	if err := comment.Validate(); err != nil {
		return err
	}
	order, err := s.orders.GetByID(ctx, comment.OrderID)
	if err != nil {
		return models.ErrNotFound
	}
	if order.Status != models.StatusCompleted {
		return fmt.Errorf("%w: comments are only allowed on completed orders", models.ErrValidation)
	}
	if err := s.authorBelongsToOrder(comment, order); err != nil {
		return err
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return err
	}
	return s.ratings.CascadeFromComment(ctx, comment)
}

// DeleteComment soft-deletes and re-runs the cascade so the removed rating
// stops contributing to the aggregate.
func (s *commentService) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return models.ErrNotFound
	}
	if err := s.comments.SoftDelete(ctx, id); err != nil {
		return err
	}
	comment.IsDeleted = true
	return s.ratings.CascadeFromComment(ctx, comment)
}

func (s *commentService) GetCommentsByOrder(ctx context.Context, orderID primitive.ObjectID) ([]models.Comment, error) {
	comments, err := s.comments.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	visible := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		if !c.IsDeleted {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

func (s *commentService) authorBelongsToOrder(comment *models.Comment, order *models.Order) error {
	switch comment.Author.Role {
	case models.RoleClient:
		if order.ClientID != comment.Author.ID {
			return fmt.Errorf("%w: comment author is not the order's client", models.ErrValidation)
		}
	case models.RoleCleaner:
		for _, id := range order.CleanersBand {
			if id == comment.Author.ID {
				return nil
			}
		}
		return fmt.Errorf("%w: comment author is not on the order's crew", models.ErrValidation)
	}
	return nil
}
