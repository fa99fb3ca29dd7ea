package services

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"yogurt-cleaning/internal/models"
	"yogurt-cleaning/internal/utils"
)

func ratingFixture() (*fakeOrderRepo, *fakeCommentRepo, *fakeCleanerRepo, *fakeClientRepo, *models.Order, primitive.ObjectID, primitive.ObjectID) {
	cleanerID := primitive.NewObjectID()
	clientID := primitive.NewObjectID()

	order := &models.Order{
		ID:           primitive.NewObjectID(),
		ClientID:     clientID,
		CleanersBand: []primitive.ObjectID{cleanerID},
		Status:       models.StatusCompleted,
		StartTime:    time.Date(2025, 7, 14, 10, 0, 0, 0, time.UTC),
	}

	orders := newFakeOrderRepo(order)
	comments := newFakeCommentRepo()
	cleaners := newFakeCleanerRepo(&models.Cleaner{ID: cleanerID, Name: "C"})
	clients := newFakeClientRepo(&models.Client{ID: clientID, Name: "K"})
	return orders, comments, cleaners, clients, order, cleanerID, clientID
}

func clientComment(orderID, clientID primitive.ObjectID, rating int) *models.Comment {
	return &models.Comment{
		OrderID: orderID,
		Author:  models.CommentAuthor{Role: models.RoleClient, ID: clientID},
		Rating:  rating,
	}
}

func TestRecomputeCleanerRating_MeanOverClientComments(t *testing.T) {
	orders, comments, cleaners, clients, order, cleanerID, clientID := ratingFixture()
	svc := NewRatingService(orders, comments, cleaners, clients, utils.NewKeyedMutex())
	ctx := context.Background()

	_ = comments.Create(ctx, clientComment(order.ID, clientID, 5))
	second := clientComment(order.ID, clientID, 2)
	_ = comments.Create(ctx, second)

	got, err := svc.RecomputeCleanerRating(ctx, cleanerID)
	if err != nil {
		t.Fatalf("RecomputeCleanerRating: %v", err)
	}
	if got != 3.5 {
		t.Errorf("rating = %v, want 3.5", got)
	}

	// третий комментарий сдвигает среднее
	_ = comments.Create(ctx, clientComment(order.ID, clientID, 5))
	got, _ = svc.RecomputeCleanerRating(ctx, cleanerID)
	if got != 4.0 {
		t.Errorf("rating after third comment = %v, want 4.0", got)
	}

	// удаление двойки возвращает пятёрку
	_ = comments.SoftDelete(ctx, second.ID)
	got, _ = svc.RecomputeCleanerRating(ctx, cleanerID)
	if got != 5.0 {
		t.Errorf("rating after delete = %v, want 5.0", got)
	}

	if cleaners.ratings[cleanerID] != 5.0 {
		t.Errorf("persisted rating = %v, want 5.0", cleaners.ratings[cleanerID])
	}
}

func TestRecomputeCleanerRating_IgnoresCleanerAuthoredComments(t *testing.T) {
	orders, comments, cleaners, clients, order, cleanerID, clientID := ratingFixture()
	svc := NewRatingService(orders, comments, cleaners, clients, utils.NewKeyedMutex())
	ctx := context.Background()

	_ = comments.Create(ctx, clientComment(order.ID, clientID, 4))
	_ = comments.Create(ctx, &models.Comment{
		OrderID: order.ID,
		Author:  models.CommentAuthor{Role: models.RoleCleaner, ID: cleanerID},
		Rating:  1,
	})

	got, err := svc.RecomputeCleanerRating(ctx, cleanerID)
	if err != nil {
		t.Fatalf("RecomputeCleanerRating: %v", err)
	}
	if got != 4.0 {
		t.Errorf("rating = %v, want 4.0 (cleaner's own comment excluded)", got)
	}
}

func TestRecomputeCleanerRating_EmptySetStoresZero(t *testing.T) {
	orders, comments, cleaners, clients, _, cleanerID, _ := ratingFixture()
	svc := NewRatingService(orders, comments, cleaners, clients, utils.NewKeyedMutex())

	got, err := svc.RecomputeCleanerRating(context.Background(), cleanerID)
	if err != nil {
		t.Fatalf("RecomputeCleanerRating: %v", err)
	}
	if got != 0 {
		t.Errorf("rating = %v, want 0 for empty comment set", got)
	}
}

func TestRecomputeCleanerRating_Idempotent(t *testing.T) {
	orders, comments, cleaners, clients, order, cleanerID, clientID := ratingFixture()
	svc := NewRatingService(orders, comments, cleaners, clients, utils.NewKeyedMutex())
	ctx := context.Background()

	_ = comments.Create(ctx, clientComment(order.ID, clientID, 3))
	_ = comments.Create(ctx, clientComment(order.ID, clientID, 4))

	first, _ := svc.RecomputeCleanerRating(ctx, cleanerID)
	second, _ := svc.RecomputeCleanerRating(ctx, cleanerID)
	if first != second {
		t.Errorf("recompute not idempotent: %v then %v", first, second)
	}
}

func TestRecomputeClientRating_MirrorsCleanerCascade(t *testing.T) {
	orders, comments, cleaners, clients, order, cleanerID, clientID := ratingFixture()
	svc := NewRatingService(orders, comments, cleaners, clients, utils.NewKeyedMutex())
	ctx := context.Background()

	_ = comments.Create(ctx, &models.Comment{
		OrderID: order.ID,
		Author:  models.CommentAuthor{Role: models.RoleCleaner, ID: cleanerID},
		Rating:  5,
	})
	_ = comments.Create(ctx, &models.Comment{
		OrderID: order.ID,
		Author:  models.CommentAuthor{Role: models.RoleCleaner, ID: cleanerID},
		Rating:  2,
	})

	got, err := svc.RecomputeClientRating(ctx, clientID)
	if err != nil {
		t.Fatalf("RecomputeClientRating: %v", err)
	}
	if got != 3.5 {
		t.Errorf("client rating = %v, want 3.5", got)
	}
}

func TestGetCleanerRating_ReadsStoredAggregate(t *testing.T) {
	orders, comments, cleaners, clients, _, cleanerID, _ := ratingFixture()
	cleaners.cleaners[cleanerID].Rating = 4.5

	svc := NewRatingService(orders, comments, cleaners, clients, utils.NewKeyedMutex())

	got, err := svc.GetCleanerRating(context.Background(), cleanerID)
	if err != nil {
		t.Fatalf("GetCleanerRating: %v", err)
	}
	if got != 4.5 {
		t.Errorf("rating = %v, want 4.5", got)
	}

	if _, err := svc.GetCleanerRating(context.Background(), primitive.NewObjectID()); err == nil {
		t.Error("unknown cleaner must return an error")
	}
}

func TestCascadeFromComment_TouchesWholeCrew(t *testing.T) {
	orders, comments, cleaners, clients, order, cleanerID, clientID := ratingFixture()

	secondCleaner := &models.Cleaner{ID: primitive.NewObjectID(), Name: "C2"}
	_ = cleaners.Create(context.Background(), secondCleaner)
	order.CleanersBand = append(order.CleanersBand, secondCleaner.ID)

	svc := NewRatingService(orders, comments, cleaners, clients, utils.NewKeyedMutex())
	ctx := context.Background()

	comment := clientComment(order.ID, clientID, 4)
	_ = comments.Create(ctx, comment)

	if err := svc.CascadeFromComment(ctx, comment); err != nil {
		t.Fatalf("CascadeFromComment: %v", err)
	}

	if cleaners.ratings[cleanerID] != 4.0 {
		t.Errorf("first cleaner rating = %v, want 4.0", cleaners.ratings[cleanerID])
	}
	if cleaners.ratings[secondCleaner.ID] != 4.0 {
		t.Errorf("second cleaner rating = %v, want 4.0", cleaners.ratings[secondCleaner.ID])
	}
}
