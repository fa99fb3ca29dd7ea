package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"yogurt-cleaning/internal/config"
	"yogurt-cleaning/internal/models"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]models.Order, error)
	GetByCleanerID(ctx context.Context, cleanerID primitive.ObjectID) ([]models.Order, error)
	GetByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
}

type CleaningObjectRepository interface {
	Create(ctx context.Context, object *models.CleaningObject) error
	Update(ctx context.Context, object *models.CleaningObject) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.CleaningObject, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]models.CleaningObject, error)
}

type BundleRepository interface {
	Create(ctx context.Context, bundle *models.Bundle) error
	Update(ctx context.Context, bundle *models.Bundle) error
	GetAll(ctx context.Context) ([]models.Bundle, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Bundle, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, isActive bool) error
}

type ServiceRepository interface {
	Create(ctx context.Context, service *models.CleaningService) error
	Update(ctx context.Context, service *models.CleaningService) error
	GetAll(ctx context.Context) ([]models.CleaningService, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.CleaningService, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, isActive bool) error
}

// CrewNotifier is the email collaborator reached when crew matching comes
// up short.
type CrewNotifier interface {
	NotifyInsufficientCrew(order models.Order, found int) error
}

type OrderService interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateOrder(ctx context.Context, id primitive.ObjectID, updated *models.Order) error
	CancelOrder(ctx context.Context, id primitive.ObjectID) error
	StartOrder(ctx context.Context, id primitive.ObjectID) error
	CompleteOrder(ctx context.Context, id primitive.ObjectID) error
	AssembleCrew(ctx context.Context, id primitive.ObjectID) ([]models.Cleaner, error)
	GetOrderByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	GetOrdersByClient(ctx context.Context, clientID primitive.ObjectID) ([]models.Order, error)
	GetAllOrders(ctx context.Context) ([]models.Order, error)
}

type orderService struct {
	repo     OrderRepository
	objects  CleaningObjectRepository
	bundles  BundleRepository
	services ServiceRepository
	crew     CrewService
	notifier CrewNotifier
	redis    *redis.Client
	cfg      *config.Config
}

func NewOrderService(
	repo OrderRepository,
	objects CleaningObjectRepository,
	bundles BundleRepository,
	services ServiceRepository,
	crew CrewService,
	notifier CrewNotifier,
	rdb *redis.Client,
	cfg *config.Config,
) OrderService {
	return &orderService{
		repo:     repo,
		objects:  objects,
		bundles:  bundles,
		services: services,
		crew:     crew,
		notifier: notifier,
		redis:    rdb,
		cfg:      cfg,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, order *models.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	if order.StartTime.Hour() >= s.cfg.WorkdayEndHour {
		return fmt.Errorf("%w: start time is outside the working day", models.ErrValidation)
	}

	if err := s.recompute(ctx, order); err != nil {
		return err
	}

	// computed fields come from the recompute chain, never from input
	order.CleanersBand = nil
	order.Status = models.StatusCreated
	if err := s.repo.Create(ctx, order); err != nil {
		return err
	}
	s.invalidateCaches(ctx, order.ClientID)

	s.tryAssembleCrew(ctx, order)
	return nil
}

func (s *orderService) UpdateOrder(ctx context.Context, id primitive.ObjectID, updated *models.Order) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.ErrNotFound
	}
	if existing.Status == models.StatusCompleted || existing.Status == models.StatusCancelled {
		return fmt.Errorf("%w: order is %s", models.ErrValidation, existing.Status)
	}

	existing.BundleIDs = updated.BundleIDs
	existing.ServiceIDs = updated.ServiceIDs
	existing.StartTime = updated.StartTime
	existing.Comment = updated.Comment
	if err := existing.Validate(); err != nil {
		return err
	}
	if existing.StartTime.Hour() >= s.cfg.WorkdayEndHour {
		return fmt.Errorf("%w: start time is outside the working day", models.ErrValidation)
	}

	// Any change to bundles, services or start time restarts the chain:
	// duration, then crew size, then end time, then a fresh crew.
	if err := s.recompute(ctx, existing); err != nil {
		return err
	}
	existing.CleanersBand = nil
	existing.Status = models.StatusCreated

	if err := s.repo.Update(ctx, existing); err != nil {
		return err
	}
	s.invalidateCaches(ctx, existing.ClientID)

	s.tryAssembleCrew(ctx, existing)
	return nil
}

func (s *orderService) CancelOrder(ctx context.Context, id primitive.ObjectID) error {
	return s.transition(ctx, id, models.StatusCancelled)
}

func (s *orderService) StartOrder(ctx context.Context, id primitive.ObjectID) error {
	return s.transition(ctx, id, models.StatusInProgress)
}

func (s *orderService) CompleteOrder(ctx context.Context, id primitive.ObjectID) error {
	return s.transition(ctx, id, models.StatusCompleted)
}

// AssembleCrew retries crew matching for an order that is still waiting,
// e.g. from the needs-crew sweep or a manager action.
func (s *orderService) AssembleCrew(ctx context.Context, id primitive.ObjectID) ([]models.Cleaner, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	crew := s.tryAssembleCrew(ctx, order)
	return crew, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	return order, nil
}

func (s *orderService) GetOrdersByClient(ctx context.Context, clientID primitive.ObjectID) ([]models.Order, error) {
	cacheKey := fmt.Sprintf("orders_by_client:%s", clientID.Hex())

	var cached []models.Order
	val, err := s.redis.Get(ctx, cacheKey).Result()
	if err == nil {
		if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
			return cached, nil
		}
	}

	orders, err := s.repo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	data, _ := json.Marshal(orders)
	_ = s.redis.Set(ctx, cacheKey, data, 5*time.Minute).Err()

	return orders, nil
}

func (s *orderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	cacheKey := allOrdersCacheKey

	var cached []models.Order
	val, err := s.redis.Get(ctx, cacheKey).Result()
	if err == nil {
		if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
			return cached, nil
		}
	}

	orders, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	data, _ := json.Marshal(orders)
	_ = s.redis.Set(ctx, cacheKey, data, 5*time.Minute).Err()

	return orders, nil
}

// recompute loads the order's cleaning object, bundles and services and
// rebuilds the computed fields in dependency order: total duration, total
// price, crew size, end time.
func (s *orderService) recompute(ctx context.Context, order *models.Order) error {
	object, err := s.objects.GetByID(ctx, order.CleaningObjectID)
	if err != nil || object.IsDeleted {
		return fmt.Errorf("%w: cleaning object", models.ErrNotFound)
	}
	if object.ClientID != order.ClientID {
		return fmt.Errorf("%w: cleaning object belongs to another client", models.ErrValidation)
	}

	bundles, err := s.bundles.GetByIDs(ctx, order.BundleIDs)
	if err != nil || len(bundles) != len(order.BundleIDs) {
		return fmt.Errorf("%w: bundle", models.ErrNotFound)
	}
	services, err := s.services.GetByIDs(ctx, order.ServiceIDs)
	if err != nil || len(services) != len(order.ServiceIDs) {
		return fmt.Errorf("%w: service", models.ErrNotFound)
	}

	order.TotalDuration = ComputeTotalDuration(*object, bundles, services)
	order.TotalPrice = ComputeTotalPrice(*object, bundles, services)
	order.CleanersCount = ComputeCrewSize(order.TotalDuration, order.StartTime, s.cfg.WorkdayEndHour)
	order.EndTime = ComputeEndTime(order.StartTime, order.TotalDuration, order.CleanersCount)
	return nil
}

// tryAssembleCrew runs the matcher and records the outcome. A shortfall is
// not an error: the order goes to needs_crew and the admin is mailed.
func (s *orderService) tryAssembleCrew(ctx context.Context, order *models.Order) []models.Cleaner {
	crew, err := s.crew.AssignCrew(ctx, order)
	if err != nil {
		log.Printf("Failed to assemble crew for order %s: %v", order.ID.Hex(), err)
		return nil
	}
	if len(crew) >= order.CleanersCount {
		s.invalidateCaches(ctx, order.ClientID)
		return crew
	}

	order.Status = models.StatusNeedsCrew
	if err := s.repo.Update(ctx, order); err != nil {
		log.Printf("Failed to mark order %s as needs_crew: %v", order.ID.Hex(), err)
	}
	s.invalidateCaches(ctx, order.ClientID)

	if err := s.notifier.NotifyInsufficientCrew(*order, len(crew)); err != nil {
		log.Printf("Failed to send insufficient crew notification: %v", err)
	}
	return crew
}

func (s *orderService) transition(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.ErrNotFound
	}
	if !canTransition(order.Status, status) {
		return fmt.Errorf("%w: order is %s, cannot move to %s", models.ErrValidation, order.Status, status)
	}
	order.Status = status
	if err := s.repo.Update(ctx, order); err != nil {
		return err
	}
	s.invalidateCaches(ctx, order.ClientID)
	return nil
}

// canTransition enforces the order lifecycle: work starts only with a crew
// on board, finishes only from in_progress, and terminal orders stay put.
func canTransition(from, to models.OrderStatus) bool {
	switch to {
	case models.StatusInProgress:
		return from == models.StatusCrewAssigned
	case models.StatusCompleted:
		return from == models.StatusInProgress
	case models.StatusCancelled:
		return from != models.StatusCompleted && from != models.StatusCancelled
	default:
		return false
	}
}

func (s *orderService) invalidateCaches(ctx context.Context, clientID primitive.ObjectID) {
	cacheKey := fmt.Sprintf("orders_by_client:%s", clientID.Hex())
	if err := s.redis.Del(ctx, cacheKey, allOrdersCacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate cache: %v", err)
	}
}
