package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"yogurt-cleaning/internal/config"
	"yogurt-cleaning/internal/models"
)

type fakeObjectRepo struct {
	objects map[primitive.ObjectID]*models.CleaningObject
}

func (f *fakeObjectRepo) Create(_ context.Context, o *models.CleaningObject) error {
	f.objects[o.ID] = o
	return nil
}
func (f *fakeObjectRepo) Update(_ context.Context, o *models.CleaningObject) error {
	f.objects[o.ID] = o
	return nil
}
func (f *fakeObjectRepo) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	f.objects[id].IsDeleted = true
	return nil
}
func (f *fakeObjectRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.CleaningObject, error) {
	o, ok := f.objects[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return o, nil
}
func (f *fakeObjectRepo) GetByClientID(_ context.Context, _ primitive.ObjectID) ([]models.CleaningObject, error) {
	return nil, nil
}

type fakeBundleRepo struct {
	bundles map[primitive.ObjectID]models.Bundle
}

func (f *fakeBundleRepo) Create(_ context.Context, b *models.Bundle) error {
	f.bundles[b.ID] = *b
	return nil
}
func (f *fakeBundleRepo) Update(_ context.Context, b *models.Bundle) error {
	f.bundles[b.ID] = *b
	return nil
}
func (f *fakeBundleRepo) GetAll(_ context.Context) ([]models.Bundle, error) { return nil, nil }
func (f *fakeBundleRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Bundle, error) {
	var out []models.Bundle
	for _, id := range ids {
		if b, ok := f.bundles[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}
func (f *fakeBundleRepo) UpdateStatus(_ context.Context, _ primitive.ObjectID, _ bool) error {
	return nil
}

type fakeServiceRepo struct {
	services map[primitive.ObjectID]models.CleaningService
}

func (f *fakeServiceRepo) Create(_ context.Context, s *models.CleaningService) error {
	f.services[s.ID] = *s
	return nil
}
func (f *fakeServiceRepo) Update(_ context.Context, s *models.CleaningService) error {
	f.services[s.ID] = *s
	return nil
}
func (f *fakeServiceRepo) GetAll(_ context.Context) ([]models.CleaningService, error) {
	return nil, nil
}
func (f *fakeServiceRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.CleaningService, error) {
	var out []models.CleaningService
	for _, id := range ids {
		if s, ok := f.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeServiceRepo) UpdateStatus(_ context.Context, _ primitive.ObjectID, _ bool) error {
	return nil
}

type fakeCrewService struct {
	free []models.Cleaner
}

func (f *fakeCrewService) FindFreeCleaners(_ context.Context, _ *models.Order) ([]models.Cleaner, error) {
	return f.free, nil
}
func (f *fakeCrewService) AssignCrew(_ context.Context, order *models.Order) ([]models.Cleaner, error) {
	if len(f.free) >= order.CleanersCount {
		for _, c := range f.free[:order.CleanersCount] {
			order.CleanersBand = append(order.CleanersBand, c.ID)
		}
		order.Status = models.StatusCrewAssigned
	}
	return f.free, nil
}

type fakeNotifier struct {
	notified int
}

func (f *fakeNotifier) NotifyInsufficientCrew(_ models.Order, _ int) error {
	f.notified++
	return nil
}

func orderServiceFixture(free []models.Cleaner) (OrderService, *fakeOrderRepo, *fakeNotifier, *models.Order) {
	clientID := primitive.NewObjectID()

	object := &models.CleaningObject{
		ID:            primitive.NewObjectID(),
		ClientID:      clientID,
		Address:       "Lenina 1",
		NumberOfRooms: 3,
		Square:        60,
	}
	bundle := models.Bundle{
		ID:       primitive.NewObjectID(),
		Measure:  models.MeasureApartment,
		Duration: 8,
		Price:    4000,
	}
	service := models.CleaningService{
		ID:       primitive.NewObjectID(),
		Duration: 2,
		Price:    500,
	}

	orders := newFakeOrderRepo()
	notifier := &fakeNotifier{}
	svc := NewOrderService(
		orders,
		&fakeObjectRepo{objects: map[primitive.ObjectID]*models.CleaningObject{object.ID: object}},
		&fakeBundleRepo{bundles: map[primitive.ObjectID]models.Bundle{bundle.ID: bundle}},
		&fakeServiceRepo{services: map[primitive.ObjectID]models.CleaningService{service.ID: service}},
		&fakeCrewService{free: free},
		notifier,
		redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), // недоступен, кэш просто пропускается
		&config.Config{WorkdayEndHour: 21},
	)

	order := &models.Order{
		ClientID:         clientID,
		CleaningObjectID: object.ID,
		BundleIDs:        []primitive.ObjectID{bundle.ID},
		ServiceIDs:       []primitive.ObjectID{service.ID},
		StartTime:        time.Date(2025, 7, 14, 14, 0, 0, 0, time.UTC),
	}
	return svc, orders, notifier, order
}

func TestCreateOrder_ComputesDurationCrewAndEndTime(t *testing.T) {
	crew := []models.Cleaner{
		{ID: primitive.NewObjectID()},
		{ID: primitive.NewObjectID()},
	}
	svc, _, notifier, order := orderServiceFixture(crew)

	if err := svc.CreateOrder(context.Background(), order); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// 8h бандл + 2h услуга = 10h при окне 21-14 = 7h
	if order.TotalDuration != 10 {
		t.Errorf("TotalDuration = %v, want 10", order.TotalDuration)
	}
	if order.TotalPrice != 4500 {
		t.Errorf("TotalPrice = %v, want 4500", order.TotalPrice)
	}
	if order.CleanersCount != 2 {
		t.Errorf("CleanersCount = %d, want 2", order.CleanersCount)
	}
	want := order.StartTime.Add(5 * time.Hour)
	if !order.EndTime.Equal(want) {
		t.Errorf("EndTime = %v, want %v", order.EndTime, want)
	}
	if order.Status != models.StatusCrewAssigned {
		t.Errorf("status = %s, want %s", order.Status, models.StatusCrewAssigned)
	}
	if notifier.notified != 0 {
		t.Errorf("notifier fired %d times, want 0", notifier.notified)
	}
}

func TestCreateOrder_ShortfallGoesToNeedsCrew(t *testing.T) {
	svc, orders, notifier, order := orderServiceFixture([]models.Cleaner{{ID: primitive.NewObjectID()}})

	if err := svc.CreateOrder(context.Background(), order); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	stored, err := orders.GetByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("order not stored: %v", err)
	}
	if stored.Status != models.StatusNeedsCrew {
		t.Errorf("status = %s, want %s", stored.Status, models.StatusNeedsCrew)
	}
	if notifier.notified != 1 {
		t.Errorf("notifier fired %d times, want 1", notifier.notified)
	}
}

func TestCreateOrder_DiscardsClientSuppliedCrew(t *testing.T) {
	svc, orders, _, order := orderServiceFixture(nil)
	order.CleanersBand = []primitive.ObjectID{primitive.NewObjectID()}

	if err := svc.CreateOrder(context.Background(), order); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	stored, err := orders.GetByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("order not stored: %v", err)
	}
	// никто не назначал этих клинеров — поле вычисляемое
	if len(stored.CleanersBand) != 0 {
		t.Errorf("stored CleanersBand = %v, want empty", stored.CleanersBand)
	}
	if stored.Status != models.StatusNeedsCrew {
		t.Errorf("status = %s, want %s", stored.Status, models.StatusNeedsCrew)
	}
}

func TestUpdateOrder_RecomputesAndReassignsCrew(t *testing.T) {
	crew := []models.Cleaner{
		{ID: primitive.NewObjectID()},
		{ID: primitive.NewObjectID()},
	}
	svc, orders, _, order := orderServiceFixture(crew)
	ctx := context.Background()

	if err := svc.CreateOrder(ctx, order); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.CleanersCount != 2 || len(order.CleanersBand) != 2 {
		t.Fatalf("fixture order: count=%d band=%d, want 2/2", order.CleanersCount, len(order.CleanersBand))
	}

	// убираем услугу и сдвигаем старт на утро: 8h при окне 21-10 = 11h
	updated := &models.Order{
		BundleIDs: order.BundleIDs,
		StartTime: time.Date(2025, 7, 14, 10, 0, 0, 0, time.UTC),
	}
	if err := svc.UpdateOrder(ctx, order.ID, updated); err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}

	stored, err := orders.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("order not stored: %v", err)
	}
	if stored.TotalDuration != 8 {
		t.Errorf("TotalDuration = %v, want 8", stored.TotalDuration)
	}
	if stored.CleanersCount != 1 {
		t.Errorf("CleanersCount = %d, want 1", stored.CleanersCount)
	}
	want := updated.StartTime.Add(8 * time.Hour)
	if !stored.EndTime.Equal(want) {
		t.Errorf("EndTime = %v, want %v", stored.EndTime, want)
	}
	if len(stored.CleanersBand) != 1 {
		t.Errorf("CleanersBand = %v, want a fresh single-cleaner crew", stored.CleanersBand)
	}
	if stored.Status != models.StatusCrewAssigned {
		t.Errorf("status = %s, want %s", stored.Status, models.StatusCrewAssigned)
	}
}

func TestTransitions_FollowLifecycle(t *testing.T) {
	crew := []models.Cleaner{
		{ID: primitive.NewObjectID()},
		{ID: primitive.NewObjectID()},
	}
	svc, _, _, order := orderServiceFixture(crew)
	ctx := context.Background()

	if err := svc.CreateOrder(ctx, order); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// завершить можно только начатый заказ
	if err := svc.CompleteOrder(ctx, order.ID); !errors.Is(err, models.ErrValidation) {
		t.Errorf("CompleteOrder before start = %v, want ErrValidation", err)
	}

	if err := svc.StartOrder(ctx, order.ID); err != nil {
		t.Fatalf("StartOrder: %v", err)
	}
	if err := svc.CompleteOrder(ctx, order.ID); err != nil {
		t.Fatalf("CompleteOrder: %v", err)
	}

	// завершённый заказ терминален
	if err := svc.CancelOrder(ctx, order.ID); !errors.Is(err, models.ErrValidation) {
		t.Errorf("CancelOrder after completion = %v, want ErrValidation", err)
	}
	if err := svc.StartOrder(ctx, order.ID); !errors.Is(err, models.ErrValidation) {
		t.Errorf("StartOrder after completion = %v, want ErrValidation", err)
	}
}

func TestCancelOrder_BlocksRestart(t *testing.T) {
	crew := []models.Cleaner{
		{ID: primitive.NewObjectID()},
		{ID: primitive.NewObjectID()},
	}
	svc, _, _, order := orderServiceFixture(crew)
	ctx := context.Background()

	if err := svc.CreateOrder(ctx, order); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if err := svc.CancelOrder(ctx, order.ID); err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}

	if err := svc.StartOrder(ctx, order.ID); !errors.Is(err, models.ErrValidation) {
		t.Errorf("StartOrder after cancel = %v, want ErrValidation", err)
	}
	if err := svc.CancelOrder(ctx, order.ID); !errors.Is(err, models.ErrValidation) {
		t.Errorf("double cancel = %v, want ErrValidation", err)
	}
}

func TestCreateOrder_RejectsStartAfterWorkday(t *testing.T) {
	svc, _, _, order := orderServiceFixture(nil)
	order.StartTime = time.Date(2025, 7, 14, 22, 0, 0, 0, time.UTC)

	if err := svc.CreateOrder(context.Background(), order); err == nil {
		t.Error("order starting after the workday end must be rejected")
	}
}
