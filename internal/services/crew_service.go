package services

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"yogurt-cleaning/internal/models"
	"yogurt-cleaning/internal/utils"
)

// assignmentBuffer is the mandatory gap between two orders of one cleaner.
const assignmentBuffer = time.Hour

type CleanerRepository interface {
	Create(ctx context.Context, cleaner *models.Cleaner) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Cleaner, error)
	GetByEmail(ctx context.Context, email string) (*models.Cleaner, error)
	GetAll(ctx context.Context) ([]models.Cleaner, error)
	// GetWorkingCleaners returns the cleaners scheduled to work on the date,
	// each with its orders for that date loaded.
	GetWorkingCleaners(ctx context.Context, date time.Time) ([]models.Cleaner, error)
	GetByIDWithOrders(ctx context.Context, id primitive.ObjectID, date time.Time) (*models.Cleaner, error)
	UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64) error
}

type CrewService interface {
	FindFreeCleaners(ctx context.Context, candidate *models.Order) ([]models.Cleaner, error)
	AssignCrew(ctx context.Context, order *models.Order) ([]models.Cleaner, error)
}

type crewService struct {
	cleaners CleanerRepository
	orders   OrderRepository
	locks    *utils.KeyedMutex
}

func NewCrewService(cleaners CleanerRepository, orders OrderRepository, locks *utils.KeyedMutex) CrewService {
	return &crewService{cleaners: cleaners, orders: orders, locks: locks}
}

// FindFreeCleaners filters the working roster for the candidate's date down
// to cleaners whose existing orders keep a one-hour gap around the
// candidate's window. An empty result is a normal outcome.
func (s *crewService) FindFreeCleaners(ctx context.Context, candidate *models.Order) ([]models.Cleaner, error) {
	roster, err := s.cleaners.GetWorkingCleaners(ctx, candidate.StartTime)
	if err != nil {
		return nil, err
	}

	free := make([]models.Cleaner, 0, len(roster))
	for _, cleaner := range roster {
		if IsCleanerFree(cleaner, candidate) {
			free = append(free, cleaner)
		}
	}
	return free, nil
}

// IsCleanerFree reports whether none of the cleaner's orders on the
// candidate's date collide with the candidate's window. Orders on other
// days never conflict; a cleaner with no orders that day is free.
func IsCleanerFree(cleaner models.Cleaner, candidate *models.Order) bool {
	for _, o := range cleaner.Orders {
		if !sameDate(o.StartTime, candidate.StartTime) {
			continue
		}
		if o.StartTime.Sub(candidate.EndTime) >= assignmentBuffer {
			continue
		}
		if candidate.StartTime.Sub(o.EndTime) >= assignmentBuffer {
			continue
		}
		return false
	}
	return true
}

// AssignCrew assembles a crew of order.CleanersCount free cleaners and
// persists the assignment. Each chosen cleaner is locked and re-checked
// against a fresh roster read before the write, so two competing orders
// cannot book the same cleaner into overlapping windows.
//
// When fewer cleaners are free than needed, nothing is written and the
// free set is returned as-is; the caller decides how to report the
// shortfall.
func (s *crewService) AssignCrew(ctx context.Context, order *models.Order) ([]models.Cleaner, error) {
	free, err := s.FindFreeCleaners(ctx, order)
	if err != nil {
		return nil, err
	}
	if len(free) < order.CleanersCount {
		return free, nil
	}

	// Locks are always taken in id order so competing assignments cannot
	// deadlock each other.
	sort.Slice(free, func(i, j int) bool {
		return free[i].ID.Hex() < free[j].ID.Hex()
	})

	var (
		crew    []models.Cleaner
		unlocks []func()
	)
	defer func() {
		for _, unlock := range unlocks {
			unlock()
		}
	}()

	for _, candidate := range free {
		if len(crew) == order.CleanersCount {
			break
		}
		unlock := s.locks.Lock("cleaner:" + candidate.ID.Hex())

		fresh, err := s.cleaners.GetByIDWithOrders(ctx, candidate.ID, order.StartTime)
		if err != nil || !IsCleanerFree(*fresh, order) {
			unlock()
			continue
		}
		crew = append(crew, *fresh)
		unlocks = append(unlocks, unlock)
	}

	if len(crew) < order.CleanersCount {
		return crew, nil
	}

	band := make([]primitive.ObjectID, len(crew))
	for i, c := range crew {
		band[i] = c.ID
	}
	order.CleanersBand = band
	order.Status = models.StatusCrewAssigned

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return crew, nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
