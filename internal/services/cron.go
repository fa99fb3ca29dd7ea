package services

import (
	"context"
	"log"
	"time"

	"yogurt-cleaning/internal/models"
)

// CronJobService periodically retries crew assembly for orders stuck in
// needs_crew: the roster changes as other orders complete or get cancelled.
type CronJobService struct {
	repo     OrderRepository
	orderSvc OrderService
}

func NewCronJobService(repo OrderRepository, orderSvc OrderService) *CronJobService {
	return &CronJobService{repo: repo, orderSvc: orderSvc}
}

func (s *CronJobService) Start(ctx context.Context) {
	go s.startCrewRetryJob(ctx)
}

func (s *CronJobService) startCrewRetryJob(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	for {
		select {
		case <-ticker.C:
			s.retryNeedsCrewOrders(ctx)
		case <-ctx.Done():
			log.Println("[CRON] Stopping crew retry job")
			ticker.Stop()
			return
		}
	}
}

func (s *CronJobService) retryNeedsCrewOrders(ctx context.Context) {
	orders, err := s.repo.GetByStatus(ctx, models.StatusNeedsCrew)
	if err != nil {
		log.Println("Failed to fetch needs_crew orders:", err)
		return
	}

	for _, order := range orders {
		if order.StartTime.Before(time.Now()) {
			continue
		}
		crew, err := s.orderSvc.AssembleCrew(ctx, order.ID)
		if err != nil {
			log.Printf("Failed to retry crew for order %s: %v", order.ID.Hex(), err)
			continue
		}
		if len(crew) >= order.CleanersCount {
			log.Printf("[CRON] Order %s staffed with %d cleaners", order.ID.Hex(), len(crew))
		}
	}
}
