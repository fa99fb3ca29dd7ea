package utils

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

const teardownTimeout = 15 * time.Second

// ShutdownManager cancels the root context on SIGINT/SIGTERM, then runs the
// registered teardown tasks in reverse registration order against a shared
// deadline: dependents close before the resources they sit on.
type ShutdownManager struct {
	cancel context.CancelFunc
	mu     sync.Mutex
	tasks  []func(context.Context) error
}

func NewShutdownManager(parent context.Context) (context.Context, *ShutdownManager) {
	ctx, cancel := context.WithCancel(parent)
	return ctx, &ShutdownManager{cancel: cancel}
}

// Register queues a teardown task. Later registrations run first.
func (sm *ShutdownManager) Register(task func(context.Context) error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.tasks = append(sm.tasks, task)
}

func (sm *ShutdownManager) StartListening() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		s := <-sig
		log.Printf("[SHUTDOWN] Caught %v, stopping", s)
		sm.cancel()

		ctx, cancel := context.WithTimeout(context.Background(), teardownTimeout)
		defer cancel()
		sm.runTeardown(ctx)

		log.Println("[SHUTDOWN] Done")
		os.Exit(0)
	}()
}

func (sm *ShutdownManager) runTeardown(ctx context.Context) {
	sm.mu.Lock()
	tasks := sm.tasks
	sm.mu.Unlock()

	for i := len(tasks) - 1; i >= 0; i-- {
		if err := tasks[i](ctx); err != nil {
			log.Printf("[SHUTDOWN] Teardown task failed: %v", err)
		}
	}
}
