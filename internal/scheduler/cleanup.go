// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/tasks"
)

// CleanupScheduler periodically enqueues an orphan-author cleanup task.
type CleanupScheduler struct {
	client   *tasks.Client
	schedule string

	cron       *cron.Cron
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewCleanupScheduler creates a scheduler. An empty schedule disables it.
func NewCleanupScheduler(client *tasks.Client, schedule string) *CleanupScheduler {
	return &CleanupScheduler{
		client:   client,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if a schedule is configured.
func (s *CleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.schedule == "" {
		log.Printf("Cleanup scheduler: disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.enqueueCleanup); err != nil {
		return fmt.Errorf("invalid cleanup schedule '%s': %w", s.schedule, err)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true
	log.Printf("Cleanup scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Cleanup scheduler: stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *CleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// RunNow enqueues an immediate cleanup.
func (s *CleanupScheduler) RunNow() {
	s.enqueueCleanup()
}

func (s *CleanupScheduler) enqueueCleanup() {
	if _, err := s.client.Add(tasks.CleanupOrphanAuthorsTask{}).Save(); err != nil {
		log.Printf("Cleanup scheduler: failed to enqueue task: %v", err)
		return
	}
	log.Printf("Cleanup scheduler: enqueued orphan author cleanup")
}
