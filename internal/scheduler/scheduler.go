package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/reviewtool/internal/logger"
	"github.com/example/reviewtool/pkg/models"
)

// Notifier delivers the daily due-items summary.
type Notifier interface {
	SendDueSummary(totalDue int, bySubject map[string]int) error
}

// DueLister is the slice of the review service the scheduler needs.
type DueLister interface {
	DueItems(ctx context.Context, subject string, target *models.Date) (*models.DueItems, error)
}

// Scheduler runs the daily reminder job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	svc       DueLister
	notifier  Notifier
	log       *logger.Logger
}

// New creates a scheduler instance.
func New(svc DueLister, notifier Notifier, log *logger.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		svc:       svc,
		notifier:  notifier,
		log:       log,
	}
}

// Start schedules the daily reminder at the given UTC hour and begins
// running in the background.
func (s *Scheduler) Start(hour int) error {
	_, err := s.scheduler.Every(1).Day().At(fmt.Sprintf("%02d:00", hour)).Do(s.RunNow)
	if err != nil {
		return fmt.Errorf("failed to schedule reminder job: %v", err)
	}
	s.scheduler.StartAsync()
	s.log.Info("reminder scheduler started", "hour", hour)
	return nil
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunNow checks for due items and sends a summary if there are any.
func (s *Scheduler) RunNow() {
	due, err := s.svc.DueItems(context.Background(), "", nil)
	if err != nil {
		s.log.Error("failed to load due items for reminder", "error", err)
		return
	}
	if due.TotalDue == 0 {
		s.log.Debug("no items due, skipping reminder")
		return
	}
	if err := s.notifier.SendDueSummary(due.TotalDue, due.BySubject); err != nil {
		s.log.Error("failed to send reminder", "error", err)
	}
}
