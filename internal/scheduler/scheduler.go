package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/hindicards/internal/statistics"
)

// Scheduler runs the daily review summary
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    SummarySource
	notifier  Notifier
	hour      int
}

// Notifier interface for sending the summary to the user
type Notifier interface {
	SendDailySummary(summary statistics.Summary) error
}

// SummarySource provides the statistics of the current day
type SummarySource interface {
	Summary() statistics.Summary
}

// New creates a new scheduler firing every day at hour in loc
func New(source SummarySource, notifier Notifier, hour int, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		source:    source,
		notifier:  notifier,
		hour:      hour,
	}
}

// Start registers the job and runs the scheduler in the background
func (s *Scheduler) Start() error {
	at := fmt.Sprintf("%02d:00", s.hour)
	if _, err := s.scheduler.Every(1).Day().At(at).Do(s.sendSummary); err != nil {
		return fmt.Errorf("failed to schedule daily summary: %w", err)
	}

	s.scheduler.StartAsync()
	log.Printf("Daily summary scheduled at %s", at)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunNow sends the summary immediately
func (s *Scheduler) RunNow() error {
	return s.notifier.SendDailySummary(s.source.Summary())
}

func (s *Scheduler) sendSummary() {
	if err := s.RunNow(); err != nil {
		log.Printf("Error sending daily summary: %v", err)
	}
}
