package scheduler

import (
	"fmt"
	"log"

	"MorningBrief/internal/briefing"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the briefing pipeline on the configured daily cron.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *briefing.Pipeline
}

// NewScheduler creates a new Scheduler.
func NewScheduler(p *briefing.Pipeline) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Pipeline: p,
	}
}

// Register registers the daily briefing task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyRun); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the daily run immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyRun()
}

func (s *Scheduler) dailyRun() {
	log.Println("[INFO] running daily briefing")
	reports, summary := s.Pipeline.Run()
	fmt.Print(briefing.FormatBriefing(reports, summary))
	log.Printf("[INFO] daily briefing complete: %d tickers, %d skipped",
		len(summary.Succeeded), len(summary.Skipped))
}
