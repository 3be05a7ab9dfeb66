package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/decypher/internal/config"
	"github.com/mrlokans/decypher/internal/tasks"
)

const (
	JobAudioSweep   = "sweep_orphan_audio"
	JobAuditCleanup = "cleanup_audit_events"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// MaintenanceScheduler enqueues housekeeping tasks on cron schedules. The
// work itself runs on the task queue.
type MaintenanceScheduler struct {
	queue         tasks.Enqueuer
	schedules     map[string]string
	retentionDays int
	log           logrus.FieldLogger

	cron      *cron.Cron
	entries   map[string]cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

func NewMaintenanceScheduler(queue tasks.Enqueuer, cfg config.Maintenance, retentionDays int, log logrus.FieldLogger) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		queue: queue,
		schedules: map[string]string{
			JobAudioSweep:   cfg.AudioSweepSchedule,
			JobAuditCleanup: cfg.AuditCleanupSchedule,
		},
		retentionDays: retentionDays,
		log:           log.WithField("component", "scheduler"),
	}
}

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// Start registers every job with a non-empty schedule and starts the cron
// loop. The scheduler stops when ctx is done.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	c := cron.New(cron.WithParser(cronParser))
	entries := make(map[string]cron.EntryID)
	for job, schedule := range s.schedules {
		if schedule == "" {
			s.log.WithField("job", job).Info("job has no schedule, skipping")
			continue
		}
		if err := ValidateSchedule(schedule); err != nil {
			return fmt.Errorf("invalid cron schedule '%s' for %s: %w", schedule, job, err)
		}
		entryID, err := c.AddFunc(schedule, func() {
			if err := s.enqueue(job); err != nil {
				s.log.WithError(err).WithField("job", job).Error("failed to enqueue maintenance job")
			}
		})
		if err != nil {
			return fmt.Errorf("failed to schedule %s: %w", job, err)
		}
		entries[job] = entryID
	}

	s.cron = c
	s.entries = entries
	c.Start()
	s.isRunning = true

	for job, entryID := range entries {
		s.log.WithFields(logrus.Fields{
			"job":      job,
			"schedule": s.schedules[job],
			"next_run": c.Entry(entryID).Next,
		}).Info("maintenance job scheduled")
	}

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for running cron callbacks and stops the scheduler.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.log.Info("maintenance scheduler stopped")
}

// RunNow enqueues a job immediately.
func (s *MaintenanceScheduler) RunNow(job string) error {
	return s.enqueue(job)
}

func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTimes returns the next activation of every scheduled job.
func (s *MaintenanceScheduler) NextRunTimes() map[string]time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]time.Time, len(s.entries))
	if !s.isRunning {
		return result
	}
	for job, entryID := range s.entries {
		result[job] = s.cron.Entry(entryID).Next
	}
	return result
}

// Jobs lists the scheduled job names in a stable order.
func (s *MaintenanceScheduler) Jobs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	jobs := make([]string, 0, len(s.entries))
	for job := range s.entries {
		jobs = append(jobs, job)
	}
	sort.Strings(jobs)
	return jobs
}

func (s *MaintenanceScheduler) enqueue(job string) error {
	var task backlite.Task
	switch job {
	case JobAudioSweep:
		task = tasks.SweepOrphanAudioTask{}
	case JobAuditCleanup:
		task = tasks.CleanupAuditEventsTask{RetentionDays: s.retentionDays}
	default:
		return fmt.Errorf("unknown maintenance job %q", job)
	}
	if err := s.queue.Enqueue(task); err != nil {
		return err
	}
	s.log.WithField("job", job).Debug("maintenance job enqueued")
	return nil
}
