// Package scheduler runs housekeeping tasks on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Task is a named unit of periodic work.
type Task struct {
	Name     string
	Schedule string // cron expression with seconds, e.g. "0 0 3 * * *"
	Timeout  time.Duration
	Run      func(ctx context.Context) error
}

type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	tasks   map[string]cron.EntryID
	tasksMu sync.RWMutex
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		ctx:    ctx,
		cancel: cancel,
		tasks:  make(map[string]cron.EntryID),
	}
}

func (s *Scheduler) Start() {
	log.Info().Int("tasks", len(s.Tasks())).Msg("⏰ Starting housekeeping scheduler")
	s.cron.Start()
}

// Stop cancels running tasks and waits for them to return.
func (s *Scheduler) Stop() {
	log.Info().Msg("⏰ Stopping housekeeping scheduler...")
	s.cancel()
	<-s.cron.Stop().Done()
	log.Info().Msg("✅ Housekeeping scheduler stopped")
}

// Add registers a task, replacing any task with the same name.
func (s *Scheduler) Add(task Task) error {
	if task.Run == nil {
		return fmt.Errorf("task %s has no run function", task.Name)
	}

	s.tasksMu.Lock()
	defer s.tasksMu.Unlock()

	if entryID, exists := s.tasks[task.Name]; exists {
		s.cron.Remove(entryID)
		delete(s.tasks, task.Name)
	}

	entryID, err := s.cron.AddFunc(task.Schedule, func() { s.RunNow(task) })
	if err != nil {
		return fmt.Errorf("failed to add cron task %s: %w", task.Name, err)
	}
	s.tasks[task.Name] = entryID
	log.Info().Str("task", task.Name).Str("schedule", task.Schedule).Msg("✅ Scheduled task")
	return nil
}

func (s *Scheduler) Remove(name string) {
	s.tasksMu.Lock()
	defer s.tasksMu.Unlock()
	if entryID, exists := s.tasks[name]; exists {
		s.cron.Remove(entryID)
		delete(s.tasks, name)
	}
}

func (s *Scheduler) Tasks() []string {
	s.tasksMu.RLock()
	defer s.tasksMu.RUnlock()
	names := make([]string, 0, len(s.tasks))
	for name := range s.tasks {
		names = append(names, name)
	}
	return names
}

// RunNow executes a task synchronously with its timeout and logs the
// outcome.
func (s *Scheduler) RunNow(task Task) error {
	ctx := s.ctx
	if task.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, task.Timeout)
		defer cancel()
	}

	start := time.Now()
	if err := task.Run(ctx); err != nil {
		log.Error().Err(err).Str("task", task.Name).Msg("❌ Scheduled task failed")
		return err
	}
	log.Info().Str("task", task.Name).Dur("duration", time.Since(start)).Msg("✅ Scheduled task finished")
	return nil
}
