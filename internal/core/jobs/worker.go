package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/shared/utils"
)

// Worker polls one queue with a fixed number of goroutines.
type Worker struct {
	store    Store
	config   WorkerConfig
	handlers map[string]JobHandler
	mu       sync.RWMutex
	stopped  bool
	wg       sync.WaitGroup
}

func NewWorker(store Store, config WorkerConfig) *Worker {
	def := DefaultWorkerConfig()
	if config.Queue == "" {
		config.Queue = def.Queue
	}
	if config.Concurrency <= 0 {
		config.Concurrency = def.Concurrency
	}
	if config.PollInterval <= 0 {
		config.PollInterval = def.PollInterval
	}
	if config.Timeout <= 0 {
		config.Timeout = def.Timeout
	}
	return &Worker{
		store:    store,
		config:   config,
		handlers: make(map[string]JobHandler),
	}
}

func (w *Worker) RegisterHandler(handler JobHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[handler.GetType()] = handler
	log.Info().Str("type", handler.GetType()).Msg("✅ Registered job handler")
}

func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("worker is stopped, cannot restart")
	}
	w.mu.Unlock()

	log.Info().Str("queue", w.config.Queue).Int("concurrency", w.config.Concurrency).Msg("🚀 Starting job worker")
	for i := 0; i < w.config.Concurrency; i++ {
		w.wg.Add(1)
		go w.runWorker(ctx, i+1)
	}
	return nil
}

// Stop asks every goroutine to exit after its current job and waits.
// Cancelling the Start context has the same effect.
func (w *Worker) Stop() {
	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()

	log.Info().Str("queue", w.config.Queue).Msg("🛑 Stopping job worker...")
	w.wg.Wait()
	log.Info().Str("queue", w.config.Queue).Msg("✅ Job worker stopped")
}

func (w *Worker) isStopped() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stopped
}

func (w *Worker) runWorker(ctx context.Context, workerID int) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if w.isStopped() {
				return
			}
			// drain the queue before waiting for the next tick
			for !w.isStopped() {
				err := w.processNextJob(ctx, workerID)
				if errors.Is(err, ErrNoJobsAvailable) {
					break
				}
				if err != nil {
					log.Warn().Err(err).Int("worker", workerID).Msg("⚠️ Job worker error")
					break
				}
			}
		}
	}
}

func (w *Worker) processNextJob(ctx context.Context, workerID int) error {
	job, err := w.store.Dequeue(ctx, w.config.Queue)
	if err != nil {
		return err
	}
	if job == nil {
		return ErrNoJobsAvailable
	}

	logger := log.With().Int("worker", workerID).Str("job_id", job.ID.String()).Str("type", job.Type).Logger()
	logger.Info().Int("attempt", job.Attempts).Msg("🔨 Processing job")

	// A claimed job runs to completion and its outcome is recorded even when
	// ctx is cancelled by shutdown; only the timeout bounds it.
	base := context.WithoutCancel(ctx)

	w.mu.RLock()
	handler, ok := w.handlers[job.Type]
	w.mu.RUnlock()
	if !ok {
		logger.Error().Msg("❌ No handler registered for job type")
		return w.store.MarkFailed(base, job.ID, fmt.Errorf("no handler registered for job type: %s", job.Type))
	}

	jobCtx, cancel := context.WithTimeout(utils.WithLogger(base, logger), w.config.Timeout)
	defer cancel()

	start := time.Now()
	result, err := handler.Handle(jobCtx, job)
	duration := time.Since(start)

	if err != nil {
		logger.Error().Err(err).Dur("duration", duration).Msg("❌ Job failed")
		if markErr := w.store.MarkFailed(base, job.ID, err); markErr != nil {
			logger.Warn().Err(markErr).Msg("⚠️ Failed to mark job as failed")
		}
		return nil
	}

	logger.Info().Dur("duration", duration).Msg("✅ Job completed")
	if err := w.store.MarkCompleted(base, job.ID, result); err != nil {
		logger.Warn().Err(err).Msg("⚠️ Failed to mark job as completed")
	}
	return nil
}

// WorkerPool starts and stops workers for several queues together.
type WorkerPool struct {
	workers []*Worker
	mu      sync.RWMutex
}

func NewWorkerPool() *WorkerPool {
	return &WorkerPool{}
}

func (p *WorkerPool) AddWorker(worker *Worker) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.workers = append(p.workers, worker)
}

func (p *WorkerPool) Start(ctx context.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, worker := range p.workers {
		if err := worker.Start(ctx); err != nil {
			return fmt.Errorf("failed to start worker: %w", err)
		}
	}
	return nil
}

func (p *WorkerPool) Stop() {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var wg sync.WaitGroup
	for _, worker := range p.workers {
		wg.Add(1)
		go func(w *Worker) {
			defer wg.Done()
			w.Stop()
		}(worker)
	}
	wg.Wait()
}
