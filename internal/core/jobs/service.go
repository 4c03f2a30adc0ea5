package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// TypeReceiptImport is the job type for asynchronous receipt imports.
	TypeReceiptImport = "receipt_import"
	ReceiptsQueue     = "receipts"
)

// Service is the entry point used by handlers and main.
type Service struct {
	queue      *Queue
	workerPool *WorkerPool
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		queue:      NewQueue(db),
		workerPool: NewWorkerPool(),
	}
}

func (s *Service) Enqueue(ctx context.Context, jobType string, payload any, opts ...EnqueueOptions) (*Job, error) {
	options := DefaultEnqueueOptions()
	if len(opts) > 0 {
		options = opts[0]
	}
	return s.queue.Enqueue(ctx, jobType, payload, options)
}

// EnqueueReceiptImport queues an import on the receipts queue.
func (s *Service) EnqueueReceiptImport(ctx context.Context, payload any) (*Job, error) {
	return s.queue.Enqueue(ctx, TypeReceiptImport, payload, EnqueueOptions{
		Queue:      ReceiptsQueue,
		Priority:   PriorityNormal,
		MaxRetries: 3,
	})
}

func (s *Service) Cancel(ctx context.Context, jobID uuid.UUID) error {
	return s.queue.Cancel(ctx, jobID)
}

func (s *Service) GetJob(ctx context.Context, jobID uuid.UUID) (*Job, error) {
	return s.queue.GetJob(ctx, jobID)
}

func (s *Service) ListJobs(ctx context.Context, filter JobFilter) ([]Job, error) {
	return s.queue.ListJobs(ctx, filter)
}

// RegisterWorker creates a worker for config.Queue with the given handlers.
func (s *Service) RegisterWorker(config WorkerConfig, handlers ...JobHandler) *Worker {
	worker := NewWorker(s.queue, config)
	s.queue.reclaimAfter(worker.config.Timeout)
	for _, handler := range handlers {
		worker.RegisterHandler(handler)
	}
	s.workerPool.AddWorker(worker)
	return worker
}

func (s *Service) StartWorkers(ctx context.Context) error {
	return s.workerPool.Start(ctx)
}

func (s *Service) StopWorkers() {
	s.workerPool.Stop()
}

// Cleanup deletes finished jobs older than olderThan.
func (s *Service) Cleanup(ctx context.Context, olderThan time.Duration) (int64, error) {
	return s.queue.DeleteOldJobs(ctx, olderThan)
}
