package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Queue stores jobs with gorm.
type Queue struct {
	db  *gorm.DB
	now func() time.Time
	// staleAfter is how long a job may stay processing before Dequeue
	// reclaims it. Zero disables reclaiming.
	staleAfter time.Duration
}

func NewQueue(db *gorm.DB) *Queue {
	return &Queue{db: db, now: time.Now}
}

func (q *Queue) Enqueue(ctx context.Context, jobType string, payload any, opts EnqueueOptions) (*Job, error) {
	if opts.Queue == "" {
		opts.Queue = "default"
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize payload: %w", err)
	}

	job := &Job{
		Queue:       opts.Queue,
		Type:        jobType,
		Payload:     payloadJSON,
		Status:      StatusPending,
		Priority:    opts.Priority,
		MaxRetries:  opts.MaxRetries,
		ScheduledAt: opts.ScheduleAt,
	}
	if err := q.db.WithContext(ctx).Create(job).Error; err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// reclaimAfter raises the stale threshold to twice timeout so a job that a
// live worker is still allowed to run is never reclaimed.
func (q *Queue) reclaimAfter(timeout time.Duration) {
	if d := 2 * timeout; d > q.staleAfter {
		q.staleAfter = d
	}
}

// runnableClause selects pending and retrying jobs, plus processing jobs
// whose worker died or was killed before recording an outcome.
func (q *Queue) runnableClause(now time.Time) (string, []any) {
	statuses := []JobStatus{StatusPending, StatusRetrying}
	if q.staleAfter <= 0 {
		return "status IN ?", []any{statuses}
	}
	return "(status IN ? OR (status = ? AND started_at < ?))",
		[]any{statuses, StatusProcessing, now.Add(-q.staleAfter)}
}

// Dequeue claims the next runnable job, highest priority first. Retrying
// jobs become runnable again once their backoff has elapsed. Rows are
// locked with SKIP LOCKED so concurrent workers never claim the same job.
func (q *Queue) Dequeue(ctx context.Context, queueName string) (*Job, error) {
	var job Job
	now := q.now()
	cond, args := q.runnableClause(now)

	err := q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("queue = ?", queueName).
			Where(cond, args...).
			Where("scheduled_at IS NULL OR scheduled_at <= ?", now).
			Order("priority DESC, created_at ASC").
			First(&job).Error
		if err != nil {
			return err
		}

		job.Status = StatusProcessing
		job.StartedAt = &now
		job.Attempts++
		return tx.Save(&job).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue job: %w", err)
	}
	return &job, nil
}

func (q *Queue) MarkCompleted(ctx context.Context, jobID uuid.UUID, result any) error {
	updates := map[string]any{
		"status":       StatusCompleted,
		"completed_at": q.now(),
		"error":        "",
	}
	if result != nil {
		resultJSON, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to serialize result: %w", err)
		}
		updates["result"] = resultJSON
	}
	return q.db.WithContext(ctx).Model(&Job{}).Where("id = ?", jobID).Updates(updates).Error
}

// MarkFailed records the error and schedules a retry with exponential
// backoff until MaxRetries attempts have been made.
func (q *Queue) MarkFailed(ctx context.Context, jobID uuid.UUID, cause error) error {
	var job Job
	if err := q.db.WithContext(ctx).First(&job, "id = ?", jobID).Error; err != nil {
		return fmt.Errorf("failed to find job: %w", err)
	}
	applyFailure(&job, cause, q.now())
	return q.db.WithContext(ctx).Save(&job).Error
}

func applyFailure(job *Job, cause error, now time.Time) {
	job.Error = cause.Error()
	job.FailedAt = &now
	if job.Attempts < job.MaxRetries {
		next := now.Add(time.Duration(calculateBackoff(job.Attempts)) * time.Second)
		job.Status = StatusRetrying
		job.ScheduledAt = &next
		return
	}
	job.Status = StatusFailed
}

func (q *Queue) Cancel(ctx context.Context, jobID uuid.UUID) error {
	result := q.db.WithContext(ctx).Model(&Job{}).
		Where("id = ? AND status IN ?", jobID, []JobStatus{StatusPending, StatusRetrying}).
		Update("status", StatusCancelled)
	if result.Error != nil {
		return fmt.Errorf("failed to cancel job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w or not cancellable", ErrJobNotFound)
	}
	return nil
}

func (q *Queue) GetJob(ctx context.Context, jobID uuid.UUID) (*Job, error) {
	var job Job
	if err := q.db.WithContext(ctx).First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

func (q *Queue) ListJobs(ctx context.Context, filter JobFilter) ([]Job, error) {
	query := q.db.WithContext(ctx).Model(&Job{})
	if filter.Queue != "" {
		query = query.Where("queue = ?", filter.Queue)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var jobs []Job
	if err := query.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// DeleteOldJobs removes finished jobs last updated before now-olderThan.
func (q *Queue) DeleteOldJobs(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := q.now().Add(-olderThan)
	result := q.db.WithContext(ctx).
		Where("status IN ? AND updated_at < ?", []JobStatus{StatusCompleted, StatusFailed, StatusCancelled}, cutoff).
		Delete(&Job{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete old jobs: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// calculateBackoff returns 2^attempt seconds, capped at one hour.
func calculateBackoff(attempt int) int {
	if attempt >= 12 {
		return 3600
	}
	backoff := 1 << attempt
	if backoff > 3600 {
		backoff = 3600
	}
	return backoff
}
