// Package jobs is a postgres-backed job queue with a polling worker pool.
// Receipt imports submitted with async=true run through it.
package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusRetrying   JobStatus = "retrying"
	StatusCancelled  JobStatus = "cancelled"
)

type JobPriority int

const (
	PriorityLow    JobPriority = 0
	PriorityNormal JobPriority = 5
	PriorityHigh   JobPriority = 10
)

var (
	ErrNoJobsAvailable = errors.New("no jobs available")
	ErrJobNotFound     = errors.New("job not found")
)

// Job is one unit of background work stored in the jobs table.
type Job struct {
	ID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Queue   string         `gorm:"type:varchar(100);not null;index" json:"queue"`
	Type    string         `gorm:"type:varchar(100);not null" json:"type"`
	Payload datatypes.JSON `gorm:"type:jsonb" json:"-"`

	Status   JobStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Priority JobPriority `gorm:"not null;default:5" json:"priority"`

	Attempts   int `gorm:"not null;default:0" json:"attempts"`
	MaxRetries int `gorm:"not null;default:3" json:"max_retries"`

	ScheduledAt *time.Time `gorm:"index" json:"scheduled_at,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`

	Error  string         `gorm:"type:text" json:"error,omitempty"`
	Result datatypes.JSON `gorm:"type:jsonb" json:"result,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// Finished reports whether the job reached a terminal state.
func (j *Job) Finished() bool {
	switch j.Status {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// JobHandler runs jobs of one type. The returned result is stored as JSON
// on the job.
type JobHandler interface {
	Handle(ctx context.Context, job *Job) (any, error)
	GetType() string
}

// Store is the part of the queue a worker needs.
type Store interface {
	Dequeue(ctx context.Context, queue string) (*Job, error)
	MarkCompleted(ctx context.Context, jobID uuid.UUID, result any) error
	MarkFailed(ctx context.Context, jobID uuid.UUID, cause error) error
}

type EnqueueOptions struct {
	Queue      string
	Priority   JobPriority
	MaxRetries int
	ScheduleAt *time.Time
}

func DefaultEnqueueOptions() EnqueueOptions {
	return EnqueueOptions{
		Queue:      "default",
		Priority:   PriorityNormal,
		MaxRetries: 3,
	}
}

type JobFilter struct {
	Queue  string
	Type   string
	Status JobStatus
	Limit  int
}

type WorkerConfig struct {
	Queue        string
	Concurrency  int
	PollInterval time.Duration
	Timeout      time.Duration
}

func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		Queue:        "default",
		Concurrency:  2,
		PollInterval: time.Second,
		Timeout:      2 * time.Minute,
	}
}
