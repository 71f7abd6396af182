package jobs

import (
	"context"
	"time"
)

// JobType represents the type of job to be executed.
type JobType string

// JobTypeRefresh recomputes the recommendation snapshot from the
// current transaction history and catalog.
const JobTypeRefresh JobType = "refresh_recommendations"

// JobStatus represents the current status of a job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusRetrying  JobStatus = "retrying"
)

// RefreshJob asks a worker to rebuild the recommendation snapshot.
// A zero AsOf means "evaluate against the wall clock at processing
// time"; an explicit AsOf pins the 30-day spending window.
type RefreshJob struct {
	JobID string `json:"job_id"`

	// Trigger records what asked for the refresh ("api", "cli",
	// "schedule") for the job listing.
	Trigger string `json:"trigger"`

	AsOf time.Time `json:"as_of,omitempty"`

	Status JobStatus `json:"status"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error holds details when the job failed.
	Error string `json:"error,omitempty"`

	RetryCount int `json:"retry_count"`
	MaxRetries int `json:"max_retries"`
}

// Job is a generic interface over job types.
type Job interface {
	GetID() string
	GetType() JobType
	GetStatus() JobStatus
}

func (j *RefreshJob) GetID() string        { return j.JobID }
func (j *RefreshJob) GetType() JobType     { return JobTypeRefresh }
func (j *RefreshJob) GetStatus() JobStatus { return j.Status }

// Publisher publishes jobs to a queue. The abstraction allows swapping
// the in-memory queue for Cloud Tasks or Pub/Sub later.
type Publisher interface {
	PublishRefresh(ctx context.Context, job *RefreshJob) error
	Close() error
}

// Consumer consumes jobs from a queue.
type Consumer interface {
	// Start begins consuming; handler is called per job received.
	Start(ctx context.Context, handler JobHandler) error

	// Stop stops consuming and waits for in-flight jobs.
	Stop(ctx context.Context) error
}

// JobHandler processes one job. Returning an error marks the job
// failed and eligible for retry.
type JobHandler func(ctx context.Context, job Job) error

// JobStore tracks job state so callers can poll refresh progress.
type JobStore interface {
	SaveJob(ctx context.Context, job *RefreshJob) error
	GetJob(ctx context.Context, jobID string) (*RefreshJob, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*RefreshJob, error)
}

// JobFilter defines filtering criteria for listing jobs.
type JobFilter struct {
	Status JobStatus
	Limit  int
	Offset int
}
