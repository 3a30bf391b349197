package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportsWarmup is the task type for pre-rendering report caches.
	TaskReportsWarmup = "reports:warmup"
)

// ReportsWarmupPayload selects the year to warm. A zero Year means the
// current year at execution time.
type ReportsWarmupPayload struct {
	Year int `json:"year"`
}

// NewReportsWarmupTask constructs an Asynq task.
func NewReportsWarmupTask(payload ReportsWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportsWarmup, data), nil
}
