package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/rentier-erp/rentier-erp/internal/jobs"
	"github.com/rentier-erp/rentier-erp/internal/reports"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// ReportsWarmupJob pre-renders the report caches so the first request
// after an invalidation does not pay the full render.
type ReportsWarmupJob struct {
	Reports *reports.Service
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewReportsWarmupJob wires dependencies for the warmup handler.
func NewReportsWarmupJob(reportsSvc *reports.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *ReportsWarmupJob {
	return &ReportsWarmupJob{
		Reports: reportsSvc,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes report warmup tasks.
func (j *ReportsWarmupJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Reports == nil {
		return errors.New("reports warmup: handler not configured")
	}

	tracker := j.metrics().Track(TaskReportsWarmup)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()
	var payload ReportsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Year == 0 {
		payload.Year = j.now().Year()
	}

	logger := j.logger().With(slog.Int("year", payload.Year))
	logger.Info("starting reports warmup")

	started := j.now()
	for _, kind := range reports.Kinds {
		kindCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
		_, err := j.Reports.Get(kindCtx, kind, payload.Year, 0)
		cancel()
		if err != nil {
			logger.Error("warm report", slog.String("kind", string(kind)), slog.Any("error", err))
			return err
		}
	}

	logger.Info("completed reports warmup",
		slog.Int("kinds", len(reports.Kinds)),
		slog.Duration("duration", time.Since(started)))
	return nil
}

func (j *ReportsWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *ReportsWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskReportsWarmup))
	}
	return slog.Default().With(slog.String("job", TaskReportsWarmup))
}

func (j *ReportsWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
