package jobs

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	DefaultUploadSweepSchedule = "0 */10 * * * *"
	DefaultUploadMinAge        = time.Hour
)

type orphanImageSweeper interface {
	Handle(ctx context.Context, cmd commands.SweepOrphanImagesCommand) (int, error)
}

// UploadSweepJob removes uploaded images that no category or product references.
type UploadSweepJob struct {
	handler  orphanImageSweeper
	schedule string
	minAge   time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewUploadSweepJob creates the job. An empty schedule selects DefaultUploadSweepSchedule.
func NewUploadSweepJob(handler orphanImageSweeper, schedule string, minAge time.Duration, logger *slog.Logger) *UploadSweepJob {
	if schedule == "" {
		schedule = DefaultUploadSweepSchedule
	}
	return &UploadSweepJob{
		handler:  handler,
		schedule: schedule,
		minAge:   minAge,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "upload_sweep_job"),
	}
}

// Start schedules the sweep. An invalid cron expression is returned as an error.
func (j *UploadSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Upload sweep job started", "schedule", j.schedule)
	return nil
}

// Run performs one sweep.
func (j *UploadSweepJob) Run() {
	ctx := context.Background()

	cmd, err := commands.NewSweepOrphanImagesCommand(j.minAge)
	if err != nil {
		j.logger.ErrorContext(ctx, "Upload sweep job misconfigured", "error", err)
		return
	}

	removed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Upload sweep job failed", "error", err, "removed", removed)
		return
	}
	if removed > 0 {
		j.logger.InfoContext(ctx, "Removed orphaned uploads", "removed", removed)
	}
}

// Stop stops the job and waits for a running sweep to finish.
func (j *UploadSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Upload sweep job stopped")
}
