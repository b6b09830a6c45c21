package jobs

import (
	"context"
	"log/slog"

	"donation/internal/core/application/usecases/queries"
	"donation/internal/core/domain/model/item"

	"github.com/robfig/cron/v3"
)

// DefaultStatsSchedule runs the item stats job once a minute.
const DefaultStatsSchedule = "@every 1m"

type itemCounter interface {
	Handle(ctx context.Context, query queries.CountItemsByStatusQuery) (queries.ItemStats, error)
}

// ItemStatsJob periodically logs how many items are in each lifecycle status.
type ItemStatsJob struct {
	counter  itemCounter
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewItemStatsJob creates the stats job. An empty schedule means DefaultStatsSchedule.
// The schedule accepts six-field cron expressions and descriptors such as "@every 30s".
func NewItemStatsJob(counter itemCounter, schedule string, logger *slog.Logger) *ItemStatsJob {
	if schedule == "" {
		schedule = DefaultStatsSchedule
	}
	return &ItemStatsJob{
		counter:  counter,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "item_stats_job"),
	}
}

// Run counts items once and logs the result.
func (j *ItemStatsJob) Run(ctx context.Context) {
	stats, err := j.counter.Handle(ctx, queries.NewCountItemsByStatusQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Item stats job failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Item stats",
		"posted", stats[item.Posted],
		"picked", stats[item.Picked],
		"delivered", stats[item.Delivered],
		"total", stats.Total(),
	)
}

// Start schedules the job. It returns an error for an unparsable schedule.
func (j *ItemStatsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Item stats job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running pass to finish.
func (j *ItemStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Item stats job stopped")
}
