package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

type connectionCounter interface {
	Count() int
}

// ConnectionsReportJob logs the number of connected observers.
type ConnectionsReportJob struct {
	registry connectionCounter
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewConnectionsReportJob(schedule string, registry connectionCounter, logger *slog.Logger) *ConnectionsReportJob {
	return &ConnectionsReportJob{
		registry: registry,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "connections_report_job"),
	}
}

func (j *ConnectionsReportJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Connections report job started", "schedule", j.schedule)
	return nil
}

func (j *ConnectionsReportJob) Run(ctx context.Context) int {
	count := j.registry.Count()
	j.logger.InfoContext(ctx, "Connected observers", "count", count)
	return count
}

func (j *ConnectionsReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Connections report job stopped")
}
