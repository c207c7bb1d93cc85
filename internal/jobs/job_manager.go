package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager starts and stops every scheduled job together.
type JobManager struct {
	unsettledOrdersJob *UnsettledOrdersReportJob
	connectionsJob     *ConnectionsReportJob
}

func NewJobManager(
	schedule string,
	unsettledHandler unsettledOrdersHandler,
	unsettledAfter time.Duration,
	registry connectionCounter,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		unsettledOrdersJob: NewUnsettledOrdersReportJob(schedule, unsettledHandler, unsettledAfter, logger),
		connectionsJob:     NewConnectionsReportJob(schedule, registry, logger),
	}
}

// StartAll returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.unsettledOrdersJob.Start(); err != nil {
		return fmt.Errorf("failed to start unsettled orders report job: %w", err)
	}

	if err := jm.connectionsJob.Start(); err != nil {
		jm.unsettledOrdersJob.Stop()
		return fmt.Errorf("failed to start connections report job: %w", err)
	}

	return nil
}

func (jm *JobManager) StopAll() {
	jm.connectionsJob.Stop()
	jm.unsettledOrdersJob.Stop()
}
