package jobs

import (
	"context"
	"log/slog"
	"time"

	"drivefood/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

type unsettledOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetUnsettledOrdersQuery) ([]queries.GetUnsettledOrdersQueryResponse, error)
}

// UnsettledOrdersReportJob reports orders stuck in PAYMENT_PENDING.
type UnsettledOrdersReportJob struct {
	handler   unsettledOrdersHandler
	olderThan time.Duration
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewUnsettledOrdersReportJob(
	schedule string,
	handler unsettledOrdersHandler,
	olderThan time.Duration,
	logger *slog.Logger,
) *UnsettledOrdersReportJob {
	return &UnsettledOrdersReportJob{
		handler:   handler,
		olderThan: olderThan,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "unsettled_orders_report_job"),
	}
}

func (j *UnsettledOrdersReportJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		_ = j.Run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Unsettled orders report job started", "schedule", j.schedule)
	return nil
}

// Run performs one report pass and returns how many orders were reported.
func (j *UnsettledOrdersReportJob) Run(ctx context.Context) int {
	query, err := queries.NewGetUnsettledOrdersQuery(j.olderThan)
	if err != nil {
		j.logger.ErrorContext(ctx, "Unsettled orders report misconfigured", "error", err)
		return 0
	}

	orders, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Unsettled orders report failed", "error", err)
		return 0
	}

	for _, o := range orders {
		j.logger.WarnContext(ctx, "Order awaiting payment verification",
			"order_id", o.ID.String(),
			"payment_ref", o.PaymentRef,
			"total", o.Total.String(),
			"pending_since", o.PendingSince,
		)
	}
	if len(orders) > 0 {
		j.logger.InfoContext(ctx, "Unsettled orders report finished", "count", len(orders))
	}
	return len(orders)
}

func (j *UnsettledOrdersReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Unsettled orders report job stopped")
}
