package queries

import (
	"errors"
	"time"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/pkg/errs"
	"drivefood/internal/pkg/guard"
)

var (
	ErrGetUnsettledOrdersQueryIsNotConstructed = errors.New(
		"GetUnsettledOrdersQuery must be created via NewGetUnsettledOrdersQuery constructor",
	)
)

// GetUnsettledOrdersQuery lists orders that have been waiting for payment verification
// for at least olderThan. Zero lists every pending order.
type GetUnsettledOrdersQuery struct {
	olderThan time.Duration

	guard guard.ConstructorGuard
}

func NewGetUnsettledOrdersQuery(olderThan time.Duration) (GetUnsettledOrdersQuery, error) {
	if olderThan < 0 {
		return GetUnsettledOrdersQuery{}, errs.NewValueIsOutOfRangeError("olderThan", olderThan, time.Duration(0), "unbounded")
	}
	return GetUnsettledOrdersQuery{olderThan: olderThan, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUnsettledOrdersQuery) OlderThan() time.Duration {
	return q.olderThan
}

func (q GetUnsettledOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnsettledOrdersQueryIsNotConstructed)
}

type GetUnsettledOrdersQueryResponse struct {
	ID           kernel.UUID
	RestaurantID string
	Total        kernel.Money
	PaymentRef   string
	PendingSince time.Time
}
