package commands

import (
	"context"
	"errors"
	"time"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/order"
	"drivefood/internal/core/domain/model/payment"
	"drivefood/internal/pkg/errs"
	"drivefood/internal/pkg/keylock"
)

// DefaultGatewayTimeout bounds a single gateway call when no timeout is configured.
const DefaultGatewayTimeout = 10 * time.Second

// paymentFlow holds what initiate and verify share: per-order serialization and the
// bounded gateway call. The order lock is never held while the gateway is called.
type paymentFlow struct {
	uowFactory     PaymentUoWFactory
	locks          *keylock.Locker
	gatewayTimeout time.Duration
	now            func() time.Time
}

func newPaymentFlow(uowFactory PaymentUoWFactory, locks *keylock.Locker, gatewayTimeout time.Duration) paymentFlow {
	if locks == nil {
		locks = keylock.New()
	}
	if gatewayTimeout <= 0 {
		gatewayTimeout = DefaultGatewayTimeout
	}
	return paymentFlow{
		uowFactory:     uowFactory,
		locks:          locks,
		gatewayTimeout: gatewayTimeout,
		now:            time.Now,
	}
}

// snapshot reads the order and its intents under the order lock in a transaction
// that is always rolled back.
func (f paymentFlow) snapshot(ctx context.Context, orderID kernel.UUID) (*order.Order, []*payment.Intent, error) {
	unlock := f.locks.Lock(orderID.String())
	defer unlock()

	uow := f.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	intents, err := uow.PaymentIntentRepository().ListByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	return o, intents, nil
}

// callGateway runs call with the configured deadline and classifies its failure.
func (f paymentFlow) callGateway(ctx context.Context, operation string, call func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, f.gatewayTimeout)
	defer cancel()

	err := call(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errs.ErrGateway), errors.Is(err, errs.ErrGatewayTimeout):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return errs.NewGatewayTimeoutError(operation, err)
	default:
		return errs.NewGatewayError(operation, err)
	}
}

// settledBy finds the intent receipt already settled, if any.
func settledBy(intents []*payment.Intent, receipt payment.Receipt) *payment.Intent {
	for _, intent := range intents {
		if intent.SettledBy(receipt) {
			return intent
		}
	}
	return nil
}
