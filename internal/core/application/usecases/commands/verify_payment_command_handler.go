package commands

import (
	"context"
	"errors"
	"time"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/order"
	"drivefood/internal/core/domain/model/payment"
	"drivefood/internal/core/ports"
	"drivefood/internal/pkg/errs"
	"drivefood/internal/pkg/keylock"
)

// VerifyPaymentCommandHandler settles an order's pending payment with a receipt.
//
// A receipt that already settled one of the order's intents yields the stored
// settlement with Replayed set: nothing is written and nothing is broadcast. A forged
// receipt moves the order to PAYMENT_FAILED and is reported as a settlement with
// outcome failed, not as an error.
type VerifyPaymentCommandHandler struct {
	flow      paymentFlow
	gateway   ports.PaymentGateway
	publisher ports.OrderPublisher
}

func NewVerifyPaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	gateway ports.PaymentGateway,
	publisher ports.OrderPublisher,
	locks *keylock.Locker,
	gatewayTimeout time.Duration,
) VerifyPaymentCommandHandler {
	return VerifyPaymentCommandHandler{
		flow:      newPaymentFlow(uowFactory, locks, gatewayTimeout),
		gateway:   gateway,
		publisher: publisher,
	}
}

// Handle returns the settlement. Errors: ObjectNotFoundError, InvalidStateError,
// GatewayError.
func (h *VerifyPaymentCommandHandler) Handle(ctx context.Context, cmd VerifyPaymentCommand) (payment.Settlement, error) {
	if err := cmd.Validate(); err != nil {
		return payment.Settlement{}, err
	}
	receipt := cmd.Receipt()

	current, intents, err := h.flow.snapshot(ctx, cmd.OrderID())
	if err != nil {
		return payment.Settlement{}, err
	}
	if settled := settledBy(intents, receipt); settled != nil {
		return payment.NewSettlement(current, settled, true), nil
	}
	if err = current.Status().ValidateVerifyPayment(); err != nil {
		return payment.Settlement{}, err
	}
	intentRef := current.PaymentRef()

	var verification payment.Verification
	err = h.flow.callGateway(ctx, "verify", func(ctx context.Context) error {
		var callErr error
		verification, callErr = h.gateway.Verify(ctx, intentRef, receipt)
		return callErr
	})
	if err != nil {
		return payment.Settlement{}, err
	}

	return h.commit(ctx, cmd.OrderID(), intentRef, receipt, verification)
}

func (h *VerifyPaymentCommandHandler) commit(
	ctx context.Context,
	orderID kernel.UUID,
	intentRef string,
	receipt payment.Receipt,
	verification payment.Verification,
) (payment.Settlement, error) {
	unlock := h.flow.locks.Lock(orderID.String())
	defer unlock()

	uow := h.flow.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return payment.Settlement{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	intentRepo := uow.PaymentIntentRepository()

	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return payment.Settlement{}, err
	}
	intent, err := intentRepo.Get(ctx, intentRef)
	if err != nil {
		return payment.Settlement{}, err
	}

	// Lost the race to a verification with the same receipt.
	if intent.SettledBy(receipt) {
		return payment.NewSettlement(o, intent, true), nil
	}
	if err = o.Status().ValidateVerifyPayment(); err != nil {
		return payment.Settlement{}, err
	}
	if o.PaymentRef() != intentRef {
		return payment.Settlement{}, errs.NewInvalidStateErrorWithCause(
			"verify payment",
			o.Status().String(),
			errors.New("payment was restarted concurrently"),
		)
	}

	// A gateway replay on a still pending order means the earlier verification
	// never reached storage; the receipt was authentic then.
	authentic := verification.Authentic || verification.Replay
	now := h.flow.now()
	if err = intent.Settle(receipt, authentic, now); err != nil {
		return payment.Settlement{}, err
	}
	if err = transition(o, authentic, now); err != nil {
		return payment.Settlement{}, err
	}

	if err = intentRepo.Update(ctx, intent); err != nil {
		return payment.Settlement{}, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return payment.Settlement{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return payment.Settlement{}, err
	}

	h.publisher.Publish(ctx, o)
	return payment.NewSettlement(o, intent, false), nil
}

func transition(o *order.Order, authentic bool, now time.Time) error {
	if authentic {
		return o.MarkPaid(now)
	}
	return o.MarkPaymentFailed(now)
}
