package commands

import (
	"context"
	"errors"
	"time"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/payment"
	"drivefood/internal/core/ports"
	"drivefood/internal/pkg/errs"
	"drivefood/internal/pkg/keylock"
)

// InitiatePaymentCommandHandler obtains a fresh gateway intent for an order and moves
// it to PAYMENT_PENDING.
//
// The order is validated under its lock, the lock is released for the gateway call,
// then re-acquired and the order re-validated before anything is written. A concurrent
// change in between surfaces as an InvalidStateError and the obtained intent is discarded.
type InitiatePaymentCommandHandler struct {
	flow      paymentFlow
	gateway   ports.PaymentGateway
	publisher ports.OrderPublisher
}

// NewInitiatePaymentCommandHandler wires the handler. locks must be shared with the
// verify handler so both serialize on the same order.
func NewInitiatePaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	gateway ports.PaymentGateway,
	publisher ports.OrderPublisher,
	locks *keylock.Locker,
	gatewayTimeout time.Duration,
) InitiatePaymentCommandHandler {
	return InitiatePaymentCommandHandler{
		flow:      newPaymentFlow(uowFactory, locks, gatewayTimeout),
		gateway:   gateway,
		publisher: publisher,
	}
}

// Handle returns the persisted intent. Errors: ObjectNotFoundError, AmountMismatchError,
// InvalidStateError, GatewayError.
func (h *InitiatePaymentCommandHandler) Handle(ctx context.Context, cmd InitiatePaymentCommand) (*payment.Intent, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	current, _, err := h.flow.snapshot(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = current.ValidateInitiatePayment(cmd.Amount()); err != nil {
		return nil, err
	}
	seenRef := current.PaymentRef()

	var intentRef string
	err = h.flow.callGateway(ctx, "initiate", func(ctx context.Context) error {
		var callErr error
		intentRef, callErr = h.gateway.Initiate(ctx, cmd.OrderID(), cmd.Amount())
		return callErr
	})
	if err != nil {
		return nil, err
	}

	return h.commit(ctx, cmd.OrderID(), cmd.Amount(), seenRef, intentRef)
}

func (h *InitiatePaymentCommandHandler) commit(
	ctx context.Context,
	orderID kernel.UUID,
	amount kernel.Money,
	seenRef string,
	intentRef string,
) (*payment.Intent, error) {
	unlock := h.flow.locks.Lock(orderID.String())
	defer unlock()

	uow := h.flow.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err = o.ValidateInitiatePayment(amount); err != nil {
		return nil, err
	}
	if o.PaymentRef() != seenRef {
		return nil, errs.NewInvalidStateErrorWithCause(
			"initiate payment",
			o.Status().String(),
			errors.New("payment was restarted concurrently"),
		)
	}

	now := h.flow.now()
	intent, err := payment.NewIntent(intentRef, orderID, amount, now)
	if err != nil {
		return nil, err
	}
	if err = o.InitiatePayment(intentRef, now); err != nil {
		return nil, err
	}

	if err = uow.PaymentIntentRepository().Add(ctx, intent); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, o)
	return intent, nil
}
