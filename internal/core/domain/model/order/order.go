package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrItemsAreRequired is returned for an order without line items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")

	// ErrPaymentRefIsRequired is returned when starting a payment without an intent reference.
	ErrPaymentRefIsRequired = errs.NewValueIsRequiredError("paymentRef")
)

// Order is the aggregate root of the order lifecycle.
//
// Order follows these invariants:
//   - Must have a valid identifier, customer and restaurant reference
//   - Has at least one line item; total equals the sum of line subtotals
//   - Status transitions follow the Status state machine
//   - paymentRef is empty exactly while the order is Created
//   - A new payment attempt never reuses the previous paymentRef
type Order struct {
	id           kernel.UUID
	customerID   string
	restaurantID string
	items        []LineItem
	total        kernel.Money
	status       Status
	paymentRef   string
	createdAt    time.Time
	updatedAt    time.Time

	isConstructed bool
}

// NewOrder creates an order in Created status and computes its total.
//
// Example:
//
//	pizza, _ := order.NewLineItem("pizza", "Margherita", 2, tenDollars)
//	o, err := order.NewOrder(kernel.NewUUID(), "customer-1", "restaurant-1", []order.LineItem{pizza}, time.Now())
func NewOrder(
	id kernel.UUID,
	customerID string,
	restaurantID string,
	items []LineItem,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Created,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order loaded from persistence and re-checks every invariant,
// including that the stored total still matches the stored lines.
func RestoreOrder(
	id kernel.UUID,
	customerID string,
	restaurantID string,
	items []LineItem,
	total kernel.Money,
	status Status,
	paymentRef string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt.UTC(),
		updatedAt:     updatedAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if !o.total.Equal(total) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"total",
			fmt.Errorf("stored total %s does not match line items %s", total, o.total),
		)
	}

	if (status == Created) != (paymentRef == "") {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"paymentRef",
			fmt.Errorf("%s order cannot have payment reference %q", status, paymentRef),
		)
	}

	o.status = status
	o.paymentRef = paymentRef
	return o, nil
}

// Validate ensures the Order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() string {
	return o.customerID
}

func (o *Order) RestaurantID() string {
	return o.restaurantID
}

// Items returns a copy of the line items in order.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) Status() Status {
	return o.status
}

// PaymentRef returns the current payment intent reference, empty before the first payment.
func (o *Order) PaymentRef() string {
	return o.paymentRef
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ValidateInitiatePayment checks a payment attempt for amount before it reaches the
// gateway. The amount is checked first so a mismatch is reported in every status.
func (o *Order) ValidateInitiatePayment(amount kernel.Money) error {
	if !o.total.Equal(amount) {
		return errs.NewAmountMismatchError(o.total, amount)
	}
	return o.status.ValidateInitiatePayment()
}

// InitiatePayment records a fresh payment intent and moves the order to PaymentPending.
func (o *Order) InitiatePayment(paymentRef string, now time.Time) error {
	paymentRef = strings.TrimSpace(paymentRef)
	if paymentRef == "" {
		return ErrPaymentRefIsRequired
	}
	if paymentRef == o.paymentRef {
		return errs.NewValueIsInvalidErrorWithCause("paymentRef", fmt.Errorf("%s was already used", paymentRef))
	}

	newStatus, err := o.status.InitiatePayment()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.paymentRef = paymentRef
	o.touch(now)
	return nil
}

// MarkPaid settles the order after a successful verification.
func (o *Order) MarkPaid(now time.Time) error {
	newStatus, err := o.status.MarkPaid()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.touch(now)
	return nil
}

// MarkPaymentFailed records a rejected receipt.
func (o *Order) MarkPaymentFailed(now time.Time) error {
	newStatus, err := o.status.MarkPaymentFailed()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.touch(now)
	return nil
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now.UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID string) error {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerId")
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setRestaurantID(restaurantID string) error {
	restaurantID = strings.TrimSpace(restaurantID)
	if restaurantID == "" {
		return errs.NewValueIsRequiredError("restaurantId")
	}
	o.restaurantID = restaurantID
	return nil
}

// setItems stores a copy of items and computes the total.
func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	var total kernel.Money
	for i, item := range items {
		subtotal, err := item.Subtotal()
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if i == 0 {
			total = subtotal
			continue
		}
		if total, err = total.Add(subtotal); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}

	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	o.total = total
	return nil
}
