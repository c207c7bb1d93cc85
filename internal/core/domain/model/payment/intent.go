package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/pkg/errs"
)

var ErrIntentIsNotConstructed = errors.New("Intent must be created via NewIntent constructor")

// IntentStatus tracks the local view of a gateway intent.
type IntentStatus int

const (
	IntentUnknown IntentStatus = iota
	IntentPending
	IntentVerified
	IntentFailed
)

func getIntentStatusStrings() map[IntentStatus]string {
	return map[IntentStatus]string{
		IntentUnknown:  "unknown",
		IntentPending:  "pending",
		IntentVerified: "verified",
		IntentFailed:   "failed",
	}
}

func IntentStatusFromString(s string) (IntentStatus, error) {
	for status, name := range getIntentStatusStrings() {
		if status != IntentUnknown && name == strings.ToLower(strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return IntentUnknown, errs.NewValueIsInvalidErrorWithCause("intent status", fmt.Errorf("%q is not a valid status", s))
}

func (s IntentStatus) String() string {
	if str, ok := getIntentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Intent is the cached copy of a gateway payment intent. The gateway stays the source
// of truth; the cache is updated on every verification.
type Intent struct {
	id        string
	orderID   kernel.UUID
	amount    kernel.Money
	status    IntentStatus
	receiptID     string
	receiptDigest string
	createdAt     time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewIntent records a freshly issued intent reference in pending status.
func NewIntent(id string, orderID kernel.UUID, amount kernel.Money, now time.Time) (*Intent, error) {
	i := &Intent{
		status:        IntentPending,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		i.setID(id),
		orderID.Validate(),
		amount.Validate(),
	); err != nil {
		return nil, err
	}

	i.orderID = orderID
	i.amount = amount
	return i, nil
}

// RestoreIntent rebuilds an intent from persistence. A settled intent must name the
// receipt that settled it and carry its digest.
func RestoreIntent(
	id string,
	orderID kernel.UUID,
	amount kernel.Money,
	status IntentStatus,
	receiptID string,
	receiptDigest string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Intent, error) {
	i, err := NewIntent(id, orderID, amount, createdAt)
	if err != nil {
		return nil, err
	}

	if status < IntentPending || status > IntentFailed {
		return nil, errs.NewValueIsInvalidErrorWithCause("intent status", fmt.Errorf("%d is not a valid status", status))
	}
	if (status == IntentPending) != (receiptID == "") {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"receiptId",
			fmt.Errorf("%s intent cannot have receipt %q", status, receiptID),
		)
	}
	if (status == IntentPending) != (receiptDigest == "") {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"receiptDigest",
			fmt.Errorf("%s intent cannot have receipt digest %q", status, receiptDigest),
		)
	}

	i.status = status
	i.receiptID = receiptID
	i.receiptDigest = receiptDigest
	i.updatedAt = updatedAt.UTC()
	return i, nil
}

func (i *Intent) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrIntentIsNotConstructed
	}
	return nil
}

// ID is the gateway issued intent reference.
func (i *Intent) ID() string {
	return i.id
}

func (i *Intent) OrderID() kernel.UUID {
	return i.orderID
}

func (i *Intent) Amount() kernel.Money {
	return i.amount
}

func (i *Intent) Status() IntentStatus {
	return i.status
}

// ReceiptID is the payment id of the receipt that settled the intent.
func (i *Intent) ReceiptID() string {
	return i.receiptID
}

// ReceiptDigest is the digest of the receipt that settled the intent.
func (i *Intent) ReceiptDigest() string {
	return i.receiptDigest
}

func (i *Intent) CreatedAt() time.Time {
	return i.createdAt
}

func (i *Intent) UpdatedAt() time.Time {
	return i.updatedAt
}

// IsSettled reports whether a receipt has been verified against the intent.
func (i *Intent) IsSettled() bool {
	return i.status == IntentVerified || i.status == IntentFailed
}

// SettledBy reports whether exactly this receipt, payment id and signature, settled
// the intent.
func (i *Intent) SettledBy(receipt Receipt) bool {
	return i.IsSettled() &&
		i.receiptID == receipt.PaymentID() &&
		i.receiptDigest == receipt.Digest()
}

// Outcome maps a settled intent to the result reported to clients.
func (i *Intent) Outcome() Outcome {
	if i.status == IntentVerified {
		return OutcomePaid
	}
	return OutcomeFailed
}

// Settle records the verdict on receipt. An intent settles exactly once.
func (i *Intent) Settle(receipt Receipt, authentic bool, now time.Time) error {
	if err := receipt.Validate(); err != nil {
		return err
	}
	if i.status != IntentPending {
		return errs.NewInvalidStateError("settle intent", i.status.String())
	}

	i.status = IntentFailed
	if authentic {
		i.status = IntentVerified
	}
	i.receiptID = receipt.PaymentID()
	i.receiptDigest = receipt.Digest()
	i.updatedAt = now.UTC()
	return nil
}

func (i *Intent) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("intentId")
	}
	i.id = id
	return nil
}
