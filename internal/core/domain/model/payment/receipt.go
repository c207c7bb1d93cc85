package payment

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"drivefood/internal/pkg/errs"
	"drivefood/internal/pkg/guard"
)

var ErrReceiptIsNotConstructed = errs.NewValueIsRequiredError("receipt must be created via NewReceipt")

// Receipt is the proof of payment a client obtained from the gateway for an intent.
type Receipt struct { //nolint:recvcheck //using for validation
	paymentID string
	signature string

	guard guard.ConstructorGuard
}

func NewReceipt(paymentID string, signature string) (Receipt, error) {
	r := Receipt{guard: guard.NewConstructorGuard()}

	r.paymentID = strings.TrimSpace(paymentID)
	r.signature = strings.TrimSpace(signature)

	var idErr, sigErr error
	if r.paymentID == "" {
		idErr = errs.NewValueIsRequiredError("paymentId")
	}
	if r.signature == "" {
		sigErr = errs.NewValueIsRequiredError("signature")
	}
	if err := errors.Join(idErr, sigErr); err != nil {
		return Receipt{}, err
	}

	return r, nil
}

func (r Receipt) Validate() error {
	return r.guard.Validate(ErrReceiptIsNotConstructed)
}

// PaymentID is the gateway's identifier of the captured payment.
func (r Receipt) PaymentID() string {
	return r.paymentID
}

func (r Receipt) Signature() string {
	return r.signature
}

// Digest identifies the whole receipt. Two receipts with the same payment id but
// different signatures have different digests.
func (r Receipt) Digest() string {
	sum := sha256.Sum256([]byte(r.paymentID + "|" + r.signature))
	return hex.EncodeToString(sum[:])
}
