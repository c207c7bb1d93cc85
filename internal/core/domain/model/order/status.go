package order

import (
	"fmt"
	"strings"

	"drivefood/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Created ──> PaymentPending ──> Paid
//	                 │    ^
//	                 v    │ (new payment attempt)
//	            PaymentFailed
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status; no payment has been attempted.
	Created

	// PaymentPending means a payment intent exists and awaits verification.
	PaymentPending

	// Paid is terminal: the payment receipt was verified.
	Paid

	// PaymentFailed means verification rejected the receipt. A new payment may be initiated.
	PaymentFailed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Created:        "CREATED",
		PaymentPending: "PAYMENT_PENDING",
		Paid:           "PAID",
		PaymentFailed:  "PAYMENT_FAILED",
	}
}

// StatusFromString parses the names produced by String.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == strings.ToUpper(strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out of range values.
func (s Status) Validate() error {
	if s < Created || s > PaymentFailed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsSettled reports whether a verification outcome has been recorded.
func (s Status) IsSettled() bool {
	return s == Paid || s == PaymentFailed
}

// ValidateInitiatePayment checks that a payment may be started from s.
func (s Status) ValidateInitiatePayment() error {
	if s != Created && s != PaymentFailed {
		return errs.NewInvalidStateError("initiate payment", s.String())
	}
	return nil
}

// ValidateVerifyPayment checks that a receipt may be verified from s.
func (s Status) ValidateVerifyPayment() error {
	if s != PaymentPending {
		return errs.NewInvalidStateError("verify payment", s.String())
	}
	return nil
}

// InitiatePayment transitions Created or PaymentFailed to PaymentPending.
func (s Status) InitiatePayment() (Status, error) {
	if err := s.ValidateInitiatePayment(); err != nil {
		return Unknown, err
	}
	return PaymentPending, nil
}

// MarkPaid transitions PaymentPending to Paid.
func (s Status) MarkPaid() (Status, error) {
	if err := s.ValidateVerifyPayment(); err != nil {
		return Unknown, err
	}
	return Paid, nil
}

// MarkPaymentFailed transitions PaymentPending to PaymentFailed.
func (s Status) MarkPaymentFailed() (Status, error) {
	if err := s.ValidateVerifyPayment(); err != nil {
		return Unknown, err
	}
	return PaymentFailed, nil
}
