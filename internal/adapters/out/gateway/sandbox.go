// Package gateway contains payment gateway adapters.
//
// Sandbox follows the checkout contract of card gateways such as Razorpay: an intent
// reference is issued per payment attempt and a receipt's signature is the hex
// HMAC-SHA256 of "<intentRef>|<paymentID>" keyed with the merchant secret.
package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/payment"
	"drivefood/internal/core/ports"
	"drivefood/internal/pkg/errs"

	"github.com/google/uuid"
)

var _ ports.PaymentGateway = (*Sandbox)(nil)

type sandboxIntent struct {
	orderID kernel.UUID
	amount  kernel.Money
}

// Sandbox is an in-process gateway honouring the verification contract. It keeps the
// receipts it has verified so a second verification reports a replay.
type Sandbox struct {
	keyID   string
	secret  []byte
	latency time.Duration

	mu       sync.Mutex
	intents  map[string]sandboxIntent
	verified map[string]string
}

type SandboxOption func(*Sandbox)

// WithLatency delays every call, honouring context cancellation. Useful to exercise
// gateway timeouts.
func WithLatency(d time.Duration) SandboxOption {
	return func(s *Sandbox) {
		s.latency = d
	}
}

func NewSandbox(keyID string, secret string, opts ...SandboxOption) *Sandbox {
	s := &Sandbox{
		keyID:    keyID,
		secret:   []byte(secret),
		intents:  map[string]sandboxIntent{},
		verified: map[string]string{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// KeyID is the public merchant key clients pass to the checkout widget.
func (s *Sandbox) KeyID() string {
	return s.keyID
}

func (s *Sandbox) Initiate(ctx context.Context, orderID kernel.UUID, amount kernel.Money) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	if err := amount.Validate(); err != nil {
		return "", errs.NewGatewayError("initiate", err)
	}

	ref := "order_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	s.mu.Lock()
	s.intents[ref] = sandboxIntent{orderID: orderID, amount: amount}
	s.mu.Unlock()

	return ref, nil
}

func (s *Sandbox) Verify(ctx context.Context, intentRef string, receipt payment.Receipt) (payment.Verification, error) {
	if err := s.wait(ctx); err != nil {
		return payment.Verification{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.intents[intentRef]; !ok {
		return payment.Verification{}, errs.NewGatewayError("verify", fmt.Errorf("unknown intent %s", intentRef))
	}

	expected, err := hex.DecodeString(s.Sign(intentRef, receipt.PaymentID()))
	if err != nil {
		return payment.Verification{}, errs.NewGatewayError("verify", err)
	}
	given, err := hex.DecodeString(receipt.Signature())
	if err != nil || !hmac.Equal(expected, given) {
		return payment.Verification{Authentic: false}, nil
	}

	if ref, seen := s.verified[receipt.PaymentID()]; seen && ref == intentRef {
		return payment.Verification{Authentic: true, Replay: true}, nil
	}
	s.verified[receipt.PaymentID()] = intentRef
	return payment.Verification{Authentic: true}, nil
}

// Sign computes the signature the gateway issues for a payment on intentRef.
func (s *Sandbox) Sign(intentRef string, paymentID string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(intentRef + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *Sandbox) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
