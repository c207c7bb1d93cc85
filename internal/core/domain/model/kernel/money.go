package kernel

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"drivefood/internal/pkg/errs"
	"drivefood/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned when validating a zero value Money.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or MoneyFromString")

// ErrCurrencyMismatch is returned when combining amounts of different currencies.
var ErrCurrencyMismatch = errs.NewValueIsInvalidError("currency mismatch")

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Money is a non-negative decimal amount in a single currency. Amounts are exact;
// no floating point is involved anywhere in pricing.
type Money struct { //nolint:recvcheck //using for validation
	amount   decimal.Decimal
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney validates amount and currency. The currency is upper-cased before
// validation, so "inr" is accepted as "INR".
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	m := Money{guard: guard.NewConstructorGuard()}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	var amountErr, currencyErr error
	if amount.IsNegative() {
		amountErr = errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", amount))
	}
	if !currencyPattern.MatchString(currency) {
		currencyErr = errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not an ISO 4217 code", currency))
	}
	if err := errors.Join(amountErr, currencyErr); err != nil {
		return Money{}, err
	}

	m.amount = amount
	m.currency = currency
	return m, nil
}

// MoneyFromString parses a decimal string such as "12.50".
func MoneyFromString(amount string, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d, currency)
}

// ZeroMoney returns 0 in the given currency.
func ZeroMoney(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

// Validate fails for a zero value Money.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the ISO 4217 code.
func (m Money) Currency() string {
	return m.currency
}

// Add sums two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// Times multiplies the amount by a non-negative quantity.
func (m Money) Times(quantity int) (Money, error) {
	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(quantity))), m.currency)
}

// Equal compares amount and currency exactly; 23 and 23.00 are equal.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String renders the amount with two decimals followed by the currency.
func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}
